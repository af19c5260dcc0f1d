package config

import (
	"errors"
	"fmt"
	"strings"
)

// Error types of a ConfigurationError.
const (
	ErrorTypeIO         = "io"
	ErrorTypeParse      = "parse"
	ErrorTypeValidation = "validation"
)

// ConfigurationError represents a structured error that occurs during configuration loading
type ConfigurationError struct {
	FilePath    string           // Full path to the file that caused the error, if any
	ErrorType   string           // Type of error (io, parse, validation)
	Message     string           // Human-readable error message
	Problems    ValidationErrors // Individual validation failures
	Suggestions []string         // Actionable suggestions to fix the error
}

// Error implements the error interface
func (ce *ConfigurationError) Error() string {
	if ce.FilePath == "" {
		return fmt.Sprintf("invalid configuration (%s): %s", ce.ErrorType, ce.Message)
	}
	return fmt.Sprintf("invalid configuration in %s (%s): %s", ce.FilePath, ce.ErrorType, ce.Message)
}

// DetailedError returns a detailed error message with all context
func (ce *ConfigurationError) DetailedError() string {
	var parts []string

	parts = append(parts, "Configuration Error")
	if ce.FilePath != "" {
		parts = append(parts, fmt.Sprintf("  File: %s", ce.FilePath))
	}
	parts = append(parts, fmt.Sprintf("  Type: %s", ce.ErrorType))

	if len(ce.Problems) > 0 {
		parts = append(parts, "  Problems:")
		for _, p := range ce.Problems {
			parts = append(parts, fmt.Sprintf("    - %s", p.Error()))
		}
	} else {
		parts = append(parts, fmt.Sprintf("  Error: %s", ce.Message))
	}

	if len(ce.Suggestions) > 0 {
		parts = append(parts, "  Suggestions:")
		for _, suggestion := range ce.Suggestions {
			parts = append(parts, fmt.Sprintf("    - %s", suggestion))
		}
	}

	return strings.Join(parts, "\n")
}

// IsConfigurationError reports whether err is or wraps a ConfigurationError.
func IsConfigurationError(err error) bool {
	var target *ConfigurationError
	return errors.As(err, &target)
}
