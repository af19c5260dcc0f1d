package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/giantswarm/mcp-wordpress/pkg/logging"
)

// ValidationError represents a validation error with context
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (ve ValidationError) Error() string {
	if ve.Field == "" {
		return ve.Message
	}
	return fmt.Sprintf("field '%s': %s", ve.Field, ve.Message)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for multiple validation errors
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}
	if len(ve) == 1 {
		return ve[0].Error()
	}

	var messages []string
	for _, err := range ve {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, "; "))
}

// HasErrors returns true if there are any validation errors
func (ve ValidationErrors) HasErrors() bool {
	return len(ve) > 0
}

// Add adds a new validation error
func (ve *ValidationErrors) Add(field, message string, value ...interface{}) {
	var val interface{}
	if len(value) > 0 {
		val = value[0]
	}
	*ve = append(*ve, ValidationError{
		Field:   field,
		Value:   val,
		Message: message,
	})
}

// ValidateOneOf checks if a value is in a list of allowed values
func ValidateOneOf(field, value string, allowed []string) error {
	for _, allowedValue := range allowed {
		if value == allowedValue {
			return nil
		}
	}
	return ValidationError{
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")),
	}
}

// ValidateHTTPURL checks that value is an absolute http or https URL.
func ValidateHTTPURL(field, value string) error {
	u, err := url.Parse(value)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ValidationError{
			Field:   field,
			Value:   value,
			Message: "must be an absolute http(s) URL",
		}
	}
	return nil
}

// Validate checks the whole configuration and reports every problem at
// once as a *ConfigurationError.
func (c Config) Validate() error {
	var errs ValidationErrors

	if err := ValidateOneOf("server.transport", c.Server.Transport, Transports); err != nil {
		errs = append(errs, err.(ValidationError))
	}
	if c.Server.IsHTTP() {
		if strings.TrimSpace(c.Server.Host) == "" {
			errs.Add("server.host", "is required for HTTP transports")
		}
		if c.Server.Port < 1 || c.Server.Port > 65535 {
			errs.Add("server.port", "must be between 1 and 65535", c.Server.Port)
		}
	}

	if strings.TrimSpace(c.Backend.URL) == "" {
		errs.Add("backend.url", fmt.Sprintf("is required (set it in %s or %s)", configFileName, EnvURL))
	} else if err := ValidateHTTPURL("backend.url", c.Backend.URL); err != nil {
		errs = append(errs, err.(ValidationError))
	}
	if c.Backend.Timeout < 0 {
		errs.Add("backend.timeout", "must not be negative", c.Backend.Timeout)
	}

	if (c.Backend.Username == "") != (c.Backend.Password == "") {
		logging.Warn("ConfigLoader", "Only one of backend.username and backend.password is set, requests will be unauthenticated")
	}

	if !errs.HasErrors() {
		return nil
	}
	return &ConfigurationError{
		ErrorType: ErrorTypeValidation,
		Message:   errs.Error(),
		Problems:  errs,
	}
}
