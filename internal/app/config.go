package app

import (
	"io"

	"github.com/giantswarm/mcp-wordpress/internal/config"
	"github.com/giantswarm/mcp-wordpress/pkg/logging"
)

// Config holds the application configuration
type Config struct {
	// Logging settings
	LogLevel  logging.LogLevel
	LogFormat logging.Format
	// LogOutput defaults to stderr; stdout belongs to the stdio transport.
	LogOutput io.Writer

	// Directory holding config.yaml
	ConfigPath string

	// Transport overrides server.transport from the file and environment
	// when set.
	Transport string

	// Version is announced to MCP clients.
	Version string

	// Loaded configuration. When set before NewApplication, loading is skipped.
	WordPressConfig *config.Config
}

// NewConfig creates a new application configuration
func NewConfig(level logging.LogLevel, format logging.Format, configPath string) *Config {
	return &Config{
		LogLevel:   level,
		LogFormat:  format,
		ConfigPath: configPath,
		Version:    "dev",
	}
}
