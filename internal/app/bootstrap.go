package app

import (
	"context"
	"fmt"
	"os"

	"github.com/giantswarm/mcp-wordpress/internal/config"
	"github.com/giantswarm/mcp-wordpress/pkg/logging"
)

// Application bootstraps and runs the MCP server.
//
// Initialization happens in two phases:
//  1. Bootstrap: configure logging, load and validate configuration, wire services
//  2. Execution: serve MCP on the configured transport until cancelled
//
// Example usage:
//
//	cfg := app.NewConfig(logging.LevelInfo, logging.FormatText, configPath)
//	application, err := app.NewApplication(cfg)
//	if err != nil {
//	    return fmt.Errorf("failed to initialize application: %w", err)
//	}
//	return application.Run(ctx)
type Application struct {
	config   *Config
	services *Services
}

// NewApplication performs the bootstrap sequence. Configuration problems are
// returned as *config.ConfigurationError so callers can map them to a
// dedicated exit code.
func NewApplication(cfg *Config) (*Application, error) {
	output := cfg.LogOutput
	if output == nil {
		output = os.Stderr
	}
	logging.Init(cfg.LogLevel, cfg.LogFormat, output)

	wpCfg, err := LoadConfig(cfg)
	if err != nil {
		return nil, err
	}
	cfg.WordPressConfig = wpCfg

	services, err := InitializeServices(cfg)
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to initialize services")
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	return &Application{
		config:   cfg,
		services: services,
	}, nil
}

// LoadConfig returns cfg.WordPressConfig when already set, otherwise loads
// it from cfg.ConfigPath. The transport override is applied and the result
// validated either way.
func LoadConfig(cfg *Config) (*config.Config, error) {
	var wpCfg config.Config
	if cfg.WordPressConfig != nil {
		wpCfg = *cfg.WordPressConfig
	} else {
		if cfg.ConfigPath == "" {
			return nil, fmt.Errorf("logic error: empty ConfigPath")
		}
		loaded, err := config.LoadConfig(cfg.ConfigPath)
		if err != nil {
			logging.Error("Bootstrap", err, "Failed to load configuration from path: %s", cfg.ConfigPath)
			return nil, err
		}
		logging.Info("Bootstrap", "Loaded configuration from path: %s", cfg.ConfigPath)
		wpCfg = loaded
	}

	if cfg.Transport != "" {
		wpCfg.Server.Transport = cfg.Transport
	}

	if err := wpCfg.Validate(); err != nil {
		return nil, err
	}
	return &wpCfg, nil
}

// Services returns the wired services.
func (a *Application) Services() *Services {
	return a.services
}

// Run serves MCP until ctx is cancelled, a termination signal arrives or
// the transport stops on its own.
func (a *Application) Run(ctx context.Context) error {
	return runServe(ctx, a.services)
}
