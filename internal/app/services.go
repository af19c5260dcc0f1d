package app

import (
	"fmt"

	"github.com/giantswarm/mcp-wordpress/internal/capability"
	"github.com/giantswarm/mcp-wordpress/internal/config"
	"github.com/giantswarm/mcp-wordpress/internal/metrics"
	"github.com/giantswarm/mcp-wordpress/internal/posts"
	"github.com/giantswarm/mcp-wordpress/internal/server"
	"github.com/giantswarm/mcp-wordpress/internal/wordpress"
	"github.com/giantswarm/mcp-wordpress/pkg/logging"
)

// Services holds every component wired at startup.
//
// Initialization order follows the dependencies:
//  1. WordPress client (backend)
//  2. Posts provider and the capability registry
//  3. Metrics collector, installed as the dispatcher's observer
//  4. Dispatcher and MCP transport server
type Services struct {
	Config     *config.Config
	Backend    *wordpress.Client
	Registry   *capability.Registry
	Dispatcher *capability.Dispatcher
	Metrics    *metrics.Collector
	Server     *server.Server
}

// InitializeServices creates and wires all components from a validated
// configuration.
func InitializeServices(cfg *Config) (*Services, error) {
	if cfg.WordPressConfig == nil {
		return nil, fmt.Errorf("logic error: configuration not loaded")
	}
	wpCfg := cfg.WordPressConfig

	backend, err := wordpress.NewClient(BackendConfig(wpCfg.Backend))
	if err != nil {
		return nil, fmt.Errorf("failed to create WordPress client: %w", err)
	}

	registry, err := BuildRegistry(backend)
	if err != nil {
		return nil, err
	}

	collector := metrics.NewWithRegistry(metrics.NewRegistry())
	collector.RecordRegistry(registry)
	dispatcher := capability.NewDispatcher(registry, capability.WithObserver(collector))

	opts := []server.Option{server.WithVersion(cfg.Version)}
	if wpCfg.Server.Metrics && wpCfg.Server.IsHTTP() {
		opts = append(opts, server.WithMetrics(collector))
	}

	logging.Info("Services", "Initialized %d capabilities against %s", registry.Len(), backend.BaseURL())

	return &Services{
		Config:     wpCfg,
		Backend:    backend,
		Registry:   registry,
		Dispatcher: dispatcher,
		Metrics:    collector,
		Server:     server.New(wpCfg.Server, dispatcher, opts...),
	}, nil
}

// BuildRegistry registers every post capability against backend.
func BuildRegistry(backend posts.Backend) (*capability.Registry, error) {
	provider, err := posts.NewProvider(backend)
	if err != nil {
		return nil, fmt.Errorf("failed to create posts provider: %w", err)
	}

	builder := capability.NewBuilder()
	if err := provider.Register(builder); err != nil {
		return nil, fmt.Errorf("failed to register post capabilities: %w", err)
	}
	return builder.Build(), nil
}

// BackendConfig converts the file configuration into client settings.
func BackendConfig(b config.BackendConfig) wordpress.Config {
	return wordpress.Config{
		URL:       b.URL,
		Username:  b.Username,
		Password:  b.Password,
		Token:     b.Token,
		Timeout:   b.Timeout,
		UserAgent: b.UserAgent,
	}
}
