package app

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giantswarm/mcp-wordpress/internal/capability"
	"github.com/giantswarm/mcp-wordpress/internal/config"
	"github.com/giantswarm/mcp-wordpress/internal/server"
	"github.com/giantswarm/mcp-wordpress/internal/wordpress/wptest"
	"github.com/giantswarm/mcp-wordpress/pkg/logging"
)

// clearEnv makes sure the developer's environment does not leak into tests.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{config.EnvURL, config.EnvUsername, config.EnvPassword, config.EnvToken, config.EnvTransport} {
		t.Setenv(name, "")
	}
}

func siteConfig(t *testing.T) *config.Config {
	t.Helper()
	site := wptest.NewServer()
	t.Cleanup(site.Close)

	cfg := config.GetDefaultConfig()
	cfg.Backend.URL = site.URL
	return &cfg
}

func TestLoadConfig(t *testing.T) {
	clearEnv(t)

	t.Run("preset configuration with transport override", func(t *testing.T) {
		cfg := NewConfig(logging.LevelInfo, logging.FormatText, "")
		cfg.WordPressConfig = siteConfig(t)
		cfg.Transport = config.MCPTransportSSE

		loaded, err := LoadConfig(cfg)
		require.NoError(t, err)
		assert.Equal(t, config.MCPTransportSSE, loaded.Server.Transport)
		// The preset is not modified.
		assert.Equal(t, config.MCPTransportStdio, cfg.WordPressConfig.Server.Transport)
	})

	t.Run("from directory", func(t *testing.T) {
		dir := t.TempDir()
		yaml := "server:\n  transport: streamable-http\n  port: 9000\nbackend:\n  url: https://blog.example.com\n  timeout: 15s\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))

		loaded, err := LoadConfig(NewConfig(logging.LevelInfo, logging.FormatText, dir))
		require.NoError(t, err)
		assert.Equal(t, config.MCPTransportStreamableHTTP, loaded.Server.Transport)
		assert.Equal(t, 9000, loaded.Server.Port)
		assert.Equal(t, "https://blog.example.com", loaded.Backend.URL)
		assert.Equal(t, 15*time.Second, loaded.Backend.Timeout)
	})

	t.Run("invalid transport override", func(t *testing.T) {
		cfg := NewConfig(logging.LevelInfo, logging.FormatText, "")
		cfg.WordPressConfig = siteConfig(t)
		cfg.Transport = "websocket"

		_, err := LoadConfig(cfg)
		require.Error(t, err)
		assert.True(t, config.IsConfigurationError(err))
		assert.Contains(t, err.Error(), "server.transport")
	})

	t.Run("malformed file", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server: [unclosed"), 0o600))

		_, err := LoadConfig(NewConfig(logging.LevelInfo, logging.FormatText, dir))
		require.Error(t, err)
		assert.True(t, config.IsConfigurationError(err))
	})

	t.Run("no path and no preset", func(t *testing.T) {
		_, err := LoadConfig(NewConfig(logging.LevelInfo, logging.FormatText, ""))
		assert.Error(t, err)
	})
}

func TestNewApplication(t *testing.T) {
	clearEnv(t)

	var logs bytes.Buffer
	cfg := NewConfig(logging.LevelDebug, logging.FormatJSON, "")
	cfg.LogOutput = &logs
	cfg.Version = "1.2.3"
	cfg.WordPressConfig = siteConfig(t)

	application, err := NewApplication(cfg)
	require.NoError(t, err)

	services := application.Services()
	require.NotNil(t, services)
	assert.Equal(t, 6, services.Registry.Len())
	assert.Equal(t, "stdio", services.Server.GetEndpoint())
	assert.Contains(t, logs.String(), `"subsystem":"Services"`)
}

func TestNewApplication_InvalidConfig(t *testing.T) {
	clearEnv(t)

	cfg := NewConfig(logging.LevelInfo, logging.FormatText, "")
	cfg.LogOutput = io.Discard
	wpCfg := config.GetDefaultConfig()
	wpCfg.Backend.URL = "ftp://example.com"
	cfg.WordPressConfig = &wpCfg

	_, err := NewApplication(cfg)
	require.Error(t, err)
	assert.True(t, config.IsConfigurationError(err))
}

func TestInitializeServices(t *testing.T) {
	logging.Init(logging.LevelError, logging.FormatText, io.Discard)

	t.Run("requires loaded configuration", func(t *testing.T) {
		_, err := InitializeServices(&Config{})
		assert.Error(t, err)
	})

	t.Run("wires dispatcher to the backend", func(t *testing.T) {
		cfg := &Config{Version: "test", WordPressConfig: siteConfig(t)}
		services, err := InitializeServices(cfg)
		require.NoError(t, err)

		assert.Equal(t, cfg.WordPressConfig.Backend.URL, services.Backend.BaseURL())
		res := services.Dispatcher.CallTool(context.Background(), "create-post", map[string]interface{}{
			"title": "Wired", "content": "Body",
		})
		require.False(t, res.IsError(), "unexpected failure: %v", res.Err)
		assert.True(t, strings.HasPrefix(capability.Format(res), "Post created successfully! ID: 1"))
	})

	t.Run("http transport gets metrics", func(t *testing.T) {
		wpCfg := siteConfig(t)
		wpCfg.Server.Transport = config.MCPTransportStreamableHTTP
		wpCfg.Server.Host = "127.0.0.1"
		wpCfg.Server.Port = 0

		services, err := InitializeServices(&Config{WordPressConfig: wpCfg})
		require.NoError(t, err)
		require.NoError(t, services.Server.Start(context.Background()))
		defer services.Server.Stop(context.Background())

		assert.True(t, strings.HasSuffix(services.Server.GetEndpoint(), "/mcp"))
	})
}

func TestBackendConfig(t *testing.T) {
	got := BackendConfig(config.BackendConfig{
		URL:       "https://blog.example.com",
		Username:  "admin",
		Password:  "app-password",
		Token:     "tok",
		Timeout:   time.Minute,
		UserAgent: "agent",
	})
	assert.Equal(t, "https://blog.example.com", got.URL)
	assert.Equal(t, "admin", got.Username)
	assert.Equal(t, "app-password", got.Password)
	assert.Equal(t, "tok", got.Token)
	assert.Equal(t, time.Minute, got.Timeout)
	assert.Equal(t, "agent", got.UserAgent)
}

// stdioServices builds services whose stdio transport reads from in.
func stdioServices(t *testing.T, in io.Reader) *Services {
	t.Helper()
	services, err := InitializeServices(&Config{WordPressConfig: siteConfig(t)})
	require.NoError(t, err)
	services.Server = server.New(services.Config.Server, services.Dispatcher, server.WithStdio(in, io.Discard))
	return services
}

func TestRunServe(t *testing.T) {
	logging.Init(logging.LevelError, logging.FormatText, io.Discard)

	t.Run("returns when input ends", func(t *testing.T) {
		services := stdioServices(t, strings.NewReader(""))

		done := make(chan error, 1)
		go func() { done <- runServe(context.Background(), services) }()

		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("runServe did not return at end of input")
		}
	})

	t.Run("returns on cancellation", func(t *testing.T) {
		in, w := io.Pipe()
		defer w.Close()
		services := stdioServices(t, in)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- runServe(ctx, services) }()

		time.Sleep(50 * time.Millisecond)
		cancel()

		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("runServe did not return after cancellation")
		}
	})

	t.Run("start failure", func(t *testing.T) {
		services := stdioServices(t, strings.NewReader(""))
		services.Server = server.New(config.ServerConfig{Transport: "bogus"}, services.Dispatcher)
		assert.Error(t, runServe(context.Background(), services))
	})
}
