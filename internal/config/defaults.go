package config

const (
	// DefaultPort is the default port of the HTTP transports.
	DefaultPort = 8090

	// DefaultBackendURL is a placeholder; serving requires a real site.
	DefaultBackendURL = "https://your-wordpress-site.com"

	// DefaultUserAgent is sent with every backend request.
	DefaultUserAgent = "mcp-wordpress"
)

// GetDefaultConfig returns default configuration
func GetDefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Transport: MCPTransportStdio,
			Host:      "localhost",
			Port:      DefaultPort,
			Metrics:   true,
		},
		Backend: BackendConfig{
			URL:       DefaultBackendURL,
			UserAgent: DefaultUserAgent,
		},
	}
}
