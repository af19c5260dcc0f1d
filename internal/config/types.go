package config

import "time"

// Config is the top-level configuration structure for mcp-wordpress.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Backend BackendConfig `yaml:"backend"`
}

const (
	// MCPTransportStreamableHTTP is the streamable HTTP transport.
	MCPTransportStreamableHTTP = "streamable-http"
	// MCPTransportSSE is the Server-Sent Events transport.
	MCPTransportSSE = "sse"
	// MCPTransportStdio is the standard I/O transport.
	MCPTransportStdio = "stdio"
)

// Transports lists the supported MCP transports.
var Transports = []string{MCPTransportStdio, MCPTransportSSE, MCPTransportStreamableHTTP}

// ServerConfig defines how the MCP server is exposed.
type ServerConfig struct {
	Transport string `yaml:"transport,omitempty"` // Transport to use (default: stdio)
	Host      string `yaml:"host,omitempty"`      // Host to bind to (default: localhost)
	Port      int    `yaml:"port,omitempty"`      // Port for the HTTP transports (default: 8090)
	Metrics   bool   `yaml:"metrics"`             // Serve Prometheus metrics on HTTP transports (default: true)
}

// IsHTTP reports whether the configured transport listens on a socket.
func (s ServerConfig) IsHTTP() bool {
	return s.Transport == MCPTransportSSE || s.Transport == MCPTransportStreamableHTTP
}

// BackendConfig defines the WordPress site the server talks to.
type BackendConfig struct {
	URL       string        `yaml:"url"`
	Username  string        `yaml:"username,omitempty"`
	Password  string        `yaml:"password,omitempty"` // application password
	Token     string        `yaml:"token,omitempty"`    // bearer token, used when no password is set
	Timeout   time.Duration `yaml:"timeout,omitempty"`  // 0 disables the client timeout
	UserAgent string        `yaml:"userAgent,omitempty"`
}
