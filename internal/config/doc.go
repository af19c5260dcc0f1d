// Package config provides configuration management for mcp-wordpress.
//
// Configuration is loaded in layers, each one overriding the previous:
//
//  1. built-in defaults (GetDefaultConfig)
//  2. config.yaml in the configuration directory
//  3. environment variables (WORDPRESS_URL, WORDPRESS_USERNAME,
//     WORDPRESS_PASSWORD, WORDPRESS_TOKEN, MCP_WORDPRESS_TRANSPORT)
//  4. command line flags, applied by the cmd package
//
// The default configuration directory is ~/.config/mcp-wordpress; a missing
// config.yaml is not an error.
//
// # Configuration Structure
//
//	server:
//	  transport: stdio          # stdio, sse or streamable-http (default: stdio)
//	  host: localhost           # bind host for the HTTP transports
//	  port: 8090                # bind port for the HTTP transports
//	  metrics: true             # serve /metrics next to the MCP endpoint
//	backend:
//	  url: https://blog.example.com
//	  username: editor          # application password user (optional)
//	  password: "xxxx xxxx"     # application password (optional)
//	  token: ""                 # bearer token, used when no password is set
//	  timeout: 0s               # client-wide timeout, 0 disables it
//	  userAgent: mcp-wordpress
//
// # Usage Examples
//
//	cfg, err := config.LoadConfig(config.GetDefaultConfigPathOrPanic())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package config
