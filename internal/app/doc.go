// Package app provides application bootstrap and lifecycle management for
// mcp-wordpress.
//
// # Bootstrap
//
// NewApplication configures logging, loads config.yaml from the configured
// directory (see internal/config for the layering of defaults, file and
// environment), validates it and wires the services:
//
//	wordpress.Client -> posts.Provider -> capability.Registry
//	                                  -> capability.Dispatcher (metrics observer)
//	                                  -> server.Server (MCP transport)
//
// Logging goes to stderr unless Config.LogOutput says otherwise, because
// the stdio transport owns stdout.
//
// # Serving
//
// Application.Run starts the configured transport and blocks until SIGINT,
// SIGTERM, context cancellation or the transport ending on its own, then
// shuts the server down gracefully.
//
// One-shot commands that do not serve (capabilities, call) use LoadConfig
// and InitializeServices directly and talk to the Dispatcher.
package app
