// Package logging provides subsystem-tagged, leveled logging for
// mcp-wordpress on top of Go's standard slog package.
//
// # Log Levels
//   - **Debug**: argument bindings, backend request lines, resolver decisions
//   - **Info**: startup, transport selection, completed invocations
//   - **Warn**: invocations that ended in a Failure result
//   - **Error**: startup failures and transport errors
//
// Every entry carries a "subsystem" attribute and, for errors, an "error"
// attribute.
//
// # Usage
//
//	logging.Init(logging.LevelInfo, logging.FormatText, os.Stderr)
//
//	logging.Info("Bootstrap", "Registered %d capabilities", n)
//	logging.Debug("Dispatcher", "Invoking %s %s", kind, target)
//	logging.Error("Server", err, "Streamable HTTP server error")
//
// # Output
//
// The stdio MCP transport speaks JSON-RPC on stdout, so logs always go to
// stderr unless a different writer is passed to Init. FormatJSON selects
// slog's JSON handler for log shipping; FormatText is the default.
//
// # Subsystems
//
//   - **Bootstrap**: application initialization
//   - **Config**: configuration loading and validation
//   - **Registry**: capability registration
//   - **Dispatcher**: capability invocation
//   - **WordPress**: backend REST client
//   - **Server**: MCP transports and HTTP endpoints
package logging
