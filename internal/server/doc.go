// Package server exposes the capability registry over the Model Context
// Protocol.
//
// NewMCPServer translates every registered descriptor into its mcp-go
// counterpart: tools become mcp.Tool entries with a JSON schema built from
// the declared parameters, resources become resource templates and prompts
// become prompts with named arguments. All handlers route through the
// capability.Dispatcher and render with capability.Format, so the text an
// MCP client receives is identical to what the CLI prints.
//
// # Transports
//
// Server wraps the MCP server in one of three transports:
//
//   - stdio: JSON-RPC over the process's stdin and stdout
//   - sse: Server-Sent Events on /sse with messages posted to /message
//   - streamable-http: the streamable HTTP transport on /mcp
//
// Both HTTP transports are mounted on a chi router that also serves
// /healthz and, when a metrics collector is configured, /metrics.
//
// # Failures
//
// Tool failures are returned as tool results with IsError set. Resource and
// prompt failures are returned as regular content whose text starts with
// capability.ErrorMarker; protocol-level errors are reserved for requests
// mcp-go itself cannot route.
package server
