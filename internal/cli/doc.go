// Package cli provides the presentation layer of the one-shot commands.
//
// Executor runs a single capability invocation, either directly against the
// dispatcher or through an in-process MCP client (ExecutorOptions.ViaMCP),
// and prints the rendered text envelope. A spinner is shown on stderr while
// waiting unless Quiet is set. A Failure result is returned as
// *InvocationFailedError so commands can map it to a dedicated exit code.
//
// CapabilityPrinter lists registered capabilities as a go-pretty table, JSON
// or YAML. ParseArgs turns repeated --arg key=value flags into the raw
// argument map the dispatcher validates.
package cli
