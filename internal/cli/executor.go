package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/giantswarm/mcp-wordpress/internal/capability"
	"github.com/giantswarm/mcp-wordpress/internal/server"
)

// ExecutorOptions controls how invocations run and how output is shown.
type ExecutorOptions struct {
	// Quiet suppresses the spinner and failure banner
	Quiet bool
	// ViaMCP routes the invocation through an in-process MCP client instead
	// of calling the dispatcher directly
	ViaMCP bool
	// Version announced by the in-process MCP server
	Version string
	// Out receives the rendered result; defaults to stdout
	Out io.Writer
	// ErrOut receives progress and failure banners; defaults to stderr
	ErrOut io.Writer
}

// Executor runs single invocations for one-shot CLI commands.
type Executor struct {
	dispatcher *capability.Dispatcher
	options    ExecutorOptions
}

// NewExecutor creates an executor over dispatcher.
func NewExecutor(dispatcher *capability.Dispatcher, options ExecutorOptions) *Executor {
	if options.Out == nil {
		options.Out = os.Stdout
	}
	if options.ErrOut == nil {
		options.ErrOut = os.Stderr
	}
	return &Executor{dispatcher: dispatcher, options: options}
}

// Execute runs req, prints the rendered result and returns an
// *InvocationFailedError when the result is a Failure. Other errors mean
// the invocation could not be attempted.
func (e *Executor) Execute(ctx context.Context, req capability.Request) error {
	var s *spinner.Spinner
	if !e.options.Quiet {
		s = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(e.options.ErrOut))
		s.Suffix = fmt.Sprintf(" Running %s %s...", req.Kind, req.Target)
		s.Start()
	}

	var (
		rendered string
		failed   bool
		err      error
	)
	if e.options.ViaMCP {
		rendered, failed, err = e.viaMCP(ctx, req)
	} else {
		result := e.dispatcher.Invoke(ctx, req)
		rendered, failed = capability.Format(result), result.IsError()
	}

	if s != nil {
		s.Stop()
	}
	if err != nil {
		return fmt.Errorf("failed to invoke %s %s: %w", req.Kind, req.Target, err)
	}

	fmt.Fprintln(e.options.Out, rendered)

	if failed {
		if !e.options.Quiet {
			fmt.Fprintf(e.options.ErrOut, "%s\n", text.FgRed.Sprint("❌ Invocation failed"))
		}
		return &InvocationFailedError{Kind: req.Kind, Target: req.Target, Message: rendered}
	}
	return nil
}

// viaMCP runs req through the MCP protocol layer using an in-process
// client, returning the text a remote client would see.
func (e *Executor) viaMCP(ctx context.Context, req capability.Request) (string, bool, error) {
	c, err := client.NewInProcessClient(server.NewMCPServer(e.dispatcher, e.options.Version))
	if err != nil {
		return "", false, err
	}
	defer c.Close()

	if err := c.Start(ctx); err != nil {
		return "", false, fmt.Errorf("failed to start MCP client: %w", err)
	}

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{Name: server.ServerName + "-cli", Version: e.options.Version}
	if _, err := c.Initialize(ctx, initReq); err != nil {
		return "", false, fmt.Errorf("failed to initialize MCP session: %w", err)
	}

	switch req.Kind {
	case capability.KindTool:
		callReq := mcp.CallToolRequest{}
		callReq.Params.Name = req.Target
		callReq.Params.Arguments = req.Arguments
		res, err := c.CallTool(ctx, callReq)
		if err != nil {
			return "", false, err
		}
		return joinText(res.Content), res.IsError, nil

	case capability.KindResource:
		readReq := mcp.ReadResourceRequest{}
		readReq.Params.URI = req.Target
		res, err := c.ReadResource(ctx, readReq)
		if err != nil {
			return "", false, err
		}
		var parts []string
		for _, contents := range res.Contents {
			if tc, ok := contents.(mcp.TextResourceContents); ok {
				parts = append(parts, tc.Text)
			}
		}
		out := strings.Join(parts, "\n")
		return out, strings.HasPrefix(out, capability.ErrorMarker), nil

	case capability.KindPrompt:
		promptReq := mcp.GetPromptRequest{}
		promptReq.Params.Name = req.Target
		promptReq.Params.Arguments = StringArgs(req.Arguments)
		res, err := c.GetPrompt(ctx, promptReq)
		if err != nil {
			return "", false, err
		}
		var parts []string
		for _, msg := range res.Messages {
			parts = append(parts, joinText([]mcp.Content{msg.Content}))
		}
		out := strings.Join(parts, "\n")
		return out, strings.HasPrefix(out, capability.ErrorMarker), nil

	default:
		return "", false, fmt.Errorf("unknown capability kind %q", req.Kind)
	}
}

func joinText(contents []mcp.Content) string {
	var parts []string
	for _, content := range contents {
		if tc, ok := mcp.AsTextContent(content); ok {
			parts = append(parts, tc.Text)
		}
	}
	return strings.Join(parts, "\n")
}
