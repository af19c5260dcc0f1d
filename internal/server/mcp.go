package server

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/giantswarm/mcp-wordpress/internal/capability"
	"github.com/giantswarm/mcp-wordpress/pkg/logging"
)

// ServerName is the implementation name announced during initialization.
const ServerName = "mcp-wordpress"

const instructions = `This server manages posts on a WordPress site.
Use the create-post and delete-post tools to change content, read posts through
the post://by-id/{post_id} and post://by-slug/{slug} resources, and use the
create-new-post and rewrite-post prompts to draft content.`

// NewMCPServer creates an MCP server exposing every capability of the
// dispatcher's registry.
func NewMCPServer(dispatcher *capability.Dispatcher, version string) *server.MCPServer {
	mcpServer := server.NewMCPServer(
		ServerName,
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithPromptCapabilities(false),
		server.WithInstructions(instructions),
		server.WithRecovery(),
	)

	reg := dispatcher.Registry()
	for _, desc := range reg.List(capability.KindTool) {
		mcpServer.AddTool(toolFromDescriptor(desc), toolHandler(dispatcher, desc.Name))
	}
	for _, desc := range reg.List(capability.KindResource) {
		mcpServer.AddResourceTemplate(resourceTemplateFromDescriptor(desc), resourceHandler(dispatcher, desc))
	}
	for _, desc := range reg.List(capability.KindPrompt) {
		mcpServer.AddPrompt(promptFromDescriptor(desc), promptHandler(dispatcher, desc))
	}

	logging.Debug("MCPServer", "Registered %d capabilities with the MCP server", reg.Len())
	return mcpServer
}

// toolFromDescriptor converts a tool descriptor into an mcp.Tool.
func toolFromDescriptor(desc *capability.Descriptor) mcp.Tool {
	return mcp.Tool{
		Name:        desc.Name,
		Description: desc.Description,
		InputSchema: convertToMCPSchema(desc.Parameters),
		Annotations: mcp.ToolAnnotation{
			Title:           desc.Title,
			ReadOnlyHint:    mcp.ToBoolPtr(false),
			DestructiveHint: mcp.ToBoolPtr(desc.Destructive),
			IdempotentHint:  mcp.ToBoolPtr(desc.Idempotent),
			OpenWorldHint:   mcp.ToBoolPtr(true),
		},
	}
}

// convertToMCPSchema converts parameter declarations into an MCP input schema.
func convertToMCPSchema(params []capability.Parameter) mcp.ToolInputSchema {
	properties := make(map[string]interface{}, len(params))
	var required []string

	for _, param := range params {
		prop := map[string]interface{}{
			"type":        string(param.Type),
			"description": param.Description,
		}
		if param.Default != nil {
			prop["default"] = param.Default
		}
		if len(param.Enum) > 0 {
			enum := make([]interface{}, len(param.Enum))
			for i, v := range param.Enum {
				enum[i] = v
			}
			prop["enum"] = enum
		}
		properties[param.Name] = prop

		if param.Required {
			required = append(required, param.Name)
		}
	}

	return mcp.ToolInputSchema{
		Type:       "object",
		Properties: properties,
		Required:   required,
	}
}

func resourceTemplateFromDescriptor(desc *capability.Descriptor) mcp.ResourceTemplate {
	name := desc.Title
	if name == "" {
		name = desc.Name
	}
	return mcp.NewResourceTemplate(
		desc.Name,
		name,
		mcp.WithTemplateDescription(desc.Description),
		mcp.WithTemplateMIMEType(desc.MIMEType),
	)
}

func promptFromDescriptor(desc *capability.Descriptor) mcp.Prompt {
	opts := []mcp.PromptOption{mcp.WithPromptDescription(desc.Description)}
	for _, param := range desc.Parameters {
		argOpts := []mcp.ArgumentOption{mcp.ArgumentDescription(param.Description)}
		if param.Required {
			argOpts = append(argOpts, mcp.RequiredArgument())
		}
		opts = append(opts, mcp.WithArgument(param.Name, argOpts...))
	}
	return mcp.NewPrompt(desc.Name, opts...)
}

func toolHandler(dispatcher *capability.Dispatcher, name string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result := dispatcher.CallTool(ctx, name, request.GetArguments())
		text := capability.Format(result)
		if result.IsError() {
			return mcp.NewToolResultError(text), nil
		}
		return mcp.NewToolResultText(text), nil
	}
}

// resourceHandler ignores the bindings mcp-go extracted and resolves the
// URI through the registry, so routing rules live in one place.
func resourceHandler(dispatcher *capability.Dispatcher, desc *capability.Descriptor) server.ResourceTemplateHandlerFunc {
	return func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		uri := request.Params.URI
		result := dispatcher.ReadResource(ctx, uri)
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      uri,
				MIMEType: desc.MIMEType,
				Text:     capability.Format(result),
			},
		}, nil
	}
}

func promptHandler(dispatcher *capability.Dispatcher, desc *capability.Descriptor) server.PromptHandlerFunc {
	return func(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		result := dispatcher.GetPrompt(ctx, desc.Name, request.Params.Arguments)
		return mcp.NewGetPromptResult(
			desc.Description,
			[]mcp.PromptMessage{
				mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(capability.Format(result))),
			},
		), nil
	}
}
