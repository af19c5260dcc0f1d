// Package capability implements the registration and dispatch layer that
// exposes backend operations as MCP tools, resources and prompts.
//
// # Components
//
//   - Builder / Registry: descriptors are registered once at startup and the
//     built Registry is immutable. Duplicate keys and colliding resource
//     templates are rejected at registration with DuplicateCapabilityError.
//   - Template: resource URI templates ("post://by-id/{post_id}") compiled
//     into structural matchers of literal segments and variable slots.
//   - Dispatcher: resolves a Request, validates and coerces arguments
//     against the declared Parameters, calls the handler once and converts
//     every outcome into a Result.
//   - Format: renders a Result into the text envelope; failures always start
//     with ErrorMarker.
//
// # Usage
//
//	b := capability.NewBuilder()
//	err := b.Register(capability.Descriptor{
//	    Kind: capability.KindTool,
//	    Name: "create-post",
//	    Parameters: []capability.Parameter{
//	        {Name: "title", Type: capability.TypeString, Required: true},
//	    },
//	    Handler: createPost,
//	})
//	registry := b.Build()
//
//	d := capability.NewDispatcher(registry)
//	text := capability.Format(d.CallTool(ctx, "create-post", args))
//
// # Concurrency
//
// The Registry is read-only after Build and the Dispatcher keeps no
// per-call state, so invocations may run in parallel without locking.
package capability
