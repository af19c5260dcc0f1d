// Package posts defines the WordPress post capabilities: the create-post and
// delete-post tools, the post://by-id and post://by-slug resources, and the
// create-new-post and rewrite-post prompts.
//
// The Provider registers them into a capability.Builder. Handlers only see
// validated, typed arguments and a Backend; they return capability payloads
// and leave error rendering to the capability package.
//
// create-post is not idempotent: every call creates a new post with a new
// ID, and the tool is annotated accordingly for MCP clients.
package posts
