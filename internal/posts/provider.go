package posts

import (
	"context"
	"fmt"

	"github.com/giantswarm/mcp-wordpress/internal/capability"
	"github.com/giantswarm/mcp-wordpress/internal/template"
	"github.com/giantswarm/mcp-wordpress/internal/wordpress"
)

// Capability identifiers.
const (
	ToolCreatePost = "create-post"
	ToolDeletePost = "delete-post"

	ResourcePostByID   = "post://by-id/{post_id}"
	ResourcePostBySlug = "post://by-slug/{slug}"

	PromptCreateNewPost = "create-new-post"
	PromptRewritePost   = "rewrite-post"
)

// Backend is the part of the WordPress client the handlers use.
type Backend interface {
	CreatePost(ctx context.Context, title, content, status string) (*wordpress.Post, error)
	DeletePost(ctx context.Context, id int64, force bool) (*wordpress.DeleteResult, error)
	GetPost(ctx context.Context, id int64) (*wordpress.Post, error)
	GetPostsBySlug(ctx context.Context, slug string) ([]wordpress.Post, error)
}

// Provider owns the post capabilities and the backend they call.
type Provider struct {
	backend Backend
	prompts map[string]*template.Template
}

// NewProvider parses the prompt templates and returns a provider bound to
// backend.
func NewProvider(backend Backend) (*Provider, error) {
	engine := template.New()
	p := &Provider{
		backend: backend,
		prompts: make(map[string]*template.Template, len(promptSources)),
	}
	for name, source := range promptSources {
		tmpl, err := engine.Parse(name, source)
		if err != nil {
			return nil, err
		}
		p.prompts[name] = tmpl
	}
	return p, nil
}

// Descriptors returns every post capability in registration order.
func (p *Provider) Descriptors() []capability.Descriptor {
	return []capability.Descriptor{
		{
			Kind:        capability.KindTool,
			Name:        ToolCreatePost,
			Title:       "Create post",
			Description: "Create a new WordPress post. Each call creates a new post, even with identical arguments.",
			Parameters: []capability.Parameter{
				{Name: "title", Type: capability.TypeString, Required: true, Description: "The title of the post"},
				{Name: "content", Type: capability.TypeString, Required: true, Description: "The content of the post (HTML allowed)"},
				{
					Name:        "status",
					Type:        capability.TypeString,
					Default:     wordpress.StatusDraft,
					Enum:        wordpress.Statuses,
					Description: "Post status (draft, publish, pending, private). Default is 'draft'",
				},
			},
			Handler: p.createPost,
		},
		{
			Kind:        capability.KindTool,
			Name:        ToolDeletePost,
			Title:       "Delete post",
			Description: "Delete a WordPress post by ID. Moves it to the trash unless force is set.",
			Parameters: []capability.Parameter{
				{Name: "post_id", Type: capability.TypeInteger, Required: true, Description: "The ID of the post to delete"},
				{Name: "force", Type: capability.TypeBoolean, Default: false, Description: "Whether to bypass trash and force deletion. Default is false (moves to trash)"},
			},
			Destructive: true,
			Handler:     p.deletePost,
		},
		{
			Kind:        capability.KindResource,
			Name:        ResourcePostByID,
			Title:       "Post by ID",
			Description: "Get a WordPress post by its ID",
			Parameters: []capability.Parameter{
				{Name: "post_id", Type: capability.TypeInteger, Description: "The ID of the post to retrieve"},
			},
			Handler: p.getPostByID,
		},
		{
			Kind:        capability.KindResource,
			Name:        ResourcePostBySlug,
			Title:       "Post by slug",
			Description: "Get a WordPress post by its slug",
			Parameters: []capability.Parameter{
				{Name: "slug", Type: capability.TypeString, Description: "The slug of the post to retrieve"},
			},
			Handler: p.getPostBySlug,
		},
		{
			Kind:        capability.KindPrompt,
			Name:        PromptCreateNewPost,
			Title:       "Create new post",
			Description: "Generate a complete WordPress post about a specific topic",
			Parameters: []capability.Parameter{
				{Name: "topic", Type: capability.TypeString, Required: true, Description: "The main topic or subject for the post"},
				{Name: "post_type", Type: capability.TypeString, Default: "blog", Description: "Type of post (blog, tutorial, news, review, announcement)"},
				{Name: "target_audience", Type: capability.TypeString, Default: "general", Description: "Target audience (general, technical, beginner, professional)"},
			},
			Handler: p.renderPrompt(PromptCreateNewPost),
		},
		{
			Kind:        capability.KindPrompt,
			Name:        PromptRewritePost,
			Title:       "Rewrite post",
			Description: "Rewrite an existing WordPress post in a different tone as a new draft",
			Parameters: []capability.Parameter{
				{Name: "post_id", Type: capability.TypeInteger, Required: true, Description: "The ID of the post to rewrite"},
				{Name: "tone", Type: capability.TypeString, Default: "professional", Description: "Tone of the rewrite (professional, casual, friendly, technical)"},
			},
			Handler: p.renderPrompt(PromptRewritePost),
		},
	}
}

// Register adds every post capability to b. Prompt templates may only read
// declared parameters and promptContext keys; anything else is a
// registration error.
func (p *Provider) Register(b *capability.Builder) error {
	for _, d := range p.Descriptors() {
		if d.Kind == capability.KindPrompt {
			if err := p.checkPromptVariables(d); err != nil {
				return err
			}
		}
		if err := b.Register(d); err != nil {
			return fmt.Errorf("failed to register %s %s: %w", d.Kind, d.Name, err)
		}
	}
	return nil
}

func (p *Provider) checkPromptVariables(d capability.Descriptor) error {
	tmpl, ok := p.prompts[d.Name]
	if !ok {
		return fmt.Errorf("prompt %q has no template", d.Name)
	}
	for _, v := range tmpl.Variables() {
		if _, shared := promptContext[v]; shared {
			continue
		}
		if _, ok := d.Parameter(v); !ok {
			return fmt.Errorf("prompt %q: template reads undeclared parameter %q", d.Name, v)
		}
	}
	return nil
}
