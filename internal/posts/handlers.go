package posts

import (
	"context"
	"fmt"

	"github.com/giantswarm/mcp-wordpress/internal/capability"
	"github.com/giantswarm/mcp-wordpress/internal/template"
	"github.com/giantswarm/mcp-wordpress/pkg/logging"
)

func (p *Provider) createPost(ctx context.Context, args capability.Args) (capability.Payload, error) {
	post, err := p.backend.CreatePost(ctx, args.String("title"), args.String("content"), args.String("status"))
	if err != nil {
		return nil, err
	}
	logging.Debug("Posts", "[%s] Created post %d", capability.InvocationID(ctx), post.ID)
	return createdRecord(post), nil
}

func (p *Provider) deletePost(ctx context.Context, args capability.Args) (capability.Payload, error) {
	id := args.Int("post_id")
	force := args.Bool("force")

	if _, err := p.backend.DeletePost(ctx, id, force); err != nil {
		return nil, err
	}
	if force {
		return capability.Text(fmt.Sprintf("Post %d permanently deleted successfully!", id)), nil
	}
	return capability.Text(fmt.Sprintf("Post %d moved to trash successfully!", id)), nil
}

func (p *Provider) getPostByID(ctx context.Context, args capability.Args) (capability.Payload, error) {
	post, err := p.backend.GetPost(ctx, args.Int("post_id"))
	if err != nil {
		return nil, err
	}
	return detailRecord(post), nil
}

func (p *Provider) getPostBySlug(ctx context.Context, args capability.Args) (capability.Payload, error) {
	slug := args.String("slug")
	posts, err := p.backend.GetPostsBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return capability.NotFound{Entity: "post", Key: "slug", Value: slug}, nil
	}
	if len(posts) > 1 {
		logging.Debug("Posts", "Slug %q matched %d posts, using the first", slug, len(posts))
	}
	return detailRecord(&posts[0]), nil
}

// renderPrompt returns a handler that renders the named prompt template.
// Defaults are already applied to args by the dispatcher.
func (p *Provider) renderPrompt(name string) capability.Handler {
	return func(ctx context.Context, args capability.Args) (capability.Payload, error) {
		tmpl, ok := p.prompts[name]
		if !ok {
			return nil, fmt.Errorf("prompt %q has no template", name)
		}
		text, err := tmpl.Execute(template.MergeContexts(promptContext, args.Map()))
		if err != nil {
			return nil, err
		}
		return capability.Text(text), nil
	}
}
