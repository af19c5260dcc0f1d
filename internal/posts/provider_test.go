package posts

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giantswarm/mcp-wordpress/internal/capability"
	"github.com/giantswarm/mcp-wordpress/internal/wordpress"
	"github.com/giantswarm/mcp-wordpress/internal/wordpress/wptest"
)

// newTestDispatcher wires a provider against backend into a dispatcher.
func newTestDispatcher(t *testing.T, backend Backend) *capability.Dispatcher {
	t.Helper()
	p, err := NewProvider(backend)
	require.NoError(t, err)

	b := capability.NewBuilder()
	require.NoError(t, p.Register(b))
	return capability.NewDispatcher(b.Build())
}

func newFakeSite(t *testing.T) (*wptest.Server, *capability.Dispatcher) {
	t.Helper()
	srv := wptest.NewServer()
	t.Cleanup(srv.Close)

	client, err := wordpress.NewClient(srv.Config())
	require.NoError(t, err)
	return srv, newTestDispatcher(t, client)
}

func TestProvider_Register(t *testing.T) {
	p, err := NewProvider(nil)
	require.NoError(t, err)

	b := capability.NewBuilder()
	require.NoError(t, p.Register(b))
	reg := b.Build()

	assert.Len(t, reg.List(capability.KindTool), 2)
	assert.Len(t, reg.List(capability.KindResource), 2)
	assert.Len(t, reg.List(capability.KindPrompt), 2)

	create, err := reg.Lookup(capability.KindTool, ToolCreatePost)
	require.NoError(t, err)
	assert.False(t, create.Idempotent)
	assert.False(t, create.Destructive)

	del, err := reg.Lookup(capability.KindTool, ToolDeletePost)
	require.NoError(t, err)
	assert.True(t, del.Destructive)

	t.Run("registering twice is a duplicate", func(t *testing.T) {
		b := capability.NewBuilder()
		require.NoError(t, p.Register(b))
		err := p.Register(b)
		require.Error(t, err)
		assert.True(t, capability.IsDuplicateCapability(err))
	})
}

func TestProvider_PromptTemplatesReadDeclaredParameters(t *testing.T) {
	p, err := NewProvider(nil)
	require.NoError(t, err)

	for _, d := range p.Descriptors() {
		if d.Kind != capability.KindPrompt {
			continue
		}
		assert.NoError(t, p.checkPromptVariables(d), d.Name)
	}

	bad := capability.Descriptor{Kind: capability.KindPrompt, Name: PromptCreateNewPost}
	err = p.checkPromptVariables(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "undeclared parameter")
}

// Scenario: create with status omitted; backend assigns id 42.
func TestCreatePost_DefaultStatus(t *testing.T) {
	srv, d := newFakeSite(t)
	srv.SetNextID(42)

	res := d.CallTool(context.Background(), ToolCreatePost, map[string]interface{}{
		"title":   "Hello",
		"content": "<p>World</p>",
	})
	require.False(t, res.IsError(), "unexpected failure: %v", res.Err)

	text := capability.Format(res)
	assert.Equal(t, "Post created successfully! ID: 42, Title: Hello, Status: draft, Link: "+srv.URL+"/?p=42", text)
	assert.Contains(t, text, "ID: 42")
	assert.Contains(t, text, "Status: draft")
}

// Creation is not idempotent: identical arguments produce distinct posts.
func TestCreatePost_NotIdempotent(t *testing.T) {
	_, d := newFakeSite(t)
	args := map[string]interface{}{"title": "Same", "content": "Same", "status": "publish"}

	first := d.CallTool(context.Background(), ToolCreatePost, args)
	second := d.CallTool(context.Background(), ToolCreatePost, args)
	require.False(t, first.IsError())
	require.False(t, second.IsError())

	firstID, _ := first.Payload.(capability.Record).Get("ID")
	secondID, _ := second.Payload.(capability.Record).Get("ID")
	assert.NotEmpty(t, firstID)
	assert.NotEqual(t, firstID, secondID)
}

// A post created by the tool reads back with the same title and status.
func TestCreateThenReadByID(t *testing.T) {
	_, d := newFakeSite(t)
	ctx := context.Background()

	for _, status := range wordpress.Statuses {
		t.Run(status, func(t *testing.T) {
			created := d.CallTool(ctx, ToolCreatePost, map[string]interface{}{
				"title": "Round " + status, "content": "<p>trip</p>", "status": status,
			})
			require.False(t, created.IsError(), "unexpected failure: %v", created.Err)
			id, ok := created.Payload.(capability.Record).Get("ID")
			require.True(t, ok)

			read := d.ReadResource(ctx, "post://by-id/"+id)
			require.False(t, read.IsError(), "unexpected failure: %v", read.Err)

			rec := read.Payload.(capability.Record)
			title, _ := rec.Get("Title")
			gotStatus, _ := rec.Get("Status")
			assert.Equal(t, "Round "+status, title)
			assert.Equal(t, status, gotStatus)
		})
	}
}

func TestDeletePost(t *testing.T) {
	ctx := context.Background()

	t.Run("moved to trash", func(t *testing.T) {
		srv, d := newFakeSite(t)
		srv.AddPost(wordpress.Post{ID: 42, Title: wordpress.Rendered{Rendered: "Old"}, Status: "publish"})

		res := d.CallTool(ctx, ToolDeletePost, map[string]interface{}{"post_id": 42, "force": false})
		require.False(t, res.IsError(), "unexpected failure: %v", res.Err)
		assert.Equal(t, "Post 42 moved to trash successfully!", capability.Format(res))
		assert.NotContains(t, capability.Format(res), "permanently deleted")
		assert.Equal(t, "force=false", srv.LastRequest().Query)
	})

	t.Run("force defaults to false", func(t *testing.T) {
		srv, d := newFakeSite(t)
		srv.AddPost(wordpress.Post{ID: 42, Title: wordpress.Rendered{Rendered: "Old"}, Status: "publish"})

		res := d.CallTool(ctx, ToolDeletePost, map[string]interface{}{"post_id": "42"})
		require.False(t, res.IsError(), "unexpected failure: %v", res.Err)
		assert.Contains(t, capability.Format(res), "moved to trash")
	})

	t.Run("permanently deleted", func(t *testing.T) {
		srv, d := newFakeSite(t)
		srv.AddPost(wordpress.Post{ID: 42, Title: wordpress.Rendered{Rendered: "Old"}, Status: "publish"})

		res := d.CallTool(ctx, ToolDeletePost, map[string]interface{}{"post_id": 42, "force": true})
		require.False(t, res.IsError(), "unexpected failure: %v", res.Err)
		assert.Equal(t, "Post 42 permanently deleted successfully!", capability.Format(res))
		_, exists := srv.Post(42)
		assert.False(t, exists)
	})

	t.Run("unknown post", func(t *testing.T) {
		_, d := newFakeSite(t)
		res := d.CallTool(ctx, ToolDeletePost, map[string]interface{}{"post_id": 7})
		require.True(t, res.IsError())
		assert.True(t, wordpress.IsNotFound(res.Err))
		assert.True(t, strings.HasPrefix(capability.Format(res), "Error: failed to delete post 7"))
	})
}

func TestReadBySlug(t *testing.T) {
	ctx := context.Background()

	t.Run("detail block", func(t *testing.T) {
		srv, d := newFakeSite(t)
		srv.AddPost(wordpress.Post{
			ID:       5,
			Title:    wordpress.Rendered{Rendered: "Hello World"},
			Content:  wordpress.Rendered{Rendered: "<p>Body</p>"},
			Status:   "publish",
			Slug:     "hello-world",
			Date:     "2024-01-01T10:00:00",
			Modified: "2024-01-02T11:30:00",
			Link:     "https://blog.example.com/hello-world/",
		})

		res := d.ReadResource(ctx, "post://by-slug/hello-world")
		require.False(t, res.IsError(), "unexpected failure: %v", res.Err)
		want := "Post ID: 5\n" +
			"Title: Hello World\n" +
			"Status: publish\n" +
			"Date: 2024-01-01T10:00:00\n" +
			"Modified: 2024-01-02T11:30:00\n" +
			"Slug: hello-world\n" +
			"Link: https://blog.example.com/hello-world/\n" +
			"\n" +
			"Content:\n" +
			"<p>Body</p>"
		assert.Equal(t, want, capability.Format(res))
	})

	t.Run("first match wins", func(t *testing.T) {
		srv, d := newFakeSite(t)
		srv.AddPost(wordpress.Post{Title: wordpress.Rendered{Rendered: "One"}, Slug: "dup", Status: "publish"})
		srv.AddPost(wordpress.Post{Title: wordpress.Rendered{Rendered: "Two"}, Slug: "dup", Status: "publish"})

		res := d.ReadResource(ctx, "post://by-slug/dup")
		require.False(t, res.IsError())
		title, _ := res.Payload.(capability.Record).Get("Title")
		assert.Equal(t, "One", title)
	})

	// Scenario: zero matches is a distinct message and not a failure.
	t.Run("not found", func(t *testing.T) {
		_, d := newFakeSite(t)
		res := d.ReadResource(ctx, "post://by-slug/nonexistent-slug")
		require.False(t, res.IsError())
		assert.Equal(t, "No post found with slug: nonexistent-slug", capability.Format(res))
		assert.False(t, strings.HasPrefix(capability.Format(res), capability.ErrorMarker))
	})
}

func TestReadByID_Errors(t *testing.T) {
	ctx := context.Background()
	_, d := newFakeSite(t)

	t.Run("missing post", func(t *testing.T) {
		res := d.ReadResource(ctx, "post://by-id/404")
		require.True(t, res.IsError())
		assert.Contains(t, capability.Format(res), "rest_post_invalid_id")
	})

	t.Run("non-numeric id", func(t *testing.T) {
		res := d.ReadResource(ctx, "post://by-id/latest")
		require.True(t, res.IsError())
		assert.True(t, capability.IsInvalidArgument(res.Err))
	})
}

// Scenario: a transport failure renders with the error marker and keeps the
// underlying description.
func TestTransportFailure(t *testing.T) {
	closed := httptest.NewServer(http.NotFoundHandler())
	baseURL := closed.URL
	closed.Close()

	client, err := wordpress.NewClient(wordpress.Config{URL: baseURL})
	require.NoError(t, err)
	d := newTestDispatcher(t, client)
	ctx := context.Background()

	calls := []capability.Result{
		d.CallTool(ctx, ToolCreatePost, map[string]interface{}{"title": "t", "content": "c"}),
		d.CallTool(ctx, ToolDeletePost, map[string]interface{}{"post_id": 1}),
		d.ReadResource(ctx, "post://by-id/1"),
		d.ReadResource(ctx, "post://by-slug/x"),
	}
	for i, res := range calls {
		require.True(t, res.IsError(), "call %d", i)
		assert.True(t, wordpress.IsTransportError(res.Err))
		text := capability.Format(res)
		assert.True(t, strings.HasPrefix(text, capability.ErrorMarker), text)
		assert.Contains(t, text, "connection refused")
	}
}

func TestPrompts(t *testing.T) {
	// Prompts never call the backend.
	d := newTestDispatcher(t, panicBackend{})
	ctx := context.Background()

	t.Run("create-new-post defaults", func(t *testing.T) {
		res := d.GetPrompt(ctx, PromptCreateNewPost, map[string]string{"topic": "Go concurrency"})
		require.False(t, res.IsError(), "unexpected failure: %v", res.Err)
		text := capability.Format(res)
		assert.True(t, strings.HasPrefix(text, "# Create WordPress Post: Go concurrency\n"))
		assert.Contains(t, text, "# Create WordPress Post: Go concurrency\n\nPlease create a WordPress post with the following specifications:\n")
		assert.Contains(t, text, "- **Post Type**: blog")
		assert.Contains(t, text, "- **Target Audience**: general")
		assert.Contains(t, text, "Use the create-post tool")
	})

	t.Run("create-new-post explicit", func(t *testing.T) {
		res := d.GetPrompt(ctx, PromptCreateNewPost, map[string]string{
			"topic": "Go", "post_type": "tutorial", "target_audience": "beginner",
		})
		require.False(t, res.IsError())
		text := capability.Format(res)
		assert.Contains(t, text, "- **Post Type**: tutorial")
		assert.Contains(t, text, "- **Target Audience**: beginner")
	})

	t.Run("create-new-post without topic", func(t *testing.T) {
		res := d.GetPrompt(ctx, PromptCreateNewPost, nil)
		require.True(t, res.IsError())
		assert.True(t, capability.IsInvalidArgument(res.Err))
	})

	t.Run("rewrite-post", func(t *testing.T) {
		res := d.GetPrompt(ctx, PromptRewritePost, map[string]string{"post_id": "42", "tone": "Casual"})
		require.False(t, res.IsError(), "unexpected failure: %v", res.Err)
		text := capability.Format(res)
		assert.True(t, strings.HasPrefix(text, "# Rewrite WordPress Post 42\n"))
		assert.Contains(t, text, "in a casual tone")
		assert.Contains(t, text, "post://by-id/42")
	})

	t.Run("rewrite-post default tone", func(t *testing.T) {
		res := d.GetPrompt(ctx, PromptRewritePost, map[string]string{"post_id": "7"})
		require.False(t, res.IsError())
		assert.Contains(t, capability.Format(res), "in a professional tone")
	})
}

type panicBackend struct{}

func (panicBackend) CreatePost(context.Context, string, string, string) (*wordpress.Post, error) {
	panic("backend must not be called")
}

func (panicBackend) DeletePost(context.Context, int64, bool) (*wordpress.DeleteResult, error) {
	panic("backend must not be called")
}

func (panicBackend) GetPost(context.Context, int64) (*wordpress.Post, error) {
	panic("backend must not be called")
}

func (panicBackend) GetPostsBySlug(context.Context, string) ([]wordpress.Post, error) {
	panic("backend must not be called")
}

// A panicking backend is contained by the dispatcher.
func TestPanickingBackend(t *testing.T) {
	d := newTestDispatcher(t, panicBackend{})
	res := d.ReadResource(context.Background(), "post://by-id/1")
	require.True(t, res.IsError())
	var pe *capability.PanicError
	assert.True(t, errors.As(res.Err, &pe))
	assert.True(t, strings.HasPrefix(capability.Format(res), capability.ErrorMarker))
}
