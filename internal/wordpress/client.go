package wordpress

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/giantswarm/mcp-wordpress/pkg/logging"
)

const (
	postsPath        = "/wp-json/wp/v2/posts"
	defaultUserAgent = "mcp-wordpress"
)

// Client talks to one WordPress site. It is safe for concurrent use.
type Client struct {
	baseURL    string
	username   string
	password   string
	userAgent  string
	httpClient *http.Client
}

// NewClient creates a client for the site described by cfg.
func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimSuffix(strings.TrimSpace(cfg.URL), "/")
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid WordPress URL %q: %w", cfg.URL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid WordPress URL %q: must be an absolute http(s) URL", cfg.URL)
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	return &Client{
		baseURL:    base,
		username:   cfg.Username,
		password:   cfg.Password,
		userAgent:  userAgent,
		httpClient: newHTTPClient(cfg),
	}, nil
}

// BaseURL returns the site root the client sends requests to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// CreatePost creates a post and returns it as stored by WordPress.
func (c *Client) CreatePost(ctx context.Context, title, content, status string) (*Post, error) {
	body := createPostRequest{Title: title, Content: content, Status: status}

	var post Post
	if err := c.do(ctx, "create post", http.MethodPost, postsPath, nil, body, &post); err != nil {
		return nil, err
	}
	logging.Info("WordPress", "Created post %d (%s)", post.ID, post.Status)
	return &post, nil
}

// DeletePost moves a post to the trash, or deletes it permanently when
// force is set.
func (c *Client) DeletePost(ctx context.Context, id int64, force bool) (*DeleteResult, error) {
	query := url.Values{}
	query.Set("force", strconv.FormatBool(force))

	var raw json.RawMessage
	op := fmt.Sprintf("delete post %d", id)
	if err := c.do(ctx, op, http.MethodDelete, postPath(id), query, nil, &raw); err != nil {
		return nil, err
	}

	result := &DeleteResult{ID: id}

	var resp deleteResponse
	if err := json.Unmarshal(raw, &resp); err == nil && resp.Deleted != nil {
		result.Deleted = *resp.Deleted
		result.Post = resp.Previous
	} else {
		var post Post
		if err := json.Unmarshal(raw, &post); err != nil {
			return nil, &TransportError{
				Op:     op,
				Method: http.MethodDelete,
				URL:    c.url(postPath(id), query),
				Err:    fmt.Errorf("failed to decode response: %w", err),
			}
		}
		result.Post = &post
	}

	logging.Info("WordPress", "Deleted post %d (permanent=%t)", id, result.Deleted)
	return result, nil
}

// GetPost fetches a single post by ID.
func (c *Client) GetPost(ctx context.Context, id int64) (*Post, error) {
	var post Post
	if err := c.do(ctx, fmt.Sprintf("get post %d", id), http.MethodGet, postPath(id), nil, nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// GetPostsBySlug returns the posts whose slug equals slug. An empty slice
// means no post matched.
func (c *Client) GetPostsBySlug(ctx context.Context, slug string) ([]Post, error) {
	query := url.Values{}
	query.Set("slug", slug)

	var posts []Post
	if err := c.do(ctx, "list posts by slug", http.MethodGet, postsPath, query, nil, &posts); err != nil {
		return nil, err
	}
	logging.Debug("WordPress", "Slug %q matched %d posts", slug, len(posts))
	return posts, nil
}

func postPath(id int64) string {
	return postsPath + "/" + strconv.FormatInt(id, 10)
}

func (c *Client) url(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// do sends one request and decodes a 2xx JSON response into out. Any
// failure is returned as a *TransportError.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body, out interface{}) error {
	target := c.url(path, query)
	fail := func(status int, err error) *TransportError {
		return &TransportError{Op: op, Method: method, URL: target, StatusCode: status, Err: err}
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fail(0, fmt.Errorf("failed to encode request: %w", err))
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fail(0, fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authorize(req)

	logging.Debug("WordPress", "%s %s", method, target)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fail(0, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fail(resp.StatusCode, fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logging.Debug("WordPress", "%s %s returned %d: %s", method, target, resp.StatusCode, string(data))
		te := fail(resp.StatusCode, nil)
		var apiErr apiError
		if json.Unmarshal(data, &apiErr) == nil {
			te.Code = apiErr.Code
			te.Message = apiErr.Message
		}
		return te
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fail(resp.StatusCode, fmt.Errorf("failed to decode response: %w", err))
	}
	return nil
}
