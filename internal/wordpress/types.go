package wordpress

import (
	"bytes"
	"encoding/json"
	"time"
)

// Post statuses accepted by the create endpoint.
const (
	StatusDraft   = "draft"
	StatusPublish = "publish"
	StatusPending = "pending"
	StatusPrivate = "private"
)

// Statuses lists the statuses a post can be created with.
var Statuses = []string{StatusDraft, StatusPublish, StatusPending, StatusPrivate}

// Config holds the connection settings for a Client.
type Config struct {
	// URL is the site root, e.g. https://blog.example.com.
	URL      string
	Username string
	// Password is a WordPress application password.
	Password string
	// Token is sent as a bearer token when basic credentials are absent.
	Token     string
	Timeout   time.Duration
	UserAgent string
}

// HasBasicAuth reports whether both halves of the basic credential are set.
func (c Config) HasBasicAuth() bool {
	return c.Username != "" && c.Password != ""
}

// Rendered is a WordPress text field. The API returns these as objects
// ({"rendered": "...", "raw": "..."}); plain strings are accepted as well.
type Rendered struct {
	Rendered  string `json:"rendered"`
	Raw       string `json:"raw,omitempty"`
	Protected bool   `json:"protected,omitempty"`
}

func (r Rendered) String() string {
	return r.Rendered
}

// UnmarshalJSON accepts either the object form or a bare string.
func (r *Rendered) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = Rendered{Rendered: s}
		return nil
	}

	type plain Rendered
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = Rendered(p)
	return nil
}

// Post is a WordPress post as returned by the REST API.
type Post struct {
	ID       int64    `json:"id"`
	Title    Rendered `json:"title"`
	Content  Rendered `json:"content"`
	Status   string   `json:"status"`
	Slug     string   `json:"slug"`
	Date     string   `json:"date"`
	Modified string   `json:"modified"`
	Link     string   `json:"link"`
}

// DeleteResult describes the outcome of DeletePost.
type DeleteResult struct {
	ID int64
	// Deleted is true when the post was removed permanently and false when
	// it was moved to the trash.
	Deleted bool
	// Post is the trashed post, or the last version of a deleted one.
	Post *Post
}

// createPostRequest is the JSON body of POST /posts.
type createPostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Status  string `json:"status"`
}

// deleteResponse is the body of DELETE /posts/{id}?force=true. Without
// force the API returns the trashed post instead.
type deleteResponse struct {
	Deleted  *bool `json:"deleted"`
	Previous *Post `json:"previous"`
}

// apiError is the error body WordPress returns with non-2xx responses.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
