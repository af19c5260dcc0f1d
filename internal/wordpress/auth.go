package wordpress

import (
	"net/http"

	"golang.org/x/oauth2"

	"github.com/giantswarm/mcp-wordpress/pkg/logging"
)

// newHTTPClient builds the HTTP client for cfg. Bearer tokens are attached
// by an oauth2 transport; basic credentials are set per request in
// authorize, and take precedence when both are configured.
func newHTTPClient(cfg Config) *http.Client {
	client := &http.Client{Timeout: cfg.Timeout}

	switch {
	case cfg.HasBasicAuth():
		logging.Debug("WordPress", "Using application password for user %s", cfg.Username)
	case cfg.Token != "":
		logging.Debug("WordPress", "Using bearer token authentication")
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token, TokenType: "Bearer"})
		client.Transport = &oauth2.Transport{Source: src, Base: http.DefaultTransport}
	default:
		logging.Debug("WordPress", "No credentials configured, requests are unauthenticated")
	}

	return client
}

// authorize applies basic credentials to req when they are configured.
func (c *Client) authorize(req *http.Request) {
	if c.username != "" && c.password != "" {
		req.SetBasicAuth(c.username, c.password)
	}
}
