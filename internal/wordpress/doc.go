// Package wordpress is a minimal client for the WordPress REST API posts
// endpoints (/wp-json/wp/v2/posts).
//
// The client performs exactly one HTTP request per call and never retries.
// Cancellation and deadlines come from the caller's context; Config.Timeout
// adds an optional client-wide limit on top of that.
//
// Authentication is decided here, not by callers: an application password
// (HTTP basic) when both Username and Password are set, otherwise a bearer
// Token when one is configured, otherwise no credentials at all.
//
// Every failure (network error, non-2xx status, undecodable body) is
// returned as a *TransportError.
package wordpress
