package wordpress

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// TransportError is returned for every failed backend call: the request
// could not be sent, the server answered with a non-2xx status, or the
// response body could not be decoded.
type TransportError struct {
	Op         string // e.g. "create post"
	Method     string
	URL        string
	StatusCode int    // 0 when no response was received
	Code       string // WordPress error code, e.g. rest_post_invalid_id
	Message    string // WordPress error message
	Err        error
}

func (e *TransportError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "failed to %s: %s %s", e.Op, e.Method, e.URL)
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, ": %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	switch {
	case e.Code != "" && e.Message != "":
		fmt.Fprintf(&b, " (%s: %s)", e.Code, e.Message)
	case e.Message != "":
		fmt.Fprintf(&b, " (%s)", e.Message)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ErrorKind labels backend failures for metrics.
func (e *TransportError) ErrorKind() string {
	return "transport"
}

// IsTransportError reports whether err is or wraps a TransportError.
func IsTransportError(err error) bool {
	var target *TransportError
	return errors.As(err, &target)
}

// IsNotFound reports whether err is a TransportError for a 404 response.
func IsNotFound(err error) bool {
	var target *TransportError
	return errors.As(err, &target) && target.StatusCode == http.StatusNotFound
}
