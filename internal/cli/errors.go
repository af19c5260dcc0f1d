package cli

import (
	"errors"
	"fmt"

	"github.com/giantswarm/mcp-wordpress/internal/capability"
)

// InvocationFailedError reports that an invocation completed with a
// Failure result. The rendered failure has already been printed.
type InvocationFailedError struct {
	Kind   capability.Kind
	Target string
	// Message is the rendered failure text, including the error marker.
	Message string
}

// Error returns the rendered failure.
func (e *InvocationFailedError) Error() string {
	return fmt.Sprintf("%s %s failed: %s", e.Kind, e.Target, e.Message)
}

// IsInvocationFailed checks if an error is an InvocationFailedError.
func IsInvocationFailed(err error) bool {
	var target *InvocationFailedError
	return errors.As(err, &target)
}
