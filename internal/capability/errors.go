package capability

import (
	"errors"
	"fmt"
)

// UnknownCapabilityError is returned when no tool or prompt is registered
// under the requested name.
type UnknownCapabilityError struct {
	Kind Kind
	Name string
}

func (e *UnknownCapabilityError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Kind, e.Name)
}

// InvalidArgumentError is returned when an argument is missing, cannot be
// coerced to its declared type, is outside its allowed values, or is not
// declared at all.
type InvalidArgumentError struct {
	Capability string
	Argument   string
	Reason     string
}

func (e *InvalidArgumentError) Error() string {
	if e.Argument == "" {
		return fmt.Sprintf("invalid arguments for %s: %s", e.Capability, e.Reason)
	}
	return fmt.Sprintf("invalid argument %q for %s: %s", e.Argument, e.Capability, e.Reason)
}

// NoMatchingResourceError is returned when a resource URI matches none of
// the registered templates.
type NoMatchingResourceError struct {
	URI string
}

func (e *NoMatchingResourceError) Error() string {
	return fmt.Sprintf("no resource matches URI %q", e.URI)
}

// DuplicateCapabilityError is returned at registration time when a key is
// already taken, or when a resource template could match the same URIs as
// an earlier one. It is fatal: the server must not start with an ambiguous
// capability table.
type DuplicateCapabilityError struct {
	Kind          Kind
	Key           string
	ConflictsWith string
}

func (e *DuplicateCapabilityError) Error() string {
	if e.ConflictsWith != "" && e.ConflictsWith != e.Key {
		return fmt.Sprintf("%s template %q collides with already registered %q", e.Kind, e.Key, e.ConflictsWith)
	}
	return fmt.Sprintf("%s %q is already registered", e.Kind, e.Key)
}

// PanicError wraps a value recovered from a panicking handler.
type PanicError struct {
	Capability string
	Value      interface{}
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("%s panicked: %v", e.Capability, e.Value)
}

// IsUnknownCapability reports whether err is or wraps an UnknownCapabilityError.
func IsUnknownCapability(err error) bool {
	var target *UnknownCapabilityError
	return errors.As(err, &target)
}

// IsInvalidArgument reports whether err is or wraps an InvalidArgumentError.
func IsInvalidArgument(err error) bool {
	var target *InvalidArgumentError
	return errors.As(err, &target)
}

// IsNoMatchingResource reports whether err is or wraps a NoMatchingResourceError.
func IsNoMatchingResource(err error) bool {
	var target *NoMatchingResourceError
	return errors.As(err, &target)
}

// IsDuplicateCapability reports whether err is or wraps a DuplicateCapabilityError.
func IsDuplicateCapability(err error) bool {
	var target *DuplicateCapabilityError
	return errors.As(err, &target)
}

// ErrorKind returns a short, stable label for err, used for metrics and logs.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case IsUnknownCapability(err):
		return "unknown_capability"
	case IsInvalidArgument(err):
		return "invalid_argument"
	case IsNoMatchingResource(err):
		return "no_matching_resource"
	case IsDuplicateCapability(err):
		return "duplicate_capability"
	}
	var p *PanicError
	if errors.As(err, &p) {
		return "panic"
	}
	var k interface{ ErrorKind() string }
	if errors.As(err, &k) {
		return k.ErrorKind()
	}
	return "handler"
}
