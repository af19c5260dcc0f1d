package capability

import (
	"context"
	"fmt"
	"strings"
)

// Kind is the category of a registered capability.
type Kind string

const (
	// KindTool is a state-mutating operation against the backend.
	KindTool Kind = "tool"
	// KindResource is read-only data addressed by a URI template.
	KindResource Kind = "resource"
	// KindPrompt is a parameterized natural-language template.
	KindPrompt Kind = "prompt"
)

// Kinds lists every capability kind in display order.
var Kinds = []Kind{KindTool, KindResource, KindPrompt}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindTool, KindResource, KindPrompt:
		return true
	default:
		return false
	}
}

// ParseKind converts user input ("tool", "Resources", ...) into a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "s"))
	if !k.Valid() {
		return "", fmt.Errorf("unknown capability kind %q (expected tool, resource or prompt)", s)
	}
	return k, nil
}

// ParamType is the declared type of a capability parameter.
type ParamType string

const (
	TypeString  ParamType = "string"
	TypeInteger ParamType = "integer"
	TypeBoolean ParamType = "boolean"
)

// Parameter declares one argument a capability accepts.
type Parameter struct {
	Name        string
	Type        ParamType
	Required    bool
	Default     interface{}
	Enum        []string // allowed values for string parameters, empty means any
	Description string
}

// Handler executes a capability with validated, type-coerced arguments.
// A returned error is converted into a Failure result by the Dispatcher.
type Handler func(ctx context.Context, args Args) (Payload, error)

// Descriptor is the registered metadata and handler of one capability.
// Descriptors are immutable once the registry is built; callers must not
// modify what Lookup or Resolve return.
type Descriptor struct {
	Kind Kind
	// Name is the tool or prompt name, or the URI template of a resource.
	Name        string
	Title       string
	Description string
	// MIMEType of resource contents. Defaults to text/plain.
	MIMEType   string
	Parameters []Parameter

	// Tool behaviour hints surfaced to MCP clients.
	Destructive bool
	Idempotent  bool

	Handler Handler

	template *Template
}

// Key returns the registry key of the descriptor.
func (d *Descriptor) Key() string {
	return d.Name
}

// Template returns the compiled URI template of a resource descriptor, or nil.
func (d *Descriptor) Template() *Template {
	return d.template
}

// Parameter looks up a declared parameter by name.
func (d *Descriptor) Parameter(name string) (Parameter, bool) {
	for _, p := range d.Parameters {
		if p.Name == name {
			return p, true
		}
	}
	return Parameter{}, false
}

// Request is one invocation of a capability.
type Request struct {
	Kind Kind
	// Target is a tool/prompt name or a concrete resource URI.
	Target    string
	Arguments map[string]interface{}
}

// Args holds the validated arguments passed to a Handler. Values are
// already coerced to their declared type: string, int64 or bool.
type Args struct {
	values map[string]interface{}
}

// Has reports whether the argument was supplied or defaulted.
func (a Args) Has(name string) bool {
	_, ok := a.values[name]
	return ok
}

// String returns a string argument, or "" if absent.
func (a Args) String(name string) string {
	s, _ := a.values[name].(string)
	return s
}

// Int returns an integer argument, or 0 if absent.
func (a Args) Int(name string) int64 {
	i, _ := a.values[name].(int64)
	return i
}

// Bool returns a boolean argument, or false if absent.
func (a Args) Bool(name string) bool {
	b, _ := a.values[name].(bool)
	return b
}

// Map returns a copy of all argument values.
func (a Args) Map() map[string]interface{} {
	out := make(map[string]interface{}, len(a.values))
	for k, v := range a.values {
		out[k] = v
	}
	return out
}
