package capability

import (
	"errors"
	"fmt"

	"github.com/giantswarm/mcp-wordpress/pkg/logging"
)

// ErrRegistryBuilt is returned by Builder.Register after Build was called.
var ErrRegistryBuilt = errors.New("capability registry already built")

// Registry is the immutable lookup table of capabilities.
//
// It holds three independent mappings: tool name, resource URI template and
// prompt name to descriptor. A Registry is created once through a Builder
// and is read-only afterwards, so it is safe for concurrent use without
// locking.
type Registry struct {
	tools     map[string]*Descriptor
	prompts   map[string]*Descriptor
	resources map[string]*Descriptor

	// resourceOrder keeps registration order; Resolve picks the first match.
	resourceOrder []*Descriptor
	// order keeps registration order across all kinds, for listings.
	order []*Descriptor
}

func newRegistry() *Registry {
	return &Registry{
		tools:     make(map[string]*Descriptor),
		prompts:   make(map[string]*Descriptor),
		resources: make(map[string]*Descriptor),
	}
}

// Builder accumulates descriptors at process start and produces a Registry.
type Builder struct {
	reg   *Registry
	built bool
}

// NewBuilder creates an empty registry builder.
func NewBuilder() *Builder {
	return &Builder{reg: newRegistry()}
}

// Register validates d and adds it under its kind and key.
//
// It fails with a DuplicateCapabilityError when the key already exists for
// the kind, or when a resource template structurally collides with one
// registered earlier (e.g. same shape, different variable names). Other
// malformed descriptors (no handler, bad template, undeclared template
// variables) fail with a plain configuration error.
func (b *Builder) Register(d Descriptor) error {
	if b.built {
		return ErrRegistryBuilt
	}
	if !d.Kind.Valid() {
		return fmt.Errorf("capability %q: invalid kind %q", d.Name, d.Kind)
	}
	if d.Name == "" {
		return fmt.Errorf("%s capability: name is required", d.Kind)
	}
	if d.Handler == nil {
		return fmt.Errorf("%s %q: handler is required", d.Kind, d.Name)
	}

	desc := d
	desc.Parameters = append([]Parameter(nil), d.Parameters...)
	if err := validateParameters(&desc); err != nil {
		return err
	}

	switch desc.Kind {
	case KindTool:
		if _, exists := b.reg.tools[desc.Name]; exists {
			return &DuplicateCapabilityError{Kind: KindTool, Key: desc.Name}
		}
		b.reg.tools[desc.Name] = &desc

	case KindPrompt:
		if _, exists := b.reg.prompts[desc.Name]; exists {
			return &DuplicateCapabilityError{Kind: KindPrompt, Key: desc.Name}
		}
		b.reg.prompts[desc.Name] = &desc

	case KindResource:
		if err := b.prepareResource(&desc); err != nil {
			return err
		}
		b.reg.resources[desc.Name] = &desc
		b.reg.resourceOrder = append(b.reg.resourceOrder, &desc)
	}

	b.reg.order = append(b.reg.order, &desc)
	logging.Debug("Registry", "Registered %s %s", desc.Kind, desc.Name)
	return nil
}

// prepareResource compiles the template, checks that template variables and
// declared parameters line up, and rejects structural collisions.
func (b *Builder) prepareResource(d *Descriptor) error {
	if _, exists := b.reg.resources[d.Name]; exists {
		return &DuplicateCapabilityError{Kind: KindResource, Key: d.Name}
	}

	tmpl, err := CompileTemplate(d.Name)
	if err != nil {
		return err
	}

	vars := make(map[string]bool)
	for _, v := range tmpl.Variables() {
		vars[v] = true
		if _, ok := d.Parameter(v); !ok {
			return fmt.Errorf("resource %q: template variable %q has no declared parameter", d.Name, v)
		}
	}
	for i, p := range d.Parameters {
		if !vars[p.Name] {
			return fmt.Errorf("resource %q: parameter %q is not a template variable", d.Name, p.Name)
		}
		// Every path variable is present in a matching URI.
		d.Parameters[i].Required = true
	}

	for _, existing := range b.reg.resourceOrder {
		if existing.template.Collides(tmpl) {
			return &DuplicateCapabilityError{Kind: KindResource, Key: d.Name, ConflictsWith: existing.Name}
		}
	}

	if d.MIMEType == "" {
		d.MIMEType = "text/plain"
	}
	d.template = tmpl
	return nil
}

// Build freezes the builder and returns the registry. Further Register
// calls fail with ErrRegistryBuilt.
func (b *Builder) Build() *Registry {
	b.built = true
	logging.Info("Registry", "Capability registry built: %d tools, %d resources, %d prompts",
		len(b.reg.tools), len(b.reg.resources), len(b.reg.prompts))
	return b.reg
}

// Lookup returns the descriptor registered under kind and key. For
// resources the key is the URI template itself; use Resolve for concrete URIs.
func (r *Registry) Lookup(kind Kind, key string) (*Descriptor, error) {
	var table map[string]*Descriptor
	switch kind {
	case KindTool:
		table = r.tools
	case KindPrompt:
		table = r.prompts
	case KindResource:
		table = r.resources
	default:
		return nil, &UnknownCapabilityError{Kind: kind, Name: key}
	}

	d, ok := table[key]
	if !ok {
		return nil, &UnknownCapabilityError{Kind: kind, Name: key}
	}
	return d, nil
}

// Resolve matches a concrete resource URI against the registered templates
// in registration order and returns the first match with its variable
// bindings. Bindings are raw strings; type coercion happens in the
// Dispatcher, so a non-numeric id is an argument error, not a routing one.
func (r *Registry) Resolve(uri string) (*Descriptor, map[string]string, error) {
	for _, d := range r.resourceOrder {
		if bindings, ok := d.template.Match(uri); ok {
			logging.Debug("Registry", "Resolved %s to template %s", uri, d.Name)
			return d, bindings, nil
		}
	}
	return nil, nil, &NoMatchingResourceError{URI: uri}
}

// List returns the descriptors of one kind in registration order.
func (r *Registry) List(kind Kind) []*Descriptor {
	var out []*Descriptor
	for _, d := range r.order {
		if d.Kind == kind {
			out = append(out, d)
		}
	}
	return out
}

// All returns every descriptor in registration order.
func (r *Registry) All() []*Descriptor {
	out := make([]*Descriptor, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of registered capabilities.
func (r *Registry) Len() int {
	return len(r.order)
}
