package capability

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/giantswarm/mcp-wordpress/pkg/logging"
)

// Outcome labels reported to an Observer.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// UnresolvedName is reported to the Observer in place of a target that
// matched no registered capability, so arbitrary caller input never
// becomes a metric label.
const UnresolvedName = "unresolved"

// Observer receives one notification per completed invocation.
type Observer interface {
	ObserveInvocation(kind Kind, name string, outcome string, errorKind string, duration time.Duration)
}

type invocationIDKey struct{}

// InvocationID returns the ID the Dispatcher attached to ctx, or "".
func InvocationID(ctx context.Context) string {
	id, _ := ctx.Value(invocationIDKey{}).(string)
	return id
}

// Dispatcher resolves, validates and executes capability invocations and
// turns every outcome into a Result. It holds no per-call state and is safe
// for concurrent use.
type Dispatcher struct {
	registry *Registry
	observer Observer
	now      func() time.Time
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithObserver registers an observer for completed invocations.
func WithObserver(o Observer) DispatcherOption {
	return func(d *Dispatcher) {
		d.observer = o
	}
}

// NewDispatcher creates a dispatcher over a built registry.
func NewDispatcher(registry *Registry, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		registry: registry,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Registry returns the registry the dispatcher resolves against.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Invoke executes one request. It never panics and never returns a
// partially populated Result: lookup, argument and handler failures all
// come back as Failure. The handler runs exactly once; nothing is retried.
func (d *Dispatcher) Invoke(ctx context.Context, req Request) Result {
	start := d.now()
	id := uuid.New().String()
	ctx = context.WithValue(ctx, invocationIDKey{}, id)

	logging.Debug("Dispatcher", "[%s] Invoking %s %s with args: %v", id, req.Kind, req.Target, req.Arguments)

	name := UnresolvedName
	result := d.invoke(ctx, req, &name)

	elapsed := d.now().Sub(start)
	outcome := OutcomeSuccess
	if result.IsError() {
		outcome = OutcomeFailure
		logging.Warn("Dispatcher", "[%s] %s %s failed after %s: %v", id, req.Kind, req.Target, elapsed, result.Err)
	} else {
		logging.Info("Dispatcher", "[%s] %s %s completed in %s", id, req.Kind, req.Target, elapsed)
	}

	if d.observer != nil {
		d.observer.ObserveInvocation(req.Kind, name, outcome, ErrorKind(result.Err), elapsed)
	}
	return result
}

// invoke does the work of Invoke. name is set to the registry key (the
// template for resources) once the target resolves.
func (d *Dispatcher) invoke(ctx context.Context, req Request, name *string) Result {
	desc, raw, err := d.resolve(req)
	if err != nil {
		return Failure(err)
	}
	*name = desc.Name

	args, err := bindArguments(desc, raw)
	if err != nil {
		return Failure(err)
	}

	payload, err := d.call(ctx, desc, args)
	if err != nil {
		return Failure(err)
	}
	return Success(payload)
}

// resolve finds the descriptor and the raw argument map for req.
func (d *Dispatcher) resolve(req Request) (*Descriptor, map[string]interface{}, error) {
	switch req.Kind {
	case KindTool, KindPrompt:
		desc, err := d.registry.Lookup(req.Kind, req.Target)
		if err != nil {
			return nil, nil, err
		}
		return desc, req.Arguments, nil

	case KindResource:
		desc, bindings, err := d.registry.Resolve(req.Target)
		if err != nil {
			return nil, nil, err
		}
		// URI bindings take precedence over explicitly passed arguments.
		raw := make(map[string]interface{}, len(req.Arguments)+len(bindings))
		for k, v := range req.Arguments {
			raw[k] = v
		}
		for k, v := range bindings {
			raw[k] = v
		}
		return desc, raw, nil

	default:
		return nil, nil, &UnknownCapabilityError{Kind: req.Kind, Name: req.Target}
	}
}

// call runs the handler, converting a panic into a PanicError.
func (d *Dispatcher) call(ctx context.Context, desc *Descriptor, args Args) (payload Payload, err error) {
	defer func() {
		if r := recover(); r != nil {
			logging.Error("Dispatcher", nil, "Handler for %s %s panicked: %v", desc.Kind, desc.Name, r)
			payload = nil
			err = &PanicError{Capability: desc.Name, Value: r}
		}
	}()
	return desc.Handler(ctx, args)
}

// CallTool invokes a tool by name.
func (d *Dispatcher) CallTool(ctx context.Context, name string, args map[string]interface{}) Result {
	return d.Invoke(ctx, Request{Kind: KindTool, Target: name, Arguments: args})
}

// ReadResource invokes the resource matching uri.
func (d *Dispatcher) ReadResource(ctx context.Context, uri string) Result {
	return d.Invoke(ctx, Request{Kind: KindResource, Target: uri})
}

// GetPrompt invokes a prompt by name. Prompt arguments arrive as strings on
// the wire and are coerced like any other argument; empty strings count as
// absent so declared defaults apply.
func (d *Dispatcher) GetPrompt(ctx context.Context, name string, args map[string]string) Result {
	raw := make(map[string]interface{}, len(args))
	for k, v := range args {
		if v == "" {
			continue
		}
		raw[k] = v
	}
	return d.Invoke(ctx, Request{Kind: KindPrompt, Target: name, Arguments: raw})
}
