package capability

// Payload is the success value a Handler returns. The concrete types are
// Text, Record and NotFound; the Formatter renders each one differently.
type Payload interface {
	payload()
}

// Text is a preformatted message, e.g. a confirmation or prompt body.
type Text string

func (Text) payload() {}

// Field is one labelled value of a Record.
type Field struct {
	Label string
	Value string
}

// Record is a structured entity rendered as a fixed, ordered list of fields.
//
// Inline records render on one line after the headline
// ("Headline Label: v, Label: v"); block records render one field per line
// followed by the optional body section.
type Record struct {
	Headline  string
	Fields    []Field
	Inline    bool
	BodyLabel string
	Body      string
}

func (Record) payload() {}

// Get returns the value of the first field with the given label.
func (r Record) Get(label string) (string, bool) {
	for _, f := range r.Fields {
		if f.Label == label {
			return f.Value, true
		}
	}
	return "", false
}

// NotFound is a successful lookup that matched nothing. It is not a failure.
type NotFound struct {
	Entity string // e.g. "post"
	Key    string // e.g. "slug"
	Value  string
}

func (NotFound) payload() {}

// Result is the outcome of one invocation: exactly one of Payload or Err is set.
type Result struct {
	Payload Payload
	Err     error
}

// Success wraps a handler payload. A nil payload becomes empty Text.
func Success(p Payload) Result {
	if p == nil {
		p = Text("")
	}
	return Result{Payload: p}
}

// Failure wraps an error. A nil error is not a failure and panics, since
// it would produce a Result with neither variant set.
func Failure(err error) Result {
	if err == nil {
		panic("capability: Failure called with nil error")
	}
	return Result{Err: err}
}

// IsError reports whether the result is a Failure.
func (r Result) IsError() bool {
	return r.Err != nil
}
