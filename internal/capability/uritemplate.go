package capability

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/yosida95/uritemplate/v3"
)

var varnamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// segment is either a literal path segment or a named variable slot.
type segment struct {
	literal  string
	variable string
}

func (s segment) isVariable() bool {
	return s.variable != ""
}

// Template is a compiled resource URI template of the form
// scheme://literal/literal/{variable}. Variables must span a whole path
// segment; the scheme is always literal.
//
// Templates are compiled once at registration and matched structurally:
// segment count first, then literal segments by exact comparison.
type Template struct {
	raw      string
	scheme   string
	segments []segment
	vars     []string
}

// CompileTemplate parses raw into a structural matcher.
func CompileTemplate(raw string) (*Template, error) {
	if _, err := uritemplate.New(raw); err != nil {
		return nil, fmt.Errorf("invalid URI template %q: %w", raw, err)
	}

	scheme, rest, ok := strings.Cut(raw, "://")
	if !ok || scheme == "" {
		return nil, fmt.Errorf("invalid URI template %q: missing scheme", raw)
	}
	if strings.ContainsAny(scheme, "{}") {
		return nil, fmt.Errorf("invalid URI template %q: scheme cannot contain variables", raw)
	}
	if rest == "" {
		return nil, fmt.Errorf("invalid URI template %q: empty path", raw)
	}

	t := &Template{
		raw:    raw,
		scheme: scheme,
	}

	seen := make(map[string]bool)
	for i, part := range strings.Split(rest, "/") {
		if part == "" {
			return nil, fmt.Errorf("invalid URI template %q: empty segment at position %d", raw, i)
		}
		if strings.HasPrefix(part, "{") && strings.HasSuffix(part, "}") {
			name := part[1 : len(part)-1]
			if !varnamePattern.MatchString(name) {
				return nil, fmt.Errorf("invalid URI template %q: bad variable name %q", raw, name)
			}
			if seen[name] {
				return nil, fmt.Errorf("invalid URI template %q: variable %q used twice", raw, name)
			}
			seen[name] = true
			t.segments = append(t.segments, segment{variable: name})
			t.vars = append(t.vars, name)
			continue
		}
		if strings.ContainsAny(part, "{}") {
			return nil, fmt.Errorf("invalid URI template %q: variable must occupy a whole segment (%q)", raw, part)
		}
		t.segments = append(t.segments, segment{literal: part})
	}

	return t, nil
}

// String returns the template source.
func (t *Template) String() string {
	return t.raw
}

// Variables returns the variable names in positional order.
func (t *Template) Variables() []string {
	out := make([]string, len(t.vars))
	copy(out, t.vars)
	return out
}

// Match checks uri against the template and returns the variable bindings.
// Variable segments are percent-decoded and must be non-empty. Templates
// have no query or fragment part, so URIs carrying one never match.
func (t *Template) Match(uri string) (map[string]string, bool) {
	scheme, rest, ok := strings.Cut(uri, "://")
	if !ok || scheme != t.scheme {
		return nil, false
	}
	if strings.ContainsAny(rest, "?#") {
		return nil, false
	}

	parts := strings.Split(rest, "/")
	if len(parts) != len(t.segments) {
		return nil, false
	}

	bindings := make(map[string]string, len(t.vars))
	for i, seg := range t.segments {
		part := parts[i]
		if !seg.isVariable() {
			if part != seg.literal {
				return nil, false
			}
			continue
		}
		if part == "" {
			return nil, false
		}
		if decoded, err := url.PathUnescape(part); err == nil {
			part = decoded
		}
		bindings[seg.variable] = part
	}
	return bindings, true
}

// Collides reports whether some concrete URI could be matched by both
// templates. Two templates collide when they share scheme and segment count
// and no position holds two different literals.
func (t *Template) Collides(other *Template) bool {
	if t.scheme != other.scheme || len(t.segments) != len(other.segments) {
		return false
	}
	for i, a := range t.segments {
		b := other.segments[i]
		if !a.isVariable() && !b.isVariable() && a.literal != b.literal {
			return false
		}
	}
	return true
}
