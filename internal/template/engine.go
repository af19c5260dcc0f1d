package template

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"text/template"
	"text/template/parse"

	"github.com/Masterminds/sprig/v3"
)

// Engine parses text templates with the sprig function library available.
type Engine struct {
	funcs template.FuncMap
}

// New creates a new template engine
func New() *Engine {
	return &Engine{
		funcs: sprig.TxtFuncMap(),
	}
}

// Template is a parsed template together with the top-level variables it
// references.
type Template struct {
	name      string
	tmpl      *template.Template
	variables []string
}

// Parse compiles source. Executing the result fails on any variable that is
// missing from the context instead of rendering "<no value>".
func (e *Engine) Parse(name, source string) (*Template, error) {
	tmpl, err := template.New(name).
		Funcs(e.funcs).
		Option("missingkey=error").
		Parse(source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	seen := make(map[string]bool)
	if tmpl.Tree != nil {
		collectFields(tmpl.Tree.Root, seen)
	}
	variables := make([]string, 0, len(seen))
	for v := range seen {
		variables = append(variables, v)
	}
	sort.Strings(variables)

	return &Template{name: name, tmpl: tmpl, variables: variables}, nil
}

// Name returns the template name.
func (t *Template) Name() string {
	return t.name
}

// Variables returns the sorted top-level field names the template reads,
// e.g. "topic" for {{ .topic | upper }}.
func (t *Template) Variables() []string {
	out := make([]string, len(t.variables))
	copy(out, t.variables)
	return out
}

// ValidateContext ensures all required variables are present in the context
func (t *Template) ValidateContext(context map[string]interface{}) error {
	var missingVars []string
	for _, varName := range t.variables {
		if _, exists := context[varName]; !exists {
			missingVars = append(missingVars, varName)
		}
	}

	if len(missingVars) > 0 {
		return fmt.Errorf("missing required variables: %s", strings.Join(missingVars, ", "))
	}

	return nil
}

// Execute renders the template against context.
func (t *Template) Execute(context map[string]interface{}) (string, error) {
	if err := t.ValidateContext(context); err != nil {
		return "", fmt.Errorf("template %s: %w", t.name, err)
	}

	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, context); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", t.name, err)
	}
	return buf.String(), nil
}

// collectFields walks the parse tree and records the first identifier of
// every field reference on the root context. Bodies of range and with
// blocks are skipped since dot is rebound there.
func collectFields(node parse.Node, seen map[string]bool) {
	switch n := node.(type) {
	case *parse.ListNode:
		if n == nil {
			return
		}
		for _, child := range n.Nodes {
			collectFields(child, seen)
		}
	case *parse.ActionNode:
		collectFields(n.Pipe, seen)
	case *parse.PipeNode:
		if n == nil {
			return
		}
		for _, cmd := range n.Cmds {
			collectFields(cmd, seen)
		}
	case *parse.CommandNode:
		for _, arg := range n.Args {
			collectFields(arg, seen)
		}
	case *parse.FieldNode:
		if len(n.Ident) > 0 {
			seen[n.Ident[0]] = true
		}
	case *parse.ChainNode:
		collectFields(n.Node, seen)
	case *parse.IfNode:
		collectFields(n.Pipe, seen)
		collectFields(n.List, seen)
		collectFields(n.ElseList, seen)
	case *parse.RangeNode:
		collectFields(n.Pipe, seen)
		collectFields(n.ElseList, seen)
	case *parse.WithNode:
		collectFields(n.Pipe, seen)
		collectFields(n.ElseList, seen)
	case *parse.TemplateNode:
		collectFields(n.Pipe, seen)
	}
}
