package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"gopkg.in/yaml.v3"

	"github.com/giantswarm/mcp-wordpress/internal/capability"
	pkgstrings "github.com/giantswarm/mcp-wordpress/pkg/strings"
)

// CapabilityView is the serializable form of a descriptor.
type CapabilityView struct {
	Kind        string          `json:"kind" yaml:"kind"`
	Name        string          `json:"name" yaml:"name"`
	Description string          `json:"description,omitempty" yaml:"description,omitempty"`
	MIMEType    string          `json:"mimeType,omitempty" yaml:"mimeType,omitempty"`
	Destructive bool            `json:"destructive,omitempty" yaml:"destructive,omitempty"`
	Parameters  []ParameterView `json:"parameters,omitempty" yaml:"parameters,omitempty"`
}

// ParameterView is the serializable form of a parameter declaration.
type ParameterView struct {
	Name     string      `json:"name" yaml:"name"`
	Type     string      `json:"type" yaml:"type"`
	Required bool        `json:"required" yaml:"required"`
	Default  interface{} `json:"default,omitempty" yaml:"default,omitempty"`
	Enum     []string    `json:"enum,omitempty" yaml:"enum,omitempty"`
}

// NewCapabilityViews converts descriptors into views, keeping their order.
func NewCapabilityViews(descs []*capability.Descriptor) []CapabilityView {
	views := make([]CapabilityView, 0, len(descs))
	for _, d := range descs {
		view := CapabilityView{
			Kind:        string(d.Kind),
			Name:        d.Name,
			Description: d.Description,
			MIMEType:    d.MIMEType,
			Destructive: d.Destructive,
		}
		for _, p := range d.Parameters {
			view.Parameters = append(view.Parameters, ParameterView{
				Name:     p.Name,
				Type:     string(p.Type),
				Required: p.Required,
				Default:  p.Default,
				Enum:     p.Enum,
			})
		}
		views = append(views, view)
	}
	return views
}

// CapabilityPrinter renders capability listings.
type CapabilityPrinter struct {
	Format    OutputFormat
	NoHeaders bool
	// Wide disables truncation of the description column
	Wide bool
}

// Print writes descs to w in the configured format.
func (p CapabilityPrinter) Print(w io.Writer, descs []*capability.Descriptor) error {
	views := NewCapabilityViews(descs)

	switch p.Format {
	case OutputFormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(views)

	case OutputFormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(views); err != nil {
			return err
		}
		return enc.Close()

	case OutputFormatTable, "":
		p.printTable(w, views)
		return nil

	default:
		return ValidateOutputFormat(string(p.Format))
	}
}

func (p CapabilityPrinter) printTable(w io.Writer, views []CapabilityView) {
	if len(views) == 0 {
		fmt.Fprintf(w, "%s\n", text.FgYellow.Sprint("No capabilities registered"))
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	if !p.NoHeaders {
		t.AppendHeader(table.Row{"Kind", "Name", "Parameters", "Description"})
	}
	for _, v := range views {
		name := v.Name
		if v.Destructive {
			name = text.FgRed.Sprint(name)
		}
		description := v.Description
		if !p.Wide {
			description = pkgstrings.Truncate(description, pkgstrings.DescriptionMaxLen)
		}
		t.AppendRow(table.Row{v.Kind, name, formatParameters(v.Parameters), description})
	}
	t.Render()
}

// formatParameters renders "name*:type=default" entries; * marks required.
func formatParameters(params []ParameterView) string {
	if len(params) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(params))
	for _, p := range params {
		var b strings.Builder
		b.WriteString(p.Name)
		if p.Required {
			b.WriteString("*")
		}
		b.WriteString(":")
		b.WriteString(p.Type)
		if p.Default != nil {
			fmt.Fprintf(&b, "=%v", p.Default)
		}
		parts = append(parts, b.String())
	}
	return strings.Join(parts, ", ")
}
