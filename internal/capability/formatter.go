package capability

import (
	"fmt"
	"strings"
)

// ErrorMarker prefixes every rendered failure, whatever the capability kind,
// so callers can detect failures from the text alone.
const ErrorMarker = "Error:"

// Format renders a Result into the text envelope returned to callers.
func Format(result Result) string {
	if result.IsError() {
		return FormatError(result.Err)
	}

	switch p := result.Payload.(type) {
	case Text:
		return string(p)
	case Record:
		return formatRecord(p)
	case NotFound:
		return formatNotFound(p)
	default:
		return fmt.Sprintf("%v", p)
	}
}

// FormatError renders err with the fixed error marker.
func FormatError(err error) string {
	return fmt.Sprintf("%s %v", ErrorMarker, err)
}

func formatRecord(r Record) string {
	var b strings.Builder

	if r.Inline {
		b.WriteString(r.Headline)
		for i, f := range r.Fields {
			if i == 0 {
				if r.Headline != "" {
					b.WriteString(" ")
				}
			} else {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s: %s", f.Label, f.Value)
		}
		return b.String()
	}

	if r.Headline != "" {
		b.WriteString(r.Headline)
		b.WriteString("\n")
	}
	for i, f := range r.Fields {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s: %s", f.Label, f.Value)
	}
	if r.BodyLabel != "" || r.Body != "" {
		b.WriteString("\n\n")
		if r.BodyLabel != "" {
			b.WriteString(r.BodyLabel)
			b.WriteString(":\n")
		}
		b.WriteString(r.Body)
	}
	return b.String()
}

func formatNotFound(n NotFound) string {
	entity := n.Entity
	if entity == "" {
		entity = "item"
	}
	if n.Key == "" {
		return fmt.Sprintf("No %s found", entity)
	}
	return fmt.Sprintf("No %s found with %s: %s", entity, n.Key, n.Value)
}
