package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Parse(t *testing.T) {
	e := New()

	tests := []struct {
		name    string
		source  string
		vars    []string
		wantErr bool
	}{
		{name: "plain text", source: "no variables here", vars: []string{}},
		{name: "single field", source: "Topic: {{ .topic }}", vars: []string{"topic"}},
		{name: "pipeline with sprig", source: `{{ .tone | default "neutral" | upper }} {{ .topic | title }}`, vars: []string{"tone", "topic"}},
		{name: "conditional", source: `{{ if eq .post_type "tutorial" }}steps{{ else }}{{ .audience }}{{ end }}`, vars: []string{"audience", "post_type"}},
		{name: "range body is rebound", source: `{{ range .items }}{{ .name }}{{ end }}`, vars: []string{"items"}},
		{name: "unclosed action", source: "{{ .topic", wantErr: true},
		{name: "unknown function", source: "{{ .topic | shout }}", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := e.Parse(tt.name, tt.source)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.vars, tmpl.Variables())
		})
	}
}

func TestTemplate_Execute(t *testing.T) {
	e := New()

	render := func(t *testing.T, source string, context map[string]interface{}) (string, error) {
		t.Helper()
		tmpl, err := e.Parse(t.Name(), source)
		require.NoError(t, err)
		return tmpl.Execute(context)
	}

	t.Run("renders with sprig functions", func(t *testing.T) {
		out, err := render(t, `# {{ .topic | title }} ({{ .post_type | upper }})`, map[string]interface{}{
			"topic":     "go generics",
			"post_type": "tutorial",
		})
		require.NoError(t, err)
		assert.Equal(t, "# Go Generics (TUTORIAL)", out)
	})

	t.Run("missing variable", func(t *testing.T) {
		_, err := render(t, "{{ .topic }} for {{ .audience }}", map[string]interface{}{"topic": "x"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing required variables: audience")
	})

	t.Run("non-string values", func(t *testing.T) {
		out, err := render(t, "Post {{ .post_id }} force={{ .force }}", map[string]interface{}{
			"post_id": int64(42),
			"force":   true,
		})
		require.NoError(t, err)
		assert.Equal(t, "Post 42 force=true", out)
	})

	t.Run("sprig error surfaces at execution", func(t *testing.T) {
		_, err := render(t, `{{ .topic | required "topic is required" }}`, map[string]interface{}{"topic": ""})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "topic is required")
	})
}

func TestMergeContexts(t *testing.T) {
	merged := MergeContexts(
		map[string]interface{}{"a": 1, "b": 2},
		nil,
		map[string]interface{}{"b": 3},
	)
	assert.Equal(t, map[string]interface{}{"a": 1, "b": 3}, merged)
}
