package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{name: "short string unchanged", input: "Create a post", maxLen: 20, want: "Create a post"},
		{name: "exact length unchanged", input: "abcdef", maxLen: 6, want: "abcdef"},
		{name: "cut with ellipsis", input: "Delete a WordPress post by ID", maxLen: 10, want: "Delete ..."},
		{name: "whitespace collapsed", input: "Get a post\n\tby   slug", maxLen: 60, want: "Get a post by slug"},
		{name: "multi-byte runes", input: "Überschrift für Beiträge", maxLen: 8, want: "Übers..."},
		{name: "tiny max length clamped", input: "abcdef", maxLen: 1, want: "a..."},
		{name: "empty", input: "", maxLen: 10, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.input, tt.maxLen))
		})
	}
}
