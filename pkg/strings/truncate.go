// Package strings holds small text helpers for terminal output.
package strings

import (
	"strings"
)

// DescriptionMaxLen is the width of description columns in table output.
const DescriptionMaxLen = 60

const ellipsis = "..."

// minTruncateLen leaves room for one character plus the ellipsis.
const minTruncateLen = len(ellipsis) + 1

// Truncate collapses all whitespace in s to single spaces and shortens the
// result to at most maxLen runes, ending in "..." when it was cut. A maxLen
// below 4 is raised to 4.
func Truncate(s string, maxLen int) string {
	if maxLen < minTruncateLen {
		maxLen = minTruncateLen
	}

	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-len(ellipsis)]) + ellipsis
}
