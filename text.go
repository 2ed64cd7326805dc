package sigstub

import (
	"strings"
	"unicode"
)

// NormalizeText collapses every run of whitespace (including non-breaking
// spaces and newlines) into a single ASCII space and trims both ends.
// HTML source formatting must never influence token boundaries.
func NormalizeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			space = true
			continue
		}
		if space && b.Len() > 0 {
			b.WriteByte(' ')
		}
		space = false
		b.WriteRune(r)
	}
	return b.String()
}
