package classify

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeText prepares raw block text for pattern matching: Unicode NFKD
// normalization, collapsing of consecutive whitespace into single spaces,
// and trimming of leading and trailing space.
func NormalizeText(text string) string {
	if text == "" {
		return ""
	}
	text = norm.NFKD.String(text)
	return strings.Join(strings.Fields(text), " ")
}
