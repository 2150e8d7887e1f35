package suggest

import "strings"

// SplitContextPrefix derives a (context, prefix) query pair from raw message
// text: the final whitespace-delimited token becomes the prefix, everything
// before it — rejoined with single spaces — becomes the context. Blank input
// yields two empty strings. Deterministic, total, no failure cases.
func SplitContextPrefix(text string) (context, prefix string) {
	parts := strings.Fields(text)
	if len(parts) == 0 {
		return "", ""
	}
	prefix = parts[len(parts)-1]
	context = strings.Join(parts[:len(parts)-1], " ")
	return context, prefix
}
