package domain

import (
	"strings"
	"unicode"
)

const (
	// PlacePlaceholderName is shown when a post carries no place name.
	PlacePlaceholderName = "Unknown place"

	ellipsis = "..."
)

// Truncate shortens s to at most n runes, appending "..." only when
// something was cut. It never splits a multibyte character.
func Truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return strings.TrimRightFunc(string(runes[:n]), unicode.IsSpace) + ellipsis
}

// DisplayPlace returns the post's place name or the placeholder.
func DisplayPlace(p Post) string {
	if name := strings.TrimSpace(p.PlaceName); name != "" {
		return name
	}
	return PlacePlaceholderName
}
