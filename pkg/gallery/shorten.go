package gallery

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Ellipsis marks a shortened caption
const Ellipsis = "…"

// isCaptionSpace reports Unicode white space plus the ASCII information
// separators U+001C..U+001F
func isCaptionSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// Shorten collapses every whitespace run in s to a single space, trims the
// ends and, when the result is longer than n characters, cuts it to n-1
// characters followed by an ellipsis. A non-positive n means
// config.DefaultCaptionLength.
func Shorten(s string, n int) string {
	if n <= 0 {
		n = defaultCaptionLength
	}

	s = strings.Join(strings.FieldsFunc(s, isCaptionSpace), " ")
	if utf8.RuneCountInString(s) <= n {
		return s
	}

	runes := []rune(s)
	return strings.TrimRightFunc(string(runes[:n-1]), isCaptionSpace) + Ellipsis
}
