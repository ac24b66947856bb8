package gallery

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestShorten(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		n        int
		expected string
	}{
		{"empty", "", 220, ""},
		{"only whitespace", " \n\t ", 220, ""},
		{"short unchanged", "Hello world", 220, "Hello world"},
		{"collapses whitespace", "  Hello \n\n  world\t!  ", 220, "Hello world !"},
		{"exactly n", "abcde", 5, "abcde"},
		{"one over", "abcdef", 5, "abcd…"},
		{"trailing space before cut", "abc defgh", 5, "abc…"},
		{"counts runes", "ééééééé", 4, "ééé…"},
		{"collapsed length decides", "a   b   c", 5, "a b c"},
		{"information separators", "a\x1cb\x1d\x1ec\x1f", 220, "a b c"},
		{"no-break and line separators", "a\u00a0b\u2028c", 220, "a b c"},
		{"non-positive uses default", strings.Repeat("x", 300), 0, strings.Repeat("x", 219) + "…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Shorten(tt.input, tt.n))
		})
	}
}

func TestShortenLengthBound(t *testing.T) {
	inputs := []string{
		strings.Repeat("word ", 100),
		strings.Repeat("🙂", 500),
		"caption with  double  spaces " + strings.Repeat("é", 250),
		strings.Repeat("a ", 300),
	}

	for _, n := range []int{1, 2, 10, 220} {
		for _, in := range inputs {
			out := Shorten(in, n)
			assert.LessOrEqual(t, utf8.RuneCountInString(out), n, "n=%d input=%q", n, in)
		}
	}
}

func TestShortenUnchangedWhenShortEnough(t *testing.T) {
	in := "Sunset over the bay.\n\n#travel   #ocean"
	collapsed := strings.Join(strings.Fields(in), " ")

	assert.Equal(t, collapsed, Shorten(in, utf8.RuneCountInString(collapsed)))
	assert.Equal(t, collapsed, Shorten(in, 220))
}
