package format

import (
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/gitcher/gitcher/internal/constants"
)

// ansiRegex matches ANSI escape sequences
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StripAnsi removes ANSI escape sequences from a string.
func StripAnsi(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// DisplayWidth returns the visible width of a string in terminal
// columns, accounting for wide characters and stripping ANSI escape
// sequences.
func DisplayWidth(s string) int {
	return runewidth.StringWidth(StripAnsi(s))
}

// TruncateToWidth truncates a string to fit within maxWidth display
// columns, appending "..." when truncation occurs. ANSI sequences are
// stripped for the truncated form. Returns the string and its visible
// width.
func TruncateToWidth(s string, maxWidth int) (string, int) {
	plain := StripAnsi(s)
	width := runewidth.StringWidth(plain)

	if width <= maxWidth {
		return s, width
	}

	target := maxWidth - constants.TruncationSuffixWidth
	if target < 0 {
		target = 0
	}

	cutWidth := 0
	cutIndex := len(plain)
	for i, r := range plain {
		rw := runewidth.RuneWidth(r)
		if cutWidth+rw > target {
			cutIndex = i
			break
		}
		cutWidth += rw
	}

	return plain[:cutIndex] + "...", maxWidth
}

// PadRight pads a string with spaces to reach the target visible width.
func PadRight(s string, visibleWidth, targetWidth int) string {
	if visibleWidth >= targetWidth {
		return s
	}
	return s + strings.Repeat(" ", targetWidth-visibleWidth)
}
