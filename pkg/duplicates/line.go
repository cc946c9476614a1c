package duplicates

import (
	"strings"
	"unicode"
)

// Line is one physical line of the input document.
// Index is the 0-based position among all physical lines, including blank ones.
type Line struct {
	Index      int
	Raw        string
	Normalized string
}

// IsEmpty reports whether nothing is left of the line once normalized
func (l Line) IsEmpty() bool {
	return l.Normalized == ""
}

// Equal compares the normalized text of two lines byte for byte
func (l Line) Equal(other Line) bool {
	return l.Normalized == other.Normalized
}

// Normalize trims outer whitespace and then removes every space character.
// Only the space character is removed from the interior; tabs inside a line are kept.
func Normalize(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), " ", "")
}

// SplitLines splits text on '\n' and returns every physical line, blank ones included.
// An empty document yields a single empty line.
func SplitLines(text string) []Line {
	raw := strings.Split(text, "\n")
	lines := make([]Line, len(raw))
	for i, r := range raw {
		lines[i] = Line{Index: i, Raw: r, Normalized: Normalize(r)}
	}
	return lines
}

// NonEmpty returns the lines that survive normalization, keeping their original Index
func NonEmpty(lines []Line) []Line {
	nonEmpty := make([]Line, 0, len(lines))
	for _, l := range lines {
		if !l.IsEmpty() {
			nonEmpty = append(nonEmpty, l)
		}
	}
	return nonEmpty
}

func isStructural(r rune) bool {
	return unicode.IsSpace(r) || r == '{' || r == '}'
}

// onlyBraces reports whether every character of the window is whitespace or a brace
func onlyBraces(window []Line) bool {
	for _, l := range window {
		if strings.IndexFunc(l.Normalized, func(r rune) bool { return !isStructural(r) }) >= 0 {
			return false
		}
	}
	return true
}

func windowsEqual(a, b []Line) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
