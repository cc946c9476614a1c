package duplicates

import (
	"testing"
)

func TestAnnotate(t *testing.T) {
	tt := []struct {
		name      string
		text      string
		highlight []bool
	}{
		{
			name:      "duplicate pair",
			text:      indent("", "a a", "a a", "b", ""),
			highlight: []bool{false, true, true, false, false},
		},
		{
			name:      "blank line inside a duplicate is never highlighted",
			text:      "x\n\ny\nz\nx\n\ny",
			highlight: []bool{true, false, true, false, true, false, true},
		},
		{
			name:      "no duplicates",
			text:      "a\nb",
			highlight: []bool{false, false},
		},
		{
			name:      "empty document",
			text:      "",
			highlight: []bool{false},
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			lines := SplitLines(tc.text)
			annotated := Annotate(lines, FindGroups(lines))
			if len(annotated) != len(tc.highlight) {
				t.Fatalf("expected %d annotated lines, got %d", len(tc.highlight), len(annotated))
			}
			for i, l := range annotated {
				if l.Index != i {
					t.Errorf("line %d has index %d", i, l.Index)
				}
				if l.Text != lines[i].Raw {
					t.Errorf("line %d text = %q, expected raw %q", i, l.Text, lines[i].Raw)
				}
				if l.Highlight != tc.highlight[i] {
					t.Errorf("line %d (%q) highlight = %v, expected %v", i, l.Text, l.Highlight, tc.highlight[i])
				}
			}
		})
	}
}

func TestAnnotateDoesNotMutateGroups(t *testing.T) {
	lines := SplitLines("a\nb\na\nb")
	groups := FindGroups(lines)
	before := len(groups[0])
	_ = Annotate(lines, groups)
	if len(groups[0]) != before || groups[0][0] != (Range{0, 1}) {
		t.Errorf("groups were modified: %v", groups)
	}
}

func TestSummarize(t *testing.T) {
	lines := SplitLines(indent("", "let a = 0;", "a += 1;", "dbg(a)", "",
		"let a = 0;", "a += 1;", "xxx;", "let a = 0;", "a += 1;", ""))
	groups := FindGroups(lines)
	stats := Summarize(Annotate(lines, groups), groups)

	expected := Stats{
		TotalLines:       11,
		NonEmptyLines:    8,
		HighlightedLines: 6,
		Groups:           1,
		MaxOccurrences:   3,
	}
	if stats != expected {
		t.Errorf("Summarize() = %+v, expected %+v", stats, expected)
	}
}
