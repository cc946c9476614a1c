package duplicates

import (
	"testing"
)

func TestNormalize(t *testing.T) {
	tt := []struct {
		name     string
		input    string
		expected string
	}{
		{"already normalized", "aa=b;", "aa=b;"},
		{"outer whitespace", "   aa=b;\t", "aa=b;"},
		{"inner spaces removed", "  aa  =b;", "aa=b;"},
		{"inner tab kept", "a\tb", "a\tb"},
		{"carriage return trimmed", "x := 1\r", "x:=1"},
		{"only spaces", "     ", ""},
		{"empty string", "", ""},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.input)
			if got != tc.expected {
				t.Errorf("Normalize(%q) = %q, expected %q", tc.input, got, tc.expected)
			}
			if again := Normalize(got); again != got {
				t.Errorf("Normalize is not idempotent: Normalize(%q) = %q", got, again)
			}
		})
	}
}

func TestSplitLines(t *testing.T) {
	lines := SplitLines(" a\n\n  b c\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	expected := []Line{
		{Index: 0, Raw: " a", Normalized: "a"},
		{Index: 1, Raw: "", Normalized: ""},
		{Index: 2, Raw: "  b c", Normalized: "bc"},
		{Index: 3, Raw: "", Normalized: ""},
	}
	for i, l := range lines {
		if l != expected[i] {
			t.Errorf("line %d = %+v, expected %+v", i, l, expected[i])
		}
	}
}

func TestSplitLinesEmptyDocument(t *testing.T) {
	lines := SplitLines("")
	if len(lines) != 1 || !lines[0].IsEmpty() {
		t.Errorf("expected a single empty line, got %+v", lines)
	}
}

func TestNonEmpty(t *testing.T) {
	lines := NonEmpty(SplitLines("a\n   \n\t\nb\n"))
	if len(lines) != 2 {
		t.Fatalf("expected 2 non-empty lines, got %d", len(lines))
	}
	if lines[0].Index != 0 || lines[1].Index != 3 {
		t.Errorf("original indices not preserved: %+v", lines)
	}
}

func TestOnlyBraces(t *testing.T) {
	tt := []struct {
		name     string
		text     string
		expected bool
	}{
		{"single open brace", "{", true},
		{"braces and whitespace", "{\n  }\n{ }", true},
		{"closing with semicolon", "};", false},
		{"code line", "{\nreturn x\n}", false},
		{"paren", "(", false},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			window := NonEmpty(SplitLines(tc.text))
			if got := onlyBraces(window); got != tc.expected {
				t.Errorf("onlyBraces(%q) = %v, expected %v", tc.text, got, tc.expected)
			}
		})
	}
}

func TestLineEqual(t *testing.T) {
	a := SplitLines("aa=b;")[0]
	b := SplitLines("   aa  =b;")[0]
	c := SplitLines("aa=c;")[0]
	if !a.Equal(b) {
		t.Error("lines differing only in spaces should be equal")
	}
	if a.Equal(c) {
		t.Error("lines with different content should not be equal")
	}
}
