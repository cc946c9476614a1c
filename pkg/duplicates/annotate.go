package duplicates

import "strings"

// AnnotatedLine is a physical line paired with its highlight flag
type AnnotatedLine struct {
	Index     int    `json:"-"`
	Text      string `json:"line"`
	Highlight bool   `json:"highlight"`
}

// Annotate flags every non-empty line that belongs to an occurrence of some group.
// The result has one entry per physical line, blank lines included, in original order.
func Annotate(lines []Line, groups []Group) []AnnotatedLine {
	annotated := make([]AnnotatedLine, len(lines))
	for i, l := range lines {
		annotated[i] = AnnotatedLine{
			Index:     l.Index,
			Text:      l.Raw,
			Highlight: strings.TrimSpace(l.Raw) != "" && inAnyGroup(groups, l.Index),
		}
	}
	return annotated
}

func inAnyGroup(groups []Group, index int) bool {
	for _, g := range groups {
		if g.Contains(index) {
			return true
		}
	}
	return false
}

// Stats summarizes one detection run
type Stats struct {
	TotalLines       int `json:"total_lines"`
	NonEmptyLines    int `json:"non_empty_lines"`
	HighlightedLines int `json:"highlighted_lines"`
	Groups           int `json:"groups"`
	MaxOccurrences   int `json:"max_occurrences"`
}

// Summarize counts lines and groups for a report header
func Summarize(annotated []AnnotatedLine, groups []Group) Stats {
	stats := Stats{TotalLines: len(annotated), Groups: len(groups)}
	for _, l := range annotated {
		if strings.TrimSpace(l.Text) != "" {
			stats.NonEmptyLines++
		}
		if l.Highlight {
			stats.HighlightedLines++
		}
	}
	for _, g := range groups {
		stats.MaxOccurrences = max(stats.MaxOccurrences, len(g))
	}
	return stats
}
