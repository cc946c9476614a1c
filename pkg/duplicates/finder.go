package duplicates

// Range is one occurrence of a duplicated block.
// Start and End are inclusive physical line indices (0-based) of the first and last line of the block.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Contains reports whether the physical line index falls inside the range
func (r Range) Contains(index int) bool {
	return r.Start <= index && index <= r.End
}

// Overlaps reports whether the two inclusive ranges share at least one index
func (r Range) Overlaps(other Range) bool {
	return r.Start <= other.End && other.Start <= r.End
}

// Group holds every occurrence of one duplicated block, in ascending start order.
// A group always has at least two occurrences.
type Group []Range

// Contains reports whether the physical line index falls inside any occurrence of the group
func (g Group) Contains(index int) bool {
	for _, r := range g {
		if r.Contains(index) {
			return true
		}
	}
	return false
}

// usedLines tracks which physical lines were claimed by an accepted group
type usedLines []bool

func newUsedLines(total int) usedLines {
	return make(usedLines, total)
}

func (u usedLines) anyUsed(ranges []Range) bool {
	for _, r := range ranges {
		for i := r.Start; i <= r.End; i++ {
			if u[i] {
				return true
			}
		}
	}
	return false
}

func (u usedLines) claim(ranges []Range) {
	for _, r := range ranges {
		for i := r.Start; i <= r.End; i++ {
			u[i] = true
		}
	}
}

// Find splits text into lines and returns its duplicate groups
func Find(text string) []Group {
	return FindGroups(SplitLines(text))
}

// FindGroups returns the duplicated blocks of lines, largest blocks first.
//
// lines must be the full physical line sequence as returned by SplitLines; blank lines are
// skipped when forming windows but are kept for index bookkeeping. Windows are searched
// from half the number of non-empty lines down to a single line, and every accepted
// group claims its lines so that no line is reported by more than one group.
func FindGroups(lines []Line) []Group {
	seq := NonEmpty(lines)
	used := newUsedLines(physicalCount(lines))

	groups := make([]Group, 0)
	for w := len(seq) / 2; w >= 1; w-- {
		for p := 0; p+w <= len(seq); p++ {
			window := seq[p : p+w]
			if used[window[0].Index] || onlyBraces(window) {
				continue
			}

			occurrences := coalesce(matches(seq, window))
			if len(occurrences) < 2 {
				continue
			}
			// a larger block already owns some of these lines
			if used.anyUsed(occurrences) {
				continue
			}
			used.claim(occurrences)
			groups = append(groups, Group(occurrences))
		}
	}
	return groups
}

// physicalCount sizes the marker table so that every Index in lines is addressable
func physicalCount(lines []Line) int {
	total := len(lines)
	for _, l := range lines {
		if l.Index >= total {
			total = l.Index + 1
		}
	}
	return total
}

// matches returns the range of every window of seq equal to pattern, in increasing start order
func matches(seq []Line, pattern []Line) []Range {
	w := len(pattern)
	ranges := make([]Range, 0)
	for q := 0; q+w <= len(seq); q++ {
		candidate := seq[q : q+w]
		if windowsEqual(candidate, pattern) {
			ranges = append(ranges, Range{Start: candidate[0].Index, End: candidate[w-1].Index})
		}
	}
	return ranges
}

// coalesce collapses overlapping placements of the same repeating run into one occurrence.
// A range starting no later than the kept range ends is dropped; the kept range is not extended.
func coalesce(ranges []Range) []Range {
	if len(ranges) == 0 {
		return ranges
	}
	merged := make([]Range, 0, len(ranges))
	current := ranges[0]
	for _, next := range ranges[1:] {
		if current.End >= next.Start {
			continue
		}
		merged = append(merged, current)
		current = next
	}
	return append(merged, current)
}
