package duplicates

import f "github.com/multimediallc/dup-highlight/pkg/functional"

// Restrict keeps the groups with at least one occurrence overlapping a changed range.
// Groups are returned unmodified; an untouched occurrence stays in a kept group.
func Restrict(groups []Group, changed []Range) []Group {
	return f.Filtered(groups, func(g Group) bool {
		return f.Any(g, func(occurrence Range) bool {
			return f.Any(changed, occurrence.Overlaps)
		})
	})
}
