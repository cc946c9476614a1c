package f

import (
	"maps"
	"slices"
)

type Set[T comparable] map[T]struct{}

func NewSet[T comparable](items ...T) Set[T] {
	s := make(Set[T], len(items))
	for _, item := range items {
		s.Add(item)
	}
	return s
}

func (s Set[T]) Add(item T) {
	s[item] = struct{}{}
}

func (s Set[T]) Contains(item T) bool {
	_, found := s[item]
	return found
}

func (s Set[T]) Items() []T {
	return slices.Collect(maps.Keys(s))
}

func Map[T, U any](ts []T, f func(T) U) []U {
	us := make([]U, len(ts))
	for i, t := range ts {
		us[i] = f(t)
	}
	return us
}

func Filtered[T any](ts []T, f func(T) bool) []T {
	filtered := make([]T, 0)
	for _, t := range ts {
		if f(t) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// Any reports whether f holds for at least one item
func Any[T any](ts []T, f func(T) bool) bool {
	return slices.ContainsFunc(ts, f)
}

func Sum[T any](ts []T, f func(T) int) int {
	total := 0
	for _, t := range ts {
		total += f(t)
	}
	return total
}
