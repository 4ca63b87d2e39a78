package util

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/maps"
	"sort"
)

func ContainsString(s []string, e string) bool {
	for _, a := range s {
		if a == e {
			return true
		}
	}
	return false
}

func sortSlice[T constraints.Ordered](s []T) {
	sort.Slice(s, func(i, j int) bool {
		return s[i] < s[j]
	})
}

// SortedKeys returns the keys of the given map in ascending order
func SortedKeys[T constraints.Ordered, K any](input map[T]K) []T {
	result := maps.Keys(input)
	sortSlice(result)
	return result
}
