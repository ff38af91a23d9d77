package utils

import "golang.org/x/exp/slices"

func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// Without returns a copy of slice with the first occurrence of item removed.
// The input slice is never modified.
func Without[T comparable](slice []T, item T) []T {
	out := slices.Clone(slice)
	if i := FindIndex(out, item); i >= 0 {
		out = slices.Delete(out, i, i+1)
	}
	return out
}

// With returns a copy of slice with item appended.
func With[T any](slice []T, item T) []T {
	out := make([]T, len(slice), len(slice)+1)
	copy(out, slice)
	return append(out, item)
}
