/*
Package ext is "language extensions", functionality that in a perfect world would be part of the golang standard library
*/
package ext

import (
	"strings"

	"github.com/samber/lo"
)

func DefaultValue[T comparable](value T, fallback T) T {
	var zero T
	if value == zero {
		return fallback
	}
	return value
}

// SplitList splits a comma-separated list, trimming whitespace around entries and dropping empty
// ones. Duplicates and order are preserved.
func SplitList(list string) []string {
	if strings.TrimSpace(list) == "" {
		return nil
	}
	return lo.Compact(lo.Map(strings.Split(list, ","), func(item string, _ int) string {
		return strings.TrimSpace(item)
	}))
}
