// Package util contains small helpers shared by the rest of the module that
// don't fit anywhere else.
package util

import (
	"sort"
	"strings"
)

// MakeTextList joins the given items into a single English list, with an
// oxford comma when there are three or more.
func MakeTextList(items []string) string {
	if len(items) < 1 {
		return ""
	}

	if len(items) == 1 {
		return items[0]
	}
	if len(items) == 2 {
		return items[0] + " and " + items[1]
	}

	joined := make([]string, len(items))
	copy(joined, items)
	joined[len(joined)-1] = "and " + joined[len(joined)-1]
	return strings.Join(joined, ", ")
}

// OrderedKeys returns the keys of m, ordered a particular way. The order is
// guaranteed to be the same on every run.
//
// As of this writing, the order is alphabetical, but this function does not
// guarantee this will always be the case.
func OrderedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
