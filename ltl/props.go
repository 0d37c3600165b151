// SPDX-License-Identifier: MIT
// Package ltl: proposition queries.

package ltl

import "golang.org/x/exp/slices"

// Occurrences lists every proposition name in f, left to right, repeats included.
func Occurrences(f *Formula) []string {
	var names []string
	Walk(f, func(n *Formula) bool {
		if n.kind == KindProp {
			names = append(names, n.name)
		}
		return true
	})
	return names
}

// FreeVars returns the propositions referenced anywhere in f, sorted and
// deduplicated.
func FreeVars(f *Formula) []string {
	names := Occurrences(f)
	slices.Sort(names)
	return slices.Compact(names)
}
