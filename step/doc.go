// Package step is the small boolean algebra describing one transition step
// of an automaton built from an LTL formula.
//
// What
//
//   - Const:  true / false.
//   - Letter: "proposition P is (not) in the current letter".
//   - Defer:  "LTL obligation F must hold from the next step on"; an opaque
//     reference to an ltl.Formula that this package never looks into.
//   - Or, And.
//
// A step-formula is produced per automaton state by the expansion rule in
// package aba, then resolved once per alphabet letter: Resolve replaces every
// Letter leaf by a constant, leaving a formula whose only non-constant leaves
// are Defer obligations. Package nba reads those as existential (Or) and
// universal (And) branching.
//
// Normal form
//
//	Normalize folds constants: true | x = true, false | x = x,
//	false & x = false, true & x = x. It does not reorder or deduplicate.
package step
