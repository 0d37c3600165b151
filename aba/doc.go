// Package aba builds the alternating Büchi automaton (ABA) of a normal-form
// LTL formula.
//
// What
//
//   - Alphabet: every subset of the root's free propositions. A Letter is a
//     bit mask over the sorted proposition list; Format renders it as the
//     sorted, comma-joined member list ("" for the empty letter).
//   - States: the content hashes of every obligation reachable from the root
//     through the expansion rule, the root first.
//   - Transitions: for each state and letter, a step.Formula whose only
//     non-constant leaves are deferred obligations (other states). Or means
//     an existential choice, And a universal one.
//   - Accepting states: obligations of the shape ~(a U b).
//
// Algorithm
//
//  1. Alphabet = powerset of ltl.FreeVars(root).
//  2. FIFO worklist + table keyed by ltl.Hash, both seeded with root.
//  3. Pop e; record it; mark accepting if ~(a U b); compute Expand(e);
//     enqueue every deferred obligation not seen before.
//  4. Resolve every expansion against every letter and check that no
//     letter test survived.
//
// Complexity
//
//	n obligations (at most linear in the closure of the root under the
//	expansion rule), 2^k letters for k propositions: O(n · 2^k) resolutions.
//
// Usage
//
//	root := ltl.Normalize(ltl.MustParse("G (req -> F grant)"))
//	a, err := aba.Build(root, aba.WithLogger(logger))
//	if err != nil {
//		// ErrNotNormalized, ErrTooManyPropositions, ...
//	}
//	for _, h := range a.States() {
//		for _, l := range a.Alphabet().Letters() {
//			t, _ := a.Transition(h, l)
//			fmt.Println(h.Short(), a.Alphabet().Format(l), t)
//		}
//	}
//
// Errors
//
//   - ErrNilFormula, ErrNotNormalized     caller contract violations.
//   - ErrInvalidProposition               name that is not an identifier, or a keyword.
//   - ErrTooManyPropositions              alphabet above WithMaxPropositions.
//   - ErrOptionViolation                  invalid Option.
//   - ErrUnresolvedLeaf                   internal invariant; never expected.
//   - ErrUnknownState, ErrUnknownLetter   lookups on a built ABA.
package aba
