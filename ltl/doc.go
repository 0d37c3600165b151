// Package ltl defines Linear Temporal Logic formulas: construction, canonical
// rendering, content hashing, normalization and parsing.
//
// What
//
//   - Formula: immutable syntax tree over constants, propositions, ~ | & ->,
//     and the temporal operators X (next), F (eventually), G (globally),
//     U (until) and R (release).
//   - String: canonical, parenthesization-minimal rendering, e.g. "~ (true U ~ p)".
//   - Hash: MD5 of the canonical rendering; identical renderings share a Hash.
//   - Normalize: rewrite into the basis {const, prop, ~, |, &, X, U}.
//   - FreeVars: the sorted set of proposition names.
//   - Parse: the textual grammar; Parse(f.String()) reproduces f.
//
// Why
//
//	Automaton construction identifies obligations by content. Two rewrite
//	paths that produce the same sub-formula must land on the same state,
//	which is what the content Hash gives the builders in package aba.
//
// Normal form
//
//	p -> q  ≡  ~p | q
//	F p     ≡  true U p
//	G p     ≡  ~(true U ~p)
//	p R q   ≡  ~(~p U ~q)
//
//	Double negation collapses and constants are absorbed by | and &.
//	Normalize is total and idempotent.
//
// Complexity (n = number of nodes)
//
//   - Construction: O(n·d) rendering work overall, d = tree depth.
//   - Normalize:    O(n·d), the rewrites add a constant number of nodes each.
//   - Parse:        O(len(text)).
//
// Usage
//
//	f, err := ltl.Parse("G (req -> F grant)")
//	if err != nil {
//		// errors.Is(err, ltl.ErrSyntax); err.(*ltl.SyntaxError).Offset
//	}
//	n := ltl.Normalize(f)
//	fmt.Println(n, n.Hash().Short(), ltl.FreeVars(n))
//
// Errors
//
//   - ErrSyntax (*SyntaxError with Offset and Msg) from Parse.
package ltl
