// SPDX-License-Identifier: MIT
// Package ltl: rewriting into the minimal operator basis.

package ltl

// Normalize returns a formula equivalent to f that uses only constants,
// propositions, ~, |, &, X and U.
//
// Rewrites:
//
//	p -> q  ≡  ~p | q
//	F p     ≡  true U p
//	G p     ≡  ~(true U ~p)
//	p R q   ≡  ~(~p U ~q)
//
// Each rewritten form is normalized again. Double negation collapses, a
// negated constant folds, and | / & absorb constant operands. Normalize is
// total and idempotent; nodes already in normal form are returned as is.
func Normalize(f *Formula) *Formula {
	switch f.kind {
	case KindConst, KindProp:
		return f

	case KindNot:
		inner := Normalize(f.left)
		switch inner.kind {
		case KindNot:
			return inner.left
		case KindConst:
			return Const(!inner.value)
		}
		if inner == f.left {
			return f
		}
		return Not(inner)

	case KindOr:
		l, r := Normalize(f.left), Normalize(f.right)
		if l.kind == KindConst {
			if l.value {
				return True()
			}
			return r
		}
		if r.kind == KindConst {
			if r.value {
				return True()
			}
			return l
		}
		if l == f.left && r == f.right {
			return f
		}
		return Or(l, r)

	case KindAnd:
		l, r := Normalize(f.left), Normalize(f.right)
		if l.kind == KindConst {
			if !l.value {
				return False()
			}
			return r
		}
		if r.kind == KindConst {
			if !r.value {
				return False()
			}
			return l
		}
		if l == f.left && r == f.right {
			return f
		}
		return And(l, r)

	case KindImplies:
		return Normalize(Or(Not(f.left), f.right))

	case KindNext:
		inner := Normalize(f.left)
		if inner == f.left {
			return f
		}
		return Next(inner)

	case KindEventually:
		return Normalize(Until(True(), f.left))

	case KindGlobally:
		return Normalize(Not(Until(True(), Not(f.left))))

	case KindUntil:
		l, r := Normalize(f.left), Normalize(f.right)
		if l == f.left && r == f.right {
			return f
		}
		return Until(l, r)

	case KindRelease:
		return Normalize(Not(Until(Not(f.left), Not(f.right))))

	default:
		panic("ltl: normalize: unknown kind " + f.kind.String())
	}
}

// IsNormal reports whether every node of f belongs to the basis produced by
// Normalize.
func IsNormal(f *Formula) bool {
	ok := true
	Walk(f, func(n *Formula) bool {
		switch n.kind {
		case KindConst, KindProp, KindNot, KindOr, KindAnd, KindNext, KindUntil:
			return true
		}
		ok = false
		return false
	})
	return ok
}
