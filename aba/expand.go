package aba

import (
	"fmt"

	"github.com/katalvlaran/ltl2nba/ltl"
	"github.com/katalvlaran/ltl2nba/step"
)

// Expand computes the one-step expansion rho(f) of a normal-form formula:
// what must hold of the current letter, and which obligations are deferred
// to the next step.
//
//	rho(c)       = c
//	rho(p)       = p ∈ letter
//	rho(~a)      = negation pushed through rho(a)
//	rho(a | b)   = rho(a) | rho(b)
//	rho(a & b)   = rho(a) & rho(b)
//	rho(X a)     = [a]
//	rho(a U b)   = rho(b) | (rho(a) & [a U b])
//
// The result is normalized. Operators outside the normal basis yield
// ErrNotNormalized.
func Expand(f *ltl.Formula) (*step.Formula, error) {
	switch f.Kind() {
	case ltl.KindConst:
		return step.Const(f.Value()), nil

	case ltl.KindProp:
		return step.Letter(f.Name(), false), nil

	case ltl.KindNot:
		inner, err := Expand(f.Operand())
		if err != nil {
			return nil, err
		}
		return negate(inner).Normalize(), nil

	case ltl.KindOr, ltl.KindAnd:
		l, err := Expand(f.Left())
		if err != nil {
			return nil, err
		}
		r, err := Expand(f.Right())
		if err != nil {
			return nil, err
		}
		if f.Kind() == ltl.KindOr {
			return step.Or(l, r).Normalize(), nil
		}
		return step.And(l, r).Normalize(), nil

	case ltl.KindNext:
		return step.Defer(f.Operand()), nil

	case ltl.KindUntil:
		l, err := Expand(f.Left())
		if err != nil {
			return nil, err
		}
		r, err := Expand(f.Right())
		if err != nil {
			return nil, err
		}
		return step.Or(r, step.And(l, step.Defer(f))).Normalize(), nil

	default:
		return nil, fmt.Errorf("%w: %s node in %q", ErrNotNormalized, f.Kind(), f)
	}
}

// negate pushes a negation through a step-formula. A deferred obligation is
// negated at the LTL level, ~a normalized, and deferred again; that is how
// ~(a U b) obligations enter the state space.
func negate(s *step.Formula) *step.Formula {
	switch s.Kind() {
	case step.KindConst:
		return step.Const(!s.Value())
	case step.KindLetter:
		return step.Letter(s.Prop(), !s.Negated())
	case step.KindDefer:
		return step.Defer(ltl.Normalize(ltl.Not(s.Ref())))
	case step.KindOr:
		return step.And(negate(s.Left()), negate(s.Right()))
	case step.KindAnd:
		return step.Or(negate(s.Left()), negate(s.Right()))
	default:
		panic("aba: negate: unknown step kind " + s.Kind().String())
	}
}
