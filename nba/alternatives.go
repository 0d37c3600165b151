package nba

import (
	"fmt"

	"github.com/katalvlaran/ltl2nba/ltl"
	"github.com/katalvlaran/ltl2nba/step"
)

// delta is one way of discharging a resolved step-formula: the obligations
// placed in Q0 and Q1 of the successor.
type delta struct {
	q0 []ltl.Hash
	q1 []ltl.Hash
}

// resolveAlternatives reads a resolved step-formula as a disjunction of
// successor contributions.
//
//	false -> no alternative
//	true  -> one empty alternative
//	[f]   -> f into Q1 if fever or f is accepting, into Q0 otherwise
//	a | b -> alternatives of a followed by those of b
//	a & b -> pairwise unions (cross product)
func resolveAlternatives(s *step.Formula, fever bool, accepting func(ltl.Hash) bool) ([]delta, error) {
	switch s.Kind() {
	case step.KindConst:
		if s.Value() {
			return []delta{{}}, nil
		}
		return nil, nil

	case step.KindDefer:
		h := s.Ref().Hash()
		if fever || accepting(h) {
			return []delta{{q1: []ltl.Hash{h}}}, nil
		}
		return []delta{{q0: []ltl.Hash{h}}}, nil

	case step.KindOr:
		l, err := resolveAlternatives(s.Left(), fever, accepting)
		if err != nil {
			return nil, err
		}
		r, err := resolveAlternatives(s.Right(), fever, accepting)
		if err != nil {
			return nil, err
		}
		return append(l, r...), nil

	case step.KindAnd:
		l, err := resolveAlternatives(s.Left(), fever, accepting)
		if err != nil {
			return nil, err
		}
		r, err := resolveAlternatives(s.Right(), fever, accepting)
		if err != nil {
			return nil, err
		}
		return cross(l, r), nil

	case step.KindLetter:
		return nil, fmt.Errorf("%w: letter test %s survived resolution", ErrUnresolvedLeaf, s)

	default:
		return nil, fmt.Errorf("%w: unknown step kind %s", ErrUnresolvedLeaf, s.Kind())
	}
}

// cross returns every pairwise union of a and b, a-major.
func cross(a, b []delta) []delta {
	out := make([]delta, 0, len(a)*len(b))
	for _, x := range a {
		for _, y := range b {
			out = append(out, delta{
				q0: concat(x.q0, y.q0),
				q1: concat(x.q1, y.q1),
			})
		}
	}
	return out
}

func concat(a, b []ltl.Hash) []ltl.Hash {
	if len(a)+len(b) == 0 {
		return nil
	}
	out := make([]ltl.Hash, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}
