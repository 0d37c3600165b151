// Package step is the one-step transition algebra shared by the automaton
// builders.
package step

import (
	"fmt"

	"github.com/katalvlaran/ltl2nba/ltl"
)

// Kind enumerates the closed set of step-formula variants.
type Kind uint8

const (
	// KindConst is a boolean constant.
	KindConst Kind = iota
	// KindLetter tests whether the current letter contains a proposition,
	// or excludes it when negated.
	KindLetter
	// KindDefer defers an LTL obligation to the next step.
	KindDefer
	// KindOr is a disjunction.
	KindOr
	// KindAnd is a conjunction.
	KindAnd
)

func (k Kind) String() string {
	switch k {
	case KindConst:
		return "const"
	case KindLetter:
		return "letter"
	case KindDefer:
		return "defer"
	case KindOr:
		return "or"
	case KindAnd:
		return "and"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Formula is an immutable step-formula node.
type Formula struct {
	kind    Kind
	value   bool         // KindConst
	prop    string       // KindLetter
	negated bool         // KindLetter
	ref     *ltl.Formula // KindDefer
	left    *Formula     // KindOr, KindAnd
	right   *Formula     // KindOr, KindAnd
}

var (
	trueStep  = &Formula{kind: KindConst, value: true}
	falseStep = &Formula{kind: KindConst, value: false}
)

// True returns the constant true.
func True() *Formula { return trueStep }

// False returns the constant false.
func False() *Formula { return falseStep }

// Const returns the constant v.
func Const(v bool) *Formula {
	if v {
		return trueStep
	}
	return falseStep
}

// Letter returns the membership test "prop is in the current letter", or
// "prop is not in the current letter" when negated is set.
func Letter(prop string, negated bool) *Formula {
	return &Formula{kind: KindLetter, prop: prop, negated: negated}
}

// Defer returns an obligation that f holds from the next step on.
func Defer(f *ltl.Formula) *Formula {
	if f == nil {
		panic("step: nil obligation")
	}
	return &Formula{kind: KindDefer, ref: f}
}

// Or returns l | r without folding; call Normalize to fold constants.
func Or(l, r *Formula) *Formula { return &Formula{kind: KindOr, left: l, right: r} }

// And returns l & r without folding; call Normalize to fold constants.
func And(l, r *Formula) *Formula { return &Formula{kind: KindAnd, left: l, right: r} }

// Kind returns the variant of f.
func (f *Formula) Kind() Kind { return f.kind }

// Value returns the truth value of a KindConst node.
func (f *Formula) Value() bool { return f.value }

// Prop returns the proposition tested by a KindLetter node.
func (f *Formula) Prop() string { return f.prop }

// Negated reports whether a KindLetter node tests for absence.
func (f *Formula) Negated() bool { return f.negated }

// Ref returns the obligation of a KindDefer node.
func (f *Formula) Ref() *ltl.Formula { return f.ref }

// Left returns the left operand of KindOr / KindAnd.
func (f *Formula) Left() *Formula { return f.left }

// Right returns the right operand of KindOr / KindAnd.
func (f *Formula) Right() *Formula { return f.right }

// IsConst reports whether f is the constant v.
func (f *Formula) IsConst(v bool) bool { return f.kind == KindConst && f.value == v }
