// SPDX-License-Identifier: MIT
// Package ltl: formula node types, constructors and accessors.
//
// A Formula is immutable once constructed. Every node carries its canonical
// rendering and the content Hash derived from it, both computed once in the
// constructor, so String and Hash are O(1).

package ltl

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
)

// Kind enumerates the closed set of formula variants.
type Kind uint8

const (
	KindConst Kind = iota
	KindProp
	KindNot
	KindOr
	KindAnd
	KindImplies
	KindNext
	KindEventually
	KindGlobally
	KindUntil
	KindRelease
)

var kindNames = [...]string{
	KindConst:      "const",
	KindProp:       "prop",
	KindNot:        "not",
	KindOr:         "or",
	KindAnd:        "and",
	KindImplies:    "implies",
	KindNext:       "next",
	KindEventually: "eventually",
	KindGlobally:   "globally",
	KindUntil:      "until",
	KindRelease:    "release",
}

// String returns the lower-case variant name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Unary reports whether k has exactly one operand.
func (k Kind) Unary() bool {
	return k == KindNot || k == KindNext || k == KindEventually || k == KindGlobally
}

// Binary reports whether k has a left and a right operand.
func (k Kind) Binary() bool {
	switch k {
	case KindOr, KindAnd, KindImplies, KindUntil, KindRelease:
		return true
	}
	return false
}

// Hash is the content identity of a formula: the hex MD5 digest of its
// canonical rendering. Two formulas with the same rendering share a Hash.
type Hash string

// Short returns the first eight hex digits, enough to tell states apart in logs.
func (h Hash) Short() string {
	if len(h) < 8 {
		return string(h)
	}
	return string(h[:8])
}

// hashOf digests a canonical rendering.
func hashOf(text string) Hash {
	sum := md5.Sum([]byte(text))
	return Hash(hex.EncodeToString(sum[:]))
}

// Formula is one node of an LTL syntax tree.
//
// Operands are owned by the node; trees are never mutated, so sharing a
// sub-formula between trees is safe.
type Formula struct {
	kind  Kind
	value bool     // KindConst
	name  string   // KindProp
	left  *Formula // unary operand, or left operand
	right *Formula // right operand of binary kinds

	text string
	hash Hash
}

func newNode(kind Kind, left, right *Formula) *Formula {
	f := &Formula{kind: kind, left: left, right: right}
	f.seal()
	return f
}

// seal computes the cached rendering and hash.
func (f *Formula) seal() {
	f.text = render(f)
	f.hash = hashOf(f.text)
}

var (
	trueNode  = func() *Formula { f := &Formula{kind: KindConst, value: true}; f.seal(); return f }()
	falseNode = func() *Formula { f := &Formula{kind: KindConst, value: false}; f.seal(); return f }()
)

// True returns the constant true.
func True() *Formula { return trueNode }

// False returns the constant false.
func False() *Formula { return falseNode }

// Const returns the boolean constant v.
func Const(v bool) *Formula {
	if v {
		return trueNode
	}
	return falseNode
}

// Prop returns the atomic proposition with the given name.
// Names are taken verbatim; Parse only produces identifiers (see IsIdent),
// and aba.Build rejects any other name.
func Prop(name string) *Formula {
	f := &Formula{kind: KindProp, name: name}
	f.seal()
	return f
}

// Not returns ~f.
func Not(f *Formula) *Formula { return newNode(KindNot, mustOperand(f), nil) }

// Or returns l | r.
func Or(l, r *Formula) *Formula { return newNode(KindOr, mustOperand(l), mustOperand(r)) }

// And returns l & r.
func And(l, r *Formula) *Formula { return newNode(KindAnd, mustOperand(l), mustOperand(r)) }

// Implies returns l -> r.
func Implies(l, r *Formula) *Formula { return newNode(KindImplies, mustOperand(l), mustOperand(r)) }

// Next returns X f.
func Next(f *Formula) *Formula { return newNode(KindNext, mustOperand(f), nil) }

// Eventually returns F f.
func Eventually(f *Formula) *Formula { return newNode(KindEventually, mustOperand(f), nil) }

// Globally returns G f.
func Globally(f *Formula) *Formula { return newNode(KindGlobally, mustOperand(f), nil) }

// Until returns l U r.
func Until(l, r *Formula) *Formula { return newNode(KindUntil, mustOperand(l), mustOperand(r)) }

// Release returns l R r.
func Release(l, r *Formula) *Formula { return newNode(KindRelease, mustOperand(l), mustOperand(r)) }

// mustOperand rejects nil operands; a nil child is a programming error.
func mustOperand(f *Formula) *Formula {
	if f == nil {
		panic("ltl: nil operand")
	}
	return f
}

// Kind returns the variant of f.
func (f *Formula) Kind() Kind { return f.kind }

// Value returns the truth value of a KindConst node.
func (f *Formula) Value() bool { return f.value }

// Name returns the proposition name of a KindProp node.
func (f *Formula) Name() string { return f.name }

// Operand returns the single operand of a unary node.
func (f *Formula) Operand() *Formula { return f.left }

// Left returns the left operand of a binary node.
func (f *Formula) Left() *Formula { return f.left }

// Right returns the right operand of a binary node.
func (f *Formula) Right() *Formula { return f.right }

// String returns the canonical rendering.
func (f *Formula) String() string { return f.text }

// Hash returns the content hash of the canonical rendering.
func (f *Formula) Hash() Hash { return f.hash }

// Equal reports whether f and g render identically.
func (f *Formula) Equal(g *Formula) bool {
	if f == nil || g == nil {
		return f == g
	}
	return f.hash == g.hash
}

// IsNegatedUntil reports whether f has the shape ~(a U b).
// Such formulas are the accepting states of the alternating automaton.
func IsNegatedUntil(f *Formula) bool {
	return f.kind == KindNot && f.left.kind == KindUntil
}

// Size returns the number of nodes in f.
func (f *Formula) Size() int {
	n := 0
	Walk(f, func(*Formula) bool { n++; return true })
	return n
}

// Walk visits f and its descendants in pre-order. Returning false from fn
// skips the children of the current node.
func Walk(f *Formula, fn func(*Formula) bool) {
	stack := []*Formula{f}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(n) {
			continue
		}
		// push right first so the left operand is visited first
		if n.right != nil {
			stack = append(stack, n.right)
		}
		if n.left != nil {
			stack = append(stack, n.left)
		}
	}
}
