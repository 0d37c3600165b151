// SPDX-License-Identifier: MIT
// Package ltl: canonical rendering.
//
// The rendering is the hashing input, so it must be deterministic and must
// round-trip through Parse. Parentheses appear only where precedence or
// associativity would otherwise change the parse.

package ltl

import "strings"

// Binding strength, loosest first.
const (
	precImplies = 1 + iota
	precOr
	precAnd
	precTemporal
	precUnary
	precAtom
)

func precedence(f *Formula) int {
	switch f.kind {
	case KindImplies:
		return precImplies
	case KindOr:
		return precOr
	case KindAnd:
		return precAnd
	case KindUntil, KindRelease:
		return precTemporal
	case KindNot, KindNext, KindEventually, KindGlobally:
		return precUnary
	default:
		return precAtom
	}
}

// rightAssoc reports whether a chain of f's operator groups to the right.
func rightAssoc(k Kind) bool {
	return k == KindImplies || k == KindUntil || k == KindRelease
}

var operatorTokens = map[Kind]string{
	KindNot:        "~",
	KindNext:       "X",
	KindEventually: "F",
	KindGlobally:   "G",
	KindOr:         "|",
	KindAnd:        "&",
	KindImplies:    "->",
	KindUntil:      "U",
	KindRelease:    "R",
}

// render builds the canonical text of f from the cached text of its operands.
func render(f *Formula) string {
	switch {
	case f.kind == KindConst:
		if f.value {
			return "true"
		}
		return "false"
	case f.kind == KindProp:
		return f.name
	case f.kind.Unary():
		return operatorTokens[f.kind] + " " + wrap(f.left, precedence(f.left) < precUnary)
	case f.kind.Binary():
		p := precedence(f)
		lp, rp := precedence(f.left), precedence(f.right)
		ra := rightAssoc(f.kind)

		var sb strings.Builder
		sb.WriteString(wrap(f.left, lp < p || (lp == p && ra)))
		sb.WriteByte(' ')
		sb.WriteString(operatorTokens[f.kind])
		sb.WriteByte(' ')
		sb.WriteString(wrap(f.right, rp < p || (rp == p && !ra)))
		return sb.String()
	default:
		return "<" + f.kind.String() + ">"
	}
}

func wrap(f *Formula, paren bool) string {
	if paren {
		return "(" + f.text + ")"
	}
	return f.text
}
