package step

import (
	"strings"

	"github.com/katalvlaran/ltl2nba/ltl"
)

// Normalize folds constants out of Or / And nodes. Defer nodes are leaves:
// the obligation they reference is never inspected.
func (f *Formula) Normalize() *Formula {
	switch f.kind {
	case KindOr:
		l, r := f.left.Normalize(), f.right.Normalize()
		switch {
		case l.IsConst(true), r.IsConst(true):
			return True()
		case l.IsConst(false):
			return r
		case r.IsConst(false):
			return l
		}
		if l == f.left && r == f.right {
			return f
		}
		return Or(l, r)
	case KindAnd:
		l, r := f.left.Normalize(), f.right.Normalize()
		switch {
		case l.IsConst(false), r.IsConst(false):
			return False()
		case l.IsConst(true):
			return r
		case r.IsConst(true):
			return l
		}
		if l == f.left && r == f.right {
			return f
		}
		return And(l, r)
	default:
		return f
	}
}

// Resolve fixes the current letter: every Letter leaf becomes the constant
// it denotes under has, then the result is normalized. Defer leaves pass
// through untouched.
func (f *Formula) Resolve(has func(prop string) bool) *Formula {
	return f.substitute(has).Normalize()
}

func (f *Formula) substitute(has func(string) bool) *Formula {
	switch f.kind {
	case KindLetter:
		return Const(has(f.prop) != f.negated)
	case KindOr, KindAnd:
		l, r := f.left.substitute(has), f.right.substitute(has)
		if l == f.left && r == f.right {
			return f
		}
		return &Formula{kind: f.kind, left: l, right: r}
	default:
		return f
	}
}

// Resolved reports whether no Letter leaf is left in f.
func (f *Formula) Resolved() bool {
	switch f.kind {
	case KindLetter:
		return false
	case KindOr, KindAnd:
		return f.left.Resolved() && f.right.Resolved()
	default:
		return true
	}
}

// Refs returns the obligations referenced by f, left to right, repeats included.
func (f *Formula) Refs() []*ltl.Formula {
	var out []*ltl.Formula
	var walk func(*Formula)
	walk = func(n *Formula) {
		switch n.kind {
		case KindDefer:
			out = append(out, n.ref)
		case KindOr, KindAnd:
			walk(n.left)
			walk(n.right)
		}
	}
	walk(f)
	return out
}

// String renders f for display: true, p, ~p, [obligation], (a | b), (a & b).
func (f *Formula) String() string {
	var sb strings.Builder
	f.write(&sb)
	return sb.String()
}

func (f *Formula) write(sb *strings.Builder) {
	switch f.kind {
	case KindConst:
		if f.value {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
	case KindLetter:
		if f.negated {
			sb.WriteByte('~')
		}
		sb.WriteString(f.prop)
	case KindDefer:
		sb.WriteByte('[')
		sb.WriteString(f.ref.String())
		sb.WriteByte(']')
	case KindOr, KindAnd:
		op := " | "
		if f.kind == KindAnd {
			op = " & "
		}
		sb.WriteByte('(')
		f.left.write(sb)
		sb.WriteString(op)
		f.right.write(sb)
		sb.WriteByte(')')
	default:
		sb.WriteString("<" + f.kind.String() + ">")
	}
}
