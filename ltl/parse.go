// SPDX-License-Identifier: MIT
// Package ltl: textual grammar.
//
//	expr     := or ( ("->" | "=>") expr )?
//	or       := and ( ("|" | "||") and )*
//	and      := temporal ( ("&" | "&&") temporal )*
//	temporal := unary ( ("U" | "R") temporal )?
//	unary    := ("~" | "!" | "X" | "F" | "G") unary | primary
//	primary  := "true" | "false" | IDENT | "(" expr ")"
//
// IDENT is [A-Za-z_][A-Za-z0-9_.]* minus the keywords X F G U R true false.

package ltl

import (
	"fmt"
)

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokIdent
	tokTrue
	tokFalse
	tokLParen
	tokRParen
	tokNot
	tokNext
	tokEventually
	tokGlobally
	tokUntil
	tokRelease
	tokAnd
	tokOr
	tokImplies
)

type token struct {
	kind   tokenKind
	text   string
	offset int
}

var keywords = map[string]tokenKind{
	"true":  tokTrue,
	"false": tokFalse,
	"X":     tokNext,
	"F":     tokEventually,
	"G":     tokGlobally,
	"U":     tokUntil,
	"R":     tokRelease,
}

func isIdentStart(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || ('0' <= c && c <= '9') || c == '.'
}

// IsIdent reports whether name is a proposition Parse can produce: it
// matches [A-Za-z_][A-Za-z0-9_.]* and is not a keyword.
func IsIdent(name string) bool {
	if name == "" || !isIdentStart(name[0]) {
		return false
	}
	for i := 1; i < len(name); i++ {
		if !isIdentPart(name[i]) {
			return false
		}
	}
	_, kw := keywords[name]
	return !kw
}

// lex splits text into tokens; the final token is always tokEOF.
func lex(text string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(text) {
		c := text[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '(':
			toks = append(toks, token{tokLParen, "(", i})
			i++
		case c == ')':
			toks = append(toks, token{tokRParen, ")", i})
			i++
		case c == '~' || c == '!':
			toks = append(toks, token{tokNot, text[i : i+1], i})
			i++
		case c == '&' || c == '|':
			kind := tokAnd
			if c == '|' {
				kind = tokOr
			}
			n := 1
			if i+1 < len(text) && text[i+1] == c {
				n = 2
			}
			toks = append(toks, token{kind, text[i : i+n], i})
			i += n
		case c == '-' || c == '=':
			if i+1 >= len(text) || text[i+1] != '>' {
				return nil, &SyntaxError{Offset: i, Msg: fmt.Sprintf("expected '>' after %q", c)}
			}
			toks = append(toks, token{tokImplies, text[i : i+2], i})
			i += 2
		case isIdentStart(c):
			start := i
			for i < len(text) && isIdentPart(text[i]) {
				i++
			}
			word := text[start:i]
			kind, ok := keywords[word]
			if !ok {
				kind = tokIdent
			}
			toks = append(toks, token{kind, word, start})
		default:
			return nil, &SyntaxError{Offset: i, Msg: fmt.Sprintf("unexpected character %q", c)}
		}
	}
	return append(toks, token{tokEOF, "", len(text)}), nil
}

type parser struct {
	toks []token
	pos  int
}

// Parse reads a formula in the textual grammar. Errors are *SyntaxError and
// match ErrSyntax.
func Parse(text string) (*Formula, error) {
	toks, err := lex(text)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	f, err := p.expr()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, p.unexpected(t)
	}
	return f, nil
}

// MustParse is like Parse but panics on error.
func MustParse(text string) *Formula {
	f, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return f
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) unexpected(t token) error {
	if t.kind == tokEOF {
		return &SyntaxError{Offset: t.offset, Msg: "unexpected end of input"}
	}
	return &SyntaxError{Offset: t.offset, Msg: fmt.Sprintf("unexpected %q", t.text)}
}

func (p *parser) expr() (*Formula, error) {
	l, err := p.or()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokImplies {
		return l, nil
	}
	p.next()
	r, err := p.expr()
	if err != nil {
		return nil, err
	}
	return Implies(l, r), nil
}

func (p *parser) or() (*Formula, error) {
	l, err := p.and()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokOr {
		p.next()
		r, err := p.and()
		if err != nil {
			return nil, err
		}
		l = Or(l, r)
	}
	return l, nil
}

func (p *parser) and() (*Formula, error) {
	l, err := p.temporal()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokAnd {
		p.next()
		r, err := p.temporal()
		if err != nil {
			return nil, err
		}
		l = And(l, r)
	}
	return l, nil
}

func (p *parser) temporal() (*Formula, error) {
	l, err := p.unary()
	if err != nil {
		return nil, err
	}
	op := p.peek().kind
	if op != tokUntil && op != tokRelease {
		return l, nil
	}
	p.next()
	r, err := p.temporal()
	if err != nil {
		return nil, err
	}
	if op == tokUntil {
		return Until(l, r), nil
	}
	return Release(l, r), nil
}

func (p *parser) unary() (*Formula, error) {
	var build func(*Formula) *Formula
	switch p.peek().kind {
	case tokNot:
		build = Not
	case tokNext:
		build = Next
	case tokEventually:
		build = Eventually
	case tokGlobally:
		build = Globally
	default:
		return p.primary()
	}
	p.next()
	f, err := p.unary()
	if err != nil {
		return nil, err
	}
	return build(f), nil
}

func (p *parser) primary() (*Formula, error) {
	t := p.next()
	switch t.kind {
	case tokTrue:
		return True(), nil
	case tokFalse:
		return False(), nil
	case tokIdent:
		return Prop(t.text), nil
	case tokLParen:
		f, err := p.expr()
		if err != nil {
			return nil, err
		}
		if c := p.next(); c.kind != tokRParen {
			if c.kind == tokEOF {
				return nil, &SyntaxError{Offset: c.offset, Msg: fmt.Sprintf("missing ')' to close '(' at offset %d", t.offset)}
			}
			return nil, &SyntaxError{Offset: c.offset, Msg: fmt.Sprintf("expected ')', found %q", c.text)}
		}
		return f, nil
	default:
		return nil, p.unexpected(t)
	}
}
