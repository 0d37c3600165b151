package aba

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/ltl2nba/ltl"
	"github.com/katalvlaran/ltl2nba/step"
)

// builder owns the worklist and the discovered-state table of one Build call.
type builder struct {
	ctx   context.Context
	log   *slog.Logger
	queue []*ltl.Formula
	res   *ABA
}

// Build constructs the alternating automaton of root, which must already be
// in normal form (see ltl.Normalize).
//
// Obligations are discovered breadth-first from root: each popped formula
// becomes a state, its one-step expansion (see Expand) is stored, and every
// obligation it defers to that has not been seen yet is enqueued. Once the
// worklist drains, every expansion is resolved against every letter.
//
// Returns ErrNilFormula, ErrNotNormalized, ErrInvalidProposition,
// ErrTooManyPropositions, ErrOptionViolation, ErrUnresolvedLeaf, or the
// context error on cancellation.
func Build(root *ltl.Formula, opts ...Option) (*ABA, error) {
	if root == nil {
		return nil, ErrNilFormula
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if !ltl.IsNormal(root) {
		return nil, fmt.Errorf("%w: %s", ErrNotNormalized, root)
	}

	props := ltl.FreeVars(root)
	if len(props) > o.MaxPropositions {
		return nil, fmt.Errorf("%w: %d propositions, limit %d", ErrTooManyPropositions, len(props), o.MaxPropositions)
	}
	alphabet, err := NewAlphabet(props)
	if err != nil {
		return nil, err
	}

	b := &builder{
		ctx: o.Ctx,
		log: o.Logger,
		res: &ABA{
			alphabet:  alphabet,
			formulas:  make(map[ltl.Hash]*ltl.Formula),
			expansion: make(map[ltl.Hash]*step.Formula),
			delta:     make(map[ltl.Hash][]*step.Formula),
			initial:   root.Hash(),
			accepting: make(map[ltl.Hash]bool),
		},
	}
	b.discover(root)
	if err := b.loop(); err != nil {
		return nil, err
	}
	if err := b.resolve(); err != nil {
		return nil, err
	}

	b.log.Debug("aba: built",
		"states", len(b.res.states),
		"accepting", len(b.res.Accepting()),
		"letters", alphabet.Size())
	return b.res, nil
}

// discover records f in the state table and enqueues it unless its hash is
// already known.
func (b *builder) discover(f *ltl.Formula) {
	h := f.Hash()
	if _, seen := b.res.formulas[h]; seen {
		return
	}
	b.res.formulas[h] = f
	b.queue = append(b.queue, f)
	b.log.Debug("aba: state discovered", "state", h.Short(), "formula", f.String())
}

// loop expands queued obligations until the closure is complete.
func (b *builder) loop() error {
	for len(b.queue) > 0 {
		select {
		case <-b.ctx.Done():
			return b.ctx.Err()
		default:
		}

		e := b.queue[0]
		b.queue = b.queue[1:]

		h := e.Hash()
		b.res.states = append(b.res.states, h)
		if ltl.IsNegatedUntil(e) {
			b.res.accepting[h] = true
		}

		rho, err := Expand(e)
		if err != nil {
			return err
		}
		b.res.expansion[h] = rho
		for _, ref := range rho.Refs() {
			b.discover(ref)
		}
	}
	return nil
}

// resolve fills the transition table: one resolved step-formula per state
// and letter.
func (b *builder) resolve() error {
	alphabet := b.res.alphabet
	letters := alphabet.Letters()
	for _, h := range b.res.states {
		rho := b.res.expansion[h]
		row := make([]*step.Formula, len(letters))
		for _, l := range letters {
			r := rho.Resolve(func(p string) bool { return alphabet.Has(l, p) })
			if !r.Resolved() {
				return fmt.Errorf("%w: state %s, letter {%s}: %s", ErrUnresolvedLeaf, h.Short(), alphabet.Format(l), r)
			}
			row[l] = r
		}
		b.res.delta[h] = row
	}
	return nil
}
