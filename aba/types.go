// Package aba defines the alternating Büchi automaton, its options and
// sentinel errors.
package aba

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/katalvlaran/ltl2nba/ltl"
	"github.com/katalvlaran/ltl2nba/step"
)

// Sentinel errors for ABA construction and lookup.
var (
	// ErrNilFormula is returned when Build receives a nil root.
	ErrNilFormula = errors.New("aba: formula is nil")

	// ErrNotNormalized is returned when the root (or an expanded obligation)
	// uses an operator outside the normal basis; callers must ltl.Normalize first.
	ErrNotNormalized = errors.New("aba: formula is not in normal form")

	// ErrUnresolvedLeaf signals an internal inconsistency: a letter test
	// survived resolution against a concrete letter.
	ErrUnresolvedLeaf = errors.New("aba: unresolved letter test after resolution")

	// ErrInvalidProposition is returned for a proposition name that is not
	// an identifier or is a keyword.
	ErrInvalidProposition = errors.New("aba: invalid proposition name")

	// ErrTooManyPropositions is returned when the alphabet would exceed the
	// configured proposition limit.
	ErrTooManyPropositions = errors.New("aba: too many propositions")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("aba: invalid option supplied")

	// ErrUnknownState is returned when a lookup names a hash that is not a state.
	ErrUnknownState = errors.New("aba: unknown state")

	// ErrUnknownLetter is returned when a lookup names a letter outside the alphabet.
	ErrUnknownLetter = errors.New("aba: unknown letter")
)

// DefaultMaxPropositions bounds the alphabet at 2^16 letters.
const DefaultMaxPropositions = 16

// Option configures Build via functional arguments.
type Option func(*Options)

// Options holds the parameters of Build.
type Options struct {
	// Ctx is checked once per worklist iteration.
	Ctx context.Context

	// Logger receives Debug records for discovered states and a summary.
	Logger *slog.Logger

	// MaxPropositions caps the number of free propositions of the root.
	MaxPropositions int

	err error
}

// DefaultOptions returns background context, a discarding logger and
// DefaultMaxPropositions.
func DefaultOptions() Options {
	return Options{
		Ctx:             context.Background(),
		Logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		MaxPropositions: DefaultMaxPropositions,
	}
}

// WithContext sets a context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithLogger sets the logger; nil keeps the default.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithMaxPropositions sets the proposition cap, 1 ≤ n ≤ 30.
func WithMaxPropositions(n int) Option {
	return func(o *Options) {
		if n < 1 || n > hardPropositionLimit {
			o.err = fmt.Errorf("%w: MaxPropositions=%d", ErrOptionViolation, n)
			return
		}
		o.MaxPropositions = n
	}
}

// ABA is an alternating Büchi automaton. States are the content hashes of the
// obligations discovered from the root formula; a transition is a resolved
// step.Formula whose only non-constant leaves defer to other states.
//
// An ABA is immutable after Build.
type ABA struct {
	alphabet  *Alphabet
	states    []ltl.Hash
	formulas  map[ltl.Hash]*ltl.Formula
	expansion map[ltl.Hash]*step.Formula
	delta     map[ltl.Hash][]*step.Formula // indexed by Letter
	initial   ltl.Hash
	accepting map[ltl.Hash]bool
}

// Alphabet returns the powerset alphabet of the root's propositions.
func (a *ABA) Alphabet() *Alphabet { return a.alphabet }

// States returns the state hashes in discovery order; the initial state first.
func (a *ABA) States() []ltl.Hash {
	out := make([]ltl.Hash, len(a.states))
	copy(out, a.states)
	return out
}

// NumStates returns the number of states.
func (a *ABA) NumStates() int { return len(a.states) }

// HasState reports whether h is a state.
func (a *ABA) HasState(h ltl.Hash) bool {
	_, ok := a.formulas[h]
	return ok
}

// Formula returns the obligation behind state h.
func (a *ABA) Formula(h ltl.Hash) (*ltl.Formula, error) {
	f, ok := a.formulas[h]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownState, h)
	}
	return f, nil
}

// Initial returns the hash of the root formula.
func (a *ABA) Initial() ltl.Hash { return a.initial }

// IsAccepting reports whether h is accepting, i.e. a negated until.
func (a *ABA) IsAccepting(h ltl.Hash) bool { return a.accepting[h] }

// Accepting returns the accepting states in discovery order.
func (a *ABA) Accepting() []ltl.Hash {
	var out []ltl.Hash
	for _, h := range a.states {
		if a.accepting[h] {
			out = append(out, h)
		}
	}
	return out
}

// Expansion returns the one-step expansion of h before letter resolution.
func (a *ABA) Expansion(h ltl.Hash) (*step.Formula, error) {
	e, ok := a.expansion[h]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownState, h)
	}
	return e, nil
}

// Transition returns the resolved step-formula of state h under letter l.
func (a *ABA) Transition(h ltl.Hash, l Letter) (*step.Formula, error) {
	row, ok := a.delta[h]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownState, h)
	}
	if !a.alphabet.Contains(l) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownLetter, l)
	}
	return row[l], nil
}
