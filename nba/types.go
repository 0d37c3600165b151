// Package nba defines the nondeterministic Büchi automaton produced by the
// breakpoint construction, its options and sentinel errors.
package nba

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/katalvlaran/ltl2nba/aba"
	"github.com/katalvlaran/ltl2nba/ltl"
)

// Sentinel errors for NBA construction and lookup.
var (
	// ErrNilAutomaton is returned when Build receives a nil ABA.
	ErrNilAutomaton = errors.New("nba: automaton is nil")

	// ErrUnresolvedLeaf signals a transition that still tests the letter, or
	// an unknown step-formula variant; the source ABA is inconsistent.
	ErrUnresolvedLeaf = errors.New("nba: unresolved step-formula leaf")

	// ErrStateLimit is returned when construction exceeds WithMaxStates.
	ErrStateLimit = errors.New("nba: state limit exceeded")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("nba: invalid option supplied")

	// ErrUnknownState is returned for a StateID that is out of range.
	ErrUnknownState = errors.New("nba: unknown state")

	// ErrUnknownLetter is returned for a letter outside the alphabet.
	ErrUnknownLetter = errors.New("nba: unknown letter")
)

// Option configures Build via functional arguments.
type Option func(*Options)

// Options holds the parameters of Build.
type Options struct {
	// Ctx is checked once per worklist iteration.
	Ctx context.Context

	// Logger receives Debug records for discovered states and a summary.
	Logger *slog.Logger

	// MaxStates, if > 0, aborts construction with ErrStateLimit once more
	// states would be discovered. 0 means no limit.
	MaxStates int

	// OnVisit is called when a state is dequeued, before its successors are
	// computed. Returning an error aborts Build.
	OnVisit func(id StateID, s State) error

	err error
}

// DefaultOptions returns background context, a discarding logger, no state
// limit and a no-op OnVisit.
func DefaultOptions() Options {
	return Options{
		Ctx:       context.Background(),
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		MaxStates: 0,
		OnVisit:   func(StateID, State) error { return nil },
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

// WithMaxStates bounds the number of states.
//
//	n > 0:  at most n states
//	n == 0: no limit
//	n < 0:  invalid option → ErrOptionViolation
func WithMaxStates(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxStates=%d", ErrOptionViolation, n)
			return
		}
		o.MaxStates = n
	}
}

// WithOnVisit registers a hook run on every dequeued state.
func WithOnVisit(fn func(id StateID, s State) error) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

// StateID indexes the states of an NBA in discovery order; the initial state is 0.
type StateID int

// State is a breakpoint pair of ABA state sets. Q0 holds the obligations of
// the current round that have not yet passed through an accepting state; Q1
// holds the rest. Both are sorted and duplicate-free, and no hash appears in
// both.
type State struct {
	Q0 []ltl.Hash
	Q1 []ltl.Hash
}

// newState canonicalizes a candidate pair.
func newState(q0, q1 []ltl.Hash) State {
	q0 = canonical(q0)
	q1 = canonical(q1)
	if len(q0) > 0 && len(q1) > 0 {
		kept := q1[:0]
		for _, h := range q1 {
			if _, found := slices.BinarySearch(q0, h); !found {
				kept = append(kept, h)
			}
		}
		q1 = kept
	}
	return State{Q0: q0, Q1: q1}
}

func canonical(hs []ltl.Hash) []ltl.Hash {
	if len(hs) == 0 {
		return nil
	}
	out := slices.Clone(hs)
	slices.Sort(out)
	return slices.Compact(out)
}

// Reset reports whether Q0 is empty: the round is complete and the state is
// accepting.
func (s State) Reset() bool { return len(s.Q0) == 0 }

// Key is the canonical identity of s. Hashes have a fixed width, so the
// length-prefixed concatenation needs no delimiter between entries.
func (s State) Key() string {
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(len(s.Q0)))
	sb.WriteByte(':')
	for _, h := range s.Q0 {
		sb.WriteString(string(h))
	}
	for _, h := range s.Q1 {
		sb.WriteString(string(h))
	}
	return sb.String()
}

// String renders s with short hashes, e.g. "{1a2b3c4d};{}".
func (s State) String() string {
	short := func(hs []ltl.Hash) string {
		parts := make([]string, len(hs))
		for i, h := range hs {
			parts[i] = h.Short()
		}
		return "{" + strings.Join(parts, ",") + "}"
	}
	return short(s.Q0) + ";" + short(s.Q1)
}

// NBA is a nondeterministic Büchi automaton over the alphabet of its source
// ABA. It holds only states reachable from the initial state and is
// immutable after Build.
type NBA struct {
	source    *aba.ABA
	states    []State
	index     map[string]StateID
	delta     [][][]StateID // [state][letter] successors
	accepting []bool
}

// Source returns the ABA the automaton was built from.
func (n *NBA) Source() *aba.ABA { return n.source }

// Alphabet returns the alphabet shared with the source ABA.
func (n *NBA) Alphabet() *aba.Alphabet { return n.source.Alphabet() }

// NumStates returns the number of states.
func (n *NBA) NumStates() int { return len(n.states) }

// States returns every state in discovery order; index i is StateID(i).
func (n *NBA) States() []State {
	out := make([]State, len(n.states))
	copy(out, n.states)
	return out
}

// State returns the breakpoint pair of id.
func (n *NBA) State(id StateID) (State, error) {
	if !n.valid(id) {
		return State{}, fmt.Errorf("%w: %d", ErrUnknownState, id)
	}
	return n.states[id], nil
}

// Lookup returns the id of s, if s was discovered.
func (n *NBA) Lookup(s State) (StateID, bool) {
	id, ok := n.index[newState(s.Q0, s.Q1).Key()]
	return id, ok
}

// Initial returns the initial state, always 0.
func (n *NBA) Initial() StateID { return 0 }

// IsAccepting reports whether id is a reset state.
func (n *NBA) IsAccepting(id StateID) bool { return n.valid(id) && n.accepting[id] }

// Accepting returns the accepting states in discovery order.
func (n *NBA) Accepting() []StateID {
	var out []StateID
	for i, acc := range n.accepting {
		if acc {
			out = append(out, StateID(i))
		}
	}
	return out
}

// Transition returns the successors of id under letter l, in the order the
// construction produced them. An empty result means no run continues.
func (n *NBA) Transition(id StateID, l aba.Letter) ([]StateID, error) {
	if !n.valid(id) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownState, id)
	}
	if !n.Alphabet().Contains(l) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownLetter, l)
	}
	return slices.Clone(n.delta[id][l]), nil
}

// Describe renders id with the obligations of Q0 and Q1 spelled out as
// formulas, e.g. "{true U p} ; {~ (true U ~ (true U p))}".
func (n *NBA) Describe(id StateID) string {
	if !n.valid(id) {
		return fmt.Sprintf("<unknown state %d>", id)
	}
	render := func(hs []ltl.Hash) string {
		parts := make([]string, len(hs))
		for i, h := range hs {
			if f, err := n.source.Formula(h); err == nil {
				parts[i] = f.String()
			} else {
				parts[i] = h.Short()
			}
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	s := n.states[id]
	return render(s.Q0) + " ; " + render(s.Q1)
}

func (n *NBA) valid(id StateID) bool { return id >= 0 && int(id) < len(n.states) }
