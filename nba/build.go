package nba

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/ltl2nba/aba"
	"github.com/katalvlaran/ltl2nba/ltl"
)

// walker encapsulates the mutable state of one Build call.
type walker struct {
	src     *aba.ABA
	opts    Options
	ctx     context.Context
	log     *slog.Logger
	letters []aba.Letter
	queue   []StateID
	res     *NBA
}

// Build runs the breakpoint construction on a and returns the NBA of the
// states reachable from its initial state.
//
// The initial state is (∅, {init}) when the ABA's initial state is accepting
// and ({init}, ∅) otherwise. Discovery is breadth-first; successors of each
// state are computed for every letter and interned by canonical key, so the
// state numbering is a pure function of a.
//
// Returns ErrNilAutomaton, ErrOptionViolation, ErrUnresolvedLeaf,
// ErrStateLimit, the context error on cancellation, or any OnVisit error.
func Build(a *aba.ABA, opts ...Option) (*NBA, error) {
	if a == nil {
		return nil, ErrNilAutomaton
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	w := &walker{
		src:     a,
		opts:    o,
		ctx:     o.Ctx,
		log:     o.Logger,
		letters: a.Alphabet().Letters(),
		res: &NBA{
			source: a,
			index:  make(map[string]StateID),
		},
	}

	root := a.Initial()
	var start State
	if a.IsAccepting(root) {
		start = newState(nil, []ltl.Hash{root})
	} else {
		start = newState([]ltl.Hash{root}, nil)
	}
	if _, err := w.intern(start); err != nil {
		return nil, err
	}
	if err := w.loop(); err != nil {
		return nil, err
	}

	w.log.Debug("nba: built",
		"states", len(w.res.states),
		"accepting", len(w.res.Accepting()),
		"aba_states", a.NumStates())
	return w.res, nil
}

// intern returns the id of s, registering and enqueueing it on first sight.
func (w *walker) intern(s State) (StateID, error) {
	key := s.Key()
	if id, ok := w.res.index[key]; ok {
		return id, nil
	}
	if w.opts.MaxStates > 0 && len(w.res.states) >= w.opts.MaxStates {
		return 0, fmt.Errorf("%w: limit %d", ErrStateLimit, w.opts.MaxStates)
	}
	id := StateID(len(w.res.states))
	w.res.states = append(w.res.states, s)
	w.res.index[key] = id
	w.res.accepting = append(w.res.accepting, s.Reset())
	w.res.delta = append(w.res.delta, make([][]StateID, len(w.letters)))
	w.queue = append(w.queue, id)
	w.log.Debug("nba: state discovered", "id", int(id), "state", s.String(), "accepting", s.Reset())
	return id, nil
}

// loop processes the queue until empty, error, or cancellation.
func (w *walker) loop() error {
	for len(w.queue) > 0 {
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		default:
		}

		id := w.queue[0]
		w.queue = w.queue[1:]
		s := w.res.states[id]
		if err := w.opts.OnVisit(id, s); err != nil {
			return fmt.Errorf("nba: OnVisit error at state %d: %w", id, err)
		}

		for _, l := range w.letters {
			succ, err := w.successors(s, l)
			if err != nil {
				return err
			}
			row := make([]StateID, 0, len(succ))
			seen := make(map[StateID]bool, len(succ))
			for _, t := range succ {
				tid, err := w.intern(t)
				if err != nil {
					return err
				}
				if !seen[tid] {
					seen[tid] = true
					row = append(row, tid)
				}
			}
			w.res.delta[id][l] = row
		}
	}
	return nil
}

// successors computes the breakpoint successors of s under l.
//
// A reset state opens a new round: every Q1 obligation is resolved without
// fever, so non-accepting successors land in Q0. Otherwise Q0 obligations are
// resolved without fever and Q1 obligations with fever. The alternatives of
// all obligations are combined by cross product; an obligation with no
// alternative kills the letter.
func (w *walker) successors(s State, l aba.Letter) ([]State, error) {
	type group struct {
		hs    []ltl.Hash
		fever bool
	}
	var groups []group
	if s.Reset() {
		groups = []group{{hs: s.Q1, fever: false}}
	} else {
		groups = []group{{hs: s.Q0, fever: false}, {hs: s.Q1, fever: true}}
	}

	product := []delta{{}}
	for _, g := range groups {
		for _, h := range g.hs {
			t, err := w.src.Transition(h, l)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrUnresolvedLeaf, err)
			}
			alts, err := resolveAlternatives(t, g.fever, w.src.IsAccepting)
			if err != nil {
				return nil, fmt.Errorf("state %s letter {%s}: %w", h.Short(), w.src.Alphabet().Format(l), err)
			}
			if len(alts) == 0 {
				return nil, nil
			}
			product = cross(product, alts)
		}
	}

	out := make([]State, len(product))
	for i, d := range product {
		out[i] = newState(d.q0, d.q1)
	}
	return out, nil
}
