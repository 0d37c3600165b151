package nba_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ltl2nba/aba"
	"github.com/katalvlaran/ltl2nba/ltl"
	"github.com/katalvlaran/ltl2nba/nba"
)

// build runs the whole pipeline on text, failing the test on error.
func build(t *testing.T, text string, opts ...nba.Option) *nba.NBA {
	t.Helper()
	a, err := aba.Build(ltl.Normalize(ltl.MustParse(text)))
	require.NoError(t, err, "aba.Build(%q)", text)
	n, err := nba.Build(a, opts...)
	require.NoError(t, err, "nba.Build(%q)", text)
	return n
}

// letter parses a rendered letter of n's alphabet.
func letter(t *testing.T, n *nba.NBA, s string) aba.Letter {
	t.Helper()
	l, err := n.Alphabet().Parse(s)
	require.NoError(t, err, "letter %q", s)
	return l
}

// succ returns the successors of id under the rendered letter s.
func succ(t *testing.T, n *nba.NBA, id nba.StateID, s string) []nba.StateID {
	t.Helper()
	out, err := n.Transition(id, letter(t, n, s))
	require.NoError(t, err)
	return out
}

// accepts decides whether n accepts the lasso word prefix·cycle^ω: some
// accepting product node reachable from the start lies on a cycle.
func accepts(t *testing.T, n *nba.NBA, prefix, cycle []string) bool {
	t.Helper()
	require.NotEmpty(t, cycle)

	var word []aba.Letter
	for _, s := range prefix {
		word = append(word, letter(t, n, s))
	}
	for _, s := range cycle {
		word = append(word, letter(t, n, s))
	}
	loop := len(prefix)
	next := func(i int) int {
		if i+1 < len(word) {
			return i + 1
		}
		return loop
	}

	type node struct {
		s nba.StateID
		i int
	}
	step := func(x node) []node {
		ts, err := n.Transition(x.s, word[x.i])
		require.NoError(t, err)
		out := make([]node, len(ts))
		for j, s := range ts {
			out[j] = node{s: s, i: next(x.i)}
		}
		return out
	}
	reach := func(from []node) map[node]bool {
		seen := make(map[node]bool)
		queue := append([]node(nil), from...)
		for _, x := range from {
			seen[x] = true
		}
		for len(queue) > 0 {
			x := queue[0]
			queue = queue[1:]
			for _, y := range step(x) {
				if !seen[y] {
					seen[y] = true
					queue = append(queue, y)
				}
			}
		}
		return seen
	}

	for x := range reach([]node{{s: n.Initial(), i: 0}}) {
		if x.i >= loop && n.IsAccepting(x.s) && reach(step(x))[x] {
			return true
		}
	}
	return false
}

// TestBuild_Proposition: one live state, one accepting sink.
func TestBuild_Proposition(t *testing.T) {
	n := build(t, "p")
	require.Equal(t, 2, n.NumStates())
	assert.False(t, n.IsAccepting(0))
	assert.Equal(t, []nba.StateID{1}, n.Accepting())

	assert.Empty(t, succ(t, n, 0, ""))
	assert.Equal(t, []nba.StateID{1}, succ(t, n, 0, "p"))
	assert.Equal(t, []nba.StateID{1}, succ(t, n, 1, ""))
	assert.Equal(t, []nba.StateID{1}, succ(t, n, 1, "p"))

	s, err := n.State(1)
	require.NoError(t, err)
	assert.Empty(t, s.Q0)
	assert.Empty(t, s.Q1)
}

// TestBuild_Eventually: the pending obligation sits in Q0 until p shows up.
func TestBuild_Eventually(t *testing.T) {
	n := build(t, "F p")
	require.Equal(t, 2, n.NumStates())
	assert.Equal(t, "{true U p} ; {}", n.Describe(0))
	assert.Equal(t, "{} ; {}", n.Describe(1))
	assert.Equal(t, []nba.StateID{0}, succ(t, n, 0, ""))
	assert.Equal(t, []nba.StateID{1}, succ(t, n, 0, "p"))
	assert.Equal(t, []nba.StateID{1}, n.Accepting())
}

// TestBuild_Globally: the accepting obligation keeps the run in a reset state.
func TestBuild_Globally(t *testing.T) {
	n := build(t, "G p")
	require.Equal(t, 1, n.NumStates())
	assert.True(t, n.IsAccepting(0))
	assert.Equal(t, "{} ; {~ (true U ~ p)}", n.Describe(0))
	assert.Equal(t, []nba.StateID{0}, succ(t, n, 0, "p"))
	assert.Empty(t, succ(t, n, 0, ""))
}

// TestBuild_InfinitelyOften checks the round structure of G F p.
func TestBuild_InfinitelyOften(t *testing.T) {
	n := build(t, "G F p")
	require.Equal(t, 2, n.NumStates())
	assert.True(t, n.IsAccepting(0))
	assert.False(t, n.IsAccepting(1))
	assert.Equal(t, "{true U p} ; {~ (true U ~ (true U p))}", n.Describe(1))

	assert.Equal(t, []nba.StateID{1}, succ(t, n, 0, ""))
	assert.Equal(t, []nba.StateID{0}, succ(t, n, 0, "p"))
	assert.Equal(t, []nba.StateID{1}, succ(t, n, 1, ""))
	assert.Equal(t, []nba.StateID{0}, succ(t, n, 1, "p"))
}

// TestBuild_Language checks acceptance of ultimately periodic words.
func TestBuild_Language(t *testing.T) {
	cases := []struct {
		formula string
		prefix  []string
		cycle   []string
		want    bool
	}{
		{"p", []string{"p"}, []string{""}, true},
		{"p", []string{""}, []string{"p"}, false},
		{"X p", []string{"", "p"}, []string{""}, true},
		{"X p", []string{"p", ""}, []string{"p"}, false},
		{"F p", []string{"", "", "p"}, []string{""}, true},
		{"F p", nil, []string{""}, false},
		{"G p", nil, []string{"p"}, true},
		{"G p", []string{"p", "p", ""}, []string{"p"}, false},
		{"G F p", nil, []string{"", "p"}, true},
		{"G F p", []string{"p"}, []string{""}, false},
		{"F G p", []string{""}, []string{"p"}, true},
		{"F G p", nil, []string{"", "p"}, false},
		{"p U q", []string{"p", "p", "q"}, []string{""}, true},
		{"p U q", nil, []string{"p"}, false},
		{"p U q", []string{""}, []string{"q"}, false},
		{"p R q", nil, []string{"q"}, true},
		{"p R q", []string{"q", "p,q"}, []string{""}, true},
		{"p R q", []string{"q", ""}, []string{"q"}, false},
		{"G (req -> F grant)", nil, []string{"req", "grant"}, true},
		{"G (req -> F grant)", nil, []string{""}, true},
		{"G (req -> F grant)", []string{"req"}, []string{""}, false},
		{"G F a & G F b", nil, []string{"a", "b"}, true},
		{"G F a & G F b", nil, []string{"a", "a,b", "a"}, true},
		{"G F a & G F b", []string{"b"}, []string{"a"}, false},
	}
	for _, tc := range cases {
		n := build(t, tc.formula)
		got := accepts(t, n, tc.prefix, tc.cycle)
		assert.Equal(t, tc.want, got, "%q on %v(%v)^ω", tc.formula, tc.prefix, tc.cycle)
	}
}

var corpus = []string{
	"p",
	"X p",
	"F p",
	"G p",
	"G F p",
	"F G p",
	"p U q",
	"p R q",
	"G (req -> F grant)",
	"G F a & G F b",
	"(p -> X q) R (F r | ~ G s)",
	"X X X (a U b U c)",
}

// TestBuild_Invariants checks acceptance, canonical states, reachability and
// successor validity on every automaton of the corpus.
func TestBuild_Invariants(t *testing.T) {
	for _, text := range corpus {
		n := build(t, text)
		src := n.Source()

		start, err := n.State(n.Initial())
		require.NoError(t, err)
		if src.IsAccepting(src.Initial()) {
			assert.Equal(t, nba.State{Q1: []ltl.Hash{src.Initial()}}, start, "%q", text)
		} else {
			assert.Equal(t, nba.State{Q0: []ltl.Hash{src.Initial()}}, start, "%q", text)
		}

		seenKey := make(map[string]bool)
		for i, s := range n.States() {
			id := nba.StateID(i)
			assert.Equal(t, s.Reset(), n.IsAccepting(id), "%q state %d", text, id)
			assert.False(t, seenKey[s.Key()], "%q: duplicate state %s", text, s)
			seenKey[s.Key()] = true

			got, ok := n.Lookup(s)
			assert.True(t, ok)
			assert.Equal(t, id, got)

			for _, h := range append(append([]ltl.Hash(nil), s.Q0...), s.Q1...) {
				assert.True(t, src.HasState(h), "%q: unknown obligation %s", text, h)
			}
			for _, h := range s.Q0 {
				assert.NotContains(t, s.Q1, h, "%q: %s in both halves", text, h)
			}
			assert.IsIncreasing(t, s.Q0)
			assert.IsIncreasing(t, s.Q1)

			for _, l := range n.Alphabet().Letters() {
				ts, err := n.Transition(id, l)
				require.NoError(t, err)
				seen := make(map[nba.StateID]bool)
				for _, to := range ts {
					assert.True(t, to >= 0 && int(to) < n.NumStates(), "%q: successor %d", text, to)
					assert.False(t, seen[to], "%q: repeated successor %d", text, to)
					seen[to] = true
				}
			}
		}

		// every state is reachable from the initial one
		reached := map[nba.StateID]bool{n.Initial(): true}
		queue := []nba.StateID{n.Initial()}
		for len(queue) > 0 {
			id := queue[0]
			queue = queue[1:]
			for _, l := range n.Alphabet().Letters() {
				ts, _ := n.Transition(id, l)
				for _, to := range ts {
					if !reached[to] {
						reached[to] = true
						queue = append(queue, to)
					}
				}
			}
		}
		assert.Len(t, reached, n.NumStates(), "%q", text)
	}
}

// TestBuild_Deterministic rebuilds every automaton and compares numbering
// and transitions.
func TestBuild_Deterministic(t *testing.T) {
	for _, text := range corpus {
		a, b := build(t, text), build(t, text)
		require.Equal(t, a.States(), b.States(), "%q", text)
		for i := range a.States() {
			for _, l := range a.Alphabet().Letters() {
				ta, _ := a.Transition(nba.StateID(i), l)
				tb, _ := b.Transition(nba.StateID(i), l)
				assert.Equal(t, ta, tb, "%q state %d letter %d", text, i, l)
			}
		}
	}
}

// TestBuild_OnVisit checks the hook order and error propagation.
func TestBuild_OnVisit(t *testing.T) {
	var order []nba.StateID
	n := build(t, "G (req -> F grant)", nba.WithOnVisit(func(id nba.StateID, _ nba.State) error {
		order = append(order, id)
		return nil
	}))
	require.Len(t, order, n.NumStates())
	for i, id := range order {
		assert.Equal(t, nba.StateID(i), id)
	}

	stop := errors.New("stop")
	a, err := aba.Build(ltl.Normalize(ltl.MustParse("F p")))
	require.NoError(t, err)
	_, err = nba.Build(a, nba.WithOnVisit(func(nba.StateID, nba.State) error { return stop }))
	assert.True(t, errors.Is(err, stop), "got %v", err)
}

// TestBuild_Errors verifies input validation, limits and lookups.
func TestBuild_Errors(t *testing.T) {
	_, err := nba.Build(nil)
	assert.True(t, errors.Is(err, nba.ErrNilAutomaton), "nil: %v", err)

	a, err := aba.Build(ltl.Normalize(ltl.MustParse("G F p")))
	require.NoError(t, err)

	_, err = nba.Build(a, nba.WithMaxStates(-1))
	assert.True(t, errors.Is(err, nba.ErrOptionViolation), "option: %v", err)

	_, err = nba.Build(a, nba.WithMaxStates(1))
	assert.True(t, errors.Is(err, nba.ErrStateLimit), "limit: %v", err)

	_, err = nba.Build(a, nba.WithMaxStates(2))
	assert.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = nba.Build(a, nba.WithContext(ctx))
	assert.True(t, errors.Is(err, context.Canceled), "canceled: %v", err)

	n, err := nba.Build(a)
	require.NoError(t, err)
	_, err = n.Transition(5, 0)
	assert.True(t, errors.Is(err, nba.ErrUnknownState))
	_, err = n.Transition(0, 2)
	assert.True(t, errors.Is(err, nba.ErrUnknownLetter))
	_, err = n.State(-1)
	assert.True(t, errors.Is(err, nba.ErrUnknownState))
	assert.False(t, n.IsAccepting(9))
	assert.Equal(t, "<unknown state 9>", n.Describe(9))
	_, ok := n.Lookup(nba.State{Q0: []ltl.Hash{"missing"}})
	assert.False(t, ok)
}
