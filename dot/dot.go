package dot

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/ltl2nba/aba"
	"github.com/katalvlaran/ltl2nba/ltl"
	"github.com/katalvlaran/ltl2nba/nba"
)

// startNode is the synthetic point node drawn before the initial state.
const startNode = "__start"

// Write renders n as a Graphviz digraph to w.
func Write(w io.Writer, n *nba.NBA, opts ...Option) error {
	g, err := FromNBA(n, opts...)
	if err != nil {
		return err
	}
	return g.Write(w)
}

// String renders n as a Graphviz digraph.
func String(n *nba.NBA, opts ...Option) (string, error) {
	var sb strings.Builder
	if err := Write(&sb, n, opts...); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// WriteABA renders the obligation graph of a: one node per ABA state and an
// edge wherever some letter's transition can defer to the target.
func WriteABA(w io.Writer, a *aba.ABA, opts ...Option) error {
	g, err := FromABA(a, opts...)
	if err != nil {
		return err
	}
	return g.Write(w)
}

func buildOptions(opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o, o.err
}

// FromNBA builds the drawable view of n. States become nodes "s<id>",
// doublecircle when accepting.
func FromNBA(n *nba.NBA, opts ...Option) (*Graph, error) {
	if n == nil {
		return nil, ErrNilAutomaton
	}
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}

	g := &Graph{Name: o.GraphName, RankDir: o.RankDir, Start: nodeID("s", int(n.Initial()))}
	alphabet := n.Alphabet()
	var m merger
	for i := 0; i < n.NumStates(); i++ {
		id := nba.StateID(i)
		label := strconv.Itoa(i)
		if o.FormulaLabels {
			label = n.Describe(id)
		}
		shape := "circle"
		if n.IsAccepting(id) {
			shape = "doublecircle"
		}
		g.Nodes = append(g.Nodes, Node{ID: nodeID("s", i), Label: label, Shape: shape})

		m.reset(nodeID("s", i))
		for _, l := range alphabet.Letters() {
			succ, err := n.Transition(id, l)
			if err != nil {
				return nil, err
			}
			for _, to := range succ {
				m.add(nodeID("s", int(to)), "{"+alphabet.Format(l)+"}")
			}
		}
		g.Edges = append(g.Edges, m.edges()...)
	}
	return g, nil
}

// FromABA builds the obligation graph of a. States become nodes "a<i>" in
// discovery order, labeled with their formula; accepting ones are drawn as
// doubleoctagon.
func FromABA(a *aba.ABA, opts ...Option) (*Graph, error) {
	if a == nil {
		return nil, ErrNilAutomaton
	}
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}

	states := a.States()
	index := make(map[ltl.Hash]int, len(states))
	for i, h := range states {
		index[h] = i
	}

	g := &Graph{Name: o.GraphName, RankDir: o.RankDir, Start: nodeID("a", index[a.Initial()])}
	alphabet := a.Alphabet()
	var m merger
	for i, h := range states {
		f, err := a.Formula(h)
		if err != nil {
			return nil, err
		}
		shape := "box"
		if a.IsAccepting(h) {
			shape = "doubleoctagon"
		}
		g.Nodes = append(g.Nodes, Node{ID: nodeID("a", i), Label: f.String(), Shape: shape})

		m.reset(nodeID("a", i))
		for _, l := range alphabet.Letters() {
			t, err := a.Transition(h, l)
			if err != nil {
				return nil, err
			}
			for _, ref := range t.Refs() {
				m.add(nodeID("a", index[ref.Hash()]), "{"+alphabet.Format(l)+"}")
			}
		}
		g.Edges = append(g.Edges, m.edges()...)
	}
	return g, nil
}

// Write emits g in DOT syntax.
func (g *Graph) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "digraph %s {\n", quote(g.Name))
	fmt.Fprintf(bw, "  rankdir=%s;\n", g.RankDir)
	bw.WriteString("  node [shape=circle];\n\n")

	fmt.Fprintf(bw, "  %s [shape=point];\n", startNode)
	fmt.Fprintf(bw, "  %s -> %s;\n\n", startNode, g.Start)

	for _, nd := range g.Nodes {
		fmt.Fprintf(bw, "  %s [label=%s, shape=%s];\n", nd.ID, quote(nd.Label), nd.Shape)
	}
	if len(g.Edges) > 0 {
		bw.WriteString("\n")
	}
	for _, e := range g.Edges {
		fmt.Fprintf(bw, "  %s -> %s [label=%s];\n", e.From, e.To, quote(strings.Join(e.Letters, ", ")))
	}
	bw.WriteString("}\n")
	return bw.Flush()
}

// merger collects the letters of one source's outgoing arrows, keeping
// destinations in first-seen order and dropping repeated letters.
type merger struct {
	from   string
	order  []string
	labels map[string][]string
}

func (m *merger) reset(from string) {
	m.from = from
	m.order = m.order[:0]
	m.labels = make(map[string][]string)
}

func (m *merger) add(to, letter string) {
	ls, seen := m.labels[to]
	if !seen {
		m.order = append(m.order, to)
	}
	if len(ls) > 0 && ls[len(ls)-1] == letter {
		return
	}
	m.labels[to] = append(ls, letter)
}

func (m *merger) edges() []Edge {
	out := make([]Edge, 0, len(m.order))
	for _, to := range m.order {
		out = append(out, Edge{From: m.from, To: to, Letters: m.labels[to]})
	}
	return out
}

func nodeID(prefix string, i int) string { return prefix + strconv.Itoa(i) }

// quote renders s as a DOT double-quoted string.
func quote(s string) string {
	return `"` + strings.ReplaceAll(strings.ReplaceAll(s, `\`, `\\`), `"`, `\"`) + `"`
}
