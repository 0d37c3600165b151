package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/katalvlaran/ltl2nba/aba"
	"github.com/katalvlaran/ltl2nba/ltl"
	"github.com/katalvlaran/ltl2nba/nba"
)

func letterLabel(al *aba.Alphabet, l aba.Letter) string {
	return "{" + al.Format(l) + "}"
}

// writeABAText prints states in discovery order, accepting ones marked
// with '*', followed by one line per state and letter.
func writeABAText(w io.Writer, st styles, a *aba.ABA) error {
	al := a.Alphabet()
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s\n", st.Title.Render("alphabet:"), strings.Join(wrapLetters(al), " "))
	fmt.Fprintf(&sb, "%s %d (%d accepting)\n", st.Title.Render("states:"), a.NumStates(), len(a.Accepting()))

	names := make(map[ltl.Hash]string, a.NumStates())
	for i, h := range a.States() {
		names[h] = fmt.Sprintf("a%d", i)
	}
	for _, h := range a.States() {
		f, err := a.Formula(h)
		if err != nil {
			return err
		}
		mark := " "
		if a.IsAccepting(h) {
			mark = st.Accept.Render("*")
		}
		fmt.Fprintf(&sb, "%s %-4s %s %s\n", mark, names[h], f, st.Dim.Render(h.Short()))
	}

	sb.WriteString(st.Title.Render("transitions:") + "\n")
	for _, h := range a.States() {
		for _, l := range al.Letters() {
			t, err := a.Transition(h, l)
			if err != nil {
				return err
			}
			fmt.Fprintf(&sb, "  %s %s %s\n", names[h], letterLabel(al, l), t)
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func wrapLetters(al *aba.Alphabet) []string {
	out := make([]string, 0, al.Size())
	for _, l := range al.Letters() {
		out = append(out, letterLabel(al, l))
	}
	return out
}

// writeNBAText prints a state listing and the non-empty transitions.
func writeNBAText(w io.Writer, st styles, t *translation) error {
	n := t.nba
	al := n.Alphabet()
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s\n", st.Title.Render("formula:"), t.normal)
	fmt.Fprintf(&sb, "%s %d (%d accepting), %d letters\n",
		st.Title.Render("states:"), n.NumStates(), len(n.Accepting()), al.Size())
	for i := 0; i < n.NumStates(); i++ {
		id := nba.StateID(i)
		mark := " "
		if n.IsAccepting(id) {
			mark = st.Accept.Render("*")
		}
		fmt.Fprintf(&sb, "%s s%-3d %s\n", mark, i, n.Describe(id))
	}
	sb.WriteString(st.Title.Render("transitions:") + "\n")
	for i := 0; i < n.NumStates(); i++ {
		for _, l := range al.Letters() {
			succ, err := n.Transition(nba.StateID(i), l)
			if err != nil {
				return err
			}
			if len(succ) == 0 {
				continue
			}
			targets := make([]string, len(succ))
			for j, s := range succ {
				targets[j] = fmt.Sprintf("s%d", s)
			}
			fmt.Fprintf(&sb, "  s%d %s -> %s\n", i, letterLabel(al, l), strings.Join(targets, ", "))
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

type jsonNBA struct {
	Formula      string      `json:"formula"`
	Normalized   string      `json:"normalized"`
	Hash         string      `json:"hash"`
	Propositions []string    `json:"propositions"`
	Initial      int         `json:"initial"`
	States       []jsonState `json:"states"`
}

type jsonState struct {
	ID          int              `json:"id"`
	Accepting   bool             `json:"accepting"`
	Q0          []string         `json:"q0"`
	Q1          []string         `json:"q1"`
	Transitions map[string][]int `json:"transitions"`
}

// writeNBAJSON encodes the automaton with obligations rendered as formulas
// and transitions keyed by letter; letters without successors are omitted.
func writeNBAJSON(w io.Writer, t *translation) error {
	n := t.nba
	al := n.Alphabet()
	props := al.Props()
	if props == nil {
		props = []string{}
	}
	doc := jsonNBA{
		Formula:      t.parsed.String(),
		Normalized:   t.normal.String(),
		Hash:         string(t.normal.Hash()),
		Propositions: props,
		Initial:      int(n.Initial()),
	}

	render := func(hs []ltl.Hash) ([]string, error) {
		out := make([]string, len(hs))
		for i, h := range hs {
			f, err := n.Source().Formula(h)
			if err != nil {
				return nil, err
			}
			out[i] = f.String()
		}
		return out, nil
	}
	for i, s := range n.States() {
		id := nba.StateID(i)
		js := jsonState{ID: i, Accepting: n.IsAccepting(id), Transitions: make(map[string][]int)}
		var err error
		if js.Q0, err = render(s.Q0); err != nil {
			return err
		}
		if js.Q1, err = render(s.Q1); err != nil {
			return err
		}
		for _, l := range al.Letters() {
			succ, err := n.Transition(id, l)
			if err != nil {
				return err
			}
			if len(succ) == 0 {
				continue
			}
			ids := make([]int, len(succ))
			for j, s := range succ {
				ids[j] = int(s)
			}
			js.Transitions[letterLabel(al, l)] = ids
		}
		doc.States = append(doc.States, js)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
