package aba

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/katalvlaran/ltl2nba/ltl"
)

// Letter is one symbol of an Alphabet: a subset of its propositions encoded
// as a bit mask, bit i standing for the i-th proposition in sorted order.
type Letter uint32

// hardPropositionLimit keeps every Letter representable in a uint32 mask.
const hardPropositionLimit = 30

// Alphabet is the powerset of a sorted proposition list.
type Alphabet struct {
	props []string
	index map[string]int
}

// NewAlphabet builds the powerset alphabet over props. The list is sorted
// and deduplicated; every name must satisfy ltl.IsIdent, so that no
// proposition renders like a compound formula or clashes with the letter
// format.
func NewAlphabet(props []string) (*Alphabet, error) {
	sorted := slices.Clone(props)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)
	if len(sorted) > hardPropositionLimit {
		return nil, fmt.Errorf("%w: %d propositions, at most %d", ErrTooManyPropositions, len(sorted), hardPropositionLimit)
	}

	a := &Alphabet{props: sorted, index: make(map[string]int, len(sorted))}
	for i, p := range sorted {
		if !ltl.IsIdent(p) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidProposition, p)
		}
		a.index[p] = i
	}
	return a, nil
}

// Props returns the sorted proposition names.
func (a *Alphabet) Props() []string { return slices.Clone(a.props) }

// Size returns the number of letters, 2^len(Props()).
func (a *Alphabet) Size() int { return 1 << len(a.props) }

// Letters returns every letter in canonical order, the empty letter first.
func (a *Alphabet) Letters() []Letter {
	out := make([]Letter, a.Size())
	for i := range out {
		out[i] = Letter(i)
	}
	return out
}

// Contains reports whether l is a letter of a.
func (a *Alphabet) Contains(l Letter) bool { return int(l) < a.Size() }

// Has reports whether prop is true in letter l. Unknown propositions are false.
func (a *Alphabet) Has(l Letter, prop string) bool {
	i, ok := a.index[prop]
	return ok && l&(1<<i) != 0
}

// Members returns the propositions true in l, sorted.
func (a *Alphabet) Members(l Letter) []string {
	var out []string
	for i, p := range a.props {
		if l&(1<<i) != 0 {
			out = append(out, p)
		}
	}
	return out
}

// Format renders l canonically: its members sorted and comma-joined, "" for
// the empty letter.
func (a *Alphabet) Format(l Letter) string { return strings.Join(a.Members(l), ",") }

// Strings renders every letter in canonical order.
func (a *Alphabet) Strings() []string {
	out := make([]string, 0, a.Size())
	for _, l := range a.Letters() {
		out = append(out, a.Format(l))
	}
	return out
}

// LetterOf returns the letter in which exactly props are true.
func (a *Alphabet) LetterOf(props ...string) (Letter, error) {
	var l Letter
	for _, p := range props {
		i, ok := a.index[p]
		if !ok {
			return 0, fmt.Errorf("%w: proposition %q not in alphabet", ErrUnknownLetter, p)
		}
		l |= 1 << i
	}
	return l, nil
}

// Parse reads the Format rendering of a letter. Members may appear in any
// order and surrounding spaces are ignored.
func (a *Alphabet) Parse(s string) (Letter, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return a.LetterOf(parts...)
}
