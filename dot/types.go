package dot

import (
	"errors"
	"fmt"
)

// Sentinel errors for DOT export.
var (
	// ErrNilAutomaton indicates a nil automaton was passed to an exporter.
	ErrNilAutomaton = errors.New("dot: automaton is nil")

	// ErrOptionViolation indicates an invalid Option.
	ErrOptionViolation = errors.New("dot: invalid option supplied")
)

// Option configures the exporters via functional arguments.
type Option func(*Options)

// Options holds exporter parameters.
type Options struct {
	// GraphName is the digraph identifier.
	GraphName string

	// RankDir is the Graphviz rankdir attribute: LR, RL, TB or BT.
	RankDir string

	// FormulaLabels labels NBA nodes with their Q0/Q1 formulas instead of
	// their numeric id.
	FormulaLabels bool

	err error
}

// DefaultOptions returns GraphName "nba", RankDir "LR" and numeric labels.
func DefaultOptions() Options {
	return Options{GraphName: "nba", RankDir: "LR"}
}

// WithGraphName sets the digraph identifier; it must be non-empty.
func WithGraphName(name string) Option {
	return func(o *Options) {
		if name == "" {
			o.err = fmt.Errorf("%w: empty graph name", ErrOptionViolation)
			return
		}
		o.GraphName = name
	}
}

// WithRankDir sets the layout direction.
func WithRankDir(dir string) Option {
	return func(o *Options) {
		switch dir {
		case "LR", "RL", "TB", "BT":
			o.RankDir = dir
		default:
			o.err = fmt.Errorf("%w: rankdir %q", ErrOptionViolation, dir)
		}
	}
}

// WithFormulaLabels toggles formula labels on NBA nodes.
func WithFormulaLabels(on bool) Option {
	return func(o *Options) { o.FormulaLabels = on }
}

// Node is one automaton state as drawn.
type Node struct {
	// ID is the DOT node identifier.
	ID string

	// Label is the text shown in the node.
	Label string

	// Shape is the Graphviz shape.
	Shape string
}

// Edge is one merged arrow between two nodes, carrying every letter on
// which the source reaches the destination.
type Edge struct {
	From    string
	To      string
	Letters []string
}

// Graph is an exporter-side view of an automaton: nodes in state order,
// edges ordered by source then by first letter.
type Graph struct {
	Name    string
	RankDir string
	Start   string // node the synthetic start arrow points at
	Nodes   []Node
	Edges   []Edge
}
