// Package ltl2nba turns linear temporal logic formulas into Büchi automata,
// from parsing all the way to Graphviz drawings.
//
// 🚀 What is ltl2nba?
//
//	A small, deterministic translation pipeline that brings together:
//		• Formulas: parser, canonical rendering, content hashes, normal form
//		• Step formulas: the one-step obligation algebra
//		• ABA: alternating Büchi automaton via the expansion rule
//		• NBA: Miyano–Hayashi breakpoint construction
//		• DOT: Graphviz export of both automata
//
// ✨ Why choose ltl2nba?
//
//   - Reproducible – same formula, same states, same numbering, every run
//   - Inspectable – every stage can be printed and reasoned about
//   - Bounded – context cancellation, state and proposition limits
//   - Extensible – hooks (OnVisit) and slog logging on every builder
//
// Under the hood, everything is organized under these packages:
//
//	ltl/        Formula AST, Parse, Normalize, Hash, FreeVars
//	step/       step-formula algebra: Normalize, Resolve, Refs
//	aba/        Alphabet and the alternating automaton builder
//	nba/        breakpoint construction and the resulting NBA
//	dot/        Graphviz exporter
//	cmd/        the ltl2nba command-line tool
//
// Quick example:
//
//	G F p  ⇒  normal form ~ (true U ~ (true U p))
//
//	    ┌─{p}─┐        ┌─{}──┐
//	    ▼     │  {}    ▼     │
//	  ((s0))──┴─────▶ (s1)───┘
//	    ▲               │
//	    └──────{p}──────┘
//
//	go install github.com/katalvlaran/ltl2nba/cmd/ltl2nba@latest
package ltl2nba
