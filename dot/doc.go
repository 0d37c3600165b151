// Package dot renders automata in the Graphviz DOT language.
//
// NBA states are drawn as circles, accepting ones as doublecircles, and a
// synthetic point node "__start" points at the initial state. All letters on
// which one state reaches another are merged into a single labeled arrow;
// the empty letter is written "{}".
//
// WriteABA draws the obligation graph of an alternating automaton instead:
// one box per obligation (doubleoctagon when accepting) and an arrow wherever
// a transition can defer to another obligation.
//
//	if err := dot.Write(os.Stdout, n, dot.WithRankDir("TB")); err != nil {
//		return err
//	}
package dot
