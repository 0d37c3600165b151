// Package nba turns an alternating Büchi automaton into an equivalent
// nondeterministic Büchi automaton with the Miyano–Hayashi breakpoint
// construction.
//
// What
//
//   - A State is a pair (Q0, Q1) of ABA state sets. Q0 tracks obligations of
//     the current round that still owe a visit to an accepting ABA state;
//     Q1 tracks those that have paid or are accepting themselves.
//   - A state is accepting iff Q0 is empty (a "reset" state).
//   - Transitions are computed per letter and stored as ordered,
//     duplicate-free successor lists.
//
// Successor rule
//
//	Reset (Q0 = ∅):   resolve every q ∈ Q1 without fever.
//	Otherwise:        resolve q ∈ Q0 without fever, q ∈ Q1 with fever.
//	Resolving [f]:    f goes to Q1 if fever or f is accepting, else to Q0.
//	Combine:          cross product of the alternatives of every q;
//	                  Q1 := Q1 \ Q0.
//
// Opening each round from a reset state is what lets a round fail: an
// obligation that never reaches an accepting ABA state stays in Q0 forever
// and the run never resets again.
//
// Determinism
//
//	Discovery is breadth-first from the initial state, letters in ascending
//	order, alternatives in the order resolveAlternatives yields them. States
//	are identified by State.Key, so two builds of the same ABA number their
//	states identically.
//
// Complexity
//
//	Up to 3^n states for n ABA states; each state costs 2^k letter steps
//	for k propositions.
//
// Usage
//
//	n, err := nba.Build(a, nba.WithMaxStates(10000), nba.WithContext(ctx))
//	if err != nil {
//		// ErrNilAutomaton, ErrStateLimit, ErrOptionViolation, ...
//	}
//	for _, id := range n.Accepting() {
//		fmt.Println(id, n.Describe(id))
//	}
//
// Errors
//
//   - ErrNilAutomaton                     nil input.
//   - ErrOptionViolation                  invalid Option.
//   - ErrStateLimit                       more states than WithMaxStates.
//   - ErrUnresolvedLeaf                   inconsistent source ABA.
//   - ErrUnknownState, ErrUnknownLetter   lookups on a built NBA.
//   - Wrapped errors from OnVisit and the context.
package nba
