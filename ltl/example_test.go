package ltl_test

import (
	"fmt"

	"github.com/katalvlaran/ltl2nba/ltl"
)

// ExampleNormalize shows the rewriting of the derived operators.
func ExampleNormalize() {
	for _, in := range []string{"F p", "G p", "p R q", "p -> q"} {
		fmt.Printf("%-6s => %s\n", in, ltl.Normalize(ltl.MustParse(in)))
	}
	// Output:
	// F p    => true U p
	// G p    => ~ (true U ~ p)
	// p R q  => ~ (~ p U ~ q)
	// p -> q => ~ p | q
}

// ExampleParse reports where a malformed formula went wrong.
func ExampleParse() {
	_, err := ltl.Parse("G (req -> F grant")
	fmt.Println(err)
	// Output:
	// ltl: syntax error at offset 17: missing ')' to close '(' at offset 2
}

// ExampleFreeVars lists the alphabet propositions of a formula.
func ExampleFreeVars() {
	f := ltl.MustParse("G (req -> F grant) & X req")
	fmt.Println(ltl.FreeVars(f))
	// Output:
	// [grant req]
}
