// ltl2nba translates LTL formulas into nondeterministic Büchi automata.
package main

import (
	"os"

	"github.com/katalvlaran/ltl2nba/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
