package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/ltl2nba/aba"
	"github.com/katalvlaran/ltl2nba/dot"
	"github.com/katalvlaran/ltl2nba/internal/batch"
	"github.com/katalvlaran/ltl2nba/ltl"
	"github.com/katalvlaran/ltl2nba/nba"
)

// translation holds every stage of one formula's pipeline.
type translation struct {
	parsed *ltl.Formula
	normal *ltl.Formula
	aba    *aba.ABA
	nba    *nba.NBA
}

// buildABA normalizes f and constructs its alternating automaton.
func (a *app) buildABA(ctx context.Context, f *ltl.Formula) (*translation, error) {
	t := &translation{parsed: f, normal: ltl.Normalize(f)}
	a.log.Debug("formula normalized", "input", f.String(), "normal", t.normal.String(), "hash", t.normal.Hash())
	var err error
	t.aba, err = aba.Build(t.normal,
		aba.WithContext(ctx),
		aba.WithLogger(a.log),
		aba.WithMaxPropositions(a.cfg.MaxPropositions))
	if err != nil {
		return nil, err
	}
	return t, nil
}

// translate runs the whole pipeline on f. maxStates overrides the
// configured bound when positive.
func (a *app) translate(ctx context.Context, f *ltl.Formula, maxStates int) (*translation, error) {
	t, err := a.buildABA(ctx, f)
	if err != nil {
		return nil, err
	}
	if maxStates <= 0 {
		maxStates = a.cfg.MaxStates
	}
	t.nba, err = nba.Build(t.aba,
		nba.WithContext(ctx),
		nba.WithLogger(a.log),
		nba.WithMaxStates(maxStates))
	if err != nil {
		return nil, err
	}
	a.log.Info("translated",
		"formula", t.normal.String(),
		"aba_states", t.aba.NumStates(),
		"nba_states", t.nba.NumStates(),
		"accepting", len(t.nba.Accepting()))
	return t, nil
}

func (a *app) dotOptions() []dot.Option {
	return []dot.Option{
		dot.WithRankDir(a.cfg.RankDir),
		dot.WithFormulaLabels(a.cfg.FormulaLabels),
	}
}

func newNormalizeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "normalize <formula>",
		Short: "Print the normal form of a formula and its hash",
		Long: `Rewrite a formula into the basis {true, false, p, ~, |, &, X, U} and print
the canonical rendering followed by its content hash.`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := ltl.Parse(args[0])
			if err != nil {
				return err
			}
			n := ltl.Normalize(f)
			fmt.Fprintln(a.out, n.String())
			fmt.Fprintf(a.out, "%s %s\n", a.st.Dim.Render("hash"), n.Hash())
			return nil
		},
	}
}

func newABACmd(a *app) *cobra.Command {
	var (
		format   string
		maxProps int
	)
	cmd := &cobra.Command{
		Use:   "aba <formula>",
		Short: "Print the alternating automaton of a formula",
		Long: `Build the alternating Büchi automaton of a formula and print its states,
accepting marks and transition table (--format text), or its obligation
graph in Graphviz DOT (--format dot).`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "text" && format != "dot" {
				return usageErrorf("invalid format %q: must be 'text' or 'dot'", format)
			}
			if cmd.Flags().Changed("max-propositions") {
				a.cfg.MaxPropositions = maxProps
			}
			if err := a.cfg.Validate(); err != nil {
				return usageErrorf("%v", err)
			}
			f, err := ltl.Parse(args[0])
			if err != nil {
				return err
			}
			t, err := a.buildABA(cmd.Context(), f)
			if err != nil {
				return err
			}
			if format == "dot" {
				return dot.WriteABA(a.out, t.aba, append(a.dotOptions(), dot.WithGraphName("aba"))...)
			}
			return writeABAText(a.out, a.st, t.aba)
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "Output format: 'text' or 'dot'.")
	cmd.Flags().IntVar(&maxProps, "max-propositions", 0, "Largest accepted number of propositions.")
	return cmd
}

func newTranslateCmd(a *app) *cobra.Command {
	var (
		format        string
		output        string
		rankdir       string
		maxStates     int
		maxProps      int
		formulaLabels bool
	)
	cmd := &cobra.Command{
		Use:   "translate <formula>",
		Short: "Translate a formula into a Büchi automaton",
		Long: `Run the full pipeline (normalize, alternating automaton, breakpoint
construction) and write the resulting NBA as Graphviz DOT, text or JSON.`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("format") {
				a.cfg.Format = strings.ToLower(format)
			}
			if flags.Changed("rankdir") {
				a.cfg.RankDir = strings.ToUpper(rankdir)
			}
			if flags.Changed("max-states") {
				a.cfg.MaxStates = maxStates
			}
			if flags.Changed("max-propositions") {
				a.cfg.MaxPropositions = maxProps
			}
			if flags.Changed("formula-labels") {
				a.cfg.FormulaLabels = formulaLabels
			}
			if err := a.cfg.Validate(); err != nil {
				return usageErrorf("%v", err)
			}

			f, err := ltl.Parse(args[0])
			if err != nil {
				return err
			}
			t, err := a.translate(cmd.Context(), f, 0)
			if err != nil {
				return err
			}

			if output == "" {
				return a.writeNBA(a.out, t)
			}
			if err := a.writeFile(output, func(w io.Writer) error { return a.writeNBA(w, t) }); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s wrote %s (%d states, %d accepting)\n",
				a.st.Success.Render("✓"), output, t.nba.NumStates(), len(t.nba.Accepting()))
			return nil
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&format, "format", "dot", "Output format: 'dot', 'text', or 'json'.")
	fl.StringVarP(&output, "output", "o", "", "Write the automaton to this file instead of stdout.")
	fl.StringVar(&rankdir, "rankdir", "LR", "Graphviz layout direction: LR, RL, TB or BT.")
	fl.IntVar(&maxStates, "max-states", 0, "Abort when the NBA exceeds this many states (0 = no limit).")
	fl.IntVar(&maxProps, "max-propositions", 0, "Largest accepted number of propositions.")
	fl.BoolVar(&formulaLabels, "formula-labels", false, "Label DOT nodes with their obligations.")
	return cmd
}

func (a *app) writeNBA(w io.Writer, t *translation) error {
	switch a.cfg.Format {
	case "text":
		return writeNBAText(w, a.st, t)
	case "json":
		return writeNBAJSON(w, t)
	default:
		return dot.Write(w, t.nba, a.dotOptions()...)
	}
}

func newBatchCmd(a *app) *cobra.Command {
	var (
		outDir string
		vars   map[string]string
	)
	cmd := &cobra.Command{
		Use:   "batch <file.hcl>",
		Short: "Translate every property of an HCL file",
		Long: `Translate every property block of an HCL file and print a summary table.

  property "response" {
    formula     = "G (req -> F grant)"
    description = "every request is eventually granted"
    max_states  = 1000
  }

With --out-dir, each automaton is written to <out-dir>/<name>.dot. A failing
property does not stop the others; the command fails if any property did.`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			props, err := batch.Load(args[0], vars)
			if err != nil {
				return usageErrorf("%v", err)
			}
			if outDir != "" {
				if err := os.MkdirAll(outDir, 0o755); err != nil {
					return err
				}
			}

			tbl := &table{st: a.st, headers: []string{"PROPERTY", "FORMULA", "ABA", "NBA", "ACCEPTING", "STATUS"}}
			failed := 0
			for _, p := range props {
				t, err := a.translate(cmd.Context(), p.Formula, p.MaxStates)
				if err == nil && outDir != "" {
					err = a.writeDOTFile(filepath.Join(outDir, p.Name+".dot"), t.nba)
				}
				if err != nil {
					failed++
					a.log.Warn("property failed", "property", p.Name, "error", err)
					tbl.addRow(p.Name, p.Formula.String(), "-", "-", "-", a.st.Error.Render("error: "+err.Error()))
					continue
				}
				tbl.addRow(p.Name, p.Formula.String(),
					strconv.Itoa(t.aba.NumStates()),
					strconv.Itoa(t.nba.NumStates()),
					strconv.Itoa(len(t.nba.Accepting())),
					a.st.Success.Render("ok"))
			}
			fmt.Fprint(a.out, tbl.render())
			if failed > 0 {
				return &ExitError{Code: exitBuild, Message: fmt.Sprintf("%d of %d properties failed", failed, len(props))}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&outDir, "out-dir", "", "Write <name>.dot for every property into this directory.")
	cmd.Flags().StringToStringVar(&vars, "var", nil, "Set a variable for ${var.NAME} interpolation (repeatable, key=value).")
	return cmd
}

func (a *app) writeDOTFile(path string, n *nba.NBA) error {
	return a.writeFile(path, func(w io.Writer) error { return dot.Write(w, n, a.dotOptions()...) })
}

// writeFile creates path and fills it with write. On any failure, including
// the final Close, the partial file is removed.
func (a *app) writeFile(path string, write func(io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	err = write(file)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		if rerr := os.Remove(path); rerr != nil {
			a.log.Warn("could not remove partial output", "path", path, "error", rerr)
		}
		return err
	}
	return nil
}
