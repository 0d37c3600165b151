package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/ltl2nba/internal/config"
)

// app is the state shared by every command of one invocation.
type app struct {
	out    io.Writer
	errOut io.Writer
	st     styles

	configPath string
	logLevel   string
	logFormat  string

	cfg config.Config
	log *slog.Logger
}

// Execute runs the command line of the current process and returns its
// exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
}

// Run executes args against a fresh command tree, writing results to out and
// diagnostics to errOut, and returns the exit code.
func Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	root := NewRootCmd(out, errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}
	st := newStyles(errOut)
	fmt.Fprintf(errOut, "%s %s\n", st.Error.Render("error:"), err)
	return exitCode(err)
}

// NewRootCmd builds the ltl2nba command tree.
func NewRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut, st: newStyles(out)}

	root := &cobra.Command{
		Use:   "ltl2nba",
		Short: "Translate LTL formulas into Büchi automata",
		Long: `ltl2nba translates linear temporal logic formulas into nondeterministic
Büchi automata through an alternating automaton and the Miyano-Hayashi
breakpoint construction.

Formula syntax:
  true false p q_1 ...     constants and propositions
  ~ !  X  F  G              negation, next, eventually, globally
  &  |  ->                  and, or, implies
  U  R                      until, release (right-associative)

Examples:
  ltl2nba normalize "G (req -> F grant)"
  ltl2nba translate "G F p" --format text
  ltl2nba translate "p U q" -o until.dot
  ltl2nba batch properties.hcl --out-dir build/`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usageErrorf("unknown command %q for %q", args[0], cmd.CommandPath())
			}
			return nil
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageErrorf("%v", err)
	})

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "Path to a TOML configuration file.")
	pf.StringVar(&a.logLevel, "log-level", "", "Logging level: 'debug', 'info', 'warn', or 'error'.")
	pf.StringVar(&a.logFormat, "log-format", "", "Log output format: 'text' or 'json'.")

	root.AddCommand(
		newNormalizeCmd(a),
		newABACmd(a),
		newTranslateCmd(a),
		newBatchCmd(a),
	)
	return root
}

// setup loads the configuration, applies the persistent flags and builds the
// logger. Command-specific flags are applied by each command.
func (a *app) setup(cmd *cobra.Command) error {
	cfg := config.Default()
	if a.configPath != "" {
		loaded, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = strings.ToLower(a.logLevel)
	}
	if cmd.Flags().Changed("log-format") {
		cfg.LogFormat = strings.ToLower(a.logFormat)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg
	a.log = newLogger(cfg.LogLevel, cfg.LogFormat, a.errOut)
	a.log.Debug("configuration loaded", "path", a.configPath, "config", fmt.Sprintf("%+v", cfg))
	return nil
}

// exactArgs is cobra.ExactArgs with a usage exit code.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return usageErrorf("%s: accepts %d arg(s), received %d", cmd.CommandPath(), n, len(args))
		}
		return nil
	}
}
