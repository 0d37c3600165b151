package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ltl2nba/internal/config"
	"github.com/katalvlaran/ltl2nba/ltl"
)

// run executes args and returns the exit code with both output streams.
func run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code := Run(context.Background(), args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestNormalize(t *testing.T) {
	code, out, _ := run(t, "normalize", "F p")
	require.Equal(t, exitOK, code)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "true U p", lines[0])
	assert.Contains(t, lines[1], string(ltl.MustParse("true U p").Hash()))
}

func TestUsageErrors(t *testing.T) {
	cases := [][]string{
		{"normalize", "p U"},
		{"normalize"},
		{"translate", "p", "q"},
		{"bogus"},
		{"translate", "--no-such-flag", "p"},
		{"translate", "--format", "svg", "p"},
		{"aba", "--format", "json", "p"},
		{"--log-level", "loud", "normalize", "p"},
	}
	for _, args := range cases {
		code, _, errOut := run(t, args...)
		assert.Equal(t, exitUsage, code, "%v: %s", args, errOut)
		assert.Contains(t, errOut, "error:", "%v", args)
	}

	_, _, errOut := run(t, "normalize", "(p & q")
	assert.Contains(t, errOut, "offset 6")
}

func TestHelp(t *testing.T) {
	code, out, _ := run(t)
	assert.Equal(t, exitOK, code)
	assert.Contains(t, out, "ltl2nba translate")
}

func TestTranslate_Dot(t *testing.T) {
	code, out, errOut := run(t, "translate", "G F p", "--rankdir", "tb")
	require.Equal(t, exitOK, code, errOut)
	assert.True(t, strings.HasPrefix(out, `digraph "nba" {`), out)
	assert.Contains(t, out, "rankdir=TB;")
	assert.Contains(t, out, "__start -> s0;")
	assert.Contains(t, out, `s0 [label="0", shape=doublecircle];`)
}

func TestTranslate_Text(t *testing.T) {
	code, out, errOut := run(t, "translate", "--format", "text", "G F p")
	require.Equal(t, exitOK, code, errOut)
	assert.Contains(t, out, "formula: ~ (true U ~ (true U p))")
	assert.Contains(t, out, "states: 2 (1 accepting), 2 letters")
	assert.Contains(t, out, "s0 {} -> s1")
	assert.Contains(t, out, "s1 {p} -> s0")
}

func TestTranslate_JSON(t *testing.T) {
	code, out, errOut := run(t, "translate", "--format", "json", "G F p")
	require.Equal(t, exitOK, code, errOut)

	var doc jsonNBA
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "G F p", doc.Formula)
	assert.Equal(t, []string{"p"}, doc.Propositions)
	require.Len(t, doc.States, 2)
	assert.True(t, doc.States[0].Accepting)
	assert.Empty(t, doc.States[0].Q0)
	assert.Equal(t, []string{"~ (true U ~ (true U p))"}, doc.States[0].Q1)
	assert.Equal(t, map[string][]int{"{}": {1}, "{p}": {0}}, doc.States[0].Transitions)
	assert.Equal(t, []string{"true U p"}, doc.States[1].Q0)
}

func TestTranslate_OutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "until.dot")
	code, out, errOut := run(t, "translate", "p U q", "-o", path)
	require.Equal(t, exitOK, code, errOut)
	assert.Contains(t, out, "wrote "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `s0 -> s1 [label="{q}, {p,q}"];`)
}

func TestTranslate_Limits(t *testing.T) {
	code, _, errOut := run(t, "translate", "--max-states", "1", "G F p")
	assert.Equal(t, exitBuild, code)
	assert.Contains(t, errOut, "state limit")

	code, _, errOut = run(t, "translate", "--max-propositions", "1", "p & q")
	assert.Equal(t, exitBuild, code)
	assert.Contains(t, errOut, "propositions")
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.toml")
	require.NoError(t, os.WriteFile(good, []byte("format = \"text\"\nlog_level = \"debug\"\n"), 0o644))

	code, out, errOut := run(t, "--config", good, "translate", "F p")
	require.Equal(t, exitOK, code, errOut)
	assert.Contains(t, out, "states: 2 (1 accepting)")
	assert.Contains(t, errOut, "nba: state discovered")

	// flags win over the file
	code, out, _ = run(t, "--config", good, "translate", "--format", "dot", "F p")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "digraph")

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("max_states = -5\n"), 0o644))
	code, _, errOut = run(t, "--config", bad, "normalize", "p")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, errOut, "max_states")
}

func TestABA(t *testing.T) {
	code, out, errOut := run(t, "aba", "G p")
	require.Equal(t, exitOK, code, errOut)
	assert.Contains(t, out, "alphabet: {} {p}")
	assert.Contains(t, out, "states: 1 (1 accepting)")
	assert.Contains(t, out, "* a0   ~ (true U ~ p)")
	assert.Contains(t, out, "a0 {p} [~ (true U ~ p)]")

	code, out, _ = run(t, "aba", "--format", "dot", "G F p")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, `digraph "aba" {`)
	assert.Contains(t, out, `shape=doubleoctagon`)

	for _, v := range []string{"-1", "0", "31"} {
		code, _, errOut = run(t, "aba", "--max-propositions", v, "p")
		assert.Equal(t, exitUsage, code, "%s: %s", v, errOut)
		assert.Contains(t, errOut, "max_propositions", v)
	}
}

func TestWriteFile(t *testing.T) {
	a := &app{log: newLogger("error", "text", &bytes.Buffer{})}
	dir := t.TempDir()

	good := filepath.Join(dir, "good.txt")
	require.NoError(t, a.writeFile(good, func(w io.Writer) error {
		_, err := io.WriteString(w, "digraph {}\n")
		return err
	}))
	data, err := os.ReadFile(good)
	require.NoError(t, err)
	assert.Equal(t, "digraph {}\n", string(data))

	// a failed write leaves no partial file behind
	bad := filepath.Join(dir, "bad.txt")
	boom := errors.New("disk full")
	err = a.writeFile(bad, func(w io.Writer) error {
		_, _ = io.WriteString(w, "digraph {")
		return boom
	})
	assert.True(t, errors.Is(err, boom), "%v", err)
	_, err = os.Stat(bad)
	assert.True(t, errors.Is(err, os.ErrNotExist), "%v", err)

	err = a.writeFile(filepath.Join(dir, "missing", "x.dot"), func(io.Writer) error { return nil })
	assert.Error(t, err)
}

func TestTranslate_OutputFileError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no-such-dir", "out.dot")
	code, out, errOut := run(t, "translate", "p", "-o", path)
	assert.Equal(t, exitBuild, code, errOut)
	assert.NotContains(t, out, "wrote")
}

func TestBatch(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "props.hcl")
	src := `
property "response" {
  formula = "G (${var.req} -> F grant)"
}

property "fair" {
  formula    = "G F p"
  max_states = 1
}
`
	require.NoError(t, os.WriteFile(file, []byte(src), 0o644))
	outDir := filepath.Join(dir, "out")

	code, out, errOut := run(t, "batch", file, "--out-dir", outDir, "--var", "req=request")
	assert.Equal(t, exitBuild, code, errOut)
	assert.Contains(t, out, "PROPERTY")
	assert.Contains(t, out, "response")
	assert.Contains(t, out, "G (request -> F grant)")
	assert.Contains(t, out, "ok")
	assert.Contains(t, out, "state limit")
	assert.Contains(t, errOut, "1 of 2 properties failed")

	_, err := os.Stat(filepath.Join(outDir, "response.dot"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(outDir, "fair.dot"))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	code, _, errOut = run(t, "batch", filepath.Join(dir, "missing.hcl"))
	assert.Equal(t, exitUsage, code, errOut)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitOK, exitCode(nil))
	assert.Equal(t, 7, exitCode(fmt.Errorf("wrapped: %w", &ExitError{Code: 7, Message: "x"})))
	_, err := ltl.Parse("&")
	assert.Equal(t, exitUsage, exitCode(err))
	assert.Equal(t, exitUsage, exitCode(fmt.Errorf("%w: bad", config.ErrInvalid)))
	assert.Equal(t, exitBuild, exitCode(errors.New("boom")))
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger("warn", "json", &buf)
	log.Info("hidden")
	log.Warn("shown", "k", 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "shown", rec["msg"])
	assert.Equal(t, "WARN", rec["level"])
}

func TestTable(t *testing.T) {
	tbl := &table{st: newStyles(&bytes.Buffer{}), headers: []string{"A", "LONG"}}
	tbl.addRow("wide-cell", "x")
	tbl.addRow("y")
	got := tbl.render()
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "A          LONG", lines[0])
	assert.Equal(t, "wide-cell  x", lines[2])
	assert.Equal(t, "y          ", lines[3])
}
