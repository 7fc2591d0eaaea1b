package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/require"

	"github.com/risor-io/expr/object"
)

// execute runs the CLI with the given stdin and arguments, isolated from
// the user's home directory.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	homedir.DisableCache = true
	noColor := color.NoColor
	t.Cleanup(func() { color.NoColor = noColor })

	var out, errOut bytes.Buffer
	a := newApp(strings.NewReader(stdin), &out, &errOut)
	root := newRootCmd(a)
	root.SetArgs(append([]string{"--no-color"}, args...))
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestEval(t *testing.T) {
	out, _, err := execute(t, "", "eval", "1 + 2 * 3")
	require.NoError(t, err)
	require.Equal(t, "7\n", out)

	out, _, err = execute(t, "", "1 < 2")
	require.NoError(t, err)
	require.Equal(t, "TRUE\n", out)

	out, _, err = execute(t, "MAX(4, 9)\n", "eval", "--stdin")
	require.NoError(t, err)
	require.Equal(t, "9\n", out)

	out, _, err = execute(t, "", "eval", "-c", "$x * 2", "--param", "x=4")
	require.NoError(t, err)
	require.Equal(t, "8\n", out)
}

func TestEvalJSON(t *testing.T) {
	out, _, err := execute(t, "", "eval", "-o", "json", "5.0 / 2")
	require.NoError(t, err)
	var result struct {
		Value float64 `json:"value"`
		Kind  string  `json:"kind"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Equal(t, 2.5, result.Value)
	require.Equal(t, "decimal", result.Kind)
}

func TestEvalErrors(t *testing.T) {
	_, _, err := execute(t, "", "eval", "TRUE 1234")
	require.Error(t, err)
	require.Contains(t, err.Error(), "Error: Orphaned expression")
	require.Contains(t, err.Error(), "Column: 6")

	_, _, err = execute(t, "", "eval", "$missing")
	require.ErrorContains(t, err, "parameter 'missing' is not defined")

	_, _, err = execute(t, "", "eval", "-c", "1", "2")
	require.ErrorContains(t, err, "multiple input sources")

	_, _, err = execute(t, "", "eval")
	require.ErrorContains(t, err, "no expression provided")

	_, _, err = execute(t, "", "eval", "-o", "yaml", "1")
	require.ErrorContains(t, err, "unknown output format")

	_, _, err = execute(t, "", "eval", "--param", "novalue", "1")
	require.ErrorContains(t, err, "invalid parameter")
}

func TestEngineFlags(t *testing.T) {
	out, _, err := execute(t, "", "--numeric-mode", "decimal", "eval", "5 / 2")
	require.NoError(t, err)
	require.Equal(t, "2.5\n", out)

	out, _, err = execute(t, "", "--plugin", "trig", "eval", "ROUND(DEGREES(PI()))")
	require.NoError(t, err)
	require.Equal(t, "180\n", out)

	out, _, err = execute(t, "", "--plugin", "strings,rand", "eval", "HAS_PREFIX('golang', 'go') & RANDINT(4, 4)")
	require.NoError(t, err)
	require.Equal(t, "4\n", out)

	_, _, err = execute(t, "", "--disable", "max", "eval", "MAX(1, 2)")
	require.ErrorContains(t, err, "'MAX' is not a function")

	_, _, err = execute(t, "", "--max-stack", "2", "eval", "SUM(1, 2, 3)")
	require.ErrorContains(t, err, "stack")
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expr.toml")
	require.NoError(t, os.WriteFile(path, []byte("numeric_mode = \"integer\"\n[params]\nrate = 2.5\n"), 0o644))

	out, _, err := execute(t, "", "--config", path, "eval", "$rate * 10 / 4")
	require.NoError(t, err)
	require.Equal(t, "6\n", out)

	out, _, err = execute(t, "", "--config", path, "--numeric-mode", "all", "eval", "$rate * 10 / 4")
	require.NoError(t, err)
	require.Equal(t, "6.25\n", out)

	_, _, err = execute(t, "", "--config", filepath.Join(t.TempDir(), "none.toml"), "eval", "1")
	require.Error(t, err)
}

func TestTrace(t *testing.T) {
	out, errOut, err := execute(t, "", "eval", "--trace", "MAX(1, 2)")
	require.NoError(t, err)
	require.Equal(t, "2\n", out)
	require.Contains(t, errOut, "LOAD_I8")
	require.Contains(t, errOut, "call MAX(1, 2)")
	require.Contains(t, errOut, "MAX returned 2")
}

func TestDis(t *testing.T) {
	out, _, err := execute(t, "", "dis", "$x > 1")
	require.NoError(t, err)
	require.Contains(t, out, "LOAD_PARAM")
	require.Contains(t, out, "$x")
	require.Contains(t, out, "GREATER")

	out, _, err = execute(t, "", "dis", "-o", "json", "ABS('a')")
	require.NoError(t, err)
	var result struct {
		Strings      []string         `json:"strings"`
		Instructions []map[string]any `json:"instructions"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Equal(t, []string{"a"}, result.Strings)
	require.Len(t, result.Instructions, 3)
}

func TestRepl(t *testing.T) {
	input := strings.Join([]string{
		"1 + 1",
		":set a=5 b=TRUE",
		"$a * 2",
		":params",
		":unset a",
		"$a",
		":bogus",
		":timing",
		":q",
		"99",
	}, "\n")
	out, _, err := execute(t, input, "repl")
	require.NoError(t, err)
	require.Contains(t, out, "> 2\n")
	require.Contains(t, out, "> 10\n")
	require.Contains(t, out, "$a = 5 (integer, session)")
	require.Contains(t, out, "$b = TRUE (bool, session)")
	require.Contains(t, out, "parameter 'a' is not defined")
	require.Contains(t, out, "unknown command :bogus")
	require.Contains(t, out, "timing on")
	require.NotContains(t, out, "99")

	history, err := os.ReadFile(filepath.Join(os.Getenv("HOME"), historyFile))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(history), "1 + 1\n"))
}

func TestBench(t *testing.T) {
	out, _, err := execute(t, "", "bench", "-n", "10", "-w", "1", "-o", "json", "1 + 1")
	require.NoError(t, err)
	var result BenchResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Equal(t, 10, result.Iterations)
	require.Equal(t, "2", result.Result)
	require.LessOrEqual(t, result.MinNs, result.MaxNs)

	out, _, err = execute(t, "", "bench", "-n", "5", "-w", "0", "2 * 3")
	require.NoError(t, err)
	require.Contains(t, out, "Iterations:")

	_, _, err = execute(t, "", "bench", "1 / 0")
	require.ErrorContains(t, err, "division by zero")
}

func TestDoc(t *testing.T) {
	out, _, err := execute(t, "", "doc")
	require.NoError(t, err)
	require.Contains(t, out, "ABS(x)")
	require.Contains(t, out, "DESCRIPTION")

	out, _, err = execute(t, "", "doc", "-o", "json", "round")
	require.NoError(t, err)
	require.Contains(t, out, `"example": "ROUND(2.5)"`)

	out, _, err = execute(t, "", "doc", "operators")
	require.NoError(t, err)
	require.Contains(t, out, "precedence")
}

func TestParseParams(t *testing.T) {
	params, err := parseParams([]string{"a=1", "$b = 2.5", "c=true", "d="})
	require.NoError(t, err)
	require.Equal(t, object.ParamMap{
		"a": object.NewInteger(1),
		"b": object.NewDecimal(2.5),
		"c": object.True,
		"d": object.Null,
	}, params)

	_, err = parseParams([]string{"=1"})
	require.Error(t, err)
	_, err = parseParams([]string{"x=abc"})
	require.Error(t, err)
}
