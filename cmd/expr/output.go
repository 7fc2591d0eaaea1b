package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/hokaccha/go-prettyjson"
	"github.com/mattn/go-isatty"

	"github.com/risor-io/expr/object"
)

var outputFormatsCompletion = []string{"text", "json"}

func isTerminalIO() bool {
	stdin := os.Stdin.Fd()
	stdout := os.Stdout.Fd()
	inTerm := isatty.IsTerminal(stdin) || isatty.IsCygwinTerminal(stdin)
	outTerm := isatty.IsTerminal(stdout) || isatty.IsCygwinTerminal(stdout)
	return inTerm && outTerm
}

// evalOutput is the JSON shape of an evaluation result.
type evalOutput struct {
	Value    object.Value `json:"value"`
	Kind     string       `json:"kind"`
	Duration string       `json:"duration,omitempty"`
}

func writeJSON(w io.Writer, v any) error {
	var data []byte
	var err error
	if color.NoColor {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = prettyjson.Marshal(v)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func checkFormat(format string) (string, error) {
	format = strings.ToLower(format)
	switch format {
	case "", "text":
		return "text", nil
	case "json":
		return format, nil
	}
	return "", fmt.Errorf("unknown output format: %s (expected %s)", format, strings.Join(outputFormatsCompletion, " or "))
}

var (
	kindColor   = color.New(color.FgHiBlack)
	numberColor = color.New(color.FgYellow)
	boolColor   = color.New(color.FgMagenta)
)

// formatValue renders a value for text output.
func formatValue(v object.Value) string {
	switch {
	case v.IsNumber():
		return numberColor.Sprint(v.String())
	case v.IsBool():
		return boolColor.Sprint(v.String())
	}
	return kindColor.Sprint(v.String())
}
