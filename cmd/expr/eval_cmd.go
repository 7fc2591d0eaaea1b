package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/risor-io/expr/object"
	"github.com/risor-io/expr/vm"
)

func newEvalCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "eval [expression]",
		Aliases: []string{"e"},
		Short:   "Evaluate an expression",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runEval(cmd, args)
		},
	}
	addInputFlags(cmd)
	cmd.Flags().StringP("output", "o", "text", "Output format: text or json")
	cmd.Flags().Bool("trace", false, "Print each executed instruction to stderr")
	cmd.Flags().Bool("timing", false, "Show compile and evaluation time")
	_ = cmd.RegisterFlagCompletionFunc("output", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return outputFormatsCompletion, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("code", "c", "", "Expression to use")
	cmd.Flags().Bool("stdin", false, "Read the expression from stdin")
}

// getSource returns the expression given as an argument, with --code or on
// stdin. Exactly one source must be used.
func (a *app) getSource(cmd *cobra.Command, args []string) (string, error) {
	var sources int
	codeSet := cmd.Flags().Changed("code")
	stdin, _ := cmd.Flags().GetBool("stdin")
	for _, set := range []bool{codeSet, stdin, len(args) > 0} {
		if set {
			sources++
		}
	}
	switch {
	case sources > 1:
		return "", errors.New("multiple input sources specified")
	case sources == 0:
		return "", errors.New("no expression provided")
	case stdin:
		data, err := io.ReadAll(a.in)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(data)), nil
	case codeSet:
		return cmd.Flags().GetString("code")
	}
	return args[0], nil
}

func (a *app) runEval(cmd *cobra.Command, args []string) error {
	source, err := a.getSource(cmd, args)
	if err != nil {
		return err
	}
	format, err := checkFormat(flagString(cmd, "output"))
	if err != nil {
		return err
	}
	engine, err := a.newEngine()
	if err != nil {
		return err
	}

	start := time.Now()
	code, err := engine.Compile(source)
	if err != nil {
		return a.formatError(err)
	}
	compiled := time.Since(start)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	var result object.Value
	start = time.Now()
	if flagBool(cmd, "trace") {
		result, err = engine.EvaluateObserved(ctx, code, nil, &tracer{w: a.errOut})
	} else {
		result, err = engine.Evaluate(ctx, code, nil)
	}
	evaluated := time.Since(start)
	if err != nil {
		return a.formatError(err)
	}

	if format == "json" {
		out := evalOutput{Value: result, Kind: result.Kind().String()}
		if flagBool(cmd, "timing") {
			out.Duration = (compiled + evaluated).String()
		}
		return writeJSON(a.out, out)
	}
	fmt.Fprintln(a.out, formatValue(result))
	if flagBool(cmd, "timing") {
		fmt.Fprintf(a.out, "compile %v, evaluate %v\n", compiled, evaluated)
	}
	return nil
}

func flagString(cmd *cobra.Command, name string) string {
	if cmd.Flags().Lookup(name) == nil {
		return ""
	}
	s, _ := cmd.Flags().GetString(name)
	return s
}

func flagBool(cmd *cobra.Command, name string) bool {
	if cmd.Flags().Lookup(name) == nil {
		return false
	}
	b, _ := cmd.Flags().GetBool(name)
	return b
}

// tracer prints execution events as they happen.
type tracer struct {
	vm.NoOpObserver
	w io.Writer
}

func (t *tracer) OnStep(event vm.StepEvent) bool {
	fmt.Fprintf(t.w, "%04d %-14s stack=%d\n", event.IP, event.OpcodeName, event.StackDepth)
	return true
}

func (t *tracer) OnCall(event vm.CallEvent) bool {
	args := make([]string, len(event.Args))
	for i, arg := range event.Args {
		args[i] = arg.String()
	}
	fmt.Fprintf(t.w, "     call %s(%s)\n", event.FunctionName, strings.Join(args, ", "))
	return true
}

func (t *tracer) OnReturn(event vm.ReturnEvent) bool {
	fmt.Fprintf(t.w, "     %s returned %s\n", event.FunctionName, event.Result)
	return true
}

var _ vm.Observer = (*tracer)(nil)
