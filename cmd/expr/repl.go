package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"github.com/risor-io/expr"
	"github.com/risor-io/expr/dis"
)

const historyFile = ".expr_history"

var errQuit = errors.New("quit")

func newReplCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRepl(cmd.Context())
		},
	}
}

// repl evaluates one expression per line. Lines starting with ':' are
// commands that manage the session.
type repl struct {
	app         *app
	engine      *expr.Engine
	context     *expr.Context
	out         io.Writer
	showTiming  bool
	historyPath string
}

func (a *app) runRepl(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	engine, err := a.newEngine(expr.WithCache(128))
	if err != nil {
		return err
	}
	r := &repl{
		app:         a,
		engine:      engine,
		context:     expr.NewContext(),
		out:         a.out,
		historyPath: historyPath(),
	}
	fmt.Fprintf(r.out, "expr %s. Type :help for commands.\n", version)
	return r.run(ctx, a.in)
}

func historyPath() string {
	home, err := homedir.Dir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, historyFile)
}

func (r *repl) run(ctx context.Context, in io.Reader) error {
	prompt := color.New(color.FgCyan).Sprint("> ")
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(r.out, prompt)
		if !scanner.Scan() {
			fmt.Fprintln(r.out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		r.appendHistory(line)
		if err := r.handle(ctx, line); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			fmt.Fprintln(r.out, r.app.formatError(err))
		}
	}
}

func (r *repl) handle(ctx context.Context, line string) error {
	if strings.HasPrefix(line, ":") {
		return r.command(line)
	}
	start := time.Now()
	result, err := r.engine.Eval(ctx, line, r.context)
	if err != nil {
		return err
	}
	fmt.Fprintln(r.out, formatValue(result))
	if r.showTiming {
		fmt.Fprintf(r.out, "%v\n", time.Since(start))
	}
	return nil
}

func (r *repl) command(line string) error {
	name, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)
	switch name {
	case ":help", ":h", ":?":
		fmt.Fprint(r.out, replHelp)
	case ":set", ":s":
		params, err := parseParams(strings.Fields(rest))
		if err != nil {
			return err
		}
		for k, v := range params {
			r.context.Params[k] = v
		}
	case ":unset":
		for _, k := range strings.Fields(rest) {
			delete(r.context.Params, strings.TrimPrefix(k, "$"))
		}
	case ":params":
		r.printParams()
	case ":functions", ":f":
		fmt.Fprintln(r.out, strings.Join(r.engine.FunctionNames(), " "))
	case ":dis":
		code, err := r.engine.Compile(rest)
		if err != nil {
			return err
		}
		instructions, err := dis.Disassemble(code, r.engine)
		if err != nil {
			return err
		}
		return dis.Print(instructions, r.out)
	case ":timing":
		r.showTiming = !r.showTiming
		fmt.Fprintf(r.out, "timing %s\n", map[bool]string{true: "on", false: "off"}[r.showTiming])
	case ":exit", ":quit", ":q":
		return errQuit
	default:
		return fmt.Errorf("unknown command %s (try :help)", name)
	}
	return nil
}

func (r *repl) printParams() {
	names := make([]string, 0, len(r.context.Params))
	for name := range r.context.Params {
		names = append(names, name)
	}
	globals := r.engine.Params()
	for _, name := range globals.Names() {
		if _, ok := r.context.Params[name]; !ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		v, ok := r.context.Params[name]
		scope := "session"
		if !ok {
			v, _ = globals.Get(name)
			scope = "global"
		}
		fmt.Fprintf(r.out, "$%s = %s (%s, %s)\n", name, formatValue(v), v.Kind(), scope)
	}
}

func (r *repl) appendHistory(line string) {
	if r.historyPath == "" {
		return
	}
	f, err := os.OpenFile(r.historyPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = f.WriteString(line + "\n")
}

const replHelp = `Commands:
  :help, :h, :?      Show this help
  :set name=value    Set session parameters
  :unset name        Remove session parameters
  :params            List parameters
  :functions, :f     List functions
  :dis expression    Disassemble an expression
  :timing            Toggle evaluation timing
  :quit, :q          Exit
`
