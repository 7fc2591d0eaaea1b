package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/risor-io/expr"
	"github.com/risor-io/expr/compiler"
	"github.com/risor-io/expr/errz"
	"github.com/risor-io/expr/object"
)

const defaultConfigFile = "~/.expr.toml"

var red = color.New(color.FgRed).SprintFunc()

// app carries the state shared by all commands. Each root command gets its
// own viper instance so commands can be built repeatedly in tests.
type app struct {
	v      *viper.Viper
	in     io.Reader
	out    io.Writer
	errOut io.Writer
	logger zerolog.Logger
}

func newApp(in io.Reader, out, errOut io.Writer) *app {
	return &app{
		v:      viper.New(),
		in:     in,
		out:    out,
		errOut: errOut,
		logger: zerolog.Nop(),
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "expr",
		Short:         "Compile and evaluate expressions",
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MaximumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return a.runEval(cmd, args)
			}
			if isTerminalIO() {
				return a.runRepl(cmd.Context())
			}
			return cmd.Help()
		},
	}
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	flags := root.PersistentFlags()
	flags.String("config", "", "Config file (default "+defaultConfigFile+" if present)")
	flags.StringArrayP("param", "p", nil, "Global parameter as name=value (repeatable)")
	flags.String("numeric-mode", "all", "Numeric mode: all, integer or decimal")
	flags.StringSlice("plugin", nil, "Plugins to load ("+strings.Join(expr.PluginNames(), ", ")+")")
	flags.StringSlice("disable", nil, "Built-in functions to disable")
	flags.Int("max-stack", 0, "Maximum evaluation stack size (0 for no limit)")
	flags.Bool("no-color", false, "Disable colored output")
	flags.BoolP("verbose", "v", false, "Log debug output to stderr")

	a.v.SetEnvPrefix("EXPR")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	for _, name := range []string{"config", "param", "numeric-mode", "plugin", "disable", "max-stack", "no-color", "verbose"} {
		_ = a.v.BindPFlag(name, flags.Lookup(name))
	}
	_ = a.v.BindEnv("no-color", "EXPR_NO_COLOR", "NO_COLOR")

	root.AddCommand(
		newEvalCmd(a),
		newDisCmd(a),
		newReplCmd(a),
		newBenchCmd(a),
		newDocCmd(a),
	)
	return root
}

// setup applies global flags that affect every command.
func (a *app) setup() error {
	if a.v.GetBool("no-color") {
		color.NoColor = true
	}
	level := zerolog.InfoLevel
	if a.v.GetBool("verbose") {
		level = zerolog.DebugLevel
	}
	a.logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        a.errOut,
		NoColor:    color.NoColor,
		TimeFormat: time.TimeOnly,
	}).Level(level).With().Timestamp().Logger()
	return nil
}

// newEngine builds an engine from the config file, flags and environment.
// Flags override the config file.
func (a *app) newEngine(opts ...expr.Option) (*expr.Engine, error) {
	cfg := expr.DefaultConfig()
	path, explicit := a.v.GetString("config"), true
	if path == "" {
		path, explicit = defaultConfigFile, false
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}
	if _, statErr := os.Stat(expanded); statErr == nil || explicit {
		if cfg, err = expr.LoadConfigFile(expanded); err != nil {
			return nil, err
		}
		a.logger.Debug().Str("path", expanded).Msg("loaded config")
	}

	if a.v.IsSet("numeric-mode") {
		mode, err := compiler.ParseNumericMode(a.v.GetString("numeric-mode"))
		if err != nil {
			return nil, err
		}
		cfg.NumericMode = mode
	}
	if limit := a.v.GetInt("max-stack"); limit > 0 {
		cfg.MaxStackSize = limit
	}
	cfg.DisableFunctions = append(cfg.DisableFunctions, a.v.GetStringSlice("disable")...)
	for _, name := range a.v.GetStringSlice("plugin") {
		plugin, err := expr.PluginByName(name)
		if err != nil {
			return nil, err
		}
		cfg.Plugins = append(cfg.Plugins, plugin)
	}

	params, err := parseParams(a.v.GetStringSlice("param"))
	if err != nil {
		return nil, err
	}
	base := []expr.Option{expr.WithConfig(cfg), expr.WithLogger(a.logger)}
	engine, err := expr.New(append(base, opts...)...)
	if err != nil {
		return nil, err
	}
	for name, value := range params {
		engine.Params().Set(name, value)
	}
	return engine, nil
}

// parseParams parses name=value pairs. Values are read with object.Parse.
func parseParams(pairs []string) (object.ParamMap, error) {
	params := object.ParamMap{}
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimPrefix(strings.TrimSpace(name), "$")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid parameter %q (expected name=value)", pair)
		}
		v, err := object.Parse(value)
		if err != nil {
			return nil, fmt.Errorf("parameter %s: %w", name, err)
		}
		params[name] = v
	}
	return params, nil
}

// formatError renders compile errors with their snippet and caret.
func (a *app) formatError(err error) error {
	return fmt.Errorf("%s", errz.NewFormatter(!color.NoColor).Format(err))
}
