package expr

import (
	"github.com/rs/zerolog"

	"github.com/risor-io/expr/compiler"
)

// Option configures an Engine.
type Option func(*options)

type options struct {
	cfg    Config
	logger zerolog.Logger
}

func collectOptions(opts ...Option) *options {
	o := &options{cfg: DefaultConfig(), logger: zerolog.Nop()}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

// WithConfig replaces the engine configuration. Options given after it
// still apply on top.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		o.cfg = cfg
	}
}

// WithNumericMode sets how numeric literals and results are typed.
func WithNumericMode(mode compiler.NumericMode) Option {
	return func(o *options) {
		o.cfg.NumericMode = mode
	}
}

// WithInitialStackSize sets the number of evaluation stack slots allocated
// up front. The stack doubles when it fills.
func WithInitialStackSize(size int) Option {
	return func(o *options) {
		o.cfg.InitialStackSize = size
	}
}

// WithMaxStackSize caps the evaluation stack. Zero means no cap.
func WithMaxStackSize(size int) Option {
	return func(o *options) {
		o.cfg.MaxStackSize = size
	}
}

// WithMaxCodeSize caps the size in bytes of compiled instructions.
func WithMaxCodeSize(size int) Option {
	return func(o *options) {
		o.cfg.MaxCodeSize = size
	}
}

// WithDisabledFunctions keeps the named built-in and plugin functions from
// being registered. Functions added later with SetFunction are unaffected.
// This option is additive.
func WithDisabledFunctions(names ...string) Option {
	return func(o *options) {
		o.cfg.DisableFunctions = append(o.cfg.DisableFunctions, names...)
	}
}

// WithPlugins registers the functions of each plugin after the built-ins.
// This option is additive.
func WithPlugins(plugins ...Plugin) Option {
	return func(o *options) {
		o.cfg.Plugins = append(o.cfg.Plugins, plugins...)
	}
}

// WithCache enables an LRU cache of compiled code holding up to size
// entries.
func WithCache(size int) Option {
	return func(o *options) {
		o.cfg.CacheSize = size
	}
}

// WithLogger sets the logger used for debug output. The default discards
// everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithGlobalParams sets initial global parameters. Values are converted
// with Params.SetAny. This option is additive; the last value for a name
// wins.
func WithGlobalParams(params map[string]any) Option {
	return func(o *options) {
		if o.cfg.Params == nil {
			o.cfg.Params = map[string]any{}
		}
		for k, v := range params {
			o.cfg.Params[k] = v
		}
	}
}
