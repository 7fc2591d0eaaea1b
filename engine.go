// Package expr is an embeddable expression language. Expressions are
// compiled in a single pass to compact bytecode and evaluated by a
// stack-based virtual machine:
//
//	engine, err := expr.New()
//	result, err := engine.Eval(ctx, "MAX($a, 10) * 2", &expr.Context{
//		Params: object.ParamMap{"a": object.NewInteger(7)},
//	})
//
// An Engine owns a function registry and a table of global parameters.
// Compiled code is immutable and may be evaluated concurrently.
package expr

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"

	"github.com/risor-io/expr/builtins"
	"github.com/risor-io/expr/bytecode"
	"github.com/risor-io/expr/compiler"
	"github.com/risor-io/expr/internal/cache"
	"github.com/risor-io/expr/object"
	"github.com/risor-io/expr/vm"
)

// Function is the signature of host functions callable from expressions.
type Function = object.Function

// Context supplies per-evaluation parameters and an opaque value passed
// through to functions. Context parameters shadow global parameters.
type Context struct {
	Params   object.ParamMap
	UserData any
}

// NewContext returns a Context with an empty parameter map.
func NewContext() *Context {
	return &Context{Params: object.ParamMap{}}
}

// Engine compiles and evaluates expressions. It is safe for concurrent use;
// compilers and virtual machines are pooled internally.
type Engine struct {
	cfg    Config
	logger zerolog.Logger
	params *Params
	cache  *cache.Cache

	mu        sync.RWMutex
	functions []*object.Builtin // index is id-1
	byName    map[string]uint32
	docs      map[string]FunctionDoc
	disabled  map[string]bool

	compilers sync.Pool
	machines  sync.Pool
}

// New returns an Engine with the built-in functions and any configured
// plugins registered. Registration problems are collected and returned
// together.
func New(opts ...Option) (*Engine, error) {
	o := collectOptions(opts...)
	cfg := o.cfg
	if cfg.InitialStackSize <= 0 {
		cfg.InitialStackSize = vm.DefaultStackSize
	}
	if cfg.MaxStackSize > 0 && cfg.InitialStackSize > cfg.MaxStackSize {
		cfg.InitialStackSize = cfg.MaxStackSize
	}

	e := &Engine{
		cfg:      cfg,
		logger:   o.logger,
		params:   NewParams(),
		byName:   map[string]uint32{},
		docs:     map[string]FunctionDoc{},
		disabled: map[string]bool{},
	}
	for _, name := range cfg.DisableFunctions {
		e.disabled[strings.ToUpper(name)] = true
	}
	if cfg.CacheSize > 0 {
		e.cache = cache.New(cfg.CacheSize)
	}
	e.compilers.New = func() any {
		return compiler.New(&compiler.Config{
			NumericMode: e.cfg.NumericMode,
			Functions:   e,
			MaxCodeSize: e.cfg.MaxCodeSize,
		})
	}
	e.machines.New = func() any {
		return e.newMachine()
	}

	var errs *multierror.Error
	if cfg.MaxStackSize < 0 {
		errs = multierror.Append(errs, fmt.Errorf("max stack size must not be negative (got %d)", cfg.MaxStackSize))
	}
	if cfg.MaxCodeSize < 0 {
		errs = multierror.Append(errs, fmt.Errorf("max code size must not be negative (got %d)", cfg.MaxCodeSize))
	}

	e.registerEntries("builtins", builtins.Builtins(), &errs)
	for _, plugin := range cfg.Plugins {
		if plugin == nil {
			errs = multierror.Append(errs, fmt.Errorf("nil plugin"))
			continue
		}
		e.registerEntries(plugin.Name(), plugin.Functions(), &errs)
		e.logger.Debug().Str("plugin", plugin.Name()).Msg("loaded plugin")
	}

	for name, value := range cfg.Params {
		if err := e.params.SetAny(name, value); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("global parameter %q: %w", name, err))
		}
	}

	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	e.logger.Debug().
		Int("functions", len(e.byName)).
		Str("numeric_mode", cfg.NumericMode.String()).
		Msg("engine ready")
	return e, nil
}

func (e *Engine) registerEntries(source string, entries []builtins.Entry, errs **multierror.Error) {
	for i, entry := range entries {
		switch {
		case entry.Name == "":
			*errs = multierror.Append(*errs, fmt.Errorf("%s: function entry %d has no name", source, i))
			continue
		case entry.Fn == nil:
			*errs = multierror.Append(*errs, fmt.Errorf("%s: function %q has no implementation", source, entry.Name))
			continue
		}
		if e.disabled[strings.ToUpper(entry.Name)] {
			continue
		}
		e.SetFunction(entry.Name, entry.Fn)
		e.recordDoc(source, entry)
	}
}

func (e *Engine) newMachine(opts ...vm.Option) *vm.VirtualMachine {
	base := []vm.Option{
		vm.WithFunctions(e),
		vm.WithGlobals(e.params),
		vm.WithInitialStackSize(e.cfg.InitialStackSize),
		vm.WithMaxStackSize(e.cfg.MaxStackSize),
	}
	return vm.New(append(base, opts...)...)
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Params returns the global parameters consulted when an evaluation
// context does not define a name.
func (e *Engine) Params() *Params {
	return e.params
}

// SetFunction registers fn under name, ignoring case. Registering a name
// again binds it to a new id; code compiled earlier keeps calling the
// function it was compiled against.
func (e *Engine) SetFunction(name string, fn Function) {
	e.mu.Lock()
	e.functions = append(e.functions, object.NewBuiltin(strings.ToUpper(name), fn))
	id := uint32(len(e.functions))
	e.byName[strings.ToUpper(name)] = id
	delete(e.docs, strings.ToUpper(name))
	e.mu.Unlock()

	// Cached code may be bound to the previous id of this name.
	if e.cache != nil {
		e.cache.Clear()
	}
	e.logger.Debug().Str("function", name).Uint32("id", id).Msg("registered function")
}

// HasFunction reports whether name is bound to a function.
func (e *Engine) HasFunction(name string) bool {
	_, ok := e.FunctionID(name)
	return ok
}

// FunctionID returns the id currently bound to name.
func (e *Engine) FunctionID(name string) (uint32, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	id, ok := e.byName[strings.ToUpper(name)]
	return id, ok
}

// FunctionByID returns the function registered with the given id.
func (e *Engine) FunctionByID(id uint32) (*object.Builtin, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if id == 0 || int(id) > len(e.functions) {
		return nil, false
	}
	return e.functions[id-1], true
}

// FunctionName returns the name the given id was registered under.
func (e *Engine) FunctionName(id uint32) (string, bool) {
	fn, ok := e.FunctionByID(id)
	if !ok {
		return "", false
	}
	return fn.Name(), true
}

// FunctionNames returns the names of all callable functions, sorted.
func (e *Engine) FunctionNames() []string {
	e.mu.RLock()
	names := make([]string, 0, len(e.byName))
	for name := range e.byName {
		names = append(names, name)
	}
	e.mu.RUnlock()
	sort.Strings(names)
	return names
}

// Compile compiles source into code that may be cached and evaluated
// concurrently.
func (e *Engine) Compile(source string) (*bytecode.Code, error) {
	if e.cache == nil {
		return e.compile(source)
	}
	hit := true
	code, err := e.cache.GetOrCompile(source, func() (*bytecode.Code, error) {
		hit = false
		return e.compile(source)
	})
	if err == nil && hit {
		e.logger.Debug().Str("source", source).Msg("compile cache hit")
	}
	return code, err
}

func (e *Engine) compile(source string) (*bytecode.Code, error) {
	c := e.compilers.Get().(*compiler.Compiler)
	defer e.compilers.Put(c)
	code, err := c.Compile(source)
	if err != nil {
		e.logger.Debug().Err(err).Str("source", source).Msg("compile failed")
		return nil, err
	}
	e.logger.Debug().
		Str("source", source).
		Int("bytes", code.InstructionCount()).
		Int("strings", code.StringCount()).
		Msg("compiled")
	return code, nil
}

// Evaluate runs compiled code. c may be nil.
func (e *Engine) Evaluate(ctx context.Context, code *bytecode.Code, c *Context) (object.Value, error) {
	machine := e.machines.Get().(*vm.VirtualMachine)
	defer e.machines.Put(machine)
	return e.run(ctx, machine, code, c)
}

// EvaluateObserved runs compiled code on a dedicated virtual machine that
// reports each step and call to observer.
func (e *Engine) EvaluateObserved(ctx context.Context, code *bytecode.Code, c *Context, observer vm.Observer) (object.Value, error) {
	return e.run(ctx, e.newMachine(vm.WithObserver(observer)), code, c)
}

func (e *Engine) run(ctx context.Context, machine *vm.VirtualMachine, code *bytecode.Code, c *Context) (object.Value, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	var params object.Params
	var userData any
	if c != nil {
		params = c.Params
		userData = c.UserData
	}
	result, err := machine.Evaluate(ctx, code, params, userData)
	if err != nil {
		e.logger.Debug().Err(err).Msg("evaluation failed")
		return object.Null, err
	}
	return e.normalize(result), nil
}

// Eval compiles and evaluates source. Without a cache the compiled code is
// transient and discarded after evaluation.
func (e *Engine) Eval(ctx context.Context, source string, c *Context) (object.Value, error) {
	if e.cache != nil {
		code, err := e.Compile(source)
		if err != nil {
			return object.Null, err
		}
		return e.Evaluate(ctx, code, c)
	}
	comp := e.compilers.Get().(*compiler.Compiler)
	defer e.compilers.Put(comp)
	code, err := comp.CompileTransient(source)
	if err != nil {
		e.logger.Debug().Err(err).Str("source", source).Msg("compile failed")
		return object.Null, err
	}
	return e.Evaluate(ctx, code, c)
}

// MustCompile is like Compile but panics on error.
func (e *Engine) MustCompile(source string) *bytecode.Code {
	code, err := e.Compile(source)
	if err != nil {
		panic(err)
	}
	return code
}

// MustEvaluate is like Eval but panics on error.
func (e *Engine) MustEvaluate(ctx context.Context, source string, c *Context) object.Value {
	result, err := e.Eval(ctx, source, c)
	if err != nil {
		panic(err)
	}
	return result
}

// CacheStats reports artifact cache counters. The second result is false
// when caching is disabled.
func (e *Engine) CacheStats() (cache.Stats, bool) {
	if e.cache == nil {
		return cache.Stats{}, false
	}
	return e.cache.Stats(), true
}

// normalize applies the numeric mode to a result, since functions may
// return either kind of number.
func (e *Engine) normalize(v object.Value) object.Value {
	switch {
	case e.cfg.NumericMode == compiler.NumericInteger && v.IsDecimal():
		return v.ToInteger()
	case e.cfg.NumericMode == compiler.NumericDecimal && v.IsInteger():
		return v.ToDecimal()
	}
	return v
}
