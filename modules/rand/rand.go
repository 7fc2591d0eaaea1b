// Package rand is a plugin of pseudo-random number functions.
package rand

import (
	"math/rand/v2"
	"sync"

	"github.com/risor-io/expr/builtins"
	"github.com/risor-io/expr/errz"
	"github.com/risor-io/expr/object"
)

// Plugin provides the random functions. A plugin created with New draws
// from the runtime's global source; NewWithSeed gives a reproducible one.
type Plugin struct {
	mu  sync.Mutex
	src *rand.Rand
}

func New() *Plugin {
	return &Plugin{}
}

// NewWithSeed returns a plugin whose sequence is fixed by seed.
func NewWithSeed(seed uint64) *Plugin {
	return &Plugin{src: rand.New(rand.NewPCG(seed, seed))}
}

func (p *Plugin) Name() string {
	return "rand"
}

func (p *Plugin) Functions() []builtins.Entry {
	return []builtins.Entry{
		{Name: "RANDINT", Fn: p.Randint, Doc: "Return a random integer in [a, b], inclusive", Args: []string{"a", "b"}, Returns: "integer", Example: "RANDINT(1, 6)"},
		{Name: "RANDOM", Fn: p.Random, Doc: "Return a random decimal in [0, 1)", Returns: "decimal", Example: "RANDOM()"},
		{Name: "RANDOM_INT", Fn: p.Int, Doc: "Return a random integer in [0, n) or [min, max)", Args: []string{"n|min", "max?"}, Returns: "integer", Example: "RANDOM_INT(10)"},
		{Name: "UNIFORM", Fn: p.Uniform, Doc: "Return a random decimal between a and b", Args: []string{"a", "b"}, Returns: "decimal", Example: "UNIFORM(-1, 1)"},
	}
}

func (p *Plugin) nextFloat() float64 {
	if p.src == nil {
		return rand.Float64()
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.src.Float64()
}

func (p *Plugin) nextInt(n int64) int64 {
	if p.src == nil {
		return rand.Int64N(n)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.src.Int64N(n)
}

func integerArg(name string, args object.Args, i int) (int64, error) {
	arg := args[i]
	if !arg.IsInteger() {
		return 0, errz.TypeErrorf("%s() expected an integer for argument %d (%s given)", name, i+1, arg.Kind())
	}
	return arg.Integer(), nil
}

// Random returns a decimal in [0, 1).
func (p *Plugin) Random(call *object.Call) (object.Value, error) {
	if err := call.Args.Require("RANDOM", 0); err != nil {
		return object.Null, err
	}
	return object.NewDecimal(p.nextFloat()), nil
}

// Int returns an integer in [0, n) given one argument, or in [min, max)
// given two.
func (p *Plugin) Int(call *object.Call) (object.Value, error) {
	if err := call.Args.RequireRange("RANDOM_INT", 1, 2); err != nil {
		return object.Null, err
	}
	lo, hi := int64(0), int64(0)
	var err error
	if call.Args.Len() == 1 {
		if hi, err = integerArg("RANDOM_INT", call.Args, 0); err != nil {
			return object.Null, err
		}
		if hi <= 0 {
			return object.Null, errz.ArgsErrorf("RANDOM_INT() maximum must be positive (got %d)", hi)
		}
	} else {
		if lo, err = integerArg("RANDOM_INT", call.Args, 0); err != nil {
			return object.Null, err
		}
		if hi, err = integerArg("RANDOM_INT", call.Args, 1); err != nil {
			return object.Null, err
		}
		if hi <= lo {
			return object.Null, errz.ArgsErrorf("RANDOM_INT() maximum %d must be greater than minimum %d", hi, lo)
		}
	}
	return object.NewInteger(lo + p.nextInt(hi-lo)), nil
}

// Randint returns an integer in [a, b].
func (p *Plugin) Randint(call *object.Call) (object.Value, error) {
	if err := call.Args.Require("RANDINT", 2); err != nil {
		return object.Null, err
	}
	a, err := integerArg("RANDINT", call.Args, 0)
	if err != nil {
		return object.Null, err
	}
	b, err := integerArg("RANDINT", call.Args, 1)
	if err != nil {
		return object.Null, err
	}
	if b < a {
		return object.Null, errz.ArgsErrorf("RANDINT() upper bound %d is less than lower bound %d", b, a)
	}
	return object.NewInteger(a + p.nextInt(b-a+1)), nil
}

func (p *Plugin) Uniform(call *object.Call) (object.Value, error) {
	if err := call.Args.Require("UNIFORM", 2); err != nil {
		return object.Null, err
	}
	nums, err := call.Args.Numbers("UNIFORM")
	if err != nil {
		return object.Null, err
	}
	return object.NewDecimal(nums[0] + p.nextFloat()*(nums[1]-nums[0])), nil
}
