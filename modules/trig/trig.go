// Package trig is a plugin providing trigonometric functions. All angles
// are in radians and all results are decimals.
package trig

import (
	"math"

	"github.com/risor-io/expr/builtins"
	"github.com/risor-io/expr/object"
)

// Plugin provides the trigonometric functions. Register it with
// expr.WithPlugins(trig.New()).
type Plugin struct{}

// New returns the trigonometry plugin.
func New() Plugin {
	return Plugin{}
}

// Name returns "trig".
func (Plugin) Name() string {
	return "trig"
}

// Functions returns the plugin's function entries.
func (Plugin) Functions() []builtins.Entry {
	entries := make([]builtins.Entry, len(trigEntries))
	copy(entries, trigEntries)
	return entries
}

func unary(name string, fn func(float64) float64) object.Function {
	return func(call *object.Call) (object.Value, error) {
		if err := call.Args.Require(name, 1); err != nil {
			return object.Null, err
		}
		x, err := call.Args.Number(name, 0)
		if err != nil {
			return object.Null, err
		}
		return object.NewDecimal(fn(x)), nil
	}
}

func constant(name string, v float64) object.Function {
	return func(call *object.Call) (object.Value, error) {
		if err := call.Args.Require(name, 0); err != nil {
			return object.Null, err
		}
		return object.NewDecimal(v), nil
	}
}

func Atan2(call *object.Call) (object.Value, error) {
	if err := call.Args.Require("ATAN2", 2); err != nil {
		return object.Null, err
	}
	nums, err := call.Args.Numbers("ATAN2")
	if err != nil {
		return object.Null, err
	}
	return object.NewDecimal(math.Atan2(nums[0], nums[1])), nil
}

var (
	Acos    = unary("ACOS", math.Acos)
	Acosh   = unary("ACOSH", math.Acosh)
	Asin    = unary("ASIN", math.Asin)
	Asinh   = unary("ASINH", math.Asinh)
	Atan    = unary("ATAN", math.Atan)
	Atanh   = unary("ATANH", math.Atanh)
	Cos     = unary("COS", math.Cos)
	Cosh    = unary("COSH", math.Cosh)
	Sin     = unary("SIN", math.Sin)
	Sinh    = unary("SINH", math.Sinh)
	Tan     = unary("TAN", math.Tan)
	Tanh    = unary("TANH", math.Tanh)
	Degrees = unary("DEGREES", func(x float64) float64 { return x * 180 / math.Pi })
	Radians = unary("RADIANS", func(x float64) float64 { return x * math.Pi / 180 })
	Pi      = constant("PI", math.Pi)
	Pi2     = constant("PI2", 2*math.Pi)
)
