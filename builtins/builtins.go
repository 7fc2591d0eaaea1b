// Package builtins defines the default set of functions available to
// expressions. Each function receives its arguments as a view over the
// evaluation stack and returns a single value.
package builtins

import (
	"math"

	"github.com/risor-io/expr/errz"
	"github.com/risor-io/expr/object"
)

// Entry describes a function that can be registered with an engine.
type Entry struct {
	Name    string
	Fn      object.Function
	Doc     string
	Args    []string
	Returns string
	Example string
}

// unaryNumeric applies intOp or decOp depending on the argument's kind.
func unaryNumeric(name string, call *object.Call, intOp func(int64) object.Value, decOp func(float64) object.Value) (object.Value, error) {
	if err := call.Args.Require(name, 1); err != nil {
		return object.Null, err
	}
	arg := call.Args[0]
	switch arg.Kind() {
	case object.INTEGER:
		return intOp(arg.Integer()), nil
	case object.DECIMAL:
		return decOp(arg.Decimal()), nil
	}
	return object.Null, errz.TypeErrorf("%s() expected a number for argument 1 (%s given)", name, arg.Kind())
}

// binaryNumeric applies intOp when both arguments are integers and decOp
// otherwise, following the arithmetic promotion rules.
func binaryNumeric(name string, a, b object.Value, intOp func(x, y int64) int64, decOp func(x, y float64) float64) (object.Value, error) {
	if a.IsInteger() && b.IsInteger() {
		return object.NewInteger(intOp(a.Integer(), b.Integer())), nil
	}
	if !a.IsNumber() {
		return object.Null, errz.TypeErrorf("%s() expected a number for argument 1 (%s given)", name, a.Kind())
	}
	if !b.IsNumber() {
		return object.Null, errz.TypeErrorf("%s() expected a number for argument 2 (%s given)", name, b.Kind())
	}
	return object.NewDecimal(decOp(a.Number(), b.Number())), nil
}

func decimalOf(name string, call *object.Call, fn func(float64) float64) (object.Value, error) {
	if err := call.Args.Require(name, 1); err != nil {
		return object.Null, err
	}
	x, err := call.Args.Number(name, 0)
	if err != nil {
		return object.Null, err
	}
	return object.NewDecimal(fn(x)), nil
}

func Bool(call *object.Call) (object.Value, error) {
	if err := call.Args.Require("BOOL", 1); err != nil {
		return object.Null, err
	}
	return call.Args[0].ToBool(), nil
}

func Integer(call *object.Call) (object.Value, error) {
	if err := call.Args.Require("INTEGER", 1); err != nil {
		return object.Null, err
	}
	return call.Args[0].ToInteger(), nil
}

func Decimal(call *object.Call) (object.Value, error) {
	if err := call.Args.Require("DECIMAL", 1); err != nil {
		return object.Null, err
	}
	return call.Args[0].ToDecimal(), nil
}

func isKind(name string, test func(object.Value) bool) object.Function {
	return func(call *object.Call) (object.Value, error) {
		if err := call.Args.Require(name, 1); err != nil {
			return object.Null, err
		}
		return object.NewBool(test(call.Args[0])), nil
	}
}

var (
	IsBool    = isKind("IS_BOOL", object.Value.IsBool)
	IsInteger = isKind("IS_INTEGER", object.Value.IsInteger)
	IsDecimal = isKind("IS_DECIMAL", object.Value.IsDecimal)
	IsNumber  = isKind("IS_NUMBER", object.Value.IsNumber)
	IsNull    = isKind("IS_NULL", object.Value.IsNull)
)

// And returns true if every argument is truthy.
func And(call *object.Call) (object.Value, error) {
	if err := call.Args.RequireMin("AND", 1); err != nil {
		return object.Null, err
	}
	for _, arg := range call.Args {
		if !arg.Truthy() {
			return object.False, nil
		}
	}
	return object.True, nil
}

// Or returns true if any argument is truthy.
func Or(call *object.Call) (object.Value, error) {
	if err := call.Args.RequireMin("OR", 1); err != nil {
		return object.Null, err
	}
	for _, arg := range call.Args {
		if arg.Truthy() {
			return object.True, nil
		}
	}
	return object.False, nil
}

// If returns its second argument when the first is truthy, else its third.
// Both branches are evaluated before the call.
func If(call *object.Call) (object.Value, error) {
	if err := call.Args.Require("IF", 3); err != nil {
		return object.Null, err
	}
	if call.Args[0].Truthy() {
		return call.Args[1], nil
	}
	return call.Args[2], nil
}

func Xor(call *object.Call) (object.Value, error) {
	if err := call.Args.Require("XOR", 2); err != nil {
		return object.Null, err
	}
	return object.Xor(call.Args[0], call.Args[1]), nil
}

func IsNaN(call *object.Call) (object.Value, error) {
	if err := call.Args.Require("ISNAN", 1); err != nil {
		return object.Null, err
	}
	arg := call.Args[0]
	return object.NewBool(arg.IsDecimal() && math.IsNaN(arg.Decimal())), nil
}

func E(call *object.Call) (object.Value, error) {
	if err := call.Args.Require("E", 0); err != nil {
		return object.Null, err
	}
	return object.NewDecimal(math.E), nil
}

// Abs fails with an arithmetic error for the smallest integer, whose
// absolute value has no int64 representation.
func Abs(call *object.Call) (object.Value, error) {
	if call.Args.Len() == 1 && call.Args[0].IsInteger() && call.Args[0].Integer() == math.MinInt64 {
		return object.Null, errz.NewRuntimeErrorf(errz.ErrArithmetic, "ABS() integer overflow")
	}
	return unaryNumeric("ABS", call,
		func(v int64) object.Value {
			if v < 0 {
				v = -v
			}
			return object.NewInteger(v)
		},
		func(v float64) object.Value { return object.NewDecimal(math.Abs(v)) })
}

func integerIdentity(v int64) object.Value {
	return object.NewInteger(v)
}

func Ceil(call *object.Call) (object.Value, error) {
	return unaryNumeric("CEIL", call, integerIdentity,
		func(v float64) object.Value { return object.NewDecimal(math.Ceil(v)) })
}

func Floor(call *object.Call) (object.Value, error) {
	return unaryNumeric("FLOOR", call, integerIdentity,
		func(v float64) object.Value { return object.NewDecimal(math.Floor(v)) })
}

// Round rounds decimals to the nearest integer, ties to even.
func Round(call *object.Call) (object.Value, error) {
	return unaryNumeric("ROUND", call, integerIdentity,
		func(v float64) object.Value { return object.NewDecimal(math.RoundToEven(v)) })
}

func Trunc(call *object.Call) (object.Value, error) {
	return unaryNumeric("TRUNC", call, integerIdentity,
		func(v float64) object.Value { return object.NewDecimal(math.Trunc(v)) })
}

// Sign returns -1, 0 or 1 as an integer.
func Sign(call *object.Call) (object.Value, error) {
	return unaryNumeric("SIGN", call,
		func(v int64) object.Value {
			switch {
			case v < 0:
				return object.NewInteger(-1)
			case v > 0:
				return object.NewInteger(1)
			}
			return object.NewInteger(0)
		},
		func(v float64) object.Value {
			switch {
			case v < 0:
				return object.NewInteger(-1)
			case v > 0:
				return object.NewInteger(1)
			}
			return object.NewInteger(0)
		})
}

// Clamp limits the first argument to the range given by the second and
// third. The result is an integer when the first argument is.
func Clamp(call *object.Call) (object.Value, error) {
	if err := call.Args.Require("CLAMP", 3); err != nil {
		return object.Null, err
	}
	nums, err := call.Args.Numbers("CLAMP")
	if err != nil {
		return object.Null, err
	}
	if nums[1] > nums[2] {
		return object.Null, errz.ArgsErrorf("CLAMP() minimum %v is greater than maximum %v", nums[1], nums[2])
	}
	if call.Args[0].IsInteger() && call.Args[1].IsInteger() && call.Args[2].IsInteger() {
		return object.NewInteger(min(max(call.Args[0].Integer(), call.Args[1].Integer()), call.Args[2].Integer())), nil
	}
	clamped := math.Min(math.Max(nums[0], nums[1]), nums[2])
	if call.Args[0].IsInteger() {
		return object.NewDecimal(clamped).ToInteger(), nil
	}
	return object.NewDecimal(clamped), nil
}

func Exp(call *object.Call) (object.Value, error) {
	return decimalOf("EXP", call, math.Exp)
}

// Log returns the natural logarithm, or the logarithm in the base given
// as the second argument.
func Log(call *object.Call) (object.Value, error) {
	if err := call.Args.RequireRange("LOG", 1, 2); err != nil {
		return object.Null, err
	}
	nums, err := call.Args.Numbers("LOG")
	if err != nil {
		return object.Null, err
	}
	if len(nums) == 1 {
		return object.NewDecimal(math.Log(nums[0])), nil
	}
	return object.NewDecimal(math.Log(nums[0]) / math.Log(nums[1])), nil
}

func Log10(call *object.Call) (object.Value, error) {
	return decimalOf("LOG10", call, math.Log10)
}

func Log2(call *object.Call) (object.Value, error) {
	return decimalOf("LOG2", call, math.Log2)
}

func Sqrt(call *object.Call) (object.Value, error) {
	return decimalOf("SQRT", call, math.Sqrt)
}

func Pow(call *object.Call) (object.Value, error) {
	if err := call.Args.Require("POW", 2); err != nil {
		return object.Null, err
	}
	nums, err := call.Args.Numbers("POW")
	if err != nil {
		return object.Null, err
	}
	return object.NewDecimal(math.Pow(nums[0], nums[1])), nil
}

// extremum implements MAX and MIN. Two arguments follow the arithmetic
// promotion rules; with more, the result is a decimal if any argument is.
func extremum(name string, pick func(x, y float64) float64, pickInt func(x, y int64) int64) object.Function {
	return func(call *object.Call) (object.Value, error) {
		if err := call.Args.RequireMin(name, 2); err != nil {
			return object.Null, err
		}
		if call.Args.Len() == 2 {
			return binaryNumeric(name, call.Args[0], call.Args[1], pickInt, pick)
		}
		nums, err := call.Args.Numbers(name)
		if err != nil {
			return object.Null, err
		}
		isDecimal := false
		for _, arg := range call.Args {
			isDecimal = isDecimal || arg.IsDecimal()
		}
		if !isDecimal {
			result := call.Args[0].Integer()
			for _, arg := range call.Args[1:] {
				result = pickInt(result, arg.Integer())
			}
			return object.NewInteger(result), nil
		}
		result := nums[0]
		for _, n := range nums[1:] {
			result = pick(result, n)
		}
		return object.NewDecimal(result), nil
	}
}

var (
	Max = extremum("MAX", math.Max, func(x, y int64) int64 { return max(x, y) })
	Min = extremum("MIN", math.Min, func(x, y int64) int64 { return min(x, y) })
)

// Sum adds its arguments using the arithmetic promotion rules.
func Sum(call *object.Call) (object.Value, error) {
	if err := call.Args.RequireMin("SUM", 2); err != nil {
		return object.Null, err
	}
	total := call.Args[0]
	for _, arg := range call.Args[1:] {
		var err error
		if total, err = object.Arithmetic(object.Add, total, arg); err != nil {
			return object.Null, err
		}
	}
	return total, nil
}
