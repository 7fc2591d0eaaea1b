package object

import (
	"math"

	"github.com/risor-io/expr/errz"
)

// ArithmeticOp identifies a binary arithmetic operation.
type ArithmeticOp uint8

const (
	Add ArithmeticOp = iota + 1
	Subtract
	Multiply
	Divide
	Modulo
)

// String returns the operator symbol, for example "+" for Add.
func (o ArithmeticOp) String() string {
	switch o {
	case Add:
		return "+"
	case Subtract:
		return "-"
	case Multiply:
		return "*"
	case Divide:
		return "/"
	case Modulo:
		return "%"
	default:
		return "?"
	}
}

// CompareOp identifies an ordering comparison.
type CompareOp uint8

const (
	GreaterThan CompareOp = iota + 1
	GreaterThanOrEqual
	LessThan
	LessThanOrEqual
)

// String returns the operator symbol, for example "<" for LessThan.
func (o CompareOp) String() string {
	switch o {
	case GreaterThan:
		return ">"
	case GreaterThanOrEqual:
		return ">="
	case LessThan:
		return "<"
	case LessThanOrEqual:
		return "<="
	default:
		return "?"
	}
}

// Arithmetic applies o to a and b. Two integers produce an integer; any
// mix involving a decimal promotes the integer side and produces a
// decimal. Bool and null operands are type errors, and integer division
// or remainder by zero is an arithmetic error.
func Arithmetic(o ArithmeticOp, a, b Value) (Value, error) {
	switch {
	case a.kind == INTEGER && b.kind == INTEGER:
		return integerArithmetic(o, a.Integer(), b.Integer())
	case a.IsNumber() && b.IsNumber():
		return decimalArithmetic(o, a.Number(), b.Number())
	}
	return Null, errz.TypeErrorf("unsupported operand types for %s: %s and %s",
		o, a.kind, b.kind)
}

func integerArithmetic(o ArithmeticOp, x, y int64) (Value, error) {
	switch o {
	case Add:
		return NewInteger(x + y), nil
	case Subtract:
		return NewInteger(x - y), nil
	case Multiply:
		return NewInteger(x * y), nil
	case Divide:
		if y == 0 {
			return Null, divisionByZero("division")
		}
		return NewInteger(x / y), nil
	case Modulo:
		if y == 0 {
			return Null, divisionByZero("modulo")
		}
		return NewInteger(x % y), nil
	}
	return Null, errz.NewRuntimeErrorf(errz.ErrRuntime, "unknown arithmetic operation %d", o)
}

func decimalArithmetic(o ArithmeticOp, x, y float64) (Value, error) {
	switch o {
	case Add:
		return NewDecimal(x + y), nil
	case Subtract:
		return NewDecimal(x - y), nil
	case Multiply:
		return NewDecimal(x * y), nil
	case Divide:
		return NewDecimal(x / y), nil
	case Modulo:
		return NewDecimal(math.Mod(x, y)), nil
	}
	return Null, errz.NewRuntimeErrorf(errz.ErrRuntime, "unknown arithmetic operation %d", o)
}

func divisionByZero(what string) error {
	return errz.NewRuntimeErrorf(errz.ErrArithmetic, "integer %s by zero", what).
		WithCause(errz.ErrDivisionByZero)
}

// Compare applies the ordering comparison o to a and b using the same
// promotion rules as Arithmetic. Bool and null operands are type errors.
func Compare(o CompareOp, a, b Value) (Value, error) {
	if a.kind == INTEGER && b.kind == INTEGER {
		x, y := a.Integer(), b.Integer()
		switch o {
		case GreaterThan:
			return NewBool(x > y), nil
		case GreaterThanOrEqual:
			return NewBool(x >= y), nil
		case LessThan:
			return NewBool(x < y), nil
		case LessThanOrEqual:
			return NewBool(x <= y), nil
		}
	} else if a.IsNumber() && b.IsNumber() {
		x, y := a.Number(), b.Number()
		switch o {
		case GreaterThan:
			return NewBool(x > y), nil
		case GreaterThanOrEqual:
			return NewBool(x >= y), nil
		case LessThan:
			return NewBool(x < y), nil
		case LessThanOrEqual:
			return NewBool(x <= y), nil
		}
	} else {
		return Null, errz.TypeErrorf("unsupported operand types for %s: %s and %s",
			o, a.kind, b.kind)
	}
	return Null, errz.NewRuntimeErrorf(errz.ErrRuntime, "unknown comparison %d", o)
}

// Negate returns -a for numeric values.
func Negate(a Value) (Value, error) {
	switch a.kind {
	case INTEGER:
		return NewInteger(-a.Integer()), nil
	case DECIMAL:
		return NewDecimal(-a.Decimal()), nil
	}
	return Null, errz.TypeErrorf("bad operand type for unary -: %s", a.kind)
}

// Not returns the logical negation of a's truthiness.
func Not(a Value) Value {
	return NewBool(!a.Truthy())
}

// Xor returns true when exactly one of a and b is truthy.
func Xor(a, b Value) Value {
	return NewBool(a.Truthy() != b.Truthy())
}
