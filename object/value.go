// Package object defines the scalar Value shared by the compiler and the
// virtual machine, the rules for operating on values, and the types used to
// expose host functions to expressions.
package object

import (
	"encoding/json"
	"math"
	"strconv"
)

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	NULL Kind = iota
	BOOL
	INTEGER
	DECIMAL
)

func (k Kind) String() string {
	switch k {
	case BOOL:
		return "bool"
	case INTEGER:
		return "integer"
	case DECIMAL:
		return "decimal"
	default:
		return "null"
	}
}

// Value is a tagged scalar. Integer, decimal and bool variants share one
// 64-bit payload; the kind alone decides how it is read. Accessors for a
// variant the value does not hold return that variant's zero value.
type Value struct {
	kind Kind
	bits uint64
}

var (
	Null  = Value{}
	True  = Value{kind: BOOL, bits: 1}
	False = Value{kind: BOOL}
	NaN   = NewDecimal(math.NaN())
)

// NewBool returns a Bool value.
func NewBool(b bool) Value {
	if b {
		return True
	}
	return False
}

// NewInteger returns an Integer value.
func NewInteger(i int64) Value {
	return Value{kind: INTEGER, bits: uint64(i)}
}

// NewDecimal returns a Decimal value.
func NewDecimal(f float64) Value {
	return Value{kind: DECIMAL, bits: math.Float64bits(f)}
}

func (v Value) Kind() Kind      { return v.kind }
func (v Value) IsNull() bool    { return v.kind == NULL }
func (v Value) IsBool() bool    { return v.kind == BOOL }
func (v Value) IsInteger() bool { return v.kind == INTEGER }
func (v Value) IsDecimal() bool { return v.kind == DECIMAL }

// IsNumber reports whether the value is an Integer or a Decimal.
func (v Value) IsNumber() bool {
	return v.kind == INTEGER || v.kind == DECIMAL
}

// Bits returns the raw payload.
func (v Value) Bits() uint64 { return v.bits }

// Bool returns the boolean payload, or false if v is not a Bool.
func (v Value) Bool() bool {
	return v.kind == BOOL && v.bits != 0
}

// Integer returns the integer payload, or 0 if v is not an Integer.
func (v Value) Integer() int64 {
	if v.kind != INTEGER {
		return 0
	}
	return int64(v.bits)
}

// Decimal returns the decimal payload, or 0 if v is not a Decimal.
func (v Value) Decimal() float64 {
	if v.kind != DECIMAL {
		return 0
	}
	return math.Float64frombits(v.bits)
}

// Number returns the numeric payload as a float64, or 0 if v is not a number.
func (v Value) Number() float64 {
	switch v.kind {
	case INTEGER:
		return float64(int64(v.bits))
	case DECIMAL:
		return math.Float64frombits(v.bits)
	default:
		return 0
	}
}

// Truthy reports whether the value counts as true in a boolean context.
// Null is false, numbers are true when non-zero.
func (v Value) Truthy() bool {
	switch v.kind {
	case BOOL:
		return v.bits != 0
	case INTEGER:
		return int64(v.bits) != 0
	case DECIMAL:
		return math.Float64frombits(v.bits) != 0
	default:
		return false
	}
}

// ToBool converts the value to a Bool using truthiness.
func (v Value) ToBool() Value {
	return NewBool(v.Truthy())
}

// ToInteger converts the value to an Integer. Decimals truncate toward
// zero and saturate at the int64 limits, NaN becomes 0, bools become 0 or
// 1 and null becomes 0.
func (v Value) ToInteger() Value {
	switch v.kind {
	case INTEGER:
		return v
	case DECIMAL:
		return NewInteger(truncate(math.Float64frombits(v.bits)))
	case BOOL:
		return NewInteger(int64(v.bits))
	default:
		return NewInteger(0)
	}
}

func truncate(f float64) int64 {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt64:
		return math.MaxInt64
	case f <= math.MinInt64:
		return math.MinInt64
	}
	return int64(f)
}

// ToDecimal converts the value to a Decimal. Bools become 0 or 1 and null
// becomes 0.
func (v Value) ToDecimal() Value {
	switch v.kind {
	case DECIMAL:
		return v
	case INTEGER:
		return NewDecimal(float64(int64(v.bits)))
	case BOOL:
		return NewDecimal(float64(v.bits))
	default:
		return NewDecimal(0)
	}
}

// Equals compares two values. Values of the same kind compare their raw
// payloads; an Integer and a Decimal compare numerically; any other pairing
// is unequal. Because payloads are compared bit for bit, a NaN decimal
// equals itself.
func (v Value) Equals(other Value) bool {
	if v.kind == other.kind {
		return v.bits == other.bits
	}
	if v.IsNumber() && other.IsNumber() {
		return v.Number() == other.Number()
	}
	return false
}

// Interface returns the value as a Go bool, int64, float64 or nil.
func (v Value) Interface() any {
	switch v.kind {
	case BOOL:
		return v.Bool()
	case INTEGER:
		return v.Integer()
	case DECIMAL:
		return v.Decimal()
	default:
		return nil
	}
}

func (v Value) String() string {
	switch v.kind {
	case BOOL:
		if v.bits != 0 {
			return "TRUE"
		}
		return "FALSE"
	case INTEGER:
		return strconv.FormatInt(int64(v.bits), 10)
	case DECIMAL:
		return formatDecimal(math.Float64frombits(v.bits))
	default:
		return "NULL"
	}
}

// MarshalJSON encodes the value as a JSON scalar. Non-finite decimals are
// encoded as strings since JSON has no representation for them.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.kind == DECIMAL {
		f := v.Decimal()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return json.Marshal(formatDecimal(f))
		}
	}
	return json.Marshal(v.Interface())
}

func formatDecimal(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
