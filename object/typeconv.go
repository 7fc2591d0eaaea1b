package object

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FromGo converts a Go value to a Value. Supported inputs are nil, bool,
// the integer and float kinds, and Value itself. Unsigned integers that
// overflow int64 are an error.
func FromGo(obj any) (Value, error) {
	switch v := obj.(type) {
	case nil:
		return Null, nil
	case Value:
		return v, nil
	case bool:
		return NewBool(v), nil
	case int:
		return NewInteger(int64(v)), nil
	case int8:
		return NewInteger(int64(v)), nil
	case int16:
		return NewInteger(int64(v)), nil
	case int32:
		return NewInteger(int64(v)), nil
	case int64:
		return NewInteger(v), nil
	case uint8:
		return NewInteger(int64(v)), nil
	case uint16:
		return NewInteger(int64(v)), nil
	case uint32:
		return NewInteger(int64(v)), nil
	case uint:
		if uint64(v) > math.MaxInt64 {
			return Null, fmt.Errorf("type error: %d overflows an integer", v)
		}
		return NewInteger(int64(v)), nil
	case uint64:
		if v > math.MaxInt64 {
			return Null, fmt.Errorf("type error: %d overflows an integer", v)
		}
		return NewInteger(int64(v)), nil
	case float32:
		return NewDecimal(float64(v)), nil
	case float64:
		return NewDecimal(v), nil
	default:
		return Null, fmt.Errorf("type error: unsupported go type %T", obj)
	}
}

// Parse converts text to a Value: TRUE/FALSE/NULL/NaN case-insensitively,
// then integers, then decimals. Hosts use it for parameters supplied as
// strings, such as command line flags and environment variables.
func Parse(s string) (Value, error) {
	s = strings.TrimSpace(s)
	switch strings.ToUpper(s) {
	case "TRUE":
		return True, nil
	case "FALSE":
		return False, nil
	case "NULL", "":
		return Null, nil
	case "NAN":
		return NaN, nil
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return NewInteger(i), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Null, fmt.Errorf("value error: %q is not a bool, integer or decimal", s)
	}
	return NewDecimal(f), nil
}
