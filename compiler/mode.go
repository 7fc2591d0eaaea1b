package compiler

import (
	"fmt"
	"strings"
)

// NumericMode controls how numeric literals are typed.
type NumericMode uint8

const (
	// NumericAll compiles integer literals as integers and decimal
	// literals as decimals.
	NumericAll NumericMode = iota

	// NumericInteger compiles every numeric literal as an integer.
	// Decimal literals are truncated toward zero.
	NumericInteger

	// NumericDecimal compiles every numeric literal as a decimal.
	NumericDecimal
)

func (m NumericMode) String() string {
	switch m {
	case NumericAll:
		return "all"
	case NumericInteger:
		return "integer"
	case NumericDecimal:
		return "decimal"
	default:
		return fmt.Sprintf("NumericMode(%d)", m)
	}
}

// ParseNumericMode parses "all", "integer" or "decimal", ignoring case.
func ParseNumericMode(s string) (NumericMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return NumericAll, nil
	case "integer", "int":
		return NumericInteger, nil
	case "decimal", "float":
		return NumericDecimal, nil
	default:
		return NumericAll, fmt.Errorf("invalid numeric mode %q (expected all, integer or decimal)", s)
	}
}
