package object

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/risor-io/expr/errz"
)

func TestArithmeticPromotion(t *testing.T) {
	tests := []struct {
		op   ArithmeticOp
		a, b Value
		want Value
	}{
		{Add, NewInteger(2), NewInteger(3), NewInteger(5)},
		{Subtract, NewInteger(2), NewInteger(3), NewInteger(-1)},
		{Multiply, NewInteger(4), NewInteger(3), NewInteger(12)},
		{Divide, NewInteger(5), NewInteger(2), NewInteger(2)},
		{Divide, NewInteger(-5), NewInteger(2), NewInteger(-2)},
		{Modulo, NewInteger(7), NewInteger(3), NewInteger(1)},
		{Add, NewInteger(1), NewDecimal(0.5), NewDecimal(1.5)},
		{Divide, NewDecimal(5), NewInteger(2), NewDecimal(2.5)},
		{Modulo, NewDecimal(7.5), NewInteger(2), NewDecimal(1.5)},
		{Multiply, NewDecimal(1.5), NewDecimal(2), NewDecimal(3)},
	}
	for _, tt := range tests {
		got, err := Arithmetic(tt.op, tt.a, tt.b)
		require.NoError(t, err)
		require.Equal(t, tt.want, got, "%v %s %v", tt.a, tt.op, tt.b)
	}
}

func TestArithmeticTypeErrors(t *testing.T) {
	for _, pair := range [][2]Value{
		{True, NewInteger(1)},
		{NewInteger(1), False},
		{Null, NewDecimal(1)},
		{Null, Null},
	} {
		_, err := Arithmetic(Add, pair[0], pair[1])
		require.Error(t, err)
		kind, ok := errz.KindOf(err)
		require.True(t, ok)
		require.Equal(t, errz.ErrType, kind)
	}
	_, err := Arithmetic(Add, True, NewInteger(1))
	require.EqualError(t, err, "type error: unsupported operand types for +: bool and integer")
}

func TestIntegerDivisionByZero(t *testing.T) {
	_, err := Arithmetic(Divide, NewInteger(1), NewInteger(0))
	require.ErrorIs(t, err, errz.ErrDivisionByZero)
	_, err = Arithmetic(Modulo, NewInteger(1), NewInteger(0))
	require.ErrorIs(t, err, errz.ErrDivisionByZero)
	kind, _ := errz.KindOf(err)
	require.Equal(t, errz.ErrArithmetic, kind)
}

func TestDecimalDivisionByZero(t *testing.T) {
	got, err := Arithmetic(Divide, NewDecimal(1), NewInteger(0))
	require.NoError(t, err)
	require.True(t, math.IsInf(got.Decimal(), 1))

	got, err = Arithmetic(Divide, NewInteger(0), NewDecimal(0))
	require.NoError(t, err)
	require.True(t, math.IsNaN(got.Decimal()))
}

func TestCompare(t *testing.T) {
	tests := []struct {
		op   CompareOp
		a, b Value
		want bool
	}{
		{LessThan, NewInteger(1), NewInteger(2), true},
		{LessThanOrEqual, NewInteger(2), NewInteger(2), true},
		{GreaterThan, NewInteger(2), NewDecimal(1.5), true},
		{GreaterThanOrEqual, NewDecimal(1.5), NewInteger(2), false},
		{LessThan, NaN, NewInteger(1), false},
		{GreaterThanOrEqual, NaN, NewInteger(1), false},
	}
	for _, tt := range tests {
		got, err := Compare(tt.op, tt.a, tt.b)
		require.NoError(t, err)
		require.Equal(t, NewBool(tt.want), got, "%v %s %v", tt.a, tt.op, tt.b)
	}
	_, err := Compare(LessThan, True, NewInteger(1))
	require.Error(t, err)
	_, err = Compare(GreaterThan, NewInteger(1), Null)
	require.Error(t, err)
}

func TestUnary(t *testing.T) {
	v, err := Negate(NewInteger(3))
	require.NoError(t, err)
	require.Equal(t, NewInteger(-3), v)
	v, err = Negate(NewDecimal(1.5))
	require.NoError(t, err)
	require.Equal(t, NewDecimal(-1.5), v)
	_, err = Negate(True)
	require.Error(t, err)

	require.Equal(t, False, Not(NewInteger(3)))
	require.Equal(t, True, Not(Null))
	require.Equal(t, True, Xor(True, NewInteger(0)))
	require.Equal(t, False, Xor(NewInteger(2), NewDecimal(1)))
}
