package object

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAccessorsDefaultOnWrongKind(t *testing.T) {
	i := NewInteger(42)
	require.Equal(t, int64(42), i.Integer())
	require.Equal(t, 0.0, i.Decimal())
	require.False(t, i.Bool())
	require.Equal(t, 42.0, i.Number())

	d := NewDecimal(2.5)
	require.Equal(t, int64(0), d.Integer())
	require.Equal(t, 2.5, d.Decimal())
	require.Equal(t, 2.5, d.Number())

	require.True(t, True.Bool())
	require.Equal(t, int64(0), True.Integer())
	require.Equal(t, 0.0, True.Number())

	require.Equal(t, int64(0), Null.Integer())
	require.False(t, Null.Bool())
	require.True(t, Null.IsNull())
}

func TestKinds(t *testing.T) {
	require.Equal(t, NULL, Null.Kind())
	require.Equal(t, BOOL, False.Kind())
	require.Equal(t, INTEGER, NewInteger(0).Kind())
	require.Equal(t, DECIMAL, NaN.Kind())
	require.True(t, NewInteger(1).IsNumber())
	require.True(t, NewDecimal(1).IsNumber())
	require.False(t, True.IsNumber())
	require.Equal(t, "decimal", DECIMAL.String())
}

func TestEquals(t *testing.T) {
	tests := []struct {
		a, b Value
		want bool
	}{
		{NewInteger(1), NewInteger(1), true},
		{NewInteger(1), NewInteger(2), false},
		{NewInteger(2), NewDecimal(2.0), true},
		{NewDecimal(2.5), NewInteger(2), false},
		{True, True, true},
		{True, False, false},
		{True, NewInteger(1), false},
		{False, NewInteger(0), false},
		{Null, Null, true},
		{Null, NewInteger(0), false},
		{Null, False, false},
		{NaN, NaN, true},
		{NaN, NewInteger(0), false},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, tt.a.Equals(tt.b), "%v = %v", tt.a, tt.b)
		require.Equal(t, tt.want, tt.b.Equals(tt.a), "%v = %v", tt.b, tt.a)
	}
}

func TestTruthy(t *testing.T) {
	require.True(t, True.Truthy())
	require.False(t, False.Truthy())
	require.True(t, NewInteger(-1).Truthy())
	require.False(t, NewInteger(0).Truthy())
	require.True(t, NewDecimal(0.1).Truthy())
	require.False(t, NewDecimal(0).Truthy())
	require.False(t, NewDecimal(math.Copysign(0, -1)).Truthy())
	require.False(t, Null.Truthy())
}

func TestConversions(t *testing.T) {
	require.Equal(t, NewInteger(2), NewDecimal(2.9).ToInteger())
	require.Equal(t, NewInteger(-2), NewDecimal(-2.9).ToInteger())
	require.Equal(t, NewInteger(1), True.ToInteger())
	require.Equal(t, NewInteger(0), Null.ToInteger())
	require.Equal(t, NewInteger(0), NewDecimal(math.NaN()).ToInteger())
	require.Equal(t, NewInteger(math.MaxInt64), NewDecimal(math.Inf(1)).ToInteger())
	require.Equal(t, NewInteger(math.MaxInt64), NewDecimal(1e300).ToInteger())
	require.Equal(t, NewInteger(math.MinInt64), NewDecimal(math.Inf(-1)).ToInteger())
	require.Equal(t, NewDecimal(3), NewInteger(3).ToDecimal())
	require.Equal(t, NewDecimal(0), False.ToDecimal())
	require.Equal(t, True, NewInteger(5).ToBool())
	require.Equal(t, False, Null.ToBool())
}

func TestString(t *testing.T) {
	require.Equal(t, "TRUE", True.String())
	require.Equal(t, "FALSE", False.String())
	require.Equal(t, "NULL", Null.String())
	require.Equal(t, "-17", NewInteger(-17).String())
	require.Equal(t, "2.5", NewDecimal(2.5).String())
	require.Equal(t, "NaN", NaN.String())
	require.Equal(t, "Infinity", NewDecimal(math.Inf(1)).String())
}

func TestMarshalJSON(t *testing.T) {
	data, err := json.Marshal([]Value{True, NewInteger(3), NewDecimal(1.5), Null, NaN})
	require.NoError(t, err)
	require.Equal(t, `[true,3,1.5,null,"NaN"]`, string(data))
}
