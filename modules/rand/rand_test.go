package rand

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/risor-io/expr/errz"
	"github.com/risor-io/expr/object"
)

func call(fn object.Function, args ...object.Value) (object.Value, error) {
	return fn(&object.Call{Args: args})
}

func TestRanges(t *testing.T) {
	p := NewWithSeed(7)
	for range 200 {
		v, err := call(p.Random)
		require.NoError(t, err)
		require.True(t, v.Decimal() >= 0 && v.Decimal() < 1)

		v, err = call(p.Int, object.NewInteger(5))
		require.NoError(t, err)
		require.True(t, v.Integer() >= 0 && v.Integer() < 5)

		v, err = call(p.Int, object.NewInteger(-3), object.NewInteger(3))
		require.NoError(t, err)
		require.True(t, v.Integer() >= -3 && v.Integer() < 3)

		v, err = call(p.Randint, object.NewInteger(1), object.NewInteger(6))
		require.NoError(t, err)
		require.True(t, v.Integer() >= 1 && v.Integer() <= 6)

		v, err = call(p.Uniform, object.NewInteger(10), object.NewDecimal(20))
		require.NoError(t, err)
		require.True(t, v.Decimal() >= 10 && v.Decimal() <= 20)
	}
}

func TestSeedIsReproducible(t *testing.T) {
	a, b := NewWithSeed(42), NewWithSeed(42)
	for range 10 {
		x, err := call(a.Randint, object.NewInteger(0), object.NewInteger(1000))
		require.NoError(t, err)
		y, err := call(b.Randint, object.NewInteger(0), object.NewInteger(1000))
		require.NoError(t, err)
		require.Equal(t, x, y)
	}
}

func TestGlobalSource(t *testing.T) {
	v, err := call(New().Randint, object.NewInteger(3), object.NewInteger(3))
	require.NoError(t, err)
	require.Equal(t, object.NewInteger(3), v)
}

func TestErrors(t *testing.T) {
	p := New()
	tests := []struct {
		fn   object.Function
		args []object.Value
		kind errz.ErrorKind
	}{
		{p.Random, []object.Value{object.NewInteger(1)}, errz.ErrArgs},
		{p.Int, nil, errz.ErrArgs},
		{p.Int, []object.Value{object.NewInteger(0)}, errz.ErrArgs},
		{p.Int, []object.Value{object.NewInteger(5), object.NewInteger(5)}, errz.ErrArgs},
		{p.Int, []object.Value{object.NewDecimal(5)}, errz.ErrType},
		{p.Randint, []object.Value{object.NewInteger(2), object.NewInteger(1)}, errz.ErrArgs},
		{p.Uniform, []object.Value{object.True, object.NewInteger(1)}, errz.ErrType},
	}
	for _, tt := range tests {
		_, err := call(tt.fn, tt.args...)
		require.Error(t, err)
		kind, ok := errz.KindOf(err)
		require.True(t, ok)
		require.Equal(t, tt.kind, kind, err.Error())
	}
}

func TestEntries(t *testing.T) {
	p := New()
	require.Equal(t, "rand", p.Name())
	require.Len(t, p.Functions(), 4)
}
