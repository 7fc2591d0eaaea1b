package strings

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/risor-io/expr/errz"
	"github.com/risor-io/expr/object"
)

var table = []string{"seafood", "foo", "héllo", "  "}

func run(t *testing.T, fn object.Function, name string, args ...int64) (object.Value, error) {
	t.Helper()
	values := make([]object.Value, len(args))
	for i, a := range args {
		values[i] = object.NewInteger(a)
	}
	return fn(&object.Call{Name: name, Args: values, Strings: table})
}

func TestStringFunctions(t *testing.T) {
	tests := []struct {
		name     string
		fn       object.Function
		args     []int64
		expected object.Value
	}{
		{"CONTAINS", Contains, []int64{0, 1}, object.True},
		{"CONTAINS", Contains, []int64{1, 0}, object.False},
		{"HAS_PREFIX", HasPrefix, []int64{0, 1}, object.False},
		{"HAS_SUFFIX", HasSuffix, []int64{0, 1}, object.False},
		{"EQUAL_FOLD", EqualFold, []int64{1, 1}, object.True},
		{"COUNT", Count, []int64{0, 1}, object.NewInteger(1)},
		{"INDEX", Index, []int64{0, 1}, object.NewInteger(3)},
		{"LAST_INDEX", LastIndex, []int64{1, 0}, object.NewInteger(-1)},
		{"COMPARE", CompareStr, []int64{1, 0}, object.NewInteger(-1)},
		{"LEN", Len, []int64{2}, object.NewInteger(5)},
		{"IS_EMPTY", IsEmpty, []int64{3}, object.True},
		{"IS_EMPTY", IsEmpty, []int64{1}, object.False},
	}
	for _, tt := range tests {
		result, err := run(t, tt.fn, tt.name, tt.args...)
		require.NoError(t, err, tt.name)
		require.Equal(t, tt.expected, result, tt.name)
	}
}

func TestStringArgumentErrors(t *testing.T) {
	_, err := run(t, Contains, "CONTAINS", 0)
	kind, _ := errz.KindOf(err)
	require.Equal(t, errz.ErrArgs, kind)

	_, err = run(t, Len, "LEN", 9)
	require.EqualError(t, err, "args error: LEN() argument 1 is not a string literal")

	_, err = Len(&object.Call{Name: "LEN", Args: []object.Value{object.NewDecimal(1)}, Strings: table})
	kind, _ = errz.KindOf(err)
	require.Equal(t, errz.ErrType, kind)
}

func TestPluginEntries(t *testing.T) {
	p := New()
	require.Equal(t, "strings", p.Name())
	entries := p.Functions()
	require.Len(t, entries, 10)
	for _, e := range entries {
		require.NotNil(t, e.Fn, e.Name)
		require.NotEmpty(t, e.Doc, e.Name)
	}
}
