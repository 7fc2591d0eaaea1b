package expr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"sync"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/risor-io/expr/builtins"
	"github.com/risor-io/expr/compiler"
	"github.com/risor-io/expr/errz"
	"github.com/risor-io/expr/modules/rand"
	strplugin "github.com/risor-io/expr/modules/strings"
	"github.com/risor-io/expr/modules/trig"
	"github.com/risor-io/expr/object"
)

var (
	i = object.NewInteger
	d = object.NewDecimal
)

func newEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	e, err := New(opts...)
	require.NoError(t, err)
	return e
}

func eval(t *testing.T, e *Engine, source string, c *Context) object.Value {
	t.Helper()
	result, err := e.Eval(context.Background(), source, c)
	require.NoError(t, err, source)
	return result
}

func TestIntegerLiterals(t *testing.T) {
	e := newEngine(t)
	for _, n := range []int64{0, 1, 127, 128, -129, 32767, 32768, 70000, 5000000000, math.MaxInt64, math.MinInt64} {
		source := strconv.FormatInt(n, 10)
		require.Equal(t, i(n), eval(t, e, source, nil), source)
	}
	require.Equal(t, i(math.MinInt64+5), eval(t, e, "-9223372036854775808 + 5", nil))
	require.Equal(t, d(math.MinInt64), eval(t, newEngine(t, WithNumericMode(compiler.NumericDecimal)), "-9223372036854775808", nil))

	_, err := e.Compile("9223372036854775808")
	require.Error(t, err)
	_, err = e.Eval(context.Background(), "ABS(-9223372036854775808)", nil)
	kind, ok := errz.KindOf(err)
	require.True(t, ok)
	require.Equal(t, errz.ErrArithmetic, kind)
}

func TestArithmeticAndPrecedence(t *testing.T) {
	e := newEngine(t)
	tests := []struct {
		input    string
		expected object.Value
	}{
		{"1 + 2 * 3", i(7)},
		{"(1 + 2) * 3", i(9)},
		{"5 / 2", i(2)},
		{"5.0 / 2", d(2.5)},
		{"10 - 4 - 3", i(3)},
		{"-2 * 3", i(-6)},
		{"7 % 4", i(3)},
		{"!0", object.True},
		{"1 < 2 = TRUE", object.True},
		{"2 >= 2.0", object.True},
		{"1 != 1.0", object.False},
		{"MAX(1, 5) * 2", i(10)},
	}
	for _, tt := range tests {
		require.Equal(t, tt.expected, eval(t, e, tt.input, nil), tt.input)
	}
}

func TestShortCircuitPropagatesOperand(t *testing.T) {
	e := newEngine(t)
	require.Equal(t, i(5), eval(t, e, "TRUE & 5", nil))
	require.Equal(t, object.False, eval(t, e, "FALSE & 5", nil))
	require.Equal(t, i(7), eval(t, e, "FALSE | 7", nil))
	require.Equal(t, object.True, eval(t, e, "TRUE | 7", nil))

	// The skipped side is never evaluated, so an undefined parameter there
	// is not an error.
	require.Equal(t, object.False, eval(t, e, "FALSE & $missing", nil))
}

func TestContextShadowsGlobals(t *testing.T) {
	e := newEngine(t)
	e.Params().Set("FOO", i(0))
	require.Equal(t, i(12), eval(t, e, "$FOO", &Context{Params: object.ParamMap{"FOO": i(12)}}))
	require.Equal(t, i(0), eval(t, e, "$FOO", nil))

	_, err := e.Eval(context.Background(), "$BAR", NewContext())
	require.Error(t, err)
	require.True(t, errors.Is(err, errz.ErrUndefinedParameter))
	kind, ok := errz.KindOf(err)
	require.True(t, ok)
	require.Equal(t, errz.ErrName, kind)
}

func TestCompileErrors(t *testing.T) {
	e := newEngine(t)

	_, err := e.Compile("UNKNOWN_FN(1)")
	var compileErr *errz.CompileError
	require.True(t, errors.As(err, &compileErr))
	require.Equal(t, 1, compileErr.Column)

	_, err = e.Compile("TRUE 1234")
	require.True(t, errors.As(err, &compileErr))
	require.Equal(t, "Orphaned expression; expected an operator or end of input", compileErr.Message)

	_, err = e.Eval(context.Background(), "ABSS(1)", nil)
	require.True(t, errors.As(err, &compileErr))
	require.Contains(t, compileErr.Hint(), "ABS")
}

func TestDurableCode(t *testing.T) {
	e := newEngine(t)
	a, err := e.Compile("$x * 2 + IF($y, 1, 0)")
	require.NoError(t, err)
	b, err := e.Compile("$x * 2 + IF($y, 1, 0)")
	require.NoError(t, err)
	require.True(t, a.Equal(b))
	require.False(t, a.IsTransient())

	snapshot := append([]byte(nil), a.Instructions()...)
	for n := int64(0); n < 5; n++ {
		c := &Context{Params: object.ParamMap{"x": i(n), "y": object.NewBool(n%2 == 0)}}
		result, err := e.Evaluate(context.Background(), a, c)
		require.NoError(t, err)
		expected := n * 2
		if n%2 == 0 {
			expected++
		}
		require.Equal(t, i(expected), result)
	}
	require.Equal(t, snapshot, a.Instructions())
}

func TestConcurrentEvaluation(t *testing.T) {
	e := newEngine(t)
	code := e.MustCompile("$n * $n + SUM($n, 1)")
	var wg sync.WaitGroup
	failures := make(chan string, 16)
	for g := int64(0); g < 16; g++ {
		wg.Add(1)
		go func(n int64) {
			defer wg.Done()
			c := &Context{Params: object.ParamMap{"n": i(n)}}
			for k := 0; k < 50; k++ {
				result, err := e.Evaluate(context.Background(), code, c)
				if err != nil || result != i(n*n+n+1) {
					failures <- fmt.Sprintf("n=%d: got %v, %v", n, result, err)
					return
				}
				if result, err = e.Eval(context.Background(), "$n + 1", c); err != nil || result != i(n+1) {
					failures <- fmt.Sprintf("n=%d: got %v, %v", n, result, err)
					return
				}
			}
		}(g)
	}
	wg.Wait()
	close(failures)
	for failure := range failures {
		t.Error(failure)
	}
}

func TestNumericModes(t *testing.T) {
	integer := newEngine(t, WithNumericMode(compiler.NumericInteger))
	require.Equal(t, i(3), eval(t, integer, "7 / 2.0", nil))
	require.Equal(t, i(4), eval(t, integer, "SQRT(16)", nil))
	require.Equal(t, i(0), eval(t, integer, "NaN", nil))
	require.Equal(t, i(0), eval(t, integer, "INTEGER(NaN)", nil))

	decimal := newEngine(t, WithNumericMode(compiler.NumericDecimal))
	require.Equal(t, d(2.5), eval(t, decimal, "5 / 2", nil))
	require.Equal(t, d(-1), eval(t, decimal, "SIGN(-3)", nil))
	require.Equal(t, object.True, eval(t, decimal, "TRUE", nil))
}

func TestSetFunction(t *testing.T) {
	e := newEngine(t)
	e.SetFunction("answer", func(call *object.Call) (object.Value, error) {
		return i(1), nil
	})
	require.True(t, e.HasFunction("ANSWER"))
	old := e.MustCompile("Answer()")
	oldID, ok := e.FunctionID("answer")
	require.True(t, ok)

	e.SetFunction("ANSWER", func(call *object.Call) (object.Value, error) {
		return i(2), nil
	})
	newID, _ := e.FunctionID("answer")
	require.NotEqual(t, oldID, newID)
	name, ok := e.FunctionName(oldID)
	require.True(t, ok)
	require.Equal(t, "ANSWER", name)

	result, err := e.Evaluate(context.Background(), old, nil)
	require.NoError(t, err)
	require.Equal(t, i(1), result)
	require.Equal(t, i(2), eval(t, e, "answer()", nil))

	_, ok = e.FunctionByID(0)
	require.False(t, ok)
	_, ok = e.FunctionByID(newID + 1)
	require.False(t, ok)
}

func TestFunctionsSeeStringsAndUserData(t *testing.T) {
	e := newEngine(t)
	e.SetFunction("LEN", func(call *object.Call) (object.Value, error) {
		if err := call.Args.Require("LEN", 1); err != nil {
			return object.Null, err
		}
		s, err := call.String(0)
		if err != nil {
			return object.Null, err
		}
		return i(int64(len(s))), nil
	})
	e.SetFunction("SCALE", func(call *object.Call) (object.Value, error) {
		factor := call.UserData.(int64)
		return object.Arithmetic(object.Multiply, call.Args[0], i(factor))
	})
	require.Equal(t, i(5), eval(t, e, "LEN('hello')", nil))
	require.Equal(t, i(30), eval(t, e, "SCALE(3)", &Context{UserData: int64(10)}))

	_, err := e.Eval(context.Background(), "LEN()", nil)
	kind, ok := errz.KindOf(err)
	require.True(t, ok)
	require.Equal(t, errz.ErrArgs, kind)
}

func TestDisabledFunctions(t *testing.T) {
	e := newEngine(t, WithDisabledFunctions("abs", "Sqrt"))
	require.False(t, e.HasFunction("ABS"))
	require.False(t, e.HasFunction("SQRT"))
	require.True(t, e.HasFunction("CEIL"))

	_, err := e.Compile("ABS(-1)")
	require.Error(t, err)

	e.SetFunction("ABS", builtins.Abs)
	require.Equal(t, i(1), eval(t, e, "ABS(-1)", nil))
}

type brokenPlugin struct{}

func (brokenPlugin) Name() string { return "broken" }

func (brokenPlugin) Functions() []builtins.Entry {
	return []builtins.Entry{
		{Name: "", Fn: builtins.Abs},
		{Name: "NOPE"},
		{Name: "FINE", Fn: builtins.Abs},
	}
}

func TestPlugins(t *testing.T) {
	e := newEngine(t, WithPlugins(trig.New()))
	result := eval(t, e, "DEGREES(PI())", nil)
	require.InDelta(t, 180.0, result.Decimal(), 1e-9)

	e = newEngine(t, WithPlugins(strplugin.New(), rand.NewWithSeed(1)))
	require.Equal(t, object.True, eval(t, e, "CONTAINS('seafood', 'foo') & LEN('abc') = 3", nil))
	require.Equal(t, i(3), eval(t, e, "INDEX('seafood', 'food')", nil))
	result = eval(t, e, "RANDINT(1, 6)", nil)
	require.True(t, result.Integer() >= 1 && result.Integer() <= 6)
	_, err := e.Eval(context.Background(), "LEN(12)", nil)
	require.ErrorContains(t, err, "LEN() argument 1 is not a string literal")

	_, err = New(WithPlugins(brokenPlugin{}), WithMaxStackSize(-1))
	require.Error(t, err)
	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	require.Len(t, merr.Errors, 3)
}

func TestGlobalParamsOption(t *testing.T) {
	e := newEngine(t, WithGlobalParams(map[string]any{
		"TAU":  6.5,
		"N":    "12",
		"FLAG": true,
	}))
	require.Equal(t, 3, e.Params().Len())
	require.Equal(t, d(13), eval(t, e, "$TAU * 2", nil))
	require.Equal(t, i(13), eval(t, e, "$N + 1", nil))
	require.Equal(t, object.True, eval(t, e, "$FLAG", nil))

	_, err := New(WithGlobalParams(map[string]any{"bad": []int{1}}))
	require.Error(t, err)
}

func TestParams(t *testing.T) {
	p := NewParams()
	p.Set("b", i(1))
	require.NoError(t, p.SetAny("a", 2.5))
	require.Error(t, p.SetAny("c", "not a number"))
	require.Equal(t, []string{"a", "b"}, p.Names())
	require.True(t, p.Contains("a"))
	require.False(t, p.Contains("A"))
	require.True(t, p.Remove("a"))
	require.False(t, p.Remove("a"))
	require.Equal(t, 1, p.Len())
	p.Clear()
	require.Equal(t, 0, p.Len())
}

func TestStackLimits(t *testing.T) {
	e := newEngine(t, WithInitialStackSize(2), WithMaxStackSize(4))
	require.Equal(t, i(10), eval(t, e, "SUM(1, 2, 3, 4)", nil))
	_, err := e.Eval(context.Background(), "SUM(1, 2, 3, 4, 5)", nil)
	require.True(t, errors.Is(err, errz.ErrStackExhausted))

	e = newEngine(t, WithMaxStackSize(4))
	require.Equal(t, 4, e.Config().InitialStackSize)
	require.Equal(t, i(10), eval(t, e, "SUM(1, 2, 3, 4)", nil))
	_, err = e.Eval(context.Background(), "SUM(1, 2, 3, 4, 5)", nil)
	kind, ok := errz.KindOf(err)
	require.True(t, ok)
	require.Equal(t, errz.ErrStackOverflow, kind)

	cfg, err := ParseConfig("max_stack_size = 4")
	require.NoError(t, err)
	e = newEngine(t, WithConfig(cfg))
	_, err = e.Eval(context.Background(), "MAX(1, 2, 3, 4, 5)", nil)
	require.True(t, errors.Is(err, errz.ErrStackExhausted))

	_, err = New(WithMaxStackSize(-1))
	require.Error(t, err)
}

func TestMaxCodeSize(t *testing.T) {
	e := newEngine(t, WithMaxCodeSize(8))
	require.Equal(t, i(3), eval(t, e, "1 + 2", nil))
	_, err := e.Compile("1 + 2 + 3 + 4")
	require.Error(t, err)
}

func TestCache(t *testing.T) {
	e := newEngine(t, WithCache(2))
	a := e.MustCompile("1 + 1")
	b := e.MustCompile("1 + 1")
	require.Same(t, a, b)
	stats, ok := e.CacheStats()
	require.True(t, ok)
	require.Equal(t, uint64(1), stats.Hits)
	require.Equal(t, 1, stats.Len)

	e.SetFunction("ONE", func(call *object.Call) (object.Value, error) { return i(1), nil })
	stats, _ = e.CacheStats()
	require.Equal(t, 0, stats.Len)
	require.Equal(t, i(1), eval(t, e, "ONE()", nil))

	_, ok = newEngine(t).CacheStats()
	require.False(t, ok)
}

func TestMustVariants(t *testing.T) {
	e := newEngine(t)
	require.Panics(t, func() { e.MustCompile("1 +") })
	require.Panics(t, func() { e.MustEvaluate(context.Background(), "1 / 0", nil) })
	require.Equal(t, i(2), e.MustEvaluate(context.Background(), "1 + 1", nil))
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	e := newEngine(t, WithLogger(logger))
	e.MustCompile("1 + 2")
	_, _ = e.Eval(context.Background(), "$missing", nil)
	require.Contains(t, buf.String(), `"message":"engine ready"`)
	require.Contains(t, buf.String(), `"message":"compiled"`)
	require.Contains(t, buf.String(), `"message":"evaluation failed"`)
}
