// Package strings is a plugin of functions over string literals. String
// literals evaluate to handles into the expression's string table, so
// these functions are the way an expression inspects text:
//
//	CONTAINS('release-2024', '2024') & LEN('abc') = 3
package strings

import (
	"strings"
	"unicode/utf8"

	"github.com/risor-io/expr/builtins"
	"github.com/risor-io/expr/object"
)

// Plugin provides the string functions.
type Plugin struct{}

func New() Plugin {
	return Plugin{}
}

// Name returns "strings".
func (Plugin) Name() string {
	return "strings"
}

func (Plugin) Functions() []builtins.Entry {
	entries := make([]builtins.Entry, len(stringEntries))
	copy(entries, stringEntries)
	return entries
}

func stringArgs(name string, call *object.Call, n int) ([]string, error) {
	if err := call.Args.Require(name, n); err != nil {
		return nil, err
	}
	values := make([]string, n)
	for i := range values {
		s, err := call.String(i)
		if err != nil {
			return nil, err
		}
		values[i] = s
	}
	return values, nil
}

func predicate(name string, fn func(s, t string) bool) object.Function {
	return func(call *object.Call) (object.Value, error) {
		args, err := stringArgs(name, call, 2)
		if err != nil {
			return object.Null, err
		}
		return object.NewBool(fn(args[0], args[1])), nil
	}
}

func measure(name string, fn func(s, t string) int) object.Function {
	return func(call *object.Call) (object.Value, error) {
		args, err := stringArgs(name, call, 2)
		if err != nil {
			return object.Null, err
		}
		return object.NewInteger(int64(fn(args[0], args[1]))), nil
	}
}

// Len returns the number of characters in s.
func Len(call *object.Call) (object.Value, error) {
	args, err := stringArgs("LEN", call, 1)
	if err != nil {
		return object.Null, err
	}
	return object.NewInteger(int64(utf8.RuneCountInString(args[0]))), nil
}

// IsEmpty reports whether s has no characters after trimming spaces.
func IsEmpty(call *object.Call) (object.Value, error) {
	args, err := stringArgs("IS_EMPTY", call, 1)
	if err != nil {
		return object.Null, err
	}
	return object.NewBool(strings.TrimSpace(args[0]) == ""), nil
}

var (
	Contains   = predicate("CONTAINS", strings.Contains)
	HasPrefix  = predicate("HAS_PREFIX", strings.HasPrefix)
	HasSuffix  = predicate("HAS_SUFFIX", strings.HasSuffix)
	EqualFold  = predicate("EQUAL_FOLD", strings.EqualFold)
	Count      = measure("COUNT", strings.Count)
	Index      = measure("INDEX", strings.Index)
	LastIndex  = measure("LAST_INDEX", strings.LastIndex)
	CompareStr = measure("COMPARE", strings.Compare)
)
