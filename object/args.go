package object

import "github.com/risor-io/expr/errz"

// Args is a read-only view over the arguments of a function call.
type Args []Value

// Len returns the number of arguments.
func (a Args) Len() int {
	return len(a)
}

// At returns argument i, or Null if i is out of range.
func (a Args) At(i int) Value {
	if i < 0 || i >= len(a) {
		return Null
	}
	return a[i]
}

// Require returns an error unless exactly count arguments were given.
func (a Args) Require(funcName string, count int) error {
	n := len(a)
	if n == count {
		return nil
	}
	if count == 1 {
		return errz.ArgsErrorf("%s() takes exactly 1 argument (%d given)", funcName, n)
	}
	return errz.ArgsErrorf("%s() takes exactly %d arguments (%d given)", funcName, count, n)
}

// RequireMin returns an error unless at least min arguments were given.
func (a Args) RequireMin(funcName string, min int) error {
	if n := len(a); n < min {
		return errz.ArgsErrorf("%s() takes at least %d %s (%d given)",
			funcName, min, pluralize("argument", min != 1), n)
	}
	return nil
}

// RequireRange returns an error unless between min and max arguments,
// inclusive, were given.
func (a Args) RequireRange(funcName string, min, max int) error {
	n := len(a)
	if n < min {
		return errz.ArgsErrorf("%s() takes at least %d %s (%d given)",
			funcName, min, pluralize("argument", min != 1), n)
	} else if n > max {
		return errz.ArgsErrorf("%s() takes at most %d %s (%d given)",
			funcName, max, pluralize("argument", max != 1), n)
	}
	return nil
}

// Number returns argument i as a float64. Non-numeric arguments are a
// type error.
func (a Args) Number(funcName string, i int) (float64, error) {
	v := a.At(i)
	if !v.IsNumber() {
		return 0, typeArgError(funcName, i, "number", v)
	}
	return v.Number(), nil
}

// Numbers returns all arguments as float64 values. Non-numeric arguments
// are a type error.
func (a Args) Numbers(funcName string) ([]float64, error) {
	out := make([]float64, len(a))
	for i, v := range a {
		if !v.IsNumber() {
			return nil, typeArgError(funcName, i, "number", v)
		}
		out[i] = v.Number()
	}
	return out, nil
}

func typeArgError(funcName string, i int, want string, got Value) error {
	return errz.TypeErrorf("%s() expected a %s for argument %d (%s given)",
		funcName, want, i+1, got.Kind())
}

func pluralize(s string, do bool) string {
	if do {
		return s + "s"
	}
	return s
}
