package object

import (
	"context"
	"fmt"

	"github.com/risor-io/expr/errz"
)

// Function is the signature of a host function callable from expressions.
// It receives the arguments as a read-only view and returns one value.
type Function func(call *Call) (Value, error)

// Call carries everything a Function may need for one invocation.
type Call struct {
	// Ctx is the context passed to the evaluation.
	Ctx context.Context
	// Name is the registered name of the function being called.
	Name string
	// Args is a view over the argument slots on the evaluation stack. It
	// must not be retained or modified.
	Args Args
	// UserData is the opaque value supplied with the evaluation context.
	UserData any
	// Strings is the string table of the expression being evaluated.
	Strings []string
}

// String returns the text of a string-literal argument. String literals
// evaluate to their index in the expression's string table.
func (c *Call) String(i int) (string, error) {
	arg := c.Args.At(i)
	if arg.kind != INTEGER {
		return "", typeArgError(c.Name, i, "string", arg)
	}
	idx := arg.Integer()
	if idx < 0 || idx >= int64(len(c.Strings)) {
		return "", errz.ArgsErrorf("%s() argument %d is not a string literal", c.Name, i+1)
	}
	return c.Strings[idx], nil
}

// Builtin pairs a host function with the name it is registered under.
type Builtin struct {
	name string
	fn   Function
}

// NewBuiltin returns a new Builtin.
func NewBuiltin(name string, fn Function) *Builtin {
	return &Builtin{name: name, fn: fn}
}

// Name returns the registered name.
func (b *Builtin) Name() string {
	return b.name
}

// Value returns the wrapped function.
func (b *Builtin) Value() Function {
	return b.fn
}

// Call invokes the function.
func (b *Builtin) Call(call *Call) (Value, error) {
	return b.fn(call)
}

func (b *Builtin) String() string {
	return fmt.Sprintf("builtin(%s)", b.name)
}
