package vm

import (
	"github.com/risor-io/expr/object"
	"github.com/risor-io/expr/op"
)

// Observer receives VM execution events. It can be used for tracing,
// profiling or coverage without changing the interpreter.
//
// Methods are called synchronously from the interpret loop and should be
// fast. Returning false from any method halts evaluation with an error.
// Embed NoOpObserver to implement only the methods you need.
type Observer interface {
	// OnStep is called before each instruction is executed.
	OnStep(event StepEvent) bool

	// OnCall is called before a host function is invoked.
	OnCall(event CallEvent) bool

	// OnReturn is called after a host function returns successfully.
	OnReturn(event ReturnEvent) bool
}

// StepEvent describes one instruction about to execute.
type StepEvent struct {
	// IP is the byte offset of the instruction.
	IP int

	// Opcode is the operation being executed.
	Opcode op.Code

	// OpcodeName is the human-readable name of the opcode.
	OpcodeName string

	// StackDepth is the number of values on the evaluation stack.
	StackDepth int
}

// CallEvent describes a host function call.
type CallEvent struct {
	// IP is the byte offset of the CALL instruction.
	IP int

	// FunctionID is the id encoded in the instruction.
	FunctionID uint32

	// FunctionName is the name the function is registered under.
	FunctionName string

	// Args is a view over the arguments. It is only valid during the
	// callback.
	Args []object.Value
}

// ReturnEvent describes a completed host function call.
type ReturnEvent struct {
	FunctionName string
	Result       object.Value
}

// NoOpObserver is an Observer that does nothing.
type NoOpObserver struct{}

func (NoOpObserver) OnStep(StepEvent) bool     { return true }
func (NoOpObserver) OnCall(CallEvent) bool     { return true }
func (NoOpObserver) OnReturn(ReturnEvent) bool { return true }

var _ Observer = NoOpObserver{}
