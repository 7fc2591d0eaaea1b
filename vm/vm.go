// Package vm provides a VirtualMachine that evaluates compiled expressions.
//
// The interpreter decodes instructions directly from the bytecode stream.
// Every instruction is bounds-checked against the stream and every pop is
// checked against the stack depth, so malformed bytecode fails with an
// error rather than a panic.
//
// A VirtualMachine reuses its evaluation stack across calls to Evaluate and
// must not be used from multiple goroutines at once. Compiled code is
// immutable and may be evaluated by many machines concurrently.
package vm

import (
	"context"
	"errors"
	"math"

	"github.com/risor-io/expr/bytecode"
	"github.com/risor-io/expr/errz"
	"github.com/risor-io/expr/internal/buffer"
	"github.com/risor-io/expr/object"
	"github.com/risor-io/expr/op"
)

const (
	// DefaultStackSize is the initial number of evaluation stack slots.
	DefaultStackSize = 32
)

// FunctionResolver maps the function ids encoded in CALL instructions to
// host functions.
type FunctionResolver interface {
	FunctionByID(id uint32) (*object.Builtin, bool)
}

// VirtualMachine is a stack-based bytecode interpreter.
type VirtualMachine struct {
	ip           int
	code         *bytecode.Code
	instructions []byte
	stack        *buffer.Stack[object.Value]
	// scope holds the evaluation's params followed by the globals.
	scope [2]object.Params
	call  object.Call

	functions        FunctionResolver
	globals          object.Params
	observer         Observer
	initialStackSize int
	maxStackSize     int
}

// New creates a new VirtualMachine.
func New(options ...Option) *VirtualMachine {
	vm := &VirtualMachine{initialStackSize: DefaultStackSize}
	for _, opt := range options {
		opt(vm)
	}
	vm.stack = buffer.NewStack[object.Value](vm.initialStackSize, vm.maxStackSize)
	return vm
}

// Evaluate runs code to completion and returns its result. Parameters are
// looked up in params first and then in the machine's globals. The context
// and userData are passed through to host functions.
func (vm *VirtualMachine) Evaluate(ctx context.Context, code *bytecode.Code, params object.Params, userData any) (object.Value, error) {
	if code == nil {
		return object.Null, errz.NewRuntimeErrorf(errz.ErrRuntime, "no code to evaluate").
			WithCause(errz.ErrMalformedCode)
	}
	vm.ip = 0
	vm.code = code
	vm.instructions = code.Instructions()
	vm.scope = [2]object.Params{params, vm.globals}
	vm.stack.Reset()
	vm.call = object.Call{Ctx: ctx, UserData: userData, Strings: code.Strings()}
	defer vm.release()
	return vm.eval()
}

// release drops references to the last evaluation's inputs.
func (vm *VirtualMachine) release() {
	vm.code = nil
	vm.instructions = nil
	vm.scope = [2]object.Params{}
	vm.call = object.Call{}
}

func (vm *VirtualMachine) eval() (object.Value, error) {
	instructions := vm.instructions
	for vm.ip < len(instructions) {
		start := vm.ip
		opcode := op.Code(instructions[start])
		info := op.GetInfo(opcode)
		if !info.Valid() {
			return object.Null, vm.malformed(start, "invalid opcode %d", opcode)
		}
		if start+info.Size() > len(instructions) {
			return object.Null, vm.malformed(start, "truncated %s instruction", info.Name)
		}

		if vm.observer != nil {
			event := StepEvent{
				IP:         start,
				Opcode:     opcode,
				OpcodeName: info.Name,
				StackDepth: vm.stack.Len(),
			}
			if !vm.observer.OnStep(event) {
				return object.Null, halted(start)
			}
		}

		// Advance past the instruction before executing it. Jump offsets
		// are relative to the following instruction.
		vm.ip += info.Size()
		operands := instructions[start+1 : vm.ip]

		switch opcode {
		case op.Pop:
			if err := vm.require(start, 1); err != nil {
				return object.Null, err
			}
			vm.stack.Pop()
		case op.Add, op.Sub, op.Mul, op.Div, op.Mod:
			if err := vm.require(start, 2); err != nil {
				return object.Null, err
			}
			b := vm.stack.Pop()
			a := vm.stack.Pop()
			result, err := object.Arithmetic(arithmeticOps[opcode], a, b)
			if err != nil {
				return object.Null, vm.annotate(start, err)
			}
			vm.stack.Push(result)
		case op.Neg:
			if err := vm.require(start, 1); err != nil {
				return object.Null, err
			}
			result, err := object.Negate(vm.stack.Pop())
			if err != nil {
				return object.Null, vm.annotate(start, err)
			}
			vm.stack.Push(result)
		case op.Not:
			if err := vm.require(start, 1); err != nil {
				return object.Null, err
			}
			vm.stack.Push(object.Not(vm.stack.Pop()))
		case op.Xor:
			if err := vm.require(start, 2); err != nil {
				return object.Null, err
			}
			b := vm.stack.Pop()
			a := vm.stack.Pop()
			vm.stack.Push(object.Xor(a, b))
		case op.Equal, op.NotEqual:
			if err := vm.require(start, 2); err != nil {
				return object.Null, err
			}
			b := vm.stack.Pop()
			a := vm.stack.Pop()
			vm.stack.Push(object.NewBool(a.Equals(b) == (opcode == op.Equal)))
		case op.Greater, op.GreaterEqual, op.Less, op.LessEqual:
			if err := vm.require(start, 2); err != nil {
				return object.Null, err
			}
			b := vm.stack.Pop()
			a := vm.stack.Pop()
			result, err := object.Compare(compareOps[opcode], a, b)
			if err != nil {
				return object.Null, vm.annotate(start, err)
			}
			vm.stack.Push(result)
		case op.LoadParam:
			index := bytecode.ReadOperand(operands, 4)
			if index >= uint64(vm.code.StringCount()) {
				return object.Null, vm.malformed(start, "string index %d out of range", index)
			}
			value, err := vm.lookup(start, vm.code.StringAt(int(index)))
			if err != nil {
				return object.Null, err
			}
			if err := vm.push(start, value); err != nil {
				return object.Null, err
			}
		case op.LoadString:
			index := bytecode.ReadOperand(operands, 4)
			if index >= uint64(vm.code.StringCount()) {
				return object.Null, vm.malformed(start, "string index %d out of range", index)
			}
			if err := vm.push(start, object.NewInteger(int64(index))); err != nil {
				return object.Null, err
			}
		case op.Null, op.True, op.False,
			op.LoadI8, op.LoadI16, op.LoadI32, op.LoadI64, op.LoadF32, op.LoadF64:
			if err := vm.push(start, constant(opcode, operands)); err != nil {
				return object.Null, err
			}
		case op.JumpIfFalse, op.JumpIfTrue:
			if err := vm.require(start, 1); err != nil {
				return object.Null, err
			}
			if vm.stack.Peek().Truthy() == (opcode == op.JumpIfTrue) {
				target := vm.ip + int(bytecode.ReadOperand(operands, 2))
				if target > len(instructions) {
					return object.Null, vm.malformed(start, "jump target %d out of range", target)
				}
				vm.ip = target
			}
		case op.Call:
			if err := vm.callFunction(start, int(operands[0]), uint32(bytecode.ReadOperand(operands[1:], 4))); err != nil {
				return object.Null, err
			}
		case op.Return:
			return vm.result(), nil
		}
	}
	return vm.result(), nil
}

func (vm *VirtualMachine) result() object.Value {
	if vm.stack.Len() == 0 {
		return object.Null
	}
	return vm.stack.Pop()
}

func (vm *VirtualMachine) callFunction(ip, argc int, id uint32) error {
	if err := vm.require(ip, argc); err != nil {
		return err
	}
	var fn *object.Builtin
	if vm.functions != nil {
		fn, _ = vm.functions.FunctionByID(id)
	}
	if fn == nil {
		return errz.NewRuntimeErrorf(errz.ErrName, "function id %d is not defined", id).
			WithCause(errz.ErrUndefinedFunction).
			WithIP(ip)
	}
	args := vm.stack.Top(argc)
	if vm.observer != nil {
		event := CallEvent{IP: ip, FunctionID: id, FunctionName: fn.Name(), Args: args}
		if !vm.observer.OnCall(event) {
			return halted(ip)
		}
	}
	vm.call.Name = fn.Name()
	vm.call.Args = args
	result, err := fn.Call(&vm.call)
	vm.call.Args = nil
	if err != nil {
		return vm.annotate(ip, err)
	}
	if vm.observer != nil {
		if !vm.observer.OnReturn(ReturnEvent{FunctionName: fn.Name(), Result: result}) {
			return halted(ip)
		}
	}
	vm.stack.Drop(argc)
	return vm.push(ip, result)
}

func (vm *VirtualMachine) lookup(ip int, name string) (object.Value, error) {
	if value, ok := object.Layered(vm.scope[:]).Get(name); ok {
		return value, nil
	}
	return object.Null, errz.NewRuntimeErrorf(errz.ErrName, "parameter '%s' is not defined", name).
		WithCause(errz.ErrUndefinedParameter).
		WithIP(ip)
}

func (vm *VirtualMachine) push(ip int, value object.Value) error {
	if err := vm.stack.Push(value); err != nil {
		return errz.NewRuntimeErrorf(errz.ErrStackOverflow,
			"evaluation stack exceeded %d values", vm.maxStackSize).
			WithCause(errz.ErrStackExhausted).
			WithIP(ip)
	}
	return nil
}

func (vm *VirtualMachine) require(ip, n int) error {
	if vm.stack.Len() < n {
		return vm.malformed(ip, "stack underflow: need %d values, have %d", n, vm.stack.Len())
	}
	return nil
}

func (vm *VirtualMachine) malformed(ip int, format string, args ...any) error {
	return errz.NewRuntimeErrorf(errz.ErrRuntime, format, args...).
		WithCause(errz.ErrMalformedCode).
		WithIP(ip)
}

// annotate attaches the instruction offset to errors returned by
// operations and host functions. Host functions may return shared error
// values, so a RuntimeError is copied rather than modified.
func (vm *VirtualMachine) annotate(ip int, err error) error {
	var rerr *errz.RuntimeError
	if errors.As(err, &rerr) {
		if rerr.IP >= 0 {
			return err
		}
		annotated := *rerr
		annotated.IP = ip
		if rerr != err {
			annotated.Cause = err
		}
		return &annotated
	}
	return errz.NewRuntimeErrorf(errz.ErrRuntime, "%s", err.Error()).
		WithCause(err).
		WithIP(ip)
}

func halted(ip int) error {
	return errz.NewRuntimeErrorf(errz.ErrRuntime, "execution halted by observer").WithIP(ip)
}

func constant(opcode op.Code, operands []byte) object.Value {
	switch opcode {
	case op.True:
		return object.True
	case op.False:
		return object.False
	case op.LoadI8:
		return object.NewInteger(int64(int8(operands[0])))
	case op.LoadI16:
		return object.NewInteger(int64(int16(bytecode.ReadOperand(operands, 2))))
	case op.LoadI32:
		return object.NewInteger(int64(int32(bytecode.ReadOperand(operands, 4))))
	case op.LoadI64:
		return object.NewInteger(int64(bytecode.ReadOperand(operands, 8)))
	case op.LoadF32:
		return object.NewDecimal(float64(math.Float32frombits(uint32(bytecode.ReadOperand(operands, 4)))))
	case op.LoadF64:
		return object.NewDecimal(math.Float64frombits(bytecode.ReadOperand(operands, 8)))
	default:
		return object.Null
	}
}

var arithmeticOps = map[op.Code]object.ArithmeticOp{
	op.Add: object.Add,
	op.Sub: object.Subtract,
	op.Mul: object.Multiply,
	op.Div: object.Divide,
	op.Mod: object.Modulo,
}

var compareOps = map[op.Code]object.CompareOp{
	op.Greater:      object.GreaterThan,
	op.GreaterEqual: object.GreaterThanOrEqual,
	op.Less:         object.LessThan,
	op.LessEqual:    object.LessThanOrEqual,
}
