package vm

import "github.com/risor-io/expr/object"

// Option is a configuration function for a Virtual Machine.
type Option func(*VirtualMachine)

// WithFunctions sets the resolver used by CALL instructions.
func WithFunctions(functions FunctionResolver) Option {
	return func(vm *VirtualMachine) {
		vm.functions = functions
	}
}

// WithGlobals sets parameters consulted when a name is not found in the
// parameters passed to Evaluate.
func WithGlobals(globals object.Params) Option {
	return func(vm *VirtualMachine) {
		vm.globals = globals
	}
}

// WithInitialStackSize sets the initial number of evaluation stack slots.
// The stack doubles as needed.
func WithInitialStackSize(size int) Option {
	return func(vm *VirtualMachine) {
		vm.initialStackSize = size
	}
}

// WithMaxStackSize caps the evaluation stack. Exceeding the cap fails the
// evaluation with a stack overflow error. Zero means no cap.
func WithMaxStackSize(size int) Option {
	return func(vm *VirtualMachine) {
		vm.maxStackSize = size
	}
}

// WithObserver sets an observer for VM execution events.
func WithObserver(observer Observer) Option {
	return func(vm *VirtualMachine) {
		vm.observer = observer
	}
}
