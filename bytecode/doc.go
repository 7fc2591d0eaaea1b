// Package bytecode provides the compiled form of an expression.
//
// A [Code] is an instruction stream of one-byte opcodes, each followed by
// fixed-width big-endian operands (see the op package for widths), plus an
// ordered, deduplicated string table referenced by LOAD_STRING and
// LOAD_PARAM operands.
//
// # Durable and transient code
//
// Durable code, created with [NewCode], copies its inputs and is never
// mutated afterwards. It can be cached and evaluated concurrently by any
// number of VMs.
//
// Transient code, created with [NewTransientCode], shares the compiler's
// working buffers. It exists to evaluate an expression once without
// allocating and is invalidated by the next compile on the same compiler.
// Call [Code.Durable] to keep it.
//
// # Serialization
//
// No file format is defined. The instruction bytes and the string table
// are exposed index by index ([Code.InstructionAt], [Code.StringAt]) and
// as read-only slices; a host may persist them verbatim and rebuild the
// code with [NewCode].
//
// Example:
//
//	code, err := compiler.Compile("1 + $x", nil)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("Instructions: %d bytes\n", code.InstructionCount())
//	fmt.Printf("Strings: %d\n", code.StringCount())
package bytecode
