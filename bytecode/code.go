package bytecode

import (
	"bytes"
	"slices"
)

// Code is a compiled expression: an instruction stream and the string
// table its LOAD_STRING and LOAD_PARAM instructions index into.
//
// A Code produced by a durable compile owns its storage, is never mutated
// and is safe for concurrent use. A transient Code is a view over a
// compiler's working buffers and is valid only until that compiler's next
// compile.
type Code struct {
	source       string
	instructions []byte
	strings      []string
	transient    bool
}

// NewCode returns a durable Code holding copies of the given slices.
func NewCode(source string, instructions []byte, strings []string) *Code {
	return &Code{
		source:       source,
		instructions: slices.Clone(instructions),
		strings:      slices.Clone(strings),
	}
}

// NewTransientCode returns a Code that shares the given slices.
func NewTransientCode(source string, instructions []byte, strings []string) *Code {
	return &Code{
		source:       source,
		instructions: instructions,
		strings:      strings,
		transient:    true,
	}
}

// Source returns the expression text this code was compiled from.
func (c *Code) Source() string {
	return c.source
}

// IsTransient reports whether the code is a view over compiler buffers.
func (c *Code) IsTransient() bool {
	return c.transient
}

// InstructionCount returns the length of the instruction stream in bytes.
func (c *Code) InstructionCount() int {
	return len(c.instructions)
}

// InstructionAt returns the byte at the given offset.
func (c *Code) InstructionAt(index int) byte {
	return c.instructions[index]
}

// Instructions returns the instruction stream. The returned slice must
// not be modified.
func (c *Code) Instructions() []byte {
	return c.instructions
}

// StringCount returns the number of entries in the string table.
func (c *Code) StringCount() int {
	return len(c.strings)
}

// StringAt returns the string table entry at the given index.
func (c *Code) StringAt(index int) string {
	return c.strings[index]
}

// Strings returns the string table. The returned slice must not be
// modified.
func (c *Code) Strings() []string {
	return c.strings
}

// Durable returns c if it already owns its storage, otherwise a copy that
// does.
func (c *Code) Durable() *Code {
	if !c.transient {
		return c
	}
	return NewCode(c.source, c.instructions, c.strings)
}

// Equal reports whether two codes have identical instruction streams and
// string tables.
func (c *Code) Equal(other *Code) bool {
	if c == nil || other == nil {
		return c == other
	}
	return bytes.Equal(c.instructions, other.instructions) &&
		slices.Equal(c.strings, other.strings)
}
