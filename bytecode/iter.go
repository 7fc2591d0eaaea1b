package bytecode

import (
	"encoding/binary"
	"fmt"

	"github.com/risor-io/expr/op"
)

// Instruction is one decoded instruction. Operands are widened to uint64
// in encoding order.
type Instruction struct {
	Offset   int
	Opcode   op.Code
	Operands []uint64
}

// Size returns the encoded length of the instruction in bytes.
func (i Instruction) Size() int {
	return op.GetInfo(i.Opcode).Size()
}

// InstructionIter decodes the instructions of a Code in order.
type InstructionIter struct {
	code *Code
	pos  int
	err  error
}

// NewInstructionIter creates a new instruction iterator for the given code.
func NewInstructionIter(code *Code) *InstructionIter {
	return &InstructionIter{code: code}
}

// Next returns the next instruction. It returns false at the end of the
// stream or when the stream is malformed; Err distinguishes the two.
func (i *InstructionIter) Next() (Instruction, bool) {
	if i.err != nil || i.pos >= i.code.InstructionCount() {
		return Instruction{}, false
	}
	offset := i.pos
	opcode := op.Code(i.code.InstructionAt(offset))
	info := op.GetInfo(opcode)
	if !info.Valid() {
		i.err = fmt.Errorf("invalid opcode %d at offset %d", opcode, offset)
		return Instruction{}, false
	}
	if offset+info.Size() > i.code.InstructionCount() {
		i.err = fmt.Errorf("truncated %s instruction at offset %d", info.Name, offset)
		return Instruction{}, false
	}
	instr := Instruction{Offset: offset, Opcode: opcode}
	pos := offset + 1
	if n := info.OperandCount(); n > 0 {
		instr.Operands = make([]uint64, n)
		for j, w := range info.OperandWidths {
			instr.Operands[j] = ReadOperand(i.code.instructions[pos:], w)
			pos += w
		}
	}
	i.pos = pos
	return instr, true
}

// Err returns the decoding error that stopped iteration, if any.
func (i *InstructionIter) Err() error {
	return i.err
}

// All returns all instructions as a newly allocated slice.
func (i *InstructionIter) All() ([]Instruction, error) {
	var results []Instruction
	for {
		instr, ok := i.Next()
		if !ok {
			break
		}
		results = append(results, instr)
	}
	return results, i.err
}

// ReadOperand decodes a big-endian operand of the given width from the
// start of b. The caller must ensure b holds at least width bytes.
func ReadOperand(b []byte, width int) uint64 {
	switch width {
	case 1:
		return uint64(b[0])
	case 2:
		return uint64(binary.BigEndian.Uint16(b))
	case 4:
		return uint64(binary.BigEndian.Uint32(b))
	case 8:
		return binary.BigEndian.Uint64(b)
	default:
		panic(fmt.Sprintf("bytecode: unsupported operand width %d", width))
	}
}
