package compiler

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/risor-io/expr/op"
)

// emit appends an instruction and returns its offset.
func (c *Compiler) emit(opcode op.Code, operands ...uint64) int {
	pos := c.instructions.Len()
	info := op.GetInfo(opcode)
	var buf [1 + 8 + 8]byte
	buf[0] = byte(opcode)
	n := 1
	for i, width := range info.OperandWidths {
		var operand uint64
		if i < len(operands) {
			operand = operands[i]
		}
		switch width {
		case 1:
			buf[n] = byte(operand)
		case 2:
			binary.BigEndian.PutUint16(buf[n:], uint16(operand))
		case 4:
			binary.BigEndian.PutUint32(buf[n:], uint32(operand))
		case 8:
			binary.BigEndian.PutUint64(buf[n:], operand)
		}
		n += width
	}
	if err := c.instructions.Append(buf[:n]...); err != nil {
		c.fail("Expression exceeds the maximum code size of %d bytes", c.instructions.Max())
	}
	return pos
}

// emitJump emits a conditional jump with a placeholder operand and returns
// the offset of the jump instruction.
func (c *Compiler) emitJump(opcode op.Code) int {
	return c.emit(opcode, uint64(Placeholder))
}

// patchJump points the jump at pos to the current end of the instruction
// stream.
func (c *Compiler) patchJump(pos int) error {
	delta, err := c.calculateDelta(pos)
	if err != nil {
		return err
	}
	c.changeOperand(pos, delta)
	return nil
}

// calculateDelta returns the forward distance from the end of the jump
// instruction at pos to the end of the instruction stream.
func (c *Compiler) calculateDelta(pos int) (uint16, error) {
	if c.failure != nil {
		return 0, c.failure
	}
	size := op.GetInfo(op.Code(c.instructions.At(pos))).Size()
	delta := c.instructions.Len() - pos - size
	if delta > math.MaxUint16 {
		return 0, c.errorAtCurrent(fmt.Sprintf(
			"Exceeded maximum jump size: %d, max=%d", delta, math.MaxUint16))
	}
	return uint16(delta), nil
}

// changeOperand overwrites the 16-bit operand of the instruction at pos.
func (c *Compiler) changeOperand(pos int, operand uint16) {
	c.instructions.Set(pos+1, byte(operand>>8))
	c.instructions.Set(pos+2, byte(operand))
}

// stringIndexOf interns s in the string table.
func (c *Compiler) stringIndexOf(s string) uint32 {
	if index, ok := c.stringIndex[s]; ok {
		return index
	}
	index := uint32(len(c.strings))
	c.strings = append(c.strings, s)
	c.stringIndex[s] = index
	return index
}

func (c *Compiler) emitInteger(v int64) {
	switch {
	case v >= math.MinInt8 && v <= math.MaxInt8:
		c.emit(op.LoadI8, uint64(uint8(int8(v))))
	case v >= math.MinInt16 && v <= math.MaxInt16:
		c.emit(op.LoadI16, uint64(uint16(int16(v))))
	case v >= math.MinInt32 && v <= math.MaxInt32:
		c.emit(op.LoadI32, uint64(uint32(int32(v))))
	default:
		c.emit(op.LoadI64, uint64(v))
	}
}

func (c *Compiler) emitFloat32(v float32) {
	c.emit(op.LoadF32, uint64(math.Float32bits(v)))
}

func (c *Compiler) emitFloat64(v float64) {
	c.emit(op.LoadF64, math.Float64bits(v))
}
