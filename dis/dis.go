// Package dis disassembles compiled expressions for inspection. It decodes
// instructions with the bytecode package's InstructionIter and annotates
// them with constants, string table entries and function names.
package dis

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/risor-io/expr/bytecode"
	"github.com/risor-io/expr/internal/table"
	"github.com/risor-io/expr/op"
)

// FunctionNamer maps CALL function ids back to names.
type FunctionNamer interface {
	FunctionName(id uint32) (string, bool)
}

// Instruction represents a single bytecode instruction and its operands.
type Instruction struct {
	Offset     int
	Name       string
	Opcode     op.Code
	Operands   []uint64
	Annotation string
	// Constant holds the value loaded by constant and string instructions:
	// an int64, float64 or string.
	Constant any
}

// Disassemble returns a parsed representation of the given bytecode.
// functions may be nil, in which case calls are annotated by id.
func Disassemble(code *bytecode.Code, functions FunctionNamer) ([]Instruction, error) {
	var instructions []Instruction
	iter := bytecode.NewInstructionIter(code)
	for {
		val, ok := iter.Next()
		if !ok {
			break
		}
		instr := Instruction{
			Offset:   val.Offset,
			Name:     op.GetInfo(val.Opcode).Name,
			Opcode:   val.Opcode,
			Operands: val.Operands,
		}
		switch val.Opcode {
		case op.LoadI8:
			instr.Constant = int64(int8(val.Operands[0]))
		case op.LoadI16:
			instr.Constant = int64(int16(val.Operands[0]))
		case op.LoadI32:
			instr.Constant = int64(int32(val.Operands[0]))
		case op.LoadI64:
			instr.Constant = int64(val.Operands[0])
		case op.LoadF32:
			instr.Constant = float64(math.Float32frombits(uint32(val.Operands[0])))
		case op.LoadF64:
			instr.Constant = math.Float64frombits(val.Operands[0])
		case op.LoadString, op.LoadParam:
			s, err := stringAt(code, val.Operands[0])
			if err != nil {
				return nil, err
			}
			if val.Opcode == op.LoadParam {
				instr.Annotation = "$" + s
			} else {
				instr.Constant = s
			}
		case op.JumpIfFalse, op.JumpIfTrue:
			target := val.Offset + val.Size() + int(val.Operands[0])
			instr.Annotation = fmt.Sprintf("to %d", target)
		case op.Call:
			id := uint32(val.Operands[1])
			name := fmt.Sprintf("#%d", id)
			if functions != nil {
				if n, ok := functions.FunctionName(id); ok {
					name = n
				}
			}
			instr.Annotation = fmt.Sprintf("%s/%d", name, val.Operands[0])
		}
		instructions = append(instructions, instr)
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return instructions, nil
}

func stringAt(code *bytecode.Code, index uint64) (string, error) {
	if index >= uint64(code.StringCount()) {
		return "", fmt.Errorf("string index %d out of range (%d strings)", index, code.StringCount())
	}
	return code.StringAt(int(index)), nil
}

var (
	nameColor     = color.New(color.Bold)
	numberColor   = color.New(color.FgYellow)
	stringColor   = color.New(color.FgGreen)
	annotateColor = color.New(color.FgHiCyan)
)

// Print writes a table of the given instructions to the given writer.
// Colors follow fatih/color's global NoColor setting.
func Print(instructions []Instruction, writer io.Writer) error {
	var lines [][]string
	for _, instr := range instructions {
		values := []string{
			strconv.Itoa(instr.Offset),
			nameColor.Sprint(instr.Name),
			formatOperands(instr),
		}
		switch c := instr.Constant.(type) {
		case int64:
			values = append(values, numberColor.Sprint(strconv.FormatInt(c, 10)))
		case float64:
			values = append(values, numberColor.Sprint(strconv.FormatFloat(c, 'g', -1, 64)))
		case string:
			if len(c) > 80 {
				c = c[:77] + "..."
			}
			values = append(values, stringColor.Sprint(strconv.Quote(c)))
		default:
			if instr.Annotation != "" {
				values = append(values, annotateColor.Sprint(instr.Annotation))
			} else {
				values = append(values, "")
			}
		}
		lines = append(lines, values)
	}

	return table.NewTable(writer).
		WithHeader([]string{"OFFSET", "OPCODE", "OPERANDS", "INFO"}).
		WithColumnAlignment([]table.Alignment{
			table.AlignRight,
			table.AlignLeft,
			table.AlignRight,
			table.AlignLeft,
		}).
		WithHeaderAlignment([]table.Alignment{
			table.AlignCenter,
			table.AlignCenter,
			table.AlignCenter,
			table.AlignCenter,
		}).
		WithRows(lines).
		Render()
}

func formatOperands(instr Instruction) string {
	parts := make([]string, len(instr.Operands))
	for i, operand := range instr.Operands {
		switch instr.Opcode {
		case op.LoadF32, op.LoadF64:
			parts[i] = "0x" + strconv.FormatUint(operand, 16)
		default:
			parts[i] = strconv.FormatUint(operand, 10)
		}
	}
	return strings.Join(parts, ", ")
}
