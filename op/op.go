// Package op defines the opcodes shared by the compiler and virtual machine.
package op

// Code is a one-byte opcode that indicates an operation to execute.
type Code uint8

const (
	Invalid Code = 0

	// Stack
	Pop Code = 1

	// Arithmetic
	Add Code = 10
	Sub Code = 11
	Mul Code = 12
	Div Code = 13
	Mod Code = 14
	Neg Code = 15

	// Logic
	Not Code = 20
	Xor Code = 21

	// Comparison
	Equal        Code = 30
	NotEqual     Code = 31
	Greater      Code = 32
	GreaterEqual Code = 33
	Less         Code = 34
	LessEqual    Code = 35

	// Load
	LoadParam  Code = 40
	LoadString Code = 41
	Null       Code = 42
	True       Code = 43
	False      Code = 44
	LoadI8     Code = 45
	LoadI16    Code = 46
	LoadI32    Code = 47
	LoadI64    Code = 48
	LoadF32    Code = 49
	LoadF64    Code = 50

	// Jump
	JumpIfFalse Code = 60
	JumpIfTrue  Code = 61

	// Execution
	Call   Code = 70
	Return Code = 71
)

// Info contains information about an opcode.
type Info struct {
	Code Code
	Name string
	// OperandWidths lists the byte width of each operand, in encoding order.
	OperandWidths []int
}

// OperandCount returns the number of operands following the opcode.
func (i Info) OperandCount() int {
	return len(i.OperandWidths)
}

// Size returns the encoded size of the instruction in bytes, opcode included.
func (i Info) Size() int {
	n := 1
	for _, w := range i.OperandWidths {
		n += w
	}
	return n
}

// Valid reports whether the info describes a defined opcode.
func (i Info) Valid() bool {
	return i.Name != ""
}

var infos [256]Info

func init() {
	type opInfo struct {
		op     Code
		name   string
		widths []int
	}
	ops := []opInfo{
		{Pop, "POP", nil},
		{Add, "ADD", nil},
		{Sub, "SUB", nil},
		{Mul, "MUL", nil},
		{Div, "DIV", nil},
		{Mod, "MOD", nil},
		{Neg, "NEG", nil},
		{Not, "NOT", nil},
		{Xor, "XOR", nil},
		{Equal, "EQUAL", nil},
		{NotEqual, "NOT_EQUAL", nil},
		{Greater, "GREATER", nil},
		{GreaterEqual, "GREATER_EQUAL", nil},
		{Less, "LESS", nil},
		{LessEqual, "LESS_EQUAL", nil},
		{LoadParam, "LOAD_PARAM", []int{4}},
		{LoadString, "LOAD_STRING", []int{4}},
		{Null, "NULL", nil},
		{True, "TRUE", nil},
		{False, "FALSE", nil},
		{LoadI8, "LOAD_I8", []int{1}},
		{LoadI16, "LOAD_I16", []int{2}},
		{LoadI32, "LOAD_I32", []int{4}},
		{LoadI64, "LOAD_I64", []int{8}},
		{LoadF32, "LOAD_F32", []int{4}},
		{LoadF64, "LOAD_F64", []int{8}},
		{JumpIfFalse, "JUMP_IF_FALSE", []int{2}},
		{JumpIfTrue, "JUMP_IF_TRUE", []int{2}},
		{Call, "CALL", []int{1, 4}},
		{Return, "RETURN", nil},
	}
	for _, o := range ops {
		infos[o.op] = Info{
			Code:          o.op,
			Name:          o.name,
			OperandWidths: o.widths,
		}
	}
}

// GetInfo returns information about the given opcode.
func GetInfo(op Code) Info {
	return infos[op]
}

func (c Code) String() string {
	if info := infos[c]; info.Valid() {
		return info.Name
	}
	return "INVALID"
}
