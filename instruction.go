package lazy

import (
	"bytes"
	"fmt"
)

// Slot identifies the destination of an instruction. Slots behave like
// registers of a machine with an unbounded register file.
type Slot uint32

// Opcode represents the operation performed by an instruction.
type Opcode int

// Instruction opcodes.
const (
	OpInvalid = Opcode(iota)
	OpConstant
	OpAdd
	OpSub
	OpMul
	OpDiv
)

var opcodes = [...]string{
	OpConstant: "constant",
	OpAdd:      "add",
	OpSub:      "sub",
	OpMul:      "mul",
	OpDiv:      "div",
}

// String returns the name of the opcode.
func (op Opcode) String() string {
	if op > OpInvalid && int(op) < len(opcodes) {
		return opcodes[op]
	}
	return fmt.Sprintf("Opcode<%d>", op)
}

// IsBinary returns true if op reads two operand slots.
func (op Opcode) IsBinary() bool {
	return op >= OpAdd && op <= OpDiv
}

// BinaryOp returns the expression operation computed by a binary opcode.
func (op Opcode) BinaryOp() BinaryOp {
	switch op {
	case OpAdd:
		return ADD
	case OpSub:
		return SUB
	case OpMul:
		return MUL
	case OpDiv:
		return DIV
	default:
		panic(fmt.Sprintf("lazy: opcode is not binary: %s", op))
	}
}

// opcodeOf returns the opcode implementing a binary expression operation.
func opcodeOf(op BinaryOp) Opcode {
	switch op {
	case ADD:
		return OpAdd
	case SUB:
		return OpSub
	case MUL:
		return OpMul
	case DIV:
		return OpDiv
	default:
		panic("unreachable")
	}
}

// Instruction represents a single three-address operation. Instructions are
// plain values and may be compared with ==, except that constants holding
// NaN are never equal.
type Instruction struct {
	Dst   Slot
	Op    Opcode
	Value float32 // constant only
	A     Slot    // binary only
	B     Slot    // binary only
}

// NewConstantInstruction returns an instruction loading value into dst.
func NewConstantInstruction(value float32, dst Slot) Instruction {
	return Instruction{Dst: dst, Op: OpConstant, Value: value}
}

// NewBinaryInstruction returns an instruction storing op applied to slots a & b into dst.
func NewBinaryInstruction(op BinaryOp, a, b, dst Slot) Instruction {
	return Instruction{Dst: dst, Op: opcodeOf(op), A: a, B: b}
}

// Operands returns the slots read by the instruction.
func (ins Instruction) Operands() []Slot {
	if ins.Op.IsBinary() {
		return []Slot{ins.A, ins.B}
	}
	return nil
}

// String returns the textual form, e.g. "%2: add %0 %1".
func (ins Instruction) String() string {
	switch {
	case ins.Op == OpConstant:
		return fmt.Sprintf("%%%d: %s %s", ins.Dst, ins.Op, FormatFloat(ins.Value))
	case ins.Op.IsBinary():
		return fmt.Sprintf("%%%d: %s %%%d %%%d", ins.Dst, ins.Op, ins.A, ins.B)
	default:
		return fmt.Sprintf("%%%d: %s", ins.Dst, ins.Op)
	}
}

// Program represents an ordered list of instructions and the slot that holds
// the final result once they have all executed.
type Program struct {
	Instructions []Instruction
	Result       Slot
}

// Len returns the number of instructions in the program.
func (p *Program) Len() int {
	return len(p.Instructions)
}

// String returns the instruction listing followed by a "ret" line.
func (p *Program) String() string {
	var buf bytes.Buffer
	for _, ins := range p.Instructions {
		buf.WriteString(ins.String())
		buf.WriteByte('\n')
	}
	fmt.Fprintf(&buf, "ret %d", p.Result)
	return buf.String()
}
