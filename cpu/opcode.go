package cpu

import (
	"fmt"
)

// CodeFamily is the operation family, selected by the opcode high nibble.
type CodeFamily int

const (
	FAMILY_ARITH  = CodeFamily(0x1) // add, sub
	FAMILY_SHIFT  = CodeFamily(0x2) // lsh, rsh
	FAMILY_LOGIC  = CodeFamily(0x3) // and, or, xor
	FAMILY_CMP    = CodeFamily(0x4) // cmp
	FAMILY_BRANCH = CodeFamily(0x5) // br, be, bne, bg, bl
	FAMILY_MOV    = CodeFamily(0x6) // mov
)

// CodeOp is a decoded operation.
//
// The value of each operation is its opcode with the addressing mode bit
// cleared.
type CodeOp uint8

const (
	OP_ADD = CodeOp(0b0001_0000) // add
	OP_SUB = CodeOp(0b0001_0010) // sub
	OP_LSH = CodeOp(0b0010_0000) // lsh
	OP_RSH = CodeOp(0b0010_0010) // rsh
	OP_AND = CodeOp(0b0011_0000) // and
	OP_OR  = CodeOp(0b0011_0010) // or
	OP_XOR = CodeOp(0b0011_0100) // xor
	OP_CMP = CodeOp(0b0100_0000) // cmp
	OP_BR  = CodeOp(0b0101_0000) // br
	OP_BE  = CodeOp(0b0101_0010) // be
	OP_BNE = CodeOp(0b0101_0100) // bne
	OP_BG  = CodeOp(0b0101_0110) // bg
	OP_BL  = CodeOp(0b0101_1000) // bl
	OP_MOV = CodeOp(0b0110_0000) // mov
)

// MODE_BIT is the opcode bit selecting the right operand addressing mode.
const MODE_BIT = 0b0000_0001

var opName = map[CodeOp]string{
	OP_ADD: "add",
	OP_SUB: "sub",
	OP_LSH: "lsh",
	OP_RSH: "rsh",
	OP_AND: "and",
	OP_OR:  "or",
	OP_XOR: "xor",
	OP_CMP: "cmp",
	OP_BR:  "br",
	OP_BE:  "be",
	OP_BNE: "bne",
	OP_BG:  "bg",
	OP_BL:  "bl",
	OP_MOV: "mov",
}

// Valid returns true if the operation is one of the defined operations.
func (op CodeOp) Valid() bool {
	_, ok := opName[op]
	return ok
}

// Family returns the operation family.
func (op CodeOp) Family() CodeFamily {
	return CodeFamily(op >> 4)
}

func (op CodeOp) String() string {
	name, ok := opName[op]
	if !ok {
		return fmt.Sprintf("op(0x%02x)", uint8(op))
	}
	return name
}

// CodeMode is the addressing mode of the right operand.
type CodeMode int

const (
	MODE_REGISTER  = CodeMode(0) // Right operand is a register address.
	MODE_IMMEDIATE = CodeMode(1) // Right operand is a literal value.
)

func (mode CodeMode) String() string {
	if mode == MODE_IMMEDIATE {
		return "immediate"
	}
	return "register"
}

// Code is a single three byte instruction.
type Code struct {
	Opcode uint8
	Left   uint8
	Right  uint8
}

// MakeCode encodes an instruction.
func MakeCode(op CodeOp, mode CodeMode, left, right uint8) Code {
	opcode := uint8(op)
	if mode == MODE_IMMEDIATE && op.Family() != FAMILY_BRANCH {
		opcode |= MODE_BIT
	}
	return Code{Opcode: opcode, Left: left, Right: right}
}

// MakeCodeBranch encodes a branch to a target PC.
func MakeCodeBranch(op CodeOp, target uint8) Code {
	return MakeCode(op, MODE_REGISTER, target, 0)
}

// Op decodes the operation, ignoring the addressing mode bit.
func (code Code) Op() (op CodeOp, err error) {
	op = CodeOp(code.Opcode &^ MODE_BIT)
	if !op.Valid() {
		err = ErrOpcodeInvalid
	}
	return
}

// Mode decodes the right operand addressing mode from the raw opcode.
func (code Code) Mode() CodeMode {
	if (code.Opcode & MODE_BIT) != 0 {
		return MODE_IMMEDIATE
	}
	return MODE_REGISTER
}

// Decode returns the operation and right operand addressing mode.
// The mode has no meaning for the branch family.
func (code Code) Decode() (op CodeOp, mode CodeMode, err error) {
	op, err = code.Op()
	if err != nil {
		return
	}
	mode = code.Mode()
	return
}

// Bytes returns the instruction image.
func (code Code) Bytes() [3]uint8 {
	return [3]uint8{code.Opcode, code.Left, code.Right}
}

// Assembles returns true if the mnemonic form of this instruction
// assembles back to the same three bytes.
func (code Code) Assembles() bool {
	op, mode, err := code.Decode()
	if err != nil {
		return false
	}

	if op.Family() == FAMILY_BRANCH {
		return mode == MODE_REGISTER && code.Right == 0
	}

	if !Register(code.Left).Valid() {
		return false
	}

	return mode == MODE_IMMEDIATE || Register(code.Right).Valid()
}

// String returns the assembly language representation of this instruction.
// Instructions with no exact mnemonic form are written as raw .byte records.
func (code Code) String() (out string) {
	if !code.Assembles() {
		out = fmt.Sprintf(".byte 0x%02x 0x%02x 0x%02x", code.Opcode, code.Left, code.Right)
		return
	}

	op, mode, _ := code.Decode()

	if op.Family() == FAMILY_BRANCH {
		out = fmt.Sprintf("%v 0x%02x", op, code.Left)
		return
	}

	var right string
	switch mode {
	case MODE_IMMEDIATE:
		right = fmt.Sprintf("0x%02x", code.Right)
	case MODE_REGISTER:
		right = Register(code.Right).String()
	}

	out = fmt.Sprintf("%v %v %v", op, Register(code.Left), right)
	return
}
