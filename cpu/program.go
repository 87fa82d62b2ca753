package cpu

import (
	"iter"
)

// PROGRAM_LIMIT is the number of instructions an 8-bit PC can address.
const PROGRAM_LIMIT = 256

// Opcode represents a line of assembled code with its source location and generated instruction.
type Opcode struct {
	LineNo    int
	Pc        int
	Words     []string
	Code      Code
	LinkLabel string
}

type Program struct {
	Opcodes []Opcode
}

// Debug returns the opcode assembled at pc, or nil if there is none.
func (prog *Program) Debug(pc uint8) (op *Opcode) {
	for n := range prog.Opcodes {
		if prog.Opcodes[n].Pc == int(pc) {
			op = &prog.Opcodes[n]
			break
		}
	}

	return
}

// Binary returns the raw program image.
func (prog *Program) Binary() (bins []uint8) {
	for _, code := range prog.Codes() {
		bytes := code.Bytes()
		bins = append(bins, bytes[:]...)
	}

	return
}

// Codes iterates over the PC and instruction of every opcode.
func (prog *Program) Codes() iter.Seq2[uint8, Code] {
	return func(yield func(pc uint8, code Code) bool) {
		for _, op := range prog.Opcodes {
			if !yield(uint8(op.Pc), op.Code) {
				return
			}
		}
	}
}
