package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testProgram() *Program {
	return &Program{
		Opcodes: []Opcode{
			{LineNo: 1, Pc: 0, Words: []string{"mov", "r0", "0x10"},
				Code: MakeCode(OP_MOV, MODE_IMMEDIATE, uint8(REG_R0), 0x10)},
			{LineNo: 3, Pc: 1, Words: []string{"add", "r0", "r1"},
				Code: MakeCode(OP_ADD, MODE_REGISTER, uint8(REG_R0), uint8(REG_R1))},
			{LineNo: 4, Pc: 2, Words: []string{"br", "0"},
				Code: MakeCodeBranch(OP_BR, 0)},
		},
	}
}

func TestProgram_Debug(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	op := prog.Debug(0)
	assert.NotNil(op)
	assert.Equal(1, op.LineNo)

	op = prog.Debug(1)
	assert.NotNil(op)
	assert.Equal(3, op.LineNo)

	op = prog.Debug(2)
	assert.NotNil(op)
	assert.Equal(4, op.LineNo)

	assert.Nil(prog.Debug(3))
}

func TestProgram_Binary(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	assert.Equal([]uint8{
		0x61, 0x00, 0x10,
		0x10, 0x00, 0x01,
		0x50, 0x00, 0x00,
	}, prog.Binary())

	assert.Nil((&Program{}).Binary())
}

func TestProgram_Codes(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	var pcs []uint8
	for pc := range prog.Codes() {
		pcs = append(pcs, pc)
		if pc == 1 {
			break
		}
	}

	assert.Equal([]uint8{0, 1}, pcs)
}
