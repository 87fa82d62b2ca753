package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCpu(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()

	assert.False(cpu.Verbose)
	assert.Equal(RegisterFile{}, cpu.Registers)
	assert.Equal(uint8(0), cpu.Pc())
}

// exec executes a code and fails the test on error.
func exec(t *testing.T, cpu *Cpu, code Code) (pc uint8) {
	pc, err := cpu.Execute(code)
	if err != nil {
		t.Fatalf("%v: %v", code, err)
	}
	return
}

func TestCpu_Alu(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		code   Code
		before uint8
		right  uint8
		after  uint8
	}){
		{"add_reg", MakeCode(OP_ADD, MODE_REGISTER, 0, 1), 0xf0, 0x20, 0x10},
		{"add_imm", MakeCode(OP_ADD, MODE_IMMEDIATE, 0, 0x01), 0xff, 0, 0x00},
		{"sub_reg", MakeCode(OP_SUB, MODE_REGISTER, 0, 1), 0x03, 0x05, 0xfe},
		{"sub_imm", MakeCode(OP_SUB, MODE_IMMEDIATE, 0, 0x01), 0x10, 0, 0x0f},
		{"lsh_reg", MakeCode(OP_LSH, MODE_REGISTER, 0, 1), 0x81, 0x01, 0x02},
		{"lsh_imm", MakeCode(OP_LSH, MODE_IMMEDIATE, 0, 0x08), 0xff, 0, 0x00},
		{"rsh_reg", MakeCode(OP_RSH, MODE_REGISTER, 0, 1), 0x81, 0x01, 0x40},
		{"rsh_imm", MakeCode(OP_RSH, MODE_IMMEDIATE, 0, 0x04), 0xf0, 0, 0x0f},
		{"and_reg", MakeCode(OP_AND, MODE_REGISTER, 0, 1), 0xf0, 0x3c, 0x30},
		{"or_imm", MakeCode(OP_OR, MODE_IMMEDIATE, 0, 0x0f), 0xf0, 0, 0xff},
		{"xor_reg", MakeCode(OP_XOR, MODE_REGISTER, 0, 1), 0xff, 0x0f, 0xf0},
	}

	for _, entry := range table {
		cpu := NewCpu()
		cpu.Registers.Gp[0] = entry.before
		cpu.Registers.Gp[1] = entry.right

		pc := exec(t, cpu, entry.code)

		assert.Equal(uint8(1), pc, entry.name)
		assert.Equal(entry.after, cpu.Registers.Gp[0], entry.name)
		assert.Equal(entry.right, cpu.Registers.Gp[1], entry.name)
		assert.Equal(uint8(0), cpu.Registers.Cr, entry.name)
		assert.Equal(1, cpu.Ticks, entry.name)
	}
}

func TestCpu_NonBranchAdvances(t *testing.T) {
	assert := assert.New(t)

	codes := []Code{
		MakeCode(OP_ADD, MODE_IMMEDIATE, uint8(REG_R1), 3),
		MakeCode(OP_SUB, MODE_REGISTER, uint8(REG_R2), uint8(REG_R3)),
		MakeCode(OP_LSH, MODE_IMMEDIATE, uint8(REG_DP0), 1),
		MakeCode(OP_RSH, MODE_REGISTER, uint8(REG_BT0), uint8(REG_CR)),
		MakeCode(OP_AND, MODE_IMMEDIATE, uint8(REG_R7), 0x0f),
		MakeCode(OP_OR, MODE_REGISTER, uint8(REG_DP3), uint8(REG_PC)),
		MakeCode(OP_XOR, MODE_IMMEDIATE, uint8(REG_CR), 0xff),
		MakeCode(OP_CMP, MODE_REGISTER, uint8(REG_R0), uint8(REG_R1)),
		MakeCode(OP_MOV, MODE_IMMEDIATE, uint8(REG_DP1), 0x7f),
	}

	for _, p := range []uint8{0, 1, 0x7f, 0xfe, 0xff} {
		for _, code := range codes {
			cpu := NewCpu()
			cpu.Registers.Pc = p
			pc := exec(t, cpu, code)
			assert.Equal(p+1, pc, "%v at 0x%02x", code, p)
			assert.Equal(p+1, cpu.Pc(), "%v at 0x%02x", code, p)
		}
	}
}

func TestCpu_BranchAlways(t *testing.T) {
	assert := assert.New(t)

	for n := range 256 {
		cpu := NewCpu()
		cpu.Registers.Cr = uint8(n)
		cpu.Registers.Pc = 0x40
		pc := exec(t, cpu, MakeCodeBranch(OP_BR, 0x21))
		assert.Equal(uint8(0x21), pc)
	}
}

func TestCpu_BranchIgnoresRight(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()

	// Right operand is an invalid register, but branches never read it.
	pc, err := cpu.Step(0x51, 0x09, 0xee)
	assert.NoError(err)
	assert.Equal(uint8(0x09), pc)

	pc, err = cpu.Step(0x53, 0x30, 0xee)
	assert.NoError(err)
	assert.Equal(uint8(0x30), pc)
}

func TestCpu_Compare(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name  string
		a, b  uint8
		cr    uint8
		taken map[CodeOp]bool
	}){
		{"equal", 5, 5, 0, map[CodeOp]bool{OP_BE: true, OP_BNE: false, OP_BG: true, OP_BL: false}},
		{"greater", 10, 3, 7, map[CodeOp]bool{OP_BE: false, OP_BNE: true, OP_BG: true, OP_BL: false}},
		{"less", 3, 10, 249, map[CodeOp]bool{OP_BE: false, OP_BNE: true, OP_BG: false, OP_BL: true}},
	}

	for _, entry := range table {
		for op, taken := range entry.taken {
			cpu := NewCpu()
			cpu.Registers.Gp[0] = entry.a
			cpu.Registers.Gp[1] = entry.b

			exec(t, cpu, MakeCode(OP_CMP, MODE_REGISTER, uint8(REG_R0), uint8(REG_R1)))

			assert.Equal(entry.cr, cpu.Registers.Cr, entry.name)
			// Compare does not write back.
			assert.Equal(entry.a, cpu.Registers.Gp[0], entry.name)
			assert.Equal(entry.b, cpu.Registers.Gp[1], entry.name)

			pc := exec(t, cpu, MakeCodeBranch(op, 0x80))
			if taken {
				assert.Equal(uint8(0x80), pc, "%v %v", entry.name, op)
			} else {
				assert.Equal(uint8(2), pc, "%v %v", entry.name, op)
			}
		}
	}
}

func TestCpu_CompareImmediate(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.Registers.Gp[4] = 0x10

	exec(t, cpu, MakeCode(OP_CMP, MODE_IMMEDIATE, uint8(REG_R4), 0x11))
	assert.Equal(uint8(0xff), cpu.Registers.Cr)
	assert.Equal(uint8(0x10), cpu.Registers.Gp[4])
}

func TestCpu_MovImmediate(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	// Would fault if 0x42 were treated as a register address.
	pc, err := cpu.Step(0x61, 0x02, 0x42)
	assert.NoError(err)
	assert.Equal(uint8(1), pc)
	assert.Equal(uint8(0x42), cpu.Registers.Gp[2])

	cpu.Registers.Bt[1] = 0x99
	pc, err = cpu.Step(0x60, 0x14, 0x11)
	assert.NoError(err)
	assert.Equal(uint8(2), pc)
	assert.Equal(uint8(0x99), cpu.Registers.Dp[2])
}

func TestCpu_ProgramCounterRegister(t *testing.T) {
	assert := assert.New(t)

	// Writing pc overrides the increment.
	cpu := NewCpu()
	cpu.Registers.Pc = 0x10
	pc := exec(t, cpu, MakeCode(OP_MOV, MODE_IMMEDIATE, uint8(REG_PC), 0x05))
	assert.Equal(uint8(0x05), pc)

	// Reading pc observes the incremented value.
	cpu.Registers.Pc = 0x10
	exec(t, cpu, MakeCode(OP_MOV, MODE_REGISTER, uint8(REG_R0), uint8(REG_PC)))
	assert.Equal(uint8(0x11), cpu.Registers.Gp[0])

	// Relative jump.
	cpu.Registers.Pc = 0x10
	pc = exec(t, cpu, MakeCode(OP_ADD, MODE_IMMEDIATE, uint8(REG_PC), 0x03))
	assert.Equal(uint8(0x14), pc)

	// Wrap around.
	cpu.Registers.Pc = 0xff
	pc = exec(t, cpu, MakeCode(OP_MOV, MODE_IMMEDIATE, uint8(REG_R0), 0))
	assert.Equal(uint8(0x00), pc)
}

func TestCpu_Fault(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name  string
		code  Code
		fault error
	}){
		{"opcode_ff", Code{0xff, 0x00, 0x00}, ErrOpcodeInvalid},
		{"opcode_00", Code{0x00, 0x00, 0x00}, ErrOpcodeInvalid},
		{"opcode_70", Code{0x70, 0x00, 0x00}, ErrOpcodeInvalid},
		{"left_add", MakeCode(OP_ADD, MODE_IMMEDIATE, 0x08, 1), ErrRegisterInvalid},
		{"left_mov", MakeCode(OP_MOV, MODE_IMMEDIATE, 0x18, 1), ErrRegisterInvalid},
		{"left_cmp", MakeCode(OP_CMP, MODE_IMMEDIATE, 0xff, 1), ErrRegisterInvalid},
		{"right_sub", MakeCode(OP_SUB, MODE_REGISTER, 0x00, 0x0f), ErrRegisterInvalid},
		{"right_mov", MakeCode(OP_MOV, MODE_REGISTER, 0x00, 0x20), ErrRegisterInvalid},
	}

	for _, entry := range table {
		cpu := NewCpu()
		for n := range cpu.Registers.Gp {
			cpu.Registers.Gp[n] = uint8(0x11 * n)
		}
		cpu.Registers.Bt = [2]uint8{1, 0}
		cpu.Registers.Dp = [4]uint8{0x3f, 0x06, 0x5b, 0x4f}
		cpu.Registers.Pc = 0x33
		cpu.Registers.Cr = 0x80
		before := cpu.Registers

		pc, err := cpu.Execute(entry.code)
		assert.ErrorIs(err, entry.fault, entry.name)
		assert.True(errors.Is(err, ErrOpcode{}), entry.name)
		assert.Equal(uint8(0x33), pc, entry.name)
		assert.Equal(before, cpu.Registers, entry.name)
		assert.Equal(0, cpu.Ticks, entry.name)
	}
}

func TestCpu_FaultMessage(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	_, err := cpu.Step(0x10, 0x18, 0x00)
	assert.ErrorContains(err, "bad instruction 10 18 00")
	assert.ErrorContains(err, "register 0x18 invalid")

	var reg ErrRegister
	assert.True(errors.As(err, &reg))
	assert.Equal(ErrRegister(0x18), reg)
}

func TestCpu_Ports(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.Registers.Dp = [4]uint8{1, 2, 3, 4}

	display := &testDisplay{}
	assert.NoError(cpu.UpdateDisplay(display))
	assert.Equal([][4]uint8{{1, 2, 3, 4}}, display.frames)

	cpu.UpdateButtons(testButtons{1, 0})
	assert.Equal([2]uint8{1, 0}, cpu.Registers.Bt)

	exec(t, cpu, MakeCode(OP_MOV, MODE_REGISTER, uint8(REG_R0), uint8(REG_BT0)))
	assert.Equal(uint8(1), cpu.Registers.Gp[0])
}

func TestCpu_Reset(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	exec(t, cpu, MakeCode(OP_MOV, MODE_IMMEDIATE, uint8(REG_R5), 0x55))
	assert.Equal(1, cpu.Ticks)

	cpu.Reset()
	assert.Equal(RegisterFile{}, cpu.Registers)
	assert.Equal(0, cpu.Ticks)
}

func TestCpu_String(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.Registers.Gp[3] = 0xab
	cpu.Registers.Dp[1] = 0x3f

	text := cpu.String()
	assert.Contains(text, "   pc: 00\n")
	assert.Contains(text, "   r3: AB\n")
	assert.Contains(text, "  dp1: 3F\n")
}

type testDisplay struct {
	frames [][4]uint8
}

func (td *testDisplay) Render(dp [4]uint8) error {
	td.frames = append(td.frames, dp)
	return nil
}

type testButtons [2]uint8

func (tb testButtons) Poll(bt *[2]uint8) {
	*bt = tb
}
