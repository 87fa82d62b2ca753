package cpu

import (
	"errors"
	"fmt"
	"log"

	"github.com/ezrec/tgs/io"
)

// Display is the display output port.
type Display io.Display

// Buttons is the button input port.
type Buttons io.Buttons

// Cpu is the simulation context for the TGS machine.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Registers RegisterFile // Machine state.

	Ticks int // Instructions executed.
}

// NewCpu creates a new CPU with all registers cleared.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{}

	return
}

// Reset the CPU state.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Registers.Reset()
	cpu.Ticks = 0
}

// Pc returns the current program counter.
func (cpu *Cpu) Pc() uint8 {
	return cpu.Registers.Pc
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	rf := &cpu.Registers

	text += fmt.Sprintf("% 5s: %02X\n", "pc", rf.Pc)
	text += fmt.Sprintf("% 5s: %02X\n", "cr", rf.Cr)
	for n, val := range rf.Gp {
		text += fmt.Sprintf("% 5s: %02X\n", fmt.Sprintf("r%d", n), val)
	}
	for n, val := range rf.Bt {
		text += fmt.Sprintf("% 5s: %02X\n", fmt.Sprintf("bt%d", n), val)
	}
	for n, val := range rf.Dp {
		text += fmt.Sprintf("% 5s: %02X\n", fmt.Sprintf("dp%d", n), val)
	}

	return
}

// UpdateDisplay sends the display registers to the display port.
func (cpu *Cpu) UpdateDisplay(display Display) (err error) {
	return display.Render(cpu.Registers.Dp)
}

// UpdateButtons lets the button port refresh the button registers.
func (cpu *Cpu) UpdateButtons(buttons Buttons) {
	buttons.Poll(&cpu.Registers.Bt)
}

// Step executes a single instruction and returns the PC of the next
// instruction to fetch.
//
// On error the register file is left exactly as it was before the call.
func (cpu *Cpu) Step(opcode, left, right uint8) (pc uint8, err error) {
	return cpu.Execute(Code{Opcode: opcode, Left: left, Right: right})
}

// Execute executes a single decoded instruction.
func (cpu *Cpu) Execute(code Code) (pc uint8, err error) {
	defer func() {
		if err != nil {
			pc = cpu.Registers.Pc
			err = errors.Join(ErrOpcode(code), err)
		}
	}()
	if cpu.Verbose {
		log.Printf("cpu: %02x: %v", cpu.Registers.Pc, code)
	}

	op, mode, err := code.Decode()
	if err != nil {
		return
	}

	// All writes go to a scratch copy, committed once the whole
	// instruction has succeeded.
	next := cpu.Registers
	next.Pc++

	if op.Family() == FAMILY_BRANCH {
		if op.Taken(next.Cr) {
			next.Pc = code.Left
		}
	} else {
		var value uint8
		value, err = next.operand(mode, code.Right)
		if err != nil {
			return
		}

		dst := Register(code.Left)
		switch op.Family() {
		case FAMILY_MOV:
			err = next.Store(dst, value)
		case FAMILY_CMP:
			var input uint8
			input, err = next.Load(dst)
			if err != nil {
				return
			}
			next.Cr = Compare(input, value)
		default:
			var input uint8
			input, err = next.Load(dst)
			if err != nil {
				return
			}
			err = next.Store(dst, Alu(op, input, value))
		}
		if err != nil {
			return
		}
	}

	cpu.Registers = next
	cpu.Ticks++

	pc = cpu.Registers.Pc
	return
}

// operand resolves the right operand per the addressing mode.
func (rf *RegisterFile) operand(mode CodeMode, right uint8) (value uint8, err error) {
	switch mode {
	case MODE_IMMEDIATE:
		value = right
	case MODE_REGISTER:
		value, err = rf.Load(Register(right))
	}
	return
}
