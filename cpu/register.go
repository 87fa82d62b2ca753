package cpu

import (
	"fmt"
	"iter"
	"maps"
	"strings"
)

// Register is an address in the unified register space.
type Register uint8

const (
	REG_R0  = Register(0x00) // r0
	REG_R1  = Register(0x01) // r1
	REG_R2  = Register(0x02) // r2
	REG_R3  = Register(0x03) // r3
	REG_R4  = Register(0x04) // r4
	REG_R5  = Register(0x05) // r5
	REG_R6  = Register(0x06) // r6
	REG_R7  = Register(0x07) // r7
	REG_BT0 = Register(0x10) // bt0
	REG_BT1 = Register(0x11) // bt1
	REG_DP0 = Register(0x12) // dp0
	REG_DP1 = Register(0x13) // dp1
	REG_DP2 = Register(0x14) // dp2
	REG_DP3 = Register(0x15) // dp3
	REG_PC  = Register(0x16) // pc
	REG_CR  = Register(0x17) // cr
)

// Bank is the storage class a register address resolves to.
type Bank int

const (
	BANK_GP = Bank(iota) // General purpose.
	BANK_BT              // Button input.
	BANK_DP              // Display output.
	BANK_PC              // Program counter.
	BANK_CR              // Condition result.
)

// Slot is a resolved register address: a bank and an index within it.
type Slot struct {
	Bank  Bank
	Index int
	Name  string
}

var registerSlot = map[Register]Slot{
	REG_R0:  {BANK_GP, 0, "r0"},
	REG_R1:  {BANK_GP, 1, "r1"},
	REG_R2:  {BANK_GP, 2, "r2"},
	REG_R3:  {BANK_GP, 3, "r3"},
	REG_R4:  {BANK_GP, 4, "r4"},
	REG_R5:  {BANK_GP, 5, "r5"},
	REG_R6:  {BANK_GP, 6, "r6"},
	REG_R7:  {BANK_GP, 7, "r7"},
	REG_BT0: {BANK_BT, 0, "bt0"},
	REG_BT1: {BANK_BT, 1, "bt1"},
	REG_DP0: {BANK_DP, 0, "dp0"},
	REG_DP1: {BANK_DP, 1, "dp1"},
	REG_DP2: {BANK_DP, 2, "dp2"},
	REG_DP3: {BANK_DP, 3, "dp3"},
	REG_PC:  {BANK_PC, 0, "pc"},
	REG_CR:  {BANK_CR, 0, "cr"},
}

// registerName is the reverse of registerSlot, for the assembler.
var registerName = func() map[string]Register {
	names := make(map[string]Register, len(registerSlot))
	for reg, slot := range registerSlot {
		names[slot.Name] = reg
	}
	return names
}()

// Slot resolves the register address.
func (reg Register) Slot() (slot Slot, ok bool) {
	slot, ok = registerSlot[reg]
	return
}

// Valid returns true if the address is in the register map.
func (reg Register) Valid() bool {
	_, ok := registerSlot[reg]
	return ok
}

func (reg Register) String() string {
	slot, ok := registerSlot[reg]
	if !ok {
		return fmt.Sprintf("0x%02x", uint8(reg))
	}
	return slot.Name
}

// RegisterFile holds all machine state.
type RegisterFile struct {
	Gp [8]uint8 // General purpose registers.
	Bt [2]uint8 // Button registers, written by the input peripheral.
	Dp [4]uint8 // Display registers, read by the display peripheral.
	Pc uint8    // Program counter.
	Cr uint8    // Condition result.
}

// cell returns the storage for a register address.
func (rf *RegisterFile) cell(reg Register) (value *uint8, err error) {
	slot, ok := registerSlot[reg]
	if !ok {
		err = ErrRegister(reg)
		return
	}

	switch slot.Bank {
	case BANK_GP:
		value = &rf.Gp[slot.Index]
	case BANK_BT:
		value = &rf.Bt[slot.Index]
	case BANK_DP:
		value = &rf.Dp[slot.Index]
	case BANK_PC:
		value = &rf.Pc
	case BANK_CR:
		value = &rf.Cr
	}

	return
}

// Load reads a register.
func (rf *RegisterFile) Load(reg Register) (value uint8, err error) {
	cell, err := rf.cell(reg)
	if err != nil {
		return
	}

	value = *cell
	return
}

// Store writes a register.
func (rf *RegisterFile) Store(reg Register, value uint8) (err error) {
	cell, err := rf.cell(reg)
	if err != nil {
		return
	}

	*cell = value
	return
}

// Reset clears all registers.
func (rf *RegisterFile) Reset() {
	*rf = RegisterFile{}
}

var _register_defines = func() map[string]string {
	defines := map[string]string{}
	for reg, slot := range registerSlot {
		defines[fmt.Sprintf("REG_%s", strings.ToUpper(slot.Name))] = fmt.Sprintf("0x%02x", uint8(reg))
	}
	return defines
}()

// Defines returns assembler equates for the register addresses.
func Defines() iter.Seq2[string, string] {
	return maps.All(_register_defines)
}
