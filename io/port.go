// Package io provides the peripherals of the TGS machine.
// It includes the display and button ports consumed by the emulator,
// the seven-segment font and its text rendering, an ANSI terminal
// display (Vt), a keyboard driven button pad (Keypad), and the program
// image (Rom).
package io

// Display defines the interface for the display output peripheral.
type Display interface {
	// Render shows the four display registers. Bits 0-6 of each
	// register drive the segments of one digit, bit 7 is unused.
	Render(dp [4]uint8) error
}

// Buttons defines the interface for the button input peripheral.
type Buttons interface {
	// Poll writes the press state, 0 or 1, of each button.
	Poll(bt *[2]uint8)
}
