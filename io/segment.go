package io

import (
	"fmt"
	"iter"
	"maps"
	"strings"
)

// Segment bits, clockwise from the top, then the middle bar.
//
//	 a
//	f b
//	 g
//	e c
//	 d
const (
	SEG_A = uint8(1 << 0) // Top.
	SEG_B = uint8(1 << 1) // Upper right.
	SEG_C = uint8(1 << 2) // Lower right.
	SEG_D = uint8(1 << 3) // Bottom.
	SEG_E = uint8(1 << 4) // Lower left.
	SEG_F = uint8(1 << 5) // Upper left.
	SEG_G = uint8(1 << 6) // Middle.
)

// DIGITS is the number of display digits.
const DIGITS = 4

// Digit is the segment pattern of each decimal digit, 0 through 9.
var Digit = [10]uint8{
	SEG_A | SEG_B | SEG_C | SEG_D | SEG_E | SEG_F,
	SEG_B | SEG_C,
	SEG_A | SEG_B | SEG_D | SEG_E | SEG_G,
	SEG_A | SEG_B | SEG_C | SEG_D | SEG_G,
	SEG_B | SEG_C | SEG_F | SEG_G,
	SEG_A | SEG_C | SEG_D | SEG_F | SEG_G,
	SEG_A | SEG_C | SEG_D | SEG_E | SEG_F | SEG_G,
	SEG_A | SEG_B | SEG_C,
	SEG_A | SEG_B | SEG_C | SEG_D | SEG_E | SEG_F | SEG_G,
	SEG_A | SEG_B | SEG_C | SEG_D | SEG_F | SEG_G,
}

var _segment_defines = func() map[string]string {
	defines := map[string]string{
		"SEG_A": fmt.Sprintf("0x%02x", SEG_A),
		"SEG_B": fmt.Sprintf("0x%02x", SEG_B),
		"SEG_C": fmt.Sprintf("0x%02x", SEG_C),
		"SEG_D": fmt.Sprintf("0x%02x", SEG_D),
		"SEG_E": fmt.Sprintf("0x%02x", SEG_E),
		"SEG_F": fmt.Sprintf("0x%02x", SEG_F),
		"SEG_G": fmt.Sprintf("0x%02x", SEG_G),
	}
	for n, glyph := range Digit {
		defines[fmt.Sprintf("DIGIT_%d", n)] = fmt.Sprintf("0x%02x", glyph)
	}
	return defines
}()

// Defines returns an iter of assembler defines for the display.
func Defines() iter.Seq2[string, string] {
	return maps.All(_segment_defines)
}

// Lit is a function that decorates a lit segment.
type Lit func(segment string) string

// Glyph returns the three text rows of a single digit.
func Glyph(value uint8, lit Lit) (rows [3]string) {
	seg := func(mask uint8, on string) string {
		if (value & mask) == 0 {
			return " "
		}
		if lit != nil {
			return lit(on)
		}
		return on
	}

	rows[0] = " " + seg(SEG_A, "_") + " "
	rows[1] = seg(SEG_F, "|") + seg(SEG_G, "_") + seg(SEG_B, "|")
	rows[2] = seg(SEG_E, "|") + seg(SEG_D, "_") + seg(SEG_C, "|")

	return
}

// Lines renders the display registers as three text rows.
// dp[3] is the leftmost digit.
func Lines(dp [4]uint8, lit Lit) (lines [3]string) {
	var cols [3][]string
	for n := DIGITS - 1; n >= 0; n-- {
		rows := Glyph(dp[n], lit)
		for r := range rows {
			cols[r] = append(cols[r], rows[r])
		}
	}

	for r := range lines {
		lines[r] = " " + strings.Join(cols[r], " ")
	}

	return
}
