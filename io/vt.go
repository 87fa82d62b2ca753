package io

import (
	"fmt"
	"io"
	"strings"

	"github.com/mgutz/ansi"
)

const (
	VT_HOME        = "\x1b[0;0H"
	VT_CLEAR       = "\x1b[2J"
	VT_HIDE_CURSOR = "\x1b[?25l"
	VT_SHOW_CURSOR = "\x1b[?25h"
)

// Vt renders the display on an ANSI terminal, redrawing in place.
type Vt struct {
	Output io.Writer
	Color  string // ansi style of lit segments, such as "red+b". Empty for none.
}

var _ Display = (*Vt)(nil)

// Init hides the cursor and clears the screen.
func (vt *Vt) Init() (err error) {
	_, err = io.WriteString(vt.Output, VT_HIDE_CURSOR+VT_CLEAR)
	return
}

// Close restores the cursor.
func (vt *Vt) Close() (err error) {
	_, err = io.WriteString(vt.Output, VT_SHOW_CURSOR)
	return
}

// Render homes the cursor and draws the digits.
func (vt *Vt) Render(dp [4]uint8) (err error) {
	var lit Lit
	if len(vt.Color) != 0 {
		lit = ansi.ColorFunc(vt.Color)
	}

	lines := Lines(dp, lit)
	_, err = fmt.Fprintf(vt.Output, "%s%s\n", VT_HOME, strings.Join(lines[:], "\n"))
	return
}
