// Package console provides the interactive full screen front end.
package console

import (
	"fmt"
	"strings"
	"sync"

	"github.com/jroimartin/gocui"
	"github.com/mgutz/ansi"

	"github.com/ezrec/tgs/io"
)

const (
	VIEW_DISPLAY = "display"
	VIEW_STATUS  = "status"

	STATUS_LIMIT = 64 // Status lines kept for the status view.
)

// Gui draws the display and takes button presses on a gocui screen.
//
// Render and Status may be called from any goroutine; the views are only
// drawn from the gocui main loop.
type Gui struct {
	Keypad *io.Keypad // Button latches fed by the key bindings.
	Color  string     // ansi style of lit segments. Empty for none.

	g *gocui.Gui

	mutex   sync.Mutex
	dp      [4]uint8
	status  []string
	pending bool // A redraw is queued on the main loop.
}

var _ io.Display = (*Gui)(nil)
var _ io.Buttons = (*Gui)(nil)

// NewGui installs the layout and key bindings on a gocui screen.
func NewGui(g *gocui.Gui, keypad *io.Keypad) (c *Gui, err error) {
	c = &Gui{
		Keypad: keypad,
		g:      g,
	}

	g.SetManagerFunc(c.layout)

	err = g.SetKeybinding("", gocui.KeyCtrlC, gocui.ModNone, quit)
	if err != nil {
		return
	}

	for _, key := range keypad.Keys {
		err = g.SetKeybinding("", key, gocui.ModNone, c.press(key))
		if err != nil {
			return
		}
	}

	return
}

// press returns the key binding handler for a keypad key.
func (c *Gui) press(key rune) func(g *gocui.Gui, v *gocui.View) error {
	return func(g *gocui.Gui, v *gocui.View) error {
		c.Keypad.Press(key)
		return nil
	}
}

// Render schedules a redraw of the display view.
func (c *Gui) Render(dp [4]uint8) (err error) {
	c.mutex.Lock()
	c.dp = dp
	c.mutex.Unlock()

	c.redraw()
	return
}

// Poll delegates to the keypad.
func (c *Gui) Poll(bt *[2]uint8) {
	c.Keypad.Poll(bt)
}

// Status appends a message to the status view.
func (c *Gui) Status(format string, args ...any) {
	c.mutex.Lock()
	c.status = append(c.status, fmt.Sprintf(format, args...))
	if len(c.status) > STATUS_LIMIT {
		c.status = c.status[len(c.status)-STATUS_LIMIT:]
	}
	c.mutex.Unlock()

	c.redraw()
}

// redraw queues a single layout pass on the main loop.
func (c *Gui) redraw() {
	c.mutex.Lock()
	pending := c.pending
	c.pending = true
	c.mutex.Unlock()

	if pending {
		return
	}

	c.g.Update(func(g *gocui.Gui) error {
		c.mutex.Lock()
		c.pending = false
		c.mutex.Unlock()
		return nil
	})
}

// gocui layout
func (c *Gui) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()

	c.mutex.Lock()
	defer c.mutex.Unlock()

	// up -> seven segment digits
	display, err := g.SetView(VIEW_DISPLAY, 0, 0, maxX-1, 4)
	if err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		display.Title = "TGS"
	}

	var lit io.Lit
	if len(c.Color) != 0 {
		lit = ansi.ColorFunc(c.Color)
	}
	display.Clear()
	for _, line := range io.Lines(c.dp, lit) {
		fmt.Fprintln(display, line)
	}

	// down -> status
	status, err := g.SetView(VIEW_STATUS, 0, 5, maxX-1, maxY-1)
	if err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		status.Title = "Status"
		status.Wrap = true
		status.Autoscroll = true
	}
	status.Clear()
	for _, line := range c.status {
		fmt.Fprintln(status, line)
	}

	return nil
}

func quit(g *gocui.Gui, v *gocui.View) error {
	return gocui.ErrQuit
}

// Write appends log output to the status view.
func (c *Gui) Write(p []byte) (n int, err error) {
	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		c.Status("%s", line)
	}

	n = len(p)
	return
}
