package io

import (
	"bufio"
	"errors"
	"io"
	"sync"
	"time"
)

const (
	DEFAULT_KEYS  = "zx"                   // Keys bound to bt0 and bt1.
	KEY_INTERRUPT = '\x03'                 // Ctrl-C, ends Feed on a raw terminal.
	HOLD_TIME     = 100 * time.Millisecond // How long a press reads as held.
)

// Keypad holds key presses as button state.
//
// A press reads as held for Hold after it arrives, and is seen by at least
// one poll even if Hold has already elapsed. Presses may arrive from
// another goroutine than the one polling.
type Keypad struct {
	Keys [2]rune       // Key bound to each button.
	Hold time.Duration // How long a press reads as held.

	mutex   sync.Mutex
	now     func() time.Time
	until   [2]time.Time
	pending [2]bool
}

var _ Buttons = (*Keypad)(nil)

// NewKeypad creates a keypad from a two character key binding.
func NewKeypad(keys string) (kp *Keypad, err error) {
	runes := []rune(keys)
	if len(runes) != 2 {
		err = ErrKeypadKeys
		return
	}

	kp = &Keypad{Hold: HOLD_TIME}
	copy(kp.Keys[:], runes)
	return
}

func (kp *Keypad) clock() time.Time {
	if kp.now == nil {
		return time.Now()
	}
	return kp.now()
}

// Press holds the button bound to key. Returns false if no button is bound.
func (kp *Keypad) Press(key rune) (ok bool) {
	kp.mutex.Lock()
	defer kp.mutex.Unlock()

	now := kp.clock()
	for n, bound := range kp.Keys {
		if bound == key {
			kp.until[n] = now.Add(kp.Hold)
			kp.pending[n] = true
			ok = true
		}
	}

	return
}

// Poll writes the held buttons.
func (kp *Keypad) Poll(bt *[2]uint8) {
	kp.mutex.Lock()
	defer kp.mutex.Unlock()

	now := kp.clock()
	for n := range kp.Keys {
		bt[n] = 0
		if kp.pending[n] || now.Before(kp.until[n]) {
			bt[n] = 1
		}
	}
	clear(kp.pending[:])
}

// Feed presses keys read from an input stream until it ends, or until
// KEY_INTERRUPT is read.
func (kp *Keypad) Feed(input io.Reader) (err error) {
	reader := bufio.NewReader(input)
	for {
		var key rune
		key, _, err = reader.ReadRune()
		if errors.Is(err, io.EOF) {
			err = nil
			return
		}
		if err != nil {
			return
		}
		if key == KEY_INTERRUPT {
			err = ErrInterrupt
			return
		}
		kp.Press(key)
	}
}
