// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"context"
	"fmt"
	"iter"
	"log"
	"maps"
	"time"

	"github.com/ezrec/tgs/cpu"
	"github.com/ezrec/tgs/io"
)

const (
	CLOCK_HZ     = 500_000          // Default clock rate.
	BURST_PERIOD = time.Millisecond // Throttle period for clock rates of 1kHz and up.
	FREE_CHECK   = 1024             // Ticks between cancellation checks when unthrottled.
)

var _emulator_defines = map[string]string{
	"CLOCK_HZ":  fmt.Sprintf("%v", CLOCK_HZ),
	"ROM_LIMIT": fmt.Sprintf("%v", io.ROM_LIMIT),
}

// Emulator state. CPU + ROM + peripherals.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Listing of the loaded program, if assembled.

	Rom     io.Rom     // Program image.
	Display io.Display // Display peripheral, may be nil.
	Buttons io.Buttons // Button peripheral, may be nil.

	Rate int // Instructions per second. Zero runs unthrottled.

	shown  bool     // Display has been rendered since reset.
	lastDp [4]uint8 // Display registers as last rendered.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:  cpu.NewCpu(),
		Rate: CLOCK_HZ,
	}

	return
}

// Defines returns an iterator over all of the assembler defines.
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	seqs := []iter.Seq2[string, string]{
		maps.All(_emulator_defines),
		cpu.Defines(),
		io.Defines(),
	}
	return func(yield func(string, string) bool) {
		for _, seq := range seqs {
			for key, value := range seq {
				if !yield(key, value) {
					return
				}
			}
		}
	}
}

// Load replaces the ROM with an assembled program.
func (emu *Emulator) Load(prog *cpu.Program) {
	emu.Program = prog
	emu.Rom.Data = emu.Rom.Data[:0]
	for _, code := range prog.Codes() {
		emu.Rom.Data = append(emu.Rom.Data, io.Record{Opcode: code.Opcode, Left: code.Left, Right: code.Right})
	}
}

// Reset the emulator state.
func (emu *Emulator) Reset() {
	if emu.Verbose {
		log.Printf("emulator: reset, %v instructions", len(emu.Rom.Data))
	}

	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()
	emu.shown = false
}

// LineNo returns the source line number of the instruction at the PC, if known.
func (emu *Emulator) LineNo() int {
	if emu.Program == nil {
		return 0
	}

	op := emu.Program.Debug(emu.Cpu.Pc())
	if op == nil {
		return 0
	}

	return op.LineNo
}

// Tick polls the buttons, executes the instruction at the PC, and refreshes
// the display if the display registers changed.
func (emu *Emulator) Tick() (err error) {
	pc := emu.Cpu.Pc()
	defer func() {
		if err != nil {
			err = &ErrRuntime{Pc: pc, Err: err}
		}
	}()

	if emu.Buttons != nil {
		emu.Cpu.UpdateButtons(emu.Buttons)
	}

	rec, ok := emu.Rom.Fetch(pc)
	if !ok {
		err = ErrPcRange
		return
	}

	_, err = emu.Cpu.Step(rec.Opcode, rec.Left, rec.Right)
	if err != nil {
		return
	}

	err = emu.refresh()
	return
}

// refresh renders the display if it has changed since the last render.
func (emu *Emulator) refresh() (err error) {
	if emu.Display == nil {
		return
	}

	dp := emu.Cpu.Registers.Dp
	if emu.shown && dp == emu.lastDp {
		return
	}

	err = emu.Cpu.UpdateDisplay(emu.Display)
	if err != nil {
		return
	}

	emu.shown = true
	emu.lastDp = dp
	return
}

// throttle spreads a clock rate over fixed periods. Ticks that do not
// divide evenly into the periods of a second are carried between periods.
type throttle struct {
	period time.Duration // Time between bursts.
	burst  int           // Ticks in every burst.
	extra  int           // Leftover ticks per second.
	per    int           // Periods per second.
	carry  int
}

// pace returns the throttle for the emulator clock rate.
func (emu *Emulator) pace() (th *throttle) {
	per := int(time.Second / BURST_PERIOD)
	if emu.Rate >= per {
		th = &throttle{
			period: BURST_PERIOD,
			burst:  emu.Rate / per,
			extra:  emu.Rate % per,
			per:    per,
		}
		return
	}

	th = &throttle{
		period: time.Second / time.Duration(emu.Rate),
		burst:  1,
		per:    emu.Rate,
	}
	return
}

// next returns the ticks to issue in the next period.
func (th *throttle) next() (ticks int) {
	ticks = th.burst
	th.carry += th.extra
	if th.carry >= th.per {
		th.carry -= th.per
		ticks++
	}
	return
}

// Run ticks the emulator until a fault, or until the context is done.
func (emu *Emulator) Run(ctx context.Context) (err error) {
	if emu.Rate <= 0 {
		for n := 0; ; n++ {
			if n%FREE_CHECK == 0 {
				err = ctx.Err()
				if err != nil {
					return
				}
			}
			err = emu.Tick()
			if err != nil {
				return
			}
		}
	}

	th := emu.pace()
	if emu.Verbose {
		log.Printf("emulator: %v Hz, %v ticks every %v", emu.Rate, th.burst, th.period)
	}

	ticker := time.NewTicker(th.period)
	defer ticker.Stop()

	for {
		for range th.next() {
			err = emu.Tick()
			if err != nil {
				return
			}
		}

		select {
		case <-ctx.Done():
			err = ctx.Err()
			return
		case <-ticker.C:
		}
	}
}
