// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/jroimartin/gocui"
	"github.com/mattn/go-isatty"

	"github.com/ezrec/tgs/console"
	"github.com/ezrec/tgs/emulator"
	"github.com/ezrec/tgs/io"
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "Usage: %v [options] <rom.bin>\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	var verbose bool
	var hz int
	var plain bool
	var color string
	var keys string

	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.IntVar(&hz, "hz", emulator.CLOCK_HZ, "Clock rate, 0 for unthrottled")
	flag.BoolVar(&plain, "plain", false, "Plain ANSI display, even on a terminal")
	flag.StringVar(&color, "color", "", "ansi style of lit segments, such as red+b")
	flag.StringVar(&keys, "keys", io.DEFAULT_KEYS, "Keys for bt0 and bt1")

	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	rom := flag.Arg(0)

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	emu.Rate = hz

	inf, err := os.Open(rom)
	if err != nil {
		log.Fatalf("%v: %v", rom, err)
	}
	err = emu.Rom.Load(inf)
	inf.Close()
	if err != nil {
		log.Fatalf("%v: %v", rom, err)
	}

	keypad, err := io.NewKeypad(keys)
	if err != nil {
		log.Fatalf("-keys %v: %v", keys, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !plain && isatty.IsTerminal(os.Stdout.Fd()) {
		err = runGui(ctx, emu, keypad, color)
	} else {
		err = runVt(ctx, emu, keypad, color)
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		stop()
		log.Fatalf("%v: %v", rom, err)
	}
}

// runVt runs with the ANSI display on stdout, and keys read from stdin.
// A terminal on stdin is put in raw mode so keys arrive without Enter.
func runVt(ctx context.Context, emu *emulator.Emulator, keypad *io.Keypad, color string) (err error) {
	vt := &io.Vt{Output: os.Stdout, Color: color}
	err = vt.Init()
	if err != nil {
		return
	}
	defer vt.Close()

	fd := int(os.Stdin.Fd())
	if isatty.IsTerminal(os.Stdin.Fd()) {
		var state *readline.State
		state, err = readline.MakeRaw(fd)
		if err != nil {
			return
		}
		defer readline.Restore(fd, state)
	}

	emu.Display = vt
	emu.Buttons = keypad

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		if errors.Is(keypad.Feed(os.Stdin), io.ErrInterrupt) {
			cancel()
		}
	}()

	emu.Reset()
	err = emu.Run(ctx)
	return
}

// runGui runs with the gocui front end. A fault stays on screen until Ctrl-C.
func runGui(ctx context.Context, emu *emulator.Emulator, keypad *io.Keypad, color string) (err error) {
	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return
	}
	defer g.Close()

	gui, err := console.NewGui(g, keypad)
	if err != nil {
		return
	}
	gui.Color = color

	if emu.Verbose {
		log.SetOutput(gui)
		defer log.SetOutput(os.Stderr)
	}

	emu.Display = gui
	emu.Buttons = gui

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		emu.Reset()
		gui.Status("running, keys %q for bt0 and bt1, Ctrl-C to quit", string(keypad.Keys[:]))
		err := emu.Run(ctx)
		switch {
		case errors.Is(err, context.Canceled):
			g.Update(func(g *gocui.Gui) error { return gocui.ErrQuit })
		case err != nil:
			gui.Status("halted: %v", err)
			gui.Status("%v", emu.Cpu.String())
		}
		done <- err
	}()

	err = g.MainLoop()
	cancel()
	run_err := <-done

	if err != nil && err != gocui.ErrQuit {
		return
	}

	err = run_err
	return
}
