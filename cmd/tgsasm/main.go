// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ezrec/tgs/cpu"
	"github.com/ezrec/tgs/emulator"
	"github.com/ezrec/tgs/io"
)

// defines collects -D NAME=VALUE flags.
type defines map[string]string

func (d defines) String() string {
	var out []string
	for name, value := range d {
		out = append(out, name+"="+value)
	}
	return strings.Join(out, ",")
}

func (d defines) Set(text string) error {
	name, value, ok := strings.Cut(text, "=")
	if !ok || len(name) == 0 {
		return fmt.Errorf("%q is not NAME=VALUE", text)
	}
	d[name] = value
	return nil
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "Usage: %v [options] <source.tgs>\n", os.Args[0])
	fmt.Fprintf(flag.CommandLine.Output(), "       %v -d <rom.bin>\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	var output string
	var disassemble bool
	var verbose bool
	predefine := defines{}

	flag.StringVar(&output, "o", "", "Program image to write, default is the source with a .bin suffix")
	flag.BoolVar(&disassemble, "d", false, "Disassemble a program image to stdout")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.Var(predefine, "D", "Predefine an equate, NAME=VALUE")

	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	input := flag.Arg(0)

	inf, err := os.Open(input)
	if err != nil {
		log.Fatalf("%v: %v", input, err)
	}
	defer inf.Close()

	if disassemble {
		rom := &io.Rom{}
		err = rom.Load(inf)
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
		for pc, rec := range rom.Data {
			code := cpu.Code{Opcode: rec.Opcode, Left: rec.Left, Right: rec.Right}
			fmt.Printf("%02x: %02x %02x %02x    %v\n", pc, rec.Opcode, rec.Left, rec.Right, code)
		}
		return
	}

	emu := emulator.NewEmulator()

	asm := &cpu.Assembler{Verbose: verbose}
	for name, value := range emu.Defines() {
		asm.Predefine(name, value)
	}
	for name, value := range predefine {
		asm.Predefine(name, value)
	}

	prog, err := asm.Parse(inf)
	if err != nil {
		log.Fatalf("%v: %v", input, err)
	}

	emu.Load(prog)

	if len(output) == 0 {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".bin"
	}

	ouf, err := os.Create(output)
	if err != nil {
		log.Fatalf("%v: %v", output, err)
	}

	err = emu.Rom.Save(ouf)
	if err == nil {
		err = ouf.Close()
	}
	if err != nil {
		log.Fatalf("%v: %v", output, err)
	}

	if verbose {
		log.Printf("asm: %v: %v instructions", output, len(emu.Rom.Data))
	}
}
