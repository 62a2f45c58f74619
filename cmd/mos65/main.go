package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/mos65go/mos65/cpu"
	"github.com/mos65go/mos65/emulator"
)

func main() {
	var compile string
	var binary string
	var save string
	var limit int
	var verbose bool

	flag.StringVar(&compile, "c", "", ".asm file to assemble")
	flag.StringVar(&binary, "b", "", "raw binary image to load")
	flag.StringVar(&save, "s", "", "save the assembled image, do not execute")
	flag.IntVar(&limit, "n", 0, "step limit (0 for the default)")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	prog := &cpu.Program{}

	// Assemble a new image.
	if len(compile) != 0 {
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm := &cpu.Assembler{Verbose: verbose}
		prog, err = asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	}

	emu := emulator.NewEmulator()
	emu.Program = prog
	emu.Verbose = verbose
	emu.StepLimit = limit

	if len(save) != 0 {
		image, err := prog.Image()
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		err = os.WriteFile(save, image, 0o644)
		if err != nil {
			log.Fatalf("%v: %v", save, err)
		}
		return
	}

	err := emu.Reset()
	if err != nil {
		log.Fatal(err)
	}

	// A raw binary overlays the assembled image.
	if len(binary) != 0 {
		image, err := os.ReadFile(binary)
		if err != nil {
			log.Fatalf("%v: %v", binary, err)
		}
		if len(image) > len(emu.Memory) {
			log.Fatalf("%v: %v", binary, cpu.ErrImageTooLarge)
		}
		copy(emu.Memory, image)
	}

	err = emu.Run()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(emu.Registers.String())
}
