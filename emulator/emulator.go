// Package emulator wraps a ComputerState in a full machine: a complete
// address space, reset behavior, a halt convention, and source mapping
// back to the assembled program.
package emulator

import (
	"fmt"
	"iter"
	"maps"

	"github.com/mos65go/mos65/cpu"
	"github.com/mos65go/mos65/internal"
)

const (
	MEMORY_SIZE     = cpu.MEMORY_LIMIT // Full address space, in bytes.
	RESET_STACK     = 0xfd             // Stack pointer after reset.
	DEFAULT_MAXIMUM = 1 << 20          // Default step limit for Run.
)

var _emulator_defines = map[string]string{
	"MEMORY_SIZE": fmt.Sprintf("%v", MEMORY_SIZE),
	"RESET_STACK": fmt.Sprintf("%#v", uint8(RESET_STACK)),
}

// Emulator state. CPU plus the program listing it was loaded from.
type Emulator struct {
	Verbose            bool         // If set, enables verbose logging.
	*cpu.ComputerState              // Reference to the CPU simulation.
	Program            *cpu.Program // Reference to the currently running program listing.

	StepLimit int // Maximum steps per Run; DEFAULT_MAXIMUM when zero.
	Steps     int // Steps executed since the last reset.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Program: &cpu.Program{},
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		cpu.Defines(),
	)
}

// Reset loads the program into a full address space and brings the
// machine to its power-on state: stack pointer at RESET_STACK,
// interrupts disabled, and control at the reset vector. A program whose
// image leaves the reset vector empty starts at its origin instead.
func (emu *Emulator) Reset() (err error) {
	image, err := emu.Program.Image()
	if err != nil {
		return
	}

	memory := make([]byte, MEMORY_SIZE)
	copy(memory, image)

	emu.ComputerState, err = cpu.FromImage(memory)
	if err != nil {
		return
	}
	emu.ComputerState.Verbose = emu.Verbose

	r := &emu.Registers
	r.StackPointer = RESET_STACK
	r.Status = cpu.FLAG_INTERRUPT | cpu.FLAG_UNUSED

	vector, err := emu.Memory.GetWord(cpu.RESET_VECTOR)
	if err != nil {
		return
	}
	if vector == 0 {
		vector = emu.Program.Origin
	}
	r.ProgramCounter = vector

	emu.Steps = 0

	return
}

// LineNo returns the current line number for the executing statement.
func (emu *Emulator) LineNo() int {
	if emu.ComputerState == nil {
		return 0
	}

	st := emu.Program.Debug(emu.Registers.ProgramCounter)
	if st == nil {
		return 0
	}

	return st.LineNo
}

// Step performs a single instruction step of the emulator. The machine
// is done when control rests on a break instruction, which is the halt
// convention for standalone programs.
func (emu *Emulator) Step() (done bool, err error) {
	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	emu.ComputerState.Verbose = emu.Verbose

	opcode, err := emu.Memory.GetByte(emu.Registers.ProgramCounter)
	if err != nil {
		return
	}
	if opcode == 0x00 {
		done = true
		return
	}

	err = emu.ComputerState.Step()
	if err != nil {
		return
	}
	emu.Steps += 1

	return
}

// Run steps the machine until it halts or the step limit is reached.
func (emu *Emulator) Run() (err error) {
	limit := emu.StepLimit
	if limit <= 0 {
		limit = DEFAULT_MAXIMUM
	}

	for range limit {
		var done bool
		done, err = emu.Step()
		if done || err != nil {
			return
		}
	}

	return &ErrStepLimit{Steps: limit}
}
