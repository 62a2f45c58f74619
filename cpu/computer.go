package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"
)

var _cpu_defines = map[string]string{
	"FLAG_CARRY":     fmt.Sprintf("%#v", FLAG_CARRY),
	"FLAG_ZERO":      fmt.Sprintf("%#v", FLAG_ZERO),
	"FLAG_INTERRUPT": fmt.Sprintf("%#v", FLAG_INTERRUPT),
	"FLAG_DECIMAL":   fmt.Sprintf("%#v", FLAG_DECIMAL),
	"FLAG_BREAK":     fmt.Sprintf("%#v", FLAG_BREAK),
	"FLAG_OVERFLOW":  fmt.Sprintf("%#v", FLAG_OVERFLOW),
	"FLAG_NEGATIVE":  fmt.Sprintf("%#v", FLAG_NEGATIVE),
	"STACK_BASE":     fmt.Sprintf("%#v", STACK_BASE),
	"NMI_VECTOR":     fmt.Sprintf("%#v", NMI_VECTOR),
	"RESET_VECTOR":   fmt.Sprintf("%#v", RESET_VECTOR),
	"IRQ_VECTOR":     fmt.Sprintf("%#v", IRQ_VECTOR),
}

// Defines returns the architecture constants the assembler predefines
// as equates.
func Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// ComputerState is the whole machine: memory plus registers. It is
// advanced one instruction at a time by Step, and is not meant to be
// shared across concurrent executions.
type ComputerState struct {
	Verbose bool // Set to enable verbose logging.

	Memory    Memory
	Registers RegisterFile
}

// FromImage constructs a runnable state over a memory image. The memory
// keeps the image's own length, up to the 64 KiB address space; registers
// hold their architectural reset defaults of zero.
func FromImage(image []byte) (s *ComputerState, err error) {
	if len(image) > MEMORY_LIMIT {
		err = ErrImageTooLarge
		return
	}

	s = &ComputerState{
		Memory: Memory(image),
	}

	return
}

// Step executes a single instruction: fetch the opcode, decode it,
// resolve its operand, and apply its semantics. A failed step restores
// the register file, so no partial effects are observable; errors are
// fatal to the run and surface to the caller.
func (s *ComputerState) Step() (err error) {
	saved := s.Registers
	defer func() {
		if err != nil {
			s.Registers = saved
		}
	}()

	opcode, err := s.Memory.GetByte(s.Registers.ProgramCounter)
	if err != nil {
		return
	}
	s.Registers.ProgramCounter += 1

	inst, err := Decode(opcode)
	if err != nil {
		return
	}

	op, err := s.fetchOperand(inst.Mode)
	if err != nil {
		return
	}

	if s.Verbose {
		log.Printf("%04x: %v %v", saved.ProgramCounter, inst, s.Registers)
	}

	return s.execute(inst, op)
}

// MultipleSteps applies Step exactly the given number of times,
// stopping at the first failure and reporting which step failed.
func (s *ComputerState) MultipleSteps(steps int) (err error) {
	for n := range steps {
		err = s.Step()
		if err != nil {
			return &ErrStep{Step: n, Err: err}
		}
	}

	return
}
