package cpu

import (
	"fmt"
)

// Status register flag bits.
const (
	FLAG_CARRY     = uint8(1 << 0)
	FLAG_ZERO      = uint8(1 << 1)
	FLAG_INTERRUPT = uint8(1 << 2)
	FLAG_DECIMAL   = uint8(1 << 3)
	FLAG_BREAK     = uint8(1 << 4)
	FLAG_UNUSED    = uint8(1 << 5)
	FLAG_OVERFLOW  = uint8(1 << 6)
	FLAG_NEGATIVE  = uint8(1 << 7)
)

// RegisterFile is the architectural register set. It is a small value
// type, owned by a ComputerState and mutated only through the step cycle.
type RegisterFile struct {
	Accumulator    uint8
	IndexX         uint8
	IndexY         uint8
	Status         uint8
	StackPointer   uint8
	ProgramCounter uint16
}

// SetFlag sets or clears a status flag.
func (r *RegisterFile) SetFlag(flag uint8, on bool) {
	if on {
		r.Status |= flag
	} else {
		r.Status &^= flag
	}
}

// Flag reports whether a status flag is set.
func (r *RegisterFile) Flag(flag uint8) bool {
	return (r.Status & flag) != 0
}

// setNZ updates the zero and negative flags from a result value, and
// returns the value for chained assignment.
func (r *RegisterFile) setNZ(value uint8) uint8 {
	r.SetFlag(FLAG_ZERO, value == 0)
	r.SetFlag(FLAG_NEGATIVE, (value&0x80) != 0)
	return value
}

// String returns the current register state as a string.
func (r RegisterFile) String() (text string) {
	bits := []struct {
		flag uint8
		ch   byte
	}{
		{FLAG_NEGATIVE, 'n'}, {FLAG_OVERFLOW, 'v'}, {FLAG_UNUSED, '-'},
		{FLAG_BREAK, 'b'}, {FLAG_DECIMAL, 'd'}, {FLAG_INTERRUPT, 'i'},
		{FLAG_ZERO, 'z'}, {FLAG_CARRY, 'c'},
	}

	flags := make([]byte, len(bits))
	for n, bit := range bits {
		flags[n] = bit.ch
		if bit.ch != '-' && (r.Status&bit.flag) != 0 {
			flags[n] = bit.ch - 'a' + 'A'
		}
	}

	text = fmt.Sprintf("a:%02x x:%02x y:%02x sp:%02x pc:%04x %s",
		r.Accumulator, r.IndexX, r.IndexY, r.StackPointer,
		r.ProgramCounter, flags)

	return
}
