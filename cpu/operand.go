package cpu

// operand is a resolved instruction operand. Value is always populated;
// Addr is the effective address when the operand lives in memory, which
// store, read-modify-write, and jump operations need.
type operand struct {
	Mode     OperandMode
	Value    uint8
	Addr     uint16
	InMemory bool
}

// fetchOperand resolves the operand for an addressing mode and advances
// the program counter by the mode's encoded width. The program counter
// points at the first operand byte on entry.
//
// Zero-page indexed modes wrap their effective address modulo 256;
// everything else wraps modulo the 16-bit address space.
func (s *ComputerState) fetchOperand(mode OperandMode) (op operand, err error) {
	r := &s.Registers
	pc := r.ProgramCounter
	op.Mode = mode

	memory := func(addr uint16) {
		op.Addr = addr
		op.InMemory = true
		if err == nil {
			op.Value, err = s.Memory.GetByte(addr)
		}
	}

	switch mode {
	case MODE_IMPLIED:
		// op.Value stays 0.

	case MODE_ACCUMULATOR:
		op.Value = r.Accumulator

	case MODE_IMMEDIATE:
		op.Value, err = s.Memory.GetByte(pc)
		r.ProgramCounter += 1

	case MODE_ZERO_PAGE:
		var zp uint8
		zp, err = s.Memory.GetByte(pc)
		memory(uint16(zp))
		r.ProgramCounter += 1

	case MODE_ZERO_PAGE_X:
		var zp uint8
		zp, err = s.Memory.GetByte(pc)
		memory(uint16(zp + r.IndexX))
		r.ProgramCounter += 1

	case MODE_ZERO_PAGE_Y:
		var zp uint8
		zp, err = s.Memory.GetByte(pc)
		memory(uint16(zp + r.IndexY))
		r.ProgramCounter += 1

	case MODE_ABSOLUTE:
		var addr uint16
		addr, err = s.Memory.GetWord(pc)
		memory(addr)
		r.ProgramCounter += 2

	case MODE_ABSOLUTE_X:
		var addr uint16
		addr, err = s.Memory.GetWord(pc)
		memory(addr + uint16(r.IndexX))
		r.ProgramCounter += 2

	case MODE_ABSOLUTE_Y:
		var addr uint16
		addr, err = s.Memory.GetWord(pc)
		memory(addr + uint16(r.IndexY))
		r.ProgramCounter += 2

	case MODE_INDIRECT:
		var ptrAddr, ptr uint16
		ptrAddr, err = s.Memory.GetWord(pc)
		if err == nil {
			ptr, err = s.Memory.GetWord(ptrAddr)
		}
		memory(ptr)
		r.ProgramCounter += 2

	case MODE_INDIRECT_X:
		var zp uint8
		var ptr uint16
		zp, err = s.Memory.GetByte(pc)
		if err == nil {
			ptr, err = s.Memory.GetWord(uint16(zp + r.IndexX))
		}
		memory(ptr)
		r.ProgramCounter += 1

	case MODE_INDIRECT_Y:
		var zp uint8
		var ptr uint16
		zp, err = s.Memory.GetByte(pc)
		if err == nil {
			ptr, err = s.Memory.GetWord(uint16(zp))
		}
		memory(ptr + uint16(r.IndexY))
		r.ProgramCounter += 1
	}

	return
}
