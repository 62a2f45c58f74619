package cpu

import (
	"errors"
)

// Interrupt and reset vector locations.
const (
	NMI_VECTOR   = uint16(0xfffa)
	RESET_VECTOR = uint16(0xfffc)
	IRQ_VECTOR   = uint16(0xfffe)
)

// writeBack stores a read-modify-write result either to the operand's
// effective address or to the accumulator.
func (s *ComputerState) writeBack(op operand, value uint8) (err error) {
	if op.InMemory {
		return s.Memory.SetByte(op.Addr, value)
	}

	s.Registers.Accumulator = value
	return
}

// branchIf conditionally adds the operand's signed displacement to the
// program counter. The displacement is relative to the address of the
// next instruction, and the add wraps modulo the address space.
func (s *ComputerState) branchIf(taken bool, op operand) {
	if taken {
		s.Registers.ProgramCounter += uint16(int16(int8(op.Value)))
	}
}

// compare sets carry, zero, and negative from a register/operand pair.
func (s *ComputerState) compare(register uint8, op operand) {
	r := &s.Registers
	r.SetFlag(FLAG_CARRY, register >= op.Value)
	r.setNZ(register - op.Value)
}

// addCarry adds the operand and the carry bit into the accumulator,
// updating carry and two's-complement overflow. Arithmetic is binary
// regardless of the decimal flag.
func (s *ComputerState) addCarry(value uint8) {
	r := &s.Registers

	carry := uint16(r.Status & FLAG_CARRY)
	sum := uint16(r.Accumulator) + uint16(value) + carry

	a := r.Accumulator
	r.Accumulator = r.setNZ(uint8(sum & 0xff))
	r.SetFlag(FLAG_CARRY, sum > 0xff)
	// Overflow: both inputs share a sign the result does not.
	r.SetFlag(FLAG_OVERFLOW, ((a^value)&0x80) == 0 && ((a^r.Accumulator)&0x80) != 0)
}

// execute applies an instruction's semantics to the registers and memory.
func (s *ComputerState) execute(inst Instruction, op operand) (err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrInstruction(inst), err)
		}
	}()

	r := &s.Registers

	switch inst.Operation {
	// Loads and stores.
	case OP_LDA:
		r.Accumulator = r.setNZ(op.Value)
	case OP_LDX:
		r.IndexX = r.setNZ(op.Value)
	case OP_LDY:
		r.IndexY = r.setNZ(op.Value)
	case OP_STA:
		err = s.Memory.SetByte(op.Addr, r.Accumulator)
	case OP_STX:
		err = s.Memory.SetByte(op.Addr, r.IndexX)
	case OP_STY:
		err = s.Memory.SetByte(op.Addr, r.IndexY)

	// Register transfers.
	case OP_TAX:
		r.IndexX = r.setNZ(r.Accumulator)
	case OP_TAY:
		r.IndexY = r.setNZ(r.Accumulator)
	case OP_TXA:
		r.Accumulator = r.setNZ(r.IndexX)
	case OP_TYA:
		r.Accumulator = r.setNZ(r.IndexY)
	case OP_TSX:
		r.IndexX = r.setNZ(r.StackPointer)
	case OP_TXS:
		r.StackPointer = r.IndexX

	// Arithmetic. 8-bit registers wrap modulo 256.
	case OP_ADC:
		s.addCarry(op.Value)
	case OP_SBC:
		s.addCarry(^op.Value)
	case OP_CMP:
		s.compare(r.Accumulator, op)
	case OP_CPX:
		s.compare(r.IndexX, op)
	case OP_CPY:
		s.compare(r.IndexY, op)

	// Logical.
	case OP_AND:
		r.Accumulator = r.setNZ(r.Accumulator & op.Value)
	case OP_ORA:
		r.Accumulator = r.setNZ(r.Accumulator | op.Value)
	case OP_EOR:
		r.Accumulator = r.setNZ(r.Accumulator ^ op.Value)
	case OP_BIT:
		r.SetFlag(FLAG_ZERO, (r.Accumulator&op.Value) == 0)
		r.SetFlag(FLAG_OVERFLOW, (op.Value&FLAG_OVERFLOW) != 0)
		r.SetFlag(FLAG_NEGATIVE, (op.Value&FLAG_NEGATIVE) != 0)

	// Shifts and rotates.
	case OP_ASL:
		r.SetFlag(FLAG_CARRY, (op.Value&0x80) != 0)
		err = s.writeBack(op, r.setNZ(op.Value<<1))
	case OP_LSR:
		r.SetFlag(FLAG_CARRY, (op.Value&0x01) != 0)
		err = s.writeBack(op, r.setNZ(op.Value>>1))
	case OP_ROL:
		carry := r.Status & FLAG_CARRY
		r.SetFlag(FLAG_CARRY, (op.Value&0x80) != 0)
		err = s.writeBack(op, r.setNZ((op.Value<<1)|carry))
	case OP_ROR:
		carry := (r.Status & FLAG_CARRY) << 7
		r.SetFlag(FLAG_CARRY, (op.Value&0x01) != 0)
		err = s.writeBack(op, r.setNZ((op.Value>>1)|carry))

	// Increments and decrements.
	case OP_INC:
		err = s.writeBack(op, r.setNZ(op.Value+1))
	case OP_DEC:
		err = s.writeBack(op, r.setNZ(op.Value-1))
	case OP_INX:
		r.IndexX = r.setNZ(r.IndexX + 1)
	case OP_INY:
		r.IndexY = r.setNZ(r.IndexY + 1)
	case OP_DEX:
		r.IndexX = r.setNZ(r.IndexX - 1)
	case OP_DEY:
		r.IndexY = r.setNZ(r.IndexY - 1)

	// Branches. The operand byte is a signed displacement.
	case OP_BCC:
		s.branchIf(!r.Flag(FLAG_CARRY), op)
	case OP_BCS:
		s.branchIf(r.Flag(FLAG_CARRY), op)
	case OP_BNE:
		s.branchIf(!r.Flag(FLAG_ZERO), op)
	case OP_BEQ:
		s.branchIf(r.Flag(FLAG_ZERO), op)
	case OP_BPL:
		s.branchIf(!r.Flag(FLAG_NEGATIVE), op)
	case OP_BMI:
		s.branchIf(r.Flag(FLAG_NEGATIVE), op)
	case OP_BVC:
		s.branchIf(!r.Flag(FLAG_OVERFLOW), op)
	case OP_BVS:
		s.branchIf(r.Flag(FLAG_OVERFLOW), op)

	// Jumps and subroutines.
	case OP_JMP:
		r.ProgramCounter = op.Addr
	case OP_JSR:
		err = s.pushWord(r.ProgramCounter - 1)
		if err == nil {
			r.ProgramCounter = op.Addr
		}
	case OP_RTS:
		var ret uint16
		ret, err = s.pullWord()
		if err == nil {
			r.ProgramCounter = ret + 1
		}

	// Stack operations.
	case OP_PHA:
		err = s.push(r.Accumulator)
	case OP_PLA:
		var value uint8
		value, err = s.pull()
		if err == nil {
			r.Accumulator = r.setNZ(value)
		}
	case OP_PHP:
		err = s.push(r.Status | FLAG_BREAK | FLAG_UNUSED)
	case OP_PLP:
		var value uint8
		value, err = s.pull()
		if err == nil {
			r.Status = (value &^ FLAG_BREAK) | FLAG_UNUSED
		}

	// Flag control.
	case OP_CLC:
		r.SetFlag(FLAG_CARRY, false)
	case OP_SEC:
		r.SetFlag(FLAG_CARRY, true)
	case OP_CLI:
		r.SetFlag(FLAG_INTERRUPT, false)
	case OP_SEI:
		r.SetFlag(FLAG_INTERRUPT, true)
	case OP_CLD:
		r.SetFlag(FLAG_DECIMAL, false)
	case OP_SED:
		r.SetFlag(FLAG_DECIMAL, true)
	case OP_CLV:
		r.SetFlag(FLAG_OVERFLOW, false)

	// Interrupts.
	case OP_BRK:
		err = s.brk()
	case OP_RTI:
		var status uint8
		var ret uint16
		status, err = s.pull()
		if err == nil {
			ret, err = s.pullWord()
		}
		if err == nil {
			r.Status = (status &^ FLAG_BREAK) | FLAG_UNUSED
			r.ProgramCounter = ret
		}

	case OP_NOP:
		// nothing

	default:
		err = ErrExecution
	}

	return
}

// brk performs a software interrupt: the return address and status go to
// the stack, interrupts are disabled, and control transfers through the
// IRQ vector. All reads and bounds checks happen before the first write.
func (s *ComputerState) brk() (err error) {
	r := &s.Registers

	vector, err := s.Memory.GetWord(IRQ_VECTOR)
	if err != nil {
		return
	}

	for _, offset := range []uint8{0, 1, 2} {
		err = s.Memory.check(STACK_BASE + uint16(r.StackPointer-offset))
		if err != nil {
			return
		}
	}

	s.pushWord(r.ProgramCounter + 1)
	s.push(r.Status | FLAG_BREAK | FLAG_UNUSED)
	r.SetFlag(FLAG_INTERRUPT, true)
	r.ProgramCounter = vector

	return
}
