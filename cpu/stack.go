package cpu

const (
	STACK_BASE = uint16(0x0100) // Base address of the hardware stack page.
)

// The hardware stack occupies page one. The stack pointer is 8-bit and
// wraps naturally; pushes grow downward.

func (s *ComputerState) push(value uint8) (err error) {
	r := &s.Registers
	err = s.Memory.SetByte(STACK_BASE+uint16(r.StackPointer), value)
	if err != nil {
		return
	}

	r.StackPointer -= 1
	return
}

func (s *ComputerState) pull() (value uint8, err error) {
	r := &s.Registers
	value, err = s.Memory.GetByte(STACK_BASE + uint16(r.StackPointer+1))
	if err != nil {
		return
	}

	r.StackPointer += 1
	return
}

// pushWord pushes a 16-bit value high byte first. Both target slots are
// bounds-checked before the first write so a failed push mutates nothing.
func (s *ComputerState) pushWord(value uint16) (err error) {
	r := &s.Registers

	for _, offset := range []uint8{0, 1} {
		err = s.Memory.check(STACK_BASE + uint16(r.StackPointer-offset))
		if err != nil {
			return
		}
	}

	s.push(uint8(value >> 8))
	s.push(uint8(value & 0xff))
	return
}

func (s *ComputerState) pullWord() (value uint16, err error) {
	low, err := s.pull()
	if err != nil {
		return
	}

	high, err := s.pull()
	if err != nil {
		return
	}

	value = uint16(low) | (uint16(high) << 8)
	return
}
