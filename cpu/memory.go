package cpu

const (
	MEMORY_LIMIT = 1 << 16 // Full 16-bit address space, in bytes.
)

// Memory is the flat byte-addressable backing store of the machine.
// Its length is fixed at creation; any access past the end is an
// ErrOutOfBounds, never a silent wrap.
type Memory []byte

// check verifies that addr is inside the backing store.
func (m Memory) check(addr uint16) (err error) {
	if int(addr) >= len(m) {
		err = ErrOutOfBounds(addr)
	}

	return
}

// GetByte reads a single byte.
func (m Memory) GetByte(addr uint16) (value uint8, err error) {
	err = m.check(addr)
	if err != nil {
		return
	}

	value = m[addr]
	return
}

// checkWord verifies that both bytes of a word at addr are inside the
// backing store. addr+1 is widened first so that a word at 0xffff is an
// error rather than a wrap to address zero.
func (m Memory) checkWord(addr uint16) (err error) {
	if int(addr)+1 >= len(m) {
		err = ErrOutOfBounds(uint32(addr) + 1)
	}

	return
}

// GetWord reads two consecutive bytes and composes them little-endian.
func (m Memory) GetWord(addr uint16) (value uint16, err error) {
	err = m.checkWord(addr)
	if err != nil {
		return
	}

	value = uint16(m[addr]) | (uint16(m[addr+1]) << 8)
	return
}

// SetByte writes a single byte.
func (m Memory) SetByte(addr uint16, value uint8) (err error) {
	err = m.check(addr)
	if err != nil {
		return
	}

	m[addr] = value
	return
}

// SetWord writes a 16-bit value little-endian.
func (m Memory) SetWord(addr uint16, value uint16) (err error) {
	err = m.checkWord(addr)
	if err != nil {
		return
	}

	m[addr] = uint8(value & 0xff)
	m[addr+1] = uint8(value >> 8)
	return
}
