package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryByteRoundTrip(t *testing.T) {
	assert := assert.New(t)

	m := make(Memory, 0x300)

	for addr := uint16(0); addr < 0x300; addr++ {
		err := m.SetByte(addr, uint8(addr)^0xff)
		assert.NoError(err)
	}

	for addr := uint16(0); addr < 0x300; addr++ {
		value, err := m.GetByte(addr)
		assert.NoError(err)
		assert.Equal(uint8(addr)^0xff, value)
	}
}

func TestMemoryWordComposition(t *testing.T) {
	assert := assert.New(t)

	m := make(Memory, 0x100)

	assert.NoError(m.SetByte(0x10, 0x34))
	assert.NoError(m.SetByte(0x11, 0x12))

	value, err := m.GetWord(0x10)
	assert.NoError(err)
	assert.Equal(uint16(0x1234), value)

	assert.NoError(m.SetWord(0x20, 0xbeef))

	lo, err := m.GetByte(0x20)
	assert.NoError(err)
	hi, err := m.GetByte(0x21)
	assert.NoError(err)
	assert.Equal(uint8(0xef), lo)
	assert.Equal(uint8(0xbe), hi)
}

func TestMemoryOutOfBounds(t *testing.T) {
	assert := assert.New(t)

	m := make(Memory, 0x100)

	_, err := m.GetByte(0x100)
	assert.ErrorIs(err, ErrOutOfBounds(0x100))

	err = m.SetByte(0x1000, 0)
	assert.ErrorIs(err, ErrOutOfBounds(0x1000))

	// A word read of the last byte would touch one past the end.
	_, err = m.GetWord(0xff)
	assert.ErrorIs(err, ErrOutOfBounds(0x100))

	err = m.SetWord(0xff, 0x1234)
	assert.ErrorIs(err, ErrOutOfBounds(0x100))
}

func TestMemoryWordAtLimit(t *testing.T) {
	assert := assert.New(t)

	m := make(Memory, MEMORY_LIMIT)

	// The high byte of a word at 0xffff has no address to wrap to.
	_, err := m.GetWord(0xffff)
	assert.ErrorIs(err, ErrOutOfBounds(0x10000))

	value, err := m.GetByte(0xffff)
	assert.NoError(err)
	assert.Equal(uint8(0), value)
}
