package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromImage(t *testing.T) {
	assert := assert.New(t)

	s, err := FromImage([]byte{0xa9, 0x05, 0x00})
	assert.NoError(err)
	assert.Equal(3, len(s.Memory))
	assert.Equal(RegisterFile{}, s.Registers)
}

func TestFromImageTooLarge(t *testing.T) {
	assert := assert.New(t)

	_, err := FromImage(make([]byte, MEMORY_LIMIT+1))
	assert.ErrorIs(err, ErrImageTooLarge)

	_, err = FromImage(make([]byte, MEMORY_LIMIT))
	assert.NoError(err)
}

func TestStepLoadImmediate(t *testing.T) {
	assert := assert.New(t)

	s, err := FromImage([]byte{0xa9, 0x05, 0x00})
	assert.NoError(err)

	assert.NoError(s.Step())
	assert.Equal(uint8(0x05), s.Registers.Accumulator)
	assert.Equal(uint16(2), s.Registers.ProgramCounter)
}

func TestStepUndefinedOpcode(t *testing.T) {
	assert := assert.New(t)

	s, err := FromImage([]byte{0x02, 0x00})
	assert.NoError(err)
	s.Registers.Accumulator = 0x11

	err = s.Step()
	assert.ErrorIs(err, ErrUndefinedOpcode(0x02))

	// The failed step leaves no partial effects behind.
	assert.Equal(uint16(0), s.Registers.ProgramCounter)
	assert.Equal(uint8(0x11), s.Registers.Accumulator)
}

func TestStepFetchOutOfBounds(t *testing.T) {
	assert := assert.New(t)

	s, err := FromImage([]byte{0xea})
	assert.NoError(err)
	assert.NoError(s.Step())

	err = s.Step()
	assert.ErrorIs(err, ErrOutOfBounds(0x01))
	assert.Equal(uint16(1), s.Registers.ProgramCounter)
}

func TestStepAtomicOperandFailure(t *testing.T) {
	assert := assert.New(t)

	// LDA absolute pointing past the image fails after the program
	// counter has already moved; the failure must roll it back.
	s, err := FromImage([]byte{0xad, 0x00, 0x40})
	assert.NoError(err)

	err = s.Step()
	assert.ErrorIs(err, ErrOutOfBounds(0x4000))
	assert.Equal(uint16(0), s.Registers.ProgramCounter)
}

func TestStepInstructionError(t *testing.T) {
	assert := assert.New(t)

	// STA absolute past the image fails inside the executor.
	s, err := FromImage([]byte{0x8d, 0x00, 0x40})
	assert.NoError(err)

	err = s.Step()
	assert.ErrorIs(err, ErrInstruction(Instruction{Operation: OP_STA, Mode: MODE_ABSOLUTE}))
	assert.ErrorIs(err, ErrOutOfBounds(0x4000))
	assert.Equal(uint16(0), s.Registers.ProgramCounter)
}

func TestMultipleSteps(t *testing.T) {
	assert := assert.New(t)

	s, err := FromImage([]byte{
		0xa2, 0x03, // LDX #3
		0xe8, // INX
		0xe8, // INX
	})
	assert.NoError(err)

	assert.NoError(s.MultipleSteps(3))
	assert.Equal(uint8(0x05), s.Registers.IndexX)
}

func TestMultipleStepsZero(t *testing.T) {
	assert := assert.New(t)

	s, err := FromImage([]byte{0x02})
	assert.NoError(err)
	before := s.Registers

	assert.NoError(s.MultipleSteps(0))
	assert.Equal(before, s.Registers)
}

func TestMultipleStepsFailure(t *testing.T) {
	assert := assert.New(t)

	s, err := FromImage([]byte{
		0xea, // NOP
		0xea, // NOP
		0x02, // undefined
	})
	assert.NoError(err)

	err = s.MultipleSteps(5)
	assert.Error(err)

	var es *ErrStep
	assert.ErrorAs(err, &es)
	assert.Equal(2, es.Step)
	assert.ErrorIs(err, ErrUndefinedOpcode(0x02))

	// The two completed steps stick.
	assert.Equal(uint16(2), s.Registers.ProgramCounter)
}

func TestDefines(t *testing.T) {
	assert := assert.New(t)

	defines := map[string]string{}
	for attr, val := range Defines() {
		defines[attr] = val
	}

	assert.Equal("0x1", defines["FLAG_CARRY"])
	assert.Equal("0x100", defines["STACK_BASE"])
	assert.Equal("0xfffc", defines["RESET_VECTOR"])
}

func TestRegisterFileString(t *testing.T) {
	assert := assert.New(t)

	r := RegisterFile{
		Accumulator:    0xab,
		IndexX:         0x01,
		IndexY:         0x02,
		Status:         FLAG_CARRY | FLAG_NEGATIVE,
		StackPointer:   0xfd,
		ProgramCounter: 0x1234,
	}
	assert.Equal("a:ab x:01 y:02 sp:fd pc:1234 Nv-bdizC", r.String())
}
