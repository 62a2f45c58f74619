package emulator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mos65go/mos65/cpu"
)

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	assert.False(emu.Verbose)
	assert.NotNil(emu.Program)
	assert.Nil(emu.ComputerState)
}

// doRunSingle assembles and runs a program to its halt.
func doRunSingle(emu *Emulator, program []string, t *testing.T) {
	assert := assert.New(t)

	asm := &cpu.Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	emu.Program = prog

	err = emu.Reset()
	assert.NoError(err)

	err = emu.Run()
	assert.NoError(err)
}

func TestEmulatorReset(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	doRunSingle(emu, []string{
		"\tlda #0x41",
		"\tbrk",
	}, t)

	assert.Equal(MEMORY_SIZE, len(emu.Memory))
	assert.Equal(uint8(RESET_STACK), emu.Registers.StackPointer)
	assert.True(emu.Registers.Flag(cpu.FLAG_INTERRUPT))
	assert.Equal(uint8(0x41), emu.Registers.Accumulator)
	assert.Equal(1, emu.Steps)
}

func TestEmulatorResetVector(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	doRunSingle(emu, []string{
		"\t.org 0x0200",
		"start:",
		"\tldx #7",
		"\tbrk",
		"\t.org 0xfffc",
		"\t.word start",
	}, t)

	assert.Equal(uint8(7), emu.Registers.IndexX)
	assert.Equal(uint16(0x0202), emu.Registers.ProgramCounter)
}

func TestEmulatorRun(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	doRunSingle(emu, []string{
		"\tlda #0",
		"\tldx #10",
		"loop:",
		"\tclc",
		"\tadc #2",
		"\tdex",
		"\tbne loop",
		"\tsta 0x0200",
		"\tbrk",
	}, t)

	assert.Equal(uint8(20), emu.Registers.Accumulator)

	value, err := emu.Memory.GetByte(0x0200)
	assert.NoError(err)
	assert.Equal(uint8(20), value)
}

func TestEmulatorLineNo(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"\tlda #1", // line 1
		"\tinx",    // line 2
		"\tbrk",    // line 3
	}

	emu := NewEmulator()
	asm := &cpu.Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	emu.Program = prog

	assert.NoError(emu.Reset())
	assert.Equal(1, emu.LineNo())

	done, err := emu.Step()
	assert.NoError(err)
	assert.False(done)
	assert.Equal(2, emu.LineNo())

	done, err = emu.Step()
	assert.NoError(err)
	assert.False(done)
	assert.Equal(3, emu.LineNo())

	done, err = emu.Step()
	assert.NoError(err)
	assert.True(done)
}

func TestEmulatorStepLimit(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.StepLimit = 10

	asm := &cpu.Assembler{}
	prog, err := asm.Parse(strings.NewReader("spin:\n\tjmp spin\n"))
	assert.NoError(err)
	emu.Program = prog

	assert.NoError(emu.Reset())

	err = emu.Run()
	var el *ErrStepLimit
	assert.ErrorAs(err, &el)
	assert.Equal(10, el.Steps)
}

func TestEmulatorRuntimeError(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	asm := &cpu.Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join([]string{
		"\tjmp trap",
		"trap:",
		"\t.byte 0x02", // not a defined opcode
	}, "\n")))
	assert.NoError(err)
	emu.Program = prog

	assert.NoError(emu.Reset())

	err = emu.Run()
	assert.ErrorIs(err, cpu.ErrUndefinedOpcode(0x02))

	var er *ErrRuntime
	assert.ErrorAs(err, &er)
	assert.Equal(3, er.LineNo)
}

func TestEmulatorDefines(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	defines := map[string]string{}
	for attr, val := range emu.Defines() {
		defines[attr] = val
	}

	assert.Equal("65536", defines["MEMORY_SIZE"])
	assert.Equal("0xfd", defines["RESET_STACK"])
	assert.Equal("0x100", defines["STACK_BASE"])
}
