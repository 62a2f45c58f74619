package cpu

import (
	"errors"

	"github.com/mos65go/mos65/translate"
)

var f = translate.From

var (
	// Machine errors
	ErrImageTooLarge = errors.New(f("image exceeds address space"))
	ErrExecution     = errors.New(f("execution fault"))

	// Assembler errors
	ErrEquateSyntax    = errors.New(f(".equ syntax"))
	ErrEquateDuplicate = errors.New(f(".equ duplicated"))
	ErrOriginSyntax    = errors.New(f(".org syntax"))
	ErrDataSyntax      = errors.New(f("data directive syntax"))
	ErrLabelDuplicate  = errors.New(f("label duplicated"))
	ErrOpcodeMissing   = errors.New(f("opcode missing"))
	ErrOperandSyntax   = errors.New(f("operand syntax"))
	ErrOperandRange    = errors.New(f("operand out of range"))
	ErrBranchRange     = errors.New(f("branch target out of range"))
	ErrModeInvalid     = errors.New(f("addressing mode invalid for operation"))
	ErrOpcodeInvalid   = errors.New(f("opcode invalid"))
)

// ErrOutOfBounds reports a memory access beyond the backing image.
type ErrOutOfBounds uint32

func (eb ErrOutOfBounds) Error() string {
	return f("address 0x%04x out of bounds", uint32(eb))
}

func (eb ErrOutOfBounds) Is(err error) (ok bool) {
	_, ok = err.(ErrOutOfBounds)
	return
}

// ErrUndefinedOpcode reports a fetch of an opcode byte with no instruction.
type ErrUndefinedOpcode uint8

func (eu ErrUndefinedOpcode) Error() string {
	return f("undefined opcode 0x%02x", uint8(eu))
}

func (eu ErrUndefinedOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrUndefinedOpcode)
	return
}

// ErrInstruction wraps a failure while executing a decoded instruction.
type ErrInstruction Instruction

func (ei ErrInstruction) Error() string {
	return f("instruction %v failed", Instruction(ei).String())
}

func (ei ErrInstruction) Is(err error) (ok bool) {
	_, ok = err.(ErrInstruction)
	return
}

// ErrStep reports which step of a MultipleSteps run failed.
type ErrStep struct {
	Step int
	Err  error
}

func (err *ErrStep) Error() string {
	return f("step %d %v", err.Step, err.Err)
}

func (err *ErrStep) Unwrap() error {
	return err.Err
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

type ErrCharacter rune

func (err ErrCharacter) Error() string {
	return f("unexpected character %q", rune(err))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}
