package emulator

import (
	"github.com/mos65go/mos65/translate"
)

var f = translate.From

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("line %d %v", err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

// ErrStepLimit indicates the program ran past the step limit without
// reaching a halt.
type ErrStepLimit struct {
	Steps int
}

func (err *ErrStepLimit) Error() string {
	return f("no halt after %d steps", err.Steps)
}
