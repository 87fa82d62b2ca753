package emulator

import (
	"errors"

	"github.com/ezrec/tgs/translate"
)

var f = translate.From

var (
	ErrPcRange = errors.New(f("pc past end of program"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Pc  uint8
	Err error
}

func (err *ErrRuntime) Error() string {
	return f("pc 0x%02x %v", err.Pc, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
