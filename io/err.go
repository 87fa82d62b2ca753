package io

import (
	"errors"

	"github.com/ezrec/tgs/translate"
)

var f = translate.From

var (
	// Program image errors
	ErrImageMalformed = errors.New(f("program image is not a multiple of 3 bytes"))
	ErrImageSize      = errors.New(f("program image exceeds 256 instructions"))
)

var (
	// Keypad errors
	ErrKeypadKeys = errors.New(f("keypad needs exactly two keys"))
	ErrInterrupt  = errors.New(f("interrupted"))
)
