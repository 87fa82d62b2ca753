package io

import (
	"bytes"
	"io"

	"github.com/lunixbochs/struc"
)

const (
	RECORD_SIZE = 3   // Bytes per instruction record.
	ROM_LIMIT   = 256 // Records addressable by an 8-bit PC.
)

// Record is one instruction of the program image.
type Record struct {
	Opcode uint8 `struc:"uint8"`
	Left   uint8 `struc:"uint8"`
	Right  uint8 `struc:"uint8"`
}

// Rom is the immutable program image.
type Rom struct {
	Data []Record
}

// Load reads a raw program image: 3-byte records with no header.
func (rom *Rom) Load(input io.Reader) (err error) {
	image, err := io.ReadAll(input)
	if err != nil {
		return
	}

	if len(image)%RECORD_SIZE != 0 {
		err = ErrImageMalformed
		return
	}

	if len(image)/RECORD_SIZE > ROM_LIMIT {
		err = ErrImageSize
		return
	}

	data := make([]Record, len(image)/RECORD_SIZE)
	reader := bytes.NewReader(image)
	for n := range data {
		err = struc.Unpack(reader, &data[n])
		if err != nil {
			return
		}
	}

	rom.Data = data
	return
}

// Save writes the raw program image.
func (rom *Rom) Save(output io.Writer) (err error) {
	for n := range rom.Data {
		err = struc.Pack(output, &rom.Data[n])
		if err != nil {
			return
		}
	}

	return
}

// Fetch returns the record at pc.
func (rom *Rom) Fetch(pc uint8) (rec Record, ok bool) {
	if int(pc) >= len(rom.Data) {
		return
	}

	return rom.Data[pc], true
}
