package spr

// This file hooks the spr format into the image package, so image.Decode
// can open a spr file and return its first sprite.

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"io"
)

func init() {
	// Spr 8.54: 0x4868ECC9
	image.RegisterFormat("spr", string([]byte{0xC9, 0xEC, 0x68, 0x48}), Decode, DecodeConfig)
}

// DecodeConfig returns the image.Config of the first sprite in a spr file.
func DecodeConfig(r io.Reader) (image.Config, error) {
	var h Header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return image.Config{}, fmt.Errorf("spr: could not read spr header: %s", err)
	}
	if h.Signature != SignatureSpr854 {
		return image.Config{}, fmt.Errorf("spr: not implemented for signature %08x", h.Signature)
	}
	return image.Config{Width: SpriteSize, Height: SpriteSize, ColorModel: color.NRGBAModel}, nil
}

// Decode returns the first sprite of a spr file.
//
// image.Decode hands over a non-seekable reader, so the whole file is
// buffered; use NewReader for anything but small files.
func Decode(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("spr: could not read file: %s", err)
	}
	s, err := NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if s.Header.Signature != SignatureSpr854 {
		return nil, fmt.Errorf("spr: not implemented for signature %08x", s.Header.Signature)
	}
	return s.SpriteImage(1)
}
