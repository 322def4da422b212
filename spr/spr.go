package spr

// This file contains code directly related to decoding the
// spr file format.

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/pkg/errors"
)

// ErrNotFound is returned for sprite ids that have no image: id 0, ids past
// the end of the file, and empty sprites.
var ErrNotFound = errors.New("sprite not found")

const (
	// Spr 8.54
	SignatureSpr854 = 0x4868ECC9

	// SpriteSize is the width and height of every sprite.
	SpriteSize = 32

	headerSize = 6

	// maxBlockSize bounds the size field of a single sprite block.
	maxBlockSize = 3444
)

type Header struct {
	Signature   uint32
	SpriteCount uint16
}

// Reader gives random access to the sprites of a spr file.
type Reader struct {
	r      io.ReaderAt
	Header Header
}

// NewReader reads the header of the spr file behind r.
func NewReader(r io.ReaderAt) (*Reader, error) {
	var h Header
	if err := binary.Read(io.NewSectionReader(r, 0, headerSize), binary.LittleEndian, &h); err != nil {
		return nil, fmt.Errorf("could not read spr header: %s", err)
	}
	return &Reader{r: r, Header: h}, nil
}

// Len returns one more than the highest sprite id, so that valid ids are in
// [1, Len()). Id 0 is the empty sprite.
func (s *Reader) Len() int {
	return int(s.Header.SpriteCount) + 1
}

// Signature identifies the version of the spr file.
func (s *Reader) Signature() uint32 {
	return s.Header.Signature
}

// FetchSpriteStream returns a reader positioned over the raw block of
// sprite id: color key, size and pixel data, ready for DecodeUpcoming.
func (s *Reader) FetchSpriteStream(id int) (io.Reader, error) {
	if id <= 0 || id > int(s.Header.SpriteCount) {
		return nil, errors.Wrapf(ErrNotFound, "sprite %d of %d", id, s.Header.SpriteCount)
	}

	var buf [4]byte
	if _, err := s.r.ReadAt(buf[:], headerSize+int64(id-1)*4); err != nil {
		return nil, fmt.Errorf("could not read spr ptr: %s", err)
	}
	ptr := int64(binary.LittleEndian.Uint32(buf[:]))
	if ptr == 0 {
		return nil, errors.Wrapf(ErrNotFound, "sprite %d is empty", id)
	}

	var block [5]byte
	if _, err := s.r.ReadAt(block[:], ptr); err != nil {
		return nil, fmt.Errorf("could not read spr block header at %d: %s", ptr, err)
	}
	size := binary.LittleEndian.Uint16(block[3:])
	if size > maxBlockSize {
		return nil, fmt.Errorf("spr block too large; got %d, want < %d", size, maxBlockSize)
	}
	return io.NewSectionReader(s.r, ptr, int64(len(block))+int64(size)), nil
}

// SpriteImage fetches and decodes sprite id.
func (s *Reader) SpriteImage(id uint32) (image.Image, error) {
	r, err := s.FetchSpriteStream(int(id))
	if err != nil {
		return nil, err
	}
	return DecodeUpcoming(r)
}

// DecodeUpcoming decodes a single block of spr-format data: a color key, the
// block size and the run-length encoded pixels.
func DecodeUpcoming(r io.Reader) (image.Image, error) {
	var colorKey struct{ ColorKeyR, ColorKeyG, ColorKeyB uint8 }
	if err := binary.Read(r, binary.LittleEndian, &colorKey); err != nil {
		return nil, fmt.Errorf("could not read spr color key: %s", err)
	}

	var size uint16
	if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
		return nil, fmt.Errorf("could not read spr size: %s", err)
	}
	if size > maxBlockSize {
		return nil, fmt.Errorf("spr block too large; got %d, want < %d", size, maxBlockSize)
	}

	buf := bytes.Buffer{}
	n, err := buf.ReadFrom(io.LimitReader(r, int64(size)))
	if err != nil {
		return nil, fmt.Errorf("spr block could not be read: %s", err)
	}
	if n != int64(size) {
		return nil, fmt.Errorf("not all of the spr block could be read: read %d, want %d", n, size)
	}

	return decodeData(&buf)
}

// decodeData decodes alternating runs of transparent and colored pixels. A
// run starts with its pixel count; colored runs are followed by that many
// RGB triplets.
func decodeData(r *bytes.Buffer) (*image.NRGBA, error) {
	img := image.NewNRGBA(image.Rect(0, 0, SpriteSize, SpriteSize))

	px := 0
	for r.Len() > 0 {
		var transparent, colored uint16
		if err := binary.Read(r, binary.LittleEndian, &transparent); err != nil {
			return nil, fmt.Errorf("could not read transparent run: %s", err)
		}
		px += int(transparent)
		if r.Len() == 0 {
			break
		}
		if err := binary.Read(r, binary.LittleEndian, &colored); err != nil {
			return nil, fmt.Errorf("could not read colored run: %s", err)
		}
		if px+int(colored) > SpriteSize*SpriteSize {
			return nil, fmt.Errorf("spr run overflows sprite: pixel %d + %d", px, colored)
		}
		for i := 0; i < int(colored); i++ {
			var rgb [3]byte
			if _, err := io.ReadFull(r, rgb[:]); err != nil {
				return nil, fmt.Errorf("could not read pixel %d: %s", px, err)
			}
			img.SetNRGBA(px%SpriteSize, px/SpriteSize, color.NRGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 0xFF})
			px++
		}
	}
	return img, nil
}
