package spr

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"testing"

	"badc0de.net/pkg/go-tibia-assets/ttesting"
)

// encodeBlock produces the block of a single sprite: color key, size and
// runs of transparent and colored pixels.
func encodeBlock(img *image.NRGBA) []byte {
	data := &bytes.Buffer{}
	px := 0
	for px < SpriteSize*SpriteSize {
		transparent := 0
		for px+transparent < SpriteSize*SpriteSize && pixel(img, px+transparent).A == 0 {
			transparent++
		}
		if px+transparent == SpriteSize*SpriteSize {
			break
		}
		colored := 0
		for px+transparent+colored < SpriteSize*SpriteSize && pixel(img, px+transparent+colored).A != 0 {
			colored++
		}
		binary.Write(data, binary.LittleEndian, uint16(transparent))
		binary.Write(data, binary.LittleEndian, uint16(colored))
		for i := 0; i < colored; i++ {
			c := pixel(img, px+transparent+i)
			data.Write([]byte{c.R, c.G, c.B})
		}
		px += transparent + colored
	}
	return rawBlock(data.Bytes())
}

func rawBlock(data []byte) []byte {
	b := &bytes.Buffer{}
	b.Write([]byte{0xFF, 0x00, 0xFF})
	binary.Write(b, binary.LittleEndian, uint16(len(data)))
	b.Write(data)
	return b.Bytes()
}

func pixel(img *image.NRGBA, px int) color.NRGBA {
	return img.NRGBAAt(px%SpriteSize, px/SpriteSize)
}

// buildFile lays out a spr file with one block per sprite id, starting at 1.
// nil blocks get an empty pointer.
func buildFile(blocks ...[]byte) []byte {
	b := &bytes.Buffer{}
	binary.Write(b, binary.LittleEndian, Header{Signature: SignatureSpr854, SpriteCount: uint16(len(blocks))})
	ptr := uint32(headerSize + 4*len(blocks))
	for _, blk := range blocks {
		if blk == nil {
			binary.Write(b, binary.LittleEndian, uint32(0))
			continue
		}
		binary.Write(b, binary.LittleEndian, ptr)
		ptr += uint32(len(blk))
	}
	for _, blk := range blocks {
		b.Write(blk)
	}
	return b.Bytes()
}

func testSprite(c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, SpriteSize, SpriteSize))
	for y := 4; y < 20; y++ {
		for x := 8; x < 12; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	img.SetNRGBA(SpriteSize-1, SpriteSize-1, c)
	return img
}

func TestSpriteImage(t *testing.T) {
	red := color.NRGBA{R: 200, G: 10, B: 20, A: 255}
	blue := color.NRGBA{R: 1, G: 2, B: 250, A: 255}
	f := buildFile(encodeBlock(testSprite(red)), nil, encodeBlock(testSprite(blue)))

	r, err := NewReader(bytes.NewReader(f))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	ttesting.AssertEqualUint32(t, "signature", r.Header.Signature, SignatureSpr854)
	ttesting.AssertEqualInt(t, "Len", r.Len(), 4)

	for id, want := range map[uint32]color.NRGBA{1: red, 3: blue} {
		img, err := r.SpriteImage(id)
		if err != nil {
			t.Fatalf("SpriteImage(%d): %v", id, err)
		}
		ttesting.AssertEqualInt(t, "width", img.Bounds().Dx(), SpriteSize)
		ttesting.AssertEqualColor(t, "opaque pixel", img.At(9, 10), want)
		ttesting.AssertEqualColor(t, "last pixel", img.At(SpriteSize-1, SpriteSize-1), want)
		ttesting.AssertEqualColor(t, "transparent pixel", img.At(0, 0), color.NRGBA{})
	}
}

func TestNotFound(t *testing.T) {
	f := buildFile(encodeBlock(testSprite(color.NRGBA{R: 1, A: 255})), nil)
	r, err := NewReader(bytes.NewReader(f))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	for _, id := range []int{0, -1, 2, 3, 1000} {
		_, err := r.FetchSpriteStream(id)
		ttesting.AssertErrorIs(t, "FetchSpriteStream", err, ErrNotFound)
	}
}

func TestDecodeErrors(t *testing.T) {
	overrun := &bytes.Buffer{}
	binary.Write(overrun, binary.LittleEndian, uint16(SpriteSize*SpriteSize-1))
	binary.Write(overrun, binary.LittleEndian, uint16(2))
	overrun.Write([]byte{1, 2, 3, 4, 5, 6})

	truncated := &bytes.Buffer{}
	binary.Write(truncated, binary.LittleEndian, uint16(0))
	binary.Write(truncated, binary.LittleEndian, uint16(3))
	truncated.Write([]byte{1, 2, 3})

	for _, test := range []struct {
		name  string
		block []byte
	}{
		{"empty stream", nil},
		{"short header", []byte{0xFF, 0x00, 0xFF, 0x01}},
		{"size past the end", rawBlock([]byte{1, 2})[:6]},
		{"pixel overrun", rawBlock(overrun.Bytes())},
		{"truncated pixels", rawBlock(truncated.Bytes())},
	} {
		t.Run(test.name, func(t *testing.T) {
			if _, err := DecodeUpcoming(bytes.NewReader(test.block)); err == nil {
				t.Errorf("DecodeUpcoming succeeded on %q", test.block)
			}
		})
	}
}

func TestDecodeEmptyBlock(t *testing.T) {
	img, err := DecodeUpcoming(bytes.NewReader(rawBlock(nil)))
	if err != nil {
		t.Fatalf("DecodeUpcoming: %v", err)
	}
	ttesting.AssertEqualColor(t, "pixel", img.At(16, 16), color.NRGBA{})
}

func TestImageDecode(t *testing.T) {
	green := color.NRGBA{G: 255, A: 255}
	img, format, err := image.Decode(bytes.NewReader(buildFile(encodeBlock(testSprite(green)))))
	if err != nil {
		t.Fatalf("image.Decode: %v", err)
	}
	if format != "spr" {
		t.Errorf("format = %q, want spr", format)
	}
	ttesting.AssertEqualColor(t, "pixel", img.At(10, 10), green)
}
