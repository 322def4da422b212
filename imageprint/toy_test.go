package imageprint

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	return img
}

func TestFprintNoColor(t *testing.T) {
	b := &bytes.Buffer{}
	FprintNoColor(b, testImage(), false)
	if got, want := b.String(), "##  \n"; got != want {
		t.Errorf("got %q; want %q", got, want)
	}
}

func TestFprint24bit(t *testing.T) {
	b := &bytes.Buffer{}
	Fprint24bit(b, testImage(), true)
	if got, want := b.String(), "\x1b[48;2;255;255;255m  \x1b[0m\x1b[0m  \x1b[0m\n"; got != want {
		t.Errorf("got %q; want %q", got, want)
	}
}
