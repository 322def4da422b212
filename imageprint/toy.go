// Package imageprint prints images on terminal. UNSUPPORTED debug package.
//
// This package has an API with no stability guarantees.
package imageprint

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	ic "image/color"
	"image/png"
	"io"
	"os"

	"github.com/gookit/color"
)

func shade(w io.Writer, col ic.Color, escapesTrueColor, blanks, noColor bool) {
	cR, cG, cB, cA := col.RGBA()
	if cA == 0 {
		if noColor {
			fmt.Fprintf(w, "  ")
		} else {
			fmt.Fprintf(w, "\x1b[0m  ")
		}
		return
	}

	text := "  "
	if !blanks {
		a := ((cR + cG + cB) / 3) >> 8
		switch {
		case a < 32:
			text = ".."
		case a < 64:
			text = "--"
		case a < 128:
			text = "=="
		default:
			text = "##"
		}
	}

	r, g, b := uint8(cR>>8), uint8(cG>>8), uint8(cB>>8)
	switch {
	case noColor:
		fmt.Fprint(w, text)
	case escapesTrueColor:
		fmt.Fprintf(w, "\x1b[48;2;%d;%d;%dm%s\x1b[0m", r, g, b, text)
	default:
		fmt.Fprint(w, color.RGB(r, g, b, true).Sprint(text))
	}
}

func fprint(w io.Writer, i image.Image, escapesTrueColor, blanks, noColor bool) {
	for y := i.Bounds().Min.Y; y < i.Bounds().Max.Y; y++ {
		for x := i.Bounds().Min.X; x < i.Bounds().Max.X; x++ {
			shade(w, i.At(x, y), escapesTrueColor, blanks, noColor)
		}
		if !noColor {
			fmt.Fprintf(w, "\x1b[0m")
		}
		fmt.Fprintf(w, "\n")
	}
}

// Fprint256Color draws an image using 256color'd ascii art.
func Fprint256Color(w io.Writer, i image.Image, blanks bool) {
	fprint(w, i, false, blanks, false)
}

// Fprint24bit draws an image using 24bit color escape sequences by changing background.
func Fprint24bit(w io.Writer, i image.Image, blanks bool) {
	fprint(w, i, true, blanks, false)
}

// FprintNoColor draws an image without using color escape sequences. Only
// makes sense with blanks=false.
func FprintNoColor(w io.Writer, i image.Image, blanks bool) {
	fprint(w, i, false, blanks, true)
}

func Print256Color(i image.Image, blanks bool) { Fprint256Color(os.Stdout, i, blanks) }
func Print24bit(i image.Image, blanks bool)    { Fprint24bit(os.Stdout, i, blanks) }
func PrintNoColor(i image.Image, blanks bool)  { FprintNoColor(os.Stdout, i, blanks) }

// PrintITerm draws an image using iTerm2's escape sequences.
//
// https://www.iterm2.com/documentation-images.html
func PrintITerm(i image.Image, fn string) {
	if !isTermItermWez() {
		return
	}
	name := base64.StdEncoding.EncodeToString([]byte(fn))
	b := &bytes.Buffer{}
	bEnc := base64.NewEncoder(base64.StdEncoding, b)
	png.Encode(bEnc, i)
	bEnc.Close()
	fmt.Printf("\n\033]1337;File=name=%s;inline=1;size=%d,width=%dpx;height=%dpx:%s\a\n", name, len(b.String()), i.Bounds().Size().X, i.Bounds().Size().Y, b.String())
}
