//go:build !windows

package imageprint

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"

	"github.com/BourgeoisBear/rasterm"
	"github.com/ericpauley/go-quantize/quantize"
	"github.com/golang/glog"
)

// sixelColors is the palette size used for sixel output.
const sixelColors = 64

func isTermItermWez() bool {
	return rasterm.IsItermCapable()
}

// PrintRasTerm draws an image using the RasTerm library.
//
// This should enable drawing in Kitty, iTerm2, WezTerm and sixel capable
// terminals. It reports whether anything was drawn.
func PrintRasTerm(i image.Image) bool {
	var err error
	switch {
	case rasterm.IsKittyCapable():
		err = rasterm.KittyWriteImage(os.Stdout, i, rasterm.KittyImgOpts{})
	case rasterm.IsItermCapable():
		err = rasterm.ItermWriteImage(os.Stdout, i)
	default:
		if capable, serr := rasterm.IsSixelCapable(); !capable || serr != nil {
			return false
		}
		err = rasterm.SixelWriteImage(os.Stdout, sixelPaletted(i))
	}
	if err != nil {
		glog.Errorf("imageprint: %v", err)
		return false
	}
	fmt.Printf("\n")
	return true
}

// sixelPaletted reduces i to at most sixelColors colors.
func sixelPaletted(i image.Image) *image.Paletted {
	q := quantize.MedianCutQuantizer{}
	pal := q.Quantize(make(color.Palette, 0, sixelColors), i)
	p := image.NewPaletted(i.Bounds(), pal)
	draw.Draw(p, i.Bounds(), i, i.Bounds().Min, draw.Src)
	return p
}
