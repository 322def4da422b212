package main

import (
	"flag"
	"image"

	"github.com/nfnt/resize"

	"badc0de.net/pkg/go-tibia-assets/imageprint"
	"badc0de.net/pkg/go-tibia-assets/preview"
)

var (
	col      = flag.Bool("col", true, "whether to use color at all")
	col256   = flag.Bool("col256", false, "whether to use 256 col instead of 24 bit")
	iterm    = flag.Bool("iterm", false, "whether to print with iterm escape code instead of 24 bit")
	rasterm  = flag.Bool("rasterm", false, "whether to print with kitty, iterm or sixel graphics if the terminal supports it")
	blanks   = flag.Bool("blanks", true, "whether to just use colored blanks instead of some bad ascii art")
	downsize = flag.Bool("downsize", true, "whether to shrink images larger than the terminal")
	zoom     = flag.Int("zoom", 1, "integer zoom applied before printing with graphics protocols")
)

func out(img image.Image) {
	if *downsize {
		termSize, err := GetTermSize()
		if err == nil {
			if (termSize.WSXPixel != 0 && termSize.WSYPixel != 0) && (*rasterm || *iterm) {
				// Prefer native size if there's a chance we print an image rather than pixels.
				img = resize.Thumbnail(termSize.WSXPixel/2, termSize.WSYPixel/2, img, resize.NearestNeighbor)
			} else {
				img = resize.Thumbnail(termSize.WSCol/2, termSize.WSRow, img, resize.NearestNeighbor)
			}
		}
	}

	if *rasterm || *iterm {
		img = preview.Scale(img, *zoom)
	}

	switch {
	case *rasterm && imageprint.PrintRasTerm(img):
	case !*col:
		imageprint.PrintNoColor(img, *blanks)
	case *iterm:
		imageprint.PrintITerm(img, "image.png")
	case *col256:
		imageprint.Print256Color(img, *blanks)
	default:
		imageprint.Print24bit(img, *blanks)
	}
}
