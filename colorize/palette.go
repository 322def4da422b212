package colorize

import (
	"image/color"

	"github.com/bradfitz/iter"
)

const (
	// OutfitColorCount is the number of entries in the outfit palette.
	OutfitColorCount = hsiHSteps * hsiSIValues
	// DatasetColorCount is the number of entries in the 8-bit palette used
	// by light and automap flags.
	DatasetColorCount = 216

	hsiSIValues = 7
	hsiHSteps   = 19
)

var (
	outfitPalette  [OutfitColorCount]color.RGBA
	datasetPalette [DatasetColorCount]color.RGBA

	outfitIndex  = make(map[color.RGBA]int, OutfitColorCount)
	datasetIndex = make(map[color.RGBA]int, DatasetColorCount)
)

func init() {
	for i := range iter.N(OutfitColorCount) {
		outfitPalette[i] = hsiColor(i)
		if _, ok := outfitIndex[outfitPalette[i]]; !ok {
			outfitIndex[outfitPalette[i]] = i
		}
	}
	for i := range iter.N(DatasetColorCount) {
		datasetPalette[i] = color.RGBA{
			R: uint8(i / 36 % 6 * 51),
			G: uint8(i / 6 % 6 * 51),
			B: uint8(i % 6 * 51),
			A: 0xFF,
		}
		datasetIndex[datasetPalette[i]] = i
	}
}

// OutfitColor returns the outfit palette entry with index i. Out of range
// indices map to entry 0.
func OutfitColor(i int) color.RGBA {
	if i < 0 || i >= OutfitColorCount {
		i = 0
	}
	return outfitPalette[i]
}

// OutfitColorIndex returns the index of the outfit palette entry exactly
// matching c. When nothing matches, ok is false. Alpha is ignored.
func OutfitColorIndex(c color.Color) (idx int, ok bool) {
	idx, ok = outfitIndex[opaque(c)]
	return idx, ok
}

// DatasetColor returns the 8-bit palette entry with index i (6 levels per
// channel). Out of range indices map to black.
func DatasetColor(i int) color.RGBA {
	if i < 0 || i >= DatasetColorCount {
		return color.RGBA{A: 0xFF}
	}
	return datasetPalette[i]
}

// DatasetColorIndex returns the index of the 8-bit palette entry exactly
// matching c, or ok=false.
func DatasetColorIndex(c color.Color) (idx int, ok bool) {
	idx, ok = datasetIndex[opaque(c)]
	return idx, ok
}

// ColorsFromIndices builds region colors from outfit palette indices.
func ColorsFromIndices(head, body, legs, feet int) Colors {
	return Colors{
		Head: OutfitColor(head),
		Body: OutfitColor(body),
		Legs: OutfitColor(legs),
		Feet: OutfitColor(feet),
	}
}

func opaque(c color.Color) color.RGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return color.RGBA{R: n.R, G: n.G, B: n.B, A: 0xFF}
}

// hsiColor computes outfit palette entry i. The palette is a grid of 19 hues
// by 7 saturation/intensity rows; the first column of each row is gray.
func hsiColor(i int) color.RGBA {
	var hue, sat, in float32
	if i%hsiHSteps != 0 {
		hue = float32(i%hsiHSteps) * 1.0 / 18.0
		switch i / hsiHSteps {
		case 0:
			sat, in = 0.25, 1.00
		case 1:
			sat, in = 0.25, 0.75
		case 2:
			sat, in = 0.50, 0.75
		case 3:
			sat, in = 0.667, 0.75
		case 4:
			sat, in = 1.00, 1.00
		case 5:
			sat, in = 1.00, 0.75
		case 6:
			sat, in = 1.00, 0.50
		}
	} else {
		in = 1 - float32(i)/hsiHSteps/hsiSIValues
	}

	if in == 0 {
		return color.RGBA{A: 0xFF}
	}
	if sat == 0 {
		v := uint8(in * 255)
		return color.RGBA{R: v, G: v, B: v, A: 0xFF}
	}

	var r, g, b float32
	switch {
	case hue < 1.0/6.0:
		r = in
		b = in * (1 - sat)
		g = b + (in-b)*6*hue
	case hue < 2.0/6.0:
		g = in
		b = in * (1 - sat)
		r = g - (in-b)*(6*hue-1)
	case hue < 3.0/6.0:
		g = in
		r = in * (1 - sat)
		b = r + (in-r)*(6*hue-2)
	case hue < 4.0/6.0:
		b = in
		r = in * (1 - sat)
		g = b - (in-r)*(6*hue-3)
	case hue < 5.0/6.0:
		b = in
		g = in * (1 - sat)
		r = g + (in-g)*(6*hue-4)
	default:
		r = in
		g = in * (1 - sat)
		b = r - (in-g)*(6*hue-5)
	}
	return color.RGBA{R: uint8(r * 255), G: uint8(g * 255), B: uint8(b * 255), A: 0xFF}
}
