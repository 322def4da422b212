// Package colorize recolors outfit sprites.
//
// Outfits ship with a template layer next to each sprite. The template is
// drawn in pure channel patterns (yellow, red, green, blue) marking the
// head, body, legs and feet regions of the sprite. Recolor blends every
// marked pixel of the sprite with the color chosen for its region.
package colorize

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/pkg/errors"
)

// ErrSizeMismatch is returned when the template and the target differ in
// width or height.
var ErrSizeMismatch = errors.New("template and target sizes differ")

// Region is the body part a template pixel belongs to.
type Region int

const (
	RegionNone Region = iota
	RegionHead
	RegionBody
	RegionLegs
	RegionFeet
)

func (r Region) String() string {
	switch r {
	case RegionHead:
		return "head"
	case RegionBody:
		return "body"
	case RegionLegs:
		return "legs"
	case RegionFeet:
		return "feet"
	}
	return "none"
}

// Classify returns the region marked by a template pixel's channels. The
// checks are made in order: yellow (head), red (body), green (legs), blue
// (feet). Any other pattern is RegionNone.
func Classify(r, g, b uint8) Region {
	switch {
	case r > 0 && g > 0 && b == 0:
		return RegionHead
	case r > 0 && g == 0 && b == 0:
		return RegionBody
	case r == 0 && g > 0 && b == 0:
		return RegionLegs
	case r == 0 && g == 0 && b > 0:
		return RegionFeet
	}
	return RegionNone
}

// Colors holds the color for each region. Only the RGB channels are used.
type Colors struct {
	Head, Body, Legs, Feet color.RGBA
}

func (c Colors) region(r Region) (color.RGBA, bool) {
	switch r {
	case RegionHead:
		return c.Head, true
	case RegionBody:
		return c.Body, true
	case RegionLegs:
		return c.Legs, true
	case RegionFeet:
		return c.Feet, true
	}
	return color.RGBA{}, false
}

// Recolor blends target with the region colors marked by template, in
// place, and returns target. template is never modified.
//
// A pixel is left alone when the template pixel equals the target pixel
// (all four channels), or when the template pixel marks no region.
// Otherwise each RGB channel becomes (target + region) / 2, truncated;
// alpha is kept.
func Recolor(template, target *image.NRGBA, cols Colors) (*image.NRGBA, error) {
	tb, ob := template.Bounds(), target.Bounds()
	if tb.Dx() != ob.Dx() || tb.Dy() != ob.Dy() {
		return nil, errors.Wrapf(ErrSizeMismatch, "template %dx%d, target %dx%d", tb.Dx(), tb.Dy(), ob.Dx(), ob.Dy())
	}

	for y := 0; y < tb.Dy(); y++ {
		for x := 0; x < tb.Dx(); x++ {
			ti := template.PixOffset(tb.Min.X+x, tb.Min.Y+y)
			oi := target.PixOffset(ob.Min.X+x, ob.Min.Y+y)
			tp := template.Pix[ti : ti+4 : ti+4]
			op := target.Pix[oi : oi+4 : oi+4]

			if tp[0] == op[0] && tp[1] == op[1] && tp[2] == op[2] && tp[3] == op[3] {
				continue
			}
			col, ok := cols.region(Classify(tp[0], tp[1], tp[2]))
			if !ok {
				continue
			}
			op[0] = blend(op[0], col.R)
			op[1] = blend(op[1], col.G)
			op[2] = blend(op[2], col.B)
		}
	}
	return target, nil
}

// RecolorImage is like Recolor, but accepts any images and returns a new
// image, leaving both inputs untouched.
func RecolorImage(template, target image.Image, cols Colors) (*image.NRGBA, error) {
	return Recolor(toNRGBA(template), copyNRGBA(target), cols)
}

func blend(a, b uint8) uint8 {
	return uint8((int(a) + int(b)) / 2)
}

func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok {
		return n
	}
	return copyNRGBA(img)
}

func copyNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
