// Package preview composes outfit and object frames from their sprites, the
// way the editor shows them: base pattern, optional addons and a template
// layer driving the colorizer.
package preview

import (
	"image"
	"image/draw"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	xdraw "golang.org/x/image/draw"

	"badc0de.net/pkg/go-tibia-assets/appearances"
	"badc0de.net/pkg/go-tibia-assets/colorize"
)

// Direction selects the pattern column of an outfit.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// DefaultDirection faces the viewer.
const DefaultDirection = South

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	}
	return "unknown"
}

// AddonMask selects the addon pattern rows drawn over the base outfit.
type AddonMask uint8

const (
	Addon1 AddonMask = 1 << iota
	Addon2
)

// SpriteSource resolves sprite ids to images; spr.Reader is one.
type SpriteSource interface {
	SpriteImage(id uint32) (image.Image, error)
}

type Options struct {
	Group     int
	Phase     int
	Direction Direction
	Addons    AddonMask
	Mounted   bool
	Colors    colorize.Colors
}

// Frame draws one frame of a. The base pattern row is drawn first, then each
// selected addon row. When the sprite info has a second layer, each row's
// first layer is colorized using the second one as template.
//
// Sprite id 0 is treated as empty. A frame without any sprite is a blank
// image of colorize-compatible size.
func Frame(a *appearances.Appearance, src SpriteSource, opts Options) (*image.NRGBA, error) {
	fg, err := a.FrameGroupAt(opts.Group)
	if err != nil {
		return nil, errors.Wrapf(err, "frame of %v %d", a.Category, a.ID)
	}
	si := &fg.SpriteInfo

	rows := []int{0}
	for i, m := range []AddonMask{Addon1, Addon2} {
		if opts.Addons&m != 0 && uint32(i+1) < si.PatternHeight {
			rows = append(rows, i+1)
		}
	}
	z := 0
	if opts.Mounted && si.PatternDepth > 1 {
		z = 1
	}

	var canvas *image.NRGBA
	for _, y := range rows {
		layer, err := row(si, src, int(opts.Direction), y, z, opts.Phase, opts.Colors)
		if err != nil {
			return nil, errors.Wrapf(err, "frame of %v %d", a.Category, a.ID)
		}
		if layer == nil {
			continue
		}
		if canvas == nil {
			b := layer.Bounds()
			canvas = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		}
		draw.Draw(canvas, canvas.Bounds(), layer, layer.Bounds().Min, draw.Over)
	}
	if canvas == nil {
		glog.V(2).Infof("preview: %v %d has no sprites for %+v", a.Category, a.ID, opts)
		canvas = image.NewNRGBA(image.Rect(0, 0, 32, 32))
	}
	return canvas, nil
}

// row returns the colorized sprite of one pattern row, or nil if it is empty.
func row(si *appearances.SpriteInfo, src SpriteSource, x, y, z, phase int, cols colorize.Colors) (image.Image, error) {
	id := si.SpriteID(0, x, y, z, phase)
	if id == 0 {
		return nil, nil
	}
	img, err := src.SpriteImage(id)
	if err != nil {
		return nil, errors.Wrapf(err, "sprite %d", id)
	}
	if si.Layers < 2 {
		return img, nil
	}
	tid := si.SpriteID(1, x, y, z, phase)
	if tid == 0 {
		return img, nil
	}
	tmpl, err := src.SpriteImage(tid)
	if err != nil {
		return nil, errors.Wrapf(err, "template sprite %d", tid)
	}
	return colorize.RecolorImage(tmpl, img, cols)
}

// Scale zooms img by an integer factor using nearest neighbour sampling,
// keeping sprite pixels sharp. Factors below 1 are treated as 1.
func Scale(img image.Image, factor int) *image.NRGBA {
	if factor < 1 {
		factor = 1
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}
