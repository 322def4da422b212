// Command assetprint prints sprites, items and colorized outfits from the
// loaded datafiles on the terminal.
package main

import (
	"flag"
	"os"

	"badc0de.net/pkg/flagutil/v1"
	"github.com/golang/glog"

	"badc0de.net/pkg/go-tibia-assets/appearances"
	"badc0de.net/pkg/go-tibia-assets/assets"
	"badc0de.net/pkg/go-tibia-assets/colorize"
	"badc0de.net/pkg/go-tibia-assets/preview"
)

var (
	sprID    = flag.Int("spr", 0, "sprite to print")
	itemID   = flag.Int("item", 0, "ID of item to print")
	outfitID = flag.Int("outfit", 0, "ID of outfit to print")
	frame    = flag.Int("fr", 0, "animation phase of the item or outfit")

	head   = flag.Int("head", 0, "outfit palette index for the head")
	body   = flag.Int("body", 0, "outfit palette index for the body")
	legs   = flag.Int("legs", 0, "outfit palette index for the legs")
	feet   = flag.Int("feet", 0, "outfit palette index for the feet")
	dir    = flag.Int("dir", int(preview.DefaultDirection), "outfit direction: 0 north, 1 east, 2 south, 3 west")
	addons = flag.Int("addons", 0, "outfit addon mask: 1 first addon, 2 second addon")
	mount  = flag.Bool("mount", false, "whether to print the mounted outfit")

	recolorTemplate = flag.String("recolor_template", "", "template image (png or tga) to recolor -recolor_target with, using -head, -body, -legs and -feet")
	recolorTarget   = flag.String("recolor_target", "", "image (png or tga) to recolor")
)

func main() {
	assets.SetupFilePathFlags()
	flagutil.Parse()
	flag.Set("logtostderr", "true")

	if *recolorTemplate != "" || *recolorTarget != "" {
		if err := recolorHandler(*recolorTemplate, *recolorTarget, colors()); err != nil {
			glog.Errorf("recoloring: %v", err)
			os.Exit(1)
		}
		return
	}

	a, err := assets.FromFilePathFlags()
	if err != nil {
		glog.Errorf("loading assets: %v", err)
		os.Exit(1)
	}
	defer a.Close()

	if *sprID != 0 {
		sprHandler(a, *sprID)
	}
	if *itemID != 0 {
		appearanceHandler(a, appearances.Item, *itemID, preview.Options{Phase: *frame})
	}
	if *outfitID != 0 {
		appearanceHandler(a, appearances.Outfit, *outfitID, preview.Options{
			Phase:     *frame,
			Direction: preview.Direction(*dir),
			Addons:    preview.AddonMask(*addons),
			Mounted:   *mount,
			Colors:    colors(),
		})
	}
}

func colors() colorize.Colors {
	return colorize.ColorsFromIndices(*head, *body, *legs, *feet)
}

func sprHandler(a *assets.Assets, idx int) {
	if a.Sprites == nil {
		glog.Errorf("no spr loaded; pass --%s", assets.FlagTibiaSprPath)
		return
	}
	img, err := a.Sprites.SpriteImage(uint32(idx))
	if err != nil {
		glog.Errorf("error decoding spr: %v", err)
		return
	}
	out(img)
}

func appearanceHandler(a *assets.Assets, cat appearances.Category, id int, opts preview.Options) {
	if a.Sprites == nil {
		glog.Errorf("no spr loaded; pass --%s", assets.FlagTibiaSprPath)
		return
	}
	app, err := a.Catalog.Find(cat, uint32(id))
	if err != nil {
		glog.Errorf("%v", err)
		return
	}
	img, err := preview.Frame(app, a.Sprites, opts)
	if err != nil {
		glog.Errorf("error compositing %v %d: %v", cat, id, err)
		return
	}
	out(img)
}
