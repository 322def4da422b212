package assets

import (
	"github.com/golang/glog"
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-tibia-assets/paths"
	"badc0de.net/pkg/go-tibia-assets/xmls"
)

// NameOutfits names the catalog's outfits using the outfits.xml at path.
func (a *Assets) NameOutfits(outfitsXMLPath string) error {
	glog.Infof("assets.NameOutfits(): opening outfits xml: %q", outfitsXMLPath)
	f, err := paths.NoFindOpen(outfitsXMLPath)
	if err != nil {
		return errors.Wrap(err, "opening outfits xml")
	}
	defer f.Close()

	outfits, err := xmls.ReadOutfits(f)
	if err != nil {
		return errors.Wrap(err, "parsing outfits xml")
	}
	n := outfits.ApplyNames(a.Catalog)
	glog.V(1).Infof("assets.NameOutfits(): named %d outfits", n)
	return nil
}
