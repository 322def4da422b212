// Package xmls reads the OpenTibia Server's outfits.xml, which gives names to
// the outfit look types of a dataset.
package xmls

import (
	"encoding/xml"
	"io"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-tibia-assets/appearances"
	"badc0de.net/pkg/go-tibia-assets/catalog"
)

type Outfits struct {
	xml.Name `xml:"outfits"`
	Outfit   []Outfit `xml:"outfit"`
}

type Outfit struct {
	ID      int               `xml:"id,attr"`
	Premium int               `xml:"premium,attr"`
	Default string            `xml:"default,attr"`
	List    []OutfitListEntry `xml:"list"`
}

type OutfitType string

const (
	OutfitTypeMale   = OutfitType("male")
	OutfitTypeFemale = OutfitType("female")
)

type OutfitListEntry struct {
	Type     OutfitType `xml:"type,attr"`
	LookType uint32     `xml:"looktype,attr"`
	Name     string     `xml:"name,attr"`
}

func ReadOutfits(r io.Reader) (Outfits, error) {
	dec := xml.NewDecoder(r)
	outfits := Outfits{}
	if err := dec.Decode(&outfits); err != nil {
		return outfits, errors.Wrap(err, "decoding outfits xml")
	}
	return outfits, nil
}

// Names maps look types to outfit names. If a look type is listed more than
// once, the first name wins.
func (o Outfits) Names() map[uint32]string {
	names := make(map[uint32]string)
	for _, outfit := range o.Outfit {
		for _, e := range outfit.List {
			if _, ok := names[e.LookType]; ok || e.Name == "" {
				continue
			}
			names[e.LookType] = e.Name
		}
	}
	return names
}

// ApplyNames names the outfit appearances of c after their look types.
// Appearances which already have a name are left alone, as are look types
// the catalog does not hold. It returns the number of appearances named.
func (o Outfits) ApplyNames(c *catalog.Catalog) int {
	n := 0
	for lookType, name := range o.Names() {
		a, err := c.Find(appearances.Outfit, lookType)
		if err != nil {
			glog.V(2).Infof("xmls: look type %d (%q) not in catalog", lookType, name)
			continue
		}
		if a.Name != "" {
			continue
		}
		a.Name = name
		n++
	}
	return n
}
