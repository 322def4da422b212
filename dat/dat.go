// Package dat reads the header of a Tibia.dat dataset and seeds a catalog
// with one skeleton appearance per id it declares.
//
// Full record decoding is not implemented; records carry their id and
// category only, and are filled in by whoever edits them.
package dat

import (
	"encoding/binary"
	"io"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-tibia-assets/appearances"
	"badc0de.net/pkg/go-tibia-assets/catalog"
)

// FirstItemID is the lowest id used by items. Ids below it are reserved.
const FirstItemID = 100

type Header struct {
	Signature uint32

	// Highest ids in each category. Items start at FirstItemID, every other
	// category at 1.
	ItemCount, OutfitCount, EffectCount, DistanceEffectCount uint16
}

type Dataset struct {
	Header Header
}

func NewDataset(r io.Reader) (*Dataset, error) {
	h := Header{}
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return nil, errors.Wrap(err, "reading dat header")
	}
	if h.ItemCount != 0 && h.ItemCount < FirstItemID {
		return nil, errors.Errorf("dat header declares max item id %d, below %d", h.ItemCount, FirstItemID)
	}
	glog.V(2).Infof("dat %08x: %d items, %d outfits, %d effects, %d missiles",
		h.Signature, h.ItemCount, h.OutfitCount, h.EffectCount, h.DistanceEffectCount)
	return &Dataset{Header: h}, nil
}

// MaxID returns the highest id declared for cat, or 0 when there are none.
func (d *Dataset) MaxID(cat appearances.Category) uint32 {
	switch cat {
	case appearances.Item:
		return uint32(d.Header.ItemCount)
	case appearances.Outfit:
		return uint32(d.Header.OutfitCount)
	case appearances.Effect:
		return uint32(d.Header.EffectCount)
	case appearances.Missile:
		return uint32(d.Header.DistanceEffectCount)
	}
	return 0
}

// FirstID returns the lowest id of cat.
func FirstID(cat appearances.Category) uint32 {
	if cat == appearances.Item {
		return FirstItemID
	}
	return 1
}

// Count returns the number of records declared for cat.
func (d *Dataset) Count(cat appearances.Category) int {
	last := d.MaxID(cat)
	if last < FirstID(cat) {
		return 0
	}
	return int(last - FirstID(cat) + 1)
}

// Populate adds a skeleton appearance for every declared id to c, category
// by category in ascending id order.
func (d *Dataset) Populate(c *catalog.Catalog) error {
	for _, cat := range appearances.Categories {
		first := FirstID(cat)
		for i := 0; i < d.Count(cat); i++ {
			a := &appearances.Appearance{ID: first + uint32(i), Flags: &appearances.Flags{}}
			if err := c.Add(cat, a); err != nil {
				return errors.Wrapf(err, "populating %v", cat)
			}
		}
		glog.V(2).Infof("dat: populated %d %v records", d.Count(cat), cat)
	}
	return nil
}
