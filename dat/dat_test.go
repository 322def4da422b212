package dat

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"testing"

	"badc0de.net/pkg/go-tibia-assets/appearances"
	"badc0de.net/pkg/go-tibia-assets/catalog"
	"badc0de.net/pkg/go-tibia-assets/ttesting"
)

func datFile(h Header) *bytes.Reader {
	b := &bytes.Buffer{}
	binary.Write(b, binary.LittleEndian, h)
	return bytes.NewReader(b.Bytes())
}

func TestNewDataset(t *testing.T) {
	ds, err := NewDataset(datFile(Header{ItemCount: 10477, OutfitCount: 351, EffectCount: 69, DistanceEffectCount: 42}))
	if err != nil {
		t.Fatalf("failed to parse dataset: %s", err)
	}

	expectedCounts := map[appearances.Category]int{
		appearances.Item:    10378,
		appearances.Outfit:  351,
		appearances.Effect:  69,
		appearances.Missile: 42,
	}
	for cat, want := range expectedCounts {
		ttesting.AssertEqualInt(t, fmt.Sprintf("correct %v count", cat), ds.Count(cat), want)
	}
	ttesting.AssertEqualUint32(t, "max item id", ds.MaxID(appearances.Item), 10477)
	ttesting.AssertEqualInt(t, "invalid category", ds.Count(appearances.Category(9)), 0)
}

func TestNewDatasetErrors(t *testing.T) {
	if _, err := NewDataset(bytes.NewReader([]byte{1, 2, 3})); err == nil {
		t.Errorf("short header was accepted")
	}
	if _, err := NewDataset(datFile(Header{ItemCount: 50})); err == nil {
		t.Errorf("max item id below %d was accepted", FirstItemID)
	}
}

func TestPopulate(t *testing.T) {
	ds, err := NewDataset(datFile(Header{ItemCount: 104, OutfitCount: 3, EffectCount: 0, DistanceEffectCount: 1}))
	if err != nil {
		t.Fatalf("failed to parse dataset: %s", err)
	}
	c := catalog.New()
	if err := ds.Populate(c); err != nil {
		t.Fatalf("Populate: %v", err)
	}

	items, _ := c.All(appearances.Item)
	ttesting.AssertEqualInt(t, "items", len(items), 5)
	ttesting.AssertEqualInt(t, "first item's ID should be 100", int(items[0].ID), 100)
	ttesting.AssertEqualInt(t, "last item's ID should be max id", int(items[len(items)-1].ID), 104)
	ttesting.AssertEqualInt(t, "outfits", c.Len(appearances.Outfit), 3)
	ttesting.AssertEqualInt(t, "effects", c.Len(appearances.Effect), 0)
	ttesting.AssertEqualInt(t, "missiles", c.Len(appearances.Missile), 1)

	sl, _ := c.ShowList(appearances.Outfit)
	ttesting.AssertEqualInt(t, "outfit show list", sl.Len(), 3)

	// A second pass collides with the ids already present.
	if err := ds.Populate(c); err == nil {
		t.Errorf("populating twice succeeded")
	}
}
