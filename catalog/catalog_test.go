package catalog

import (
	"image"
	"math"
	"testing"

	"badc0de.net/pkg/go-tibia-assets/appearances"
	"badc0de.net/pkg/go-tibia-assets/ttesting"
)

func newTestCatalog(t *testing.T, cat appearances.Category, ids ...uint32) *Catalog {
	t.Helper()
	c := New()
	for _, id := range ids {
		a := &appearances.Appearance{
			ID:    id,
			Flags: &appearances.Flags{Light: &appearances.Light{Brightness: id}},
			FrameGroups: []appearances.FrameGroup{
				{SpriteInfo: appearances.SpriteInfo{SpriteIDs: []uint32{id * 10}}},
			},
		}
		if err := c.Add(cat, a); err != nil {
			t.Fatalf("Add(%d): %v", id, err)
		}
	}
	return c
}

func ids(t *testing.T, c *Catalog, cat appearances.Category) []uint32 {
	t.Helper()
	all, err := c.All(cat)
	if err != nil {
		t.Fatalf("All(%v): %v", cat, err)
	}
	out := make([]uint32, len(all))
	for i, a := range all {
		out[i] = a.ID
	}
	return out
}

func showIDs(t *testing.T, c *Catalog, cat appearances.Category) []uint32 {
	t.Helper()
	sl, err := c.ShowList(cat)
	if err != nil {
		t.Fatalf("ShowList(%v): %v", cat, err)
	}
	var out []uint32
	for _, e := range sl.Entries() {
		out = append(out, e.ID)
	}
	return out
}

func TestDuplicateAssignsConsecutiveIDs(t *testing.T) {
	c := newTestCatalog(t, appearances.Item, 1, 3, 5)

	dups, err := c.Duplicate(appearances.Item, []uint32{3, 5})
	if err != nil {
		t.Fatalf("Duplicate: %v", err)
	}
	ttesting.AssertEqualInt(t, "duplicate count", len(dups), 2)
	ttesting.AssertEqualUint32(t, "first duplicate id", dups[0].ID, 6)
	ttesting.AssertEqualUint32(t, "second duplicate id", dups[1].ID, 7)
	ttesting.AssertEqualUint32s(t, "category ids", ids(t, c, appearances.Item), []uint32{1, 3, 5, 6, 7})
	ttesting.AssertEqualUint32s(t, "show list ids", showIDs(t, c, appearances.Item), []uint32{1, 3, 5, 6, 7})

	// The clone of 3 carries 3's data but shares nothing with it.
	ttesting.AssertEqualUint32(t, "clone keeps flags", dups[0].Flags.Light.Brightness, 3)
	dups[0].Flags.Light.Brightness = 100
	dups[0].FrameGroups[0].SpriteInfo.SpriteIDs[0] = 1
	src, _ := c.Find(appearances.Item, 3)
	ttesting.AssertEqualUint32(t, "source flags untouched", src.Flags.Light.Brightness, 3)
	ttesting.AssertEqualUint32(t, "source sprites untouched", src.FrameGroups[0].SpriteInfo.SpriteIDs[0], 30)

	sl, _ := c.ShowList(appearances.Item)
	for _, e := range sl.Entries()[3:] {
		if e.Thumbnail != nil {
			t.Errorf("new show entry %d has a thumbnail", e.ID)
		}
	}
}

func TestDuplicateUsesMaximumNotLast(t *testing.T) {
	c := newTestCatalog(t, appearances.Outfit, 9, 2)
	dups, err := c.Duplicate(appearances.Outfit, []uint32{2, 2, 9})
	if err != nil {
		t.Fatalf("Duplicate: %v", err)
	}
	ttesting.AssertEqualUint32s(t, "ids", ids(t, c, appearances.Outfit), []uint32{9, 2, 10, 11, 12})
	ttesting.AssertEqualUint32(t, "last duplicate", dups[2].ID, 12)
}

func TestDuplicateIDsStayUnique(t *testing.T) {
	for _, cat := range appearances.Categories {
		c := newTestCatalog(t, cat, 4, 1, 7)
		batches := [][]uint32{{1}, {4, 7}, {8, 1, 4}, {}, {10, 9}}
		for _, b := range batches {
			if _, err := c.Duplicate(cat, b); err != nil {
				t.Fatalf("%v: Duplicate(%v): %v", cat, b, err)
			}
		}
		seen := map[uint32]bool{}
		for _, id := range ids(t, c, cat) {
			if seen[id] {
				t.Errorf("%v: id %d appears twice", cat, id)
			}
			seen[id] = true
		}
		ttesting.AssertEqualInt(t, cat.String()+" count", c.Len(cat), 3+1+2+3+2)
	}
}

func TestDuplicateAtIDSpaceEnd(t *testing.T) {
	c := newTestCatalog(t, appearances.Item, 1, math.MaxUint32)
	_, err := c.Duplicate(appearances.Item, []uint32{1, 1})
	ttesting.AssertErrorIs(t, "full id space", err, ErrIDSpaceExhausted)
	ttesting.AssertEqualUint32s(t, "ids unchanged", ids(t, c, appearances.Item), []uint32{1, math.MaxUint32})
	ttesting.AssertEqualUint32s(t, "show list unchanged", showIDs(t, c, appearances.Item), []uint32{1, math.MaxUint32})

	c = newTestCatalog(t, appearances.Item, 1, math.MaxUint32-1)
	dups, err := c.Duplicate(appearances.Item, []uint32{1})
	if err != nil {
		t.Fatalf("Duplicate of the last free id: %v", err)
	}
	ttesting.AssertEqualUint32(t, "last id", dups[0].ID, math.MaxUint32)
	_, err = c.Duplicate(appearances.Item, []uint32{1})
	ttesting.AssertErrorIs(t, "after last id", err, ErrIDSpaceExhausted)
	ttesting.AssertEqualInt(t, "count", c.Len(appearances.Item), 3)
}

func TestDuplicateMissingLeavesCatalogUnchanged(t *testing.T) {
	c := newTestCatalog(t, appearances.Effect, 1, 2)
	_, err := c.Duplicate(appearances.Effect, []uint32{1, 42})
	ttesting.AssertErrorIs(t, "missing id", err, ErrRecordNotFound)
	ttesting.AssertEqualUint32s(t, "ids unchanged", ids(t, c, appearances.Effect), []uint32{1, 2})
	ttesting.AssertEqualUint32s(t, "show list unchanged", showIDs(t, c, appearances.Effect), []uint32{1, 2})
}

func TestDuplicateEmptyCategory(t *testing.T) {
	c := New()
	_, err := c.Duplicate(appearances.Missile, []uint32{1})
	ttesting.AssertErrorIs(t, "empty category", err, ErrRecordNotFound)
	dups, err := c.Duplicate(appearances.Missile, nil)
	if err != nil || len(dups) != 0 {
		t.Errorf("Duplicate(nil) = %v, %v; want empty, nil", dups, err)
	}
}

func TestInvalidCategory(t *testing.T) {
	c := New()
	bad := appearances.Category(7)

	_, err := c.All(bad)
	ttesting.AssertErrorIs(t, "All", err, ErrInvalidCategory)
	_, err = c.Duplicate(bad, []uint32{1})
	ttesting.AssertErrorIs(t, "Duplicate", err, ErrInvalidCategory)
	ttesting.AssertErrorIs(t, "Resort", c.Resort(bad), ErrInvalidCategory)
	ttesting.AssertErrorIs(t, "Regenerate", c.Regenerate(bad), ErrInvalidCategory)
	ttesting.AssertErrorIs(t, "Add", c.Add(bad, &appearances.Appearance{ID: 1}), ErrInvalidCategory)
	_, err = c.ShowList(bad)
	ttesting.AssertErrorIs(t, "ShowList", err, ErrInvalidCategory)
	_, err = c.Find(bad, 1)
	ttesting.AssertErrorIs(t, "Find", err, ErrInvalidCategory)
	ttesting.AssertEqualInt(t, "Len", c.Len(bad), 0)
}

func TestAddRejectsDuplicateID(t *testing.T) {
	c := newTestCatalog(t, appearances.Item, 100)
	err := c.Add(appearances.Item, &appearances.Appearance{ID: 100})
	ttesting.AssertErrorIs(t, "duplicate", err, ErrDuplicateID)
	if err := c.Add(appearances.Outfit, &appearances.Appearance{ID: 100}); err != nil {
		t.Errorf("same id in another category should be allowed: %v", err)
	}
}

func TestResortOrdersShowListOnly(t *testing.T) {
	c := newTestCatalog(t, appearances.Item, 5, 3, 9, 1)
	thumb := image.NewNRGBA(image.Rect(0, 0, 32, 32))
	sl, _ := c.ShowList(appearances.Item)
	sl.SetThumbnail(3, thumb)

	if err := c.Resort(appearances.Item); err != nil {
		t.Fatalf("Resort: %v", err)
	}
	ttesting.AssertEqualUint32s(t, "show list sorted", showIDs(t, c, appearances.Item), []uint32{1, 3, 5, 9})
	ttesting.AssertEqualUint32s(t, "storage order kept", ids(t, c, appearances.Item), []uint32{5, 3, 9, 1})

	e, _ := sl.At(1)
	if e.ID != 3 || e.Thumbnail == nil {
		t.Errorf("thumbnail did not follow its entry: %+v", e)
	}

	entries := sl.Entries()
	for i := 1; i < len(entries); i++ {
		if entries[i-1].ID > entries[i].ID {
			t.Errorf("entries not non-decreasing at %d: %d > %d", i, entries[i-1].ID, entries[i].ID)
		}
	}
}

func TestRegenerateKeepsThumbnails(t *testing.T) {
	c := newTestCatalog(t, appearances.Outfit, 2, 1)
	c.Resort(appearances.Outfit)
	sl, _ := c.ShowList(appearances.Outfit)
	sl.SetThumbnail(2, image.NewNRGBA(image.Rect(0, 0, 8, 8)))

	if err := c.Regenerate(appearances.Outfit); err != nil {
		t.Fatalf("Regenerate: %v", err)
	}
	ttesting.AssertEqualUint32s(t, "storage order", showIDs(t, c, appearances.Outfit), []uint32{2, 1})
	if e, _ := sl.At(0); e.Thumbnail == nil {
		t.Errorf("thumbnail lost on regenerate")
	}
}

func TestReplace(t *testing.T) {
	c := newTestCatalog(t, appearances.Item, 1, 2)
	a, _ := c.Find(appearances.Item, 2)
	edit := a.Clone()
	edit.Name = "edited"

	if err := c.Replace(appearances.Item, edit); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	edit.Name = "changed after save"
	got, _ := c.Find(appearances.Item, 2)
	if got.Name != "edited" {
		t.Errorf("got name %q; want %q", got.Name, "edited")
	}
	err := c.Replace(appearances.Item, &appearances.Appearance{ID: 77})
	ttesting.AssertErrorIs(t, "replace missing", err, ErrRecordNotFound)
}

func TestShowListThumbnailAndWindow(t *testing.T) {
	c := newTestCatalog(t, appearances.Item, 1, 2, 3, 4, 5)
	sl, _ := c.ShowList(appearances.Item)

	if !sl.SetThumbnail(4, image.NewNRGBA(image.Rect(0, 0, 64, 64))) {
		t.Fatalf("SetThumbnail(4) did not find entry")
	}
	if sl.SetThumbnail(40, nil) {
		t.Errorf("SetThumbnail(40) found a missing entry")
	}
	e, _ := sl.At(3)
	ttesting.AssertEqualInt(t, "thumbnail width", e.Thumbnail.Bounds().Dx(), ThumbnailSize)

	win := sl.Window(3, 10)
	ttesting.AssertEqualInt(t, "clamped window", len(win), 2)
	ttesting.AssertEqualInt(t, "negative offset", len(sl.Window(-2, 2)), 2)
	ttesting.AssertEqualInt(t, "past end", len(sl.Window(9, 2)), 0)
	ttesting.AssertEqualInt(t, "index of", sl.IndexOf(5), 4)
	ttesting.AssertEqualInt(t, "index of missing", sl.IndexOf(6), -1)
}
