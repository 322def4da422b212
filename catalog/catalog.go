// Package catalog owns the loaded appearances, one ordered collection per
// category, and the lightweight show lists the editor uses to enumerate them.
//
// A Catalog is not safe for concurrent use. It is meant to be driven from a
// single control goroutine; callers serving it to several goroutines (such
// as the web package) serialize access themselves.
package catalog

import (
	"math"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-tibia-assets/appearances"
)

var (
	ErrInvalidCategory  = errors.New("invalid category")
	ErrRecordNotFound   = errors.New("record not found")
	ErrDuplicateID      = errors.New("duplicate record id")
	ErrIDSpaceExhausted = errors.New("no free record ids above the maximum")
)

type Catalog struct {
	records [len(appearances.Categories)][]*appearances.Appearance
	maxID   [len(appearances.Categories)]uint32
	shows   [len(appearances.Categories)]*ShowList

	// position of each id in records
	pos [len(appearances.Categories)]map[uint32]int
}

// New creates an empty catalog.
func New() *Catalog {
	c := &Catalog{}
	for i := range c.shows {
		c.shows[i] = &ShowList{}
		c.pos[i] = make(map[uint32]int)
	}
	return c
}

func checkCategory(cat appearances.Category) error {
	if !cat.Valid() {
		return errors.Wrapf(ErrInvalidCategory, "category %d", int(cat))
	}
	return nil
}

// Add appends a loaded appearance to the end of its category's collection
// and show list. The catalog takes ownership of a.
func (c *Catalog) Add(cat appearances.Category, a *appearances.Appearance) error {
	if err := checkCategory(cat); err != nil {
		return err
	}
	if c.index(cat, a.ID) >= 0 {
		return errors.Wrapf(ErrDuplicateID, "%v %d", cat, a.ID)
	}
	a.Category = cat
	c.append(cat, a)
	return nil
}

func (c *Catalog) append(cat appearances.Category, a *appearances.Appearance) {
	c.pos[cat][a.ID] = len(c.records[cat])
	c.records[cat] = append(c.records[cat], a)
	if a.ID > c.maxID[cat] {
		c.maxID[cat] = a.ID
	}
	c.shows[cat].entries = append(c.shows[cat].entries, ShowEntry{ID: a.ID})
}

// All returns the category's appearances in storage order. The slice is
// owned by the catalog; callers must not modify it.
func (c *Catalog) All(cat appearances.Category) ([]*appearances.Appearance, error) {
	if err := checkCategory(cat); err != nil {
		return nil, err
	}
	return c.records[cat], nil
}

// Len returns the number of appearances in a category, or 0 for an invalid
// category.
func (c *Catalog) Len(cat appearances.Category) int {
	if !cat.Valid() {
		return 0
	}
	return len(c.records[cat])
}

// MaxID returns the highest id present in the category, or 0 when it is
// empty.
func (c *Catalog) MaxID(cat appearances.Category) (uint32, error) {
	if err := checkCategory(cat); err != nil {
		return 0, err
	}
	return c.maxID[cat], nil
}

// Find returns the stored appearance with the passed id.
func (c *Catalog) Find(cat appearances.Category, id uint32) (*appearances.Appearance, error) {
	if err := checkCategory(cat); err != nil {
		return nil, err
	}
	i := c.index(cat, id)
	if i < 0 {
		return nil, errors.Wrapf(ErrRecordNotFound, "%v %d", cat, id)
	}
	return c.records[cat][i], nil
}

func (c *Catalog) index(cat appearances.Category, id uint32) int {
	if i, ok := c.pos[cat][id]; ok {
		return i
	}
	return -1
}

// Duplicate deep-clones the appearances with the passed ids, in the passed
// order, and appends the clones to the category. Each clone gets the id one
// above the category's current maximum, so a batch of k duplicates receives
// k consecutive ids. A matching show list entry without thumbnail is appended
// for every clone.
//
// All ids are resolved before anything is appended: if one is missing,
// ErrRecordNotFound is returned and the catalog is left unchanged. The same
// holds, with ErrIDSpaceExhausted, when the new ids would not fit in uint32.
func (c *Catalog) Duplicate(cat appearances.Category, ids []uint32) ([]*appearances.Appearance, error) {
	if err := checkCategory(cat); err != nil {
		return nil, err
	}

	sources := make([]*appearances.Appearance, 0, len(ids))
	for _, id := range ids {
		src, err := c.Find(cat, id)
		if err != nil {
			return nil, errors.Wrap(err, "duplicating")
		}
		sources = append(sources, src)
	}
	if uint64(c.maxID[cat])+uint64(len(sources)) > math.MaxUint32 {
		return nil, errors.Wrapf(ErrIDSpaceExhausted, "duplicating %d %v above %d", len(sources), cat, c.maxID[cat])
	}

	out := make([]*appearances.Appearance, 0, len(sources))
	for _, src := range sources {
		dup := src.Clone()
		dup.ID = c.maxID[cat] + 1
		c.append(cat, dup)
		out = append(out, dup)
		glog.V(2).Infof("duplicated %v %d as %d", cat, src.ID, dup.ID)
	}
	return out, nil
}

// Replace stores a clone of a over the appearance with the same id. It is
// used to save an editing buffer back into the catalog.
func (c *Catalog) Replace(cat appearances.Category, a *appearances.Appearance) error {
	if err := checkCategory(cat); err != nil {
		return err
	}
	i := c.index(cat, a.ID)
	if i < 0 {
		return errors.Wrapf(ErrRecordNotFound, "replacing %v %d", cat, a.ID)
	}
	n := a.Clone()
	n.Category = cat
	c.records[cat][i] = n
	return nil
}

// ShowList returns the category's show list. The same *ShowList is returned
// across calls; Regenerate and Resort update it in place.
func (c *Catalog) ShowList(cat appearances.Category) (*ShowList, error) {
	if err := checkCategory(cat); err != nil {
		return nil, err
	}
	return c.shows[cat], nil
}

// Regenerate rebuilds the category's show list from storage order. Thumbnails
// already present are carried over by id.
func (c *Catalog) Regenerate(cat appearances.Category) error {
	if err := checkCategory(cat); err != nil {
		return err
	}
	old := c.shows[cat].byID()
	entries := make([]ShowEntry, len(c.records[cat]))
	for i, a := range c.records[cat] {
		entries[i] = ShowEntry{ID: a.ID, Thumbnail: old[a.ID]}
	}
	c.shows[cat].entries = entries
	return nil
}

// Resort stably sorts the category's show list by ascending id. The stored
// appearances keep their order.
func (c *Catalog) Resort(cat appearances.Category) error {
	if err := checkCategory(cat); err != nil {
		return err
	}
	c.shows[cat].resort()
	return nil
}
