// Package editor implements an appearance editing session: one category is
// browsed at a time, one appearance is loaded into an editing buffer, and
// changes reach the catalog only on Save.
package editor

import (
	"image"
	"image/color"
	"math/rand"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-tibia-assets/appearances"
	"badc0de.net/pkg/go-tibia-assets/catalog"
	"badc0de.net/pkg/go-tibia-assets/colorize"
	"badc0de.net/pkg/go-tibia-assets/preview"
	"badc0de.net/pkg/go-tibia-assets/sprcache"
)

var (
	ErrNothingLoaded   = errors.New("no appearance loaded")
	ErrNoCopiedFlags   = errors.New("no flags copied")
	ErrColorOutOfRange = errors.New("outfit color index out of range")
)

// ScrollWindow is the number of sprite list rows shown at once.
const ScrollWindow = sprcache.DefaultWindowSize

// Look describes how a creature wears an outfit, as used in monster and NPC
// definitions. Colors are outfit palette indices.
type Look struct {
	Type                   uint32
	Head, Body, Legs, Feet int
	Corpse                 uint32
}

// Session is not safe for concurrent use.
type Session struct {
	cat     *catalog.Catalog
	sprites *sprcache.Cache
	src     preview.SpriteSource

	category appearances.Category
	current  *appearances.Appearance
	group    int
	copied   *appearances.Flags

	colors    colorize.Colors
	direction preview.Direction
	addons    preview.AddonMask
	mounted   bool
}

// NewSession starts a session browsing outfits. sprites may be nil when
// no sprite list is shown.
func NewSession(cat *catalog.Catalog, sprites *sprcache.Cache, src preview.SpriteSource) *Session {
	return &Session{
		cat:       cat,
		sprites:   sprites,
		src:       src,
		category:  appearances.Outfit,
		colors:    colorize.ColorsFromIndices(0, 0, 0, 0),
		direction: preview.DefaultDirection,
	}
}

func (s *Session) Category() appearances.Category {
	return s.category
}

// SelectCategory switches the browsed category and drops the editing
// buffer. Unsaved changes are lost.
func (s *Session) SelectCategory(cat appearances.Category) error {
	if !cat.Valid() {
		return errors.Wrapf(catalog.ErrInvalidCategory, "category %d", int(cat))
	}
	s.category = cat
	s.current = nil
	s.group = 0
	return nil
}

// Load copies the appearance with the passed id into the editing buffer and
// selects its first frame group.
func (s *Session) Load(id uint32) (*appearances.Appearance, error) {
	a, err := s.cat.Find(s.category, id)
	if err != nil {
		return nil, err
	}
	s.current = a.Clone()
	s.group = 0
	glog.V(2).Infof("editor: loaded %v %d", s.category, id)
	return s.current, nil
}

// Current returns the editing buffer, or nil.
func (s *Session) Current() *appearances.Appearance {
	return s.current
}

func (s *Session) Group() int {
	return s.group
}

func (s *Session) SelectGroup(idx int) error {
	if s.current == nil {
		return ErrNothingLoaded
	}
	if _, err := s.current.FrameGroupAt(idx); err != nil {
		return err
	}
	s.group = idx
	return nil
}

// SetDefaultStartPhase changes the selected group's animation. It reports
// whether the group has an animation to change.
func (s *Session) SetDefaultStartPhase(phase uint32) (bool, error) {
	if s.current == nil {
		return false, ErrNothingLoaded
	}
	return s.current.SetDefaultStartPhase(s.group, phase), nil
}

func (s *Session) SetLoopCount(count uint32) (bool, error) {
	if s.current == nil {
		return false, ErrNothingLoaded
	}
	return s.current.SetLoopCount(s.group, count), nil
}

// CopyFlags remembers a copy of the editing buffer's flags.
func (s *Session) CopyFlags() error {
	if s.current == nil {
		return ErrNothingLoaded
	}
	s.copied = s.current.Flags.Clone()
	if s.copied == nil {
		s.copied = &appearances.Flags{}
	}
	return nil
}

// PasteFlags replaces the editing buffer's flags with a copy of the
// remembered ones. The remembered flags can be pasted again.
func (s *Session) PasteFlags() error {
	if s.current == nil {
		return ErrNothingLoaded
	}
	if s.copied == nil {
		return ErrNoCopiedFlags
	}
	s.current.Flags = s.copied.Clone()
	return nil
}

// Save writes the editing buffer back into the catalog. The buffer stays
// loaded and keeps being independent of the stored record.
func (s *Session) Save() error {
	if s.current == nil {
		return ErrNothingLoaded
	}
	return s.cat.Replace(s.category, s.current)
}

func (s *Session) Duplicate(ids []uint32) ([]*appearances.Appearance, error) {
	return s.cat.Duplicate(s.category, ids)
}

func (s *Session) Resort() error {
	return s.cat.Resort(s.category)
}

// SetColors selects outfit colors by palette index.
func (s *Session) SetColors(head, body, legs, feet int) error {
	for _, i := range []int{head, body, legs, feet} {
		if i < 0 || i >= colorize.OutfitColorCount {
			return errors.Wrapf(ErrColorOutOfRange, "index %d", i)
		}
	}
	s.colors = colorize.ColorsFromIndices(head, body, legs, feet)
	return nil
}

// SetColorValues selects arbitrary outfit colors, e.g. from a color picker.
// Colors outside the palette are previewed but have no Look index.
func (s *Session) SetColorValues(cols colorize.Colors) {
	s.colors = cols
}

func (s *Session) Colors() colorize.Colors {
	return s.colors
}

// RandomizeColors picks a random palette entry for every region.
func (s *Session) RandomizeColors(rnd *rand.Rand) {
	n := colorize.OutfitColorCount
	s.colors = colorize.ColorsFromIndices(rnd.Intn(n), rnd.Intn(n), rnd.Intn(n), rnd.Intn(n))
}

// Look describes the loaded outfit with the selected colors. Colors without
// an exact palette match are reported as index 0.
func (s *Session) Look(corpse uint32) (Look, error) {
	if s.current == nil {
		return Look{}, ErrNothingLoaded
	}
	return Look{
		Type:   s.current.ID,
		Head:   paletteIndex(s.colors.Head),
		Body:   paletteIndex(s.colors.Body),
		Legs:   paletteIndex(s.colors.Legs),
		Feet:   paletteIndex(s.colors.Feet),
		Corpse: corpse,
	}, nil
}

func paletteIndex(c color.RGBA) int {
	idx, ok := colorize.OutfitColorIndex(c)
	if !ok {
		glog.V(2).Infof("editor: color %v is not in the outfit palette", c)
		return 0
	}
	return idx
}

func (s *Session) Direction() preview.Direction {
	return s.direction
}

// SetDirection turns the previewed outfit. Unknown directions are ignored.
func (s *Session) SetDirection(d preview.Direction) {
	if d < preview.North || d > preview.West {
		return
	}
	s.direction = d
}

func (s *Session) SetAddons(m preview.AddonMask) {
	s.addons = m
}

func (s *Session) SetMounted(mounted bool) {
	s.mounted = mounted
}

// Preview renders a phase of the editing buffer's selected frame group with
// the session's colors, direction, addons and mount.
func (s *Session) Preview(phase int) (*image.NRGBA, error) {
	if s.current == nil {
		return nil, ErrNothingLoaded
	}
	return preview.Frame(s.current, s.src, s.previewOptions(phase))
}

func (s *Session) previewOptions(phase int) preview.Options {
	return preview.Options{
		Group:     s.group,
		Phase:     phase,
		Direction: s.direction,
		Addons:    s.addons,
		Mounted:   s.mounted,
		Colors:    s.colors,
	}
}

// ScrollSprites moves the sprite list so that its first visible row is
// offset. Decoding happens in the background.
func (s *Session) ScrollSprites(offset int) {
	if s.sprites == nil {
		return
	}
	s.sprites.SetWindow(offset, ScrollWindow)
}

// Sprite returns the decoded sprite shown at a sprite list row, if ready.
func (s *Session) Sprite(index int) (image.Image, bool) {
	if s.sprites == nil {
		return nil, false
	}
	return s.sprites.Get(index)
}

// RefreshThumbnails renders show list thumbnails for rows [offset,
// offset+size) of the browsed category that do not have one yet. Rows that
// fail to render stay without thumbnail. It returns the number rendered.
func (s *Session) RefreshThumbnails(offset, size int) (int, error) {
	sl, err := s.cat.ShowList(s.category)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, e := range sl.Window(offset, size) {
		if e.Thumbnail != nil {
			continue
		}
		a, err := s.cat.Find(s.category, e.ID)
		if err != nil {
			return n, err
		}
		img, err := preview.Frame(a, s.src, preview.Options{Direction: preview.DefaultDirection, Colors: s.colors})
		if err != nil {
			glog.V(1).Infof("editor: no thumbnail for %v %d: %v", s.category, e.ID, err)
			continue
		}
		sl.SetThumbnail(e.ID, img)
		n++
	}
	return n, nil
}
