// Package appearances contains the in-memory model of client appearances:
// outfits, items, effects and missiles, together with their flags and
// animation frame groups.
//
// Every value type in this package knows how to deep-copy itself. A clone
// never shares mutable state (pointers, slices) with its source, so an editor
// may freely mutate a clone without affecting the catalog it came from.
package appearances

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrIndexOutOfRange is returned when a frame group index does not address a
// frame group of the appearance.
var ErrIndexOutOfRange = errors.New("frame group index out of range")

// Category partitions appearances into the four kinds the client knows
// about.
type Category int

const (
	Outfit Category = iota
	Item
	Effect
	Missile

	categoryCount
)

// Categories lists all valid categories in their canonical order.
var Categories = [...]Category{Outfit, Item, Effect, Missile}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	return c >= Outfit && c < categoryCount
}

// String implements the stringer interface.
func (c Category) String() string {
	switch c {
	case Outfit:
		return "outfit"
	case Item:
		return "item"
	case Effect:
		return "effect"
	case Missile:
		return "missile"
	}
	return fmt.Sprintf("category %d unknown", int(c))
}

// ParseCategory maps a category name as produced by String back to the
// category. Both "item" and "object" are accepted for items.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(s) {
	case "outfit", "outfits":
		return Outfit, nil
	case "item", "items", "object", "objects":
		return Item, nil
	case "effect", "effects":
		return Effect, nil
	case "missile", "missiles":
		return Missile, nil
	}
	return -1, errors.Errorf("unknown category %q", s)
}

// Appearance is a single outfit, item, effect or missile definition.
type Appearance struct {
	ID          uint32
	Category    Category
	Name        string
	Description string

	FrameGroups []FrameGroup
	Flags       *Flags
}

// Clone returns a deep copy of the appearance.
func (a *Appearance) Clone() *Appearance {
	if a == nil {
		return nil
	}
	n := *a
	n.Flags = a.Flags.Clone()
	if a.FrameGroups != nil {
		n.FrameGroups = make([]FrameGroup, len(a.FrameGroups))
		for i := range a.FrameGroups {
			n.FrameGroups[i] = a.FrameGroups[i].Clone()
		}
	}
	return &n
}

// FrameGroupAt returns a pointer to the frame group at index idx, which can be
// used to modify the group in place.
func (a *Appearance) FrameGroupAt(idx int) (*FrameGroup, error) {
	if idx < 0 || idx >= len(a.FrameGroups) {
		return nil, errors.Wrapf(ErrIndexOutOfRange, "appearance %d has %d frame groups, want index %d", a.ID, len(a.FrameGroups), idx)
	}
	return &a.FrameGroups[idx], nil
}

// SetDefaultStartPhase sets the default start phase of the animation in the
// given frame group. An invalid group index, or a group without animation,
// makes this a no-op; the return value reports whether anything changed.
func (a *Appearance) SetDefaultStartPhase(group int, phase uint32) bool {
	anim := a.animation(group)
	if anim == nil {
		return false
	}
	anim.DefaultStartPhase = phase
	return true
}

// SetLoopCount sets the loop count of the animation in the given frame
// group. Like SetDefaultStartPhase, it is a no-op for invalid groups.
func (a *Appearance) SetLoopCount(group int, count uint32) bool {
	anim := a.animation(group)
	if anim == nil {
		return false
	}
	anim.LoopCount = count
	return true
}

func (a *Appearance) animation(group int) *Animation {
	fg, err := a.FrameGroupAt(group)
	if err != nil {
		return nil
	}
	return fg.SpriteInfo.Animation
}
