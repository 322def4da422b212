package appearances

// FixedFrameGroup tells outfit frame groups apart.
type FixedFrameGroup int

const (
	FrameGroupOutfitIdle FixedFrameGroup = iota
	FrameGroupOutfitMoving
	FrameGroupObjectInitial
)

// AnimationLoopType mirrors the client's loop type enumeration.
type AnimationLoopType int

const (
	LoopPingPong AnimationLoopType = -1
	LoopInfinite AnimationLoopType = 0
	LoopCounted  AnimationLoopType = 1
)

// FrameGroup holds sprite metadata for a single animation group of an
// appearance (for example, idle and moving for outfits).
type FrameGroup struct {
	FixedFrameGroup FixedFrameGroup
	ID              uint32
	SpriteInfo      SpriteInfo
}

// Clone returns a deep copy of the frame group.
func (fg FrameGroup) Clone() FrameGroup {
	fg.SpriteInfo = fg.SpriteInfo.Clone()
	return fg
}

// SpriteInfo describes how the sprites of a frame group are laid out.
//
// Sprites are stored ordered by phase, then pattern depth (z), pattern
// height (y), pattern width (x) and finally layer; see SpriteIndex.
type SpriteInfo struct {
	PatternWidth   uint32
	PatternHeight  uint32
	PatternDepth   uint32
	Layers         uint32
	SpriteIDs      []uint32
	BoundingSquare uint32
	IsOpaque       bool

	Animation *Animation
}

// Clone returns a deep copy of the sprite info.
func (si SpriteInfo) Clone() SpriteInfo {
	if si.SpriteIDs != nil {
		si.SpriteIDs = append([]uint32(nil), si.SpriteIDs...)
	}
	si.Animation = si.Animation.Clone()
	return si
}

// PhaseCount returns the number of animation phases; a sprite info without
// animation has exactly one phase.
func (si *SpriteInfo) PhaseCount() int {
	if si.Animation == nil || len(si.Animation.SpritePhases) == 0 {
		return 1
	}
	return len(si.Animation.SpritePhases)
}

// SpriteIndex returns the position in SpriteIDs of the sprite for the passed
// layer, pattern coordinates and phase. Coordinates wrap around the pattern
// dimensions, so callers can pass e.g. a direction without knowing whether
// the appearance has one.
func (si *SpriteInfo) SpriteIndex(layer, x, y, z, phase int) int {
	w, h, d, l := dim(si.PatternWidth), dim(si.PatternHeight), dim(si.PatternDepth), dim(si.Layers)
	x %= w
	y %= h
	z %= d
	layer %= l
	phase %= si.PhaseCount()
	return (((phase*d+z)*h+y)*w+x)*l + layer
}

// SpriteID returns the sprite id for the passed coordinates, or 0 if the
// sprite list is too short to contain it.
func (si *SpriteInfo) SpriteID(layer, x, y, z, phase int) uint32 {
	idx := si.SpriteIndex(layer, x, y, z, phase)
	if idx < 0 || idx >= len(si.SpriteIDs) {
		return 0
	}
	return si.SpriteIDs[idx]
}

func dim(v uint32) int {
	if v == 0 {
		return 1
	}
	return int(v)
}

// Animation carries per-group animation settings.
type Animation struct {
	DefaultStartPhase uint32
	Synchronized      bool
	RandomStartPhase  bool
	LoopType          AnimationLoopType
	LoopCount         uint32
	SpritePhases      []SpritePhase
}

// SpritePhase is the duration range of one animation phase, in milliseconds.
type SpritePhase struct {
	DurationMin, DurationMax uint32
}

// Clone returns a deep copy of the animation; nil clones to nil.
func (a *Animation) Clone() *Animation {
	if a == nil {
		return nil
	}
	n := *a
	if a.SpritePhases != nil {
		n.SpritePhases = append([]SpritePhase(nil), a.SpritePhases...)
	}
	return &n
}
