package appearances

// Flags is the attribute bag attached to an appearance. Boolean attributes
// are plain fields; attributes carrying values are optional pointers, nil
// when the attribute is absent.
type Flags struct {
	Bank                *Bank
	Clip                bool
	Bottom              bool
	Top                 bool
	Container           bool
	Cumulative          bool
	Usable              bool
	ForceUse            bool
	MultiUse            bool
	Write               *Write
	WriteOnce           *WriteOnce
	LiquidPool          bool
	Unpass              bool
	Unmove              bool
	Unsight             bool
	Avoid               bool
	NoMovementAnimation bool
	Take                bool
	LiquidContainer     bool
	Hang                bool
	Hook                *Hook
	Rotate              bool
	Light               *Light
	DontHide            bool
	Translucent         bool
	Shift               *Shift
	Height              *Height
	LyingObject         bool
	AnimateAlways       bool
	Automap             *Automap
	LensHelp            *LensHelp
	FullBank            bool
	IgnoreLook          bool
	Clothes             *Clothes
	DefaultAction       *DefaultAction
	Market              *Market
	Wrap                bool
	Unwrap              bool
	TopEffect           bool
	NPCSaleData         []NPCSaleData
	ChangedToExpire     *ChangedToExpire
	Corpse              bool
	PlayerCorpse        bool
	CyclopediaItem      *CyclopediaItem
	Ammo                bool
	ShowOffSocket       bool
	Reportable          bool
	Upgrade             *UpgradeClassification
}

type Bank struct{ Waypoints uint32 }

type Write struct{ MaxTextLength uint32 }

type WriteOnce struct{ MaxTextLengthOnce uint32 }

type HookDirection int

const (
	HookSouth HookDirection = 1
	HookEast  HookDirection = 2
)

type Hook struct{ Direction HookDirection }

// Light describes emitted light. Color is an index into the 8-bit dataset
// palette (see colorize.DatasetColor).
type Light struct {
	Brightness uint32
	Color      uint32
}

type Shift struct{ X, Y uint32 }

type Height struct{ Elevation uint32 }

// Automap holds the minimap color, an index into the 8-bit dataset palette.
type Automap struct{ Color uint32 }

type LensHelp struct{ ID uint32 }

type Clothes struct{ Slot uint32 }

type DefaultAction struct{ Action int }

type Market struct {
	Category             int
	TradeAsObjectID      uint32
	ShowAsObjectID       uint32
	Name                 string
	RestrictToProfession []int
	MinimumLevel         uint32
}

type NPCSaleData struct {
	Name              string
	Location          string
	SalePrice         uint32
	BuyPrice          uint32
	CurrencyObjectID  uint32
	CurrencyQuestFlag string
}

type ChangedToExpire struct{ FormerObjectTypeID uint32 }

type CyclopediaItem struct{ CyclopediaType uint32 }

type UpgradeClassification struct{ Classification uint32 }

// Clone returns a deep copy of the flags; nil clones to nil.
func (f *Flags) Clone() *Flags {
	if f == nil {
		return nil
	}
	n := *f
	n.Bank = clonePtr(f.Bank)
	n.Write = clonePtr(f.Write)
	n.WriteOnce = clonePtr(f.WriteOnce)
	n.Hook = clonePtr(f.Hook)
	n.Light = clonePtr(f.Light)
	n.Shift = clonePtr(f.Shift)
	n.Height = clonePtr(f.Height)
	n.Automap = clonePtr(f.Automap)
	n.LensHelp = clonePtr(f.LensHelp)
	n.Clothes = clonePtr(f.Clothes)
	n.DefaultAction = clonePtr(f.DefaultAction)
	n.ChangedToExpire = clonePtr(f.ChangedToExpire)
	n.CyclopediaItem = clonePtr(f.CyclopediaItem)
	n.Upgrade = clonePtr(f.Upgrade)
	if f.Market != nil {
		m := *f.Market
		if f.Market.RestrictToProfession != nil {
			m.RestrictToProfession = append([]int(nil), f.Market.RestrictToProfession...)
		}
		n.Market = &m
	}
	if f.NPCSaleData != nil {
		n.NPCSaleData = append([]NPCSaleData(nil), f.NPCSaleData...)
	}
	return &n
}

// clonePtr copies the value behind p. Only use it for types without
// pointers or slices of their own.
func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
