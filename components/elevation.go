package components

import "fmt"

// ElevationKind is an obstacle's elevation category. The category maps to a
// signed height code through the KindInfo table; adding a kind is a table
// edit, not a code change.
type ElevationKind uint8

const (
	KindGround ElevationKind = iota
	KindStep
	KindMid
	KindTop
	KindShallowPit
	KindCliffPit

	NumKinds = 6
)

// BlockRule is the horizontal blocking policy of an elevation kind.
type BlockRule uint8

const (
	BlockNever  BlockRule = iota // walkable or enterable
	BlockAlways                  // solid at body height, or an impassable hazard
	BlockUnlessJumping           // can be cleared mid-air
)

// KindInfo describes one elevation category.
type KindInfo struct {
	Name   string
	Height int8 // signed height code; sign encodes pit vs raised
	Block  BlockRule
	Motile bool // pit kinds are carved into the ground and never move
}

// kindTable holds the default category set. Height codes can be overridden
// from config without touching this table.
var kindTable = [NumKinds]KindInfo{
	KindGround:     {Name: "ground", Height: 0, Block: BlockNever, Motile: false},
	KindStep:       {Name: "step", Height: 1, Block: BlockUnlessJumping, Motile: true},
	KindMid:        {Name: "mid", Height: 2, Block: BlockAlways, Motile: true},
	KindTop:        {Name: "top", Height: 3, Block: BlockAlways, Motile: true},
	KindShallowPit: {Name: "shallow_pit", Height: -1, Block: BlockNever, Motile: false},
	KindCliffPit:   {Name: "cliff_pit", Height: -3, Block: BlockAlways, Motile: false},
}

// Info returns the category descriptor for the kind.
func (k ElevationKind) Info() KindInfo {
	if int(k) >= len(kindTable) {
		return kindTable[KindGround]
	}
	return kindTable[k]
}

// String returns the category name.
func (k ElevationKind) String() string {
	return k.Info().Name
}

// HeightCode returns the signed height code for the kind.
func (k ElevationKind) HeightCode() int8 {
	return k.Info().Height
}

// IsPit reports whether the kind is carved below ground level.
func (k ElevationKind) IsPit() bool {
	return k.Info().Height < 0
}

// SetHeightCode overrides the height code for a kind. Used by config.
func SetHeightCode(k ElevationKind, code int8) {
	if int(k) < len(kindTable) {
		kindTable[k].Height = code
	}
}

// ParseKind resolves a category name to its kind.
func ParseKind(name string) (ElevationKind, error) {
	for k, info := range kindTable {
		if info.Name == name {
			return ElevationKind(k), nil
		}
	}
	return KindGround, fmt.Errorf("unknown elevation kind %q", name)
}

// MaxRaisedCode returns the largest positive height code in the table.
func MaxRaisedCode() int8 {
	var max int8
	for _, info := range kindTable {
		if info.Height > max {
			max = info.Height
		}
	}
	return max
}
