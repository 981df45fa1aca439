package components

import "testing"

func TestKindTable(t *testing.T) {
	cases := []struct {
		kind   ElevationKind
		code   int8
		pit    bool
		block  BlockRule
		motile bool
	}{
		{KindGround, 0, false, BlockNever, false},
		{KindStep, 1, false, BlockUnlessJumping, true},
		{KindMid, 2, false, BlockAlways, true},
		{KindTop, 3, false, BlockAlways, true},
		{KindShallowPit, -1, true, BlockNever, false},
		{KindCliffPit, -3, true, BlockAlways, false},
	}

	for _, tc := range cases {
		if got := tc.kind.HeightCode(); got != tc.code {
			t.Errorf("%v height code = %d, want %d", tc.kind, got, tc.code)
		}
		if got := tc.kind.IsPit(); got != tc.pit {
			t.Errorf("%v IsPit = %v, want %v", tc.kind, got, tc.pit)
		}
		info := tc.kind.Info()
		if info.Block != tc.block {
			t.Errorf("%v block rule = %v, want %v", tc.kind, info.Block, tc.block)
		}
		if info.Motile != tc.motile {
			t.Errorf("%v motile = %v, want %v", tc.kind, info.Motile, tc.motile)
		}
	}
}

// The kind table's Height is a signed category code, not a metric extent;
// building a Profile from it takes an explicit conversion.
func TestHeightCodeIsNotMetricExtent(t *testing.T) {
	prof := Profile{
		Kind:   KindTop,
		HalfW:  0.2,
		HalfD:  0.2,
		Height: float32(KindTop.Info().Height),
	}
	if prof.Height != 3 {
		t.Errorf("converted code = %g, want 3", prof.Height)
	}
	if KindCliffPit.HeightCode() >= 0 {
		t.Error("pit codes must be negative")
	}
}

func TestSetHeightCodeUpdatesMaxRaised(t *testing.T) {
	t.Cleanup(func() {
		SetHeightCode(KindTop, 3)
	})

	SetHeightCode(KindTop, 5)
	if got := KindTop.HeightCode(); got != 5 {
		t.Errorf("height code after override = %d, want 5", got)
	}
	if got := MaxRaisedCode(); got != 5 {
		t.Errorf("max raised code = %d, want 5", got)
	}
}

func TestParseKind(t *testing.T) {
	kind, err := ParseKind("shallow_pit")
	if err != nil {
		t.Fatalf("parsing shallow_pit: %v", err)
	}
	if kind != KindShallowPit {
		t.Errorf("parsed %v, want shallow_pit", kind)
	}

	if _, err := ParseKind("lava"); err == nil {
		t.Error("unknown kind should fail to parse")
	}
}
