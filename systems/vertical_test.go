package systems

import (
	"testing"

	"github.com/pthm-cable/hapticnav/components"
)

func testVerticalParams() VerticalParams {
	return VerticalParams{
		JumpSpeed:      2.8,
		PitEscapeBoost: 1.35,
		Gravity:        9.8,
		PitDepth:       0.45,
		FallRate:       6.0,
		SnapEpsilon:    0.01,
	}
}

func TestEnterPitSinksTowardDepth(t *testing.T) {
	tw := newTestWorld()
	tw.spawn(5, 5, components.KindShallowPit, 0.4, 0.4)
	m := NewVerticalMachine(tw.w, testVerticalParams())

	p := &components.Player{Pose: components.Pose{X: 5, Y: 5}}
	const dt = 1.0 / 60.0

	prev := p.VerticalOffset
	for i := 0; i < 120; i++ {
		m.Update(p, dt)
		if !p.InPit {
			t.Fatal("player over a shallow pit should be in the pit")
		}
		if p.VerticalOffset > prev+1e-6 {
			t.Fatalf("offset must approach pit depth monotonically, rose from %f to %f", prev, p.VerticalOffset)
		}
		prev = p.VerticalOffset
	}
	if diff := p.VerticalOffset + 0.45; diff > 0.011 || diff < -0.011 {
		t.Errorf("offset should settle at -0.45, got %f", p.VerticalOffset)
	}
}

func TestJumpFromPitClearsInPitOnlyOnLanding(t *testing.T) {
	tw := newTestWorld()
	tw.spawn(5, 5, components.KindShallowPit, 0.4, 0.4)
	m := NewVerticalMachine(tw.w, testVerticalParams())

	p := &components.Player{Pose: components.Pose{X: 5, Y: 5}}
	const dt = 1.0 / 60.0

	for i := 0; i < 120; i++ {
		m.Update(p, dt)
	}

	m.Launch(p)
	if !p.Jumping {
		t.Fatal("launch should start a jump")
	}
	if !p.InPit {
		t.Fatal("launch must not clear the pit state")
	}
	wantVel := float32(2.8 * 1.35)
	if p.JumpVel != wantVel {
		t.Errorf("pit escape launch speed: got %f, want %f", p.JumpVel, wantVel)
	}

	landed := false
	for i := 0; i < 600; i++ {
		m.Update(p, dt)
		if !p.Jumping {
			landed = true
			break
		}
		if !p.InPit {
			t.Fatal("pit state cleared mid-air, must persist until landing")
		}
	}
	if !landed {
		t.Fatal("jump never landed")
	}
	if p.InPit {
		t.Error("landing must resolve the pit state")
	}
	if p.VerticalOffset != 0 {
		t.Errorf("landing must clamp the offset to 0, got %f", p.VerticalOffset)
	}
}

func TestJumpOverGroundLandsClean(t *testing.T) {
	tw := newTestWorld()
	m := NewVerticalMachine(tw.w, testVerticalParams())

	p := &components.Player{Pose: components.Pose{X: 5, Y: 5}}
	m.Launch(p)
	if p.JumpVel != 2.8 {
		t.Errorf("launch speed without pit boost: got %f, want 2.8", p.JumpVel)
	}

	// Launching again mid-air is a no-op.
	m.Launch(p)
	if p.JumpVel != 2.8 {
		t.Errorf("double launch changed velocity: got %f", p.JumpVel)
	}

	const dt = 1.0 / 60.0
	rose := false
	for i := 0; i < 600 && p.Jumping; i++ {
		m.Update(p, dt)
		if p.VerticalOffset > 0 {
			rose = true
		}
	}
	if !rose {
		t.Error("jump should lift the player above ground")
	}
	if p.Jumping || p.VerticalOffset != 0 || p.JumpVel != 0 {
		t.Errorf("after landing: jumping=%v offset=%f vel=%f", p.Jumping, p.VerticalOffset, p.JumpVel)
	}
}

// Walking out of a pit is not a supported escape, but the transition is kept
// defensively for players moved by external means.
func TestPitStateClearsWhenMovedOffFootprint(t *testing.T) {
	tw := newTestWorld()
	tw.spawn(5, 5, components.KindShallowPit, 0.4, 0.4)
	m := NewVerticalMachine(tw.w, testVerticalParams())

	p := &components.Player{Pose: components.Pose{X: 5, Y: 5}}
	const dt = 1.0 / 60.0
	for i := 0; i < 60; i++ {
		m.Update(p, dt)
	}
	if !p.InPit {
		t.Fatal("expected pit entry")
	}

	p.X = 8 // teleported out
	m.Update(p, dt)
	if p.InPit {
		t.Error("leaving the footprint should clear the pit state")
	}
	for i := 0; i < 120; i++ {
		m.Update(p, dt)
	}
	if p.VerticalOffset != 0 {
		t.Errorf("offset should return to 0, got %f", p.VerticalOffset)
	}
}
