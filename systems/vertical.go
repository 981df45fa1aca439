package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/hapticnav/components"
)

// VerticalParams holds the tunables of the vertical state machine.
type VerticalParams struct {
	JumpSpeed      float32 // launch speed, m/s
	PitEscapeBoost float32 // launch multiplier while in a pit
	Gravity        float32 // m/s^2
	PitDepth       float32 // positive depth; target offset is its negation
	FallRate       float32 // fraction of remaining gap closed per second
	SnapEpsilon    float32 // gap below which the offset snaps to target
}

// VerticalMachine governs the player's body height offset: walking, sinking
// into a shallow pit, and jumping. Pits trap the player until an explicit
// jump; landing always resolves any pit state.
type VerticalMachine struct {
	filter ecs.Filter2[components.Position, components.Profile]
	params VerticalParams
}

// NewVerticalMachine creates the vertical state machine.
func NewVerticalMachine(w *ecs.World, params VerticalParams) *VerticalMachine {
	return &VerticalMachine{
		filter: *ecs.NewFilter2[components.Position, components.Profile](w),
		params: params,
	}
}

// Launch starts a jump if one is not already in progress. Jumping out of a
// pit gets a boosted launch speed; InPit stays set until the player lands.
func (m *VerticalMachine) Launch(p *components.Player) {
	if p.Jumping {
		return
	}
	speed := m.params.JumpSpeed
	if p.InPit {
		speed *= m.params.PitEscapeBoost
	}
	p.Jumping = true
	p.JumpVel = speed
}

// Update advances the vertical state by dt seconds.
func (m *VerticalMachine) Update(p *components.Player, dt float32) {
	if p.Jumping {
		m.updateJump(p, dt)
		return
	}
	m.updateGround(p, dt)
}

func (m *VerticalMachine) updateJump(p *components.Player, dt float32) {
	p.JumpVel -= m.params.Gravity * dt
	p.VerticalOffset += p.JumpVel * dt

	// Landing: descending through ground level. Rising out of a pit passes
	// 0 with positive velocity and must not count.
	if p.VerticalOffset >= 0 && p.JumpVel < 0 {
		p.VerticalOffset = 0
		p.JumpVel = 0
		p.Jumping = false
		p.InPit = false
	}
}

func (m *VerticalMachine) updateGround(p *components.Player, dt float32) {
	overPit := m.overShallowPit(p.X, p.Y)

	if !p.InPit && overPit {
		p.InPit = true
	} else if p.InPit && !overPit {
		// Only reachable when the pose was moved without a jump.
		p.InPit = false
	}

	target := float32(0)
	if p.InPit {
		target = -m.params.PitDepth
	}

	gap := target - p.VerticalOffset
	if abs32(gap) < m.params.SnapEpsilon {
		p.VerticalOffset = target
		return
	}
	frac := 1 - float32(math.Exp(float64(-m.params.FallRate*dt)))
	p.VerticalOffset += gap * frac
}

// overShallowPit reports whether the planar position is inside a shallow
// pit's footprint. Plain containment, no radius expansion - the blocking
// rule's expansion is not wanted here.
func (m *VerticalMachine) overShallowPit(x, y float32) bool {
	over := false
	query := m.filter.Query()
	for query.Next() {
		pos, prof := query.Get()
		if prof.Kind != components.KindShallowPit {
			continue
		}
		if prof.Contains(pos.X, pos.Y, x, y, 0) {
			over = true
		}
	}
	return over
}
