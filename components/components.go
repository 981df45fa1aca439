// Package components defines the data types shared by the simulation systems.
package components

// Position is an obstacle's world position in meters.
type Position struct {
	X, Y float32
}

// Velocity is an obstacle's velocity in meters per second.
// Zero for stationary obstacles.
type Velocity struct {
	X, Y float32
}

// Profile holds an obstacle's physical description: elevation category,
// planar half-extents, vertical extent and whether it is in motion.
type Profile struct {
	Kind   ElevationKind
	HalfW  float32 // half-width in meters
	HalfD  float32 // half-depth in meters
	Height float32 // vertical extent in meters
	Moving bool
}

// Contains reports whether the point (x, y) lies within the obstacle's
// footprint centered at (cx, cy), with the half-extents expanded by pad.
func (p *Profile) Contains(cx, cy, x, y, pad float32) bool {
	dx := x - cx
	if dx < 0 {
		dx = -dx
	}
	dy := y - cy
	if dy < 0 {
		dy = -dy
	}
	return dx <= p.HalfW+pad && dy <= p.HalfD+pad
}

// Pose is the player's planar pose. Heading is in radians, normalized
// to (-pi, pi].
type Pose struct {
	X, Y    float32
	Heading float32
}

// Player holds the full player state: planar pose plus the vertical
// interaction state owned by the vertical state machine.
type Player struct {
	Pose

	// VerticalOffset is the signed body height offset in meters.
	// 0 = standing on nominal ground, negative = sunk into a pit,
	// positive = airborne.
	VerticalOffset float32
	InPit          bool
	Jumping        bool
	JumpVel        float32 // vertical velocity while jumping, m/s
}

// Intent is the per-tick locomotion intent produced by the input layer.
type Intent struct {
	Forward   bool
	Backward  bool
	TurnLeft  bool
	TurnRight bool
	Jump      bool
	Reset     bool
}
