package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/hapticnav/components"
)

// Resolver tests candidate player positions against the boundary walls and
// the obstacle set. Elevation affects blocking only through the per-kind
// policy; the test itself is planar.
type Resolver struct {
	filter        ecs.Filter2[components.Position, components.Profile]
	bounds        Bounds
	wallThickness float32
	playerRadius  float32
}

// NewResolver creates a collision resolver.
func NewResolver(w *ecs.World, bounds Bounds, wallThickness, playerRadius float32) *Resolver {
	return &Resolver{
		filter:        *ecs.NewFilter2[components.Position, components.Profile](w),
		bounds:        bounds,
		wallThickness: wallThickness,
		playerRadius:  playerRadius,
	}
}

// Blocked reports whether the candidate position (x, y) is unreachable.
// Walls are always solid. Obstacle footprints are expanded by the player
// collision radius; the per-kind policy decides whether containment blocks:
// cliff pits, mid and top obstacles always do, steps only when the player is
// not airborne, shallow pits never (entering is the vertical machine's
// concern, not the resolver's).
func (r *Resolver) Blocked(x, y float32, jumping bool) bool {
	if x < r.wallThickness || x > r.bounds.Width-r.wallThickness ||
		y < r.wallThickness || y > r.bounds.Height-r.wallThickness {
		return true
	}

	blocked := false
	query := r.filter.Query()
	for query.Next() {
		pos, prof := query.Get()
		if !prof.Contains(pos.X, pos.Y, x, y, r.playerRadius) {
			continue
		}
		switch prof.Kind.Info().Block {
		case components.BlockAlways:
			blocked = true
		case components.BlockUnlessJumping:
			if !jumping {
				blocked = true
			}
		}
	}
	return blocked
}
