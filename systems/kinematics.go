// Package systems contains the simulation core: obstacle kinematics, the
// collision resolver, the vertical state machine, the perception grid engine
// and the safety advisor.
package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/hapticnav/components"
)

// Bounds is the world bounding box in meters, origin at the top-left corner.
type Bounds struct {
	Width, Height float32
}

// KinematicsSystem advances moving obstacles and reflects them off the world
// boundary. Reflection is a simple axis-aligned velocity negation at a fixed
// inner margin, with no energy model and no position clamping.
type KinematicsSystem struct {
	filter ecs.Filter3[components.Position, components.Velocity, components.Profile]
	bounds Bounds
	margin float32
}

// NewKinematicsSystem creates a kinematics system for the given bounds.
func NewKinematicsSystem(w *ecs.World, bounds Bounds, reflectMargin float32) *KinematicsSystem {
	return &KinematicsSystem{
		filter: *ecs.NewFilter3[components.Position, components.Velocity, components.Profile](w),
		bounds: bounds,
		margin: reflectMargin,
	}
}

// Update advances every moving obstacle by elapsed seconds.
func (s *KinematicsSystem) Update(elapsed float32) {
	query := s.filter.Query()
	for query.Next() {
		pos, vel, prof := query.Get()
		if !prof.Moving {
			continue
		}

		pos.X += vel.X * elapsed
		pos.Y += vel.Y * elapsed

		if pos.X < s.margin || pos.X > s.bounds.Width-s.margin {
			vel.X = -vel.X
		}
		if pos.Y < s.margin || pos.Y > s.bounds.Height-s.margin {
			vel.Y = -vel.Y
		}
	}
}
