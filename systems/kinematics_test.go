package systems

import (
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/hapticnav/components"
)

func (tw *testWorld) spawnMoving(x, y, vx, vy float32) ecs.Entity {
	pos := components.Position{X: x, Y: y}
	vel := components.Velocity{X: vx, Y: vy}
	prof := components.Profile{Kind: components.KindMid, HalfW: 0.2, HalfD: 0.2, Height: 1, Moving: true}
	return tw.mapper.NewEntity(&pos, &vel, &prof)
}

func TestMovingObstacleAdvances(t *testing.T) {
	tw := newTestWorld()
	e := tw.spawnMoving(5, 5, 0.5, -0.25)
	s := NewKinematicsSystem(tw.w, Bounds{Width: 10, Height: 10}, 0.2)

	s.Update(0.2)

	pos := ecs.NewMap1[components.Position](tw.w).Get(e)
	approx(t, pos.X, 5.1, "X after advance")
	approx(t, pos.Y, 4.95, "Y after advance")
}

func TestStationaryObstacleStaysPut(t *testing.T) {
	tw := newTestWorld()
	e := tw.spawn(5, 5, components.KindMid, 0.2, 0.2)
	s := NewKinematicsSystem(tw.w, Bounds{Width: 10, Height: 10}, 0.2)

	s.Update(0.2)

	pos := ecs.NewMap1[components.Position](tw.w).Get(e)
	if pos.X != 5 || pos.Y != 5 {
		t.Errorf("stationary obstacle moved to (%f, %f)", pos.X, pos.Y)
	}
}

func TestBoundaryReflection(t *testing.T) {
	tw := newTestWorld()
	e := tw.spawnMoving(9.85, 5, 0.5, 0.1)
	s := NewKinematicsSystem(tw.w, Bounds{Width: 10, Height: 10}, 0.2)

	s.Update(0.2)

	vel := ecs.NewMap1[components.Velocity](tw.w).Get(e)
	if vel.X != -0.5 {
		t.Errorf("X velocity should reflect, got %f", vel.X)
	}
	if vel.Y != 0.1 {
		t.Errorf("Y velocity should be untouched, got %f", vel.Y)
	}
}
