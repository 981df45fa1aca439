package systems

import (
	"math"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/hapticnav/components"
)

// testWorld bundles an ECS world with an obstacle mapper for tests.
type testWorld struct {
	w      *ecs.World
	mapper *ecs.Map3[components.Position, components.Velocity, components.Profile]
}

func newTestWorld() *testWorld {
	w := ecs.NewWorld()
	return &testWorld{
		w:      w,
		mapper: ecs.NewMap3[components.Position, components.Velocity, components.Profile](w),
	}
}

func (tw *testWorld) spawn(x, y float32, kind components.ElevationKind, halfW, halfD float32) ecs.Entity {
	pos := components.Position{X: x, Y: y}
	vel := components.Velocity{}
	prof := components.Profile{Kind: kind, HalfW: halfW, HalfD: halfD, Height: 1}
	return tw.mapper.NewEntity(&pos, &vel, &prof)
}

func (tw *testWorld) move(e ecs.Entity, x, y float32) {
	pos := ecs.NewMap1[components.Position](tw.w).Get(e)
	pos.X = x
	pos.Y = y
}

func defaultGridParams() GridParams {
	return GridParams{
		Range:         3.0,
		HalfFOVDeg:    60,
		BandBounds:    [GridRows]float32{1, 2, 3},
		BandWeights:   [GridRows]float32{1.0, 0.7, 0.4},
		ColBounds:     [GridCols + 1]float32{-60, -20, 20, 60},
		SlowThreshold: 0.2,
		FastThreshold: 0.8,
		MaxRaisedCode: 3,
	}
}

// centerPose faces along +X from the middle of a 10x10 world.
func centerPose() components.Pose {
	return components.Pose{X: 5, Y: 5, Heading: 0}
}

func approx(t *testing.T, got, want float32, what string) {
	t.Helper()
	if diff := float64(got - want); diff > 1e-4 || diff < -1e-4 {
		t.Errorf("%s: got %f, want %f", what, got, want)
	}
}

func TestGridExcludesOutOfRangeAndFOV(t *testing.T) {
	tw := newTestWorld()
	tw.spawn(8.5, 5, components.KindTop, 0.2, 0.2) // 3.5 m ahead, beyond range
	// 1 m away at 70 degrees bearing, outside the half FOV
	ang := 70 * math.Pi / 180
	tw.spawn(5+float32(math.Cos(ang)), 5+float32(math.Sin(ang)), components.KindTop, 0.2, 0.2)

	engine := NewGridEngine(tw.w, defaultGridParams())
	grid := engine.Compute(centerPose(), 0.2)

	for r := 0; r < GridRows; r++ {
		for c := 0; c < GridCols; c++ {
			if grid[r][c].Occupied || grid[r][c].Intensity != 0 {
				t.Errorf("cell (%d,%d) should be empty, got intensity %f", r, c, grid[r][c].Intensity)
			}
		}
	}
}

func TestGridNearestObstacleWinsPerCell(t *testing.T) {
	tw := newTestWorld()
	near := tw.spawn(5.5, 5, components.KindStep, 0.1, 0.1) // 0.5 m, Immediate/Center
	tw.spawn(5.8, 5, components.KindTop, 0.1, 0.1)          // 0.8 m, same cell, farther

	engine := NewGridEngine(tw.w, defaultGridParams())
	grid := engine.Compute(centerPose(), 0.2)

	cell := grid[0][1]
	if !cell.Occupied {
		t.Fatal("Immediate/Center cell should be occupied")
	}
	if cell.Obstacle != near {
		t.Error("cell should reference the nearest obstacle")
	}
	approx(t, cell.Distance, 0.5, "cell distance")
	approx(t, cell.Intensity, 1.0, "cell intensity") // step code 1 x weight 1.0
}

// TestGridAgainstBruteForce scatters obstacles through the cone and checks
// every cell against an independent recomputation of best distance per bin.
func TestGridAgainstBruteForce(t *testing.T) {
	tw := newTestWorld()
	type placed struct {
		dist, bearingDeg float32
		kind             components.ElevationKind
	}
	placements := []placed{
		{0.4, 0, components.KindStep},
		{0.7, -40, components.KindMid},
		{0.9, 45, components.KindTop},
		{1.2, 10, components.KindMid},
		{1.5, 10, components.KindStep},
		{1.8, -55, components.KindShallowPit},
		{2.2, 0, components.KindCliffPit},
		{2.6, 30, components.KindStep},
		{2.9, -30, components.KindTop},
		{3.5, 0, components.KindTop},  // out of range
		{1.0, 120, components.KindTop}, // out of FOV
	}
	pose := centerPose()
	for _, p := range placements {
		rad := float64(p.bearingDeg) * math.Pi / 180
		tw.spawn(pose.X+p.dist*float32(math.Cos(rad)), pose.Y+p.dist*float32(math.Sin(rad)), p.kind, 0.1, 0.1)
	}

	params := defaultGridParams()
	engine := NewGridEngine(tw.w, params)
	grid := engine.Compute(pose, 0.2)

	// Brute force: smallest qualifying distance per bin.
	var want [GridRows][GridCols]float32
	var have [GridRows][GridCols]bool
	for _, p := range placements {
		if p.dist > params.Range || p.bearingDeg < -60 || p.bearingDeg > 60 {
			continue
		}
		col := 2
		switch {
		case p.bearingDeg < -20:
			col = 0
		case p.bearingDeg < 20:
			col = 1
		}
		row := 2
		switch {
		case p.dist < 1:
			row = 0
		case p.dist < 2:
			row = 1
		}
		if !have[row][col] || p.dist < want[row][col] {
			have[row][col] = true
			want[row][col] = p.dist
		}
	}

	for r := 0; r < GridRows; r++ {
		for c := 0; c < GridCols; c++ {
			if grid[r][c].Occupied != have[r][c] {
				t.Errorf("cell (%d,%d) occupancy: got %v, want %v", r, c, grid[r][c].Occupied, have[r][c])
				continue
			}
			if have[r][c] {
				approx(t, grid[r][c].Distance, want[r][c], "best distance")
			}
		}
	}
}

func TestGridIdempotentWithoutChange(t *testing.T) {
	tw := newTestWorld()
	tw.spawn(5.5, 5, components.KindStep, 0.1, 0.1)
	tw.spawn(5, 6.5, components.KindMid, 0.1, 0.1)

	engine := NewGridEngine(tw.w, defaultGridParams())
	pose := components.Pose{X: 5, Y: 5, Heading: math.Pi / 2}
	first := engine.Compute(pose, 0.2)
	second := engine.Compute(pose, 0) // no time elapsed, nothing moved

	for r := 0; r < GridRows; r++ {
		for c := 0; c < GridCols; c++ {
			if second[r][c].Intensity != first[r][c].Intensity {
				t.Errorf("cell (%d,%d) intensity changed: %f -> %f", r, c, first[r][c].Intensity, second[r][c].Intensity)
			}
			if second[r][c].Vibration != VibStatic {
				t.Errorf("cell (%d,%d) should read static with no displacement, got %v", r, c, second[r][c].Vibration)
			}
		}
	}
}

func TestPrioritySuppression(t *testing.T) {
	tw := newTestWorld()
	tw.spawn(5.5, 5, components.KindTop, 0.1, 0.1) // Immediate/Center, intensity 3.0
	tw.spawn(6.5, 5, components.KindStep, 0.1, 0.1) // Near/Center, 1 x 0.7
	tw.spawn(7.5, 5, components.KindMid, 0.1, 0.1)  // Far/Center, 2 x 0.4

	engine := NewGridEngine(tw.w, defaultGridParams())
	grid := engine.Compute(centerPose(), 0.2)

	approx(t, grid[0][1].Intensity, 3.0, "immediate intensity")
	approx(t, grid[1][1].Intensity, 0.7*0.7, "near intensity after suppression")
	approx(t, grid[2][1].Intensity, 0.8*0.3, "far intensity after suppression")
	// Obstacle references and motion fields stay untouched.
	if !grid[2][1].Occupied {
		t.Error("suppression must not clear the obstacle reference")
	}
}

func TestSuppressionRequiresFullWeightHazard(t *testing.T) {
	tw := newTestWorld()
	tw.spawn(5.5, 5, components.KindMid, 0.1, 0.1) // intensity 2.0, below threshold
	tw.spawn(7.5, 5, components.KindMid, 0.1, 0.1) // Far/Center

	engine := NewGridEngine(tw.w, defaultGridParams())
	grid := engine.Compute(centerPose(), 0.2)

	approx(t, grid[2][1].Intensity, 0.8, "far intensity without suppression")
}

func TestMotionClassificationSameCell(t *testing.T) {
	tw := newTestWorld()
	e := tw.spawn(5.5, 5, components.KindStep, 0.1, 0.1)

	engine := NewGridEngine(tw.w, defaultGridParams())
	first := engine.Compute(centerPose(), 0.2)
	approx(t, first[0][1].Intensity, 1.0, "first tick intensity")
	if first[0][1].Vibration != VibStatic {
		t.Errorf("first tick should be static, got %v", first[0][1].Vibration)
	}

	// 0.4 m in 0.2 s = 2 m/s radial, above the fast threshold.
	tw.move(e, 5.9, 5)
	second := engine.Compute(centerPose(), 0.2)
	if second[0][1].Vibration != VibFast {
		t.Errorf("expected fast vibration, got %v", second[0][1].Vibration)
	}

	// 0.06 m in 0.2 s = 0.3 m/s, between the thresholds.
	tw.move(e, 5.96, 5)
	third := engine.Compute(centerPose(), 0.2)
	if third[0][1].Vibration != VibSlow {
		t.Errorf("expected slow vibration, got %v", third[0][1].Vibration)
	}
}

// Motion history is cell-keyed: an obstacle that crosses into a band whose
// cell was empty last tick reads static there, whatever its actual speed.
func TestMotionHistoryIsCellKeyed(t *testing.T) {
	tw := newTestWorld()
	e := tw.spawn(5.5, 5, components.KindStep, 0.1, 0.1)

	engine := NewGridEngine(tw.w, defaultGridParams())
	engine.Compute(centerPose(), 0.2)

	tw.move(e, 6.5, 5) // jumps from Immediate to Near band
	grid := engine.Compute(centerPose(), 0.2)

	if grid[0][1].Occupied {
		t.Error("Immediate/Center should be empty after the move")
	}
	if grid[1][1].Vibration != VibStatic {
		t.Errorf("Near/Center was empty last tick, expected static, got %v", grid[1][1].Vibration)
	}
}

func TestEmptyCellClearsHistory(t *testing.T) {
	tw := newTestWorld()
	e := tw.spawn(5.5, 5, components.KindStep, 0.1, 0.1)

	engine := NewGridEngine(tw.w, defaultGridParams())
	engine.Compute(centerPose(), 0.2)

	tw.move(e, 9.5, 5) // out of range: cell empties, history cleared
	engine.Compute(centerPose(), 0.2)

	tw.move(e, 5.5, 5) // back at the original distance
	grid := engine.Compute(centerPose(), 0.2)
	if grid[0][1].Vibration != VibStatic {
		t.Errorf("history was cleared, expected static, got %v", grid[0][1].Vibration)
	}
}

func TestObstacleAtPlayerPosition(t *testing.T) {
	tw := newTestWorld()
	tw.spawn(5, 5, components.KindStep, 0.1, 0.1)

	engine := NewGridEngine(tw.w, defaultGridParams())
	grid := engine.Compute(centerPose(), 0.2)

	if !grid[0][1].Occupied {
		t.Error("zero-distance obstacle should land in Immediate/Center")
	}
	approx(t, grid[0][1].Distance, 0, "zero distance")
}

func TestBandBoundaryClassification(t *testing.T) {
	tw := newTestWorld()
	tw.spawn(6, 5, components.KindStep, 0.05, 0.05) // exactly 1.0 m: Near, not Immediate

	engine := NewGridEngine(tw.w, defaultGridParams())
	grid := engine.Compute(centerPose(), 0.2)

	if grid[0][1].Occupied {
		t.Error("1.0 m belongs to the Near band, not Immediate")
	}
	if !grid[1][1].Occupied {
		t.Error("1.0 m obstacle missing from the Near band")
	}
	approx(t, grid[1][1].Intensity, 0.7, "near band intensity")
}
