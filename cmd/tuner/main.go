// Perception tuner - interactive sensing-cone visualization with sliders.
//
// Usage: go run ./cmd/tuner
package main

import (
	"fmt"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/hapticnav/components"
	"github.com/pthm-cable/hapticnav/config"
	"github.com/pthm-cable/hapticnav/systems"
)

const (
	windowWidth  = 1100
	windowHeight = 720
	previewSize  = 560
	panelWidth   = windowWidth - previewSize - 30
)

// fixture is one synthetic obstacle in the demo world.
type fixture struct {
	kind  components.ElevationKind
	dist  float32 // meters from the player
	deg   float32 // bearing, degrees
	orbit bool    // sweeps left-right to exercise motion classification
}

var fixtures = []fixture{
	{kind: components.KindTop, dist: 0.6, deg: 0},
	{kind: components.KindStep, dist: 1.4, deg: -35},
	{kind: components.KindMid, dist: 1.7, deg: 30, orbit: true},
	{kind: components.KindCliffPit, dist: 2.4, deg: -5},
	{kind: components.KindShallowPit, dist: 2.7, deg: 45},
	{kind: components.KindMid, dist: 3.4, deg: 0}, // out of range at defaults
}

func main() {
	config.MustInit("")
	cfg := config.Cfg()

	rl.InitWindow(windowWidth, windowHeight, "Perception Tuner")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	world := ecs.NewWorld()
	mapper := ecs.NewMap3[components.Position, components.Velocity, components.Profile](world)

	pose := components.Pose{X: 0, Y: 0, Heading: math.Pi / 2}
	entities := make([]ecs.Entity, len(fixtures))
	for i, f := range fixtures {
		pos := fixturePosition(pose, f, 0)
		vel := components.Velocity{}
		spec, _ := cfg.ElevationFor(f.kind)
		prof := components.Profile{Kind: f.kind, HalfW: 0.2, HalfD: 0.2,
			Height: (spec.MinHeight + spec.MaxHeight) / 2, Moving: f.orbit}
		entities[i] = mapper.NewEntity(&pos, &vel, &prof)
	}

	params := systems.GridParams{
		Range:         cfg.Perception.Range,
		HalfFOVDeg:    cfg.Derived.HalfFOVDeg,
		BandBounds:    cfg.Derived.BandBounds,
		BandWeights:   cfg.Derived.BandWeights,
		ColBounds:     cfg.Derived.ColBounds,
		SlowThreshold: cfg.Perception.SlowThreshold,
		FastThreshold: cfg.Perception.FastThreshold,
		MaxRaisedCode: cfg.Derived.MaxRaisedCode,
	}

	engine := systems.NewGridEngine(world, params)
	advisor := systems.NewAdvisor(params.BandWeights)

	posMap := ecs.NewMap1[components.Position](world)

	var simTime float32
	period := float32(1) / cfg.Perception.TickRate
	var sincePerception float32
	var grid systems.TactileGrid
	safeDir := systems.DirAllClear

	for !rl.WindowShouldClose() {
		dt := rl.GetFrameTime()
		simTime += dt
		sincePerception += dt

		// Sweep the orbiting fixtures so vibration modes show up.
		for i, f := range fixtures {
			if !f.orbit {
				continue
			}
			pos := posMap.Get(entities[i])
			*pos = fixturePosition(pose, f, simTime)
		}

		if sincePerception >= period {
			grid = engine.Compute(pose, sincePerception)
			safeDir = advisor.Suggest(&grid)
			sincePerception = 0
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(18, 18, 24, 255))

		drawPreview(pose, params, &grid, safeDir)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Perception Parameters", int32(panelX), int32(panelY), 20, rl.RayWhite)
		panelY += 35

		next := params

		next.Range = slider(panelX, &panelY, "Range (m)", params.Range, 1.0, 5.0)
		fov := slider(panelX, &panelY, "Field of view (deg)", params.HalfFOVDeg*2, 40, 180)
		next.HalfFOVDeg = fov / 2
		next.ColBounds[0] = -next.HalfFOVDeg
		next.ColBounds[3] = next.HalfFOVDeg
		next.SlowThreshold = slider(panelX, &panelY, "Slow threshold (m/s)", params.SlowThreshold, 0.05, 1.0)
		next.FastThreshold = slider(panelX, &panelY, "Fast threshold (m/s)", params.FastThreshold, 0.1, 2.0)
		next.BandWeights[1] = slider(panelX, &panelY, "Near weight", params.BandWeights[1], 0.1, 1.0)
		next.BandWeights[2] = slider(panelX, &panelY, "Far weight", params.BandWeights[2], 0.1, 1.0)

		if next.FastThreshold < next.SlowThreshold {
			next.FastThreshold = next.SlowThreshold
		}
		if next != params {
			params = next
			engine.SetParams(params)
			advisor = systems.NewAdvisor(params.BandWeights)
		}

		panelY += 15
		risks := advisor.ColumnRisks(&grid)
		rl.DrawText(fmt.Sprintf("risk L %.2f  C %.2f  R %.2f", risks[0], risks[1], risks[2]),
			int32(panelX), int32(panelY), 16, rl.LightGray)
		panelY += 24
		rl.DrawText(fmt.Sprintf("safe: %s", safeDir), int32(panelX), int32(panelY), 16, rl.Green)

		rl.EndDrawing()
	}
}

// fixturePosition places a fixture relative to the demo pose, with orbiting
// fixtures swinging +-25 degrees around their base bearing.
func fixturePosition(pose components.Pose, f fixture, t float32) components.Position {
	deg := f.deg
	if f.orbit {
		deg += 25 * float32(math.Sin(float64(t)*1.2))
	}
	ang := pose.Heading + deg*math.Pi/180
	return components.Position{
		X: pose.X + f.dist*float32(math.Cos(float64(ang))),
		Y: pose.Y + f.dist*float32(math.Sin(float64(ang))),
	}
}

func slider(x float32, y *float32, label string, value, min, max float32) float32 {
	rl.DrawText(label, int32(x), int32(*y), 14, rl.Gray)
	*y += 18
	v := gui.SliderBar(
		rl.Rectangle{X: x, Y: *y, Width: float32(panelWidth - 80), Height: 20},
		fmt.Sprintf("%.1f", min), fmt.Sprintf("%.1f", max),
		value, min, max,
	)
	rl.DrawText(fmt.Sprintf("%.2f", value), int32(x+float32(panelWidth-70)), int32(*y+2), 16, rl.RayWhite)
	*y += 32
	return v
}

// drawPreview renders the sensing cone top-down plus a small 3x3 intensity grid.
func drawPreview(pose components.Pose, params systems.GridParams, grid *systems.TactileGrid, safeDir systems.Direction) {
	cx := float32(previewSize)/2 + 10
	cy := float32(previewSize)/2 + 10
	scale := float32(previewSize) / 2 / params.Range * 0.9

	toScreen := func(deg, dist float32) rl.Vector2 {
		ang := float64(deg * math.Pi / 180)
		return rl.Vector2{
			X: cx + dist*scale*float32(math.Sin(ang)),
			Y: cy - dist*scale*float32(math.Cos(ang)),
		}
	}

	// Cone wedge
	for d := params.ColBounds[0]; d < params.ColBounds[3]; d += 2 {
		a := toScreen(d, params.Range)
		b := toScreen(d+2, params.Range)
		rl.DrawTriangle(rl.Vector2{X: cx, Y: cy}, b, a, rl.NewColor(40, 55, 70, 255))
	}
	for _, b := range params.ColBounds[1:3] {
		rl.DrawLineV(rl.Vector2{X: cx, Y: cy}, toScreen(b, params.Range), rl.NewColor(70, 90, 110, 255))
	}
	for _, r := range params.BandBounds {
		rl.DrawCircleLines(int32(cx), int32(cy), r*scale, rl.NewColor(60, 70, 85, 255))
	}

	// Fixtures
	for _, f := range fixtures {
		p := toScreen(f.deg, f.dist)
		col := rl.Gray
		if f.kind.IsPit() {
			col = rl.Purple
		} else if f.kind == components.KindStep {
			col = rl.Orange
		}
		rl.DrawCircleV(p, 6, col)
	}
	rl.DrawCircleV(rl.Vector2{X: cx, Y: cy}, 7, rl.SkyBlue)

	// Mini grid readout below the cone
	gy := int32(previewSize - 90)
	for r := 0; r < systems.GridRows; r++ {
		for c := 0; c < systems.GridCols; c++ {
			cell := grid[r][c]
			x := int32(20 + c*44)
			y := gy + int32(r*28)
			col := rl.NewColor(45, 45, 55, 255)
			if cell.Occupied {
				shade := uint8(80 + 55*minf(absf(cell.Intensity)/3, 1))
				col = rl.NewColor(shade+100, 60, 60, 255)
				if cell.Intensity < 0 {
					col = rl.Purple
				}
			}
			rl.DrawRectangle(x, y, 40, 24, col)
			if cell.Occupied {
				rl.DrawText(fmt.Sprintf("%.1f", cell.Intensity), x+4, y+5, 12, rl.RayWhite)
			}
		}
	}
	rl.DrawText(fmt.Sprintf("safe: %s", safeDir), 20, gy+int32(3*28+6), 16, rl.Green)
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
