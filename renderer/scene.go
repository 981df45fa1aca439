// Package renderer draws the top-down environment view and the tactile
// device panel. It consumes snapshots produced by the core and holds no
// simulation state of its own.
package renderer

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/hapticnav/components"
	"github.com/pthm-cable/hapticnav/config"
)

// ObstacleView is the per-obstacle data the scene view needs.
type ObstacleView struct {
	X, Y    float32
	Profile components.Profile
	InCone  bool
}

// kindColor maps elevation kinds to scene colors.
func kindColor(kind components.ElevationKind) rl.Color {
	switch kind {
	case components.KindStep:
		return rl.Color{R: 100, G: 200, B: 100, A: 255}
	case components.KindMid:
		return rl.Color{R: 220, G: 180, B: 60, A: 255}
	case components.KindTop:
		return rl.Color{R: 255, G: 80, B: 80, A: 255}
	case components.KindShallowPit:
		return rl.Color{R: 80, G: 40, B: 120, A: 255}
	case components.KindCliffPit:
		return rl.Color{R: 160, G: 40, B: 200, A: 255}
	default:
		return rl.Color{R: 60, G: 60, B: 60, A: 255}
	}
}

// SceneView renders the top-down environment in the left half of the window.
type SceneView struct {
	panelW, panelH float32
	scale          float32 // pixels per meter
	sensingRange   float32
	halfFOV        float32 // radians
	bandBounds     [3]float32
	colBoundsDeg   [4]float32
}

// NewSceneView creates the scene view from display and perception config.
func NewSceneView(cfg *config.Config) *SceneView {
	panelW := float32(cfg.Screen.Width) / 2
	panelH := float32(cfg.Screen.Height)
	return &SceneView{
		panelW:       panelW,
		panelH:       panelH,
		scale:        0.55 * panelH / cfg.Perception.Range / 2,
		sensingRange: cfg.Perception.Range,
		halfFOV:      cfg.FOVRadians() / 2,
		bandBounds:   cfg.Derived.BandBounds,
		colBoundsDeg: cfg.Derived.ColBounds,
	}
}

// toScreen converts a world offset from the player into panel coordinates.
// The player is pinned at the panel center.
func (v *SceneView) toScreen(p *components.Player, wx, wy float32) (float32, float32) {
	return v.panelW/2 + (wx-p.X)*v.scale, v.panelH/2 + (wy-p.Y)*v.scale
}

// Draw renders the scene: sensing cone, range rings, obstacles and the
// player arrow.
func (v *SceneView) Draw(obstacles []ObstacleView, p *components.Player) {
	rl.DrawRectangle(0, 0, int32(v.panelW), int32(v.panelH), rl.Color{R: 25, G: 25, B: 35, A: 255})

	cx, cy := v.panelW/2, v.panelH/2
	center := rl.Vector2{X: cx, Y: cy}

	v.drawCone(center, p.Heading)
	v.drawRings(center)

	for _, o := range obstacles {
		v.drawObstacle(p, o)
	}

	v.drawPlayer(center, p)
	rl.DrawText("Environment (top-down)", int32(v.panelW/2)-120, 12, 20, rl.LightGray)
}

func (v *SceneView) drawCone(center rl.Vector2, heading float32) {
	coneLen := v.sensingRange * v.scale
	const arcPoints = 20

	prev := rl.Vector2{
		X: center.X + coneLen*float32(math.Cos(float64(heading-v.halfFOV))),
		Y: center.Y + coneLen*float32(math.Sin(float64(heading-v.halfFOV))),
	}
	for i := 1; i <= arcPoints; i++ {
		a := heading - v.halfFOV + 2*v.halfFOV*float32(i)/arcPoints
		next := rl.Vector2{
			X: center.X + coneLen*float32(math.Cos(float64(a))),
			Y: center.Y + coneLen*float32(math.Sin(float64(a))),
		}
		rl.DrawTriangle(center, prev, next, rl.Color{R: 40, G: 50, B: 70, A: 255})
		prev = next
	}

	// Column dividers at the inner direction band boundaries.
	for _, deg := range v.colBoundsDeg[1:3] {
		a := float64(heading + deg*math.Pi/180)
		end := rl.Vector2{
			X: center.X + coneLen*float32(math.Cos(a)),
			Y: center.Y + coneLen*float32(math.Sin(a)),
		}
		rl.DrawLineV(center, end, rl.Color{R: 100, G: 100, B: 150, A: 255})
	}
}

func (v *SceneView) drawRings(center rl.Vector2) {
	ringColors := [3]rl.Color{
		{R: 80, G: 200, B: 80, A: 255},
		{R: 200, G: 200, B: 80, A: 255},
		{R: 200, G: 80, B: 80, A: 255},
	}
	for i, bound := range v.bandBounds {
		radius := bound * v.scale
		rl.DrawCircleLinesV(center, radius, ringColors[i])
		label := fmt.Sprintf("%gm", bound)
		rl.DrawText(label, int32(center.X+radius+4), int32(center.Y), 16, ringColors[i])
	}
}

func (v *SceneView) drawObstacle(p *components.Player, o ObstacleView) {
	sx, sy := v.toScreen(p, o.X, o.Y)
	if sx < 0 || sx > v.panelW || sy < 0 || sy > v.panelH {
		return
	}
	w := o.Profile.HalfW * 2 * v.scale
	d := o.Profile.HalfD * 2 * v.scale
	color := kindColor(o.Profile.Kind)

	if o.Profile.Kind.IsPit() {
		rl.DrawEllipse(int32(sx), int32(sy), w/2, d/2, rl.Color{R: 30, G: 15, B: 45, A: 255})
		rl.DrawEllipseLines(int32(sx), int32(sy), w/2, d/2, color)
	} else {
		rl.DrawRectangle(int32(sx-w/2), int32(sy-d/2), int32(w), int32(d), color)
	}

	if o.InCone {
		rl.DrawRectangleLines(int32(sx-w/2)-3, int32(sy-d/2)-3, int32(w)+6, int32(d)+6, rl.White)
	}
	if o.Profile.Moving {
		pulse := float32(math.Abs(math.Sin(rl.GetTime() * 5)))
		rl.DrawCircleLinesV(rl.Vector2{X: sx, Y: sy}, w/2+4+pulse*3, rl.Yellow)
	}
}

func (v *SceneView) drawPlayer(center rl.Vector2, p *components.Player) {
	rl.DrawCircleV(center, 10, rl.White)
	rl.DrawCircleV(center, 8, rl.Color{R: 50, G: 150, B: 255, A: 255})

	const arrowLen = 28
	tip := rl.Vector2{
		X: center.X + arrowLen*float32(math.Cos(float64(p.Heading))),
		Y: center.Y + arrowLen*float32(math.Sin(float64(p.Heading))),
	}
	rl.DrawLineEx(center, tip, 3, rl.White)

	if p.InPit {
		rl.DrawText("IN PIT", int32(center.X)-24, int32(center.Y)+18, 18, rl.Orange)
	}
	if p.Jumping {
		rl.DrawText("AIRBORNE", int32(center.X)-34, int32(center.Y)-34, 18, rl.SkyBlue)
	}
}
