package game

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/hapticnav/renderer"
	"github.com/pthm-cable/hapticnav/systems"
	"github.com/pthm-cable/hapticnav/ui"
)

// Draw renders one frame: top-down scene, tactile device panel and HUD.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	g.scene.Draw(g.collectObstacles(), &g.player)
	g.device.Draw(&g.grid, g.safeDir, g.perceptionTick)
	g.hud.Draw(ui.Status{
		Tick:           g.tick,
		PerceptionTick: g.perceptionTick,
		X:              g.player.X,
		Y:              g.player.Y,
		Heading:        g.player.Heading,
		VerticalOffset: g.player.VerticalOffset,
		InPit:          g.player.InPit,
		Jumping:        g.player.Jumping,
		Risks:          g.advisor.ColumnRisks(&g.grid),
		Paused:         g.paused,
	})

	rl.EndDrawing()
}

// collectObstacles snapshots obstacle state for the scene view, flagging
// obstacles inside the sensing cone.
func (g *Game) collectObstacles() []renderer.ObstacleView {
	params := g.engine.Params()
	views := make([]renderer.ObstacleView, 0, 32)

	query := g.obstacleFilter.Query()
	for query.Next() {
		pos, _, prof := query.Get()

		dx := pos.X - g.player.X
		dy := pos.Y - g.player.Y
		dist := float32(math.Sqrt(float64(dx*dx + dy*dy)))
		bearing := systems.NormalizeAngle(float32(math.Atan2(float64(dy), float64(dx))) - g.player.Heading)
		inCone := dist <= params.Range && absf(bearing*180/math.Pi) <= params.HalfFOVDeg

		views = append(views, renderer.ObstacleView{
			X:       pos.X,
			Y:       pos.Y,
			Profile: *prof,
			InCone:  inCone,
		})
	}
	return views
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
