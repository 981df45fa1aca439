package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/hapticnav/components"
)

// readIntent translates keyboard state into the per-tick locomotion intent.
func readIntent() components.Intent {
	return components.Intent{
		Forward:   rl.IsKeyDown(rl.KeyW) || rl.IsKeyDown(rl.KeyUp),
		Backward:  rl.IsKeyDown(rl.KeyS) || rl.IsKeyDown(rl.KeyDown),
		TurnLeft:  rl.IsKeyDown(rl.KeyA) || rl.IsKeyDown(rl.KeyLeft),
		TurnRight: rl.IsKeyDown(rl.KeyD) || rl.IsKeyDown(rl.KeyRight),
		Jump:      rl.IsKeyPressed(rl.KeySpace),
		Reset:     rl.IsKeyPressed(rl.KeyR),
	}
}

// Update runs one graphical frame: input, then a locomotion tick using the
// real frame time, which also drives the wall-clock perception gate.
func (g *Game) Update() {
	if rl.IsKeyPressed(rl.KeyP) {
		g.paused = !g.paused
	}
	if g.paused {
		return
	}
	g.Step(readIntent(), rl.GetFrameTime())
}

// UpdateHeadless runs one locomotion tick at the fixed headless rate with no
// input attached.
func (g *Game) UpdateHeadless() {
	g.Step(components.Intent{}, HeadlessDT)
}
