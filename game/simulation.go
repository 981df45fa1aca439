package game

import (
	"math"

	"github.com/pthm-cable/hapticnav/components"
	"github.com/pthm-cable/hapticnav/config"
	"github.com/pthm-cable/hapticnav/systems"
)

// Step advances the simulation by one locomotion tick of dt seconds,
// consuming the per-tick intent. Perception is gated separately on
// accumulated elapsed time so its cadence holds under variable frame rates.
func (g *Game) Step(intent components.Intent, dt float32) {
	if intent.Reset {
		g.Reset()
		return
	}

	g.tick++
	g.simTime += float64(dt)

	g.applyLocomotion(intent, dt)

	if intent.Jump && !g.player.Jumping {
		g.vertical.Launch(&g.player)
		g.collector.RecordJump()
	}

	wasInPit := g.player.InPit
	g.vertical.Update(&g.player, dt)
	if !wasInPit && g.player.InPit {
		g.collector.RecordPitEntry()
	}

	g.sincePerception += dt
	period := config.Cfg().Derived.PerceptionPeriod
	if g.sincePerception >= period {
		g.perceptionStep(g.sincePerception)
		g.sincePerception = 0
	}
}

// applyLocomotion turns and moves the player. A displacement only commits
// when the resolver reports the candidate position free.
func (g *Game) applyLocomotion(intent components.Intent, dt float32) {
	p := &g.player

	if intent.TurnLeft {
		p.Heading = systems.NormalizeAngle(p.Heading - g.turnSpeed*dt)
	}
	if intent.TurnRight {
		p.Heading = systems.NormalizeAngle(p.Heading + g.turnSpeed*dt)
	}

	step := float32(0)
	if intent.Forward {
		step += g.moveSpeed * dt
	}
	if intent.Backward {
		step -= g.moveSpeed * dt
	}
	if step == 0 {
		return
	}

	nx := p.X + float32(math.Cos(float64(p.Heading)))*step
	ny := p.Y + float32(math.Sin(float64(p.Heading)))*step
	if !g.resolver.Blocked(nx, ny, p.Jumping) {
		p.X = nx
		p.Y = ny
	}
}

// perceptionStep runs one low-frequency tick: obstacle kinematics, the grid
// engine and the safety advisor, then telemetry.
func (g *Game) perceptionStep(elapsed float32) {
	g.perceptionTick++

	g.kinematics.Update(elapsed)
	g.grid = g.engine.Compute(g.player.Pose, elapsed)
	g.safeDir = g.advisor.Suggest(&g.grid)

	risks := g.advisor.ColumnRisks(&g.grid)
	g.collector.RecordPerception(g.perceptionTick, g.simTime, &g.grid, g.safeDir, risks, &g.player)
}
