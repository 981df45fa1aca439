package game

import (
	"math"

	"github.com/pthm-cable/hapticnav/components"
	"github.com/pthm-cable/hapticnav/config"
)

// spawnObstacles creates the obstacle batch in a ring around the player.
// Some land deliberately beyond sensing range. Deterministic for a fixed
// seed, so sessions can be replayed by reusing -seed.
func (g *Game) spawnObstacles(cfg *config.Config) {
	kinds, weights := spawnTable(cfg)

	for i := 0; i < cfg.Obstacles.Count; i++ {
		dist := cfg.Obstacles.MinSpawnDist +
			g.rng.Float32()*(cfg.Obstacles.MaxSpawnDist-cfg.Obstacles.MinSpawnDist)
		angle := g.rng.Float64() * 2 * math.Pi

		x := g.player.X + dist*float32(math.Cos(angle))
		y := g.player.Y + dist*float32(math.Sin(angle))

		// Keep clear of the boundary walls.
		margin := cfg.World.WallThickness
		x = clamp(x, margin, cfg.World.Width-margin)
		y = clamp(y, margin, cfg.World.Height-margin)

		kind := pickKind(kinds, weights, g.rng.Float32())
		g.spawnObstacle(cfg, kind, x, y)
	}
}

func (g *Game) spawnObstacle(cfg *config.Config, kind components.ElevationKind, x, y float32) {
	spec, _ := cfg.ElevationFor(kind)

	prof := components.Profile{
		Kind:  kind,
		HalfW: randRange(g.rng.Float32(), cfg.Obstacles.MinHalfExtent, cfg.Obstacles.MaxHalfExtent),
		HalfD: randRange(g.rng.Float32(), cfg.Obstacles.MinHalfExtent, cfg.Obstacles.MaxHalfExtent),
	}
	prof.Height = randRange(g.rng.Float32(), spec.MinHeight, spec.MaxHeight)

	vel := components.Velocity{}
	// Pits are carved into the ground and never move.
	if kind.Info().Motile && g.rng.Float32() < cfg.Obstacles.MovingChance {
		prof.Moving = true
		vel.X = randRange(g.rng.Float32(), -cfg.Obstacles.MaxSpeed, cfg.Obstacles.MaxSpeed)
		vel.Y = randRange(g.rng.Float32(), -cfg.Obstacles.MaxSpeed, cfg.Obstacles.MaxSpeed)
	}

	pos := components.Position{X: x, Y: y}
	g.obstacleMapper.NewEntity(&pos, &vel, &prof)
}

// spawnTable builds the cumulative weight table for kind selection.
func spawnTable(cfg *config.Config) ([]components.ElevationKind, []float32) {
	kinds := make([]components.ElevationKind, 0, len(cfg.Elevations))
	weights := make([]float32, 0, len(cfg.Elevations))

	var total float32
	for _, e := range cfg.Elevations {
		kind, err := components.ParseKind(e.Kind)
		if err != nil || e.SpawnWeight <= 0 {
			continue
		}
		total += e.SpawnWeight
		kinds = append(kinds, kind)
		weights = append(weights, total)
	}
	// Normalize to cumulative [0, 1].
	if total > 0 {
		for i := range weights {
			weights[i] /= total
		}
	}
	return kinds, weights
}

func pickKind(kinds []components.ElevationKind, cumWeights []float32, roll float32) components.ElevationKind {
	for i, w := range cumWeights {
		if roll < w {
			return kinds[i]
		}
	}
	if len(kinds) > 0 {
		return kinds[len(kinds)-1]
	}
	return components.KindStep
}

func randRange(roll, lo, hi float32) float32 {
	return lo + roll*(hi-lo)
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
