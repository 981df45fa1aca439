// Package game owns the world state and drives the two simulation clocks:
// the per-frame locomotion tick and the 5 Hz perception tick.
package game

import (
	"log/slog"
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/hapticnav/components"
	"github.com/pthm-cable/hapticnav/config"
	"github.com/pthm-cable/hapticnav/renderer"
	"github.com/pthm-cable/hapticnav/systems"
	"github.com/pthm-cable/hapticnav/telemetry"
	"github.com/pthm-cable/hapticnav/ui"
)

// HeadlessDT is the fixed locomotion tick length without a frame clock.
const HeadlessDT = 1.0 / 60.0

// Options configures game construction.
type Options struct {
	Seed      int64
	OutputDir string
	LogStats  bool
	Headless  bool
}

// Game holds the complete simulation state.
type Game struct {
	world *ecs.World
	rng   *rand.Rand
	opts  Options

	obstacleMapper *ecs.Map3[components.Position, components.Velocity, components.Profile]
	obstacleFilter *ecs.Filter3[components.Position, components.Velocity, components.Profile]

	player components.Player

	kinematics *systems.KinematicsSystem
	resolver   *systems.Resolver
	vertical   *systems.VerticalMachine
	engine     *systems.GridEngine
	advisor    *systems.Advisor

	// Latest perception snapshot, consumed by renderers and telemetry.
	grid    systems.TactileGrid
	safeDir systems.Direction

	bounds    systems.Bounds
	moveSpeed float32
	turnSpeed float32

	tick            int64
	perceptionTick  int64
	simTime         float64
	sincePerception float32

	paused    bool
	collector *telemetry.Collector
	output    *telemetry.OutputManager

	scene  *renderer.SceneView
	device *renderer.DevicePanel
	hud    *ui.HUD
}

// NewGame creates a game from the global config.
func NewGame(opts Options) (*Game, error) {
	cfg := config.Cfg()
	world := ecs.NewWorld()

	g := &Game{
		world:          world,
		rng:            rand.New(rand.NewSource(opts.Seed)),
		opts:           opts,
		obstacleMapper: ecs.NewMap3[components.Position, components.Velocity, components.Profile](world),
		obstacleFilter: ecs.NewFilter3[components.Position, components.Velocity, components.Profile](world),
		safeDir:        systems.DirAllClear,
	}
	g.buildSystems(cfg)

	g.player = components.Player{
		Pose: components.Pose{
			X:       cfg.World.Width / 2,
			Y:       cfg.World.Height / 2,
			Heading: -math.Pi / 2, // facing up
		},
	}
	g.spawnObstacles(cfg)

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	g.output = output
	if err := output.WriteConfig(cfg); err != nil {
		return nil, err
	}
	g.collector = telemetry.NewCollector(cfg.Telemetry.StatsWindow, opts.LogStats, output)

	if !opts.Headless {
		g.scene = renderer.NewSceneView(cfg)
		g.device = renderer.NewDevicePanel(cfg)
		g.hud = ui.NewHUD()
	}
	return g, nil
}

// buildSystems wires the core systems from config tunables.
func (g *Game) buildSystems(cfg *config.Config) {
	g.bounds = systems.Bounds{Width: cfg.World.Width, Height: cfg.World.Height}
	g.moveSpeed = cfg.Player.MoveSpeed
	g.turnSpeed = cfg.Player.TurnSpeed

	g.kinematics = systems.NewKinematicsSystem(g.world, g.bounds, cfg.World.ReflectMargin)
	g.resolver = systems.NewResolver(g.world, g.bounds, cfg.World.WallThickness, cfg.Player.CollisionRadius)
	g.vertical = systems.NewVerticalMachine(g.world, systems.VerticalParams{
		JumpSpeed:      cfg.Vertical.JumpSpeed,
		PitEscapeBoost: cfg.Vertical.PitEscapeBoost,
		Gravity:        cfg.Vertical.Gravity,
		PitDepth:       cfg.Vertical.PitDepth,
		FallRate:       cfg.Vertical.FallRate,
		SnapEpsilon:    cfg.Vertical.SnapEpsilon,
	})
	g.engine = systems.NewGridEngine(g.world, gridParams(cfg))
	g.advisor = systems.NewAdvisor(cfg.Derived.BandWeights)
}

func gridParams(cfg *config.Config) systems.GridParams {
	return systems.GridParams{
		Range:         cfg.Perception.Range,
		HalfFOVDeg:    cfg.Derived.HalfFOVDeg,
		BandBounds:    cfg.Derived.BandBounds,
		BandWeights:   cfg.Derived.BandWeights,
		ColBounds:     cfg.Derived.ColBounds,
		SlowThreshold: cfg.Perception.SlowThreshold,
		FastThreshold: cfg.Perception.FastThreshold,
		MaxRaisedCode: cfg.Derived.MaxRaisedCode,
	}
}

// ApplyConfig applies reloaded tunables to the running game. The obstacle
// population and player pose are kept; perception history is cleared since
// old distances are not comparable under new bands.
func (g *Game) ApplyConfig(cfg *config.Config) {
	g.buildSystems(cfg)
	if g.scene != nil {
		g.scene = renderer.NewSceneView(cfg)
		g.device = renderer.NewDevicePanel(cfg)
	}
	slog.Info("config applied", "range", cfg.Perception.Range, "tick_rate", cfg.Perception.TickRate)
}

// Reset reinitializes the world state: a fresh obstacle batch and zeroed
// player vertical state. Synchronous; the pose is kept.
func (g *Game) Reset() {
	var entities []ecs.Entity
	query := g.obstacleFilter.Query()
	for query.Next() {
		entities = append(entities, query.Entity())
	}
	for _, e := range entities {
		g.obstacleMapper.Remove(e)
	}

	g.player.VerticalOffset = 0
	g.player.InPit = false
	g.player.Jumping = false
	g.player.JumpVel = 0

	g.engine.Reset()
	g.grid = systems.TactileGrid{}
	g.safeDir = systems.DirAllClear
	g.sincePerception = 0

	g.spawnObstacles(config.Cfg())
	slog.Info("world reset", "tick", g.tick)
}

// Player returns the player state for renderers.
func (g *Game) Player() *components.Player { return &g.player }

// Grid returns the latest tactile grid snapshot.
func (g *Game) Grid() *systems.TactileGrid { return &g.grid }

// SafeDirection returns the advisor's latest suggestion.
func (g *Game) SafeDirection() systems.Direction { return g.safeDir }

// Tick returns the locomotion tick count.
func (g *Game) Tick() int64 { return g.tick }

// PerceptionTick returns the perception tick count.
func (g *Game) PerceptionTick() int64 { return g.perceptionTick }

// Paused reports whether the simulation is paused.
func (g *Game) Paused() bool { return g.paused }

// Close flushes telemetry output.
func (g *Game) Close() error {
	g.collector.Flush(g.perceptionTick, g.simTime)
	return g.output.Close()
}
