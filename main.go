package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/hapticnav/config"
	"github.com/pthm-cable/hapticnav/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output window stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N locomotion ticks (0 = unlimited)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:      rngSeed,
		OutputDir: *outputDir,
		LogStats:  *logStats,
		Headless:  *headless,
	}

	// Watch the config file for live edits when one was given.
	var watcher *config.Watcher
	if *configPath != "" {
		w, err := config.NewWatcher(*configPath)
		if err != nil {
			slog.Warn("config watch disabled", "error", err)
		} else {
			watcher = w
			defer watcher.Close()
		}
	}

	reloadConfig := func(g *game.Game) {
		if watcher == nil {
			return
		}
		for {
			select {
			case path := <-watcher.Events:
				if err := config.Init(path); err != nil {
					slog.Error("config reload failed", "path", path, "error", err)
					continue
				}
				g.ApplyConfig(config.Cfg())
			case err := <-watcher.Errors:
				slog.Error("config watcher error", "error", err)
			default:
				return
			}
		}
	}

	if *headless {
		g, err := game.NewGame(opts)
		if err != nil {
			slog.Error("failed to create game", "error", err)
			os.Exit(1)
		}
		defer g.Close()

		slog.Info("starting headless simulation",
			"seed", rngSeed,
			"max_ticks", *maxTicks,
		)

		for {
			g.UpdateHeadless()
			reloadConfig(g)

			if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
				slog.Info("max ticks reached", "tick", g.Tick())
				return
			}
		}
	}

	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "HapticNav")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGame(opts)
	if err != nil {
		slog.Error("failed to create game", "error", err)
		os.Exit(1)
	}
	defer g.Close()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()
		reloadConfig(g)

		if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
			break
		}
	}
}
