// Package telemetry collects per-perception-tick records and windowed
// aggregate statistics.
package telemetry

import (
	"log/slog"

	"github.com/pthm-cable/hapticnav/components"
	"github.com/pthm-cable/hapticnav/systems"
)

// GridRecord summarizes one perception tick for grid.csv.
type GridRecord struct {
	Tick             int64   `csv:"tick"`
	SimTime          float64 `csv:"sim_time"`
	ActiveCells      int     `csv:"active_cells"`
	MeanAbsIntensity float64 `csv:"mean_abs_intensity"`
	MaxAbsIntensity  float64 `csv:"max_abs_intensity"`
	SlowCells        int     `csv:"slow_cells"`
	FastCells        int     `csv:"fast_cells"`
	SafeDirection    string  `csv:"safe_direction"`
	TotalRisk        float64 `csv:"total_risk"`
	PlayerX          float32 `csv:"player_x"`
	PlayerY          float32 `csv:"player_y"`
	Heading          float32 `csv:"heading"`
	VerticalOffset   float32 `csv:"vertical_offset"`
	InPit            bool    `csv:"in_pit"`
	Jumping          bool    `csv:"jumping"`
}

// Collector accumulates perception records and flushes window stats.
type Collector struct {
	windowSec float64
	logStats  bool
	output    *OutputManager

	windowStart float64
	records     []GridRecord
	pitEntries  int
	jumps       int
	dirCounts   map[string]int
}

// NewCollector creates a collector; output may be nil (CSV disabled).
func NewCollector(windowSec float64, logStats bool, output *OutputManager) *Collector {
	if windowSec <= 0 {
		windowSec = 5
	}
	return &Collector{
		windowSec: windowSec,
		logStats:  logStats,
		output:    output,
		dirCounts: make(map[string]int),
	}
}

// RecordJump counts a jump launch.
func (c *Collector) RecordJump() {
	c.jumps++
}

// RecordPitEntry counts a grounded pit entry.
func (c *Collector) RecordPitEntry() {
	c.pitEntries++
}

// RecordPerception summarizes the grid snapshot for one perception tick and
// flushes the stats window when it elapses.
func (c *Collector) RecordPerception(
	tick int64,
	simTime float64,
	grid *systems.TactileGrid,
	dir systems.Direction,
	risks [systems.GridCols]float32,
	player *components.Player,
) {
	rec := GridRecord{
		Tick:           tick,
		SimTime:        simTime,
		SafeDirection:  dir.String(),
		PlayerX:        player.X,
		PlayerY:        player.Y,
		Heading:        player.Heading,
		VerticalOffset: player.VerticalOffset,
		InPit:          player.InPit,
		Jumping:        player.Jumping,
	}

	var sumAbs float64
	for r := 0; r < systems.GridRows; r++ {
		for cc := 0; cc < systems.GridCols; cc++ {
			cell := &grid[r][cc]
			if !cell.Occupied {
				continue
			}
			rec.ActiveCells++
			mag := float64(cell.Intensity)
			if mag < 0 {
				mag = -mag
			}
			sumAbs += mag
			if mag > rec.MaxAbsIntensity {
				rec.MaxAbsIntensity = mag
			}
			switch cell.Vibration {
			case systems.VibSlow:
				rec.SlowCells++
			case systems.VibFast:
				rec.FastCells++
			}
		}
	}
	if rec.ActiveCells > 0 {
		rec.MeanAbsIntensity = sumAbs / float64(rec.ActiveCells)
	}
	for _, risk := range risks {
		rec.TotalRisk += float64(risk)
	}

	if err := c.output.WriteGridRecord(rec); err != nil {
		slog.Error("failed to write grid record", "error", err)
	}

	c.records = append(c.records, rec)
	c.dirCounts[rec.SafeDirection]++

	if simTime-c.windowStart >= c.windowSec {
		c.Flush(tick, simTime)
	}
}

// Flush emits window stats for the accumulated records and starts a new
// window. Safe to call with an empty window.
func (c *Collector) Flush(tick int64, simTime float64) {
	if len(c.records) == 0 {
		c.windowStart = simTime
		return
	}

	stats := computeWindowStats(c.records, c.dirCounts, c.pitEntries, c.jumps, tick, simTime)

	if c.logStats {
		slog.Info("window stats",
			"window_end", stats.WindowEnd,
			"sim_time", stats.SimTime,
			"mean_active_cells", stats.MeanActiveCells,
			"mean_risk", stats.MeanRisk,
			"risk_p90", stats.RiskP90,
			"all_clear_fraction", stats.AllClearFraction,
			"pit_entries", stats.PitEntries,
			"jumps", stats.Jumps,
		)
	}
	if err := c.output.WriteWindowStats(stats); err != nil {
		slog.Error("failed to write window stats", "error", err)
	}

	c.records = c.records[:0]
	c.dirCounts = make(map[string]int)
	c.pitEntries = 0
	c.jumps = 0
	c.windowStart = simTime
}
