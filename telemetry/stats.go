package telemetry

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for one stats window.
type WindowStats struct {
	WindowEnd       int64   `csv:"window_end"` // perception tick
	SimTime         float64 `csv:"sim_time"`
	PerceptionTicks int     `csv:"perception_ticks"`

	MeanActiveCells float64 `csv:"mean_active_cells"`
	MeanIntensity   float64 `csv:"mean_intensity"`
	MeanRisk        float64 `csv:"mean_risk"`
	StdRisk         float64 `csv:"std_risk"`
	RiskP90         float64 `csv:"risk_p90"`

	AllClearFraction float64 `csv:"all_clear_fraction"`
	LeftCount        int     `csv:"left_count"`
	CenterCount      int     `csv:"center_count"`
	RightCount       int     `csv:"right_count"`

	PitEntries int `csv:"pit_entries"`
	Jumps      int `csv:"jumps"`
}

// computeWindowStats aggregates the window's grid records.
func computeWindowStats(
	records []GridRecord,
	dirCounts map[string]int,
	pitEntries, jumps int,
	tick int64,
	simTime float64,
) WindowStats {
	n := len(records)
	active := make([]float64, n)
	intensity := make([]float64, n)
	risk := make([]float64, n)
	for i, rec := range records {
		active[i] = float64(rec.ActiveCells)
		intensity[i] = rec.MeanAbsIntensity
		risk[i] = rec.TotalRisk
	}
	sort.Float64s(risk)

	// StdDev needs two samples; a single-record window reports 0, not NaN.
	stdRisk := 0.0
	if n > 1 {
		stdRisk = stat.StdDev(risk, nil)
	}

	return WindowStats{
		WindowEnd:        tick,
		SimTime:          simTime,
		PerceptionTicks:  n,
		MeanActiveCells:  stat.Mean(active, nil),
		MeanIntensity:    stat.Mean(intensity, nil),
		MeanRisk:         stat.Mean(risk, nil),
		StdRisk:          stdRisk,
		RiskP90:          stat.Quantile(0.9, stat.Empirical, risk, nil),
		AllClearFraction: float64(dirCounts["all clear"]) / float64(n),
		LeftCount:        dirCounts["left"],
		CenterCount:      dirCounts["center"],
		RightCount:       dirCounts["right"],
		PitEntries:       pitEntries,
		Jumps:            jumps,
	}
}
