package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/hapticnav/components"
)

// Grid dimensions: distance bands (rows) x direction bands (columns).
const (
	GridRows = 3
	GridCols = 3
)

// VibrationMode classifies a cell's frame-to-frame radial motion.
type VibrationMode uint8

const (
	VibStatic VibrationMode = iota
	VibSlow
	VibFast
)

// String returns the mode name.
func (v VibrationMode) String() string {
	switch v {
	case VibSlow:
		return "slow"
	case VibFast:
		return "fast"
	default:
		return "static"
	}
}

// TactileCell is one actuator of the 3x3 device. Intensity magnitude encodes
// the elevation category attenuated by distance; its sign separates pits
// from raised obstacles.
type TactileCell struct {
	Intensity float32
	Vibration VibrationMode
	Obstacle  ecs.Entity
	Occupied  bool
	Distance  float32 // distance to the selected obstacle, meters
}

// TactileGrid is the full device snapshot for one perception tick,
// indexed [row][col].
type TactileGrid [GridRows][GridCols]TactileCell

// GridParams holds the sensing-cone and classification tunables.
type GridParams struct {
	Range         float32               // max sensing distance, meters
	HalfFOVDeg    float32               // half field of view, degrees
	BandBounds    [GridRows]float32     // ascending outer bounds of the distance bands
	BandWeights   [GridRows]float32     // per-row attenuation
	ColBounds     [GridCols + 1]float32 // ascending column boundaries, degrees
	SlowThreshold float32               // radial m/s
	FastThreshold float32
	MaxRaisedCode float32 // height code that triggers priority suppression
}

// prevDist is the retained per-cell best distance from the previous tick.
// Cell-keyed, not obstacle-keyed: motion is estimated from whatever occupied
// the cell last tick.
type prevDist struct {
	dist  float32
	valid bool
}

// GridEngine computes the tactile grid snapshot once per perception tick.
// It owns the previous-distance table; everything else is read through the
// obstacle filter.
type GridEngine struct {
	filter ecs.Filter2[components.Position, components.Profile]
	params GridParams
	prev   [GridRows][GridCols]prevDist
}

// NewGridEngine creates a perception grid engine.
func NewGridEngine(w *ecs.World, params GridParams) *GridEngine {
	return &GridEngine{
		filter: *ecs.NewFilter2[components.Position, components.Profile](w),
		params: params,
	}
}

// Params returns the engine's current tunables.
func (e *GridEngine) Params() GridParams {
	return e.params
}

// SetParams replaces the tunables and clears motion history, since distances
// recorded under the old bands are not comparable.
func (e *GridEngine) SetParams(params GridParams) {
	e.params = params
	e.Reset()
}

// Reset clears the previous-distance table. Call on world reset.
func (e *GridEngine) Reset() {
	e.prev = [GridRows][GridCols]prevDist{}
}

// Compute builds the grid for the player pose. elapsed is the time since the
// previous perception tick and is the period used for radial speed; with no
// elapsed time every cell reads static.
func (e *GridEngine) Compute(pose components.Pose, elapsed float32) TactileGrid {
	var grid TactileGrid
	var best [GridRows][GridCols]float32
	var found [GridRows][GridCols]bool

	query := e.filter.Query()
	for query.Next() {
		pos, prof := query.Get()
		entity := query.Entity()

		row, col, dist, ok := e.classify(pose, pos.X, pos.Y)
		if !ok {
			continue
		}
		// Nearest wins; strict < keeps the first-seen obstacle on exact ties.
		if found[row][col] && dist >= best[row][col] {
			continue
		}
		found[row][col] = true
		best[row][col] = dist

		cell := &grid[row][col]
		cell.Occupied = true
		cell.Obstacle = entity
		cell.Distance = dist
		cell.Intensity = float32(prof.Kind.HeightCode()) * e.params.BandWeights[row]
	}

	for r := 0; r < GridRows; r++ {
		for c := 0; c < GridCols; c++ {
			if !found[r][c] {
				grid[r][c] = TactileCell{} // intensity 0, static, no reference
				e.prev[r][c] = prevDist{}
				continue
			}
			grid[r][c].Vibration = e.classifyMotion(e.prev[r][c], best[r][c], elapsed)
			e.prev[r][c] = prevDist{dist: best[r][c], valid: true}
		}
	}

	e.suppress(&grid)
	return grid
}

// classify bins an obstacle into its (row, col) cell, or reports ok=false
// when it is out of range or outside the field of view.
func (e *GridEngine) classify(pose components.Pose, ox, oy float32) (row, col int, dist float32, ok bool) {
	dx := ox - pose.X
	dy := oy - pose.Y
	dist = hypot(dx, dy)

	if dist > e.params.Range {
		return 0, 0, 0, false
	}
	// Degenerate obstacle at the player's exact position: any bearing is
	// valid, assign to Immediate/Center.
	if dist < 1e-6 {
		return 0, 1, dist, true
	}

	bearing := degrees(normalizeAngle(float32(math.Atan2(float64(dy), float64(dx))) - pose.Heading))
	if bearing < e.params.ColBounds[0] || bearing > e.params.ColBounds[GridCols] {
		return 0, 0, 0, false
	}

	col = GridCols - 1
	for i := 1; i < GridCols; i++ {
		if bearing < e.params.ColBounds[i] {
			col = i - 1
			break
		}
	}

	row = GridRows - 1
	for i := 0; i < GridRows-1; i++ {
		if dist < e.params.BandBounds[i] {
			row = i
			break
		}
	}
	return row, col, dist, true
}

// classifyMotion turns the per-cell distance delta into a vibration mode.
// A cell that was empty last tick defaults to static.
func (e *GridEngine) classifyMotion(prev prevDist, dist, elapsed float32) VibrationMode {
	if !prev.valid || elapsed <= 0 {
		return VibStatic
	}
	speed := abs32(prev.dist-dist) / elapsed
	switch {
	case speed > e.params.FastThreshold:
		return VibFast
	case speed > e.params.SlowThreshold:
		return VibSlow
	default:
		return VibStatic
	}
}

// suppress attenuates distal cells in any column whose Immediate cell carries
// a head-level hazard at full weight: an immediate threat dominates attention
// and distal signal in the same direction is de-prioritized. Only intensities
// are touched.
func (e *GridEngine) suppress(grid *TactileGrid) {
	threshold := e.params.MaxRaisedCode * e.params.BandWeights[0]
	for c := 0; c < GridCols; c++ {
		if grid[0][c].Intensity >= threshold {
			grid[2][c].Intensity *= 0.3
			grid[1][c].Intensity *= 0.7
		}
	}
}
