package systems

// Direction is the safety advisor's suggestion: a grid column, or all clear.
type Direction int8

const (
	DirAllClear Direction = -1
	DirLeft     Direction = 0
	DirCenter   Direction = 1
	DirRight    Direction = 2
)

// String returns the direction label.
func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirCenter:
		return "center"
	case DirRight:
		return "right"
	default:
		return "all clear"
	}
}

// Advisor aggregates per-column risk from a tactile grid and proposes the
// safest heading column.
type Advisor struct {
	weights [GridRows]float32
}

// NewAdvisor creates an advisor using the given row attenuation weights.
func NewAdvisor(weights [GridRows]float32) *Advisor {
	return &Advisor{weights: weights}
}

// ColumnRisks sums |intensity| / weight over the rows of each column.
// Dividing out the attenuation puts a weak far threat and a strong near
// threat on equivalent footing.
func (a *Advisor) ColumnRisks(grid *TactileGrid) [GridCols]float32 {
	var risks [GridCols]float32
	for c := 0; c < GridCols; c++ {
		for r := 0; r < GridRows; r++ {
			h := abs32(grid[r][c].Intensity)
			if h > 0 {
				risks[c] += h / a.weights[r]
			}
		}
	}
	return risks
}

// Suggest returns the column with the minimum aggregate risk, or DirAllClear
// when no column carries any signal. Ties resolve to the lowest column index.
func (a *Advisor) Suggest(grid *TactileGrid) Direction {
	risks := a.ColumnRisks(grid)

	minCol := 0
	for c := 1; c < GridCols; c++ {
		if risks[c] < risks[minCol] {
			minCol = c
		}
	}
	if risks[minCol] == 0 {
		return DirAllClear
	}
	return Direction(minCol)
}
