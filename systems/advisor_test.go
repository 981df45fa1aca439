package systems

import "testing"

func testAdvisor() *Advisor {
	return NewAdvisor([GridRows]float32{1.0, 0.7, 0.4})
}

func TestSuggestPicksEmptyColumn(t *testing.T) {
	var grid TactileGrid
	grid[0][0].Intensity = 1.0 // left populated
	grid[1][1].Intensity = 1.4 // center populated
	grid[2][1].Intensity = 0.4

	if got := testAdvisor().Suggest(&grid); got != DirRight {
		t.Errorf("Suggest = %v, want right", got)
	}
}

func TestSuggestAllClear(t *testing.T) {
	var grid TactileGrid
	if got := testAdvisor().Suggest(&grid); got != DirAllClear {
		t.Errorf("Suggest = %v, want all clear", got)
	}
}

func TestSuggestTieBreaksToLowestColumn(t *testing.T) {
	var grid TactileGrid
	for c := 0; c < GridCols; c++ {
		grid[0][c].Intensity = 2.0
	}
	if got := testAdvisor().Suggest(&grid); got != DirLeft {
		t.Errorf("Suggest = %v, want left on a tie", got)
	}
}

// Dividing out the row weight reconstructs the raw hazard magnitude, so a
// weak far signal and a strong near signal of the same height code carry
// equal risk.
func TestColumnRisksDivideOutAttenuation(t *testing.T) {
	var grid TactileGrid
	grid[0][0].Intensity = 3.0       // top at full weight
	grid[2][1].Intensity = 3.0 * 0.4 // same hazard, far band

	risks := testAdvisor().ColumnRisks(&grid)
	if diff := risks[0] - risks[1]; diff > 1e-4 || diff < -1e-4 {
		t.Errorf("raw risks should match: left %f, center %f", risks[0], risks[1])
	}
}

// Pit intensities are negative; risk uses magnitude.
func TestColumnRisksUseMagnitude(t *testing.T) {
	var grid TactileGrid
	grid[0][0].Intensity = -3.0 // cliff pit ahead left
	grid[0][2].Intensity = 1.0

	if got := testAdvisor().Suggest(&grid); got != DirCenter {
		t.Errorf("Suggest = %v, want center", got)
	}
}
