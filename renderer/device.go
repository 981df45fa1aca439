package renderer

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/hapticnav/config"
	"github.com/pthm-cable/hapticnav/systems"
)

// DevicePanel renders the 3x3 tactile actuator grid in the right half of the
// window: cell height encodes intensity, color encodes pit vs raised, and a
// lateral pulse encodes the vibration mode.
type DevicePanel struct {
	x, w, h      float32
	maxIntensity float32
	rowNames     [3]string
	colNames     [3]string
}

// NewDevicePanel creates the device panel from display and perception config.
func NewDevicePanel(cfg *config.Config) *DevicePanel {
	p := &DevicePanel{
		x:            float32(cfg.Screen.Width) / 2,
		w:            float32(cfg.Screen.Width) / 2,
		h:            float32(cfg.Screen.Height),
		maxIntensity: cfg.Derived.MaxRaisedCode,
	}
	for i, b := range cfg.Perception.DistanceBands {
		p.rowNames[i] = b.Name
	}
	for i, b := range cfg.Perception.DirectionBands {
		p.colNames[i] = b.Name
	}
	return p
}

// Draw renders the grid snapshot and the advisor suggestion.
func (p *DevicePanel) Draw(grid *systems.TactileGrid, dir systems.Direction, tick int64) {
	rl.DrawRectangle(int32(p.x), 0, int32(p.w), int32(p.h), rl.Color{R: 40, G: 40, B: 48, A: 255})
	rl.DrawText("3x3 Tactile Device", int32(p.x+p.w/2)-100, 12, 20, rl.LightGray)

	cellW := p.w / 5
	cellH := p.h / 6
	originX := p.x + cellW
	originY := cellH * 1.2

	for r := 0; r < systems.GridRows; r++ {
		rl.DrawText(p.rowNames[r], int32(p.x+12), int32(originY+float32(r)*cellH*1.3+cellH/2), 18, rl.Gray)
		for c := 0; c < systems.GridCols; c++ {
			p.drawCell(&grid[r][c], originX+float32(c)*cellW*1.2, originY+float32(r)*cellH*1.3, cellW, cellH)
		}
	}
	for c := 0; c < systems.GridCols; c++ {
		rl.DrawText(p.colNames[c], int32(originX+float32(c)*cellW*1.2+cellW/3), int32(originY+3.3*cellH*1.3), 18, rl.Gray)
	}

	label := fmt.Sprintf("t=%d   safe: %s", tick, dir)
	color := rl.Color{R: 200, G: 200, B: 100, A: 255}
	if dir == systems.DirAllClear {
		color = rl.Color{R: 100, G: 200, B: 100, A: 255}
	}
	rl.DrawText(label, int32(p.x+20), int32(p.h-40), 20, color)
}

func (p *DevicePanel) drawCell(cell *systems.TactileCell, x, y, w, h float32) {
	base := rl.Color{R: 25, G: 25, B: 30, A: 255}
	rl.DrawRectangle(int32(x), int32(y), int32(w), int32(h), base)
	rl.DrawRectangleLines(int32(x), int32(y), int32(w), int32(h), rl.Color{R: 60, G: 60, B: 70, A: 255})

	if cell.Intensity == 0 && !cell.Occupied {
		return
	}

	// Vibration shown as a lateral shiver proportional to the mode.
	shake := float32(0)
	switch cell.Vibration {
	case systems.VibFast:
		shake = float32(math.Sin(rl.GetTime()*25)) * 4
	case systems.VibSlow:
		shake = float32(math.Sin(rl.GetTime()*10)) * 2
	}

	mag := cell.Intensity
	if mag < 0 {
		mag = -mag
	}
	frac := mag / p.maxIntensity
	if frac > 1 {
		frac = 1
	}
	barH := frac * (h - 8)

	color := rl.Color{R: 80, G: 220, B: 80, A: 255}
	if cell.Intensity < 0 {
		color = rl.Color{R: 140, G: 70, B: 200, A: 255} // pit: below-surface signal
	}
	switch cell.Vibration {
	case systems.VibFast:
		color = rl.Color{R: 255, G: 110, B: 110, A: 255}
	case systems.VibSlow:
		color = rl.Color{R: 110, G: 110, B: 255, A: 255}
	}

	rl.DrawRectangle(int32(x+4+shake), int32(y+h-4-barH), int32(w-8), int32(barH), color)
	rl.DrawText(fmt.Sprintf("%.2f", cell.Intensity), int32(x+6), int32(y+4), 16, rl.RayWhite)
}
