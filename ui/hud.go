// Package ui draws the status overlay with consistent styling.
package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Theme holds the HUD styling parameters.
type Theme struct {
	PanelBg     rl.Color
	PanelBorder rl.Color
	LabelColor  rl.Color
	ValueColor  rl.Color
	FontSize    int32
	LineHeight  int32
}

// DefaultTheme returns the standard dark theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:     rl.Color{R: 20, G: 20, B: 30, A: 230},
		PanelBorder: rl.Color{R: 80, G: 120, B: 160, A: 255},
		LabelColor:  rl.Color{R: 150, G: 150, B: 180, A: 255},
		ValueColor:  rl.Color{R: 220, G: 220, B: 220, A: 255},
		FontSize:    18,
		LineHeight:  24,
	}
}

// Status is the per-frame data shown in the overlay.
type Status struct {
	Tick           int64
	PerceptionTick int64
	X, Y, Heading  float32
	VerticalOffset float32
	InPit          bool
	Jumping        bool
	Risks          [3]float32
	Paused         bool
}

// HUD renders the status overlay.
type HUD struct {
	Theme Theme
}

// NewHUD creates a HUD with the default theme.
func NewHUD() *HUD {
	return &HUD{Theme: DefaultTheme()}
}

// Draw renders the overlay in the bottom-left corner.
func (h *HUD) Draw(s Status) {
	const x, w = 10, 290
	y := int32(rl.GetScreenHeight()) - 170

	rl.DrawRectangle(x, y, w, 160, h.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, w, 160, h.Theme.PanelBorder)

	ty := y + 8
	h.line(x+10, ty, "tick", fmt.Sprintf("%d (perception %d)", s.Tick, s.PerceptionTick))
	ty += h.Theme.LineHeight
	h.line(x+10, ty, "pose", fmt.Sprintf("(%.2f, %.2f) %.0f deg", s.X, s.Y, s.Heading*57.29578))
	ty += h.Theme.LineHeight
	h.line(x+10, ty, "offset", fmt.Sprintf("%.2f m  pit=%v air=%v", s.VerticalOffset, s.InPit, s.Jumping))
	ty += h.Theme.LineHeight
	h.line(x+10, ty, "risk", fmt.Sprintf("L %.1f  C %.1f  R %.1f", s.Risks[0], s.Risks[1], s.Risks[2]))
	ty += h.Theme.LineHeight
	h.line(x+10, ty, "keys", "WASD move, Space jump, R reset, P pause")

	if s.Paused {
		rl.DrawText("PAUSED", x+10, y-26, 20, rl.Orange)
	}
}

func (h *HUD) line(x, y int32, label, value string) {
	rl.DrawText(label, x, y, h.Theme.FontSize, h.Theme.LabelColor)
	rl.DrawText(value, x+70, y, h.Theme.FontSize, h.Theme.ValueColor)
}
