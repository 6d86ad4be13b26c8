package scene

import (
	"math"

	"github.com/zeusync/coulomb/internal/core/interaction"
)

// Track is the geometry of a horizontal slider bound to a control.
type Track struct {
	Control interaction.Control
	X, Y    float64
	Width   float64
}

// Tracks stacks one track per control, top to bottom, spacing apart.
func Tracks(p interaction.Preset, x, y, width, spacing float64) []Track {
	out := make([]Track, len(p.Controls))
	for i, c := range p.Controls {
		out[i] = Track{Control: c, X: x, Y: y + float64(i)*spacing, Width: width}
	}
	return out
}

// ValueAt converts a pointer x position into a snapped control value.
func (t Track) ValueAt(px float64) float64 {
	c := t.Control
	frac := 0.0
	if t.Width > 0 {
		frac = math.Max(0, math.Min(1, (px-t.X)/t.Width))
	}
	return c.Snap(c.Min + frac*(c.Max-c.Min))
}

// KnobX is the screen x of the knob for value v.
func (t Track) KnobX(v float64) float64 {
	return t.X + t.Control.Fraction(v)*t.Width
}

// Hit reports whether (px, py) grabs the track, within slack vertically.
func (t Track) Hit(px, py, slack float64) bool {
	return px >= t.X-slack && px <= t.X+t.Width+slack && math.Abs(py-t.Y) <= slack
}
