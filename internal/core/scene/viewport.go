package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Viewport maps plot coordinates onto a screen rectangle with equal aspect,
// centering the plot and flipping y. CellAspect is the height/width ratio of a
// single screen unit: 1 for pixels, about 2 for terminal cells.
type Viewport struct {
	Bounds     Bounds
	Left, Top  float64
	Width      float64
	Height     float64
	CellAspect float64

	scale      float64 // screen units per plot unit along x
	offX, offY float64
}

func NewViewport(b Bounds, left, top, width, height, cellAspect float64) Viewport {
	if cellAspect <= 0 {
		cellAspect = 1
	}
	v := Viewport{Bounds: b, Left: left, Top: top, Width: width, Height: height, CellAspect: cellAspect}

	sx := width / b.Width()
	sy := height * cellAspect / b.Height()
	v.scale = math.Min(sx, sy)
	v.offX = (width - b.Width()*v.scale) / 2
	v.offY = (height - b.Height()*v.scale/cellAspect) / 2
	return v
}

// ToScreen converts a plot point to screen coordinates.
func (v Viewport) ToScreen(p mgl64.Vec2) (float64, float64) {
	x := v.Left + v.offX + (p.X()-v.Bounds.Min.X())*v.scale
	y := v.Top + v.offY + (v.Bounds.Max.Y()-p.Y())*v.scale/v.CellAspect
	return x, y
}

// FromScreen is the inverse of ToScreen.
func (v Viewport) FromScreen(x, y float64) mgl64.Vec2 {
	px := (x-v.Left-v.offX)/v.scale + v.Bounds.Min.X()
	py := v.Bounds.Max.Y() - (y-v.Top-v.offY)*v.CellAspect/v.scale
	return mgl64.Vec2{px, py}
}

// Scale is screen units per plot unit along x.
func (v Viewport) Scale() float64 { return v.scale }

// ArrowHead returns the two barb ends of an arrow head at (x2, y2) for a shaft
// starting at (x1, y1), in screen coordinates. ok is false for a zero-length shaft.
func ArrowHead(x1, y1, x2, y2, length, spread float64) (hx1, hy1, hx2, hy2 float64, ok bool) {
	if x1 == x2 && y1 == y2 {
		return 0, 0, 0, 0, false
	}
	angle := math.Atan2(y2-y1, x2-x1)
	a1 := angle + spread
	a2 := angle - spread
	return x2 - length*math.Cos(a1), y2 - length*math.Sin(a1),
		x2 - length*math.Cos(a2), y2 - length*math.Sin(a2), true
}
