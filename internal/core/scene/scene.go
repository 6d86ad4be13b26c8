// Package scene describes what a front-end draws for one frame, independent of
// any widget toolkit: plot bounds, source markers, force arrows, legend and the
// Coulomb's-law formula box.
package scene

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/zeusync/coulomb/internal/core/field"
	"github.com/zeusync/coulomb/internal/core/interaction"
)

// ArrowScale turns a force in display units into an arrow length in plot units.
const ArrowScale = 1e5

const (
	arrowWidth     = 0.005
	resultantWidth = 0.007
)

// Bounds is an axis-aligned plot rectangle.
type Bounds struct {
	Min mgl64.Vec2 `json:"min"`
	Max mgl64.Vec2 `json:"max"`
}

// PlotBounds are the fixed axes limits.
var PlotBounds = Bounds{Min: mgl64.Vec2{-2, -2}, Max: mgl64.Vec2{2, 2}}

func (b Bounds) Width() float64  { return b.Max.X() - b.Min.X() }
func (b Bounds) Height() float64 { return b.Max.Y() - b.Min.Y() }

func (b Bounds) Contains(p mgl64.Vec2) bool {
	return p.X() >= b.Min.X() && p.X() <= b.Max.X() && p.Y() >= b.Min.Y() && p.Y() <= b.Max.Y()
}

type Color struct {
	Name string `json:"name"`
	R    uint8  `json:"r"`
	G    uint8  `json:"g"`
	B    uint8  `json:"b"`
}

func (c Color) Hex() string { return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B) }

func (c Color) RGBA() color.RGBA { return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff} }

var (
	Blue  = Color{Name: "blue", R: 0x00, G: 0x00, B: 0xff}
	Red   = Color{Name: "red", R: 0xff, G: 0x00, B: 0x00}
	Green = Color{Name: "green", R: 0x00, G: 0x80, B: 0x00}
	Black = Color{Name: "black", R: 0x00, G: 0x00, B: 0x00}
)

// ColorFor returns the arrow color of a style.
func ColorFor(s field.Style) Color {
	switch s {
	case field.StyleRepulsive:
		return Blue
	case field.StyleAttractive:
		return Red
	case field.StyleResultant:
		return Green
	default:
		return Black
	}
}

// Marker is a fixed source charge.
type Marker struct {
	Label    string     `json:"label"`
	Position mgl64.Vec2 `json:"position"`
	LabelAt  mgl64.Vec2 `json:"label_at"`
	Charge   float64    `json:"charge"`
}

// Arrow starts at the test charge. The resultant is always the last arrow.
type Arrow struct {
	Label string      `json:"label"`
	Style field.Style `json:"style"`
	Color Color       `json:"color"`
	From  mgl64.Vec2  `json:"from"`
	To    mgl64.Vec2  `json:"to"`
	Force mgl64.Vec2  `json:"force"`
	Width float64     `json:"width"`
}

// Length is the drawn length in plot units.
func (a Arrow) Length() float64 { return a.To.Sub(a.From).Len() }

type LegendEntry struct {
	Style field.Style `json:"style"`
	Label string      `json:"label"`
	Color Color       `json:"color"`
}

type Formula struct {
	Title    string `json:"title"`
	Equation string `json:"equation"`
	Constant string `json:"constant"`
}

// CoulombFormula is the static formula box text.
var CoulombFormula = Formula{
	Title:    "Coulomb's law: electric force",
	Equation: "F12 = k · q1 q2 / r² · û",
	Constant: "k ≈ 9×10⁹ N·m²/C²",
}

type Scene struct {
	Revision uint64        `json:"revision"`
	Title    string        `json:"title"`
	Bounds   Bounds        `json:"bounds"`
	Grid     bool          `json:"grid"`
	Test     mgl64.Vec2    `json:"test"`
	Markers  []Marker      `json:"markers"`
	Arrows   []Arrow       `json:"arrows"`
	Legend   []LegendEntry `json:"legend"`
	Formula  *Formula      `json:"formula,omitempty"`
}

// ForceReadout formats a force magnitude. Forces carry the display scale, so
// the value is not in newtons.
func ForceReadout(f mgl64.Vec2) string {
	return fmt.Sprintf("|F| = %.3e (display units)", f.Len())
}

// Resultant returns the resultant arrow.
func (s Scene) Resultant() Arrow { return s.Arrows[len(s.Arrows)-1] }

type Options struct {
	Title       string  `json:"title" yaml:"title"`
	Grid        bool    `json:"grid" yaml:"grid"`
	ShowFormula bool    `json:"show_formula" yaml:"show_formula"`
	ArrowScale  float64 `json:"arrow_scale" yaml:"arrow_scale"`
}

func DefaultOptions() Options {
	return Options{
		Title:       "Electric force between point charges",
		Grid:        true,
		ShowFormula: true,
		ArrowScale:  ArrowScale,
	}
}

// labelOffset places a marker label up and right of its dot.
var labelOffset = mgl64.Vec2{0.1, 0.1}

// Build lays out a frame.
func Build(f interaction.Frame, opts Options) Scene {
	scale := opts.ArrowScale
	if scale <= 0 {
		scale = ArrowScale
	}
	test := f.State.Position

	s := Scene{
		Revision: f.Revision,
		Title:    opts.Title,
		Bounds:   PlotBounds,
		Grid:     opts.Grid,
		Test:     test,
		Markers:  make([]Marker, 0, field.NumSources),
		Arrows:   make([]Arrow, 0, field.NumSources+1),
	}

	for i, src := range field.Sources {
		s.Markers = append(s.Markers, Marker{
			Label:    src.Label,
			Position: src.Position,
			LabelAt:  src.Position.Add(labelOffset),
			Charge:   f.State.Charges[i],
		})

		force := f.Result.Vectors[i]
		s.Arrows = append(s.Arrows, Arrow{
			Label: src.Label,
			Style: f.Styles[i],
			Color: ColorFor(f.Styles[i]),
			From:  test,
			To:    test.Add(force.Mul(scale)),
			Force: force,
			Width: arrowWidth,
		})
	}

	s.Arrows = append(s.Arrows, Arrow{
		Label: "F",
		Style: field.StyleResultant,
		Color: ColorFor(field.StyleResultant),
		From:  test,
		To:    test.Add(f.Result.Resultant.Mul(scale)),
		Force: f.Result.Resultant,
		Width: resultantWidth,
	})

	for _, st := range []field.Style{field.StyleRepulsive, field.StyleAttractive, field.StyleResultant} {
		s.Legend = append(s.Legend, LegendEntry{Style: st, Label: st.Label(), Color: ColorFor(st)})
	}

	if opts.ShowFormula {
		formula := CoulombFormula
		s.Formula = &formula
	}
	return s
}
