// Package field computes the Coulomb forces four fixed source charges exert on
// a movable test charge.
package field

import (
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// K is Coulomb's constant in N·m²/C².
	K = 9e9
	// MicroCoulomb converts a magnitude in µC to coulombs.
	MicroCoulomb = 1e-6
	// DisplayScale keeps arrow lengths readable on a [-2,2] plot. It is not physical.
	DisplayScale = 1e-9
	// CoincidenceTolerance is the distance under which a source contributes no force.
	CoincidenceTolerance = 1e-5
)

// NumSources is the number of fixed source charges.
const NumSources = 4

// Source is a fixed source charge location.
type Source struct {
	Label    string     `json:"label"`
	Position mgl64.Vec2 `json:"position"`
}

// Sources are the four fixed charge positions, in q1..q4 order.
var Sources = [NumSources]Source{
	{Label: "q1", Position: mgl64.Vec2{-1, -1}},
	{Label: "q2", Position: mgl64.Vec2{1, -1}},
	{Label: "q3", Position: mgl64.Vec2{1, 1}},
	{Label: "q4", Position: mgl64.Vec2{-1, 1}},
}

// Result holds the per-source force vectors and their sum.
type Result struct {
	Vectors   [NumSources]mgl64.Vec2 `json:"vectors"`
	Resultant mgl64.Vec2             `json:"resultant"`
}

// Compute evaluates the force on a test charge at test from sources carrying
// charges (µC, in q1..q4 order). It never fails: a test point within
// CoincidenceTolerance of a source gets a zero contribution from that source.
func Compute(test mgl64.Vec2, charges [NumSources]float64) Result {
	var res Result
	for i, src := range Sources {
		f := Force(test, src.Position, charges[i])
		res.Vectors[i] = f
		res.Resultant = res.Resultant.Add(f)
	}
	return res
}

// Force is the contribution of a single charge q (µC) at source on a test
// charge at test: k·q·s/r³ · (test − source).
func Force(test, source mgl64.Vec2, q float64) mgl64.Vec2 {
	d := test.Sub(source)
	r := d.Len()
	if r < CoincidenceTolerance {
		return mgl64.Vec2{}
	}
	coulombs := q * MicroCoulomb
	return d.Mul(K * coulombs * DisplayScale / (r * r * r))
}
