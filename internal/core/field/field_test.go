package field

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-12

func sumVectors(vs [NumSources]mgl64.Vec2) mgl64.Vec2 {
	var s mgl64.Vec2
	for _, v := range vs {
		s = s.Add(v)
	}
	return s
}

func TestSuperposition(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		test := mgl64.Vec2{rng.Float64()*3 - 1.5, rng.Float64()*3 - 1.5}
		var charges [NumSources]float64
		for j := range charges {
			charges[j] = rng.Float64()*10 - 5
		}

		res := Compute(test, charges)
		sum := sumVectors(res.Vectors)
		assert.InDelta(t, sum.X(), res.Resultant.X(), tol)
		assert.InDelta(t, sum.Y(), res.Resultant.Y(), tol)
	}
}

func TestCoincidentSourceContributesNothing(t *testing.T) {
	for i, src := range Sources {
		charges := [NumSources]float64{5, -5, 5, -5}
		res := Compute(src.Position, charges)

		assert.Equal(t, mgl64.Vec2{}, res.Vectors[i], "source %s", src.Label)
		for _, v := range res.Vectors {
			require.False(t, math.IsNaN(v.X()) || math.IsNaN(v.Y()))
			require.False(t, math.IsInf(v.X(), 0) || math.IsInf(v.Y(), 0))
		}
		require.False(t, math.IsNaN(res.Resultant.Len()))
	}
}

func TestWithinToleranceIsCoincident(t *testing.T) {
	near := Sources[2].Position.Add(mgl64.Vec2{CoincidenceTolerance / 2, 0})
	assert.Equal(t, mgl64.Vec2{}, Force(near, Sources[2].Position, 3))

	outside := Sources[2].Position.Add(mgl64.Vec2{CoincidenceTolerance * 2, 0})
	assert.NotEqual(t, mgl64.Vec2{}, Force(outside, Sources[2].Position, 3))
}

func TestSignDeterminesDirection(t *testing.T) {
	src := Sources[0].Position
	test := src.Add(mgl64.Vec2{0.5, 0})

	repel := Force(test, src, 1)
	assert.Greater(t, repel.X(), 0.0)
	assert.InDelta(t, 0, repel.Y(), tol)

	attract := Force(test, src, -1)
	assert.Less(t, attract.X(), 0.0)
	assert.InDelta(t, 0, attract.Y(), tol)
}

func TestInverseSquare(t *testing.T) {
	charges := [NumSources]float64{2, 0, 0, 0}
	src := Sources[0].Position

	near := Compute(src.Add(mgl64.Vec2{0.4, 0.3}), charges)
	far := Compute(src.Add(mgl64.Vec2{0.8, 0.6}), charges)

	ratio := near.Vectors[0].Len() / far.Vectors[0].Len()
	assert.InDelta(t, 4.0, ratio, 1e-9)
}

func TestZeroChargesGiveZeroForces(t *testing.T) {
	res := Compute(mgl64.Vec2{0.3, -0.7}, [NumSources]float64{})
	for _, v := range res.Vectors {
		assert.Equal(t, mgl64.Vec2{}, v)
	}
	assert.Equal(t, mgl64.Vec2{}, res.Resultant)
}

func TestAlternatingChargesAtOrigin(t *testing.T) {
	charges := [NumSources]float64{1, -1, 1, -1}
	res := Compute(mgl64.Vec2{0, 0}, charges)

	// every source sits at distance √2; k·1e-6·1e-9 / (√2)³
	c := K * MicroCoulomb * DisplayScale / math.Pow(math.Sqrt2, 3)
	want := [NumSources]mgl64.Vec2{
		{c, c},   // q1 +1 at (-1,-1): pushed towards (+,+)
		{c, -c},  // q2 -1 at (1,-1): pulled towards (+,-)
		{-c, -c}, // q3 +1 at (1,1): pushed towards (-,-)
		{-c, c},  // q4 -1 at (-1,1): pulled towards (-,+)
	}
	for i := range want {
		assert.InDelta(t, want[i].X(), res.Vectors[i].X(), tol, "q%d x", i+1)
		assert.InDelta(t, want[i].Y(), res.Vectors[i].Y(), tol, "q%d y", i+1)
	}
	assert.InDelta(t, 0, res.Resultant.X(), tol)
	assert.InDelta(t, 0, res.Resultant.Y(), tol)
}

func TestClassify(t *testing.T) {
	assert.Equal(t, StyleRepulsive, Classify(2.5))
	assert.Equal(t, StyleAttractive, Classify(0))
	assert.Equal(t, StyleRepulsive, Classify(1e-12))
	assert.Equal(t, StyleAttractive, Classify(-0.25))

	styles := ClassifyAll([NumSources]float64{1, -1, 0, -5})
	assert.Equal(t, [NumSources]Style{StyleRepulsive, StyleAttractive, StyleAttractive, StyleAttractive}, styles)
}

func TestStyleText(t *testing.T) {
	for _, s := range []Style{StyleRepulsive, StyleAttractive, StyleResultant} {
		b, err := s.MarshalText()
		require.NoError(t, err)

		var back Style
		require.NoError(t, back.UnmarshalText(b))
		assert.Equal(t, s, back)
		assert.NotEmpty(t, s.Label())
	}
	assert.Equal(t, "blue", StyleRepulsive.Color())
	assert.Equal(t, "red", StyleAttractive.Color())
	assert.Equal(t, "green", StyleResultant.Color())

	var s Style
	assert.Error(t, s.UnmarshalText([]byte("neutral")))
}
