package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/zeusync/coulomb/internal/core/field"
	"github.com/zeusync/coulomb/internal/core/interaction"
)

func TestASCII(t *testing.T) {
	assert.Equal(t, "F12 = k * q1 q2 / r^2 * u", ASCII(CoulombFormula.Equation))
	assert.Equal(t, "k ~ 9x10^9 N*m^2/C^2", ASCII(CoulombFormula.Constant))
	assert.Equal(t, "q1 (uC)", ASCII("q1 (µC)"))
	assert.Equal(t, "plain text", ASCII("plain text"))
	assert.Equal(t, "a?b", ASCII("a→b"))
}

// Every string the desktop window draws must have glyphs in its bitmap face.
func TestDesktopStringsHaveGlyphs(t *testing.T) {
	face := basicfont.Face7x13

	s := Build(interaction.Evaluate(interaction.DesktopPreset().Defaults()), DefaultOptions())
	texts := []string{s.Title, s.Formula.Title, s.Formula.Equation, s.Formula.Constant}
	for _, m := range s.Markers {
		texts = append(texts, m.Label)
	}
	for _, e := range s.Legend {
		texts = append(texts, e.Label)
	}
	for _, p := range []interaction.Preset{interaction.WebPreset(), interaction.DesktopPreset()} {
		for _, c := range p.Controls {
			texts = append(texts, c.Label)
		}
	}
	texts = append(texts, field.StyleResultant.Label())

	for _, text := range texts {
		for _, r := range ASCII(text) {
			_, _, _, _, ok := face.Glyph(fixed.Point26_6{}, r)
			assert.True(t, ok, "no glyph for %q in %q", r, ASCII(text))
		}
	}
}

func TestForceReadoutUsesDisplayUnits(t *testing.T) {
	assert.Equal(t, "|F| = 5.000e-06 (display units)", ForceReadout(mgl64.Vec2{3e-6, 4e-6}))
	assert.NotContains(t, ForceReadout(mgl64.Vec2{}), " N")
}
