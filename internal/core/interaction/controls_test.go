package interaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresetsAreValid(t *testing.T) {
	for _, p := range []Preset{WebPreset(), DesktopPreset()} {
		require.NoError(t, p.Validate(), p.Name)
	}
}

func TestPresetByName(t *testing.T) {
	p, err := PresetByName("Desktop")
	require.NoError(t, err)
	assert.Equal(t, PresetDesktop, p.Name)

	p, err = PresetByName("")
	require.NoError(t, err)
	assert.Equal(t, PresetWeb, p.Name)

	_, err = PresetByName("mobile")
	assert.ErrorIs(t, err, ErrUnknownPreset)
}

func TestWebPresetRanges(t *testing.T) {
	p := WebPreset()
	x, err := p.Control(ControlX)
	require.NoError(t, err)
	assert.Equal(t, Control{ID: ControlX, Label: "Test charge x", Min: -1.5, Max: 1.5, Step: 0.1}, x)

	q, err := p.Control(ControlQ2)
	require.NoError(t, err)
	assert.Equal(t, -5.0, q.Min)
	assert.Equal(t, 5.0, q.Max)
	assert.Equal(t, -1.0, q.Default)
}

func TestSnapGrid(t *testing.T) {
	c := Control{ID: ControlX, Min: -1.5, Max: 1.5, Step: 0.1}
	assert.Equal(t, 0.0, c.Snap(0.04))
	assert.Equal(t, 0.0, c.Snap(-0.04))
	assert.Equal(t, 0.7, c.Snap(0.68))
	assert.Equal(t, -1.5, c.Snap(-3))
	assert.Equal(t, 1.5, c.Snap(1.49))

	free := Control{ID: ControlY, Min: -1, Max: 1}
	assert.Equal(t, 0.123, free.Snap(0.123))
}

func TestFraction(t *testing.T) {
	c := Control{Min: -5, Max: 5}
	assert.Equal(t, 0.5, c.Fraction(0))
	assert.Equal(t, 0.0, c.Fraction(-9))
	assert.Equal(t, 1.0, c.Fraction(5))
	assert.Equal(t, 0.0, Control{Min: 1, Max: 1}.Fraction(1))
}

func TestPresetValidateCatchesMistakes(t *testing.T) {
	p := WebPreset()
	p.Controls[2].Default = 10
	assert.Error(t, p.Validate())

	p = WebPreset()
	p.Controls[0], p.Controls[1] = p.Controls[1], p.Controls[0]
	assert.Error(t, p.Validate())

	p = WebPreset()
	p.Controls[3].Min = 6
	assert.Error(t, p.Validate())
}

func TestStateValue(t *testing.T) {
	s := WebPreset().Defaults()
	for i, id := range []ControlID{ControlQ1, ControlQ2, ControlQ3, ControlQ4} {
		v, err := s.Value(id)
		require.NoError(t, err)
		assert.Equal(t, s.Charges[i], v)
	}
	_, err := s.Value("w")
	assert.ErrorIs(t, err, ErrUnknownControl)
}
