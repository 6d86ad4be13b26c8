package interaction

import (
	"fmt"
	"math"
	"strings"
)

// ControlID names one of the six inputs of the visualization.
type ControlID string

const (
	ControlX  ControlID = "x"
	ControlY  ControlID = "y"
	ControlQ1 ControlID = "q1"
	ControlQ2 ControlID = "q2"
	ControlQ3 ControlID = "q3"
	ControlQ4 ControlID = "q4"
)

// ControlIDs lists the controls in panel order.
var ControlIDs = [6]ControlID{ControlX, ControlY, ControlQ1, ControlQ2, ControlQ3, ControlQ4}

// chargeIndex returns the source index for q1..q4 and false for x and y.
func (id ControlID) chargeIndex() (int, bool) {
	switch id {
	case ControlQ1:
		return 0, true
	case ControlQ2:
		return 1, true
	case ControlQ3:
		return 2, true
	case ControlQ4:
		return 3, true
	default:
		return 0, false
	}
}

// Control is the configuration of one slider.
type Control struct {
	ID      ControlID `json:"id" yaml:"id"`
	Label   string    `json:"label" yaml:"label"`
	Min     float64   `json:"min" yaml:"min"`
	Max     float64   `json:"max" yaml:"max"`
	Step    float64   `json:"step" yaml:"step"`
	Default float64   `json:"default" yaml:"default"`
}

// Snap moves v onto the slider grid Min + n·Step and clamps it to [Min, Max].
func (c Control) Snap(v float64) float64 {
	if c.Step > 0 {
		v = c.Min + math.Round((v-c.Min)/c.Step)*c.Step
		// drop the accumulated binary noise of n·Step
		v = math.Round(v*1e9) / 1e9
	}
	return math.Max(c.Min, math.Min(c.Max, v))
}

// Fraction is v's position along the track in [0, 1].
func (c Control) Fraction(v float64) float64 {
	if c.Max <= c.Min {
		return 0
	}
	return math.Max(0, math.Min(1, (v-c.Min)/(c.Max-c.Min)))
}

func (c Control) Validate() error {
	switch {
	case c.ID == "":
		return fmt.Errorf("control id is empty")
	case !(c.Min < c.Max):
		return fmt.Errorf("control %s: min %g must be below max %g", c.ID, c.Min, c.Max)
	case c.Step < 0:
		return fmt.Errorf("control %s: negative step %g", c.ID, c.Step)
	case c.Default < c.Min || c.Default > c.Max:
		return fmt.Errorf("control %s: default %g outside [%g, %g]", c.ID, c.Default, c.Min, c.Max)
	}
	return nil
}

// Preset is a complete slider configuration.
type Preset struct {
	Name     string     `json:"name" yaml:"name"`
	Controls [6]Control `json:"controls" yaml:"controls"`
}

const (
	PresetWeb     = "web"
	PresetDesktop = "desktop"
)

// WebPreset matches the browser page: a wider test range and ±5 µC charges.
func WebPreset() Preset {
	return Preset{
		Name: PresetWeb,
		Controls: [6]Control{
			{ID: ControlX, Label: "Test charge x", Min: -1.5, Max: 1.5, Step: 0.1, Default: 0},
			{ID: ControlY, Label: "Test charge y", Min: -1.5, Max: 1.5, Step: 0.1, Default: 0},
			{ID: ControlQ1, Label: "Charge q1 (µC)", Min: -5, Max: 5, Step: 0.1, Default: 1},
			{ID: ControlQ2, Label: "Charge q2 (µC)", Min: -5, Max: 5, Step: 0.1, Default: -1},
			{ID: ControlQ3, Label: "Charge q3 (µC)", Min: -5, Max: 5, Step: 0.1, Default: 1},
			{ID: ControlQ4, Label: "Charge q4 (µC)", Min: -5, Max: 5, Step: 0.1, Default: -1},
		},
	}
}

// DesktopPreset matches the windowed viewer: unit ranges, quarter steps, neutral start.
func DesktopPreset() Preset {
	return Preset{
		Name: PresetDesktop,
		Controls: [6]Control{
			{ID: ControlX, Label: "x", Min: -1, Max: 1, Step: 0.1, Default: 0},
			{ID: ControlY, Label: "y", Min: -1, Max: 1, Step: 0.1, Default: 0},
			{ID: ControlQ1, Label: "q1 (µC)", Min: -1, Max: 1, Step: 0.25, Default: 0},
			{ID: ControlQ2, Label: "q2 (µC)", Min: -1, Max: 1, Step: 0.25, Default: 0},
			{ID: ControlQ3, Label: "q3 (µC)", Min: -1, Max: 1, Step: 0.25, Default: 0},
			{ID: ControlQ4, Label: "q4 (µC)", Min: -1, Max: 1, Step: 0.25, Default: 0},
		},
	}
}

// PresetByName resolves "web" or "desktop".
func PresetByName(name string) (Preset, error) {
	switch strings.ToLower(name) {
	case PresetWeb, "":
		return WebPreset(), nil
	case PresetDesktop:
		return DesktopPreset(), nil
	default:
		return Preset{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
}

// Control returns the slider settings for id.
func (p Preset) Control(id ControlID) (Control, error) {
	for _, c := range p.Controls {
		if c.ID == id {
			return c, nil
		}
	}
	return Control{}, fmt.Errorf("%w: %q", ErrUnknownControl, id)
}

// Defaults builds the initial state from the control defaults.
func (p Preset) Defaults() State {
	var s State
	for _, c := range p.Controls {
		s = s.with(c.ID, c.Default)
	}
	return s
}

func (p Preset) Validate() error {
	seen := make(map[ControlID]bool, len(p.Controls))
	for i, c := range p.Controls {
		if err := c.Validate(); err != nil {
			return err
		}
		if c.ID != ControlIDs[i] {
			return fmt.Errorf("control %d is %q, want %q", i, c.ID, ControlIDs[i])
		}
		if seen[c.ID] {
			return fmt.Errorf("duplicate control %q", c.ID)
		}
		seen[c.ID] = true
	}
	return nil
}
