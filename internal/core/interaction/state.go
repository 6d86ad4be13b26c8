package interaction

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/zeusync/coulomb/internal/core/field"
)

// State is everything the user controls: where the test charge sits and the
// magnitude of each source charge in µC.
type State struct {
	Position mgl64.Vec2                `json:"position"`
	Charges  [field.NumSources]float64 `json:"charges"`
}

// Value reads the control id from the state.
func (s State) Value(id ControlID) (float64, error) {
	switch id {
	case ControlX:
		return s.Position.X(), nil
	case ControlY:
		return s.Position.Y(), nil
	}
	if i, ok := id.chargeIndex(); ok {
		return s.Charges[i], nil
	}
	return 0, ErrUnknownControl
}

func (s State) with(id ControlID, v float64) State {
	switch id {
	case ControlX:
		s.Position[0] = v
	case ControlY:
		s.Position[1] = v
	default:
		if i, ok := id.chargeIndex(); ok {
			s.Charges[i] = v
		}
	}
	return s
}

// Frame is one recomputation: the state it was computed from, the forces and
// the style of each per-source arrow.
type Frame struct {
	Revision uint64                        `json:"revision"`
	State    State                         `json:"state"`
	Result   field.Result                  `json:"result"`
	Styles   [field.NumSources]field.Style `json:"styles"`
}

// Evaluate is the pure state-to-frame function every front-end renders from.
func Evaluate(s State) Frame {
	return Frame{
		State:  s,
		Result: field.Compute(s.Position, s.Charges),
		Styles: field.ClassifyAll(s.Charges),
	}
}
