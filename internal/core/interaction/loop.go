package interaction

import (
	"fmt"
	"math"

	"github.com/zeusync/coulomb/internal/core/events/bus"
	"github.com/zeusync/coulomb/internal/core/observability/log"
)

// EventFrameUpdated is published with a Frame payload after every recomputation.
const EventFrameUpdated = "interaction.frame_updated"

// Loop owns the interaction state of one viewer. Every mutation recomputes the
// field synchronously and publishes the new frame before returning, so a
// renderer subscribed to the bus has drawn it by the time the call ends.
//
// A Loop is not safe for concurrent use; front-ends drive it from their single
// event goroutine.
type Loop struct {
	preset Preset
	state  State
	frame  Frame

	bus    bus.EventBus
	source string
	logger log.Log
}

// New builds a loop at the preset defaults. b may be nil when nobody renders.
func New(preset Preset, b bus.EventBus, logger log.Log) *Loop {
	if logger == nil {
		logger = log.Nop()
	}
	l := &Loop{
		preset: preset,
		bus:    b,
		source: "interaction." + preset.Name,
		logger: logger.With(log.String("component", "interaction"), log.String("preset", preset.Name)),
	}
	l.state = preset.Defaults()
	l.frame = Evaluate(l.state)
	return l
}

func (l *Loop) Preset() Preset { return l.preset }
func (l *Loop) State() State   { return l.state }
func (l *Loop) Frame() Frame   { return l.frame }

// Controls lists the slider specs in panel order.
func (l *Loop) Controls() [6]Control { return l.preset.Controls }

// Refresh republishes the current state, e.g. after a renderer subscribed.
func (l *Loop) Refresh() (Frame, error) {
	return l.update(l.state)
}

// Set moves one control. The value is snapped to the control's step grid and
// clamped to its range the way a slider widget would.
func (l *Loop) Set(id ControlID, v float64) (Frame, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return l.frame, fmt.Errorf("%w: %s=%v", ErrInvalidValue, id, v)
	}
	c, err := l.preset.Control(id)
	if err != nil {
		return l.frame, err
	}
	return l.update(l.state.with(id, c.Snap(v)))
}

// Nudge moves a control by whole steps, as arrow keys do.
func (l *Loop) Nudge(id ControlID, steps int) (Frame, error) {
	c, err := l.preset.Control(id)
	if err != nil {
		return l.frame, err
	}
	cur, err := l.state.Value(id)
	if err != nil {
		return l.frame, err
	}
	return l.update(l.state.with(id, c.Snap(cur+float64(steps)*c.Step)))
}

// Apply replaces the whole state; each value is snapped like Set.
func (l *Loop) Apply(s State) (Frame, error) {
	next := l.state
	for _, c := range l.preset.Controls {
		v, _ := s.Value(c.ID)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return l.frame, fmt.Errorf("%w: %s=%v", ErrInvalidValue, c.ID, v)
		}
		next = next.with(c.ID, c.Snap(v))
	}
	return l.update(next)
}

// Reset returns every control to its default.
func (l *Loop) Reset() (Frame, error) {
	return l.update(l.preset.Defaults())
}

func (l *Loop) update(s State) (Frame, error) {
	frame := Evaluate(s)
	frame.Revision = l.frame.Revision + 1
	l.state = s
	l.frame = frame

	l.logger.Debug("frame computed",
		log.Uint64("revision", frame.Revision),
		log.Float64("x", s.Position.X()),
		log.Float64("y", s.Position.Y()),
		log.Float64("fx", frame.Result.Resultant.X()),
		log.Float64("fy", frame.Result.Resultant.Y()))

	if l.bus == nil {
		return frame, nil
	}
	if err := l.bus.Publish(bus.NewEvent(EventFrameUpdated, l.source, frame)); err != nil {
		l.logger.Warn("frame renderer failed", log.Uint64("revision", frame.Revision), log.Error(err))
		return frame, fmt.Errorf("%w: %w", ErrRenderFailed, err)
	}
	return frame, nil
}

// FrameHandler adapts a typed callback to a bus handler.
func FrameHandler(fn func(Frame) error) bus.EventHandler {
	return func(e bus.Event) error {
		frame, ok := e.Data.(Frame)
		if !ok {
			return fmt.Errorf("event %s carries %T, want Frame", e.Type, e.Data)
		}
		return fn(frame)
	}
}

// Subscribe registers fn for every frame the loop publishes on b.
func Subscribe(b bus.EventBus, fn func(Frame) error) (bus.Subscription, error) {
	return b.Subscribe(EventFrameUpdated, FrameHandler(fn))
}
