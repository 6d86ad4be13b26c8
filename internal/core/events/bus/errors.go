package bus

import "errors"

var (
	ErrEmptyEventType = errors.New("bus: event type is empty")
	ErrNilHandler     = errors.New("bus: handler is nil")
)
