package interaction

import "errors"

var (
	ErrUnknownControl = errors.New("unknown control")
	ErrInvalidValue   = errors.New("control value must be finite")
	ErrUnknownPreset  = errors.New("unknown preset")
	ErrRenderFailed   = errors.New("frame renderer failed")
)
