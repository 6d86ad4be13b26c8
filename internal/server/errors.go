package server

import "errors"

// Server-specific errors
var (
	ErrServerAlreadyRunning = errors.New("server is already running")
	ErrMaxSessionsReached   = errors.New("maximum sessions reached")
	ErrInvalidMessage       = errors.New("invalid message")
	ErrRateLimited          = errors.New("message rate limit exceeded")
	ErrInvalidQuery         = errors.New("invalid query parameter")
)
