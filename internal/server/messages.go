package server

import (
	"github.com/zeusync/coulomb/internal/core/interaction"
	"github.com/zeusync/coulomb/internal/core/scene"
)

// Client → server message types.
const (
	MessageSet     = "set"
	MessageNudge   = "nudge"
	MessageState   = "state"
	MessageReset   = "reset"
	MessageRefresh = "refresh"
)

// Server → client message types.
const (
	MessageFrame = "frame"
	MessageError = "error"
)

// ClientMessage is a control change sent by the page.
type ClientMessage struct {
	Type    string                `json:"type"`
	Control interaction.ControlID `json:"control,omitempty"`
	Value   *float64              `json:"value,omitempty"`
	Steps   int                   `json:"steps,omitempty"`
	State   *interaction.State    `json:"state,omitempty"`
}

// ServerMessage is either a frame to draw or an error for the last message.
type ServerMessage struct {
	Type    string             `json:"type"`
	Session string             `json:"session,omitempty"`
	Frame   *interaction.Frame `json:"frame,omitempty"`
	Scene   *scene.Scene       `json:"scene,omitempty"`
	Error   string             `json:"error,omitempty"`
}

// FieldResponse is the body of GET /api/field.
type FieldResponse struct {
	Frame interaction.Frame `json:"frame"`
	Scene scene.Scene       `json:"scene"`
}

// ControlsResponse is the body of GET /api/controls.
type ControlsResponse struct {
	Preset   string                `json:"preset"`
	Controls []interaction.Control `json:"controls"`
	Render   scene.Options         `json:"render"`
}
