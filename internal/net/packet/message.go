package packet

import (
	"github.com/turfwar/server/internal/component"
	"github.com/turfwar/server/internal/world"
)

// Message types. Every message is a JSON object carrying "type".
const (
	// client → server
	TypeInput  = "input"
	TypeAction = "action"
	TypeStart  = "start"

	// server → client
	TypeWelcome  = "welcome"
	TypeSnapshot = "snapshot"
	TypeEnded    = "ended"
	TypeError    = "error"
)

// Roles reported in the welcome message.
const (
	RoleController = "controller"
	RoleObserver   = "observer"
)

// Base lets inbound messages be routed by type before full decoding.
type Base struct {
	Type string `json:"type"`
}

// InputMsg carries the held directional state and pointer.
type InputMsg struct {
	Type string `json:"type"`
	component.InputFrame
}

// ActionMsg carries one discrete action, e.g.
// {"type":"action","action":"purchase","key":"medkit"}.
type ActionMsg struct {
	Type string `json:"type"`
	component.Action
}

// StartMsg requests a new session.
type StartMsg struct {
	Type string `json:"type"`
	Mode string `json:"mode"`
}

type WelcomeMsg struct {
	Type    string `json:"type"`
	Session uint64 `json:"session"`
	Role    string `json:"role"`
}

type SnapshotMsg struct {
	Type string `json:"type"`
	world.Snapshot
}

type EndedMsg struct {
	Type string `json:"type"`
	Tick uint64 `json:"tick"`
}

type ErrorMsg struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
