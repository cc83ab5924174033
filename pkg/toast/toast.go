package toast

import (
	"time"

	"github.com/google/uuid"
)

// DefaultExpiry is the auto-expiry applied by the builder when the caller
// does not choose one.
const DefaultExpiry = 2500 * time.Millisecond

// ID identifies a toast for its lifetime. IDs are process-unique, never
// reused, and carry no meaning beyond equality.
type ID string

// NewID generates a fresh toast identity.
func NewID() ID {
	return ID(uuid.NewString())
}

// Level is the severity of a toast, used by presentation layers to pick
// styling.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarn    Level = "warn"
	LevelError   Level = "error"
)

// Position is the screen region a toast is grouped into. Toasts sharing a
// position render in insertion order.
type Position string

const (
	TopLeft      Position = "top-left"
	TopRight     Position = "top-right"
	TopCenter    Position = "top-center"
	BottomLeft   Position = "bottom-left"
	BottomRight  Position = "bottom-right"
	BottomCenter Position = "bottom-center"
)

// Positions lists every position in rendering order. Presentation layers
// iterate this to lay out their region containers.
var Positions = []Position{
	TopLeft, TopCenter, TopRight,
	BottomLeft, BottomCenter, BottomRight,
}

// Toast is one notification. The identity and message are fixed at creation;
// the remaining fields describe how the presentation layer should treat it.
type Toast struct {
	ID      ID     `json:"id"`
	Message string `json:"message"`

	Level Level `json:"level"`

	// Dismissable permits user-initiated dismissal. Non-dismissable toasts
	// are removed only by expiry or a clear-all.
	Dismissable bool `json:"dismissable"`

	// Expiry is the auto-removal delay. Zero means the toast never expires
	// on its own.
	Expiry time.Duration `json:"expiry"`

	// Progress asks the presentation layer for a countdown indicator.
	// Meaningless when Expiry is zero.
	Progress bool `json:"progress"`

	Position Position `json:"position"`
}

// Expires reports whether the toast is subject to auto-expiry.
func (t Toast) Expires() bool {
	return t.Expiry > 0
}
