package toast

import "time"

// Builder accumulates toast configuration. Every setter returns the builder
// so calls chain; every unset field falls back to its documented default:
//
//	level:       LevelInfo
//	dismissable: true
//	expiry:      DefaultExpiry (2.5s)
//	progress:    true
//	position:    BottomLeft
//
// Building has no side effects. The toast only comes to life when the
// builder is passed to Toaster.Toast.
type Builder struct {
	message string

	level       Level
	dismissable bool
	expiry      time.Duration
	progress    bool
	position    Position
}

// New returns a builder for a toast with the supplied message and all
// defaults.
func New(message string) *Builder {
	return &Builder{
		message: message,

		level:       LevelInfo,
		dismissable: true,
		expiry:      DefaultExpiry,
		progress:    true,
		position:    BottomLeft,
	}
}

// WithLevel sets the severity level.
func (b *Builder) WithLevel(level Level) *Builder {
	b.level = level
	return b
}

// WithDismissable controls whether user-initiated dismissal is permitted.
func (b *Builder) WithDismissable(dismissable bool) *Builder {
	b.dismissable = dismissable
	return b
}

// WithExpiry sets the auto-expiry delay. Non-positive durations are
// equivalent to WithNoExpiry.
func (b *Builder) WithExpiry(d time.Duration) *Builder {
	if d < 0 {
		d = 0
	}
	b.expiry = d
	return b
}

// WithNoExpiry disables auto-expiry: the toast stays until dismissed or
// cleared.
func (b *Builder) WithNoExpiry() *Builder {
	b.expiry = 0
	return b
}

// WithProgress controls the countdown indicator shown while the toast waits
// to expire.
func (b *Builder) WithProgress(progress bool) *Builder {
	b.progress = progress
	return b
}

// WithPosition sets the screen region the toast is grouped into.
func (b *Builder) WithPosition(position Position) *Builder {
	b.position = position
	return b
}

// Build finalizes the configuration into a Toast with the supplied identity.
func (b *Builder) Build(id ID) Toast {
	return Toast{
		ID:      id,
		Message: b.message,

		Level:       b.level,
		Dismissable: b.dismissable,
		Expiry:      b.expiry,
		Progress:    b.progress,
		Position:    b.position,
	}
}
