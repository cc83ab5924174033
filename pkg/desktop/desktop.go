// Package desktop mirrors the toast store to the freedesktop notification
// daemon over D-Bus. Every toast inserted into the store raises a desktop
// notification; removal closes it again. The mirror is one-way: closing a
// notification from the desktop shell does not dismiss the toast.
package desktop

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/godbus/dbus/v5"

	"github.com/toastline-dev/toastline/pkg/reactive"
	"github.com/toastline-dev/toastline/pkg/toast"
	"github.com/toastline-dev/toastline/pkg/toaster"
)

const (
	notifyInterface = "org.freedesktop.Notifications"
	notifyPath      = "/org/freedesktop/Notifications"
)

// Urgency levels from the notification spec.
const (
	urgencyLow      byte = 0
	urgencyNormal   byte = 1
	urgencyCritical byte = 2
)

// notifier is the slice of the notification daemon the mirror needs.
type notifier interface {
	Notify(summary, body string, urgency byte, expireMs int32) (uint32, error)
	CloseNotification(id uint32) error
}

// dbusNotifier talks to the real daemon through a bus object.
type dbusNotifier struct {
	appName string
	obj     dbus.BusObject
}

func (d *dbusNotifier) Notify(summary, body string, urgency byte, expireMs int32) (uint32, error) {
	hints := map[string]dbus.Variant{
		"urgency": dbus.MakeVariant(urgency),
	}

	call := d.obj.Call(notifyInterface+".Notify", 0,
		d.appName, uint32(0), "", summary, body, []string{}, hints, expireMs)
	if call.Err != nil {
		return 0, fmt.Errorf("desktop: notify: %w", call.Err)
	}

	var id uint32
	if err := call.Store(&id); err != nil {
		return 0, fmt.Errorf("desktop: notify reply: %w", err)
	}
	return id, nil
}

func (d *dbusNotifier) CloseNotification(id uint32) error {
	call := d.obj.Call(notifyInterface+".CloseNotification", 0, id)
	if call.Err != nil {
		return fmt.Errorf("desktop: close notification: %w", call.Err)
	}
	return nil
}

// Mirror subscribes to the store and keeps desktop notifications in sync
// with it.
type Mirror struct {
	toaster *toaster.Toaster
	daemon  notifier
	logger  *slog.Logger

	conn  *dbus.Conn
	owner *reactive.Owner

	mu  sync.Mutex
	ids map[toast.ID]uint32
}

// Option configures a Mirror.
type Option func(*Mirror)

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(m *Mirror) {
		m.logger = logger
	}
}

// New connects to the session bus and starts mirroring immediately.
func New(t *toaster.Toaster, appName string, opts ...Option) (*Mirror, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("desktop: session bus: %w", err)
	}

	m := newMirror(t, &dbusNotifier{
		appName: appName,
		obj:     conn.Object(notifyInterface, notifyPath),
	}, opts...)
	m.conn = conn

	m.start()
	return m, nil
}

func newMirror(t *toaster.Toaster, daemon notifier, opts ...Option) *Mirror {
	m := &Mirror{
		toaster: t,
		daemon:  daemon,
		logger:  slog.Default(),
		ids:     make(map[toast.ID]uint32),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// start registers the store-watching effect on the mirror's own owner.
func (m *Mirror) start() {
	m.owner = reactive.NewOwner(nil)
	reactive.WithOwner(m.owner, func() {
		reactive.NewEffect(func() reactive.Cleanup {
			// Tracked reads subscribe the effect to every queue.
			for _, pos := range toast.Positions {
				m.toaster.Store().Queue(pos).Get()
			}
			m.sync(m.toaster.Store().All())
			return nil
		})
	})
}

// sync diffs the store against the notifications currently on screen.
func (m *Mirror) sync(toasts []toast.Toast) {
	m.mu.Lock()
	defer m.mu.Unlock()

	live := make(map[toast.ID]struct{}, len(toasts))
	for _, t := range toasts {
		live[t.ID] = struct{}{}
		if _, shown := m.ids[t.ID]; shown {
			continue
		}

		id, err := m.daemon.Notify(summary(t.Level), t.Message, Urgency(t.Level), expireMs(t))
		if err != nil {
			m.logger.Warn("desktop notification failed", "error", err)
			continue
		}
		m.ids[t.ID] = id
	}

	for tid, nid := range m.ids {
		if _, ok := live[tid]; ok {
			continue
		}
		if err := m.daemon.CloseNotification(nid); err != nil {
			m.logger.Debug("desktop notification close failed", "error", err)
		}
		delete(m.ids, tid)
	}
}

// Close stops mirroring and closes every notification the mirror raised.
func (m *Mirror) Close() {
	if m.owner != nil {
		m.owner.Dispose()
	}

	m.mu.Lock()
	for tid, nid := range m.ids {
		m.daemon.CloseNotification(nid)
		delete(m.ids, tid)
	}
	m.mu.Unlock()

	if m.conn != nil {
		m.conn.Close()
	}
}

// Urgency maps a toast level onto the notification spec's urgency hint.
func Urgency(level toast.Level) byte {
	switch level {
	case toast.LevelError:
		return urgencyCritical
	case toast.LevelWarn:
		return urgencyNormal
	default:
		return urgencyLow
	}
}

func summary(level toast.Level) string {
	switch level {
	case toast.LevelSuccess:
		return "Success"
	case toast.LevelWarn:
		return "Warning"
	case toast.LevelError:
		return "Error"
	default:
		return "Info"
	}
}

// expireMs converts a toast expiry to the daemon's timeout field, where zero
// means the notification never expires on its own.
func expireMs(t toast.Toast) int32 {
	if !t.Expires() {
		return 0
	}
	return int32(t.Expiry.Milliseconds())
}
