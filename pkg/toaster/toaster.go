package toaster

import (
	"log/slog"
	"sync/atomic"

	"github.com/toastline-dev/toastline/pkg/toast"
)

// Recorder receives lifecycle events for instrumentation. The zero
// implementation does nothing; pkg/server provides a Prometheus one.
type Recorder interface {
	Shown(level toast.Level)
	Dismissed()
	Expired()
	Cleared(n int)
}

type nopRecorder struct{}

func (nopRecorder) Shown(toast.Level) {}
func (nopRecorder) Dismissed()        {}
func (nopRecorder) Expired()          {}
func (nopRecorder) Cleared(int)       {}

// Toaster is the public handle and the only entry point callers use. It owns
// the store and the expiry scheduler, and mediates every mutation between
// them.
//
// Construct one per application with New, pass it by reference to whatever
// raises notifications, and Close it at shutdown to cancel pending timers.
type Toaster struct {
	store *Store
	sched *Scheduler

	dispatch func(func())
	logger   *slog.Logger
	metrics  Recorder

	closed atomic.Bool
}

// Option configures a Toaster.
type Option func(*Toaster)

// WithDispatcher routes expiry-timer callbacks through the host's event
// loop. The default runs them inline on the timer goroutine, which is safe
// (the store locks internally) but does not serialize them with the host UI.
func WithDispatcher(dispatch func(func())) Option {
	return func(t *Toaster) {
		t.dispatch = dispatch
	}
}

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(t *Toaster) {
		t.logger = logger
	}
}

// WithMetrics sets the lifecycle metrics recorder.
func WithMetrics(rec Recorder) Option {
	return func(t *Toaster) {
		t.metrics = rec
	}
}

// New creates a Toaster with an empty store.
func New(opts ...Option) *Toaster {
	t := &Toaster{
		store:    NewStore(),
		dispatch: func(fn func()) { fn() },
		logger:   slog.Default(),
		metrics:  nopRecorder{},
	}

	for _, opt := range opts {
		opt(t)
	}

	t.sched = NewScheduler(t.expire, t.dispatch)
	return t
}

// Store returns the underlying store for presentation layers to subscribe to.
func (t *Toaster) Store() *Store {
	return t.store
}

// Toast builds the toast, assigns it a fresh identity, inserts it into the
// store, and registers its expiry timer if it has one. The returned identity
// enables programmatic dismissal.
func (t *Toaster) Toast(b *toast.Builder) toast.ID {
	if t.closed.Load() {
		t.logger.Warn("toast on closed toaster dropped")
		return ""
	}

	id := toast.NewID()
	tst := b.Build(id)

	t.store.Insert(tst)
	if tst.Expires() {
		t.sched.Schedule(id, tst.Expiry)
	}

	t.metrics.Shown(tst.Level)
	t.logger.Debug("toast shown",
		"id", string(id),
		"level", string(tst.Level),
		"position", string(tst.Position),
		"expiry", tst.Expiry)
	return id
}

// Info shows an info toast with default parameters.
func (t *Toaster) Info(message string) toast.ID {
	return t.Toast(toast.New(message).WithLevel(toast.LevelInfo))
}

// Success shows a success toast with default parameters.
func (t *Toaster) Success(message string) toast.ID {
	return t.Toast(toast.New(message).WithLevel(toast.LevelSuccess))
}

// Warn shows a warn toast with default parameters.
func (t *Toaster) Warn(message string) toast.ID {
	return t.Toast(toast.New(message).WithLevel(toast.LevelWarn))
}

// Error shows an error toast with default parameters.
func (t *Toaster) Error(message string) toast.ID {
	return t.Toast(toast.New(message).WithLevel(toast.LevelError))
}

// Dismiss removes the toast if it is dismissable, cancelling its pending
// expiry timer. Dismissing an absent or non-dismissable toast is a silent
// no-op: dismissal is a UI affordance, not a security boundary, and callers
// cannot distinguish "already gone" from "never existed".
func (t *Toaster) Dismiss(id toast.ID) {
	tst, ok := t.store.Get(id)
	if !ok {
		return
	}
	if !tst.Dismissable {
		t.logger.Debug("dismiss refused, toast not dismissable", "id", string(id))
		return
	}

	// Cancel before removing so a concurrently firing timer finds the
	// toast already gone and no-ops.
	t.sched.Cancel(id)
	if t.store.Remove(id) {
		t.metrics.Dismissed()
		t.logger.Debug("toast dismissed", "id", string(id))
	}
}

// Clear removes every toast regardless of dismissable or expiry state.
// Pending timers are cancelled first so none fires afterward.
func (t *Toaster) Clear() {
	t.sched.CancelAll()
	if n := t.store.Clear(); n > 0 {
		t.metrics.Cleared(n)
		t.logger.Debug("toasts cleared", "count", n)
	}
}

// Close tears the Toaster down: all pending timers are cancelled and the
// store is emptied. Further Toast calls are dropped. Safe to call more than
// once.
func (t *Toaster) Close() {
	if t.closed.Swap(true) {
		return
	}
	t.sched.CancelAll()
	t.store.Clear()
	t.logger.Debug("toaster closed")
}

// expire is the scheduler's removal callback. The toast may have been
// dismissed or cleared while the dispatch was in flight; Remove absorbs
// that.
func (t *Toaster) expire(id toast.ID) {
	if t.store.Remove(id) {
		t.metrics.Expired()
		t.logger.Debug("toast expired", "id", string(id))
	}
}
