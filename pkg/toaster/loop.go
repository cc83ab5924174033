package toaster

import (
	"log/slog"
	"sync/atomic"
)

// loopQueueSize bounds the dispatch queue. Overflow means the host stopped
// draining; callbacks are dropped with a warning rather than blocking a
// timer goroutine.
const loopQueueSize = 256

// Loop is a serial dispatcher: a single goroutine draining a function queue.
// It stands in for a UI session's event loop when the host application does
// not have one — timer callbacks dispatched through it are serialized with
// every other dispatched mutation.
//
// Hosts embedded in a UI framework should pass their own dispatch function
// to the Toaster instead (see WithDispatcher).
type Loop struct {
	fns    chan func()
	done   chan struct{}
	closed atomic.Bool
	logger *slog.Logger
}

// NewLoop starts a loop goroutine and returns the handle.
func NewLoop() *Loop {
	l := &Loop{
		fns:    make(chan func(), loopQueueSize),
		done:   make(chan struct{}),
		logger: slog.Default(),
	}

	go l.run()
	return l
}

func (l *Loop) run() {
	for {
		select {
		case fn := <-l.fns:
			fn()
		case <-l.done:
			// Drain what was queued before shutdown.
			for {
				select {
				case fn := <-l.fns:
					fn()
				default:
					return
				}
			}
		}
	}
}

// Dispatch queues fn to run on the loop. Safe to call from any goroutine.
// After Close, callbacks are discarded.
func (l *Loop) Dispatch(fn func()) {
	if l.closed.Load() {
		return
	}
	select {
	case l.fns <- fn:
	case <-l.done:
	default:
		l.logger.Warn("toaster loop queue full, discarding callback")
	}
}

// Close stops the loop after draining queued callbacks. Safe to call more
// than once.
func (l *Loop) Close() {
	if l.closed.Swap(true) {
		return
	}
	close(l.done)
}
