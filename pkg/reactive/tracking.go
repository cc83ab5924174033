package reactive

import (
	"runtime"
	"sync"
)

// trackingContext holds the reactive state of one goroutine: the owner that
// adopts newly created primitives, the listener that reads subscribe, and the
// batch bookkeeping.
type trackingContext struct {
	owner    *Owner
	listener Listener

	batchDepth int
	batched    []Listener
}

// trackingContexts maps goroutine ID to its tracking context.
var trackingContexts sync.Map

// goroutineID parses the current goroutine's ID from its stack header.
// An implementation detail, never exposed.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)

	// Stack dumps begin with "goroutine <id> ".
	var id uint64
	for i := len("goroutine "); i < n; i++ {
		if buf[i] == ' ' {
			break
		}
		id = id*10 + uint64(buf[i]-'0')
	}
	return id
}

func tracking() *trackingContext {
	gid := goroutineID()
	if ctx, ok := trackingContexts.Load(gid); ok {
		return ctx.(*trackingContext)
	}
	ctx := &trackingContext{}
	trackingContexts.Store(gid, ctx)
	return ctx
}

func currentListener() Listener {
	return tracking().listener
}

func setListener(l Listener) Listener {
	ctx := tracking()
	old := ctx.listener
	ctx.listener = l
	return old
}

func currentOwner() *Owner {
	return tracking().owner
}

func setOwner(o *Owner) *Owner {
	ctx := tracking()
	old := ctx.owner
	ctx.owner = o
	return old
}

func batchDepth() int {
	return tracking().batchDepth
}

func queueBatched(l Listener) {
	ctx := tracking()
	ctx.batched = append(ctx.batched, l)
}

// WithOwner runs fn with the given owner adopting any primitives created
// inside. Used when work on another goroutine must create effects that
// belong to a particular scope.
func WithOwner(owner *Owner, fn func()) {
	old := setOwner(owner)
	defer setOwner(old)
	fn()
}

// WithListener runs fn with the given listener receiving subscriptions for
// every signal read inside.
func WithListener(l Listener, fn func()) {
	old := setListener(l)
	defer setListener(old)
	fn()
}

// Untracked runs fn without tracking signal reads as dependencies. For a
// single read, Signal.Peek is clearer.
func Untracked(fn func()) {
	old := setListener(nil)
	defer setListener(old)
	fn()
}

// Batch groups signal updates: listeners dirtied inside fn are collected,
// deduplicated by ID, and notified once when the outermost batch returns.
func Batch(fn func()) {
	ctx := tracking()
	ctx.batchDepth++

	defer func() {
		ctx.batchDepth--
		if ctx.batchDepth == 0 {
			flushBatched(ctx)
		}
	}()

	fn()
}

func flushBatched(ctx *trackingContext) {
	batched := ctx.batched
	ctx.batched = nil
	if len(batched) == 0 {
		return
	}

	seen := make(map[uint64]bool, len(batched))
	for _, l := range batched {
		if seen[l.ID()] {
			continue
		}
		seen[l.ID()] = true
		l.MarkDirty()
	}
}
