package reactive

import (
	"sync"
	"sync/atomic"
)

// Owner is a scope that owns reactive primitives. Disposing an owner
// disposes its child owners, its effects, and runs its cleanup functions,
// each in reverse creation order.
//
// Owners form a tree mirroring the host application's component or
// subsystem structure. The root owner typically lives for the whole
// application and is disposed at shutdown.
type Owner struct {
	id     uint64
	parent *Owner

	mu       sync.Mutex
	children []*Owner
	effects  []*Effect
	cleanups []func()

	// values holds context entries resolvable by descendants.
	valuesMu sync.RWMutex
	values   map[any]any

	disposed atomic.Bool
}

// NewOwner creates an owner under parent. A nil parent creates a root owner.
func NewOwner(parent *Owner) *Owner {
	o := &Owner{
		id:     nextID(),
		parent: parent,
	}

	if parent != nil {
		parent.mu.Lock()
		parent.children = append(parent.children, o)
		parent.mu.Unlock()
	}

	return o
}

// ID returns the owner's unique identifier.
func (o *Owner) ID() uint64 {
	return o.id
}

// Parent returns the parent owner, or nil for a root owner.
func (o *Owner) Parent() *Owner {
	return o.parent
}

// IsDisposed reports whether Dispose has been called.
func (o *Owner) IsDisposed() bool {
	return o.disposed.Load()
}

func (o *Owner) registerEffect(e *Effect) {
	if o.disposed.Load() {
		return
	}
	o.mu.Lock()
	o.effects = append(o.effects, e)
	o.mu.Unlock()
}

// OnCleanup registers fn to run when this owner is disposed. If the owner is
// already disposed, fn runs immediately.
func (o *Owner) OnCleanup(fn func()) {
	if o.disposed.Load() {
		fn()
		return
	}
	o.mu.Lock()
	o.cleanups = append(o.cleanups, fn)
	o.mu.Unlock()
}

// SetValue stores a context value on this owner.
func (o *Owner) SetValue(key, value any) {
	o.valuesMu.Lock()
	defer o.valuesMu.Unlock()

	if o.values == nil {
		o.values = make(map[any]any)
	}
	o.values[key] = value
}

// Value resolves a context value from this owner or the nearest ancestor
// holding the key. Returns nil when no owner in the chain has it.
func (o *Owner) Value(key any) any {
	o.valuesMu.RLock()
	if o.values != nil {
		if v, ok := o.values[key]; ok {
			o.valuesMu.RUnlock()
			return v
		}
	}
	o.valuesMu.RUnlock()

	if o.parent != nil {
		return o.parent.Value(key)
	}
	return nil
}

// Dispose tears down this owner: children first (in reverse creation
// order), then effects, then cleanup functions. Safe to call more than once.
func (o *Owner) Dispose() {
	if o.disposed.Swap(true) {
		return
	}

	if o.parent != nil {
		o.parent.mu.Lock()
		for i, c := range o.parent.children {
			if c == o {
				o.parent.children = append(o.parent.children[:i], o.parent.children[i+1:]...)
				break
			}
		}
		o.parent.mu.Unlock()
	}

	o.mu.Lock()
	children := o.children
	effects := o.effects
	cleanups := o.cleanups
	o.children = nil
	o.effects = nil
	o.cleanups = nil
	o.mu.Unlock()

	for i := len(children) - 1; i >= 0; i-- {
		children[i].Dispose()
	}
	for _, e := range effects {
		e.Dispose()
	}
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
}

// SetContext stores a context value on the current owner, making it visible
// to everything created under that owner.
func SetContext(key, value any) {
	if owner := currentOwner(); owner != nil {
		owner.SetValue(key, value)
	}
}

// GetContext resolves a context value from the nearest provider in the
// current owner chain. Returns nil when called outside an owner scope or
// when no provider holds the key.
func GetContext(key any) any {
	if owner := currentOwner(); owner != nil {
		return owner.Value(key)
	}
	return nil
}
