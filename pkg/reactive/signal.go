package reactive

import (
	"reflect"
	"sync"
)

// subscribers manages the listener set shared by every signal.
type subscribers struct {
	mu   sync.RWMutex
	subs []Listener
}

// add subscribes a listener, deduplicating by listener ID.
func (s *subscribers) add(l Listener) {
	if l == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := l.ID()
	for _, existing := range s.subs {
		if existing.ID() == id {
			return
		}
	}
	s.subs = append(s.subs, l)
}

// remove unsubscribes a listener. No-op if the listener is not subscribed.
func (s *subscribers) remove(l Listener) {
	if l == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := l.ID()
	for i, existing := range s.subs {
		if existing.ID() == id {
			s.subs[i] = s.subs[len(s.subs)-1]
			s.subs = s.subs[:len(s.subs)-1]
			return
		}
	}
}

// notify marks every subscriber dirty. Subscribers are copied first so no
// lock is held while listener code runs. Inside a Batch the notifications
// are queued instead and delivered once when the batch completes.
func (s *subscribers) notify() {
	s.mu.RLock()
	subs := make([]Listener, len(s.subs))
	copy(subs, s.subs)
	s.mu.RUnlock()

	if batchDepth() > 0 {
		for _, sub := range subs {
			queueBatched(sub)
		}
		return
	}

	for _, sub := range subs {
		sub.MarkDirty()
	}
}

// Signal is a reactive value container. Reading it through Get inside a
// tracked context (an effect body, or WithListener) subscribes the active
// listener to future changes.
type Signal[T any] struct {
	id   uint64
	subs subscribers

	mu    sync.RWMutex
	value T

	// equal overrides change detection. Nil means defaultEquals.
	equal func(T, T) bool
}

// NewSignal creates a signal holding the given initial value.
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{
		id:    nextID(),
		value: initial,
	}
}

// Get returns the current value and subscribes the active listener, if any.
func (s *Signal[T]) Get() T {
	s.mu.RLock()
	value := s.value
	s.mu.RUnlock()

	if l := currentListener(); l != nil {
		s.subs.add(l)
		if e, ok := l.(*Effect); ok {
			e.addSource(&s.subs)
		}
	}

	return value
}

// Peek returns the current value without subscribing anything.
func (s *Signal[T]) Peek() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set replaces the value and notifies subscribers if it changed.
func (s *Signal[T]) Set(value T) {
	s.mu.Lock()
	changed := !s.equals(s.value, value)
	if changed {
		s.value = value
	}
	s.mu.Unlock()

	if changed {
		s.subs.notify()
	}
}

// Update applies fn to the current value atomically and notifies subscribers
// if the result differs.
func (s *Signal[T]) Update(fn func(T) T) {
	s.mu.Lock()
	old := s.value
	next := fn(old)
	changed := !s.equals(old, next)
	if changed {
		s.value = next
	}
	s.mu.Unlock()

	if changed {
		s.subs.notify()
	}
}

// WithEquals configures a custom equality function and returns the signal.
// Useful when reflect.DeepEqual is too expensive or has wrong semantics for T.
func (s *Signal[T]) WithEquals(fn func(T, T) bool) *Signal[T] {
	s.equal = fn
	return s
}

// ID returns the signal's unique identifier.
func (s *Signal[T]) ID() uint64 {
	return s.id
}

func (s *Signal[T]) equals(a, b T) bool {
	if s.equal != nil {
		return s.equal(a, b)
	}
	return defaultEquals(a, b)
}

// defaultEquals uses == for the common scalar types and falls back to
// reflect.DeepEqual for everything else (slices, maps, structs).
func defaultEquals[T any](a, b T) bool {
	switch av := any(a).(type) {
	case int:
		return av == any(b).(int)
	case int64:
		return av == any(b).(int64)
	case uint64:
		return av == any(b).(uint64)
	case float64:
		return av == any(b).(float64)
	case string:
		return av == any(b).(string)
	case bool:
		return av == any(b).(bool)
	default:
		return reflect.DeepEqual(a, b)
	}
}
