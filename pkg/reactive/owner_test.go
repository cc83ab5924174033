package reactive

import "testing"

func TestOwnerCleanupOrder(t *testing.T) {
	owner := NewOwner(nil)

	var order []int
	owner.OnCleanup(func() { order = append(order, 1) })
	owner.OnCleanup(func() { order = append(order, 2) })

	owner.Dispose()

	// Reverse registration order.
	if len(order) != 2 || order[0] != 2 || order[1] != 1 {
		t.Errorf("expected [2 1], got %v", order)
	}
}

func TestOwnerDisposeChildren(t *testing.T) {
	root := NewOwner(nil)
	child := NewOwner(root)
	grandchild := NewOwner(child)

	root.Dispose()

	if !child.IsDisposed() || !grandchild.IsDisposed() {
		t.Error("disposing the root should dispose descendants")
	}
}

func TestOwnerCleanupAfterDispose(t *testing.T) {
	owner := NewOwner(nil)
	owner.Dispose()

	ran := false
	owner.OnCleanup(func() { ran = true })

	if !ran {
		t.Error("cleanup registered after dispose should run immediately")
	}
}

func TestOwnerDoubleDispose(t *testing.T) {
	owner := NewOwner(nil)

	runs := 0
	owner.OnCleanup(func() { runs++ })

	owner.Dispose()
	owner.Dispose()

	if runs != 1 {
		t.Errorf("cleanup should run once, got %d", runs)
	}
}

func TestOwnerContextValues(t *testing.T) {
	type key struct{}

	root := NewOwner(nil)
	root.SetValue(key{}, "hello")

	child := NewOwner(root)
	if v := child.Value(key{}); v != "hello" {
		t.Errorf("child should resolve ancestor value, got %v", v)
	}

	// Child override shadows the parent.
	child.SetValue(key{}, "shadow")
	if v := child.Value(key{}); v != "shadow" {
		t.Errorf("expected shadowed value, got %v", v)
	}
	if v := root.Value(key{}); v != "hello" {
		t.Errorf("parent value should be unchanged, got %v", v)
	}
}

func TestGetContextViaCurrentOwner(t *testing.T) {
	type key struct{}

	owner := NewOwner(nil)
	WithOwner(owner, func() {
		SetContext(key{}, 7)
	})

	child := NewOwner(owner)
	WithOwner(child, func() {
		if v := GetContext(key{}); v != 7 {
			t.Errorf("expected 7, got %v", v)
		}
	})

	if v := GetContext(key{}); v != nil {
		t.Errorf("no owner scope: expected nil, got %v", v)
	}
}

func TestOwnerDisposeRemovesFromParent(t *testing.T) {
	root := NewOwner(nil)
	child := NewOwner(root)

	child.Dispose()
	root.Dispose()

	if !root.IsDisposed() {
		t.Error("root should dispose cleanly after child removal")
	}
}
