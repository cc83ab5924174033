package toaster

import "github.com/toastline-dev/toastline/pkg/reactive"

// contextKey identifies the Toaster in an owner's context values.
var contextKey = &struct{ name string }{"toastline.Toaster"}

// Provide stores the Toaster on the current reactive owner so any scope
// created beneath it can resolve the same instance with Use. Call it once,
// at the root of the owner tree:
//
//	root := reactive.NewOwner(nil)
//	reactive.WithOwner(root, func() {
//	    toaster.Provide(t)
//	})
func Provide(t *Toaster) {
	reactive.SetContext(contextKey, t)
}

// Use resolves the Toaster provided by the nearest ancestor scope. It panics
// when no Toaster was provided — that is a wiring bug, not a runtime
// condition.
func Use() *Toaster {
	v := reactive.GetContext(contextKey)
	if v == nil {
		panic("toaster: no Toaster provided in this scope; call toaster.Provide at the owner root")
	}
	return v.(*Toaster)
}
