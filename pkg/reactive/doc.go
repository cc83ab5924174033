// Package reactive is the small signal runtime the toast engine is built on.
//
// It provides three primitives:
//
//   - Signal[T]: a value container that records which listeners read it and
//     notifies them when the value changes.
//   - Effect: a function that re-runs whenever a signal it read changes.
//     Effects may return a Cleanup that runs before the next execution and
//     on disposal.
//   - Owner: a scope that owns effects, cleanup functions, and context
//     values. Disposing an owner tears down everything created under it.
//
// Reads are tracked per goroutine. Reading a signal inside an effect (or any
// function wrapped with WithListener) subscribes the active listener; reads
// outside a tracked context are plain reads.
//
// Example:
//
//	count := reactive.NewSignal(0)
//
//	owner := reactive.NewOwner(nil)
//	reactive.WithOwner(owner, func() {
//	    reactive.NewEffect(func() reactive.Cleanup {
//	        fmt.Println("count is", count.Get())
//	        return nil
//	    })
//	})
//
//	count.Set(1) // effect re-runs
//	owner.Dispose()
package reactive
