// Package toaster is the toast lifecycle engine: an in-memory store of
// active toasts grouped by screen position, a per-toast expiry scheduler,
// and the Toaster handle applications use to create, dismiss, and clear
// notifications.
//
// Construct one Toaster at application start and pass it (or Provide it on a
// reactive owner scope) to whatever needs to raise notifications:
//
//	t := toaster.New()
//	defer t.Close()
//
//	id := t.Success("Project deleted")
//	t.Toast(toast.New("Build finished").WithPosition(toast.TopRight))
//	t.Dismiss(id)
//
// Presentation layers subscribe to the store's per-position queues through
// the reactive layer and re-render whenever the contents change:
//
//	reactive.NewEffect(func() reactive.Cleanup {
//	    for _, pos := range toast.Positions {
//	        render(pos, t.Store().Queue(pos).Get())
//	    }
//	    return nil
//	})
//
// All mutations are serialized: direct calls lock the store internally, and
// timer callbacks are funneled through the configured dispatcher so expiry
// removals run on the same logical loop as the host UI. Callers never block.
package toaster
