// Package toast defines the toast entity: an identified, leveled, positioned
// message with optional auto-expiry, plus the builder used to construct one.
//
// A builder is pure: it only accumulates configuration. Nothing happens until
// it is handed to a Toaster, which assigns the identity and inserts the toast
// into the store.
//
//	toaster.Toast(
//	    toast.New("Saved!").
//	        WithLevel(toast.LevelSuccess).
//	        WithExpiry(5 * time.Second).
//	        WithPosition(toast.TopRight),
//	)
package toast
