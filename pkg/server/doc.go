// Package server bridges a Toaster to the network: an HTTP API for raising
// and dismissing toasts, a WebSocket endpoint that pushes store snapshots to
// connected clients on every change, a server-rendered demo page, and a
// Prometheus metrics endpoint.
//
// The server is itself just a presentation-layer subscriber: it watches the
// store's queues through a reactive effect and broadcasts. The engine does
// not know it exists.
package server
