package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/toastline-dev/toastline/pkg/reactive"
	"github.com/toastline-dev/toastline/pkg/render"
	"github.com/toastline-dev/toastline/pkg/theme"
	"github.com/toastline-dev/toastline/pkg/toaster"
)

// tracerName identifies this package's spans.
const tracerName = "toastline/server"

// Config configures the bridge server.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// Theme styles the demo page and the pushed snapshots' CSS block.
	Theme theme.Theme

	// EnableMetrics exposes /metrics. The metrics recorder itself is
	// attached to the Toaster, not here (see NewMetrics).
	EnableMetrics bool

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Server serves the HTTP API, the live WebSocket feed, and the demo page.
type Server struct {
	cfg      Config
	toaster  *toaster.Toaster
	renderer *render.Renderer
	logger   *slog.Logger
	tracer   trace.Tracer

	owner *reactive.Owner
	hub   *hub

	http *http.Server
}

// New creates a server around an existing Toaster. The server subscribes to
// the store immediately; Close detaches it again.
func New(t *toaster.Toaster, cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	s := &Server{
		cfg:      cfg,
		toaster:  t,
		renderer: render.NewRenderer(cfg.Theme),
		logger:   cfg.Logger,
		tracer:   otel.Tracer(tracerName),
		owner:    reactive.NewOwner(nil),
		hub:      newHub(cfg.Logger),
	}

	// Broadcast a snapshot whenever any queue changes. The effect lives on
	// the server's owner and dies with it.
	reactive.WithOwner(s.owner, func() {
		reactive.NewEffect(func() reactive.Cleanup {
			s.hub.broadcast(s.snapshot())
			return nil
		})
	})

	return s
}

// Router builds the chi router with all endpoints mounted.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Get("/", s.handleIndex)
	r.Get("/live", s.handleLive)

	r.Route("/toasts", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Post("/", s.handleCreate)
		r.Delete("/", s.handleClear)
		r.Delete("/{id}", s.handleDismiss)
	})

	if s.cfg.EnableMetrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// ListenAndServe blocks serving HTTP until ctx is cancelled, then shuts the
// server down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.http = &http.Server{
		Addr:    s.cfg.Addr,
		Handler: s.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("toastline server listening", "addr", s.cfg.Addr)
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.Close()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

// Close detaches the store subscription and disconnects live clients.
func (s *Server) Close() {
	s.owner.Dispose()
	s.hub.closeAll()
}

// handleIndex serves the server-rendered demo page: current toasts plus a
// small script that re-renders from live snapshots.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	fmt.Fprint(w, "<!DOCTYPE html><html><head><title>toastline</title><style>")
	fmt.Fprint(w, s.renderer.Stylesheet())
	fmt.Fprint(w, "</style></head><body>")
	fmt.Fprint(w, s.renderer.Regions(s.toaster.Store()))
	fmt.Fprint(w, indexScript)
	fmt.Fprint(w, "</body></html>")
}

// indexScript reconnects the page to /live and swaps region HTML on each
// snapshot. Dismissal clicks call back into the HTTP API.
const indexScript = `<script>
(function () {
	var ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/live");
	ws.onmessage = function (ev) {
		var snap = JSON.parse(ev.data);
		document.querySelectorAll(".toastline-region").forEach(function (region) {
			region.outerHTML = snap.html[region.dataset.position] || region.outerHTML;
		});
	};
	document.addEventListener("click", function (ev) {
		var card = ev.target.closest(".toastline-toast");
		if (card && card.dataset.dismissable === "true") {
			fetch("/toasts/" + card.dataset.id, { method: "DELETE" });
		}
	});
})();
</script>`
