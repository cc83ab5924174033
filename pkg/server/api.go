package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"

	"github.com/toastline-dev/toastline/pkg/toast"
)

// createRequest is the POST /toasts body. Only message is required; every
// other field falls back to the builder defaults.
type createRequest struct {
	Message     string          `json:"message"`
	Level       *toast.Level    `json:"level,omitempty"`
	Position    *toast.Position `json:"position,omitempty"`
	ExpiryMs    *int64          `json:"expiry_ms,omitempty"`
	Progress    *bool           `json:"progress,omitempty"`
	Dismissable *bool           `json:"dismissable,omitempty"`
}

type createResponse struct {
	ID toast.ID `json:"id"`
}

type listResponse struct {
	Toasts []toast.Toast `json:"toasts"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// handleList returns every active toast in insertion order.
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	_, span := s.tracer.Start(r.Context(), "toasts.list")
	defer span.End()

	toasts := s.toaster.Store().All()
	span.SetAttributes(attribute.Int("toastline.count", len(toasts)))

	writeJSON(w, http.StatusOK, listResponse{Toasts: toasts})
}

// handleCreate raises a toast from the request body and returns its identity.
func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	_, span := s.tracer.Start(r.Context(), "toasts.create")
	defer span.End()

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	if req.Message == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "message is required"})
		return
	}

	b := toast.New(req.Message)
	if req.Level != nil {
		b = b.WithLevel(*req.Level)
	}
	if req.Position != nil {
		b = b.WithPosition(*req.Position)
	}
	if req.ExpiryMs != nil {
		if *req.ExpiryMs <= 0 {
			b = b.WithNoExpiry()
		} else {
			b = b.WithExpiry(time.Duration(*req.ExpiryMs) * time.Millisecond)
		}
	}
	if req.Progress != nil {
		b = b.WithProgress(*req.Progress)
	}
	if req.Dismissable != nil {
		b = b.WithDismissable(*req.Dismissable)
	}

	id := s.toaster.Toast(b)
	if id == "" {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "toaster is closed"})
		return
	}

	created, _ := s.toaster.Store().Get(id)
	span.SetAttributes(
		attribute.String("toastline.id", string(id)),
		attribute.String("toastline.level", string(created.Level)),
		attribute.String("toastline.position", string(created.Position)),
	)
	writeJSON(w, http.StatusCreated, createResponse{ID: id})
}

// handleDismiss dismisses one toast. Always 204: absent and non-dismissable
// toasts no-op, matching Toaster.Dismiss.
func (s *Server) handleDismiss(w http.ResponseWriter, r *http.Request) {
	_, span := s.tracer.Start(r.Context(), "toasts.dismiss")
	defer span.End()

	id := toast.ID(chi.URLParam(r, "id"))
	span.SetAttributes(attribute.String("toastline.id", string(id)))

	s.toaster.Dismiss(id)
	w.WriteHeader(http.StatusNoContent)
}

// handleClear removes every toast.
func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	_, span := s.tracer.Start(r.Context(), "toasts.clear")
	defer span.End()

	s.toaster.Clear()
	w.WriteHeader(http.StatusNoContent)
}
