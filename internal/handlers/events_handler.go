package handlers

import (
	"log/slog"
	"net/http"

	"github.com/conventionphotos/order-entry/internal/models"
	"github.com/conventionphotos/order-entry/internal/service"
)

// EventsHandler serves the selectable event list.
type EventsHandler struct {
	session *service.OrderSession
	log     *slog.Logger
}

// NewEventsHandler creates a new events handler.
func NewEventsHandler(session *service.OrderSession, log *slog.Logger) *EventsHandler {
	return &EventsHandler{
		session: session,
		log:     log,
	}
}

// List handles GET /api/events. A directory failure degrades to an empty
// (or stale) list rather than an error; the form works without events.
func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	events := h.session.Events(r.Context())
	WriteJSON(w, http.StatusOK, models.EventsResponse{Events: events}, h.log)
}
