package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/conventionphotos/order-entry/internal/draft"
	"github.com/conventionphotos/order-entry/internal/models"
	"github.com/conventionphotos/order-entry/internal/service"
	"github.com/go-chi/chi/v5"
)

// SessionHandler maps form events onto the order session. Handlers stay
// thin: decode, dispatch, write.
type SessionHandler struct {
	session *service.OrderSession
	log     *slog.Logger
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(session *service.OrderSession, log *slog.Logger) *SessionHandler {
	return &SessionHandler{
		session: session,
		log:     log,
	}
}

// Summary handles GET /api/session
func (h *SessionHandler) Summary(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.session.Summary(), h.log)
}

// AddItem handles POST /api/session/items
func (h *SessionHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	item := h.session.AddItem()
	WriteJSON(w, http.StatusCreated, item, h.log)
}

// RemoveItem handles DELETE /api/session/items/{index}
func (h *SessionHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid item index", h.log)
		return
	}

	if err := h.session.RemoveItem(index); err != nil {
		WriteError(w, http.StatusNotFound, "Item not found", h.log)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type updateItemRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// UpdateItem handles PATCH /api/session/items/{index}
func (h *SessionHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid item index", h.log)
		return
	}

	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	if err := h.session.UpdateItem(index, req.Field, req.Value); err != nil {
		switch {
		case errors.Is(err, draft.ErrIndexOutOfRange):
			WriteError(w, http.StatusNotFound, "Item not found", h.log)
		case errors.Is(err, draft.ErrUnknownField):
			WriteError(w, http.StatusBadRequest, "Unknown line item field", h.log)
		default:
			WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		}
		return
	}

	WriteJSON(w, http.StatusOK, h.session.Summary(), h.log)
}

type setEventRequest struct {
	Event *models.Event `json:"event"`
}

// SetEvent handles PUT /api/session/event. A null event clears the
// selection and reverts the order to the fallback event-code prefix.
func (h *SessionHandler) SetEvent(w http.ResponseWriter, r *http.Request) {
	var req setEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	h.session.SetEvent(req.Event)
	WriteJSON(w, http.StatusOK, h.session.Summary(), h.log)
}

// SetContact handles PUT /api/session/customer. The form posts its whole
// customer/shipping block on every edit.
func (h *SessionHandler) SetContact(w http.ResponseWriter, r *http.Request) {
	var req service.Contact
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	h.session.SetContact(req)
	WriteJSON(w, http.StatusOK, h.session.Summary(), h.log)
}

// Submit handles POST /api/session/submit
func (h *SessionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	err := h.session.Submit(r.Context())
	switch {
	case err == nil:
		WriteJSON(w, http.StatusOK, map[string]string{
			"message": "Order submitted successfully!",
		}, h.log)
	case errors.Is(err, service.ErrMissingFields):
		WriteError(w, http.StatusBadRequest, "Please fill in required fields and add at least one item.", h.log)
	case errors.Is(err, service.ErrSubmissionInFlight):
		WriteError(w, http.StatusConflict, "A submission is already in progress.", h.log)
	default:
		WriteError(w, http.StatusBadGateway, "Failed to submit order. Please try again.", h.log)
	}
}
