package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/conventionphotos/order-entry/internal/draft"
	"github.com/conventionphotos/order-entry/internal/models"
	"github.com/conventionphotos/order-entry/internal/pricing"
	"github.com/go-playground/validator/v10"
)

var (
	ErrMissingFields      = errors.New("missing required fields or empty order")
	ErrSubmissionInFlight = errors.New("a submission is already in progress")
)

// EventDirectory lists the events an order can be attributed to.
type EventDirectory interface {
	Events(ctx context.Context) ([]models.Event, error)
}

// OrderSink accepts a completed order for fulfillment.
type OrderSink interface {
	CreateOrder(ctx context.Context, order models.OrderRequest) error
}

// Contact carries the customer and shipping fields of the form.
type Contact struct {
	CustomerName string `json:"customerName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Street       string `json:"street"`
	Apartment    string `json:"apartment"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zipCode"`
}

// Summary is the draft plus its derived totals. Totals are recomputed from
// the items on every call; nothing is cached between reads.
type Summary struct {
	Event      *models.Event     `json:"event,omitempty"`
	EventCode  string            `json:"eventCode"`
	Contact    Contact           `json:"contact"`
	Items      []models.LineItem `json:"items"`
	ItemTotals []int             `json:"itemTotals"`
	Subtotal   int               `json:"subtotal"`
	Discount   int               `json:"discount"`
	Total      int               `json:"total"`
}

// OrderSession owns a single order draft and drives it through entry and
// submission. The HTTP surface is concurrent, so the draft's single-writer
// rule is enforced by the session lock; the submit path additionally
// allows at most one in-flight request to the sink at a time.
type OrderSession struct {
	directory   EventDirectory
	sink        OrderSink
	eventPrefix string
	validate    *validator.Validate
	log         *slog.Logger

	mu         sync.Mutex
	draft      draft.Draft
	submitting bool
}

// NewOrderSession creates a session with an empty draft. eventPrefix is the
// event code used when no event has been selected.
func NewOrderSession(directory EventDirectory, sink OrderSink, eventPrefix string, log *slog.Logger) *OrderSession {
	return &OrderSession{
		directory:   directory,
		sink:        sink,
		eventPrefix: eventPrefix,
		validate:    validator.New(),
		log:         log,
	}
}

// Events returns the selectable event list. Directory failures are logged
// and degrade to whatever list the directory could provide (possibly
// empty); the form then falls back to the event-code prefix.
func (s *OrderSession) Events(ctx context.Context) []models.Event {
	events, err := s.directory.Events(ctx)
	if err != nil {
		s.log.Error("failed to fetch events", "error", err)
	}
	if events == nil {
		events = []models.Event{}
	}
	return events
}

// AddItem appends a new empty line item and returns it.
func (s *OrderSession) AddItem() models.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.AddItem()
}

// RemoveItem deletes the line item at index.
func (s *OrderSession) RemoveItem(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.RemoveItem(index)
}

// UpdateItem replaces one field of the line item at index.
func (s *OrderSession) UpdateItem(index int, field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.UpdateItem(index, field, value)
}

// SetEvent selects an event; nil clears the selection.
func (s *OrderSession) SetEvent(event *models.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.SetEvent(event)
}

// SetContact replaces the customer and shipping fields. The dispatcher
// posts the whole contact block on every edit, so a full assignment is a
// faithful binding of the form state.
func (s *OrderSession) SetContact(c Contact) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.CustomerName = c.CustomerName
	s.draft.Email = c.Email
	s.draft.Phone = c.Phone
	s.draft.Street = c.Street
	s.draft.Apartment = c.Apartment
	s.draft.City = c.City
	s.draft.State = c.State
	s.draft.ZipCode = c.ZipCode
}

// Summary returns the current draft state with derived totals.
func (s *OrderSession) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.draft.Items()
	itemTotals := make([]int, len(items))
	for i, item := range items {
		itemTotals[i] = pricing.ItemTotal(item)
	}

	return Summary{
		Event:     s.draft.Event,
		EventCode: s.draft.EventCode(s.eventPrefix),
		Contact: Contact{
			CustomerName: s.draft.CustomerName,
			Email:        s.draft.Email,
			Phone:        s.draft.Phone,
			Street:       s.draft.Street,
			Apartment:    s.draft.Apartment,
			City:         s.draft.City,
			State:        s.draft.State,
			ZipCode:      s.draft.ZipCode,
		},
		Items:      items,
		ItemTotals: itemTotals,
		Subtotal:   pricing.Subtotal(items),
		Discount:   pricing.VolumeDiscount(items),
		Total:      pricing.OrderTotal(items),
	}
}

// Submit validates the draft, serializes it, and hands it to the sink.
// A local validation failure aborts before any network call. On a sink
// acknowledgment the draft resets to empty; on a sink failure it is left
// untouched so the user can retry.
func (s *OrderSession) Submit(ctx context.Context) error {
	s.mu.Lock()
	if s.submitting {
		s.mu.Unlock()
		return ErrSubmissionInFlight
	}

	order := s.buildOrderLocked()
	if err := s.validate.Struct(order); err != nil {
		s.mu.Unlock()
		return ErrMissingFields
	}

	s.submitting = true
	s.mu.Unlock()

	// The lock is released while the request is in flight; edits made in
	// the meantime land in the draft and are cleared by the reset below
	// only if the sink acknowledged.
	err := s.sink.CreateOrder(ctx, order)

	s.mu.Lock()
	s.submitting = false
	if err == nil {
		s.draft.Reset()
	}
	s.mu.Unlock()

	if err != nil {
		s.log.Error("order submission failed", "error", err)
		return err
	}

	s.log.Info("order submitted",
		"event_code", order.EventCode,
		"items_count", len(order.Items),
	)
	return nil
}

// buildOrderLocked serializes the draft into the wire payload, coercing
// quantities to non-negative integers. Caller must hold s.mu.
func (s *OrderSession) buildOrderLocked() models.OrderRequest {
	items := s.draft.Items()
	wire := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		wire = append(wire, models.OrderItem{
			PhotoNumber: item.PhotoNumber,
			Qty4x6:      models.ParseQuantity(item.Qty4x6),
			Qty5x7:      models.ParseQuantity(item.Qty5x7),
			Qty8x10:     models.ParseQuantity(item.Qty8x10),
		})
	}

	return models.OrderRequest{
		CustomerName:    s.draft.CustomerName,
		Email:           s.draft.Email,
		Phone:           s.draft.Phone,
		FulfillmentType: models.FulfillmentShip,
		Street:          s.draft.Street,
		City:            s.draft.City,
		State:           s.draft.State,
		ZipCode:         s.draft.ZipCode,
		Apartment:       s.draft.Apartment,
		EventCode:       s.draft.EventCode(s.eventPrefix),
		Items:           wire,
	}
}
