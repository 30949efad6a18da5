package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/conventionphotos/order-entry/internal/models"
	"github.com/conventionphotos/order-entry/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDirectory struct {
	events []models.Event
	err    error
}

func (d *stubDirectory) Events(ctx context.Context) ([]models.Event, error) {
	return d.events, d.err
}

type stubSink struct {
	mu    sync.Mutex
	calls int
	last  models.OrderRequest
	err   error

	// When set, CreateOrder signals started and blocks until release is
	// closed. Used to hold a submission in flight.
	started chan struct{}
	release chan struct{}
}

func (s *stubSink) CreateOrder(ctx context.Context, order models.OrderRequest) error {
	s.mu.Lock()
	s.calls++
	s.last = order
	s.mu.Unlock()

	if s.started != nil {
		close(s.started)
		<-s.release
	}
	return s.err
}

func (s *stubSink) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *stubSink) lastOrder() models.OrderRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

func newTestSession(sink *stubSink) *OrderSession {
	return NewOrderSession(&stubDirectory{}, sink, "CPS", logger.New("error"))
}

func fillValidDraft(s *OrderSession) {
	s.SetContact(Contact{CustomerName: "Ada Lovelace", Email: "ada@example.com"})
	s.AddItem()
	_ = s.UpdateItem(0, "photoNumber", "1042")
	_ = s.UpdateItem(0, "qty4x6", "3")
}

func TestSubmit_MissingName(t *testing.T) {
	sink := &stubSink{}
	s := newTestSession(sink)

	s.SetContact(Contact{Email: "ada@example.com"})
	s.AddItem()

	err := s.Submit(context.Background())

	assert.ErrorIs(t, err, ErrMissingFields)
	assert.Equal(t, 0, sink.callCount(), "no request may be issued on local validation failure")
	assert.Len(t, s.Summary().Items, 1, "draft must be untouched")
}

func TestSubmit_MissingEmail(t *testing.T) {
	sink := &stubSink{}
	s := newTestSession(sink)

	s.SetContact(Contact{CustomerName: "Ada Lovelace"})
	s.AddItem()

	assert.ErrorIs(t, s.Submit(context.Background()), ErrMissingFields)
	assert.Equal(t, 0, sink.callCount())
}

func TestSubmit_EmptyItems(t *testing.T) {
	sink := &stubSink{}
	s := newTestSession(sink)

	s.SetContact(Contact{CustomerName: "Ada Lovelace", Email: "ada@example.com"})

	assert.ErrorIs(t, s.Submit(context.Background()), ErrMissingFields)
	assert.Equal(t, 0, sink.callCount())
}

func TestSubmit_Success(t *testing.T) {
	sink := &stubSink{}
	s := newTestSession(sink)
	fillValidDraft(s)
	s.AddItem()
	require.NoError(t, s.UpdateItem(1, "qty5x7", "2"))

	err := s.Submit(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, sink.callCount())

	order := sink.lastOrder()
	assert.Equal(t, "Ada Lovelace", order.CustomerName)
	assert.Equal(t, "ada@example.com", order.Email)
	assert.Equal(t, models.FulfillmentShip, order.FulfillmentType)
	assert.Equal(t, "CPS", order.EventCode, "no selection uses the fallback prefix")
	require.Len(t, order.Items, 2)
	assert.Equal(t, "1042", order.Items[0].PhotoNumber)
	assert.Equal(t, 3, order.Items[0].Qty4x6)
	assert.Equal(t, 0, order.Items[0].Qty5x7, "empty input coerces to zero")
	assert.Equal(t, 2, order.Items[1].Qty5x7)

	// Success resets the draft to its empty initial state.
	summary := s.Summary()
	assert.Empty(t, summary.Items)
	assert.Empty(t, summary.Contact.CustomerName)
	assert.Empty(t, summary.Contact.Email)
	assert.Nil(t, summary.Event)
	assert.Equal(t, 0, summary.Total)
}

func TestSubmit_UsesSelectedEventSlug(t *testing.T) {
	sink := &stubSink{}
	s := newTestSession(sink)
	fillValidDraft(s)
	s.SetEvent(&models.Event{Slug: "cps-atlanta-2026"})

	require.NoError(t, s.Submit(context.Background()))
	assert.Equal(t, "cps-atlanta-2026", sink.lastOrder().EventCode)
}

func TestSubmit_SinkFailureRetainsDraft(t *testing.T) {
	sink := &stubSink{err: errors.New("upstream unavailable")}
	s := newTestSession(sink)
	fillValidDraft(s)

	err := s.Submit(context.Background())

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMissingFields)
	assert.Equal(t, 1, sink.callCount())

	// Draft is kept so the user can retry, and a retry goes through.
	summary := s.Summary()
	assert.Len(t, summary.Items, 1)
	assert.Equal(t, "Ada Lovelace", summary.Contact.CustomerName)

	sink.mu.Lock()
	sink.err = nil
	sink.mu.Unlock()
	require.NoError(t, s.Submit(context.Background()))
	assert.Empty(t, s.Summary().Items)
}

func TestSubmit_AtMostOneInFlight(t *testing.T) {
	sink := &stubSink{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	s := newTestSession(sink)
	fillValidDraft(s)

	done := make(chan error, 1)
	go func() {
		done <- s.Submit(context.Background())
	}()

	<-sink.started
	assert.ErrorIs(t, s.Submit(context.Background()), ErrSubmissionInFlight)

	close(sink.release)
	require.NoError(t, <-done)
	assert.Equal(t, 1, sink.callCount())
}

func TestSummary_Totals(t *testing.T) {
	s := newTestSession(&stubSink{})
	s.AddItem()
	s.AddItem()
	require.NoError(t, s.UpdateItem(0, "qty4x6", "3"))
	require.NoError(t, s.UpdateItem(1, "qty4x6", "1"))
	require.NoError(t, s.UpdateItem(1, "qty5x7", "1"))

	summary := s.Summary()
	assert.Equal(t, []int{24, 23}, summary.ItemTotals)
	assert.Equal(t, 47, summary.Subtotal)
	assert.Equal(t, 4, summary.Discount)
	assert.Equal(t, 43, summary.Total)
}

func TestSummary_EmptyDraft(t *testing.T) {
	s := newTestSession(&stubSink{})

	summary := s.Summary()
	assert.Empty(t, summary.Items)
	assert.Equal(t, 0, summary.Subtotal)
	assert.Equal(t, 0, summary.Discount)
	assert.Equal(t, 0, summary.Total)
	assert.Equal(t, "CPS", summary.EventCode)
}

func TestEvents_DegradesToEmptyList(t *testing.T) {
	s := NewOrderSession(
		&stubDirectory{err: errors.New("directory down")},
		&stubSink{},
		"CPS",
		logger.New("error"),
	)

	events := s.Events(context.Background())
	assert.NotNil(t, events)
	assert.Empty(t, events)
}

func TestEvents_PassesThroughDirectory(t *testing.T) {
	list := []models.Event{{Slug: "cps-atlanta-2026", DateHuman: "Mar 14-16, 2026"}}
	s := NewOrderSession(&stubDirectory{events: list}, &stubSink{}, "CPS", logger.New("error"))

	assert.Equal(t, list, s.Events(context.Background()))
}
