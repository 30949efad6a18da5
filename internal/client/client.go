package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/conventionphotos/order-entry/internal/models"
)

// StatusError reports a non-2xx response from the fulfillment backend.
type StatusError struct {
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d", e.Status)
}

// Client calls the fulfillment backend. It implements both collaborators
// the order session needs: the event directory and the order-submission
// sink. Requests are single-shot, no retries.
type Client struct {
	baseURL string
	http    *http.Client

	mu     sync.RWMutex
	events []models.Event // last successfully fetched directory
}

// New creates a client for the backend at baseURL.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// Events fetches the event directory from GET /api/proxy-events. On any
// failure the last successfully fetched list is returned alongside the
// error, so callers can keep showing a stale directory rather than none.
func (c *Client) Events(ctx context.Context) ([]models.Event, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/proxy-events", nil)
	if err != nil {
		return c.cachedEvents(), fmt.Errorf("failed to create events request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return c.cachedEvents(), fmt.Errorf("failed to fetch events: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.cachedEvents(), fmt.Errorf("failed to fetch events: %w", &StatusError{Status: resp.StatusCode})
	}

	var body models.EventsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return c.cachedEvents(), fmt.Errorf("failed to decode events response: %w", err)
	}

	c.mu.Lock()
	c.events = body.Events
	c.mu.Unlock()

	return body.Events, nil
}

// CreateOrder submits an order to POST /api/orders/create. Any 2xx
// response is an acknowledgment; anything else is an error and the caller
// keeps its draft for retry.
func (c *Client) CreateOrder(ctx context.Context, order models.OrderRequest) error {
	payload, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("failed to encode order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/orders/create", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to submit order: %w", err)
	}
	defer resp.Body.Close()

	// Drain so the connection can be reused; the response body is opaque.
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("failed to submit order: %w", &StatusError{Status: resp.StatusCode})
	}

	return nil
}

func (c *Client) cachedEvents() []models.Event {
	c.mu.RLock()
	defer c.mu.RUnlock()

	events := make([]models.Event, len(c.events))
	copy(events, c.events)
	return events
}
