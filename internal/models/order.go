package models

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// FulfillmentShip is the only delivery method the order form produces.
const FulfillmentShip = "ship"

// LineItem is one photo entry in the order draft. The quantity fields hold
// the raw digit-sanitized strings exactly as entered on the form; they are
// coerced to integers in one place, ParseQuantity, just before pricing and
// submission.
type LineItem struct {
	ID          string `json:"id"`
	PhotoNumber string `json:"photoNumber"`
	Qty4x6      string `json:"qty4x6"`
	Qty5x7      string `json:"qty5x7"`
	Qty8x10     string `json:"qty8x10"`
}

// NewLineItem returns an empty line item with a stable identifier.
// Items are addressed by position in the draft, but the identifier lets
// clients track an item across removals that shift indices.
func NewLineItem() LineItem {
	return LineItem{ID: uuid.New().String()}
}

// ParseQuantity coerces a raw quantity string to a non-negative integer.
// Absent or unparseable values count as zero; negative values are clamped
// to zero so a malformed input can never produce a negative total.
func ParseQuantity(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// OrderItem is a line item as submitted to the order-creation endpoint,
// with quantities already coerced to integers.
type OrderItem struct {
	PhotoNumber string `json:"photoNumber"`
	Qty4x6      int    `json:"qty4x6"`
	Qty5x7      int    `json:"qty5x7"`
	Qty8x10     int    `json:"qty8x10"`
}

// OrderRequest is the payload for POST /api/orders/create.
//
// The validate tags carry the full submission precondition: customer name,
// email, and at least one item. Phone and the shipping address are
// deliberately not required, matching the behavior of the live form.
type OrderRequest struct {
	CustomerName    string      `json:"customerName" validate:"required"`
	Email           string      `json:"email" validate:"required"`
	Phone           string      `json:"phone"`
	FulfillmentType string      `json:"fulfillmentType"`
	Street          string      `json:"street"`
	City            string      `json:"city"`
	State           string      `json:"state"`
	ZipCode         string      `json:"zipCode"`
	Apartment       string      `json:"apartment"`
	EventCode       string      `json:"eventCode"`
	Items           []OrderItem `json:"items" validate:"min=1"`
}
