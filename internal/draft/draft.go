package draft

import (
	"errors"
	"strings"

	"github.com/conventionphotos/order-entry/internal/models"
)

var (
	ErrIndexOutOfRange = errors.New("line item index out of range")
	ErrUnknownField    = errors.New("unknown line item field")
)

// Line item field names accepted by UpdateItem. These match the JSON field
// names on the wire.
const (
	FieldPhotoNumber = "photoNumber"
	FieldQty4x6      = "qty4x6"
	FieldQty5x7      = "qty5x7"
	FieldQty8x10     = "qty8x10"
)

// Draft is the in-progress order: selected event, customer and shipping
// details, and the ordered list of line items. It holds whatever the form
// currently shows and applies no validation; submission rules live in the
// service layer.
type Draft struct {
	Event *models.Event

	CustomerName string
	Email        string
	Phone        string

	Street    string
	Apartment string
	City      string
	State     string
	ZipCode   string

	items []models.LineItem
}

// AddItem appends a new empty line item and returns it.
func (d *Draft) AddItem() models.LineItem {
	item := models.NewLineItem()
	d.items = append(d.items, item)
	return item
}

// RemoveItem deletes the item at index. Items after it shift down by one;
// relative order is preserved.
func (d *Draft) RemoveItem(index int) error {
	if index < 0 || index >= len(d.items) {
		return ErrIndexOutOfRange
	}
	d.items = append(d.items[:index], d.items[index+1:]...)
	return nil
}

// UpdateItem replaces one field of the item at index. Quantity values are
// stripped to digits at write time, the same sanitization the form's
// numeric inputs apply, so the draft never holds signs or punctuation.
func (d *Draft) UpdateItem(index int, field, value string) error {
	if index < 0 || index >= len(d.items) {
		return ErrIndexOutOfRange
	}
	switch field {
	case FieldPhotoNumber:
		d.items[index].PhotoNumber = value
	case FieldQty4x6:
		d.items[index].Qty4x6 = digitsOnly(value)
	case FieldQty5x7:
		d.items[index].Qty5x7 = digitsOnly(value)
	case FieldQty8x10:
		d.items[index].Qty8x10 = digitsOnly(value)
	default:
		return ErrUnknownField
	}
	return nil
}

// SetEvent selects an event; nil clears the selection so EventCode falls
// back to the configured prefix.
func (d *Draft) SetEvent(event *models.Event) {
	d.Event = event
}

// EventCode returns the selected event's slug, or fallback when no event
// is selected.
func (d *Draft) EventCode(fallback string) string {
	if d.Event != nil {
		return d.Event.Slug
	}
	return fallback
}

// Items returns a copy of the line items in insertion order.
func (d *Draft) Items() []models.LineItem {
	items := make([]models.LineItem, len(d.items))
	copy(items, d.items)
	return items
}

// Len returns the number of line items.
func (d *Draft) Len() int {
	return len(d.items)
}

// Reset returns the draft to its empty initial state.
func (d *Draft) Reset() {
	*d = Draft{}
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
