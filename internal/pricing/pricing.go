package pricing

import (
	"github.com/conventionphotos/order-entry/internal/models"
)

// Print prices in whole dollars.
const (
	Price4x6  = 8
	Price5x7  = 15
	Price8x10 = 20
)

// Every complete group of three 4x6 prints is billed at $20 instead of
// $24, realized as a flat $4 reduction per group.
const (
	discountGroupSize = 3
	discountPerGroup  = 4
)

// ItemTotal returns the undiscounted total for a single line item.
func ItemTotal(item models.LineItem) int {
	return models.ParseQuantity(item.Qty4x6)*Price4x6 +
		models.ParseQuantity(item.Qty5x7)*Price5x7 +
		models.ParseQuantity(item.Qty8x10)*Price8x10
}

// Subtotal returns the sum of all item totals before discount.
func Subtotal(items []models.LineItem) int {
	subtotal := 0
	for _, item := range items {
		subtotal += ItemTotal(item)
	}
	return subtotal
}

// VolumeDiscount returns the 3-for-$20 reduction on 4x6 prints. It is a
// function of the aggregate 4x6 count across the whole order, so groups of
// three may span line items. Applying it per item would miss groups split
// across items.
func VolumeDiscount(items []models.LineItem) int {
	total4x6 := 0
	for _, item := range items {
		total4x6 += models.ParseQuantity(item.Qty4x6)
	}
	return total4x6 / discountGroupSize * discountPerGroup
}

// OrderTotal returns the order total after the volume discount.
func OrderTotal(items []models.LineItem) int {
	return Subtotal(items) - VolumeDiscount(items)
}
