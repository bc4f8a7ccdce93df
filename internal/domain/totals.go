package domain

import "math"

// OrderTotals holds the derived money breakdown for a purchase order.
// Values are kept at full float precision; rounding happens only when
// formatting for display.
type OrderTotals struct {
	Subtotal      float64
	AfterDiscount float64
	WithDelivery  float64
	Tax           float64
	Total         float64
}

// CalculateTotals derives the money breakdown for a purchase order.
// The discount is applied before the delivery fee, and tax applies to
// the fee-inclusive amount. A discount larger than the subtotal leaves
// AfterDiscount negative rather than clamping it to zero, so oversized
// discounts stay visible to reviewers.
func CalculateTotals(items []PurchaseOrderItem, discount, deliveryFee, taxRate float64) OrderTotals {
	var subtotal float64
	for _, item := range items {
		subtotal += float64(item.Quantity) * item.Price
	}

	afterDiscount := subtotal - discount
	withDelivery := afterDiscount + deliveryFee
	tax := withDelivery * (taxRate / 100)

	return OrderTotals{
		Subtotal:      subtotal,
		AfterDiscount: afterDiscount,
		WithDelivery:  withDelivery,
		Tax:           tax,
		Total:         withDelivery + tax,
	}
}

// Totals derives the money breakdown from the order's own lines
func (po *PurchaseOrder) Totals() OrderTotals {
	return CalculateTotals(po.Items, po.Discount, po.DeliveryFee, po.TaxRate)
}

// RoundAmount rounds a derived amount to two decimals for display
func RoundAmount(v float64) float64 {
	return math.Round(v*100) / 100
}
