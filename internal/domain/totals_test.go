package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateTotals(t *testing.T) {
	tests := []struct {
		name        string
		items       []PurchaseOrderItem
		discount    float64
		deliveryFee float64
		taxRate     float64
		want        OrderTotals
	}{
		{
			name: "two line items",
			items: []PurchaseOrderItem{
				{Name: "LPG 12kg", Quantity: 2, Price: 10},
				{Name: "LPG 5kg", Quantity: 3, Price: 5},
			},
			want: OrderTotals{Subtotal: 35, AfterDiscount: 35, WithDelivery: 35, Tax: 0, Total: 35},
		},
		{
			name: "delivery fee and tax",
			items: []PurchaseOrderItem{
				{Name: "LPG 50kg", Quantity: 1, Price: 100},
			},
			discount:    0,
			deliveryFee: 20,
			taxRate:     10,
			want:        OrderTotals{Subtotal: 100, AfterDiscount: 100, WithDelivery: 120, Tax: 12, Total: 132},
		},
		{
			name:        "no items",
			items:       nil,
			deliveryFee: 20,
			taxRate:     10,
			want:        OrderTotals{Subtotal: 0, AfterDiscount: 0, WithDelivery: 20, Tax: 2, Total: 22},
		},
		{
			name: "discount applies before delivery fee",
			items: []PurchaseOrderItem{
				{Name: "LPG 12kg", Quantity: 4, Price: 25},
			},
			discount:    30,
			deliveryFee: 10,
			taxRate:     10,
			want:        OrderTotals{Subtotal: 100, AfterDiscount: 70, WithDelivery: 80, Tax: 8, Total: 88},
		},
		{
			name: "oversized discount stays negative",
			items: []PurchaseOrderItem{
				{Name: "regulator", Quantity: 1, Price: 50},
			},
			discount: 80,
			want:     OrderTotals{Subtotal: 50, AfterDiscount: -30, WithDelivery: -30, Tax: 0, Total: -30},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateTotals(tt.items, tt.discount, tt.deliveryFee, tt.taxRate)
			assert.InDelta(t, tt.want.Subtotal, got.Subtotal, 1e-9)
			assert.InDelta(t, tt.want.AfterDiscount, got.AfterDiscount, 1e-9)
			assert.InDelta(t, tt.want.WithDelivery, got.WithDelivery, 1e-9)
			assert.InDelta(t, tt.want.Tax, got.Tax, 1e-9)
			assert.InDelta(t, tt.want.Total, got.Total, 1e-9)
		})
	}
}

func TestCalculateTotalsIsPure(t *testing.T) {
	items := []PurchaseOrderItem{
		{Name: "LPG 12kg", Quantity: 2, Price: 10},
	}

	first := CalculateTotals(items, 5, 20, 10)
	second := CalculateTotals(items, 5, 20, 10)

	assert.Equal(t, first, second)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 10.0, items[0].Price)
}

func TestPurchaseOrderTotals(t *testing.T) {
	po := PurchaseOrder{
		Items: []PurchaseOrderItem{
			{Name: "LPG 50kg", Quantity: 1, Price: 100},
		},
		Discount:    0,
		DeliveryFee: 20,
		TaxRate:     10,
	}

	got := po.Totals()
	assert.InDelta(t, 120.0, got.WithDelivery, 1e-9)
	assert.InDelta(t, 132.0, got.Total, 1e-9)
}

func TestRoundAmount(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{132.0, 132.00},
		// The nearest float64 to 12.005 sits just above it, so the
		// half-way case rounds up.
		{12.005, 12.01},
		{10.004, 10.0},
		{10.006, 10.01},
		{-30.456, -30.46},
		{0, 0},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, RoundAmount(tt.in), 1e-9, "RoundAmount(%v)", tt.in)
	}
}
