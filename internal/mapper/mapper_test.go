package mapper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sixink-6/gas-grove-api/internal/domain"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{0, "Rp 0"},
		{5, "Rp 5"},
		{999, "Rp 999"},
		{1000, "Rp 1.000"},
		{1500000, "Rp 1.500.000"},
		{2750000000, "Rp 2.750.000.000"},
		{-125000, "Rp -125.000"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatAmount(tt.amount), "FormatAmount(%d)", tt.amount)
	}
}

func TestToPurchaseOrderDTORoundsTotals(t *testing.T) {
	order := &domain.PurchaseOrder{
		Number:     "PO-2026-001",
		ClientName: "Company Alpha",
		Items: []domain.PurchaseOrderItem{
			{Name: "LPG 50kg", Quantity: 1, Price: 100},
		},
		Discount:    0,
		DeliveryFee: 20,
		TaxRate:     10,
		Status:      domain.PurchaseOrderStatusPending,
	}

	dto := ToPurchaseOrderDTO(order)

	assert.Equal(t, 100.0, dto.Totals.Subtotal)
	assert.Equal(t, 120.0, dto.Totals.WithDelivery)
	assert.Equal(t, 12.0, dto.Totals.Tax)
	assert.Equal(t, 132.0, dto.Totals.Total)
	assert.Len(t, dto.Items, 1)
	assert.Equal(t, 100.0, dto.Items[0].LineTotal)
}

func TestToDeliveryOrderDTOCarriesOrderLines(t *testing.T) {
	po := &domain.PurchaseOrder{
		Number:     "PO-2026-007",
		ClientName: "Company Alpha",
		Items: []domain.PurchaseOrderItem{
			{Name: "LPG 50kg", Quantity: 1, Price: 100},
		},
		DeliveryFee: 20,
		TaxRate:     10,
	}
	order := &domain.DeliveryOrder{
		Number:        "DO-2026-007",
		ClientName:    "Company Alpha",
		DeliveryDate:  time.Now(),
		Status:        domain.DeliveryOrderStatusScheduled,
		PurchaseOrder: po,
	}

	dto := ToDeliveryOrderDTO(order)
	assert.Equal(t, "PO-2026-007", dto.PurchaseOrderNumber)
	assert.Len(t, dto.Items, 1)
	assert.Equal(t, 100.0, dto.Items[0].LineTotal)
	assert.Equal(t, 132.0, dto.Total)

	// Without the loaded source order the DTO stays flat.
	bare := ToDeliveryOrderDTO(&domain.DeliveryOrder{Number: "DO-2026-008", DeliveryDate: time.Now()})
	assert.Empty(t, bare.Items)
	assert.Zero(t, bare.Total)
}

func TestToInvoiceDTOOverdueFlag(t *testing.T) {
	past := time.Now().AddDate(0, 0, -2)
	future := time.Now().AddDate(0, 0, 10)

	unpaidPast := &domain.Invoice{Status: domain.InvoiceStatusUnpaid, DueDate: past, TotalAmount: 1500000}
	unpaidFuture := &domain.Invoice{Status: domain.InvoiceStatusUnpaid, DueDate: future, TotalAmount: 1500000}
	paidPast := &domain.Invoice{Status: domain.InvoiceStatusPaid, DueDate: past, TotalAmount: 1500000}

	assert.True(t, ToInvoiceDTO(unpaidPast).Overdue)
	assert.False(t, ToInvoiceDTO(unpaidFuture).Overdue)
	assert.False(t, ToInvoiceDTO(paidPast).Overdue)
	assert.Equal(t, "Rp 1.500.000", ToInvoiceDTO(unpaidPast).FormattedAmount)
}
