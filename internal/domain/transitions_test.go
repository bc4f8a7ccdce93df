package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPurchaseOrderStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		from    PurchaseOrderStatus
		to      PurchaseOrderStatus
		allowed bool
	}{
		{PurchaseOrderStatusPending, PurchaseOrderStatusApproved, true},
		{PurchaseOrderStatusPending, PurchaseOrderStatusCancelled, true},
		{PurchaseOrderStatusPending, PurchaseOrderStatusDelivered, false},
		{PurchaseOrderStatusApproved, PurchaseOrderStatusDelivered, true},
		{PurchaseOrderStatusApproved, PurchaseOrderStatusCancelled, true},
		{PurchaseOrderStatusApproved, PurchaseOrderStatusPending, false},
		{PurchaseOrderStatusDelivered, PurchaseOrderStatusCancelled, false},
		{PurchaseOrderStatusCancelled, PurchaseOrderStatusPending, false},
		{PurchaseOrderStatusCancelled, PurchaseOrderStatusApproved, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestPurchaseOrderStatusIsTerminal(t *testing.T) {
	assert.False(t, PurchaseOrderStatusPending.IsTerminal())
	assert.False(t, PurchaseOrderStatusApproved.IsTerminal())
	assert.True(t, PurchaseOrderStatusDelivered.IsTerminal())
	assert.True(t, PurchaseOrderStatusCancelled.IsTerminal())
}

func TestDeliveryOrderStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		from    DeliveryOrderStatus
		to      DeliveryOrderStatus
		allowed bool
	}{
		{DeliveryOrderStatusScheduled, DeliveryOrderStatusInTransit, true},
		{DeliveryOrderStatusScheduled, DeliveryOrderStatusDelivered, true},
		{DeliveryOrderStatusScheduled, DeliveryOrderStatusCancelled, true},
		{DeliveryOrderStatusInTransit, DeliveryOrderStatusDelivered, true},
		{DeliveryOrderStatusInTransit, DeliveryOrderStatusCancelled, true},
		{DeliveryOrderStatusInTransit, DeliveryOrderStatusScheduled, false},
		{DeliveryOrderStatusDelivered, DeliveryOrderStatusCancelled, false},
		{DeliveryOrderStatusDelivered, DeliveryOrderStatusScheduled, false},
		{DeliveryOrderStatusCancelled, DeliveryOrderStatusScheduled, false},
		{DeliveryOrderStatusCancelled, DeliveryOrderStatusInTransit, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestDeliveryOrderStatusIsTerminal(t *testing.T) {
	assert.False(t, DeliveryOrderStatusScheduled.IsTerminal())
	assert.False(t, DeliveryOrderStatusInTransit.IsTerminal())
	assert.True(t, DeliveryOrderStatusDelivered.IsTerminal())
	assert.True(t, DeliveryOrderStatusCancelled.IsTerminal())
}

func TestAlertStatusTransitionsAreForwardOnly(t *testing.T) {
	tests := []struct {
		from    AlertStatus
		to      AlertStatus
		allowed bool
	}{
		{AlertStatusOpen, AlertStatusInProgress, true},
		{AlertStatusOpen, AlertStatusResolved, true},
		{AlertStatusInProgress, AlertStatusResolved, true},
		{AlertStatusInProgress, AlertStatusOpen, false},
		{AlertStatusResolved, AlertStatusOpen, false},
		{AlertStatusResolved, AlertStatusInProgress, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}

	assert.False(t, AlertStatusOpen.IsTerminal())
	assert.False(t, AlertStatusInProgress.IsTerminal())
	assert.True(t, AlertStatusResolved.IsTerminal())
}

func TestInvoiceStatusCanTransitionTo(t *testing.T) {
	assert.True(t, InvoiceStatusUnpaid.CanTransitionTo(InvoiceStatusPaid))
	assert.False(t, InvoiceStatusPaid.CanTransitionTo(InvoiceStatusUnpaid))
	assert.False(t, InvoiceStatusPaid.CanTransitionTo(InvoiceStatusPaid))
}
