package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sixink-6/gas-grove-api/internal/service"
)

func TestGenerateNumbersCountPerPrefix(t *testing.T) {
	db := newTestDB(t)
	svc := newNumberService(db)
	ctx := context.Background()
	year := time.Now().Year()

	first, err := svc.GeneratePurchaseOrderNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("PO-%d-001", year), first)

	second, err := svc.GeneratePurchaseOrderNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("PO-%d-002", year), second)

	// Other prefixes count independently.
	inv, err := svc.GenerateInvoiceNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("INV-%d-001", year), inv)

	alt, err := svc.GenerateAlertNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("ALT-%d-001", year), alt)

	do, err := svc.GenerateDeliveryOrderNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("DO-%d-001", year), do)
}

func TestInitializeSequence(t *testing.T) {
	db := newTestDB(t)
	svc := newNumberService(db)
	ctx := context.Background()
	year := time.Now().Year()

	require.NoError(t, svc.InitializeSequence(ctx, service.PrefixPurchaseOrder, year, 41))

	number, err := svc.GeneratePurchaseOrderNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("PO-%d-042", year), number)

	// Initialization never moves a sequence backwards.
	require.NoError(t, svc.InitializeSequence(ctx, service.PrefixPurchaseOrder, year, 10))

	current, err := svc.GetCurrentSequence(ctx, service.PrefixPurchaseOrder, year)
	require.NoError(t, err)
	assert.Equal(t, 42, current)
}

func TestGetCurrentSequenceWithoutHistory(t *testing.T) {
	db := newTestDB(t)
	svc := newNumberService(db)

	current, err := svc.GetCurrentSequence(context.Background(), service.PrefixInvoice, 2019)
	require.NoError(t, err)
	assert.Equal(t, 0, current)
}

func TestSequenceGrowsPastThreeDigits(t *testing.T) {
	db := newTestDB(t)
	svc := newNumberService(db)
	ctx := context.Background()
	year := time.Now().Year()

	require.NoError(t, svc.InitializeSequence(ctx, service.PrefixAlert, year, 999))

	number, err := svc.GenerateAlertNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("ALT-%d-1000", year), number)
}

func TestValidateNumber(t *testing.T) {
	svc := newNumberService(newTestDB(t))

	tests := []struct {
		number string
		valid  bool
	}{
		{"PO-2026-001", true},
		{"DO-2026-042", true},
		{"INV-2026-1000", true},
		{"ALT-2026-007", true},
		{"po-2026-001", false},
		{"PO-26-001", false},
		{"PO-2026-01", false},
		{"PO2026001", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.valid, svc.ValidateNumber(tt.number), "ValidateNumber(%q)", tt.number)
	}
}

func TestListSequences(t *testing.T) {
	db := newTestDB(t)
	svc := newNumberService(db)
	ctx := context.Background()

	_, err := svc.GeneratePurchaseOrderNumber(ctx)
	require.NoError(t, err)
	_, err = svc.GenerateDeliveryOrderNumber(ctx)
	require.NoError(t, err)
	_, err = svc.GenerateInvoiceNumber(ctx)
	require.NoError(t, err)

	page, err := svc.ListSequences(ctx, 1, 10, "")
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 1, page.TotalPages)
	require.Len(t, page.Items, 3)

	// Prefixes filter case-insensitively.
	page, err = svc.ListSequences(ctx, 1, 10, "po")
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, service.PrefixPurchaseOrder, page.Items[0].Prefix)
	assert.Equal(t, 1, page.Items[0].LastSequence)

	// A stale page reference clamps to the last page.
	page, err = svc.ListSequences(ctx, 5, 2, "")
	require.NoError(t, err)
	assert.Equal(t, 2, page.Page)
	require.Len(t, page.Items, 1)
}
