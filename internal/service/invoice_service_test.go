package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sixink-6/gas-grove-api/internal/domain"
	"github.com/sixink-6/gas-grove-api/internal/service"
)

func TestCreateInvoiceDefaultsDueDate(t *testing.T) {
	db := newTestDB(t)
	svc := newInvoiceService(db)
	client := createTestClient(t, db, "company-alpha", "Company Alpha", true)

	invoiceDate := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	invoice, err := svc.Create(context.Background(), &domain.CreateInvoiceRequest{
		ClientID:         client.ID,
		InvoiceDate:      &invoiceDate,
		Description:      "August gas consumption",
		TotalConsumption: "1.250 m3",
		TotalAmount:      15750000,
	})
	require.NoError(t, err)

	assert.Equal(t, fmt.Sprintf("INV-%d-001", time.Now().Year()), invoice.Number)
	assert.Equal(t, domain.InvoiceStatusUnpaid, invoice.Status)
	assert.Equal(t, "Company Alpha", invoice.ClientName)
	assert.Equal(t, int64(15750000), invoice.TotalAmount)
	assert.Equal(t, invoiceDate.AddDate(0, 0, service.DefaultPaymentTermDays), invoice.DueDate)
	assert.Nil(t, invoice.PaidAt)
}

func TestCreateInvoiceExplicitDueDate(t *testing.T) {
	db := newTestDB(t)
	svc := newInvoiceService(db)
	client := createTestClient(t, db, "company-alpha", "Company Alpha", true)

	dueDate := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)
	invoice, err := svc.Create(context.Background(), &domain.CreateInvoiceRequest{
		ClientID:    client.ID,
		DueDate:     &dueDate,
		TotalAmount: 5000000,
	})
	require.NoError(t, err)
	assert.Equal(t, dueDate, invoice.DueDate)
}

func TestCreateInvoiceValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newInvoiceService(db)
	client := createTestClient(t, db, "company-alpha", "Company Alpha", true)
	ctx := context.Background()

	_, err := svc.Create(ctx, &domain.CreateInvoiceRequest{ClientID: client.ID, TotalAmount: 0})
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	_, err = svc.Create(ctx, &domain.CreateInvoiceRequest{ClientID: client.ID, TotalAmount: -100})
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	_, err = svc.Create(ctx, &domain.CreateInvoiceRequest{ClientID: uuid.New(), TotalAmount: 100})
	assert.ErrorIs(t, err, service.ErrClientNotFound)
}

func TestPayInvoice(t *testing.T) {
	db := newTestDB(t)
	svc := newInvoiceService(db)
	client := createTestClient(t, db, "company-alpha", "Company Alpha", true)
	ctx := context.Background()

	invoice, err := svc.Create(ctx, &domain.CreateInvoiceRequest{ClientID: client.ID, TotalAmount: 5000000})
	require.NoError(t, err)

	paid, err := svc.Pay(ctx, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusPaid, paid.Status)
	require.NotNil(t, paid.PaidAt)
	assert.WithinDuration(t, time.Now(), *paid.PaidAt, time.Minute)

	_, err = svc.Pay(ctx, invoice.ID)
	assert.ErrorIs(t, err, service.ErrInvoiceAlreadyPaid)
}

func TestPayInvoiceNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newInvoiceService(db)

	_, err := svc.Pay(context.Background(), uuid.New())
	assert.ErrorIs(t, err, service.ErrInvoiceNotFound)
}

func TestListOverdueInvoices(t *testing.T) {
	db := newTestDB(t)
	svc := newInvoiceService(db)
	client := createTestClient(t, db, "company-alpha", "Company Alpha", true)
	ctx := context.Background()

	pastDue := time.Now().AddDate(0, 0, -5)
	futureDue := time.Now().AddDate(0, 0, 10)

	overdue, err := svc.Create(ctx, &domain.CreateInvoiceRequest{ClientID: client.ID, DueDate: &pastDue, TotalAmount: 100})
	require.NoError(t, err)

	_, err = svc.Create(ctx, &domain.CreateInvoiceRequest{ClientID: client.ID, DueDate: &futureDue, TotalAmount: 200})
	require.NoError(t, err)

	paidLate, err := svc.Create(ctx, &domain.CreateInvoiceRequest{ClientID: client.ID, DueDate: &pastDue, TotalAmount: 300})
	require.NoError(t, err)
	_, err = svc.Pay(ctx, paidLate.ID)
	require.NoError(t, err)

	invoices, err := svc.ListOverdue(ctx)
	require.NoError(t, err)
	require.Len(t, invoices, 1)
	assert.Equal(t, overdue.Number, invoices[0].Number)
}

func TestListInvoices(t *testing.T) {
	db := newTestDB(t)
	svc := newInvoiceService(db)
	client := createTestClient(t, db, "company-alpha", "Company Alpha", true)
	ctx := context.Background()

	first, err := svc.Create(ctx, &domain.CreateInvoiceRequest{ClientID: client.ID, TotalAmount: 100})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &domain.CreateInvoiceRequest{ClientID: client.ID, TotalAmount: 200})
	require.NoError(t, err)

	_, err = svc.Pay(ctx, first.ID)
	require.NoError(t, err)

	invoices, total, err := svc.List(ctx, 1, 10, "", domain.InvoiceStatusPaid)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, invoices, 1)
	assert.Equal(t, first.Number, invoices[0].Number)

	_, _, err = svc.List(ctx, 1, 10, "", domain.InvoiceStatus("void"))
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestListInvoicesClampsStalePage(t *testing.T) {
	db := newTestDB(t)
	svc := newInvoiceService(db)
	client := createTestClient(t, db, "company-alpha", "Company Alpha", true)
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		_, err := svc.Create(ctx, &domain.CreateInvoiceRequest{ClientID: client.ID, TotalAmount: 100})
		require.NoError(t, err)
	}

	// A page past the end resolves to the last page instead of coming
	// back empty.
	invoices, total, err := svc.List(ctx, 3, 5, "", "")
	require.NoError(t, err)
	assert.Equal(t, int64(7), total)
	require.Len(t, invoices, 2)
	year := time.Now().Year()
	assert.Equal(t, fmt.Sprintf("INV-%d-002", year), invoices[0].Number)
	assert.Equal(t, fmt.Sprintf("INV-%d-001", year), invoices[1].Number)

	// A negative page resolves to the first.
	invoices, _, err = svc.List(ctx, -1, 5, "", "")
	require.NoError(t, err)
	require.Len(t, invoices, 5)
}
