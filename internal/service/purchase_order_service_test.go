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
	"github.com/sixink-6/gas-grove-api/internal/repository"
	"github.com/sixink-6/gas-grove-api/internal/service"
)

func validOrderRequest(clientID uuid.UUID) *domain.CreatePurchaseOrderRequest {
	return &domain.CreatePurchaseOrderRequest{
		ClientID:     clientID,
		DeliveryDate: time.Now().AddDate(0, 0, 3),
		Items: []domain.CreatePurchaseOrderItemRequest{
			{Name: "LPG 50kg", Quantity: 2, Price: 450000},
		},
	}
}

func TestCreatePurchaseOrderAppliesDefaults(t *testing.T) {
	db := newTestDB(t)
	svc := newPurchaseOrderService(db)
	client := createTestClient(t, db, "company-alpha", "Company Alpha", true)

	order, err := svc.Create(context.Background(), validOrderRequest(client.ID))
	require.NoError(t, err)

	assert.Equal(t, fmt.Sprintf("PO-%d-001", time.Now().Year()), order.Number)
	assert.Equal(t, domain.PurchaseOrderStatusPending, order.Status)
	assert.Equal(t, "Company Alpha", order.ClientName)
	assert.Equal(t, service.DefaultDeliveryFee, order.DeliveryFee)
	assert.Equal(t, service.DefaultTaxRate, order.TaxRate)
	assert.Equal(t, service.DefaultDeliveryTime, order.DeliveryTime)
	assert.Len(t, order.Items, 1)
	assert.NotEqual(t, uuid.Nil, order.ID)
}

func TestCreatePurchaseOrderKeepsExplicitValues(t *testing.T) {
	db := newTestDB(t)
	svc := newPurchaseOrderService(db)
	client := createTestClient(t, db, "company-alpha", "Company Alpha", true)

	fee := 35.0
	rate := 11.0
	req := validOrderRequest(client.ID)
	req.DeliveryFee = &fee
	req.TaxRate = &rate
	req.DeliveryTime = "09:30"
	req.Discount = 50000

	order, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 35.0, order.DeliveryFee)
	assert.Equal(t, 11.0, order.TaxRate)
	assert.Equal(t, "09:30", order.DeliveryTime)
	assert.Equal(t, 50000.0, order.Discount)
}

func TestCreatePurchaseOrderValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newPurchaseOrderService(db)
	client := createTestClient(t, db, "company-alpha", "Company Alpha", true)

	badFee := -1.0
	badRate := 150.0

	tests := []struct {
		name   string
		mutate func(*domain.CreatePurchaseOrderRequest)
	}{
		{"missing client id", func(r *domain.CreatePurchaseOrderRequest) { r.ClientID = uuid.Nil }},
		{"no items", func(r *domain.CreatePurchaseOrderRequest) { r.Items = nil }},
		{"zero quantity", func(r *domain.CreatePurchaseOrderRequest) { r.Items[0].Quantity = 0 }},
		{"negative price", func(r *domain.CreatePurchaseOrderRequest) { r.Items[0].Price = -10 }},
		{"unnamed item", func(r *domain.CreatePurchaseOrderRequest) { r.Items[0].Name = "" }},
		{"negative discount", func(r *domain.CreatePurchaseOrderRequest) { r.Discount = -5 }},
		{"negative delivery fee", func(r *domain.CreatePurchaseOrderRequest) { r.DeliveryFee = &badFee }},
		{"tax rate above 100", func(r *domain.CreatePurchaseOrderRequest) { r.TaxRate = &badRate }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validOrderRequest(client.ID)
			tt.mutate(req)

			_, err := svc.Create(context.Background(), req)
			assert.ErrorIs(t, err, service.ErrInvalidInput)
		})
	}
}

func TestCreatePurchaseOrderClientChecks(t *testing.T) {
	db := newTestDB(t)
	svc := newPurchaseOrderService(db)
	inactive := createTestClient(t, db, "dormant", "Dormant Site", false)

	var stored domain.Client
	require.NoError(t, db.First(&stored, "id = ?", inactive.ID).Error)
	require.False(t, stored.Active)

	_, err := svc.Create(context.Background(), validOrderRequest(uuid.New()))
	assert.ErrorIs(t, err, service.ErrClientNotFound)

	_, err = svc.Create(context.Background(), validOrderRequest(inactive.ID))
	assert.ErrorIs(t, err, service.ErrClientInactive)
}

func TestClientNameSnapshotSurvivesRename(t *testing.T) {
	db := newTestDB(t)
	svc := newPurchaseOrderService(db)
	client := createTestClient(t, db, "company-alpha", "Company Alpha", true)
	ctx := context.Background()

	order, err := svc.Create(ctx, validOrderRequest(client.ID))
	require.NoError(t, err)

	client.Name = "Company Alpha Renamed"
	require.NoError(t, repository.NewClientRepository(db).Update(ctx, client))

	reloaded, err := svc.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "Company Alpha", reloaded.ClientName)
}

func TestApprovePurchaseOrderSpawnsDelivery(t *testing.T) {
	db := newTestDB(t)
	svc := newPurchaseOrderService(db)
	client := createTestClient(t, db, "company-alpha", "Company Alpha", true)
	ctx := context.Background()

	req := validOrderRequest(client.ID)
	req.DeliveryAddress = "Gudang Timur, Bekasi"
	order, err := svc.Create(ctx, req)
	require.NoError(t, err)

	approved, delivery, err := svc.Approve(ctx, order.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.PurchaseOrderStatusApproved, approved.Status)
	assert.Equal(t, fmt.Sprintf("DO-%d-001", time.Now().Year()), delivery.Number)
	assert.Equal(t, domain.DeliveryOrderStatusScheduled, delivery.Status)
	assert.Equal(t, order.ID, delivery.PurchaseOrderID)
	assert.Equal(t, order.ClientID, delivery.ClientID)
	assert.Equal(t, order.ClientName, delivery.ClientName)
	assert.Equal(t, order.DeliveryTime, delivery.DeliveryTime)
	assert.Equal(t, "Gudang Timur, Bekasi", delivery.DeliveryAddress)

	// Approval is persisted, not just reflected on the returned value.
	reloaded, err := svc.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PurchaseOrderStatusApproved, reloaded.Status)

	_, _, err = svc.Approve(ctx, order.ID)
	assert.ErrorIs(t, err, service.ErrInvalidTransition)
}

func TestApproveCancelledPurchaseOrder(t *testing.T) {
	db := newTestDB(t)
	svc := newPurchaseOrderService(db)
	client := createTestClient(t, db, "company-alpha", "Company Alpha", true)
	ctx := context.Background()

	order, err := svc.Create(ctx, validOrderRequest(client.ID))
	require.NoError(t, err)

	_, err = svc.Cancel(ctx, order.ID)
	require.NoError(t, err)

	_, _, err = svc.Approve(ctx, order.ID)
	assert.ErrorIs(t, err, service.ErrInvalidTransition)
}

func TestCancelPurchaseOrder(t *testing.T) {
	db := newTestDB(t)
	svc := newPurchaseOrderService(db)
	client := createTestClient(t, db, "company-alpha", "Company Alpha", true)
	ctx := context.Background()

	order, err := svc.Create(ctx, validOrderRequest(client.ID))
	require.NoError(t, err)

	cancelled, err := svc.Cancel(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PurchaseOrderStatusCancelled, cancelled.Status)

	_, err = svc.Cancel(ctx, order.ID)
	assert.ErrorIs(t, err, service.ErrInvalidTransition)
}

func TestListPurchaseOrders(t *testing.T) {
	db := newTestDB(t)
	svc := newPurchaseOrderService(db)
	alpha := createTestClient(t, db, "company-alpha", "Company Alpha", true)
	acme := createTestClient(t, db, "acme-industries", "Acme Industries", true)
	ctx := context.Background()

	first, err := svc.Create(ctx, validOrderRequest(alpha.ID))
	require.NoError(t, err)
	second, err := svc.Create(ctx, validOrderRequest(acme.ID))
	require.NoError(t, err)
	third, err := svc.Create(ctx, validOrderRequest(alpha.ID))
	require.NoError(t, err)

	t.Run("newest first", func(t *testing.T) {
		orders, total, err := svc.List(ctx, 1, 10, "", "")
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, orders, 3)
		assert.Equal(t, third.Number, orders[0].Number)
		assert.Equal(t, first.Number, orders[2].Number)
	})

	t.Run("search matches client name case-insensitively", func(t *testing.T) {
		orders, total, err := svc.List(ctx, 1, 10, "ACME", "")
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, orders, 1)
		assert.Equal(t, second.Number, orders[0].Number)
	})

	t.Run("search matches order number", func(t *testing.T) {
		_, total, err := svc.List(ctx, 1, 10, "po-", "")
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
	})

	t.Run("status filter", func(t *testing.T) {
		_, err := svc.Cancel(ctx, first.ID)
		require.NoError(t, err)

		orders, total, err := svc.List(ctx, 1, 10, "", domain.PurchaseOrderStatusCancelled)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, orders, 1)
		assert.Equal(t, first.Number, orders[0].Number)
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		_, _, err := svc.List(ctx, 1, 10, "", domain.PurchaseOrderStatus("archived"))
		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})
}
