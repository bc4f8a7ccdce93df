package service_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sixink-6/gas-grove-api/internal/domain"
	"github.com/sixink-6/gas-grove-api/internal/service"
)

// newScheduledDelivery creates a client and an approved purchase order,
// returning the spawned delivery order.
func newScheduledDelivery(t *testing.T, db *gorm.DB) (*domain.DeliveryOrder, *domain.PurchaseOrder) {
	t.Helper()

	poSvc := newPurchaseOrderService(db)
	client := createTestClient(t, db, "company-alpha", "Company Alpha", true)
	ctx := context.Background()

	order, err := poSvc.Create(ctx, &domain.CreatePurchaseOrderRequest{
		ClientID:     client.ID,
		DeliveryDate: time.Now().AddDate(0, 0, 2),
		Items: []domain.CreatePurchaseOrderItemRequest{
			{Name: "LPG 50kg", Quantity: 2, Price: 450000},
		},
	})
	require.NoError(t, err)

	approved, delivery, err := poSvc.Approve(ctx, order.ID)
	require.NoError(t, err)

	return delivery, approved
}

func validVerifyRequest() *domain.VerifyDeliveryRequest {
	return &domain.VerifyDeliveryRequest{
		DriverName:    "Budi Santoso",
		DriverPhone:   "+62-812-5550-123",
		ReceiverName:  "Siti Rahma",
		ReceiverPhone: "+62-813-5550-456",
		Notes:         "delivered to the east warehouse",
	}
}

func proofImage(size int64, contentType string) *service.DeliveryImage {
	buf := make([]byte, 16)
	return &service.DeliveryImage{
		FileName:    "proof.png",
		ContentType: contentType,
		Size:        size,
		Data:        bytes.NewReader(buf),
	}
}

func TestDispatchDeliveryOrder(t *testing.T) {
	db := newTestDB(t)
	svc := newDeliveryOrderService(t, db)
	delivery, _ := newScheduledDelivery(t, db)
	ctx := context.Background()

	dispatched, err := svc.Dispatch(ctx, delivery.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DeliveryOrderStatusInTransit, dispatched.Status)

	_, err = svc.Dispatch(ctx, delivery.ID)
	assert.ErrorIs(t, err, service.ErrInvalidTransition)
}

func TestVerifyDeliveryOrder(t *testing.T) {
	db := newTestDB(t)
	svc := newDeliveryOrderService(t, db)
	delivery, po := newScheduledDelivery(t, db)
	ctx := context.Background()

	_, err := svc.Dispatch(ctx, delivery.ID)
	require.NoError(t, err)

	req := validVerifyRequest()
	req.DriverName = "  Budi Santoso  "
	verified, err := svc.Verify(ctx, delivery.ID, req, proofImage(2048, "image/png"), "admin@gasgrove.io")
	require.NoError(t, err)

	assert.Equal(t, domain.DeliveryOrderStatusDelivered, verified.Status)
	require.NotNil(t, verified.Verification)
	assert.Equal(t, "Budi Santoso", verified.Verification.DriverName)
	assert.Equal(t, "admin@gasgrove.io", verified.Verification.VerifiedBy)
	assert.NotEqual(t, uuid.Nil, verified.Verification.ImageFileID)

	// The purchase order follows its delivery into delivered.
	reloadedPO, err := newPurchaseOrderService(db).GetByID(ctx, po.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PurchaseOrderStatusDelivered, reloadedPO.Status)

	// The verification survives a reload with the image reference intact.
	reloaded, err := svc.GetByID(ctx, delivery.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.Verification)
	assert.Equal(t, verified.Verification.ImageFileID, reloaded.Verification.ImageFileID)
}

func TestVerifyFromScheduledSkipsTransit(t *testing.T) {
	db := newTestDB(t)
	svc := newDeliveryOrderService(t, db)
	delivery, _ := newScheduledDelivery(t, db)

	verified, err := svc.Verify(context.Background(), delivery.ID, validVerifyRequest(), proofImage(2048, "image/jpeg"), "system")
	require.NoError(t, err)
	assert.Equal(t, domain.DeliveryOrderStatusDelivered, verified.Status)
}

func TestVerifyFailureLeavesStatusUnchanged(t *testing.T) {
	db := newTestDB(t)
	svc := newDeliveryOrderService(t, db)
	delivery, po := newScheduledDelivery(t, db)
	ctx := context.Background()

	tests := []struct {
		name    string
		req     *domain.VerifyDeliveryRequest
		image   *service.DeliveryImage
		wantErr error
	}{
		{
			name:    "missing image",
			req:     validVerifyRequest(),
			image:   nil,
			wantErr: service.ErrImageRequired,
		},
		{
			name:    "oversized image",
			req:     validVerifyRequest(),
			image:   proofImage(service.MaxDeliveryImageSize+1, "image/png"),
			wantErr: service.ErrImageTooLarge,
		},
		{
			name:    "unsupported image type",
			req:     validVerifyRequest(),
			image:   proofImage(2048, "application/pdf"),
			wantErr: service.ErrUnsupportedImageType,
		},
		{
			name: "driver name too short",
			req: func() *domain.VerifyDeliveryRequest {
				r := validVerifyRequest()
				r.DriverName = "B"
				return r
			}(),
			image:   proofImage(2048, "image/png"),
			wantErr: service.ErrInvalidInput,
		},
		{
			name: "receiver phone too short",
			req: func() *domain.VerifyDeliveryRequest {
				r := validVerifyRequest()
				r.ReceiverPhone = "081"
				return r
			}(),
			image:   proofImage(2048, "image/png"),
			wantErr: service.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Verify(ctx, delivery.ID, tt.req, tt.image, "system")
			assert.ErrorIs(t, err, tt.wantErr)

			reloaded, err := svc.GetByID(ctx, delivery.ID)
			require.NoError(t, err)
			assert.Equal(t, domain.DeliveryOrderStatusScheduled, reloaded.Status)
			assert.Nil(t, reloaded.Verification)
		})
	}

	// The purchase order never moved either.
	reloadedPO, err := newPurchaseOrderService(db).GetByID(ctx, po.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PurchaseOrderStatusApproved, reloadedPO.Status)
}

func TestVerifyAcceptsContentTypeParameters(t *testing.T) {
	db := newTestDB(t)
	svc := newDeliveryOrderService(t, db)
	delivery, _ := newScheduledDelivery(t, db)

	verified, err := svc.Verify(context.Background(), delivery.ID, validVerifyRequest(), proofImage(2048, "image/webp; charset=binary"), "system")
	require.NoError(t, err)
	assert.Equal(t, domain.DeliveryOrderStatusDelivered, verified.Status)
}

func TestVerifyTwice(t *testing.T) {
	db := newTestDB(t)
	svc := newDeliveryOrderService(t, db)
	delivery, _ := newScheduledDelivery(t, db)
	ctx := context.Background()

	_, err := svc.Verify(ctx, delivery.ID, validVerifyRequest(), proofImage(2048, "image/png"), "system")
	require.NoError(t, err)

	_, err = svc.Verify(ctx, delivery.ID, validVerifyRequest(), proofImage(2048, "image/png"), "system")
	assert.ErrorIs(t, err, service.ErrAlreadyVerified)
}

func TestVerifyCancelledDelivery(t *testing.T) {
	db := newTestDB(t)
	svc := newDeliveryOrderService(t, db)
	delivery, _ := newScheduledDelivery(t, db)
	ctx := context.Background()

	_, err := svc.Cancel(ctx, delivery.ID)
	require.NoError(t, err)

	_, err = svc.Verify(ctx, delivery.ID, validVerifyRequest(), proofImage(2048, "image/png"), "system")
	assert.ErrorIs(t, err, service.ErrInvalidTransition)
}

func TestCancelDeliveryOrder(t *testing.T) {
	db := newTestDB(t)
	svc := newDeliveryOrderService(t, db)
	delivery, _ := newScheduledDelivery(t, db)
	ctx := context.Background()

	cancelled, err := svc.Cancel(ctx, delivery.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DeliveryOrderStatusCancelled, cancelled.Status)

	_, err = svc.Cancel(ctx, delivery.ID)
	assert.ErrorIs(t, err, service.ErrInvalidTransition)
}

func TestGetDeliveryOrderLoadsOrderLines(t *testing.T) {
	db := newTestDB(t)
	svc := newDeliveryOrderService(t, db)
	delivery, po := newScheduledDelivery(t, db)

	loaded, err := svc.GetByID(context.Background(), delivery.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded.PurchaseOrder)
	assert.Equal(t, po.Number, loaded.PurchaseOrder.Number)
	require.Len(t, loaded.PurchaseOrder.Items, 1)
	assert.Equal(t, "LPG 50kg", loaded.PurchaseOrder.Items[0].Name)
}

func TestGetDeliveryOrderNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newDeliveryOrderService(t, db)

	_, err := svc.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, service.ErrDeliveryOrderNotFound)
}

func TestListDeliveryOrders(t *testing.T) {
	db := newTestDB(t)
	svc := newDeliveryOrderService(t, db)
	delivery, po := newScheduledDelivery(t, db)
	ctx := context.Background()

	orders, total, err := svc.List(ctx, 1, 10, "", "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, orders, 1)
	assert.Equal(t, delivery.Number, orders[0].Number)

	// The source purchase order number is searchable too.
	_, total, err = svc.List(ctx, 1, 10, po.Number, "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	_, total, err = svc.List(ctx, 1, 10, "no-such-order", "")
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)

	_, _, err = svc.List(ctx, 1, 10, "", domain.DeliveryOrderStatus("lost"))
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}
