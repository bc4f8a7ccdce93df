package service_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sixink-6/gas-grove-api/internal/auth"
	"github.com/sixink-6/gas-grove-api/internal/repository"
	"github.com/sixink-6/gas-grove-api/internal/service"
)

func TestAuditLogCapturesUserAndRequest(t *testing.T) {
	db := newTestDB(t)
	svc := service.NewAuditLogService(repository.NewAuditLogRepository(db), zap.NewNop())

	userID := uuid.New()
	ctx := auth.WithUserContext(context.Background(), &auth.UserContext{
		UserID: userID,
		Email:  "admin@gasgrove.io",
	})

	r := httptest.NewRequest("POST", "/api/v1/purchase-orders", nil)
	r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")

	entityID := uuid.New().String()
	err := svc.Log(ctx, r, service.LogEntry{
		Action:     service.AuditActionCreate,
		EntityType: "PurchaseOrder",
		EntityID:   entityID,
		EntityName: "PO-2026-001",
		NewValues:  map[string]string{"status": "pending"},
	})
	require.NoError(t, err)

	logs, total, err := svc.List(ctx, service.AuditLogQueryParams{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, logs, 1)

	entry := logs[0]
	require.NotNil(t, entry.UserID)
	assert.Equal(t, userID, *entry.UserID)
	assert.Equal(t, "admin@gasgrove.io", entry.UserEmail)
	assert.Equal(t, service.AuditActionCreate, entry.Action)
	assert.Equal(t, "203.0.113.7", entry.IPAddress)
	assert.JSONEq(t, `{"status":"pending"}`, entry.NewValues)
	assert.Equal(t, "null", entry.OldValues)
}

func TestAuditLogListFilters(t *testing.T) {
	db := newTestDB(t)
	svc := service.NewAuditLogService(repository.NewAuditLogRepository(db), zap.NewNop())
	ctx := context.Background()

	poID := uuid.New().String()
	invID := uuid.New().String()

	require.NoError(t, svc.Log(ctx, nil, service.LogEntry{
		Action:     service.AuditActionCreate,
		EntityType: "PurchaseOrder",
		EntityID:   poID,
	}))
	require.NoError(t, svc.Log(ctx, nil, service.LogEntry{
		Action:     service.AuditActionApprove,
		EntityType: "PurchaseOrder",
		EntityID:   poID,
	}))
	require.NoError(t, svc.Log(ctx, nil, service.LogEntry{
		Action:     service.AuditActionCreate,
		EntityType: "Invoice",
		EntityID:   invID,
	}))

	_, total, err := svc.List(ctx, service.AuditLogQueryParams{Action: service.AuditActionCreate, Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	_, total, err = svc.List(ctx, service.AuditLogQueryParams{EntityType: "Invoice", Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	trail, err := svc.GetByEntity(ctx, "PurchaseOrder", poID, 50)
	require.NoError(t, err)
	assert.Len(t, trail, 2)
}

func TestCleanupOldLogs(t *testing.T) {
	db := newTestDB(t)
	svc := service.NewAuditLogService(repository.NewAuditLogRepository(db), zap.NewNop())
	ctx := context.Background()

	require.NoError(t, svc.Log(ctx, nil, service.LogEntry{
		Action:     service.AuditActionCreate,
		EntityType: "Alert",
		EntityID:   uuid.New().String(),
	}))

	// A fresh entry is inside any sane retention window.
	deleted, err := svc.CleanupOldLogs(ctx, 90)
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted)

	// A negative retention pushes the cutoff into the future and
	// sweeps everything.
	deleted, err = svc.CleanupOldLogs(ctx, -1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, total, err := svc.List(ctx, service.AuditLogQueryParams{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}
