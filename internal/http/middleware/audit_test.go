package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/sixink-6/gas-grove-api/internal/database"
	"github.com/sixink-6/gas-grove-api/internal/domain"
	"github.com/sixink-6/gas-grove-api/internal/http/middleware"
	"github.com/sixink-6/gas-grove-api/internal/repository"
	"github.com/sixink-6/gas-grove-api/internal/service"
)

func newAuditMiddleware(t *testing.T) (*gorm.DB, *middleware.AuditMiddleware) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))

	auditSvc := service.NewAuditLogService(repository.NewAuditLogRepository(db), zap.NewNop())
	return db, middleware.NewAuditMiddleware(auditSvc, nil, zap.NewNop())
}

func countAuditLogs(db *gorm.DB) int64 {
	var count int64
	db.Model(&domain.AuditLog{}).Count(&count)
	return count
}

// The audit write runs after the handler has returned, when the server
// has already cancelled the request context.
func TestAuditSurvivesRequestContextCancel(t *testing.T) {
	db, mw := newAuditMiddleware(t)

	r := chi.NewRouter()
	r.Use(mw.Audit)
	r.Post("/api/v1/clients", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/clients", strings.NewReader(`{"code":"alpha","name":"Company Alpha"}`))
	req = req.WithContext(ctx)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	cancel()

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Eventually(t, func() bool {
		return countAuditLogs(db) == 1
	}, 2*time.Second, 10*time.Millisecond)

	var entry domain.AuditLog
	require.NoError(t, db.First(&entry).Error)
	assert.Equal(t, service.AuditActionCreate, entry.Action)
	assert.Equal(t, "Client", entry.EntityType)
}

func TestAuditSkipsReads(t *testing.T) {
	db, mw := newAuditMiddleware(t)

	r := chi.NewRouter()
	r.Use(mw.Audit)
	r.Get("/api/v1/clients", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/clients", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, countAuditLogs(db))
}
