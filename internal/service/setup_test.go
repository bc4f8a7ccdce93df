package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/sixink-6/gas-grove-api/internal/database"
	"github.com/sixink-6/gas-grove-api/internal/domain"
	"github.com/sixink-6/gas-grove-api/internal/repository"
	"github.com/sixink-6/gas-grove-api/internal/service"
	"github.com/sixink-6/gas-grove-api/internal/storage"
)

// newTestDB opens an isolated in-memory database with the full schema.
// The pool is pinned to a single connection so every query sees the
// same in-memory database.
func newTestDB(t *testing.T) *gorm.DB {
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

	return db
}

func createTestClient(t *testing.T, db *gorm.DB, code, name string, active bool) *domain.Client {
	t.Helper()

	client := &domain.Client{
		Code:    code,
		Name:    name,
		Address: "Jl. Gatot Subroto 12, Jakarta",
		Phone:   "+62-21-555-0101",
		Email:   code + "@example.com",
		Active:  active,
	}
	require.NoError(t, db.WithContext(context.Background()).Create(client).Error)

	// The column default re-activates a zero-value Active on insert, so
	// inactive fixtures need an explicit update.
	if !active {
		require.NoError(t, db.Model(client).Update("active", false).Error)
	}
	return client
}

func newNumberService(db *gorm.DB) *service.NumberSequenceService {
	return service.NewNumberSequenceService(repository.NewNumberSequenceRepository(db), zap.NewNop())
}

func newPurchaseOrderService(db *gorm.DB) *service.PurchaseOrderService {
	return service.NewPurchaseOrderService(
		repository.NewPurchaseOrderRepository(db),
		repository.NewDeliveryOrderRepository(db),
		repository.NewClientRepository(db),
		newNumberService(db),
		zap.NewNop(),
	)
}

func newFileService(t *testing.T, db *gorm.DB) *service.FileService {
	t.Helper()

	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	return service.NewFileService(repository.NewFileRepository(db), store, zap.NewNop())
}

func newDeliveryOrderService(t *testing.T, db *gorm.DB) *service.DeliveryOrderService {
	t.Helper()

	return service.NewDeliveryOrderService(
		repository.NewDeliveryOrderRepository(db),
		newFileService(t, db),
		zap.NewNop(),
	)
}

func newInvoiceService(db *gorm.DB) *service.InvoiceService {
	return service.NewInvoiceService(
		repository.NewInvoiceRepository(db),
		repository.NewClientRepository(db),
		newNumberService(db),
		zap.NewNop(),
	)
}

func newAlertService(db *gorm.DB) *service.AlertService {
	return service.NewAlertService(
		repository.NewAlertRepository(db),
		newNumberService(db),
		zap.NewNop(),
	)
}
