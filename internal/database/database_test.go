package database_test

import (
	"testing"

	"github.com/sixink-6/gas-grove-api/internal/database"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func TestHealthCheck(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, database.HealthCheck(db))
}

func TestHealthCheckClosedConnection(t *testing.T) {
	db := openTestDB(t)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	require.Error(t, database.HealthCheck(db))
}

func TestHealthCheckWithStats(t *testing.T) {
	db := openTestDB(t)

	stats, err := database.HealthCheckWithStats(db)
	require.NoError(t, err)
	require.Equal(t, 1, stats.MaxOpenConnections)
}

func TestAutoMigrate(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, database.AutoMigrate(db))
	require.True(t, db.Migrator().HasTable("purchase_orders"))
	require.True(t, db.Migrator().HasTable("audit_logs"))
}
