package jobs

import (
	"context"
	"time"

	"github.com/sixink-6/gas-grove-api/internal/service"
	"go.uber.org/zap"
)

// AuditCleanupJob removes audit log entries older than the configured
// retention period.
type AuditCleanupJob struct {
	auditService  *service.AuditLogService
	retentionDays int
	logger        *zap.Logger
}

func NewAuditCleanupJob(auditService *service.AuditLogService, retentionDays int, logger *zap.Logger) *AuditCleanupJob {
	return &AuditCleanupJob{
		auditService:  auditService,
		retentionDays: retentionDays,
		logger:        logger,
	}
}

// Run performs a single cleanup pass.
func (j *AuditCleanupJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	deleted, err := j.auditService.CleanupOldLogs(ctx, j.retentionDays)
	if err != nil {
		j.logger.Error("audit log cleanup failed", zap.Error(err))
		return
	}

	j.logger.Info("audit log cleanup completed",
		zap.Int64("deleted_count", deleted),
		zap.Int("retention_days", j.retentionDays))
}
