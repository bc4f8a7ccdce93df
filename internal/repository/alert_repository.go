package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sixink-6/gas-grove-api/internal/domain"
	"github.com/sixink-6/gas-grove-api/internal/pagination"
	"gorm.io/gorm"
)

type AlertRepository struct {
	db *gorm.DB
}

func NewAlertRepository(db *gorm.DB) *AlertRepository {
	return &AlertRepository{db: db}
}

func (r *AlertRepository) Create(ctx context.Context, alert *domain.Alert) error {
	return r.db.WithContext(ctx).Create(alert).Error
}

func (r *AlertRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Alert, error) {
	var alert domain.Alert
	err := r.db.WithContext(ctx).
		Preload("Client").
		Where("id = ?", id).
		First(&alert).Error
	if err != nil {
		return nil, err
	}
	return &alert, nil
}

func (r *AlertRepository) Update(ctx context.Context, alert *domain.Alert) error {
	return r.db.WithContext(ctx).Save(alert).Error
}

// List returns alerts newest first. The search matches the alert
// number, description and type.
func (r *AlertRepository) List(ctx context.Context, page, pageSize int, search string, status domain.AlertStatus, severity domain.AlertSeverity) ([]domain.Alert, int64, error) {
	var alerts []domain.Alert
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Alert{})

	if search != "" {
		searchPattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(number) LIKE ? OR LOWER(description) LIKE ? OR LOWER(alert_type) LIKE ?",
			searchPattern, searchPattern, searchPattern,
		)
	}

	if status != "" {
		query = query.Where("status = ?", status)
	}

	if severity != "" {
		query = query.Where("severity = ?", severity)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page = pagination.ClampPage(page, pageSize, total)
	offset := (page - 1) * pageSize
	err := query.Offset(offset).Limit(pageSize).Order("created_at DESC, number DESC").Find(&alerts).Error

	return alerts, total, err
}

func (r *AlertRepository) CountByStatus(ctx context.Context, status domain.AlertStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Alert{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

func (r *AlertRepository) CountBySeverity(ctx context.Context, severity domain.AlertSeverity) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Alert{}).
		Where("severity = ?", severity).
		Count(&count).Error
	return count, err
}

func (r *AlertRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Alert{}).Count(&count).Error
	return count, err
}
