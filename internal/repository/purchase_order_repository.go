package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sixink-6/gas-grove-api/internal/domain"
	"github.com/sixink-6/gas-grove-api/internal/pagination"
	"gorm.io/gorm"
)

type PurchaseOrderRepository struct {
	db *gorm.DB
}

func NewPurchaseOrderRepository(db *gorm.DB) *PurchaseOrderRepository {
	return &PurchaseOrderRepository{db: db}
}

// Create stores the order together with its items in one transaction
func (r *PurchaseOrderRepository) Create(ctx context.Context, order *domain.PurchaseOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *PurchaseOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.PurchaseOrder, error) {
	var order domain.PurchaseOrder
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Client").
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *PurchaseOrderRepository) GetByNumber(ctx context.Context, number string) (*domain.PurchaseOrder, error) {
	var order domain.PurchaseOrder
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("number = ?", number).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *PurchaseOrderRepository) Update(ctx context.Context, order *domain.PurchaseOrder) error {
	return r.db.WithContext(ctx).Save(order).Error
}

// UpdateStatus changes only the status column, leaving line items untouched
func (r *PurchaseOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.PurchaseOrderStatus) error {
	return r.db.WithContext(ctx).
		Model(&domain.PurchaseOrder{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// List returns orders newest first. The search matches the order number
// and the client name captured at creation time.
func (r *PurchaseOrderRepository) List(ctx context.Context, page, pageSize int, search string, status domain.PurchaseOrderStatus) ([]domain.PurchaseOrder, int64, error) {
	var orders []domain.PurchaseOrder
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.PurchaseOrder{})

	if search != "" {
		searchPattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(number) LIKE ? OR LOWER(client_name) LIKE ?", searchPattern, searchPattern)
	}

	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page = pagination.ClampPage(page, pageSize, total)
	offset := (page - 1) * pageSize
	err := query.Preload("Items").
		Offset(offset).Limit(pageSize).
		Order("created_at DESC, number DESC").
		Find(&orders).Error

	return orders, total, err
}

func (r *PurchaseOrderRepository) CountByStatus(ctx context.Context, status domain.PurchaseOrderStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.PurchaseOrder{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

// Transaction runs fn inside a database transaction, giving it a
// repository bound to the transactional handle
func (r *PurchaseOrderRepository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}
