package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sixink-6/gas-grove-api/internal/domain"
	"github.com/sixink-6/gas-grove-api/internal/pagination"
	"gorm.io/gorm"
)

type DeliveryOrderRepository struct {
	db *gorm.DB
}

func NewDeliveryOrderRepository(db *gorm.DB) *DeliveryOrderRepository {
	return &DeliveryOrderRepository{db: db}
}

func (r *DeliveryOrderRepository) Create(ctx context.Context, order *domain.DeliveryOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *DeliveryOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.DeliveryOrder, error) {
	var order domain.DeliveryOrder
	err := r.db.WithContext(ctx).
		Preload("PurchaseOrder.Items").
		Preload("Verification").
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *DeliveryOrderRepository) GetByPurchaseOrderID(ctx context.Context, purchaseOrderID uuid.UUID) (*domain.DeliveryOrder, error) {
	var order domain.DeliveryOrder
	err := r.db.WithContext(ctx).
		Preload("Verification").
		Where("purchase_order_id = ?", purchaseOrderID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *DeliveryOrderRepository) Update(ctx context.Context, order *domain.DeliveryOrder) error {
	return r.db.WithContext(ctx).Save(order).Error
}

func (r *DeliveryOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.DeliveryOrderStatus) error {
	return r.db.WithContext(ctx).
		Model(&domain.DeliveryOrder{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// List returns delivery orders newest first. The search matches the
// delivery number, the source purchase order number and the client name.
func (r *DeliveryOrderRepository) List(ctx context.Context, page, pageSize int, search string, status domain.DeliveryOrderStatus) ([]domain.DeliveryOrder, int64, error) {
	var orders []domain.DeliveryOrder
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.DeliveryOrder{})

	if search != "" {
		searchPattern := "%" + strings.ToLower(search) + "%"
		query = query.
			Joins("LEFT JOIN purchase_orders ON purchase_orders.id = delivery_orders.purchase_order_id").
			Where("LOWER(delivery_orders.number) LIKE ? OR LOWER(delivery_orders.client_name) LIKE ? OR LOWER(purchase_orders.number) LIKE ?",
				searchPattern, searchPattern, searchPattern)
	}

	if status != "" {
		query = query.Where("delivery_orders.status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page = pagination.ClampPage(page, pageSize, total)
	offset := (page - 1) * pageSize
	err := query.Preload("PurchaseOrder.Items").
		Preload("Verification").
		Offset(offset).Limit(pageSize).
		Order("delivery_orders.created_at DESC, delivery_orders.number DESC").
		Find(&orders).Error

	return orders, total, err
}

// SaveVerification persists the proof of delivery record
func (r *DeliveryOrderRepository) SaveVerification(ctx context.Context, verification *domain.DeliveryVerification) error {
	return r.db.WithContext(ctx).Create(verification).Error
}

// Transaction runs fn inside a database transaction
func (r *DeliveryOrderRepository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}
