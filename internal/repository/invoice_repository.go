package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sixink-6/gas-grove-api/internal/domain"
	"github.com/sixink-6/gas-grove-api/internal/pagination"
	"gorm.io/gorm"
)

type InvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

func (r *InvoiceRepository) Create(ctx context.Context, invoice *domain.Invoice) error {
	return r.db.WithContext(ctx).Create(invoice).Error
}

func (r *InvoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := r.db.WithContext(ctx).
		Preload("Client").
		Where("id = ?", id).
		First(&invoice).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *InvoiceRepository) Update(ctx context.Context, invoice *domain.Invoice) error {
	return r.db.WithContext(ctx).Save(invoice).Error
}

// List returns invoices newest first. The search matches the invoice
// number, the client name and the description.
func (r *InvoiceRepository) List(ctx context.Context, page, pageSize int, search string, status domain.InvoiceStatus) ([]domain.Invoice, int64, error) {
	var invoices []domain.Invoice
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Invoice{})

	if search != "" {
		searchPattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(number) LIKE ? OR LOWER(client_name) LIKE ? OR LOWER(description) LIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page = pagination.ClampPage(page, pageSize, total)
	offset := (page - 1) * pageSize
	err := query.Offset(offset).Limit(pageSize).Order("created_at DESC, number DESC").Find(&invoices).Error

	return invoices, total, err
}

// ListOverdue returns unpaid invoices whose due date has passed
func (r *InvoiceRepository) ListOverdue(ctx context.Context, asOf time.Time) ([]domain.Invoice, error) {
	var invoices []domain.Invoice
	err := r.db.WithContext(ctx).
		Where("status = ? AND due_date < ?", domain.InvoiceStatusUnpaid, asOf).
		Order("due_date ASC").
		Find(&invoices).Error
	return invoices, err
}

func (r *InvoiceRepository) CountByStatus(ctx context.Context, status domain.InvoiceStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Invoice{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}
