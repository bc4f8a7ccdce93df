package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sixink-6/gas-grove-api/internal/domain"
	"github.com/sixink-6/gas-grove-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultPaymentTermDays is added to the invoice date when no due date
// is supplied
const DefaultPaymentTermDays = 15

// InvoiceService handles billing documents. Amounts come from the
// operator and are stored in minor currency units; nothing here
// computes them from orders or consumption.
type InvoiceService struct {
	repo       *repository.InvoiceRepository
	clientRepo *repository.ClientRepository
	numberSvc  *NumberSequenceService
	logger     *zap.Logger
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	repo *repository.InvoiceRepository,
	clientRepo *repository.ClientRepository,
	numberSvc *NumberSequenceService,
	logger *zap.Logger,
) *InvoiceService {
	return &InvoiceService{
		repo:       repo,
		clientRepo: clientRepo,
		numberSvc:  numberSvc,
		logger:     logger,
	}
}

// Create stores a new unpaid invoice. The due date defaults to the
// invoice date plus the standard payment term.
func (s *InvoiceService) Create(ctx context.Context, req *domain.CreateInvoiceRequest) (*domain.Invoice, error) {
	if req.TotalAmount <= 0 {
		return nil, fmt.Errorf("%w: total amount must be positive", ErrInvalidInput)
	}

	client, err := s.clientRepo.GetByID(ctx, req.ClientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	number, err := s.numberSvc.GenerateInvoiceNumber(ctx)
	if err != nil {
		return nil, err
	}

	invoiceDate := time.Now()
	if req.InvoiceDate != nil {
		invoiceDate = *req.InvoiceDate
	}

	dueDate := invoiceDate.AddDate(0, 0, DefaultPaymentTermDays)
	if req.DueDate != nil {
		dueDate = *req.DueDate
	}

	invoice := &domain.Invoice{
		Number:           number,
		ClientID:         client.ID,
		ClientName:       client.Name,
		InvoiceDate:      invoiceDate,
		DueDate:          dueDate,
		Description:      req.Description,
		TotalConsumption: req.TotalConsumption,
		TotalAmount:      req.TotalAmount,
		Status:           domain.InvoiceStatusUnpaid,
	}

	if err := s.repo.Create(ctx, invoice); err != nil {
		s.logger.Error("failed to create invoice",
			zap.String("number", number),
			zap.Error(err))
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	s.logger.Info("invoice created",
		zap.String("number", invoice.Number),
		zap.String("clientName", invoice.ClientName),
		zap.Int64("totalAmount", invoice.TotalAmount))

	return invoice, nil
}

// GetByID retrieves an invoice
func (s *InvoiceService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	invoice, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	return invoice, nil
}

// List returns invoices newest first, filtered by a case-insensitive
// search over the invoice number, client name and description
func (s *InvoiceService) List(ctx context.Context, page, pageSize int, search string, status domain.InvoiceStatus) ([]domain.Invoice, int64, error) {
	if status != "" && !status.IsValid() {
		return nil, 0, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}

	invoices, total, err := s.repo.List(ctx, page, pageSize, search, status)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list invoices: %w", err)
	}
	return invoices, total, nil
}

// Pay marks an unpaid invoice as paid and records when
func (s *InvoiceService) Pay(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	invoice, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if invoice.Status == domain.InvoiceStatusPaid {
		return nil, ErrInvoiceAlreadyPaid
	}

	now := time.Now()
	invoice.Status = domain.InvoiceStatusPaid
	invoice.PaidAt = &now

	if err := s.repo.Update(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to mark invoice paid: %w", err)
	}

	s.logger.Info("invoice paid", zap.String("number", invoice.Number))

	return invoice, nil
}

// ListOverdue returns unpaid invoices past their due date. Used by the
// overdue scan job and the dashboard.
func (s *InvoiceService) ListOverdue(ctx context.Context) ([]domain.Invoice, error) {
	invoices, err := s.repo.ListOverdue(ctx, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to list overdue invoices: %w", err)
	}
	return invoices, nil
}
