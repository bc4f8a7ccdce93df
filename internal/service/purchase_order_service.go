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

// Defaults applied when a create request leaves the field empty
const (
	DefaultDeliveryFee  = 20.0
	DefaultTaxRate      = 10.0
	DefaultDeliveryTime = "14:00"
)

// PurchaseOrderService handles the purchase order workflow. Approving
// an order spawns its delivery order; an order is marked delivered only
// when that delivery order is verified.
type PurchaseOrderService struct {
	repo         *repository.PurchaseOrderRepository
	deliveryRepo *repository.DeliveryOrderRepository
	clientRepo   *repository.ClientRepository
	numberSvc    *NumberSequenceService
	logger       *zap.Logger
}

// NewPurchaseOrderService creates a new PurchaseOrderService
func NewPurchaseOrderService(
	repo *repository.PurchaseOrderRepository,
	deliveryRepo *repository.DeliveryOrderRepository,
	clientRepo *repository.ClientRepository,
	numberSvc *NumberSequenceService,
	logger *zap.Logger,
) *PurchaseOrderService {
	return &PurchaseOrderService{
		repo:         repo,
		deliveryRepo: deliveryRepo,
		clientRepo:   clientRepo,
		numberSvc:    numberSvc,
		logger:       logger,
	}
}

// Create validates the request, resolves the client and stores the
// order with its items in one transaction. Field defaults follow the
// operational standard: delivery fee 20, tax rate 10%, delivery window
// 14:00. The client name is snapshotted onto the order.
func (s *PurchaseOrderService) Create(ctx context.Context, req *domain.CreatePurchaseOrderRequest) (*domain.PurchaseOrder, error) {
	if err := validateOrderLines(req); err != nil {
		return nil, err
	}

	client, err := s.clientRepo.GetByID(ctx, req.ClientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	if !client.Active {
		return nil, ErrClientInactive
	}

	number, err := s.numberSvc.GeneratePurchaseOrderNumber(ctx)
	if err != nil {
		return nil, err
	}

	poDate := time.Now()
	if req.PoDate != nil {
		poDate = *req.PoDate
	}

	deliveryFee := DefaultDeliveryFee
	if req.DeliveryFee != nil {
		deliveryFee = *req.DeliveryFee
	}

	taxRate := DefaultTaxRate
	if req.TaxRate != nil {
		taxRate = *req.TaxRate
	}

	deliveryTime := req.DeliveryTime
	if deliveryTime == "" {
		deliveryTime = DefaultDeliveryTime
	}

	order := &domain.PurchaseOrder{
		Number:          number,
		ClientID:        client.ID,
		ClientName:      client.Name,
		PoDate:          poDate,
		DeliveryDate:    req.DeliveryDate,
		DeliveryTime:    deliveryTime,
		DeliveryAddress: req.DeliveryAddress,
		PicName:         req.PicName,
		PicPhone:        req.PicPhone,
		Discount:        req.Discount,
		DeliveryFee:     deliveryFee,
		TaxRate:         taxRate,
		Status:          domain.PurchaseOrderStatusPending,
		Notes:           req.Notes,
	}

	for _, item := range req.Items {
		order.Items = append(order.Items, domain.PurchaseOrderItem{
			Name:        item.Name,
			Description: item.Description,
			Quantity:    item.Quantity,
			Price:       item.Price,
		})
	}

	if err := s.repo.Create(ctx, order); err != nil {
		s.logger.Error("failed to create purchase order",
			zap.String("number", number),
			zap.Error(err))
		return nil, fmt.Errorf("failed to create purchase order: %w", err)
	}

	s.logger.Info("purchase order created",
		zap.String("number", order.Number),
		zap.String("clientName", order.ClientName),
		zap.Int("items", len(order.Items)))

	return order, nil
}

// GetByID retrieves a purchase order with its items
func (s *PurchaseOrderService) GetByID(ctx context.Context, id uuid.UUID) (*domain.PurchaseOrder, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPurchaseOrderNotFound
		}
		return nil, fmt.Errorf("failed to get purchase order: %w", err)
	}
	return order, nil
}

// List returns purchase orders newest first, filtered by a
// case-insensitive search over the order number and client name
func (s *PurchaseOrderService) List(ctx context.Context, page, pageSize int, search string, status domain.PurchaseOrderStatus) ([]domain.PurchaseOrder, int64, error) {
	if status != "" && !status.IsValid() {
		return nil, 0, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}

	orders, total, err := s.repo.List(ctx, page, pageSize, search, status)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list purchase orders: %w", err)
	}
	return orders, total, nil
}

// Approve moves a pending order to approved and spawns its delivery
// order in the same transaction. The delivery order inherits the
// client, schedule and address from the purchase order.
func (s *PurchaseOrderService) Approve(ctx context.Context, id uuid.UUID) (*domain.PurchaseOrder, *domain.DeliveryOrder, error) {
	order, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	if !order.Status.CanTransitionTo(domain.PurchaseOrderStatusApproved) {
		return nil, nil, fmt.Errorf("%w: cannot approve order in status %q", ErrInvalidTransition, order.Status)
	}

	doNumber, err := s.numberSvc.GenerateDeliveryOrderNumber(ctx)
	if err != nil {
		return nil, nil, err
	}

	delivery := &domain.DeliveryOrder{
		Number:          doNumber,
		PurchaseOrderID: order.ID,
		ClientID:        order.ClientID,
		ClientName:      order.ClientName,
		DeliveryDate:    order.DeliveryDate,
		DeliveryTime:    order.DeliveryTime,
		DeliveryAddress: order.DeliveryAddress,
		Status:          domain.DeliveryOrderStatusScheduled,
	}

	err = s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Model(&domain.PurchaseOrder{}).
			Where("id = ? AND status = ?", order.ID, domain.PurchaseOrderStatusPending).
			Update("status", domain.PurchaseOrderStatusApproved).Error; err != nil {
			return fmt.Errorf("failed to approve purchase order: %w", err)
		}
		if err := tx.Create(delivery).Error; err != nil {
			return fmt.Errorf("failed to create delivery order: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("failed to approve purchase order",
			zap.String("number", order.Number),
			zap.Error(err))
		return nil, nil, err
	}

	order.Status = domain.PurchaseOrderStatusApproved

	s.logger.Info("purchase order approved",
		zap.String("number", order.Number),
		zap.String("deliveryNumber", delivery.Number))

	return order, delivery, nil
}

// Cancel moves an order to cancelled. Delivered and already cancelled
// orders stay as they are.
func (s *PurchaseOrderService) Cancel(ctx context.Context, id uuid.UUID) (*domain.PurchaseOrder, error) {
	order, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransitionTo(domain.PurchaseOrderStatusCancelled) {
		return nil, fmt.Errorf("%w: cannot cancel order in status %q", ErrInvalidTransition, order.Status)
	}

	if err := s.repo.UpdateStatus(ctx, order.ID, domain.PurchaseOrderStatusCancelled); err != nil {
		return nil, fmt.Errorf("failed to cancel purchase order: %w", err)
	}
	order.Status = domain.PurchaseOrderStatusCancelled

	s.logger.Info("purchase order cancelled", zap.String("number", order.Number))

	return order, nil
}

// validateOrderLines enforces the line item rules beyond what struct
// tags express: at least one line, whole positive quantities and
// non-negative prices.
func validateOrderLines(req *domain.CreatePurchaseOrderRequest) error {
	if req.ClientID == uuid.Nil {
		return fmt.Errorf("%w: clientId is required", ErrInvalidInput)
	}
	if len(req.Items) == 0 {
		return fmt.Errorf("%w: at least one item is required", ErrInvalidInput)
	}
	for i, item := range req.Items {
		if item.Name == "" {
			return fmt.Errorf("%w: item %d is missing a name", ErrInvalidInput, i+1)
		}
		if item.Quantity < 1 {
			return fmt.Errorf("%w: item %d quantity must be at least 1", ErrInvalidInput, i+1)
		}
		if item.Price < 0 {
			return fmt.Errorf("%w: item %d price must not be negative", ErrInvalidInput, i+1)
		}
	}
	if req.Discount < 0 {
		return fmt.Errorf("%w: discount must not be negative", ErrInvalidInput)
	}
	if req.DeliveryFee != nil && *req.DeliveryFee < 0 {
		return fmt.Errorf("%w: delivery fee must not be negative", ErrInvalidInput)
	}
	if req.TaxRate != nil && (*req.TaxRate < 0 || *req.TaxRate > 100) {
		return fmt.Errorf("%w: tax rate must be between 0 and 100", ErrInvalidInput)
	}
	return nil
}
