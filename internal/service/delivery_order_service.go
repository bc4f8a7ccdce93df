package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sixink-6/gas-grove-api/internal/domain"
	"github.com/sixink-6/gas-grove-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MaxDeliveryImageSize is the upper bound for proof of delivery images
const MaxDeliveryImageSize = 5 * 1024 * 1024

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

// DeliveryImage carries the uploaded proof of delivery photo
type DeliveryImage struct {
	FileName    string
	ContentType string
	Size        int64
	Data        io.Reader
}

// DeliveryOrderService handles the delivery order workflow. Delivery
// orders are created by purchase order approval, never directly.
type DeliveryOrderService struct {
	repo    *repository.DeliveryOrderRepository
	fileSvc *FileService
	logger  *zap.Logger
}

// NewDeliveryOrderService creates a new DeliveryOrderService
func NewDeliveryOrderService(
	repo *repository.DeliveryOrderRepository,
	fileSvc *FileService,
	logger *zap.Logger,
) *DeliveryOrderService {
	return &DeliveryOrderService{
		repo:    repo,
		fileSvc: fileSvc,
		logger:  logger,
	}
}

// GetByID retrieves a delivery order with its purchase order and
// verification, if any
func (s *DeliveryOrderService) GetByID(ctx context.Context, id uuid.UUID) (*domain.DeliveryOrder, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDeliveryOrderNotFound
		}
		return nil, fmt.Errorf("failed to get delivery order: %w", err)
	}
	return order, nil
}

// List returns delivery orders newest first, filtered by a
// case-insensitive search over the delivery number, the source purchase
// order number and the client name
func (s *DeliveryOrderService) List(ctx context.Context, page, pageSize int, search string, status domain.DeliveryOrderStatus) ([]domain.DeliveryOrder, int64, error) {
	if status != "" && !status.IsValid() {
		return nil, 0, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}

	orders, total, err := s.repo.List(ctx, page, pageSize, search, status)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list delivery orders: %w", err)
	}
	return orders, total, nil
}

// Dispatch moves a scheduled delivery to in-transit
func (s *DeliveryOrderService) Dispatch(ctx context.Context, id uuid.UUID) (*domain.DeliveryOrder, error) {
	order, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransitionTo(domain.DeliveryOrderStatusInTransit) {
		return nil, fmt.Errorf("%w: cannot dispatch delivery in status %q", ErrInvalidTransition, order.Status)
	}

	if err := s.repo.UpdateStatus(ctx, order.ID, domain.DeliveryOrderStatusInTransit); err != nil {
		return nil, fmt.Errorf("failed to dispatch delivery order: %w", err)
	}
	order.Status = domain.DeliveryOrderStatusInTransit

	s.logger.Info("delivery order dispatched", zap.String("number", order.Number))

	return order, nil
}

// Verify records the proof of delivery and moves the delivery to
// delivered, which also marks the purchase order delivered. All
// validation runs before anything is written, so a failed attempt
// leaves the order untouched. A delivery can be verified once.
func (s *DeliveryOrderService) Verify(ctx context.Context, id uuid.UUID, req *domain.VerifyDeliveryRequest, image *DeliveryImage, verifiedBy string) (*domain.DeliveryOrder, error) {
	order, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if order.Verification != nil {
		return nil, ErrAlreadyVerified
	}
	if !order.Status.CanTransitionTo(domain.DeliveryOrderStatusDelivered) {
		return nil, fmt.Errorf("%w: cannot verify delivery in status %q", ErrInvalidTransition, order.Status)
	}

	if err := validateVerification(req, image); err != nil {
		return nil, err
	}

	// The image upload happens outside the transaction. An orphaned
	// image after a failed commit is harmless; a verification row
	// pointing at a missing image is not.
	file, err := s.fileSvc.Upload(ctx, image.FileName, image.ContentType, image.Data, verifiedBy)
	if err != nil {
		return nil, err
	}

	verification := &domain.DeliveryVerification{
		DeliveryOrderID: order.ID,
		DriverName:      strings.TrimSpace(req.DriverName),
		DriverPhone:     strings.TrimSpace(req.DriverPhone),
		ReceiverName:    strings.TrimSpace(req.ReceiverName),
		ReceiverPhone:   strings.TrimSpace(req.ReceiverPhone),
		Notes:           req.Notes,
		ImageFileID:     file.ID,
		VerifiedAt:      time.Now(),
		VerifiedBy:      verifiedBy,
	}

	err = s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(verification).Error; err != nil {
			return fmt.Errorf("failed to save delivery verification: %w", err)
		}
		if err := tx.Model(&domain.DeliveryOrder{}).
			Where("id = ?", order.ID).
			Update("status", domain.DeliveryOrderStatusDelivered).Error; err != nil {
			return fmt.Errorf("failed to update delivery order status: %w", err)
		}
		if err := tx.Model(&domain.PurchaseOrder{}).
			Where("id = ?", order.PurchaseOrderID).
			Update("status", domain.PurchaseOrderStatusDelivered).Error; err != nil {
			return fmt.Errorf("failed to update purchase order status: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("failed to verify delivery order",
			zap.String("number", order.Number),
			zap.Error(err))
		return nil, err
	}

	order.Status = domain.DeliveryOrderStatusDelivered
	order.Verification = verification

	s.logger.Info("delivery order verified",
		zap.String("number", order.Number),
		zap.String("driverName", verification.DriverName),
		zap.String("receiverName", verification.ReceiverName))

	return order, nil
}

// Cancel moves a delivery to cancelled. Delivered and already
// cancelled deliveries stay as they are.
func (s *DeliveryOrderService) Cancel(ctx context.Context, id uuid.UUID) (*domain.DeliveryOrder, error) {
	order, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransitionTo(domain.DeliveryOrderStatusCancelled) {
		return nil, fmt.Errorf("%w: cannot cancel delivery in status %q", ErrInvalidTransition, order.Status)
	}

	if err := s.repo.UpdateStatus(ctx, order.ID, domain.DeliveryOrderStatusCancelled); err != nil {
		return nil, fmt.Errorf("failed to cancel delivery order: %w", err)
	}
	order.Status = domain.DeliveryOrderStatusCancelled

	s.logger.Info("delivery order cancelled", zap.String("number", order.Number))

	return order, nil
}

func validateVerification(req *domain.VerifyDeliveryRequest, image *DeliveryImage) error {
	if len(strings.TrimSpace(req.DriverName)) < 2 {
		return fmt.Errorf("%w: driver name must be at least 2 characters", ErrInvalidInput)
	}
	if len(strings.TrimSpace(req.ReceiverName)) < 2 {
		return fmt.Errorf("%w: receiver name must be at least 2 characters", ErrInvalidInput)
	}
	if len(strings.TrimSpace(req.DriverPhone)) < 5 {
		return fmt.Errorf("%w: driver phone must be at least 5 characters", ErrInvalidInput)
	}
	if len(strings.TrimSpace(req.ReceiverPhone)) < 5 {
		return fmt.Errorf("%w: receiver phone must be at least 5 characters", ErrInvalidInput)
	}

	if image == nil || image.Data == nil {
		return ErrImageRequired
	}
	if image.Size > MaxDeliveryImageSize {
		return ErrImageTooLarge
	}
	mediaType := image.ContentType
	if idx := strings.Index(mediaType, ";"); idx >= 0 {
		mediaType = mediaType[:idx]
	}
	if !allowedImageTypes[strings.ToLower(strings.TrimSpace(mediaType))] {
		return ErrUnsupportedImageType
	}

	return nil
}
