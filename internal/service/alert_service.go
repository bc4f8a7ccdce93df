package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sixink-6/gas-grove-api/internal/auth"
	"github.com/sixink-6/gas-grove-api/internal/domain"
	"github.com/sixink-6/gas-grove-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AlertService handles operational alerts. Status moves strictly
// forward from open through in-progress to resolved; resolution
// stamps who resolved it and when, and clears nothing.
type AlertService struct {
	repo      *repository.AlertRepository
	numberSvc *NumberSequenceService
	logger    *zap.Logger
}

// NewAlertService creates a new AlertService
func NewAlertService(
	repo *repository.AlertRepository,
	numberSvc *NumberSequenceService,
	logger *zap.Logger,
) *AlertService {
	return &AlertService{
		repo:      repo,
		numberSvc: numberSvc,
		logger:    logger,
	}
}

// Create stores a new open alert
func (s *AlertService) Create(ctx context.Context, req *domain.CreateAlertRequest) (*domain.Alert, error) {
	if !req.Severity.IsValid() {
		return nil, fmt.Errorf("%w: unknown severity %q", ErrInvalidInput, req.Severity)
	}

	number, err := s.numberSvc.GenerateAlertNumber(ctx)
	if err != nil {
		return nil, err
	}

	startDate := time.Now()
	if req.StartDate != nil {
		startDate = *req.StartDate
	}

	alert := &domain.Alert{
		Number:      number,
		Description: req.Description,
		AlertType:   req.AlertType,
		Severity:    req.Severity,
		Status:      domain.AlertStatusOpen,
		ClientID:    req.ClientID,
		StartDate:   startDate,
		Notes:       req.Notes,
	}

	if err := s.repo.Create(ctx, alert); err != nil {
		s.logger.Error("failed to create alert",
			zap.String("number", number),
			zap.Error(err))
		return nil, fmt.Errorf("failed to create alert: %w", err)
	}

	s.logger.Info("alert created",
		zap.String("number", alert.Number),
		zap.String("severity", string(alert.Severity)),
		zap.String("alertType", alert.AlertType))

	return alert, nil
}

// GetByID retrieves an alert
func (s *AlertService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Alert, error) {
	alert, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAlertNotFound
		}
		return nil, fmt.Errorf("failed to get alert: %w", err)
	}
	return alert, nil
}

// List returns alerts newest first, filtered by a case-insensitive
// search over the alert number, description and type
func (s *AlertService) List(ctx context.Context, page, pageSize int, search string, status domain.AlertStatus, severity domain.AlertSeverity) ([]domain.Alert, int64, error) {
	if status != "" && !status.IsValid() {
		return nil, 0, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}
	if severity != "" && !severity.IsValid() {
		return nil, 0, fmt.Errorf("%w: unknown severity %q", ErrInvalidInput, severity)
	}

	alerts, total, err := s.repo.List(ctx, page, pageSize, search, status, severity)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list alerts: %w", err)
	}
	return alerts, total, nil
}

// UpdateStatus moves an alert forward through its lifecycle. Resolving
// stamps the end date and the user who resolved it, taken from the
// authenticated request.
func (s *AlertService) UpdateStatus(ctx context.Context, id uuid.UUID, target domain.AlertStatus, notes string) (*domain.Alert, error) {
	if !target.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, target)
	}

	alert, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !alert.Status.CanTransitionTo(target) {
		return nil, fmt.Errorf("%w: cannot move alert from %q to %q", ErrInvalidTransition, alert.Status, target)
	}

	alert.Status = target
	if notes != "" {
		alert.Notes = notes
	}

	if target == domain.AlertStatusResolved {
		now := time.Now()
		alert.EndDate = &now
		if userCtx, ok := auth.FromContext(ctx); ok {
			if userCtx.DisplayName != "" {
				alert.ResolvedBy = userCtx.DisplayName
			} else {
				alert.ResolvedBy = userCtx.Email
			}
		}
	}

	if err := s.repo.Update(ctx, alert); err != nil {
		return nil, fmt.Errorf("failed to update alert status: %w", err)
	}

	s.logger.Info("alert status updated",
		zap.String("number", alert.Number),
		zap.String("status", string(alert.Status)),
		zap.String("resolvedBy", alert.ResolvedBy))

	return alert, nil
}

// Stats returns the aggregated alert counts for the dashboard
func (s *AlertService) Stats(ctx context.Context) (*domain.AlertStatsDTO, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count alerts: %w", err)
	}

	stats := &domain.AlertStatsDTO{Total: total}

	if stats.Open, err = s.repo.CountByStatus(ctx, domain.AlertStatusOpen); err != nil {
		return nil, fmt.Errorf("failed to count open alerts: %w", err)
	}
	if stats.InProgress, err = s.repo.CountByStatus(ctx, domain.AlertStatusInProgress); err != nil {
		return nil, fmt.Errorf("failed to count in-progress alerts: %w", err)
	}
	if stats.Resolved, err = s.repo.CountByStatus(ctx, domain.AlertStatusResolved); err != nil {
		return nil, fmt.Errorf("failed to count resolved alerts: %w", err)
	}
	if stats.Critical, err = s.repo.CountBySeverity(ctx, domain.AlertSeverityCritical); err != nil {
		return nil, fmt.Errorf("failed to count critical alerts: %w", err)
	}

	return stats, nil
}
