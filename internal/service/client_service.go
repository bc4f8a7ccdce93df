package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sixink-6/gas-grove-api/internal/domain"
	"github.com/sixink-6/gas-grove-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ClientService manages the gas customer registry
type ClientService struct {
	repo   *repository.ClientRepository
	logger *zap.Logger
}

// NewClientService creates a new ClientService
func NewClientService(repo *repository.ClientRepository, logger *zap.Logger) *ClientService {
	return &ClientService{
		repo:   repo,
		logger: logger,
	}
}

// Create registers a new client site
func (s *ClientService) Create(ctx context.Context, req *domain.CreateClientRequest) (*domain.Client, error) {
	if existing, err := s.repo.GetByCode(ctx, req.Code); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: client code %q already exists", ErrConflict, req.Code)
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check client code: %w", err)
	}

	client := &domain.Client{
		Code:    req.Code,
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Email:   req.Email,
		Active:  true,
	}

	if err := s.repo.Create(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	s.logger.Info("client created",
		zap.String("code", client.Code),
		zap.String("name", client.Name))

	return client, nil
}

// GetByID retrieves a client
func (s *ClientService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	client, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return client, nil
}

// List returns clients sorted by name, filtered by a case-insensitive
// search over name and code
func (s *ClientService) List(ctx context.Context, page, pageSize int, search string) ([]domain.Client, int64, error) {
	clients, total, err := s.repo.List(ctx, page, pageSize, search)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, total, nil
}

// Update changes a client's contact details and active flag. The code
// is immutable once assigned.
func (s *ClientService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateClientRequest) (*domain.Client, error) {
	client, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	client.Name = req.Name
	client.Address = req.Address
	client.Phone = req.Phone
	client.Email = req.Email
	if req.Active != nil {
		client.Active = *req.Active
	}

	if err := s.repo.Update(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}

	s.logger.Info("client updated", zap.String("code", client.Code))

	return client, nil
}
