package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sixink-6/gas-grove-api/internal/domain"
	"github.com/sixink-6/gas-grove-api/internal/repository"
	"github.com/sixink-6/gas-grove-api/internal/service"
)

func TestCreateClient(t *testing.T) {
	db := newTestDB(t)
	svc := service.NewClientService(repository.NewClientRepository(db), zap.NewNop())
	ctx := context.Background()

	client, err := svc.Create(ctx, &domain.CreateClientRequest{
		Code: "company-alpha",
		Name: "Company Alpha",
	})
	require.NoError(t, err)
	assert.True(t, client.Active)
	assert.NotEqual(t, uuid.Nil, client.ID)

	_, err = svc.Create(ctx, &domain.CreateClientRequest{
		Code: "company-alpha",
		Name: "Someone Else",
	})
	assert.ErrorIs(t, err, service.ErrConflict)
}

func TestUpdateClientKeepsCode(t *testing.T) {
	db := newTestDB(t)
	svc := service.NewClientService(repository.NewClientRepository(db), zap.NewNop())
	client := createTestClient(t, db, "company-alpha", "Company Alpha", true)
	ctx := context.Background()

	inactive := false
	updated, err := svc.Update(ctx, client.ID, &domain.UpdateClientRequest{
		Name:   "Company Alpha Holdings",
		Phone:  "+62-21-555-0199",
		Active: &inactive,
	})
	require.NoError(t, err)

	assert.Equal(t, "company-alpha", updated.Code)
	assert.Equal(t, "Company Alpha Holdings", updated.Name)
	assert.False(t, updated.Active)
}

func TestGetClientNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := service.NewClientService(repository.NewClientRepository(db), zap.NewNop())

	_, err := svc.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, service.ErrClientNotFound)
}

func TestListClientsSearch(t *testing.T) {
	db := newTestDB(t)
	svc := service.NewClientService(repository.NewClientRepository(db), zap.NewNop())
	ctx := context.Background()

	createTestClient(t, db, "company-alpha", "Company Alpha", true)
	createTestClient(t, db, "acme-industries", "Acme Industries", true)

	clients, total, err := svc.List(ctx, 1, 10, "acme")
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, clients, 1)
	assert.Equal(t, "acme-industries", clients[0].Code)

	_, total, err = svc.List(ctx, 1, 10, "")
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}
