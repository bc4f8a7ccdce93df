package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/sixink-6/gas-grove-api/internal/database"
	"github.com/sixink-6/gas-grove-api/internal/domain"
	"github.com/sixink-6/gas-grove-api/internal/http/handler"
	"github.com/sixink-6/gas-grove-api/internal/repository"
	"github.com/sixink-6/gas-grove-api/internal/service"
)

type orderAPI struct {
	router *chi.Mux
	client *domain.Client
	svc    *service.PurchaseOrderService
}

func newOrderAPI(t *testing.T) *orderAPI {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, database.AutoMigrate(db))

	client := &domain.Client{Code: "company-alpha", Name: "Company Alpha", Active: true}
	require.NoError(t, db.Create(client).Error)

	numberSvc := service.NewNumberSequenceService(repository.NewNumberSequenceRepository(db), zap.NewNop())
	orderSvc := service.NewPurchaseOrderService(
		repository.NewPurchaseOrderRepository(db),
		repository.NewDeliveryOrderRepository(db),
		repository.NewClientRepository(db),
		numberSvc,
		zap.NewNop(),
	)

	h := handler.NewPurchaseOrderHandler(orderSvc, zap.NewNop())

	r := chi.NewRouter()
	r.Route("/purchase-orders", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.GetByID)
		r.Post("/{id}/approve", h.Approve)
		r.Post("/{id}/cancel", h.Cancel)
	})

	return &orderAPI{router: r, client: client, svc: orderSvc}
}

func (a *orderAPI) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func orderPayload(clientID uuid.UUID) map[string]any {
	return map[string]any{
		"clientId":     clientID,
		"deliveryDate": time.Now().AddDate(0, 0, 3).Format(time.RFC3339),
		"items": []map[string]any{
			{"name": "LPG 50kg", "quantity": 1, "price": 100},
		},
	}
}

func TestCreatePurchaseOrderEndpoint(t *testing.T) {
	api := newOrderAPI(t)

	rec := api.do(t, http.MethodPost, "/purchase-orders", orderPayload(api.client.ID))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var dto domain.PurchaseOrderDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))

	assert.Equal(t, fmt.Sprintf("PO-%d-001", time.Now().Year()), dto.Number)
	assert.Equal(t, domain.PurchaseOrderStatusPending, dto.Status)
	assert.Equal(t, "Company Alpha", dto.ClientName)
	assert.Equal(t, "/api/v1/purchase-orders/"+dto.ID.String(), rec.Header().Get("Location"))

	// Default fee 20 and tax 10% over a 100 subtotal.
	assert.Equal(t, 100.0, dto.Totals.Subtotal)
	assert.Equal(t, 120.0, dto.Totals.WithDelivery)
	assert.Equal(t, 12.0, dto.Totals.Tax)
	assert.Equal(t, 132.0, dto.Totals.Total)
}

func TestCreatePurchaseOrderEndpointRejectsEmptyItems(t *testing.T) {
	api := newOrderAPI(t)

	payload := orderPayload(api.client.ID)
	payload["items"] = []map[string]any{}

	rec := api.do(t, http.MethodPost, "/purchase-orders", payload)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreatePurchaseOrderEndpointUnknownClient(t *testing.T) {
	api := newOrderAPI(t)

	rec := api.do(t, http.MethodPost, "/purchase-orders", orderPayload(uuid.New()))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListPurchaseOrdersEndpoint(t *testing.T) {
	api := newOrderAPI(t)

	for i := 0; i < 3; i++ {
		rec := api.do(t, http.MethodPost, "/purchase-orders", orderPayload(api.client.ID))
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := api.do(t, http.MethodGet, "/purchase-orders?page=1&pageSize=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp domain.PaginatedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(3), resp.Total)
	assert.Equal(t, 2, resp.PageSize)
	assert.Equal(t, 2, resp.TotalPages)

	rec = api.do(t, http.MethodGet, "/purchase-orders?status=archived", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetPurchaseOrderEndpoint(t *testing.T) {
	api := newOrderAPI(t)

	rec := api.do(t, http.MethodGet, "/purchase-orders/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, http.MethodGet, "/purchase-orders/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestApprovePurchaseOrderEndpoint(t *testing.T) {
	api := newOrderAPI(t)

	rec := api.do(t, http.MethodPost, "/purchase-orders", orderPayload(api.client.ID))
	require.Equal(t, http.StatusCreated, rec.Code)

	var dto domain.PurchaseOrderDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))

	rec = api.do(t, http.MethodPost, "/purchase-orders/"+dto.ID.String()+"/approve", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var approved domain.PurchaseOrderDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &approved))
	assert.Equal(t, domain.PurchaseOrderStatusApproved, approved.Status)

	rec = api.do(t, http.MethodPost, "/purchase-orders/"+dto.ID.String()+"/approve", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCancelPurchaseOrderEndpoint(t *testing.T) {
	api := newOrderAPI(t)

	rec := api.do(t, http.MethodPost, "/purchase-orders", orderPayload(api.client.ID))
	require.Equal(t, http.StatusCreated, rec.Code)

	var dto domain.PurchaseOrderDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))

	rec = api.do(t, http.MethodPost, "/purchase-orders/"+dto.ID.String()+"/cancel", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(t, http.MethodPost, "/purchase-orders/"+dto.ID.String()+"/cancel", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}
