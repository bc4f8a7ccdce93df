package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sixink-6/gas-grove-api/internal/domain"
	"github.com/sixink-6/gas-grove-api/internal/mapper"
	"github.com/sixink-6/gas-grove-api/internal/pagination"
	"github.com/sixink-6/gas-grove-api/internal/service"
	"go.uber.org/zap"
)

type PurchaseOrderHandler struct {
	orderService *service.PurchaseOrderService
	logger       *zap.Logger
}

func NewPurchaseOrderHandler(orderService *service.PurchaseOrderService, logger *zap.Logger) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{
		orderService: orderService,
		logger:       logger,
	}
}

// List godoc
// @Summary List purchase orders
// @Description Get paginated list of purchase orders, newest first, with optional search and status filter
// @Tags PurchaseOrders
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(20)
// @Param search query string false "Search by order number or client name"
// @Param status query string false "Filter by status" Enums(pending, approved, delivered, cancelled)
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.PurchaseOrderDTO}
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /purchase-orders [get]
func (h *PurchaseOrderHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
	pageSize = pagination.ClampPageSize(pageSize, 20, 200)

	search := r.URL.Query().Get("search")

	var status domain.PurchaseOrderStatus
	if s := r.URL.Query().Get("status"); s != "" {
		status = domain.PurchaseOrderStatus(s)
		if !status.IsValid() {
			respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
				Error:   "Bad Request",
				Message: "Invalid status filter",
			})
			return
		}
	}

	orders, total, err := h.orderService.List(r.Context(), page, pageSize, search, status)
	if err != nil {
		h.logger.Error("failed to list purchase orders", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to list purchase orders",
		})
		return
	}

	respondJSON(w, http.StatusOK, domain.PaginatedResponse{
		Data:       mapper.ToPurchaseOrderDTOs(orders),
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	})
}

// GetByID godoc
// @Summary Get purchase order by ID
// @Description Get a purchase order with its line items and computed totals
// @Tags PurchaseOrders
// @Accept json
// @Produce json
// @Param id path string true "Purchase order ID" format(uuid)
// @Success 200 {object} domain.PurchaseOrderDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /purchase-orders/{id} [get]
func (h *PurchaseOrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid purchase order ID format",
		})
		return
	}

	order, err := h.orderService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrPurchaseOrderNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Purchase order not found",
			})
			return
		}
		h.logger.Error("failed to get purchase order", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to get purchase order",
		})
		return
	}

	dto := mapper.ToPurchaseOrderDTO(order)
	respondJSON(w, http.StatusOK, dto)
}

// Create godoc
// @Summary Create purchase order
// @Description Create a new purchase order with at least one line item. The order number and client name snapshot are assigned by the system.
// @Tags PurchaseOrders
// @Accept json
// @Produce json
// @Param request body domain.CreatePurchaseOrderRequest true "Purchase order data"
// @Success 201 {object} domain.PurchaseOrderDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse "Client not found"
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /purchase-orders [post]
func (h *PurchaseOrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreatePurchaseOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid request body",
		})
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	order, err := h.orderService.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrClientNotFound):
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Client not found",
			})
		case errors.Is(err, service.ErrClientInactive), errors.Is(err, service.ErrInvalidInput):
			respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
				Error:   "Bad Request",
				Message: err.Error(),
			})
		default:
			h.logger.Error("failed to create purchase order", zap.Error(err))
			respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
				Error:   "Internal Server Error",
				Message: "Failed to create purchase order",
			})
		}
		return
	}

	w.Header().Set("Location", "/api/v1/purchase-orders/"+order.ID.String())
	dto := mapper.ToPurchaseOrderDTO(order)
	respondJSON(w, http.StatusCreated, dto)
}

// Approve godoc
// @Summary Approve purchase order
// @Description Approve a pending purchase order. A delivery order is created automatically with the order's delivery schedule.
// @Tags PurchaseOrders
// @Accept json
// @Produce json
// @Param id path string true "Purchase order ID" format(uuid)
// @Success 200 {object} domain.PurchaseOrderDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse "Order is not pending"
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /purchase-orders/{id}/approve [post]
func (h *PurchaseOrderHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid purchase order ID format",
		})
		return
	}

	order, deliveryOrder, err := h.orderService.Approve(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPurchaseOrderNotFound):
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Purchase order not found",
			})
		case errors.Is(err, service.ErrInvalidTransition):
			respondJSON(w, http.StatusConflict, domain.ErrorResponse{
				Error:   "Conflict",
				Message: err.Error(),
			})
		default:
			h.logger.Error("failed to approve purchase order", zap.Error(err))
			respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
				Error:   "Internal Server Error",
				Message: "Failed to approve purchase order",
			})
		}
		return
	}

	h.logger.Info("purchase order approved",
		zap.String("purchaseOrderNumber", order.Number),
		zap.String("deliveryOrderNumber", deliveryOrder.Number))

	dto := mapper.ToPurchaseOrderDTO(order)
	respondJSON(w, http.StatusOK, dto)
}

// Cancel godoc
// @Summary Cancel purchase order
// @Description Cancel a purchase order that has not yet been delivered
// @Tags PurchaseOrders
// @Accept json
// @Produce json
// @Param id path string true "Purchase order ID" format(uuid)
// @Success 200 {object} domain.PurchaseOrderDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse "Order is in a terminal state"
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /purchase-orders/{id}/cancel [post]
func (h *PurchaseOrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid purchase order ID format",
		})
		return
	}

	order, err := h.orderService.Cancel(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPurchaseOrderNotFound):
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Purchase order not found",
			})
		case errors.Is(err, service.ErrInvalidTransition):
			respondJSON(w, http.StatusConflict, domain.ErrorResponse{
				Error:   "Conflict",
				Message: err.Error(),
			})
		default:
			h.logger.Error("failed to cancel purchase order", zap.Error(err))
			respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
				Error:   "Internal Server Error",
				Message: "Failed to cancel purchase order",
			})
		}
		return
	}

	dto := mapper.ToPurchaseOrderDTO(order)
	respondJSON(w, http.StatusOK, dto)
}
