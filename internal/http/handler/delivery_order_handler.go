package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sixink-6/gas-grove-api/internal/auth"
	"github.com/sixink-6/gas-grove-api/internal/domain"
	"github.com/sixink-6/gas-grove-api/internal/mapper"
	"github.com/sixink-6/gas-grove-api/internal/pagination"
	"github.com/sixink-6/gas-grove-api/internal/service"
	"go.uber.org/zap"
)

type DeliveryOrderHandler struct {
	deliveryService *service.DeliveryOrderService
	logger          *zap.Logger
}

func NewDeliveryOrderHandler(deliveryService *service.DeliveryOrderService, logger *zap.Logger) *DeliveryOrderHandler {
	return &DeliveryOrderHandler{
		deliveryService: deliveryService,
		logger:          logger,
	}
}

// List godoc
// @Summary List delivery orders
// @Description Get paginated list of delivery orders, newest first, with optional search and status filter
// @Tags DeliveryOrders
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(20)
// @Param search query string false "Search by delivery number or client name"
// @Param status query string false "Filter by status" Enums(scheduled, in-transit, delivered, cancelled)
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.DeliveryOrderDTO}
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /delivery-orders [get]
func (h *DeliveryOrderHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
	pageSize = pagination.ClampPageSize(pageSize, 20, 200)

	search := r.URL.Query().Get("search")

	var status domain.DeliveryOrderStatus
	if s := r.URL.Query().Get("status"); s != "" {
		status = domain.DeliveryOrderStatus(s)
		if !status.IsValid() {
			respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
				Error:   "Bad Request",
				Message: "Invalid status filter",
			})
			return
		}
	}

	orders, total, err := h.deliveryService.List(r.Context(), page, pageSize, search, status)
	if err != nil {
		h.logger.Error("failed to list delivery orders", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to list delivery orders",
		})
		return
	}

	respondJSON(w, http.StatusOK, domain.PaginatedResponse{
		Data:       mapper.ToDeliveryOrderDTOs(orders),
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	})
}

// GetByID godoc
// @Summary Get delivery order by ID
// @Description Get a delivery order with its source purchase order and verification details
// @Tags DeliveryOrders
// @Accept json
// @Produce json
// @Param id path string true "Delivery order ID" format(uuid)
// @Success 200 {object} domain.DeliveryOrderDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /delivery-orders/{id} [get]
func (h *DeliveryOrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid delivery order ID format",
		})
		return
	}

	order, err := h.deliveryService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrDeliveryOrderNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Delivery order not found",
			})
			return
		}
		h.logger.Error("failed to get delivery order", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to get delivery order",
		})
		return
	}

	dto := mapper.ToDeliveryOrderDTO(order)
	respondJSON(w, http.StatusOK, dto)
}

// Dispatch godoc
// @Summary Dispatch delivery order
// @Description Move a scheduled delivery order to in-transit
// @Tags DeliveryOrders
// @Accept json
// @Produce json
// @Param id path string true "Delivery order ID" format(uuid)
// @Success 200 {object} domain.DeliveryOrderDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse "Delivery is not scheduled"
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /delivery-orders/{id}/dispatch [post]
func (h *DeliveryOrderHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid delivery order ID format",
		})
		return
	}

	order, err := h.deliveryService.Dispatch(r.Context(), id)
	if err != nil {
		h.respondDeliveryError(w, err, "failed to dispatch delivery order")
		return
	}

	dto := mapper.ToDeliveryOrderDTO(order)
	respondJSON(w, http.StatusOK, dto)
}

// Verify godoc
// @Summary Verify delivery
// @Description Record proof of delivery for an in-transit delivery order. Requires driver and receiver details plus exactly one delivery photo (jpeg, png or webp, max 5 MiB). Verification is permanent and marks both the delivery order and its purchase order as delivered.
// @Tags DeliveryOrders
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Delivery order ID" format(uuid)
// @Param driverName formData string true "Driver name"
// @Param driverPhone formData string true "Driver phone"
// @Param receiverName formData string true "Receiver name"
// @Param receiverPhone formData string true "Receiver phone"
// @Param notes formData string false "Delivery notes"
// @Param image formData file true "Delivery photo"
// @Success 200 {object} domain.DeliveryOrderDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse "Already verified or not in transit"
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /delivery-orders/{id}/verify [post]
func (h *DeliveryOrderHandler) Verify(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid delivery order ID format",
		})
		return
	}

	if err := r.ParseMultipartForm(service.MaxDeliveryImageSize + 1<<20); err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid multipart form",
		})
		return
	}

	req := domain.VerifyDeliveryRequest{
		DriverName:    r.FormValue("driverName"),
		DriverPhone:   r.FormValue("driverPhone"),
		ReceiverName:  r.FormValue("receiverName"),
		ReceiverPhone: r.FormValue("receiverPhone"),
		Notes:         r.FormValue("notes"),
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	var image *service.DeliveryImage
	file, header, err := r.FormFile("image")
	if err == nil {
		defer file.Close()
		image = &service.DeliveryImage{
			FileName:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Data:        file,
		}
	}

	verifiedBy := "system"
	if userCtx, ok := auth.FromContext(r.Context()); ok {
		verifiedBy = userCtx.Identity()
	}

	order, err := h.deliveryService.Verify(r.Context(), id, &req, image, verifiedBy)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrImageRequired),
			errors.Is(err, service.ErrImageTooLarge),
			errors.Is(err, service.ErrUnsupportedImageType),
			errors.Is(err, service.ErrInvalidInput):
			respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
				Error:   "Bad Request",
				Message: err.Error(),
			})
		case errors.Is(err, service.ErrAlreadyVerified):
			respondJSON(w, http.StatusConflict, domain.ErrorResponse{
				Error:   "Conflict",
				Message: "Delivery has already been verified",
			})
		default:
			h.respondDeliveryError(w, err, "failed to verify delivery order")
		}
		return
	}

	h.logger.Info("delivery verified",
		zap.String("deliveryOrderNumber", order.Number),
		zap.String("verifiedBy", verifiedBy))

	dto := mapper.ToDeliveryOrderDTO(order)
	respondJSON(w, http.StatusOK, dto)
}

// Cancel godoc
// @Summary Cancel delivery order
// @Description Cancel a delivery order that has not yet been delivered
// @Tags DeliveryOrders
// @Accept json
// @Produce json
// @Param id path string true "Delivery order ID" format(uuid)
// @Success 200 {object} domain.DeliveryOrderDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse "Delivery is in a terminal state"
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /delivery-orders/{id}/cancel [post]
func (h *DeliveryOrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid delivery order ID format",
		})
		return
	}

	order, err := h.deliveryService.Cancel(r.Context(), id)
	if err != nil {
		h.respondDeliveryError(w, err, "failed to cancel delivery order")
		return
	}

	dto := mapper.ToDeliveryOrderDTO(order)
	respondJSON(w, http.StatusOK, dto)
}

func (h *DeliveryOrderHandler) respondDeliveryError(w http.ResponseWriter, err error, logMsg string) {
	switch {
	case errors.Is(err, service.ErrDeliveryOrderNotFound):
		respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
			Error:   "Not Found",
			Message: "Delivery order not found",
		})
	case errors.Is(err, service.ErrInvalidTransition):
		respondJSON(w, http.StatusConflict, domain.ErrorResponse{
			Error:   "Conflict",
			Message: err.Error(),
		})
	default:
		h.logger.Error(logMsg, zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to process delivery order",
		})
	}
}
