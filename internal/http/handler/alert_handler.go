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

type AlertHandler struct {
	alertService *service.AlertService
	logger       *zap.Logger
}

func NewAlertHandler(alertService *service.AlertService, logger *zap.Logger) *AlertHandler {
	return &AlertHandler{
		alertService: alertService,
		logger:       logger,
	}
}

// List godoc
// @Summary List alerts
// @Description Get paginated list of alerts, newest first, with optional search, status and severity filters
// @Tags Alerts
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(20)
// @Param search query string false "Search by alert number, description or type"
// @Param status query string false "Filter by status" Enums(open, in-progress, resolved)
// @Param severity query string false "Filter by severity" Enums(critical, high, medium, low)
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.AlertDTO}
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /alerts [get]
func (h *AlertHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
	pageSize = pagination.ClampPageSize(pageSize, 20, 200)

	search := r.URL.Query().Get("search")

	var status domain.AlertStatus
	if s := r.URL.Query().Get("status"); s != "" {
		status = domain.AlertStatus(s)
		if !status.IsValid() {
			respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
				Error:   "Bad Request",
				Message: "Invalid status filter",
			})
			return
		}
	}

	var severity domain.AlertSeverity
	if s := r.URL.Query().Get("severity"); s != "" {
		severity = domain.AlertSeverity(s)
		if !severity.IsValid() {
			respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
				Error:   "Bad Request",
				Message: "Invalid severity filter",
			})
			return
		}
	}

	alerts, total, err := h.alertService.List(r.Context(), page, pageSize, search, status, severity)
	if err != nil {
		h.logger.Error("failed to list alerts", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to list alerts",
		})
		return
	}

	respondJSON(w, http.StatusOK, domain.PaginatedResponse{
		Data:       mapper.ToAlertDTOs(alerts),
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	})
}

// Stats godoc
// @Summary Get alert statistics
// @Description Get alert counts by status plus the number of open critical alerts
// @Tags Alerts
// @Accept json
// @Produce json
// @Success 200 {object} domain.AlertStatsDTO
// @Failure 401 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /alerts/stats [get]
func (h *AlertHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.alertService.Stats(r.Context())
	if err != nil {
		h.logger.Error("failed to get alert stats", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to get alert statistics",
		})
		return
	}

	respondJSON(w, http.StatusOK, stats)
}

// GetByID godoc
// @Summary Get alert by ID
// @Tags Alerts
// @Accept json
// @Produce json
// @Param id path string true "Alert ID" format(uuid)
// @Success 200 {object} domain.AlertDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /alerts/{id} [get]
func (h *AlertHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid alert ID format",
		})
		return
	}

	alert, err := h.alertService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrAlertNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Alert not found",
			})
			return
		}
		h.logger.Error("failed to get alert", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to get alert",
		})
		return
	}

	dto := mapper.ToAlertDTO(alert)
	respondJSON(w, http.StatusOK, dto)
}

// Create godoc
// @Summary Create alert
// @Description Create a new operational alert. New alerts always start open.
// @Tags Alerts
// @Accept json
// @Produce json
// @Param request body domain.CreateAlertRequest true "Alert data"
// @Success 201 {object} domain.AlertDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse "Client not found"
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /alerts [post]
func (h *AlertHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateAlertRequest
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

	if !req.Severity.IsValid() {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid alert severity",
		})
		return
	}

	alert, err := h.alertService.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrClientNotFound):
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Client not found",
			})
		case errors.Is(err, service.ErrInvalidInput):
			respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
				Error:   "Bad Request",
				Message: err.Error(),
			})
		default:
			h.logger.Error("failed to create alert", zap.Error(err))
			respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
				Error:   "Internal Server Error",
				Message: "Failed to create alert",
			})
		}
		return
	}

	w.Header().Set("Location", "/api/v1/alerts/"+alert.ID.String())
	dto := mapper.ToAlertDTO(alert)
	respondJSON(w, http.StatusCreated, dto)
}

// UpdateStatus godoc
// @Summary Update alert status
// @Description Advance an alert along its lifecycle (open to in-progress to resolved). Resolving stamps the end date and the resolving user. Backward transitions are rejected.
// @Tags Alerts
// @Accept json
// @Produce json
// @Param id path string true "Alert ID" format(uuid)
// @Param request body domain.UpdateAlertStatusRequest true "Target status"
// @Success 200 {object} domain.AlertDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse "Transition not allowed"
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /alerts/{id}/status [patch]
func (h *AlertHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid alert ID format",
		})
		return
	}

	var req domain.UpdateAlertStatusRequest
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

	if !req.Status.IsValid() {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid alert status",
		})
		return
	}

	alert, err := h.alertService.UpdateStatus(r.Context(), id, req.Status, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlertNotFound):
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Alert not found",
			})
		case errors.Is(err, service.ErrInvalidTransition):
			respondJSON(w, http.StatusConflict, domain.ErrorResponse{
				Error:   "Conflict",
				Message: err.Error(),
			})
		default:
			h.logger.Error("failed to update alert status", zap.Error(err))
			respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
				Error:   "Internal Server Error",
				Message: "Failed to update alert status",
			})
		}
		return
	}

	dto := mapper.ToAlertDTO(alert)
	respondJSON(w, http.StatusOK, dto)
}
