package handler

import (
	"net/http"
	"strconv"

	"github.com/sixink-6/gas-grove-api/internal/domain"
	"github.com/sixink-6/gas-grove-api/internal/mapper"
	"github.com/sixink-6/gas-grove-api/internal/pagination"
	"github.com/sixink-6/gas-grove-api/internal/service"
	"go.uber.org/zap"
)

// NumberSequenceHandler exposes the document number counters for admin
// inspection
type NumberSequenceHandler struct {
	numberService *service.NumberSequenceService
	logger        *zap.Logger
}

func NewNumberSequenceHandler(numberService *service.NumberSequenceService, logger *zap.Logger) *NumberSequenceHandler {
	return &NumberSequenceHandler{
		numberService: numberService,
		logger:        logger,
	}
}

// List godoc
// @Summary List document number sequences
// @Description Get the per-year document number counters, optionally filtered by prefix (admin only)
// @Tags NumberSequences
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 100)" default(20)
// @Param search query string false "Filter by prefix"
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.NumberSequenceDTO}
// @Failure 401 {object} domain.ErrorResponse
// @Failure 403 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /number-sequences [get]
func (h *NumberSequenceHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
	pageSize = pagination.ClampPageSize(pageSize, 20, 100)

	search := r.URL.Query().Get("search")

	result, err := h.numberService.ListSequences(r.Context(), page, pageSize, search)
	if err != nil {
		h.logger.Error("failed to list number sequences", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to list number sequences",
		})
		return
	}

	respondJSON(w, http.StatusOK, domain.PaginatedResponse{
		Data:       mapper.ToNumberSequenceDTOs(result.Items),
		Total:      int64(result.Total),
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: result.TotalPages,
	})
}
