package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sixink-6/gas-grove-api/internal/auth"
	"github.com/sixink-6/gas-grove-api/internal/mapper"
	"github.com/sixink-6/gas-grove-api/internal/service"
	"go.uber.org/zap"
)

type FileHandler struct {
	fileService *service.FileService
	maxUploadMB int64
	logger      *zap.Logger
}

func NewFileHandler(fileService *service.FileService, maxUploadMB int64, logger *zap.Logger) *FileHandler {
	return &FileHandler{
		fileService: fileService,
		maxUploadMB: maxUploadMB,
		logger:      logger,
	}
}

// @Summary Upload file
// @Tags Files
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File to upload"
// @Success 201 {object} domain.FileDTO
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /files/upload [post]
func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	// Limit request size
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadMB*1024*1024)

	if err := r.ParseMultipartForm(h.maxUploadMB * 1024 * 1024); err != nil {
		respondWithError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("File too large: maximum size is %dMB", h.maxUploadMB))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid file upload: file field is required")
		return
	}
	defer file.Close()

	uploadedBy := "system"
	if userCtx, ok := auth.FromContext(r.Context()); ok {
		uploadedBy = userCtx.Identity()
	}

	stored, err := h.fileService.Upload(r.Context(), header.Filename, header.Header.Get("Content-Type"), file, uploadedBy)
	if err != nil {
		h.logger.Error("failed to upload file", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to upload file")
		return
	}

	dto := mapper.ToFileDTO(stored)
	respondJSON(w, http.StatusCreated, dto)
}

// @Summary Get file metadata
// @Tags Files
// @Produce json
// @Param id path string true "File ID"
// @Success 200 {object} domain.FileDTO
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /files/{id} [get]
func (h *FileHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid file ID: must be a valid UUID")
		return
	}

	stored, err := h.fileService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrFileNotFound) {
			respondWithError(w, http.StatusNotFound, "File not found")
			return
		}
		h.logger.Error("failed to get file", zap.Error(err), zap.String("file_id", id.String()))
		respondWithError(w, http.StatusInternalServerError, "Failed to get file")
		return
	}

	dto := mapper.ToFileDTO(stored)
	respondJSON(w, http.StatusOK, dto)
}

// @Summary Download file
// @Tags Files
// @Produce application/octet-stream
// @Param id path string true "File ID"
// @Success 200
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /files/{id}/download [get]
func (h *FileHandler) Download(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid file ID: must be a valid UUID")
		return
	}

	reader, stored, err := h.fileService.Download(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrFileNotFound) {
			respondWithError(w, http.StatusNotFound, "File not found")
			return
		}
		h.logger.Error("failed to download file", zap.Error(err), zap.String("file_id", id.String()))
		respondWithError(w, http.StatusInternalServerError, "Failed to download file")
		return
	}
	defer reader.Close()

	contentType := stored.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	w.Header().Set("Content-Disposition", "attachment; filename=\""+stored.FileName+"\"")
	w.Header().Set("Content-Type", contentType)

	_, _ = io.Copy(w, reader)
}
