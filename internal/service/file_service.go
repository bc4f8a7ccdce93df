package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/sixink-6/gas-grove-api/internal/domain"
	"github.com/sixink-6/gas-grove-api/internal/repository"
	"github.com/sixink-6/gas-grove-api/internal/storage"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FileService handles upload, download and removal of stored files
// together with their metadata records
type FileService struct {
	fileRepo *repository.FileRepository
	storage  storage.Storage
	logger   *zap.Logger
}

// NewFileService creates a new FileService
func NewFileService(
	fileRepo *repository.FileRepository,
	storage storage.Storage,
	logger *zap.Logger,
) *FileService {
	return &FileService{
		fileRepo: fileRepo,
		storage:  storage,
		logger:   logger,
	}
}

// Upload stores the file content and records its metadata. If the
// metadata insert fails the stored blob is removed again, best effort.
func (s *FileService) Upload(ctx context.Context, filename, contentType string, data io.Reader, uploadedBy string) (*domain.File, error) {
	storagePath, size, err := s.storage.Upload(ctx, filename, contentType, data)
	if err != nil {
		return nil, fmt.Errorf("failed to upload file: %w", err)
	}

	file := &domain.File{
		FileName:    filename,
		ContentType: contentType,
		Size:        size,
		StoragePath: storagePath,
		UploadedBy:  uploadedBy,
	}

	if err := s.fileRepo.Create(ctx, file); err != nil {
		if delErr := s.storage.Delete(ctx, storagePath); delErr != nil {
			s.logger.Warn("failed to cleanup file from storage after DB error",
				zap.Error(delErr),
				zap.String("storagePath", storagePath),
			)
		}
		return nil, fmt.Errorf("failed to create file record: %w", err)
	}

	s.logger.Info("file uploaded",
		zap.String("fileId", file.ID.String()),
		zap.String("fileName", filename),
		zap.Int64("size", size))

	return file, nil
}

// GetByID returns the metadata record for a stored file
func (s *FileService) GetByID(ctx context.Context, id uuid.UUID) (*domain.File, error) {
	file, err := s.fileRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("failed to get file: %w", err)
	}
	return file, nil
}

// Download returns the file content together with its metadata. The
// caller must close the reader.
func (s *FileService) Download(ctx context.Context, id uuid.UUID) (io.ReadCloser, *domain.File, error) {
	file, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	reader, err := s.storage.Download(ctx, file.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to download file: %w", err)
	}

	return reader, file, nil
}

// Delete removes the stored content and the metadata record
func (s *FileService) Delete(ctx context.Context, id uuid.UUID) error {
	file, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.storage.Delete(ctx, file.StoragePath); err != nil {
		return fmt.Errorf("failed to delete file from storage: %w", err)
	}

	if err := s.fileRepo.Delete(ctx, file.ID); err != nil {
		return fmt.Errorf("failed to delete file record: %w", err)
	}

	s.logger.Info("file deleted", zap.String("fileId", id.String()))

	return nil
}
