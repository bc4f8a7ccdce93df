package service

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/sixink-6/gas-grove-api/internal/domain"
	"github.com/sixink-6/gas-grove-api/internal/pagination"
	"github.com/sixink-6/gas-grove-api/internal/repository"
	"go.uber.org/zap"
)

// Document number prefixes. Each document type counts independently
// per year.
const (
	PrefixPurchaseOrder = "PO"
	PrefixDeliveryOrder = "DO"
	PrefixInvoice       = "INV"
	PrefixAlert         = "ALT"
)

var numberFormat = regexp.MustCompile(`^[A-Z]{2,4}-\d{4}-\d{3,}$`)

// NumberSequenceService generates unique, formatted document numbers.
//
// Format: {PREFIX}-{YEAR}-{SEQUENCE}
// Example: PO-2026-001, DO-2026-042
type NumberSequenceService struct {
	repo   *repository.NumberSequenceRepository
	logger *zap.Logger
}

// NewNumberSequenceService creates a new NumberSequenceService
func NewNumberSequenceService(
	repo *repository.NumberSequenceRepository,
	logger *zap.Logger,
) *NumberSequenceService {
	return &NumberSequenceService{
		repo:   repo,
		logger: logger,
	}
}

// GeneratePurchaseOrderNumber generates a unique purchase order number,
// e.g. "PO-2026-001"
func (s *NumberSequenceService) GeneratePurchaseOrderNumber(ctx context.Context) (string, error) {
	return s.generateNumber(ctx, PrefixPurchaseOrder)
}

// GenerateDeliveryOrderNumber generates a unique delivery order number,
// e.g. "DO-2026-001"
func (s *NumberSequenceService) GenerateDeliveryOrderNumber(ctx context.Context) (string, error) {
	return s.generateNumber(ctx, PrefixDeliveryOrder)
}

// GenerateInvoiceNumber generates a unique invoice number,
// e.g. "INV-2026-001"
func (s *NumberSequenceService) GenerateInvoiceNumber(ctx context.Context) (string, error) {
	return s.generateNumber(ctx, PrefixInvoice)
}

// GenerateAlertNumber generates a unique alert number,
// e.g. "ALT-2026-001"
func (s *NumberSequenceService) GenerateAlertNumber(ctx context.Context) (string, error) {
	return s.generateNumber(ctx, PrefixAlert)
}

// generateNumber formats the next number for a prefix. The sequence is
// zero-padded to three digits and keeps growing past 999 without
// wrapping, so a busy year produces PO-2026-1000 after PO-2026-999.
func (s *NumberSequenceService) generateNumber(ctx context.Context, prefix string) (string, error) {
	year := time.Now().Year()

	nextSeq, err := s.repo.GetNextNumber(ctx, prefix, year)
	if err != nil {
		s.logger.Error("failed to get next sequence number",
			zap.String("prefix", prefix),
			zap.Int("year", year),
			zap.Error(err))
		return "", fmt.Errorf("failed to generate %s number: %w", prefix, err)
	}

	number := fmt.Sprintf("%s-%d-%03d", prefix, year, nextSeq)

	s.logger.Info("generated number",
		zap.String("number", number),
		zap.String("prefix", prefix),
		zap.Int("year", year),
		zap.Int("sequence", nextSeq))

	return number, nil
}

// GetCurrentSequence returns the current sequence value for a prefix/year
// without incrementing it. Returns 0 if no sequence exists.
func (s *NumberSequenceService) GetCurrentSequence(ctx context.Context, prefix string, year int) (int, error) {
	return s.repo.GetCurrentSequence(ctx, prefix, year)
}

// InitializeSequence sets the sequence to a specific value, used by data
// migrations that import already numbered documents. The value is the
// last used sequence number.
func (s *NumberSequenceService) InitializeSequence(ctx context.Context, prefix string, year int, value int) error {
	return s.repo.SetSequence(ctx, prefix, year, value)
}

// ListSequences returns one page of the per-year document counters,
// optionally filtered by prefix. The table holds a handful of rows per
// year, so filtering and paging happen in memory.
func (s *NumberSequenceService) ListSequences(ctx context.Context, page, pageSize int, search string) (pagination.Page[domain.NumberSequence], error) {
	sequences, err := s.repo.ListSequences(ctx)
	if err != nil {
		return pagination.Page[domain.NumberSequence]{}, fmt.Errorf("failed to list number sequences: %w", err)
	}

	sequences = pagination.Filter(sequences, search, func(seq domain.NumberSequence) string {
		return seq.Prefix
	})

	return pagination.Paginate(sequences, page, pageSize), nil
}

// ValidateNumber checks if a document number follows the expected
// PREFIX-YYYY-NNN format
func (s *NumberSequenceService) ValidateNumber(number string) bool {
	return numberFormat.MatchString(number)
}
