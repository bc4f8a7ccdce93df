package jobs

import (
	"context"
	"time"

	"github.com/sixink-6/gas-grove-api/internal/service"
	"go.uber.org/zap"
)

// InvoiceOverdueJob scans for unpaid invoices past their due date and
// logs them so operators can chase payment.
type InvoiceOverdueJob struct {
	invoiceService *service.InvoiceService
	logger         *zap.Logger
}

func NewInvoiceOverdueJob(invoiceService *service.InvoiceService, logger *zap.Logger) *InvoiceOverdueJob {
	return &InvoiceOverdueJob{
		invoiceService: invoiceService,
		logger:         logger,
	}
}

// Run performs a single overdue scan.
func (j *InvoiceOverdueJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	invoices, err := j.invoiceService.ListOverdue(ctx)
	if err != nil {
		j.logger.Error("overdue invoice scan failed", zap.Error(err))
		return
	}

	if len(invoices) == 0 {
		j.logger.Info("no overdue invoices found")
		return
	}

	for _, inv := range invoices {
		j.logger.Warn("invoice overdue",
			zap.String("invoice_number", inv.Number),
			zap.String("client_name", inv.ClientName),
			zap.Int64("total_amount", inv.TotalAmount),
			zap.Time("due_date", inv.DueDate))
	}

	j.logger.Info("overdue invoice scan completed",
		zap.Int("overdue_count", len(invoices)))
}
