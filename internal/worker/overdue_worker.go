package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/clinicdesk/clinic-backend/internal/application"
	"github.com/clinicdesk/clinic-backend/internal/domain"
)

// OverdueWorker periodically sweeps pending invoices whose due date has
// passed and marks them overdue.
type OverdueWorker struct {
	invoices  application.InvoiceRepository
	interval  time.Duration
	batchSize int
	logger    *slog.Logger
	now       func() time.Time
}

func NewOverdueWorker(
	invoices application.InvoiceRepository,
	interval time.Duration,
	batchSize int,
	logger *slog.Logger,
) *OverdueWorker {
	return &OverdueWorker{
		invoices:  invoices,
		interval:  interval,
		batchSize: batchSize,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (w *OverdueWorker) Start(ctx context.Context) {
	w.logger.Info("overdue worker started", "interval", w.interval)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.processOverdue(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("overdue worker stopping")
			return
		case <-ticker.C:
			if err := w.processOverdue(ctx); err != nil {
				w.logger.Error("overdue sweep failed", "error", err)
			}
		}
	}
}

func (w *OverdueWorker) processOverdue(ctx context.Context) error {
	now := w.now()

	due, err := w.invoices.FindOverduePending(ctx, now, w.batchSize)
	if err != nil {
		return err
	}

	if len(due) == 0 {
		return nil
	}

	var processed, marked int

	for _, invoice := range due {
		if err := w.markOverdue(ctx, invoice, now); err != nil {
			w.logger.Error("failed to mark invoice overdue",
				"invoice_number", invoice.InvoiceNumber,
				"error", err)
		} else {
			marked++
		}
		processed++
	}

	w.logger.Info("processed overdue sweep",
		"processed", processed,
		"marked_overdue", marked)

	return nil
}

func (w *OverdueWorker) markOverdue(ctx context.Context, invoice *domain.Invoice, now time.Time) error {
	if err := invoice.MarkOverdue(now); err != nil {
		return err
	}
	return w.invoices.UpdateStatus(ctx, invoice)
}
