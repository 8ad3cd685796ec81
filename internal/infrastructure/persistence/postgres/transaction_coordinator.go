package postgres

import (
	"context"
	"fmt"

	"github.com/clinicdesk/clinic-backend/internal/application"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TransactionCoordinator manages transactions across multiple repositories.
// It implements application.BillingUnitOfWork.
type TransactionCoordinator struct {
	pool *pgxpool.Pool
}

func NewTransactionCoordinator(db *DB) *TransactionCoordinator {
	return &TransactionCoordinator{
		pool: db.Pool,
	}
}

// WithinTransaction executes fn within a database transaction. The function
// receives repository instances bound to the transaction; the ledger one
// locks its row so concurrent adjudications for the same patient serialize.
func (tc *TransactionCoordinator) WithinTransaction(
	ctx context.Context,
	fn func(ctx context.Context, ledger application.CopaymentLedger, invoices application.InvoiceRepository) error,
) error {
	tx, err := tc.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	txLedger := &CopaymentLedgerRepository{
		q:       tx,
		locking: true,
	}

	txInvoices := &InvoiceRepository{
		q: tx,
	}

	if err := fn(ctx, txLedger, txInvoices); err != nil {
		if IsTransient(err) {
			return application.NewTransientError(err)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		if IsTransient(err) {
			return application.NewTransientError(err)
		}
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
