package application

import (
	"context"
	"time"

	"github.com/clinicdesk/clinic-backend/internal/domain"
)

// CopaymentLedger is the port for the per-patient yearly copayment totals.
type CopaymentLedger interface {
	// Accumulated returns the running copayment total for a patient and
	// calendar year. A patient with no record yet accumulates zero.
	Accumulated(ctx context.Context, patientCedula string, year int) (domain.Money, error)
	// RecordCopayment adds amount to the patient's yearly total and returns
	// the new total. The first copayment of a year creates the record.
	RecordCopayment(ctx context.Context, patientCedula string, year int, amount domain.Money) (domain.Money, error)
}

// InvoiceRepository is the port for invoice persistence.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *domain.Invoice) error
	FindByNumber(ctx context.Context, invoiceNumber string) (*domain.Invoice, error)
	FindByPatient(ctx context.Context, patientCedula string, limit, offset int) ([]*domain.Invoice, error)
	Statistics(ctx context.Context, patientCedula string) (*domain.BillingStatistics, error)
	FindOverduePending(ctx context.Context, asOf time.Time, limit int) ([]*domain.Invoice, error)
	UpdateStatus(ctx context.Context, invoice *domain.Invoice) error
}

// BillingUnitOfWork runs fn inside one database transaction, handing it
// transaction-scoped ports. The ledger read, the copayment write and the
// invoice insert of an adjudication must share a transaction so concurrent
// requests for the same patient serialize on the ledger row.
type BillingUnitOfWork interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context, ledger CopaymentLedger, invoices InvoiceRepository) error) error
}
