package services

import (
	"context"
	"errors"
	"time"

	"github.com/clinicdesk/clinic-backend/internal/application"
	"github.com/clinicdesk/clinic-backend/internal/domain"
)

// QueryService serves the read side: billing history, accumulated copayment
// and per-patient statistics.
type QueryService struct {
	invoices application.InvoiceRepository
	ledger   application.CopaymentLedger
	policy   domain.CopaymentPolicy
}

func NewQueryService(
	invoices application.InvoiceRepository,
	ledger application.CopaymentLedger,
	policy domain.CopaymentPolicy,
) *QueryService {
	return &QueryService{
		invoices: invoices,
		ledger:   ledger,
		policy:   policy,
	}
}

func (s *QueryService) FindByNumber(ctx context.Context, invoiceNumber string) (*domain.Invoice, error) {
	invoice, err := s.invoices.FindByNumber(ctx, invoiceNumber)
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			return nil, application.NewNotFoundError("invoice", err)
		}
		return nil, application.NewInternalError(err)
	}
	return invoice, nil
}

// BillingHistory lists a patient's invoices, most recent billing date first.
func (s *QueryService) BillingHistory(ctx context.Context, patientCedula string, limit, offset int) ([]*domain.Invoice, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	invoices, err := s.invoices.FindByPatient(ctx, patientCedula, limit, offset)
	if err != nil {
		return nil, application.NewInternalError(err)
	}
	return invoices, nil
}

// CopaymentStanding is a patient's yearly copayment position against the
// annual cap.
type CopaymentStanding struct {
	PatientCedula string
	Year          int
	Accumulated   domain.Money
	AnnualCap     domain.Money
	CapReached    bool
}

func (s *QueryService) AccumulatedCopayment(ctx context.Context, patientCedula string, year int) (*CopaymentStanding, error) {
	if year == 0 {
		year = time.Now().UTC().Year()
	}
	accumulated, err := s.ledger.Accumulated(ctx, patientCedula, year)
	if err != nil {
		return nil, application.NewInternalError(err)
	}
	return &CopaymentStanding{
		PatientCedula: patientCedula,
		Year:          year,
		Accumulated:   accumulated,
		AnnualCap:     s.policy.AnnualCap(),
		CapReached:    s.policy.HasReachedCap(accumulated),
	}, nil
}

// Statistics aggregates a patient's invoices, excluding cancelled ones.
func (s *QueryService) Statistics(ctx context.Context, patientCedula string) (*domain.BillingStatistics, error) {
	stats, err := s.invoices.Statistics(ctx, patientCedula)
	if err != nil {
		return nil, application.NewInternalError(err)
	}
	return stats, nil
}
