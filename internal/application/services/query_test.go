package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/clinicdesk/clinic-backend/internal/application"
	"github.com/clinicdesk/clinic-backend/internal/application/services"
	"github.com/clinicdesk/clinic-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQueryService(t *testing.T, invoices *fakeInvoiceRepo, ledger *fakeLedger) *services.QueryService {
	t.Helper()
	return services.NewQueryService(invoices, ledger, testPolicy(t))
}

func TestFindByNumber_NotFound(t *testing.T) {
	svc := newQueryService(t, newFakeInvoiceRepo(), newFakeLedger())

	_, err := svc.FindByNumber(context.Background(), "INV-MISSING")
	require.Error(t, err)
	svcErr, ok := application.IsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, application.ErrCodeNotFound, svcErr.Code)
}

func TestFindByNumber_ReturnsInvoice(t *testing.T) {
	invoices := newFakeInvoiceRepo()
	invoices.invoices = append(invoices.invoices, &domain.Invoice{
		InvoiceNumber: "INV-1",
		PatientCedula: "1032456789",
		Status:        domain.InvoicePending,
	})
	svc := newQueryService(t, invoices, newFakeLedger())

	invoice, err := svc.FindByNumber(context.Background(), "INV-1")
	require.NoError(t, err)
	assert.Equal(t, "INV-1", invoice.InvoiceNumber)
}

func TestBillingHistory_ClampsPagination(t *testing.T) {
	invoices := newFakeInvoiceRepo()
	var gotLimit, gotOffset int
	invoices.findByPatientFn = func(ctx context.Context, patientCedula string, limit, offset int) ([]*domain.Invoice, error) {
		gotLimit, gotOffset = limit, offset
		return nil, nil
	}
	svc := newQueryService(t, invoices, newFakeLedger())

	_, err := svc.BillingHistory(context.Background(), "1032456789", -5, -1)
	require.NoError(t, err)
	assert.Equal(t, 50, gotLimit)
	assert.Equal(t, 0, gotOffset)

	_, err = svc.BillingHistory(context.Background(), "1032456789", 500, 10)
	require.NoError(t, err)
	assert.Equal(t, 50, gotLimit)
	assert.Equal(t, 10, gotOffset)
}

func TestAccumulatedCopayment_ReportsStanding(t *testing.T) {
	ledger := newFakeLedger()
	ledger.seed("1032456789", 2025, testMoney(t, "980000"))
	svc := newQueryService(t, newFakeInvoiceRepo(), ledger)

	standing, err := svc.AccumulatedCopayment(context.Background(), "1032456789", 2025)
	require.NoError(t, err)

	assert.Equal(t, 2025, standing.Year)
	assert.True(t, standing.Accumulated.Equal(testMoney(t, "980000")))
	assert.True(t, standing.AnnualCap.Equal(testMoney(t, "1000000")))
	assert.False(t, standing.CapReached)
}

func TestAccumulatedCopayment_CapReached(t *testing.T) {
	ledger := newFakeLedger()
	ledger.seed("1032456789", 2025, testMoney(t, "1030000"))
	svc := newQueryService(t, newFakeInvoiceRepo(), ledger)

	standing, err := svc.AccumulatedCopayment(context.Background(), "1032456789", 2025)
	require.NoError(t, err)
	assert.True(t, standing.CapReached)
}

func TestAccumulatedCopayment_DefaultsToCurrentYear(t *testing.T) {
	svc := newQueryService(t, newFakeInvoiceRepo(), newFakeLedger())

	standing, err := svc.AccumulatedCopayment(context.Background(), "1032456789", 0)
	require.NoError(t, err)
	assert.Equal(t, time.Now().UTC().Year(), standing.Year)
	assert.True(t, standing.Accumulated.IsZero())
}

func TestStatistics_PassesThrough(t *testing.T) {
	invoices := newFakeInvoiceRepo()
	invoices.statisticsFn = func(ctx context.Context, patientCedula string) (*domain.BillingStatistics, error) {
		return &domain.BillingStatistics{
			PatientCedula: patientCedula,
			InvoiceCount:  3,
		}, nil
	}
	svc := newQueryService(t, invoices, newFakeLedger())

	stats, err := svc.Statistics(context.Background(), "1032456789")
	require.NoError(t, err)
	assert.Equal(t, 3, stats.InvoiceCount)
}

func TestStatistics_RepositoryFailure(t *testing.T) {
	invoices := newFakeInvoiceRepo()
	invoices.statisticsFn = func(ctx context.Context, patientCedula string) (*domain.BillingStatistics, error) {
		return nil, fmt.Errorf("boom")
	}
	svc := newQueryService(t, invoices, newFakeLedger())

	_, err := svc.Statistics(context.Background(), "1032456789")
	require.Error(t, err)
	svcErr, ok := application.IsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, application.ErrCodeInternal, svcErr.Code)
}
