package services_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/clinicdesk/clinic-backend/internal/application"
	"github.com/clinicdesk/clinic-backend/internal/domain"
)

// fakeLedger is an in-memory CopaymentLedger keyed by patient and year.
type fakeLedger struct {
	mu     sync.Mutex
	totals map[string]domain.Money

	accumulatedErr error
	recordErr      error
	recordCalls    int
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{totals: make(map[string]domain.Money)}
}

func ledgerKey(patientCedula string, year int) string {
	return fmt.Sprintf("%s/%d", patientCedula, year)
}

func (f *fakeLedger) seed(patientCedula string, year int, accumulated domain.Money) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.totals[ledgerKey(patientCedula, year)] = accumulated
}

func (f *fakeLedger) Accumulated(ctx context.Context, patientCedula string, year int) (domain.Money, error) {
	if f.accumulatedErr != nil {
		return domain.Money{}, f.accumulatedErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	total, ok := f.totals[ledgerKey(patientCedula, year)]
	if !ok {
		return domain.ZeroMoney(), nil
	}
	return total, nil
}

func (f *fakeLedger) RecordCopayment(ctx context.Context, patientCedula string, year int, amount domain.Money) (domain.Money, error) {
	if f.recordErr != nil {
		return domain.Money{}, f.recordErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recordCalls++
	key := ledgerKey(patientCedula, year)
	total, ok := f.totals[key]
	if !ok {
		total = domain.ZeroMoney()
	}
	total = total.Add(amount)
	f.totals[key] = total
	return total, nil
}

// fakeInvoiceRepo is an in-memory InvoiceRepository with overridable
// behavior per method.
type fakeInvoiceRepo struct {
	mu       sync.Mutex
	invoices []*domain.Invoice

	createErr       error
	findByNumberFn  func(ctx context.Context, invoiceNumber string) (*domain.Invoice, error)
	findByPatientFn func(ctx context.Context, patientCedula string, limit, offset int) ([]*domain.Invoice, error)
	statisticsFn    func(ctx context.Context, patientCedula string) (*domain.BillingStatistics, error)
	findOverdueFn   func(ctx context.Context, asOf time.Time, limit int) ([]*domain.Invoice, error)
	updateStatusErr error
	updatedStatuses []string
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{}
}

func (f *fakeInvoiceRepo) Create(ctx context.Context, invoice *domain.Invoice) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invoices = append(f.invoices, invoice)
	return nil
}

func (f *fakeInvoiceRepo) FindByNumber(ctx context.Context, invoiceNumber string) (*domain.Invoice, error) {
	if f.findByNumberFn != nil {
		return f.findByNumberFn(ctx, invoiceNumber)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, inv := range f.invoices {
		if inv.InvoiceNumber == invoiceNumber {
			return inv, nil
		}
	}
	return nil, fmt.Errorf("invoice: %w", application.ErrNotFound)
}

func (f *fakeInvoiceRepo) FindByPatient(ctx context.Context, patientCedula string, limit, offset int) ([]*domain.Invoice, error) {
	if f.findByPatientFn != nil {
		return f.findByPatientFn(ctx, patientCedula, limit, offset)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Invoice
	for _, inv := range f.invoices {
		if inv.PatientCedula == patientCedula {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (f *fakeInvoiceRepo) Statistics(ctx context.Context, patientCedula string) (*domain.BillingStatistics, error) {
	if f.statisticsFn != nil {
		return f.statisticsFn(ctx, patientCedula)
	}
	return &domain.BillingStatistics{PatientCedula: patientCedula}, nil
}

func (f *fakeInvoiceRepo) FindOverduePending(ctx context.Context, asOf time.Time, limit int) ([]*domain.Invoice, error) {
	if f.findOverdueFn != nil {
		return f.findOverdueFn(ctx, asOf, limit)
	}
	return nil, nil
}

func (f *fakeInvoiceRepo) UpdateStatus(ctx context.Context, invoice *domain.Invoice) error {
	if f.updateStatusErr != nil {
		return f.updateStatusErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updatedStatuses = append(f.updatedStatuses, invoice.InvoiceNumber)
	return nil
}

// fakeUnitOfWork hands the fakes straight to the callback, with no real
// transaction underneath.
type fakeUnitOfWork struct {
	ledger   *fakeLedger
	invoices *fakeInvoiceRepo
	beginErr error
}

func (f *fakeUnitOfWork) WithinTransaction(
	ctx context.Context,
	fn func(ctx context.Context, ledger application.CopaymentLedger, invoices application.InvoiceRepository) error,
) error {
	if f.beginErr != nil {
		return f.beginErr
	}
	return fn(ctx, f.ledger, f.invoices)
}
