package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/clinicdesk/clinic-backend/internal/application"
	"github.com/clinicdesk/clinic-backend/internal/domain"
)

// AdjudicationOutcome is what one billing run produces: the cost split and
// the invoice recorded for it.
type AdjudicationOutcome struct {
	Result               domain.AdjudicationResult
	Invoice              *domain.Invoice
	AccumulatedCopayment domain.Money
}

// BillingService orchestrates adjudication: it reads the patient's yearly
// copayment total, runs the copayment decision, updates the ledger and
// records the invoice, all inside one transaction.
type BillingService struct {
	uow      application.BillingUnitOfWork
	policy   domain.CopaymentPolicy
	composer *InvoiceComposer
	logger   *slog.Logger
}

func NewBillingService(
	uow application.BillingUnitOfWork,
	policy domain.CopaymentPolicy,
	composer *InvoiceComposer,
	logger *slog.Logger,
) *BillingService {
	return &BillingService{
		uow:      uow,
		policy:   policy,
		composer: composer,
		logger:   logger,
	}
}

func (s *BillingService) Adjudicate(ctx context.Context, cmd AdjudicateCommand) (*AdjudicationOutcome, error) {
	if cmd.PatientCedula == "" {
		return nil, application.NewInvalidInputError(errors.New("patient cedula is required"))
	}

	orders, err := buildOrderSummaries(cmd.Orders)
	if err != nil {
		return nil, err
	}
	if err := domain.RequireBillableLines(orders); err != nil {
		return nil, application.NewPreconditionError(err)
	}

	insurance, err := buildInsurancePolicy(cmd.Insurance)
	if err != nil {
		return nil, err
	}

	now := resolveNow(cmd.Now)
	year := now.Year()
	totalCost := domain.SumOrderTotals(orders)

	var outcome AdjudicationOutcome
	err = s.uow.WithinTransaction(ctx, func(ctx context.Context, ledger application.CopaymentLedger, invoices application.InvoiceRepository) error {
		accumulated, err := ledger.Accumulated(ctx, cmd.PatientCedula, year)
		if err != nil {
			return err
		}

		result := s.policy.Evaluate(totalCost, insurance, accumulated, now)
		if err := result.Validate(); err != nil {
			return application.NewInternalError(err)
		}

		accumulatedAfter := accumulated
		if !result.CopaymentAmount.IsZero() {
			accumulatedAfter, err = ledger.RecordCopayment(ctx, cmd.PatientCedula, year, result.CopaymentAmount)
			if err != nil {
				return err
			}
		}

		invoice := s.composer.Compose(cmd.PatientCedula, now, orders, result, cmd.Notes)
		if err := invoices.Create(ctx, invoice); err != nil {
			return err
		}

		outcome = AdjudicationOutcome{
			Result:               result,
			Invoice:              invoice,
			AccumulatedCopayment: accumulatedAfter,
		}
		return nil
	})
	if err != nil {
		if _, ok := application.IsServiceError(err); ok {
			return nil, err
		}
		return nil, application.NewInternalError(err)
	}

	s.logger.Info("adjudicated billing event",
		"patient_cedula", cmd.PatientCedula,
		"invoice_number", outcome.Invoice.InvoiceNumber,
		"total", outcome.Result.TotalCost.String(),
		"copayment", outcome.Result.CopaymentAmount.String(),
		"coverage", outcome.Result.InsuranceCoverage.String(),
		"limit_exceeded", outcome.Result.CopaymentLimitExceeded,
	)

	return &outcome, nil
}
