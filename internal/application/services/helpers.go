package services

import (
	"fmt"
	"time"

	"github.com/clinicdesk/clinic-backend/internal/application"
	"github.com/clinicdesk/clinic-backend/internal/domain"
)

// buildOrderSummaries converts command inputs into domain order summaries.
// The order-level category applies to every item of that order.
func buildOrderSummaries(orders []OrderInput) ([]domain.OrderCostSummary, error) {
	summaries := make([]domain.OrderCostSummary, 0, len(orders))
	for _, o := range orders {
		category, err := domain.ParseOrderCategory(o.Category)
		if err != nil {
			return nil, application.NewInvalidInputError(fmt.Errorf("order %s: %w", o.OrderID, err))
		}

		lines := make([]domain.OrderLineCost, 0, len(o.Items))
		for _, item := range o.Items {
			lines = append(lines, domain.OrderLineCost{
				Category: category,
				ItemName: item.ItemName,
				UnitCost: item.UnitCost,
				Quantity: item.Quantity,
			})
		}

		summary, err := domain.NewOrderCostSummary(o.OrderID, lines)
		if err != nil {
			return nil, application.NewPreconditionError(err)
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// buildInsurancePolicy converts the optional insurance input. A nil input
// means no policy on file.
func buildInsurancePolicy(in *InsuranceInput) (*domain.InsurancePolicy, error) {
	if in == nil {
		return nil, nil
	}
	status, err := domain.ParsePolicyStatus(in.Status)
	if err != nil {
		return nil, application.NewInvalidInputError(err)
	}
	return &domain.InsurancePolicy{
		CompanyName:    in.CompanyName,
		PolicyNumber:   in.PolicyNumber,
		Status:         status,
		ExpirationDate: in.ExpirationDate,
	}, nil
}

func resolveNow(now time.Time) time.Time {
	if now.IsZero() {
		return time.Now().UTC()
	}
	return now
}
