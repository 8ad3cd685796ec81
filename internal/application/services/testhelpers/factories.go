package testhelpers

import (
	"testing"
	"time"

	"github.com/clinicdesk/clinic-backend/internal/application/services"
	"github.com/clinicdesk/clinic-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// Money parses a decimal amount or fails the test.
func Money(t *testing.T, s string) domain.Money {
	t.Helper()
	m, err := domain.ParseMoney(s)
	require.NoError(t, err)
	return m
}

// DefaultAdjudicateCommand returns a valid adjudication command: one
// medication order of 200,000 for a patient with an active policy.
func DefaultAdjudicateCommand(t *testing.T, now time.Time) services.AdjudicateCommand {
	return services.AdjudicateCommand{
		PatientCedula: "10324" + uuid.NewString()[:8],
		Orders: []services.OrderInput{
			{
				OrderID:  "order-" + uuid.NewString(),
				Category: "MEDICATION",
				Items: []services.OrderItemInput{
					{ItemName: "amoxicillin 500mg", UnitCost: Money(t, "40000"), Quantity: 5},
				},
			},
		},
		Insurance: ActiveInsurance(now),
		Now:       now,
	}
}

// ActiveInsurance returns an insurance input that adjudicates as active.
func ActiveInsurance(now time.Time) *services.InsuranceInput {
	return &services.InsuranceInput{
		CompanyName:    "Sura EPS",
		PolicyNumber:   "POL-" + uuid.NewString()[:8],
		Status:         "ACTIVE",
		ExpirationDate: now.AddDate(1, 0, 0),
	}
}

// InactiveInsurance returns an insurance input that adjudicates as inactive.
func InactiveInsurance(now time.Time) *services.InsuranceInput {
	return &services.InsuranceInput{
		CompanyName:    "Sura EPS",
		PolicyNumber:   "POL-" + uuid.NewString()[:8],
		Status:         "INACTIVE",
		ExpirationDate: now.AddDate(1, 0, 0),
	}
}
