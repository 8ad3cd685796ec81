package config

import (
	"fmt"

	"github.com/clinicdesk/clinic-backend/internal/domain"
)

// Policy builds the copayment decision policy from the configured amounts.
func (c *BillingConfig) Policy() (domain.CopaymentPolicy, error) {
	standard, err := domain.ParseMoney(c.StandardCopayment)
	if err != nil {
		return domain.CopaymentPolicy{}, fmt.Errorf("standard copayment: %w", err)
	}
	annualCap, err := domain.ParseMoney(c.AnnualCap)
	if err != nil {
		return domain.CopaymentPolicy{}, fmt.Errorf("annual cap: %w", err)
	}
	return domain.NewCopaymentPolicy(standard, annualCap)
}
