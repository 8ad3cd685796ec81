package domain

import (
	"errors"
	"time"
)

// Adjudication messages surfaced to the API layer.
const (
	MsgNoActivePolicy    = "no active policy - patient pays full amount"
	MsgAnnualCapReached  = "annual cap already reached - insurer covers the full amount"
	MsgStandardCopayment = "patient owes the standard copayment; insurer covers the rest"
)

// CopaymentPolicy is the pure decision procedure for splitting a billed
// amount between patient and insurer. The standard copayment and the annual
// cap vary by jurisdiction, so they are constructor parameters rather than
// constants.
type CopaymentPolicy struct {
	standardCopayment Money
	annualCap         Money
}

func NewCopaymentPolicy(standardCopayment, annualCap Money) (CopaymentPolicy, error) {
	if standardCopayment.IsZero() || annualCap.IsZero() {
		return CopaymentPolicy{}, errors.New("copayment policy requires a positive standard copayment and annual cap")
	}
	if annualCap.LessThan(standardCopayment) {
		return CopaymentPolicy{}, errors.New("annual cap cannot be below the standard copayment")
	}
	return CopaymentPolicy{standardCopayment: standardCopayment, annualCap: annualCap}, nil
}

func (p CopaymentPolicy) StandardCopayment() Money { return p.standardCopayment }
func (p CopaymentPolicy) AnnualCap() Money         { return p.annualCap }

// HasReachedCap reports whether an accumulated yearly copayment has met or
// exceeded the annual cap.
func (p CopaymentPolicy) HasReachedCap(accumulated Money) bool {
	return accumulated.GreaterThanOrEqual(p.annualCap)
}

// Evaluate runs the decision procedure for one billing event. accumulated is
// the ledger value read BEFORE this transaction's copayment is applied; the
// cap check is strictly pre-transaction, so the transaction that crosses the
// cap still pays the standard copayment and only subsequent ones are fully
// covered.
//
// Branches, in order:
//  1. no active policy: patient pays the full amount, no coverage;
//  2. cap already reached: insurer covers the full amount, no copayment;
//  3. otherwise: copayment = min(standard copayment, total cost), insurer
//     covers the remainder.
func (p CopaymentPolicy) Evaluate(totalCost Money, policy *InsurancePolicy, accumulated Money, now time.Time) AdjudicationResult {
	if !policy.IsActive(now) {
		return AdjudicationResult{
			TotalCost:              totalCost,
			CopaymentAmount:        ZeroMoney(),
			InsuranceCoverage:      ZeroMoney(),
			PatientResponsibility:  totalCost,
			RequiresCopayment:      true,
			CopaymentLimitExceeded: false,
			Message:                MsgNoActivePolicy,
		}
	}

	if p.HasReachedCap(accumulated) {
		return AdjudicationResult{
			TotalCost:              totalCost,
			CopaymentAmount:        ZeroMoney(),
			InsuranceCoverage:      totalCost,
			PatientResponsibility:  ZeroMoney(),
			RequiresCopayment:      false,
			CopaymentLimitExceeded: true,
			Message:                MsgAnnualCapReached,
		}
	}

	copayment := MinMoney(p.standardCopayment, totalCost)
	return AdjudicationResult{
		TotalCost:              totalCost,
		CopaymentAmount:        copayment,
		InsuranceCoverage:      totalCost.Sub(copayment),
		PatientResponsibility:  copayment,
		RequiresCopayment:      true,
		CopaymentLimitExceeded: false,
		Message:                MsgStandardCopayment,
	}
}
