package domain

// AdjudicationResult is the outcome of a single billing adjudication: the
// split of the total cost between patient and insurer.
type AdjudicationResult struct {
	TotalCost              Money
	CopaymentAmount        Money
	InsuranceCoverage      Money
	PatientResponsibility  Money
	RequiresCopayment      bool
	CopaymentLimitExceeded bool
	Message                string
}

// Validate checks the value-conservation invariant. When the insurer is
// involved (any non-zero coverage or a waived copayment) the copayment and
// coverage must add up to the total cost; a full-patient-pay result must put
// the whole total on the patient.
func (r AdjudicationResult) Validate() error {
	if r.InsuranceCoverage.IsZero() && !r.CopaymentLimitExceeded && r.PatientResponsibility.Equal(r.TotalCost) {
		return nil
	}
	if r.CopaymentAmount.Add(r.InsuranceCoverage).Equal(r.TotalCost) {
		return nil
	}
	return ErrUnbalancedResult
}
