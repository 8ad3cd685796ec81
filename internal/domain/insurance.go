package domain

import (
	"fmt"
	"strings"
	"time"
)

// PolicyStatus is the administrative state of an insurance policy.
type PolicyStatus string

const (
	PolicyActive    PolicyStatus = "ACTIVE"
	PolicyInactive  PolicyStatus = "INACTIVE"
	PolicyExpired   PolicyStatus = "EXPIRED"
	PolicyCancelled PolicyStatus = "CANCELLED"
)

func ParsePolicyStatus(s string) (PolicyStatus, error) {
	switch strings.ToUpper(s) {
	case "ACTIVE":
		return PolicyActive, nil
	case "INACTIVE":
		return PolicyInactive, nil
	case "EXPIRED":
		return PolicyExpired, nil
	case "CANCELLED":
		return PolicyCancelled, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPolicyStatus, s)
	}
}

// InsurancePolicy is the insurance state of a patient at adjudication time.
// A nil *InsurancePolicy means no policy on file, which adjudicates the same
// as an inactive one.
type InsurancePolicy struct {
	CompanyName    string
	PolicyNumber   string
	Status         PolicyStatus
	ExpirationDate time.Time
}

// IsActive reports whether the policy covers services rendered at the given
// instant: the status must be ACTIVE and the expiration date strictly in the
// future.
func (p *InsurancePolicy) IsActive(now time.Time) bool {
	if p == nil {
		return false
	}
	return p.Status == PolicyActive && p.ExpirationDate.After(now)
}
