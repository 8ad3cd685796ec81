package domain

import "errors"

var (
	// ErrInvalidAmount is returned when a cost-bearing monetary value is
	// constructed from a negative amount.
	ErrInvalidAmount = errors.New("monetary amount cannot be negative")

	// ErrPreconditionViolated is returned when data that an upstream
	// collaborator should have validated reaches the billing core anyway,
	// e.g. an order mixing medication and procedure line items.
	ErrPreconditionViolated = errors.New("billing precondition violated")

	// ErrEmptyOrderSet is returned when an adjudication is requested with
	// nothing to bill.
	ErrEmptyOrderSet = errors.New("order set contains no billable line items")

	ErrUnknownOrderCategory = errors.New("unknown order category")
	ErrUnknownPolicyStatus  = errors.New("unknown insurance policy status")
	ErrUnknownInvoiceStatus = errors.New("unknown invoice status")

	// ErrUnbalancedResult signals that copayment + insurance coverage does
	// not add up to the total cost for an active-insurance adjudication.
	ErrUnbalancedResult = errors.New("adjudication result does not balance")

	ErrInvalidTransition = errors.New("invalid invoice status transition")
)
