package domain

import (
	"fmt"
	"strings"
	"time"
)

// InvoiceStatus represents the lifecycle state of an invoice. The billing
// core only ever creates PENDING invoices and sweeps them to OVERDUE; paid
// and cancelled transitions belong to the payment collaborator.
type InvoiceStatus string

const (
	InvoicePending   InvoiceStatus = "PENDING"
	InvoicePaid      InvoiceStatus = "PAID"
	InvoiceOverdue   InvoiceStatus = "OVERDUE"
	InvoiceCancelled InvoiceStatus = "CANCELLED"
)

func ParseInvoiceStatus(s string) (InvoiceStatus, error) {
	switch strings.ToUpper(s) {
	case "PENDING":
		return InvoicePending, nil
	case "PAID":
		return InvoicePaid, nil
	case "OVERDUE":
		return InvoiceOverdue, nil
	case "CANCELLED":
		return InvoiceCancelled, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownInvoiceStatus, s)
	}
}

// Invoice is the persist-ready billing record produced once per
// adjudication.
type Invoice struct {
	InvoiceNumber         string
	PatientCedula         string
	BillingDate           time.Time
	DueDate               time.Time
	TotalAmount           Money
	CopaymentAmount       Money
	InsuranceCoverage     Money
	PatientResponsibility Money
	Status                InvoiceStatus
	Orders                []OrderCostSummary
	Notes                 string
}

func (i *Invoice) MarkPaid() error {
	return i.transition(InvoicePaid)
}

// MarkOverdue flags a pending invoice whose due date has passed.
func (i *Invoice) MarkOverdue(now time.Time) error {
	if !now.After(i.DueDate) {
		return fmt.Errorf("%w: invoice %s is not yet due", ErrInvalidTransition, i.InvoiceNumber)
	}
	return i.transition(InvoiceOverdue)
}

func (i *Invoice) MarkCancelled() error {
	return i.transition(InvoiceCancelled)
}

func (i *Invoice) transition(target InvoiceStatus) error {
	if err := i.canTransitionTo(target); err != nil {
		return err
	}
	i.Status = target
	return nil
}

func (i *Invoice) canTransitionTo(target InvoiceStatus) error {
	switch i.Status {
	case InvoicePending:
		return i.allow(target, InvoicePaid, InvoiceOverdue, InvoiceCancelled)
	case InvoiceOverdue:
		return i.allow(target, InvoicePaid, InvoiceCancelled)
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, i.Status, target)
}

func (i *Invoice) allow(target InvoiceStatus, allowed ...InvoiceStatus) error {
	for _, a := range allowed {
		if a == target {
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, i.Status, target)
}

// IsTerminal reports whether the invoice can no longer change state.
func (i *Invoice) IsTerminal() bool {
	return i.Status == InvoicePaid || i.Status == InvoiceCancelled
}

// BillingStatistics are per-patient invoice totals, excluding cancelled
// invoices.
type BillingStatistics struct {
	PatientCedula    string
	InvoiceCount     int
	TotalBilled      Money
	TotalCopaid      Money
	TotalCovered     Money
	TotalOutstanding Money
}
