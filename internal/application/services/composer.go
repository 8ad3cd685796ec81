package services

import (
	"fmt"
	"time"

	"github.com/clinicdesk/clinic-backend/internal/domain"
	"github.com/google/uuid"
)

// NumberGenerator produces unique invoice numbers. It is injected so tests
// can pin the number.
type NumberGenerator func(now time.Time) string

// DefaultNumberGenerator formats numbers as INV-<unix millis>-<suffix>.
func DefaultNumberGenerator(now time.Time) string {
	return fmt.Sprintf("INV-%d-%s", now.UnixMilli(), uuid.NewString()[:8])
}

// InvoiceComposer assembles persist-ready invoices from adjudication results.
type InvoiceComposer struct {
	generateNumber NumberGenerator
	dueDays        int
}

func NewInvoiceComposer(generateNumber NumberGenerator, dueDays int) *InvoiceComposer {
	if generateNumber == nil {
		generateNumber = DefaultNumberGenerator
	}
	if dueDays <= 0 {
		dueDays = 30
	}
	return &InvoiceComposer{
		generateNumber: generateNumber,
		dueDays:        dueDays,
	}
}

func (c *InvoiceComposer) Compose(patientCedula string, now time.Time, orders []domain.OrderCostSummary, result domain.AdjudicationResult, notes string) *domain.Invoice {
	if notes == "" {
		notes = result.Message
	}
	return &domain.Invoice{
		InvoiceNumber:         c.generateNumber(now),
		PatientCedula:         patientCedula,
		BillingDate:           now,
		DueDate:               now.AddDate(0, 0, c.dueDays),
		TotalAmount:           result.TotalCost,
		CopaymentAmount:       result.CopaymentAmount,
		InsuranceCoverage:     result.InsuranceCoverage,
		PatientResponsibility: result.PatientResponsibility,
		Status:                domain.InvoicePending,
		Orders:                orders,
		Notes:                 notes,
	}
}
