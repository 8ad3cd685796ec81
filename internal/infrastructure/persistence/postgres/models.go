package postgres

import (
	"time"
)

// InvoiceModel mirrors the invoices table. Monetary columns are scanned as
// text so the numeric values reach the domain without a float detour.
type InvoiceModel struct {
	InvoiceNumber         string
	PatientCedula         string
	BillingDate           time.Time
	DueDate               time.Time
	TotalAmount           string
	CopaymentAmount       string
	InsuranceCoverage     string
	PatientResponsibility string
	Status                string
	Notes                 string
}

// InvoiceLineModel mirrors the invoice_lines table.
type InvoiceLineModel struct {
	InvoiceNumber string
	OrderID       string
	Category      string
	ItemName      string
	UnitCost      string
	Quantity      int64
}
