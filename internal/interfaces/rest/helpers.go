package rest

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/clinicdesk/clinic-backend/internal/application/services"
	"github.com/clinicdesk/clinic-backend/internal/domain"
)

// SuccessResponse is the envelope for all successful responses.
type SuccessResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(SuccessResponse{Success: true, Data: data})
}

type InvoicePayload struct {
	InvoiceNumber         string         `json:"invoiceNumber"`
	PatientCedula         string         `json:"patientCedula"`
	BillingDate           time.Time      `json:"billingDate"`
	DueDate               time.Time      `json:"dueDate"`
	TotalAmount           domain.Money   `json:"totalAmount"`
	CopaymentAmount       domain.Money   `json:"copaymentAmount"`
	InsuranceCoverage     domain.Money   `json:"insuranceCoverage"`
	PatientResponsibility domain.Money   `json:"patientResponsibility"`
	Status                string         `json:"status"`
	Orders                []OrderPayload `json:"orders,omitempty"`
	Notes                 string         `json:"notes,omitempty"`
}

type OrderPayload struct {
	OrderID string        `json:"orderId"`
	Items   []LinePayload `json:"items"`
	Total   domain.Money  `json:"total"`
}

type LinePayload struct {
	Category string       `json:"category"`
	ItemName string       `json:"itemName"`
	UnitCost domain.Money `json:"unitCost"`
	Quantity int64        `json:"quantity"`
}

type AdjudicationPayload struct {
	TotalCost              domain.Money   `json:"totalCost"`
	CopaymentAmount        domain.Money   `json:"copaymentAmount"`
	InsuranceCoverage      domain.Money   `json:"insuranceCoverage"`
	PatientResponsibility  domain.Money   `json:"patientResponsibility"`
	RequiresCopayment      bool           `json:"requiresCopayment"`
	CopaymentLimitExceeded bool           `json:"copaymentLimitExceeded"`
	Message                string         `json:"message"`
	AccumulatedCopayment   domain.Money   `json:"accumulatedCopayment"`
	Invoice                InvoicePayload `json:"invoice"`
}

type CopaymentStandingPayload struct {
	PatientCedula string       `json:"patientCedula"`
	Year          int          `json:"year"`
	Accumulated   domain.Money `json:"accumulated"`
	AnnualCap     domain.Money `json:"annualCap"`
	CapReached    bool         `json:"capReached"`
}

type StatisticsPayload struct {
	PatientCedula    string       `json:"patientCedula"`
	InvoiceCount     int          `json:"invoiceCount"`
	TotalBilled      domain.Money `json:"totalBilled"`
	TotalCopaid      domain.Money `json:"totalCopaid"`
	TotalCovered     domain.Money `json:"totalCovered"`
	TotalOutstanding domain.Money `json:"totalOutstanding"`
}

func ToInvoicePayload(invoice *domain.Invoice) InvoicePayload {
	orders := make([]OrderPayload, 0, len(invoice.Orders))
	for _, o := range invoice.Orders {
		items := make([]LinePayload, 0, len(o.Lines))
		for _, l := range o.Lines {
			items = append(items, LinePayload{
				Category: string(l.Category),
				ItemName: l.ItemName,
				UnitCost: l.UnitCost,
				Quantity: l.Quantity,
			})
		}
		orders = append(orders, OrderPayload{
			OrderID: o.OrderID,
			Items:   items,
			Total:   o.Total(),
		})
	}

	return InvoicePayload{
		InvoiceNumber:         invoice.InvoiceNumber,
		PatientCedula:         invoice.PatientCedula,
		BillingDate:           invoice.BillingDate,
		DueDate:               invoice.DueDate,
		TotalAmount:           invoice.TotalAmount,
		CopaymentAmount:       invoice.CopaymentAmount,
		InsuranceCoverage:     invoice.InsuranceCoverage,
		PatientResponsibility: invoice.PatientResponsibility,
		Status:                string(invoice.Status),
		Orders:                orders,
		Notes:                 invoice.Notes,
	}
}

func ToInvoicePayloads(invoices []*domain.Invoice) []InvoicePayload {
	payloads := make([]InvoicePayload, 0, len(invoices))
	for _, invoice := range invoices {
		payloads = append(payloads, ToInvoicePayload(invoice))
	}
	return payloads
}

func ToAdjudicationPayload(outcome *services.AdjudicationOutcome) AdjudicationPayload {
	return AdjudicationPayload{
		TotalCost:              outcome.Result.TotalCost,
		CopaymentAmount:        outcome.Result.CopaymentAmount,
		InsuranceCoverage:      outcome.Result.InsuranceCoverage,
		PatientResponsibility:  outcome.Result.PatientResponsibility,
		RequiresCopayment:      outcome.Result.RequiresCopayment,
		CopaymentLimitExceeded: outcome.Result.CopaymentLimitExceeded,
		Message:                outcome.Result.Message,
		AccumulatedCopayment:   outcome.AccumulatedCopayment,
		Invoice:                ToInvoicePayload(outcome.Invoice),
	}
}

func ToStandingPayload(standing *services.CopaymentStanding) CopaymentStandingPayload {
	return CopaymentStandingPayload{
		PatientCedula: standing.PatientCedula,
		Year:          standing.Year,
		Accumulated:   standing.Accumulated,
		AnnualCap:     standing.AnnualCap,
		CapReached:    standing.CapReached,
	}
}

func ToStatisticsPayload(stats *domain.BillingStatistics) StatisticsPayload {
	return StatisticsPayload{
		PatientCedula:    stats.PatientCedula,
		InvoiceCount:     stats.InvoiceCount,
		TotalBilled:      stats.TotalBilled,
		TotalCopaid:      stats.TotalCopaid,
		TotalCovered:     stats.TotalCovered,
		TotalOutstanding: stats.TotalOutstanding,
	}
}
