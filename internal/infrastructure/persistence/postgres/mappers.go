package postgres

import (
	"fmt"

	"github.com/clinicdesk/clinic-backend/internal/domain"
)

// toDomainInvoice: maps db models to a domain invoice. Lines are grouped by
// order identifier, preserving insertion order.
func toDomainInvoice(m InvoiceModel, lines []InvoiceLineModel) (*domain.Invoice, error) {
	status, err := domain.ParseInvoiceStatus(m.Status)
	if err != nil {
		return nil, fmt.Errorf("invoice %s: %w", m.InvoiceNumber, err)
	}

	total, err := domain.ParseMoney(m.TotalAmount)
	if err != nil {
		return nil, fmt.Errorf("invoice %s total: %w", m.InvoiceNumber, err)
	}
	copayment, err := domain.ParseMoney(m.CopaymentAmount)
	if err != nil {
		return nil, fmt.Errorf("invoice %s copayment: %w", m.InvoiceNumber, err)
	}
	coverage, err := domain.ParseMoney(m.InsuranceCoverage)
	if err != nil {
		return nil, fmt.Errorf("invoice %s coverage: %w", m.InvoiceNumber, err)
	}
	responsibility, err := domain.ParseMoney(m.PatientResponsibility)
	if err != nil {
		return nil, fmt.Errorf("invoice %s responsibility: %w", m.InvoiceNumber, err)
	}

	orders, err := toDomainOrders(lines)
	if err != nil {
		return nil, fmt.Errorf("invoice %s: %w", m.InvoiceNumber, err)
	}

	return &domain.Invoice{
		InvoiceNumber:         m.InvoiceNumber,
		PatientCedula:         m.PatientCedula,
		BillingDate:           m.BillingDate,
		DueDate:               m.DueDate,
		TotalAmount:           total,
		CopaymentAmount:       copayment,
		InsuranceCoverage:     coverage,
		PatientResponsibility: responsibility,
		Status:                status,
		Orders:                orders,
		Notes:                 m.Notes,
	}, nil
}

func toDomainOrders(lines []InvoiceLineModel) ([]domain.OrderCostSummary, error) {
	var orders []domain.OrderCostSummary
	index := make(map[string]int)

	for _, l := range lines {
		category, err := domain.ParseOrderCategory(l.Category)
		if err != nil {
			return nil, err
		}
		unitCost, err := domain.ParseMoney(l.UnitCost)
		if err != nil {
			return nil, fmt.Errorf("order %s item %s: %w", l.OrderID, l.ItemName, err)
		}

		line := domain.OrderLineCost{
			Category: category,
			ItemName: l.ItemName,
			UnitCost: unitCost,
			Quantity: l.Quantity,
		}

		i, ok := index[l.OrderID]
		if !ok {
			index[l.OrderID] = len(orders)
			orders = append(orders, domain.OrderCostSummary{OrderID: l.OrderID})
			i = len(orders) - 1
		}
		orders[i].Lines = append(orders[i].Lines, line)
	}

	return orders, nil
}

// toLineModels flattens an invoice's orders into table rows.
func toLineModels(invoice *domain.Invoice) []InvoiceLineModel {
	var lines []InvoiceLineModel
	for _, order := range invoice.Orders {
		for _, l := range order.Lines {
			lines = append(lines, InvoiceLineModel{
				InvoiceNumber: invoice.InvoiceNumber,
				OrderID:       order.OrderID,
				Category:      string(l.Category),
				ItemName:      l.ItemName,
				UnitCost:      l.UnitCost.String(),
				Quantity:      l.Quantity,
			})
		}
	}
	return lines
}
