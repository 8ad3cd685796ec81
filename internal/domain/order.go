package domain

import (
	"fmt"
)

// OrderCategory classifies the line items of a clinical order.
type OrderCategory string

const (
	CategoryMedication    OrderCategory = "MEDICATION"
	CategoryProcedure     OrderCategory = "PROCEDURE"
	CategoryDiagnosticAid OrderCategory = "DIAGNOSTIC_AID"
)

// ParseOrderCategory maps the wire spelling of a category to its domain
// value. It accepts the lowercase forms used by upstream order services.
func ParseOrderCategory(s string) (OrderCategory, error) {
	switch s {
	case "medication", "MEDICATION":
		return CategoryMedication, nil
	case "procedure", "PROCEDURE":
		return CategoryProcedure, nil
	case "diagnostic_aid", "DIAGNOSTIC_AID":
		return CategoryDiagnosticAid, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownOrderCategory, s)
	}
}

// OrderLineCost is one billable line of a clinical order.
type OrderLineCost struct {
	Category OrderCategory
	ItemName string
	UnitCost Money
	Quantity int64
}

// LineTotal is unit cost times quantity, exact.
func (l OrderLineCost) LineTotal() Money {
	return l.UnitCost.MulInt(l.Quantity)
}

// OrderCostSummary aggregates the line costs of a single clinical order.
// Order-creation rules (one category per order) are enforced upstream before
// the billing core sees the data; NewOrderCostSummary still fails fast when
// a mixed order slips through.
type OrderCostSummary struct {
	OrderID string
	Lines   []OrderLineCost
}

func NewOrderCostSummary(orderID string, lines []OrderLineCost) (OrderCostSummary, error) {
	if orderID == "" {
		return OrderCostSummary{}, fmt.Errorf("%w: order without an identifier", ErrPreconditionViolated)
	}
	for i, line := range lines {
		if line.Quantity <= 0 {
			return OrderCostSummary{}, fmt.Errorf("%w: order %s line %d has non-positive quantity", ErrPreconditionViolated, orderID, i)
		}
		if line.Category != lines[0].Category {
			return OrderCostSummary{}, fmt.Errorf("%w: order %s mixes categories %s and %s",
				ErrPreconditionViolated, orderID, lines[0].Category, line.Category)
		}
	}
	return OrderCostSummary{OrderID: orderID, Lines: lines}, nil
}

// Total is the sum of all line totals. An order without lines totals zero.
func (s OrderCostSummary) Total() Money {
	total := ZeroMoney()
	for _, line := range s.Lines {
		total = total.Add(line.LineTotal())
	}
	return total
}

// SumOrderTotals sums the totals of all orders in a billing run.
func SumOrderTotals(orders []OrderCostSummary) Money {
	total := ZeroMoney()
	for _, o := range orders {
		total = total.Add(o.Total())
	}
	return total
}

// RequireBillableLines rejects an order set with nothing to bill. Callers
// that are fine billing a zero total simply skip this check.
func RequireBillableLines(orders []OrderCostSummary) error {
	for _, o := range orders {
		if len(o.Lines) > 0 {
			return nil
		}
	}
	return ErrEmptyOrderSet
}
