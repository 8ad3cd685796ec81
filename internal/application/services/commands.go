package services

import (
	"time"

	"github.com/clinicdesk/clinic-backend/internal/domain"
)

type AdjudicateCommand struct {
	PatientCedula string
	Orders        []OrderInput
	Insurance     *InsuranceInput
	Notes         string
	// Now is the adjudication instant. The zero value means "use the clock".
	Now time.Time
}

type OrderInput struct {
	OrderID  string
	Category string
	Items    []OrderItemInput
}

type OrderItemInput struct {
	ItemName string
	UnitCost domain.Money
	Quantity int64
}

type InsuranceInput struct {
	CompanyName    string
	PolicyNumber   string
	Status         string
	ExpirationDate time.Time
}
