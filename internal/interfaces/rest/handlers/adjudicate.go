package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/clinicdesk/clinic-backend/internal/application"
	"github.com/clinicdesk/clinic-backend/internal/application/services"
	"github.com/clinicdesk/clinic-backend/internal/domain"
	"github.com/clinicdesk/clinic-backend/internal/interfaces/rest"
)

type adjudicateRequest struct {
	PatientCedula string            `json:"patientCedula"`
	Orders        []orderRequest    `json:"orders"`
	Insurance     *insuranceRequest `json:"insurance"`
	Notes         string            `json:"notes"`
}

type orderRequest struct {
	OrderID  string             `json:"orderId"`
	Category string             `json:"category"`
	Items    []orderItemRequest `json:"items"`
}

type orderItemRequest struct {
	ItemName string       `json:"itemName"`
	UnitCost domain.Money `json:"unitCost"`
	Quantity int64        `json:"quantity"`
}

type insuranceRequest struct {
	CompanyName    string    `json:"companyName"`
	PolicyNumber   string    `json:"policyNumber"`
	Status         string    `json:"status"`
	ExpirationDate time.Time `json:"expirationDate"`
}

func (h *Handlers) Adjudicate(w http.ResponseWriter, r *http.Request) {
	var req adjudicateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.WriteError(w, application.NewInvalidInputError(err), h.logger)
		return
	}

	cmd := services.AdjudicateCommand{
		PatientCedula: req.PatientCedula,
		Notes:         req.Notes,
	}
	for _, o := range req.Orders {
		order := services.OrderInput{
			OrderID:  o.OrderID,
			Category: o.Category,
		}
		for _, item := range o.Items {
			order.Items = append(order.Items, services.OrderItemInput{
				ItemName: item.ItemName,
				UnitCost: item.UnitCost,
				Quantity: item.Quantity,
			})
		}
		cmd.Orders = append(cmd.Orders, order)
	}
	if req.Insurance != nil {
		cmd.Insurance = &services.InsuranceInput{
			CompanyName:    req.Insurance.CompanyName,
			PolicyNumber:   req.Insurance.PolicyNumber,
			Status:         req.Insurance.Status,
			ExpirationDate: req.Insurance.ExpirationDate,
		}
	}

	outcome, err := h.billingService.Adjudicate(r.Context(), cmd)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusCreated, rest.ToAdjudicationPayload(outcome))
}
