package handlers

import (
	"log/slog"
	"net/http"

	"github.com/clinicdesk/clinic-backend/internal/application/services"
)

type Handlers struct {
	billingService *services.BillingService
	queryService   *services.QueryService
	logger         *slog.Logger
}

func NewHandlers(
	billingService *services.BillingService,
	queryService *services.QueryService,
	logger *slog.Logger,
) *Handlers {
	return &Handlers{
		billingService: billingService,
		queryService:   queryService,
		logger:         logger,
	}
}

// RegisterRoutes wires the billing API onto the mux.
func (h *Handlers) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/billing/adjudications", h.Adjudicate)
	mux.HandleFunc("GET /api/v1/invoices/{invoiceNumber}", h.GetInvoice)
	mux.HandleFunc("GET /api/v1/patients/{cedula}/invoices", h.GetBillingHistory)
	mux.HandleFunc("GET /api/v1/patients/{cedula}/copayment-standing", h.GetCopaymentStanding)
	mux.HandleFunc("GET /api/v1/patients/{cedula}/billing-statistics", h.GetStatistics)
	mux.HandleFunc("GET /healthz", h.Health)
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
