package handlers

import (
	"net/http"
	"strconv"

	"github.com/clinicdesk/clinic-backend/internal/interfaces/rest"
)

func (h *Handlers) GetInvoice(w http.ResponseWriter, r *http.Request) {
	invoiceNumber := r.PathValue("invoiceNumber")

	invoice, err := h.queryService.FindByNumber(r.Context(), invoiceNumber)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.ToInvoicePayload(invoice))
}

func (h *Handlers) GetBillingHistory(w http.ResponseWriter, r *http.Request) {
	cedula := r.PathValue("cedula")
	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)

	invoices, err := h.queryService.BillingHistory(r.Context(), cedula, limit, offset)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.ToInvoicePayloads(invoices))
}

func (h *Handlers) GetCopaymentStanding(w http.ResponseWriter, r *http.Request) {
	cedula := r.PathValue("cedula")
	year := queryInt(r, "year", 0)

	standing, err := h.queryService.AccumulatedCopayment(r.Context(), cedula, year)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.ToStandingPayload(standing))
}

func (h *Handlers) GetStatistics(w http.ResponseWriter, r *http.Request) {
	cedula := r.PathValue("cedula")

	stats, err := h.queryService.Statistics(r.Context(), cedula)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.ToStatisticsPayload(stats))
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
