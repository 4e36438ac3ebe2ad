package http

import (
	"net/http"
	"strconv"

	"genset-rental-backend/internal/domain"
	"genset-rental-backend/internal/service"

	"github.com/shopspring/decimal"
)

type InvoiceHandler struct {
	invoiceSvc service.InvoiceService
}

func NewInvoiceHandler(invoiceSvc service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceSvc: invoiceSvc}
}

type recordPaymentResponse struct {
	ID               int64           `json:"id"`
	InvoiceNumber    string          `json:"invoice_number"`
	FinanceEntryID   int64           `json:"finance_entry_id"`
	TotalPaid        decimal.Decimal `json:"total_paid"`
	RemainingPayment decimal.Decimal `json:"remaining_payment"`
	Overpaid         bool            `json:"overpaid"`
	Message          string          `json:"message"`
}

func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input domain.RecordPaymentInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, r, err)
		return
	}
	receipt, err := h.invoiceSvc.RecordPayment(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, recordPaymentResponse{
		ID:               receipt.Invoice.ID,
		InvoiceNumber:    receipt.Invoice.InvoiceNumber,
		FinanceEntryID:   receipt.FinanceEntryID,
		TotalPaid:        receipt.TotalPaid,
		RemainingPayment: receipt.RemainingPayment,
		Overpaid:         receipt.Overpaid,
		Message:          "Invoice created successfully",
	})
}

func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	inv, err := h.invoiceSvc.GetInvoice(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.InvoiceFilter{
		Search: q.Get("search"),
		Page:   pageFromQuery(r),
	}
	if raw := q.Get("po_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, r, domain.NewValidationError("invalid po_id %q", raw))
			return
		}
		filter.POID = id
	}
	invoices, page, err := h.invoiceSvc.ListInvoices(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Data: invoices, Pagination: page})
}
