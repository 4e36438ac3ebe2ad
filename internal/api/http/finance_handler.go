package http

import (
	"net/http"

	"genset-rental-backend/internal/domain"
	"genset-rental-backend/internal/service"
)

type FinanceHandler struct {
	financeSvc service.FinanceService
	reportSvc  service.ReportService
}

func NewFinanceHandler(financeSvc service.FinanceService, reportSvc service.ReportService) *FinanceHandler {
	return &FinanceHandler{financeSvc: financeSvc, reportSvc: reportSvc}
}

func (h *FinanceHandler) List(w http.ResponseWriter, r *http.Request) {
	start, err := queryDate(r, "start_date")
	if err != nil {
		writeError(w, r, err)
		return
	}
	end, err := queryDate(r, "end_date")
	if err != nil {
		writeError(w, r, err)
		return
	}
	q := r.URL.Query()
	filter := domain.FinanceFilter{
		StartDate: start,
		EndDate:   end,
		Type:      domain.FinanceType(q.Get("type")),
		Search:    q.Get("search"),
		Page:      pageFromQuery(r),
	}
	entries, page, err := h.financeSvc.ListEntries(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Data: entries, Pagination: page})
}

func (h *FinanceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input domain.FinanceEntryInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, r, err)
		return
	}
	entry, err := h.financeSvc.CreateEntry(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (h *FinanceHandler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.reportSvc.GetDashboardStats(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// Summary reports totals for an optional start_date/end_date window.
func (h *FinanceHandler) Summary(w http.ResponseWriter, r *http.Request) {
	start, err := queryDate(r, "start_date")
	if err != nil {
		writeError(w, r, err)
		return
	}
	end, err := queryDate(r, "end_date")
	if err != nil {
		writeError(w, r, err)
		return
	}
	summary, err := h.reportSvc.GetSummary(r.Context(), domain.DateRange{Start: start, End: end})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *FinanceHandler) DueSoon(w http.ResponseWriter, r *http.Request) {
	orders, err := h.reportSvc.DueSoon(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *FinanceHandler) Overdue(w http.ResponseWriter, r *http.Request) {
	orders, err := h.reportSvc.Overdue(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}
