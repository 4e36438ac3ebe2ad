package http

import (
	"net/http"

	"genset-rental-backend/internal/domain"
	"genset-rental-backend/internal/service"

	"github.com/shopspring/decimal"
)

type POHandler struct {
	poSvc service.PurchaseOrderService
}

func NewPOHandler(poSvc service.PurchaseOrderService) *POHandler {
	return &POHandler{poSvc: poSvc}
}

type createPOResponse struct {
	ID        int64           `json:"id"`
	PONumber  string          `json:"po_number"`
	TotalCost decimal.Decimal `json:"total_cost"`
	Message   string          `json:"message"`
}

type updateStatusRequest struct {
	Status domain.POStatus `json:"status"`
}

type updateStatusResponse struct {
	Message string          `json:"message"`
	Status  domain.POStatus `json:"status"`
}

func (h *POHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input domain.CreatePOInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, r, err)
		return
	}
	po, err := h.poSvc.CreatePO(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, createPOResponse{
		ID:        po.ID,
		PONumber:  po.PONumber,
		TotalCost: po.TotalCost,
		Message:   "Purchase order created successfully",
	})
}

func (h *POHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	detail, err := h.poSvc.GetPO(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (h *POHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.POFilter{
		Search: q.Get("search"),
		Status: domain.POStatus(q.Get("status")),
		Page:   pageFromQuery(r),
	}
	orders, page, err := h.poSvc.ListPOs(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Data: orders, Pagination: page})
}

func (h *POHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req updateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	po, err := h.poSvc.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updateStatusResponse{Message: "Status updated successfully", Status: po.Status})
}
