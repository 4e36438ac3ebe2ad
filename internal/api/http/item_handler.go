package http

import (
	"net/http"

	"genset-rental-backend/internal/domain"
	"genset-rental-backend/internal/service"
)

type ItemHandler struct {
	itemSvc service.ItemService
}

func NewItemHandler(itemSvc service.ItemService) *ItemHandler {
	return &ItemHandler{itemSvc: itemSvc}
}

func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, domain.ItemStatus(r.URL.Query().Get("status")))
}

func (h *ItemHandler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, domain.ItemStatusAvailable)
}

func (h *ItemHandler) list(w http.ResponseWriter, r *http.Request, status domain.ItemStatus) {
	items, err := h.itemSvc.ListItems(r.Context(), status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	it, err := h.itemSvc.GetItem(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, it)
}

func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input domain.ItemInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, r, err)
		return
	}
	it, err := h.itemSvc.CreateItem(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, it)
}

func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var input domain.ItemInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, r, err)
		return
	}
	it, err := h.itemSvc.UpdateItem(r.Context(), id, input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, it)
}

func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.itemSvc.DeleteItem(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Item deleted successfully"})
}
