package http

import (
	"net/http"

	"genset-rental-backend/internal/domain"
	"genset-rental-backend/internal/service"
)

type CustomerHandler struct {
	customerSvc service.CustomerService
}

func NewCustomerHandler(customerSvc service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerSvc: customerSvc}
}

func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := domain.CustomerFilter{
		Search: r.URL.Query().Get("search"),
		Page:   pageFromQuery(r),
	}
	customers, page, err := h.customerSvc.ListCustomers(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Data: customers, Pagination: page})
}

func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	c, err := h.customerSvc.GetCustomer(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input domain.CustomerInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, r, err)
		return
	}
	c, err := h.customerSvc.CreateCustomer(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var input domain.CustomerInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, r, err)
		return
	}
	c, err := h.customerSvc.UpdateCustomer(r.Context(), id, input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.customerSvc.DeleteCustomer(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Customer deleted successfully"})
}
