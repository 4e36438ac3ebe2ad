package http

import (
	"net/http"

	"genset-rental-backend/internal/domain"
	"genset-rental-backend/internal/service"
)

type ContactHandler struct {
	contactSvc service.ContactService
}

func NewContactHandler(contactSvc service.ContactService) *ContactHandler {
	return &ContactHandler{contactSvc: contactSvc}
}

type contactStatusRequest struct {
	Status domain.ContactStatus `json:"status"`
}

func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var input domain.ContactInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, r, err)
		return
	}
	if _, err := h.contactSvc.Submit(r.Context(), input); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, messageResponse{Message: "Thank you, we will contact you shortly"})
}

func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	submissions, err := h.contactSvc.ListSubmissions(r.Context(), domain.ContactStatus(r.URL.Query().Get("status")))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, submissions)
}

func (h *ContactHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req contactStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.contactSvc.UpdateStatus(r.Context(), id, req.Status); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Status updated successfully"})
}
