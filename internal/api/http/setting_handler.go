package http

import (
	"net/http"

	"genset-rental-backend/internal/domain"
	"genset-rental-backend/internal/service"

	"github.com/gorilla/mux"
)

type SettingHandler struct {
	settingSvc    service.SiteSettingService
	maxUploadSize int64
}

func NewSettingHandler(settingSvc service.SiteSettingService, maxUploadSize int64) *SettingHandler {
	return &SettingHandler{settingSvc: settingSvc, maxUploadSize: maxUploadSize}
}

type updateSettingRequest struct {
	Value string `json:"setting_value"`
}

func (h *SettingHandler) List(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingSvc.ListSettings(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (h *SettingHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingSvc.PublicSettings(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (h *SettingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input domain.SiteSettingInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, r, err)
		return
	}
	st, err := h.settingSvc.CreateSetting(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, st)
}

func (h *SettingHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateSettingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	st, err := h.settingSvc.UpdateSetting(r.Context(), mux.Vars(r)["key"], req.Value)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (h *SettingHandler) UploadHeroImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		writeError(w, r, domain.NewValidationError("Invalid multipart form"))
		return
	}
	image, err := formUpload(r, "image", h.maxUploadSize)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if image == nil {
		writeError(w, r, domain.NewValidationError("image file is required"))
		return
	}
	st, err := h.settingSvc.SetHeroImage(r.Context(), image)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}
