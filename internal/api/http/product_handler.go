package http

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"genset-rental-backend/internal/domain"
	"genset-rental-backend/internal/service"

	"github.com/shopspring/decimal"
)

type ProductHandler struct {
	productSvc    service.ProductService
	maxUploadSize int64
}

func NewProductHandler(productSvc service.ProductService, maxUploadSize int64) *ProductHandler {
	return &ProductHandler{productSvc: productSvc, maxUploadSize: maxUploadSize}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.productSvc.ListProducts(r.Context(), false)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// ListPublic lists the active catalogue for the public site.
func (h *ProductHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	products, err := h.productSvc.ListProducts(r.Context(), true)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	input, image, err := h.parseProductForm(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	p, err := h.productSvc.CreateProduct(r.Context(), input, image)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	input, image, err := h.parseProductForm(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	p, err := h.productSvc.UpdateProduct(r.Context(), id, input, image)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.productSvc.DeleteProduct(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Product deleted successfully"})
}

// parseProductForm accepts a JSON body or a multipart form with an optional
// "image" file.
func (h *ProductHandler) parseProductForm(r *http.Request) (domain.ProductInput, *domain.Upload, error) {
	var input domain.ProductInput
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		return input, nil, decodeJSON(r, &input)
	}

	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		return input, nil, domain.NewValidationError("Invalid multipart form")
	}
	input = domain.ProductInput{
		Name:        r.FormValue("name"),
		Brand:       r.FormValue("brand"),
		Capacity:    r.FormValue("capacity"),
		PowerOutput: r.FormValue("power_output"),
		FuelType:    r.FormValue("fuel_type"),
		Description: r.FormValue("description"),
		Features:    r.FormValue("features"),
		Status:      domain.ProductStatus(r.FormValue("status")),
	}
	if raw := r.FormValue("daily_rate"); raw != "" {
		rate, err := decimal.NewFromString(raw)
		if err != nil {
			return input, nil, domain.NewValidationError("daily_rate must be a number")
		}
		input.DailyRate = rate
	}
	if raw := r.FormValue("display_order"); raw != "" {
		order, err := strconv.Atoi(raw)
		if err != nil {
			return input, nil, domain.NewValidationError("display_order must be an integer")
		}
		input.DisplayOrder = order
	}

	image, err := formUpload(r, "image", h.maxUploadSize)
	if err != nil {
		return input, nil, err
	}
	return input, image, nil
}

// formUpload reads an optional file field. A missing field yields nil.
func formUpload(r *http.Request, field string, maxSize int64) (*domain.Upload, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, domain.NewValidationError("Invalid %s upload", field)
	}
	defer file.Close()

	var reader io.Reader = file
	if maxSize > 0 {
		if header.Size > maxSize {
			return nil, domain.NewValidationError("%s exceeds the %d byte limit", field, maxSize)
		}
		reader = io.LimitReader(file, maxSize+1)
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, domain.NewValidationError("Invalid %s upload", field)
	}
	return &domain.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        int64(len(body)),
		Body:        body,
	}, nil
}
