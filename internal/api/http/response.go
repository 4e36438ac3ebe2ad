package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"genset-rental-backend/internal/domain"
	"genset-rental-backend/internal/logger"

	"github.com/gorilla/mux"
)

const maxJSONBody = 1 << 20

// errorResponse is the body of every failed request.
type errorResponse struct {
	Message string              `json:"message"`
	Code    domain.ErrorKind    `json:"code"`
	Details []domain.FieldError `json:"details,omitempty"`
}

// listResponse wraps paginated collections.
type listResponse struct {
	Data       any               `json:"data"`
	Pagination domain.Pagination `json:"pagination"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func statusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict, domain.KindInvalidTransition:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps a service error to its status code. Storage failures are
// logged and reported without their cause.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var de *domain.Error
	if !errors.As(err, &de) {
		de = domain.NewStorageError("request", err)
	}

	status := statusFor(de.Kind)
	body := errorResponse{Message: de.Message, Code: de.Kind, Details: de.Details}
	if status == http.StatusInternalServerError {
		logger.FromContext(r.Context()).Error("Request failed", "path", r.URL.Path, "error", err)
		body = errorResponse{Message: "Internal server error", Code: domain.KindStorage}
	}
	writeJSON(w, status, body)
}

// decodeJSON reads a JSON request body into v.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody))
	if err := dec.Decode(v); err != nil {
		return domain.NewValidationError("Invalid request body")
	}
	return nil
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id < 1 {
		return 0, domain.NewValidationError("invalid id %q", mux.Vars(r)["id"])
	}
	return id, nil
}

func pageFromQuery(r *http.Request) domain.Page {
	q := r.URL.Query()
	number, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	return domain.NewPage(number, limit)
}

// queryDate parses an optional yyyy-mm-dd query parameter.
func queryDate(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, domain.NewValidationError("%s must be a date in yyyy-mm-dd format", name)
	}
	return &t, nil
}
