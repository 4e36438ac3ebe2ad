package http

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"genset-rental-backend/internal/logger"
	"genset-rental-backend/internal/storage"

	"github.com/gorilla/mux"
)

// ImageUploadHandler serves stored signatures and product photos.
type ImageUploadHandler struct {
	store storage.Storage
}

func NewImageUploadHandler(store storage.Storage) *ImageUploadHandler {
	return &ImageUploadHandler{store: store}
}

// HandleDownload streams the file stored under the {key} path variable.
func (h *ImageUploadHandler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimPrefix(mux.Vars(r)["key"], "/")
	if key == "" {
		http.Error(w, "Missing key", http.StatusBadRequest)
		return
	}

	exists, size, err := h.store.FileExists(r.Context(), key)
	if errors.Is(err, storage.ErrInvalidKey) {
		http.Error(w, "Invalid key", http.StatusBadRequest)
		return
	}
	if err != nil || !exists {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	file, err := h.store.ReadFile(r.Context(), key)
	if err != nil {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}
	defer file.Close()

	w.Header().Set("Content-Type", contentTypeFor(key))
	w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
	w.Header().Set("Cache-Control", "public, max-age=3600")

	if _, err := io.Copy(w, file); err != nil {
		logger.FromContext(r.Context()).Warn("Failed to stream file", "key", key, "error", err)
	}
}

func contentTypeFor(key string) string {
	switch strings.ToLower(filepath.Ext(key)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
