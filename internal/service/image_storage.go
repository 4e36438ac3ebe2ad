package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"path/filepath"
	"strings"

	"genset-rental-backend/internal/domain"
	"genset-rental-backend/internal/logger"
	"genset-rental-backend/internal/storage"
)

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type imageStorageService struct {
	store        storage.Storage
	maxSize      int64
	allowedTypes map[string]bool
}

// NewImageStorageService stores images of the allowed MIME types up to
// maxSize bytes each.
func NewImageStorageService(store storage.Storage, maxSize int64, allowedTypes []string) ImageStorageService {
	allowed := make(map[string]bool, len(allowedTypes))
	for _, t := range allowedTypes {
		allowed[strings.ToLower(t)] = true
	}
	return &imageStorageService{
		store:        store,
		maxSize:      maxSize,
		allowedTypes: allowed,
	}
}

func (s *imageStorageService) StoreDataURL(ctx context.Context, folder, dataURL string) (string, error) {
	if dataURL == "" {
		return "", nil
	}
	contentType, data, err := decodeDataURL(dataURL)
	if err != nil {
		return "", err
	}
	return s.save(ctx, folder, contentType, "", data)
}

func (s *imageStorageService) StoreUpload(ctx context.Context, folder string, upload *domain.Upload) (string, error) {
	if upload == nil || len(upload.Body) == 0 {
		return "", domain.NewValidationError("image file is empty")
	}
	contentType := strings.ToLower(strings.TrimSpace(strings.SplitN(upload.ContentType, ";", 2)[0]))
	return s.save(ctx, folder, contentType, filepath.Ext(upload.Filename), upload.Body)
}

func (s *imageStorageService) save(ctx context.Context, folder, contentType, ext string, data []byte) (string, error) {
	if !s.allowedTypes[contentType] {
		return "", domain.NewValidationError("unsupported image type %q", contentType)
	}
	if s.maxSize > 0 && int64(len(data)) > s.maxSize {
		return "", domain.NewValidationError("image exceeds the %d byte limit", s.maxSize)
	}
	if known, ok := imageExtensions[contentType]; ok {
		ext = known
	}

	key := storage.NewKey(folder, ext)
	logger.ExternalServiceCall(ctx, "storage", "SaveFile", "key", key, "size", len(data))
	err := s.store.SaveFile(ctx, key, bytes.NewReader(data))
	logger.ExternalServiceResult(ctx, "storage", "SaveFile", err, "key", key)
	if err != nil {
		return "", domain.NewStorageError("store image", err)
	}
	return s.store.PublicURL(key), nil
}

func (s *imageStorageService) Delete(ctx context.Context, ref string) error {
	key, ok := s.keyOf(ref)
	if !ok {
		return nil
	}
	logger.ExternalServiceCall(ctx, "storage", "DeleteFile", "key", key)
	err := s.store.DeleteFile(ctx, key)
	logger.ExternalServiceResult(ctx, "storage", "DeleteFile", err, "key", key)
	if err != nil {
		return domain.NewStorageError("delete image", err)
	}
	return nil
}

// keyOf maps a public URL handed out by save back to its storage key.
func (s *imageStorageService) keyOf(ref string) (string, bool) {
	prefix := s.store.PublicURL("")
	if ref == "" || !strings.HasPrefix(ref, prefix) {
		return "", false
	}
	key := strings.TrimPrefix(ref, prefix)
	return key, key != ""
}

// decodeDataURL parses "data:<mime>;base64,<payload>".
func decodeDataURL(dataURL string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return "", nil, domain.NewValidationError("signature must be a data URL")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, domain.NewValidationError("malformed data URL")
	}
	mediaType, isBase64 := strings.CutSuffix(meta, ";base64")
	if !isBase64 {
		return "", nil, domain.NewValidationError("data URL must be base64 encoded")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, domain.NewValidationError("data URL payload is not valid base64")
	}
	return strings.ToLower(mediaType), data, nil
}
