package storage

import (
	"fmt"

	"genset-rental-backend/internal/config"
)

// New builds the storage backend selected by cfg.
func New(cfg config.StorageConfig) (Storage, error) {
	switch cfg.Type {
	case "", "local":
		return NewLocalStorage(cfg.BaseURL, cfg.UploadDir)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
