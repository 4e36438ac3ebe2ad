package storage

import (
	"context"
	"errors"
	"io"
)

// ErrInvalidKey is returned for keys that would escape the storage root.
var ErrInvalidKey = errors.New("invalid storage key")

// Storage defines the interface for file storage backends.
// Keys are slash-separated relative paths such as "signatures/<uuid>.png".
type Storage interface {
	// SaveFile writes the reader's content under key, replacing any existing file.
	SaveFile(ctx context.Context, key string, reader io.Reader) error

	// ReadFile opens the file stored under key. The caller closes it.
	ReadFile(ctx context.Context, key string) (io.ReadCloser, error)

	// FileExists checks if a file exists and returns its size
	FileExists(ctx context.Context, key string) (exists bool, size int64, err error)

	// DeleteFile removes a file. Deleting a missing file is not an error.
	DeleteFile(ctx context.Context, key string) error

	// PublicURL returns the URL clients use to fetch key.
	PublicURL(key string) string
}
