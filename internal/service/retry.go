package service

import (
	"context"

	"genset-rental-backend/internal/domain"
	"genset-rental-backend/internal/logger"
)

// retry runs fn up to attempts times while it fails with a retryable error.
func retry(ctx context.Context, attempts int, fn func() error) error {
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = fn(); err == nil || !domain.IsRetryable(err) {
			return err
		}
		if ctx.Err() != nil {
			return err
		}
		logger.FromContext(ctx).Warn("Retrying after conflict", "attempt", attempt, "error", err)
	}
	return err
}

// isClientError reports whether err was caused by the request rather than
// by the server.
func isClientError(err error) bool {
	return domain.KindOf(err) != domain.KindStorage
}
