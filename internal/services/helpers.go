package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "github.com/gastropro/gastropro/pkg/errors"
)

func ensureContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}

// storeError maps persistence failures onto the API error taxonomy: a missing
// row is ErrNotFound, everything else is treated as a transient store failure
// and surfaces as ErrStoreUnavailable (503). The wrapped cause stays attached
// for logging.
func storeError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrNotFound
	}
	return apperrors.ErrStoreUnavailable.WithInternal(fmt.Errorf("%s: %w", op, err))
}
