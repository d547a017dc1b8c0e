package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppErrorError(t *testing.T) {
	err := New("TEST", "something failed", http.StatusBadRequest)
	require.Equal(t, "something failed", err.Error())

	wrapped := err.WithInternal(errors.New("driver timeout"))
	require.Equal(t, "something failed: driver timeout", wrapped.Error())
	require.EqualError(t, wrapped.Unwrap(), "driver timeout")
}

func TestFromErrorPassesThroughAppError(t *testing.T) {
	require.Nil(t, FromError(nil))

	got := FromError(ErrNotFound)
	require.Same(t, ErrNotFound, got)

	// AppError found through wrapping layers is preserved.
	layered := fmt.Errorf("load notification: %w", ErrStoreUnavailable)
	got = FromError(layered)
	require.Equal(t, ErrStoreUnavailable.Code, got.Code)
	require.Equal(t, http.StatusServiceUnavailable, got.StatusCode)
}

func TestFromErrorDefaultsToInternal(t *testing.T) {
	got := FromError(errors.New("boom"))
	require.Equal(t, ErrInternalServer.Code, got.Code)
	require.EqualError(t, got.Internal, "boom")
}

func TestWrapKeepsOriginal(t *testing.T) {
	inner := errors.New("disk full")
	wrapped := Wrap(inner, "persist notification")
	require.True(t, errors.Is(wrapped, inner))
	require.Equal(t, http.StatusInternalServerError, wrapped.StatusCode)
}
