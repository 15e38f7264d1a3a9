package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fenggwsx/slashdm/internal/apperr"
)

func TestKindMatching(t *testing.T) {
	req := require.New(t)

	err := fmt.Errorf("post message: %w", apperr.Forbidden("not a participant"))

	req.ErrorIs(err, apperr.ErrForbidden)
	req.NotErrorIs(err, apperr.ErrNotFound)
	req.Equal(apperr.KindForbidden, apperr.KindOf(err))
}

func TestConflictCarriesChatID(t *testing.T) {
	req := require.New(t)

	appErr, ok := apperr.As(apperr.Conflict("chat already exists", 42))

	req.True(ok)
	req.Equal(uint(42), appErr.ChatID)
	req.ErrorIs(appErr, apperr.ErrConflict)
}

func TestStorageKeepsCause(t *testing.T) {
	req := require.New(t)
	cause := errors.New("connection refused")

	err := apperr.Storage(cause)

	req.ErrorIs(err, cause)
	req.ErrorIs(err, apperr.ErrStorage)
	req.Equal("storage unavailable", err.Message)
}

func TestUnclassifiedErrorIsStorage(t *testing.T) {
	require.Equal(t, apperr.KindStorage, apperr.KindOf(errors.New("boom")))
}
