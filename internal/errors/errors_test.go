package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/quizflash/internal/errors"
)

func TestAppError_IsMatchesCode(t *testing.T) {
	err := errors.NewInvalidInputError("quality", "must be between 0 and 5")

	assert.True(t, errors.Is(err, errors.ErrInvalidInput))
	assert.False(t, errors.Is(err, errors.ErrInvalidState))
	assert.Equal(t, 400, err.Status)
}

func TestAppError_IsThroughWrapping(t *testing.T) {
	err := fmt.Errorf("review card 7: %w", errors.NewInvalidStateError("ease_factor", "too low"))

	assert.True(t, stderrors.Is(err, errors.ErrInvalidState))

	appErr, ok := errors.As(err)
	assert.True(t, ok)
	assert.Equal(t, errors.ErrCodeInvalidState, appErr.Code)
	assert.Equal(t, 422, appErr.Status)
}

func TestAppError_ErrorString(t *testing.T) {
	inner := stderrors.New("disk full")
	err := errors.NewInternalError(inner)

	assert.Equal(t, "INTERNAL_ERROR: internal server error (disk full)", err.Error())
	assert.ErrorIs(t, err, inner)

	nf := errors.NewNotFoundError("card", 42)
	assert.Equal(t, "NOT_FOUND: card not found: 42", nf.Error())
}

func TestAs_PlainError(t *testing.T) {
	_, ok := errors.As(stderrors.New("plain"))
	assert.False(t, ok)
}
