package apperrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStorageKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Storage("update reports", cause)

	assert.ErrorIs(t, err, ErrStorage)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "update reports")
}

func TestEnsure(t *testing.T) {
	assert.NoError(t, Ensure("op", nil))

	nf := NotFound("user", 5)
	assert.Same(t, nf, Ensure("op", nf))

	raw := errors.New("commit failed")
	wrapped := Ensure("commit", raw)
	assert.ErrorIs(t, wrapped, ErrStorage)
	assert.ErrorIs(t, wrapped, raw)
	assert.False(t, errors.Is(wrapped, ErrNotFound))
}

func TestValidationMessage(t *testing.T) {
	err := Validation("reason must be at most %d characters", 500)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "validation failed: reason must be at most 500 characters", err.Error())
}
