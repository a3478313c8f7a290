package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	t.Run("WrapNil", func(t *testing.T) {
		assert.Nil(t, Wrap(nil, "context"))
	})

	t.Run("PreservesChain", func(t *testing.T) {
		wrapped := Wrap(ErrNotFound, "failed to get card")
		require.Error(t, wrapped)
		assert.True(t, Is(wrapped, ErrNotFound))
		assert.Equal(t, "failed to get card: not found", wrapped.Error())
	})

	t.Run("DoubleWrap", func(t *testing.T) {
		wrapped := Wrap(Wrap(ErrConflict, "commit failed"), "scan failed")
		assert.True(t, Is(wrapped, ErrConflict))
	})
}

func TestIs(t *testing.T) {
	assert.True(t, Is(ErrContention, ErrContention))
	assert.False(t, Is(ErrContention, ErrConflict))
	assert.True(t, Is(fmt.Errorf("outer: %w", ErrStorageUnavailable), ErrStorageUnavailable))
}

func TestDistinctErrors(t *testing.T) {
	// Each taxonomy entry must remain distinguishable: handlers map them to
	// different HTTP status codes.
	kinds := []error{
		ErrNotFound,
		ErrAlreadyExists,
		ErrConflict,
		ErrContention,
		ErrStorageUnavailable,
		ErrInvalidInput,
		ErrUnauthorized,
	}
	for i, a := range kinds {
		for j, b := range kinds {
			if i == j {
				continue
			}
			assert.False(t, Is(a, b), "%v should not match %v", a, b)
		}
	}
}
