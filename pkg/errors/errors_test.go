package errors

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypedErrors_SurviveWrapping(t *testing.T) {
	notFound := NewNotFoundError("content not found")
	wrapped := fmt.Errorf("resolve abc: %w", notFound)

	assert.True(t, IsNotFoundError(wrapped))
	assert.False(t, IsValidationError(wrapped))
	assert.Equal(t, ErrorTypeNotFound, TypeOf(wrapped))
	assert.Equal(t, "content not found", notFound.Error())
}

func TestRateLimitError_CarriesWait(t *testing.T) {
	err := fmt.Errorf("copy message: %w", NewRateLimitError(5*time.Second))

	rl, ok := AsRateLimitError(err)
	require.True(t, ok)
	assert.Equal(t, 5*time.Second, rl.RetryAfter)
	assert.Equal(t, ErrorTypeRateLimit, TypeOf(err))
}

func TestTypeOf_DefaultsToInternal(t *testing.T) {
	assert.Equal(t, ErrorTypeInternal, TypeOf(fmt.Errorf("boom")))
	assert.Equal(t, ErrorTypePermission, TypeOf(NewPermissionError("admin required")))
	assert.Equal(t, ErrorTypeConflict, TypeOf(NewConflictError("exists")))
}
