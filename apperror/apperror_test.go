package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf_WrappedError(t *testing.T) {
	err := fmt.Errorf("adding item: %w", NotFound("product not found"))

	assert.Equal(t, KindNotFound, KindOf(err))
	assert.True(t, Is(err, KindNotFound))
	assert.Equal(t, "product not found", MessageOf(err))
}

func TestKindOf_PlainErrorIsInternal(t *testing.T) {
	err := errors.New("boom")

	assert.Equal(t, KindInternal, KindOf(err))
	assert.Equal(t, "internal server error", MessageOf(err))
	assert.False(t, Is(nil, KindInternal))
}

func TestUnavailable_KeepsCauseOutOfMessage(t *testing.T) {
	cause := errors.New("connection refused")
	err := Unavailable("store unavailable", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "store unavailable", MessageOf(err))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "NOT_FOUND", KindNotFound.String())
	assert.Equal(t, "INVALID_ARGUMENT", KindInvalidArgument.String())
	assert.Equal(t, "UNAVAILABLE", KindUnavailable.String())
	assert.Equal(t, "INTERNAL", KindInternal.String())
}
