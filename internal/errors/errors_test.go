package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_IsMatchesByCode(t *testing.T) {
	err := InvalidArgument("currency", "unsupported currency")
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.False(t, errors.Is(err, ErrInvalidFormat))

	wrapped := fmt.Errorf("issue: %w", err)
	assert.True(t, errors.Is(wrapped, ErrInvalidArgument))
	assert.Equal(t, "currency", FieldOf(wrapped))
	assert.Equal(t, CodeInvalidArgument, CodeOf(wrapped))
}

func TestDomainError_Message(t *testing.T) {
	assert.Equal(t, "amount: must not be empty", InvalidArgument("amount", "must not be empty").Error())

	cause := errors.New("illegal base64 data at input byte 4")
	err := MalformedPayload("base64 decode", cause)
	assert.Equal(t, "base64 decode failed: illegal base64 data at input byte 4", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrMalformedPayload)

	assert.Equal(t, "", CodeOf(cause))
	assert.Equal(t, CodeUnsupportedVersion, CodeOf(UnsupportedVersion("2")))
}
