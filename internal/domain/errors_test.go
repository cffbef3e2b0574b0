package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRequestErrorFallsBackToGenericMessage(t *testing.T) {
	err := NewRequestError(500, "")
	assert.Equal(t, FallbackRequestMessage, err.Error())
	assert.Equal(t, 500, err.Status)

	err = NewRequestError(409, "role is full")
	assert.Equal(t, "role is full", err.Error())
}

func TestRequestErrorMatchesSentinelWhenWrapped(t *testing.T) {
	err := fmt.Errorf("login: %w", NewRequestError(401, "bad credentials"))

	assert.ErrorIs(t, err, ErrRequestFailed)
	assert.NotErrorIs(t, err, ErrDecode)

	var reqErr *RequestError
	assert.True(t, errors.As(err, &reqErr))
	assert.Equal(t, 401, reqErr.Status)
}

func TestDecodeErrorUnwraps(t *testing.T) {
	var syntaxErr *json.SyntaxError
	cause := json.Unmarshal([]byte("<html>"), &struct{}{})
	err := &DecodeError{Status: 502, Err: cause}

	assert.ErrorIs(t, err, ErrDecode)
	assert.NotErrorIs(t, err, ErrRequestFailed)
	assert.True(t, errors.As(err, &syntaxErr))
	assert.Contains(t, err.Error(), "status 502")
}
