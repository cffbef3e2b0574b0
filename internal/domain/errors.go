package domain

import (
	"errors"
	"fmt"
)

const FallbackRequestMessage = "request failed"

var (
	ErrRequestFailed = errors.New("request failed")
	ErrDecode        = errors.New("decode response")
	ErrUnauthorized  = errors.New("unauthorized")
)

// RequestError is a failure signalled by the backend, either through a non-2xx status
// or an envelope carrying success=false.
type RequestError struct {
	Status  int
	Message string
}

func NewRequestError(status int, message string) *RequestError {
	if message == "" {
		message = FallbackRequestMessage
	}
	return &RequestError{Status: status, Message: message}
}

func (e *RequestError) Error() string {
	return e.Message
}

func (e *RequestError) Is(target error) bool {
	return target == ErrRequestFailed
}

// DecodeError means the response body could not be read as the expected JSON shape.
type DecodeError struct {
	Status int
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response (status %d): %v", e.Status, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}
