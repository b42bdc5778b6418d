package service

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPlan          = errors.New("invalid plan")
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrInvalidSignature     = errors.New("invalid webhook signature")
)

// MissingFieldError reports a required request field that was absent.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// GatewayError wraps a fault from the payment gateway; its message is
// surfaced to the caller as-is.
type GatewayError struct {
	Err error
}

func (e *GatewayError) Error() string {
	return e.Err.Error()
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}
