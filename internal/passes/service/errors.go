package service

import (
	"errors"
	"fmt"

	"github.com/aussiebroadwan/eventpass/internal/passes/domain"
)

var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrUserExists     = errors.New("phone or email already exists")
	ErrUserNotFound   = errors.New("user not found")
	ErrEventNotFound  = errors.New("event not found")
	ErrPassNotFound   = errors.New("pass not found")
	ErrQuotaExceeded  = errors.New("pass quota exceeded")
	ErrDuplicatePass  = errors.New("user already holds a pass for this event")
)

// QuotaExceededError reports which category ran out.
type QuotaExceededError struct {
	Category domain.Category
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("No more %s passes available", e.Category)
}

func (e *QuotaExceededError) Is(target error) bool { return target == ErrQuotaExceeded }

// DeliveryError marks a failure on the way to the recipient: upload or
// messaging channel. Store and render failures are never wrapped in it.
type DeliveryError struct {
	Err error
}

func (e *DeliveryError) Error() string { return e.Err.Error() }

func (e *DeliveryError) Unwrap() error { return e.Err }
