package service

import "errors"

// Sentinel errors mapped to HTTP statuses by the handlers layer.
var (
	ErrValidation         = errors.New("validation failed")
	ErrEmailTaken         = errors.New("email already registered")
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrNotFound           = errors.New("not found")
	ErrInsufficientFunds  = errors.New("insufficient liquidity")
)

// ValidationError wraps ErrValidation with a user-facing message.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func errValidation(msg string) error {
	return &ValidationError{Message: msg}
}
