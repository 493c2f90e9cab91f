// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Database errors.
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEntry = errors.New("duplicate entry")

	// Catalog and quote errors.
	ErrProductNotFound    = errors.New("product not found")
	ErrQuoteNotFound      = errors.New("quote not found")
	ErrItemNotFound       = errors.New("quote item not found")
	ErrPlanNotFound       = errors.New("plan not found")
	ErrCurrencyMismatch   = errors.New("product currency does not match quote currency")
	ErrMaterialNotOffered = errors.New("material not offered for product")
	ErrInvalidStatus      = errors.New("invalid status transition")

	// Configuration errors.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}
