package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/maminech/sanitary/internal/model"
)

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrNilParameter = errors.New("parameter cannot be nil")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateProduct validates a product before persisting it.
func validateProduct(product *model.Product) error {
	if product == nil {
		return fmt.Errorf("%w: product", ErrNilParameter)
	}
	if product.ID == "" {
		return fmt.Errorf("%w: missing ID", model.ErrInvalidProduct)
	}
	return product.Validate()
}

// validateQuote validates a quote aggregate before persisting it.
func validateQuote(quote *model.Quote) error {
	if quote == nil {
		return fmt.Errorf("%w: quote", ErrNilParameter)
	}
	if quote.ID == "" {
		return fmt.Errorf("%w: missing ID", model.ErrInvalidQuote)
	}
	return quote.Validate()
}

// validatePlan validates a plan before persisting it.
func validatePlan(plan *model.Plan) error {
	if plan == nil {
		return fmt.Errorf("%w: plan", ErrNilParameter)
	}
	if plan.ID == "" {
		return errors.New("plan is missing an ID")
	}
	if plan.Name == "" {
		return errors.New("plan is missing a name")
	}
	if plan.Status == "" {
		return errors.New("plan is missing a status")
	}
	return nil
}
