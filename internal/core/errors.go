package core

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation error")
	ErrPricing      = errors.New("pricing failed")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden operation")
)

// asPricing converts a missing-record error into a pricing failure so that
// engines return a result the aggregator can act on. Anything else
// (connectivity, programming errors) passes through untouched.
func asPricing(err error, what string) error {
	if errors.Is(err, ErrNotFound) {
		return fmt.Errorf("%w: %s: %v", ErrPricing, what, err)
	}
	return err
}
