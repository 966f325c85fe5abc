// Package businessflow contains the core business logic for the dynamic pricing engine
package businessflow

import (
	"errors"
	"fmt"
)

// Business flow error constants
var (
	// Property-related errors
	ErrPropertyNotFound      = errors.New("property not found")
	ErrPropertyInactive      = errors.New("property is inactive")
	ErrPricingConfigNotFound = errors.New("pricing config not found")
	ErrPricingConfigInvalid  = errors.New("pricing config violates min/max or multiplier invariants")

	// Computation input errors
	ErrInvalidDate       = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidMonth      = errors.New("month must be between 1 and 12")
	ErrInvalidYear       = errors.New("year is out of range")
	ErrInvalidGuestCount = errors.New("guest count must be at least 1")

	// Market data write errors
	ErrSnapshotDateRequired   = errors.New("snapshot date is required")
	ErrCompetitorNameRequired = errors.New("competitor name is required")
	ErrNegativePrice          = errors.New("price cannot be negative")

	// Persistence errors (distinct from computation failures: the computed
	// price is still valid when the audit write fails)
	ErrHistoryWriteFailed = errors.New("pricing history write failed")

	// Export errors
	ErrNoHistoryToExport = errors.New("no pricing history matches the export filter")
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func IsPropertyNotFound(err error) bool {
	return errors.Is(err, ErrPropertyNotFound)
}

func IsPricingConfigNotFound(err error) bool {
	return errors.Is(err, ErrPricingConfigNotFound)
}

func IsHistoryWriteFailed(err error) bool {
	return errors.Is(err, ErrHistoryWriteFailed)
}

func IsInvalidDate(err error) bool {
	return errors.Is(err, ErrInvalidDate)
}

func IsInvalidMonth(err error) bool {
	return errors.Is(err, ErrInvalidMonth)
}

func IsNoHistoryToExport(err error) bool {
	return errors.Is(err, ErrNoHistoryToExport)
}
