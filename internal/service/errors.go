package service

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrBalanceDrift = errors.New("balance drift")
	ErrAuthFailed   = errors.New("invalid username or credential")
)

// DriftError reports a stored balance that does not match the signed sum of
// the history.
type DriftError struct {
	Stored   decimal.Decimal
	Computed decimal.Decimal
}

func (e *DriftError) Error() string {
	return fmt.Sprintf("balance drift: stored %s, history sums to %s", e.Stored, e.Computed)
}

func (e *DriftError) Unwrap() error {
	return ErrBalanceDrift
}

// Difference is how far the stored balance was off.
func (e *DriftError) Difference() decimal.Decimal {
	return e.Stored.Sub(e.Computed)
}
