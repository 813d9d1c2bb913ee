package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var ErrInvalidKind = errors.New("invalid transaction kind")

// Kind is the direction of a transaction. The amount itself is never negative.
type Kind string

const (
	Income  Kind = "Income"
	Expense Kind = "Expense"
)

// ParseKind accepts the canonical names in any case, plus the short and
// Turkish aliases used by the first versions of the tracker.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "income", "in", "gelir":
		return Income, nil
	case "expense", "out", "gider":
		return Expense, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidKind, s)
	}
}

func (k Kind) Valid() bool {
	return k == Income || k == Expense
}

func (k Kind) String() string {
	return string(k)
}

// Transaction is one immutable income or expense record.
type Transaction struct {
	Timestamp time.Time
	Kind      Kind
	Amount    decimal.Decimal
	Category  string
	Note      string
}

// Signed returns the amount with the sign implied by Kind.
func (t Transaction) Signed() decimal.Decimal {
	if t.Kind == Expense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// Validate checks the invariants of a stored transaction.
func (t Transaction) Validate() error {
	if !t.Kind.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidKind, string(t.Kind))
	}
	if !t.Amount.IsPositive() {
		return fmt.Errorf("%w: %s", ErrInvalidAmount, t.Amount)
	}
	return nil
}
