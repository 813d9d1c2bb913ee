package model

import (
	"slices"

	"github.com/shopspring/decimal"
)

// Document is the persisted state of one ledger: the running balance and
// the history in recording order.
type Document struct {
	Balance decimal.Decimal
	History []Transaction
}

// NewDocument returns an empty ledger document.
func NewDocument() Document {
	return Document{
		Balance: decimal.Zero,
		History: make([]Transaction, 0),
	}
}

// Sum returns the signed total of the history, i.e. what Balance must be.
func (d Document) Sum() decimal.Decimal {
	sum := decimal.Zero
	for _, tx := range d.History {
		sum = sum.Add(tx.Signed())
	}
	return sum
}

// Consistent reports whether Balance equals the signed sum of History.
func (d Document) Consistent() bool {
	return d.Balance.Equal(d.Sum())
}

// Clone returns a copy that shares no slice storage with d.
func (d Document) Clone() Document {
	history := slices.Clone(d.History)
	if history == nil {
		history = make([]Transaction, 0)
	}
	return Document{Balance: d.Balance, History: history}
}

// Append returns a new document with tx recorded and the balance moved by
// its signed amount. d is left untouched.
func (d Document) Append(tx Transaction) Document {
	history := make([]Transaction, len(d.History), len(d.History)+1)
	copy(history, d.History)
	return Document{
		Balance: d.Balance.Add(tx.Signed()),
		History: append(history, tx),
	}
}

// Validate checks every transaction in the history.
func (d Document) Validate() error {
	for _, tx := range d.History {
		if err := tx.Validate(); err != nil {
			return err
		}
	}
	return nil
}
