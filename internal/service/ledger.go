package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/hance08/tally/internal/model"
	"github.com/hance08/tally/internal/store"
	"github.com/shopspring/decimal"
)

type options struct {
	now    func() time.Time
	logger *slog.Logger
}

type Option func(*options)

// WithClock sets the time source used to stamp new transactions.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func newOptions(opts []Option) options {
	o := options{now: time.Now, logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// LedgerService owns the balance and history of one ledger. Every mutation
// is applied to the stored document under the repository's write lock and
// saved before it becomes visible, so several services on one store do not
// overwrite each other. A failed save leaves the in-memory state as it was.
type LedgerService struct {
	mu     sync.Mutex
	repo   store.Repository
	doc    model.Document
	now    func() time.Time
	logger *slog.Logger

	loadWarning error
}

// NewLedgerService loads the ledger from repo. An unreadable store is not
// fatal: the ledger starts empty and the cause is kept in LoadWarning. A
// stored balance that disagrees with the history is replaced by the sum of
// the history.
func NewLedgerService(repo store.Repository, opts ...Option) (*LedgerService, error) {
	o := newOptions(opts)
	s := &LedgerService{
		repo:   repo,
		now:    o.now,
		logger: o.logger,
	}

	doc, err := repo.Load()
	if err != nil {
		if !errors.Is(err, store.ErrUnreadable) {
			return nil, fmt.Errorf("failed to load ledger: %w", err)
		}
		s.logger.Warn("ledger store unreadable, starting with an empty ledger", "error", err)
		s.loadWarning = err
		doc = model.NewDocument()
	}

	if !doc.Consistent() {
		drift := &DriftError{Stored: doc.Balance, Computed: doc.Sum()}
		s.logger.Warn("balance drift detected on load, using the history sum",
			"stored", drift.Stored.String(),
			"computed", drift.Computed.String(),
		)
		doc.Balance = drift.Computed
		s.loadWarning = errors.Join(s.loadWarning, drift)
	}

	s.doc = doc
	return s, nil
}

// LoadWarning returns what went wrong while loading, or nil. It wraps
// store.ErrUnreadable and/or ErrBalanceDrift.
func (s *LedgerService) LoadWarning() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadWarning
}

// Record appends an income or expense and moves the balance accordingly.
// amount must be strictly positive.
func (s *LedgerService) Record(kind model.Kind, amount decimal.Decimal, category, note string) (model.Transaction, error) {
	if !kind.Valid() {
		return model.Transaction{}, fmt.Errorf("%w: %q", model.ErrInvalidKind, string(kind))
	}
	if _, err := model.CheckAmount(amount); err != nil {
		return model.Transaction{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := model.Transaction{
		Timestamp: s.now().UTC().Truncate(time.Second),
		Kind:      kind,
		Amount:    amount,
		Category:  strings.TrimSpace(category),
		Note:      strings.TrimSpace(note),
	}

	next, err := s.repo.Update(func(cur model.Document) (model.Document, error) {
		if !cur.Consistent() {
			s.logger.Warn("stored balance drifted, using the history sum",
				"stored", cur.Balance.String(),
				"computed", cur.Sum().String(),
			)
			cur.Balance = cur.Sum()
		}
		return cur.Append(tx), nil
	})
	if err != nil {
		s.logger.Error("failed to save transaction", "kind", kind.String(), "amount", amount.String(), "error", err)
		return model.Transaction{}, fmt.Errorf("failed to record %s: %w", strings.ToLower(kind.String()), err)
	}
	s.doc = next

	s.logger.Debug("transaction recorded",
		"kind", kind.String(),
		"amount", amount.String(),
		"balance", next.Balance.String(),
	)
	return tx, nil
}

// Balance returns the running balance.
func (s *LedgerService) Balance() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Balance
}

// History returns a copy of all transactions in recording order.
func (s *LedgerService) History() []model.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone().History
}

// Snapshot returns a copy of the balance and history taken together.
func (s *LedgerService) Snapshot() model.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

// Reset clears the balance and the history together.
func (s *LedgerService) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.repo.Update(func(model.Document) (model.Document, error) {
		return model.NewDocument(), nil
	})
	if err != nil {
		s.logger.Error("failed to reset ledger", "error", err)
		return fmt.Errorf("failed to reset ledger: %w", err)
	}
	s.doc = next

	s.logger.Info("ledger reset")
	return nil
}

// Reconcile recomputes the stored balance from the stored history and
// returns it. When they differed, the repaired ledger is saved and a
// *DriftError is returned along with the recomputed balance.
func (s *LedgerService) Reconcile() (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var drift *DriftError
	next, err := s.repo.Update(func(cur model.Document) (model.Document, error) {
		sum := cur.Sum()
		if !cur.Balance.Equal(sum) {
			drift = &DriftError{Stored: cur.Balance, Computed: sum}
			cur.Balance = sum
		}
		return cur, nil
	})
	if err != nil {
		return s.doc.Balance, fmt.Errorf("failed to save reconciled ledger: %w", err)
	}
	s.doc = next

	if drift == nil {
		return next.Balance, nil
	}
	s.logger.Warn("balance drift detected",
		"stored", drift.Stored.String(),
		"computed", drift.Computed.String(),
	)
	return next.Balance, drift
}
