package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/hance08/tally/internal/model"
	"github.com/shopspring/decimal"
)

// singleOwner is the owner key of the ledger used outside multi-user mode.
const singleOwner = ""

// Load implements Repository for the single-user ledger.
func (s *SQLiteStore) Load() (model.Document, error) {
	return s.Ledger(singleOwner).Load()
}

// Save implements Repository for the single-user ledger.
func (s *SQLiteStore) Save(doc model.Document) error {
	return s.Ledger(singleOwner).Save(doc)
}

// Update implements Repository for the single-user ledger.
func (s *SQLiteStore) Update(fn func(model.Document) (model.Document, error)) (model.Document, error) {
	return s.Ledger(singleOwner).Update(fn)
}

func (s *SQLiteStore) Ledger(owner string) Repository {
	return &sqliteLedger{store: s, owner: owner}
}

type sqliteLedger struct {
	store *SQLiteStore
	owner string
}

func (l *sqliteLedger) Load() (model.Document, error) {
	return l.load(l.store)
}

// load reads the owner's document through s, which may be a transaction.
func (l *sqliteLedger) load(s *SQLiteStore) (model.Document, error) {
	var balanceStr string
	err := s.db.QueryRow(`
		SELECT balance FROM ledgers WHERE owner = ?
	`, l.owner).Scan(&balanceStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			if l.owner == singleOwner {
				return model.NewDocument(), nil
			}
			return model.NewDocument(), fmt.Errorf("%w: %s", ErrUserNotFound, l.owner)
		}
		return model.NewDocument(), fmt.Errorf("%w: failed to query ledger: %w", ErrUnreadable, err)
	}

	balance, err := decimal.NewFromString(balanceStr)
	if err != nil {
		return model.NewDocument(), fmt.Errorf("%w: invalid balance %q: %w", ErrUnreadable, balanceStr, err)
	}

	rows, err := s.db.Query(`
		SELECT timestamp, kind, amount, category, note
		FROM transactions
		WHERE owner = ?
		ORDER BY seq
	`, l.owner)
	if err != nil {
		return model.NewDocument(), fmt.Errorf("%w: failed to query transactions: %w", ErrUnreadable, err)
	}
	defer rows.Close()

	doc := model.NewDocument()
	doc.Balance = balance
	for rows.Next() {
		var (
			raw       transactionJSON
			kind      string
			amountStr string
			category  sql.NullString
			note      sql.NullString
		)
		if err := rows.Scan(&raw.Timestamp, &kind, &amountStr, &category, &note); err != nil {
			return model.NewDocument(), fmt.Errorf("%w: failed to scan transaction: %w", ErrUnreadable, err)
		}
		raw.Kind = model.Kind(kind)
		if raw.Amount, err = decimal.NewFromString(amountStr); err != nil {
			return model.NewDocument(), fmt.Errorf("%w: invalid amount %q: %w", ErrUnreadable, amountStr, err)
		}
		if category.Valid {
			raw.Category = &category.String
		}
		if note.Valid {
			raw.Note = &note.String
		}

		tx, err := fromTransactionJSON(raw)
		if err != nil {
			return model.NewDocument(), fmt.Errorf("%w: history[%d]: %w", ErrUnreadable, len(doc.History), err)
		}
		doc.History = append(doc.History, tx)
	}
	if err := rows.Err(); err != nil {
		return model.NewDocument(), fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	return doc, nil
}

// Save replaces the owner's balance and transactions in one SQL transaction.
func (l *sqliteLedger) Save(doc model.Document) error {
	err := l.store.ExecTx(func(txStore *SQLiteStore) error {
		return l.replace(txStore, doc)
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	return nil
}

// Update reads and rewrites the owner's document inside one SQL
// transaction. Transactions start IMMEDIATE (see NewSQLiteStore), so a
// second writer waits for the first to commit before it reads.
func (l *sqliteLedger) Update(fn func(model.Document) (model.Document, error)) (model.Document, error) {
	unlock := lockPath(l.store.path)
	defer unlock()

	var (
		next  model.Document
		fnErr error
	)
	err := l.store.ExecTx(func(txStore *SQLiteStore) error {
		cur, err := l.load(txStore)
		if err != nil {
			return err
		}
		if next, fnErr = fn(cur); fnErr != nil {
			return fnErr
		}
		return l.replace(txStore, next)
	})
	if fnErr != nil {
		return model.Document{}, fnErr
	}
	if err != nil {
		return model.Document{}, fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	return next.Clone(), nil
}

func (l *sqliteLedger) replace(txStore *SQLiteStore, doc model.Document) error {
	if err := txStore.upsertBalance(l.owner, doc.Balance); err != nil {
		return err
	}

	if _, err := txStore.db.Exec(`DELETE FROM transactions WHERE owner = ?`, l.owner); err != nil {
		return fmt.Errorf("failed to clear transactions: %w", err)
	}

	stmt, err := txStore.db.Prepare(`
		INSERT INTO transactions (owner, seq, timestamp, kind, amount, category, note)
		VALUES (?, ?, ?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare transaction SQL: %w", err)
	}
	defer stmt.Close()

	for i, tx := range doc.History {
		_, err := stmt.Exec(
			l.owner, i,
			formatTimestamp(tx.Timestamp),
			string(tx.Kind),
			tx.Amount.String(),
			optional(tx.Category),
			optional(tx.Note),
		)
		if err != nil {
			return fmt.Errorf("failed to insert transaction #%d: %w", i, err)
		}
	}
	return nil
}

func (s *SQLiteStore) upsertBalance(owner string, balance decimal.Decimal) error {
	if owner == singleOwner {
		_, err := s.db.Exec(`
			INSERT INTO ledgers (owner, credential, balance) VALUES (?, '', ?)
			ON CONFLICT(owner) DO UPDATE SET balance = excluded.balance;
		`, owner, balance.String())
		if err != nil {
			return fmt.Errorf("failed to save balance: %w", err)
		}
		return nil
	}

	res, err := s.db.Exec(`UPDATE ledgers SET balance = ? WHERE owner = ?`, balance.String(), owner)
	if err != nil {
		return fmt.Errorf("failed to save balance: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to save balance: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrUserNotFound, owner)
	}
	return nil
}
