package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/hance08/tally/internal/model"
	sqlite "github.com/mattn/go-sqlite3"
)

func (s *SQLiteStore) CreateUser(name, credential string) error {
	stmt, err := s.db.Prepare(`
		INSERT INTO ledgers (owner, credential, balance)
		VALUES (?, ?, '0');
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare SQL : %w", err)
	}
	defer stmt.Close()

	if _, err := stmt.Exec(name, credential); err != nil {
		var sqliteErr sqlite.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite.ErrConstraint {
			return fmt.Errorf("%w: %s", ErrUserExists, name)
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetUser(name string) (*model.User, error) {
	u := &model.User{Name: name}
	err := s.db.QueryRow(`
		SELECT credential FROM ledgers WHERE owner = ? AND owner <> ''
	`, name).Scan(&u.Credential)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrUserNotFound, name)
		}
		return nil, fmt.Errorf("failed to query user '%s' : %w", name, err)
	}
	return u, nil
}

func (s *SQLiteStore) UpdateCredential(name, credential string) error {
	res, err := s.db.Exec(`
		UPDATE ledgers SET credential = ? WHERE owner = ? AND owner <> ''
	`, credential, name)
	if err != nil {
		return fmt.Errorf("failed to update credential: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update credential: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrUserNotFound, name)
	}
	return nil
}

// ListUsers returns the usernames in sorted order.
func (s *SQLiteStore) ListUsers() ([]string, error) {
	rows, err := s.db.Query(`
		SELECT owner FROM ledgers WHERE owner <> '' ORDER BY owner
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
