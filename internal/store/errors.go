package store

import "errors"

var (
	// ErrUnreadable means the backing data exists but could not be read or
	// parsed. Loads that fail this way still return an empty document.
	ErrUnreadable = errors.New("ledger store unreadable")
	// ErrWriteFailed means the document was not durably saved.
	ErrWriteFailed = errors.New("ledger store write failed")

	ErrUserExists   = errors.New("user already exists")
	ErrUserNotFound = errors.New("user not found")
)
