package store

import "github.com/hance08/tally/internal/model"

// Repository persists one ledger document as a whole. There are no partial
// updates: Save replaces everything Load would return.
type Repository interface {
	Load() (model.Document, error)
	Save(doc model.Document) error

	// Update reads the stored document, passes it to fn and saves what fn
	// returns, all under the store's write lock. Writers going through
	// Update never lose each other's changes. An error from fn is returned
	// as is and nothing is written.
	Update(fn func(model.Document) (model.Document, error)) (model.Document, error)
}

// UserRepository persists the multi-user layout, one ledger per user.
type UserRepository interface {
	CreateUser(name, credential string) error
	GetUser(name string) (*model.User, error)
	UpdateCredential(name, credential string) error
	ListUsers() ([]string, error)

	// Ledger returns the repository of a single user's document.
	Ledger(name string) Repository
}
