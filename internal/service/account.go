package service

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hance08/tally/internal/store"
	"github.com/hance08/tally/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

// AccountService manages the multi-user layout: one ledger per username,
// guarded by a hashed credential.
type AccountService struct {
	repo       store.UserRepository
	bcryptCost int
	opts       []Option
	logger     *slog.Logger
}

// NewAccountService creates the service. opts are passed to every ledger it opens.
func NewAccountService(repo store.UserRepository, bcryptCost int, opts ...Option) *AccountService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AccountService{
		repo:       repo,
		bcryptCost: bcryptCost,
		opts:       opts,
		logger:     newOptions(opts).logger,
	}
}

// Register creates a user with an empty ledger.
func (a *AccountService) Register(name, secret string) error {
	name = strings.TrimSpace(name)
	if err := validation.ValidateUsername(name); err != nil {
		return err
	}
	if err := validation.ValidateSecret(secret); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), a.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash credential: %w", err)
	}
	if err := a.repo.CreateUser(name, string(hash)); err != nil {
		return err
	}

	a.logger.Info("user registered", "user", name)
	return nil
}

// Open checks the credential and loads the user's ledger.
func (a *AccountService) Open(name, secret string) (*LedgerService, error) {
	name = strings.TrimSpace(name)
	user, err := a.repo.GetUser(name)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrAuthFailed, name)
		}
		return nil, err
	}
	if user.Credential == "" {
		return nil, fmt.Errorf("%w: %s has no credential", ErrAuthFailed, name)
	}

	if !isHashed(user.Credential) {
		if subtle.ConstantTimeCompare([]byte(user.Credential), []byte(secret)) != 1 {
			return nil, fmt.Errorf("%w: %s", ErrAuthFailed, name)
		}
		a.upgradeCredential(name, secret)
	} else if err := bcrypt.CompareHashAndPassword([]byte(user.Credential), []byte(secret)); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrAuthFailed, name)
	}

	return NewLedgerService(a.repo.Ledger(name), a.opts...)
}

// Users returns the registered usernames.
func (a *AccountService) Users() ([]string, error) {
	return a.repo.ListUsers()
}

// upgradeCredential replaces a plain credential from an old file with its
// hash. Failing to do so does not block the login.
func (a *AccountService) upgradeCredential(name, secret string) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), a.bcryptCost)
	if err == nil {
		err = a.repo.UpdateCredential(name, string(hash))
	}
	if err != nil {
		a.logger.Warn("failed to hash stored plain credential", "user", name, "error", err)
		return
	}
	a.logger.Info("stored plain credential replaced by its hash", "user", name)
}

func isHashed(credential string) bool {
	_, err := bcrypt.Cost([]byte(credential))
	return err == nil
}
