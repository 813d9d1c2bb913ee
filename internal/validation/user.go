package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/hance08/tally/internal/constants"
	"github.com/hance08/tally/internal/model"
	"github.com/hance08/tally/internal/store"
)

var (
	ErrInvalidUsername = errors.New("invalid username")
	ErrEmptySecret     = errors.New("credential can't be empty")
)

// UserStore defines the lookups needed to check a username against existing users
type UserStore interface {
	GetUser(name string) (*model.User, error)
}

// UserValidator handles username validation logic
type UserValidator struct {
	store UserStore
}

func NewUserValidator(store UserStore) *UserValidator {
	return &UserValidator{store: store}
}

// ValidateUsername validates the username format (without checking existence)
// Accepts any for prompt validator compatibility
func ValidateUsername(val any) error {
	name, ok := val.(string)
	if !ok {
		return fmt.Errorf("%w: must be a string", ErrInvalidUsername)
	}

	name = strings.TrimSpace(name)

	if name == "" {
		return fmt.Errorf("%w: can't be empty", ErrInvalidUsername)
	}

	if len(name) > constants.MaxNameLen {
		return fmt.Errorf("%w: too long (max %d characters)", ErrInvalidUsername, constants.MaxNameLen)
	}

	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return fmt.Errorf("%w: can't contain spaces or control characters", ErrInvalidUsername)
		}
	}

	if constants.ReservedNames[strings.ToLower(name)] {
		return fmt.Errorf("%w: '%s' is reserved", ErrInvalidUsername, name)
	}
	return nil
}

// ValidateNewUsername checks the format and that nobody uses the name yet
func (v *UserValidator) ValidateNewUsername(val any) error {
	if err := ValidateUsername(val); err != nil {
		return err
	}

	name := strings.TrimSpace(val.(string))
	_, err := v.store.GetUser(name)
	if err == nil {
		return fmt.Errorf("%w: %s", store.ErrUserExists, name)
	}
	if !errors.Is(err, store.ErrUserNotFound) {
		return fmt.Errorf("failed to check user: %w", err)
	}
	return nil
}

// ValidateSecret rejects blank credentials
func ValidateSecret(val any) error {
	secret, ok := val.(string)
	if !ok || strings.TrimSpace(secret) == "" {
		return ErrEmptySecret
	}
	return nil
}

// ValidateAmount validates a user typed amount
func ValidateAmount(val any) error {
	input, ok := val.(string)
	if !ok {
		return fmt.Errorf("amount must be a string")
	}

	if _, err := model.ParseAmount(input); err != nil {
		return fmt.Errorf("enter a positive number such as 150 or 150.50")
	}
	return nil
}

// ValidateCurrency validates a currency code format
// Accepts both string and any (for survey compatibility)
func ValidateCurrency(val any) error {
	var currency string

	switch v := val.(type) {
	case string:
		currency = v
	default:
		return fmt.Errorf("currency code must be a string")
	}

	currency = strings.TrimSpace(strings.ToUpper(currency))

	if currency == "" {
		return nil // Empty is allowed (will use default)
	}

	if len(currency) != 3 {
		return fmt.Errorf("currency code must be 3 characters (e.g. USD)")
	}

	for _, c := range currency {
		if c < 'A' || c > 'Z' {
			return fmt.Errorf("currency code must contain only letters")
		}
	}

	return nil
}
