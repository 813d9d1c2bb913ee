package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/hance08/tally/internal/store"
)

func TestValidateUsername(t *testing.T) {
	testCases := []struct {
		name    string
		input   any
		wantErr bool
	}{
		{"simple", "ali", false},
		{"unicode", "zeynep_ş", false},
		{"empty", "  ", true},
		{"space inside", "ali veli", true},
		{"control char", "ali\x00", true},
		{"too long", strings.Repeat("a", 101), true},
		{"reserved", "Admin", true},
		{"not a string", 42, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateUsername(tc.input)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ValidateUsername(%v) err = %v, wantErr %v", tc.input, err, tc.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidUsername) {
				t.Errorf("expected ErrInvalidUsername, got %v", err)
			}
		})
	}
}

func TestUserValidator_ValidateNewUsername(t *testing.T) {
	s := store.NewMemoryStore()
	if err := s.CreateUser("ali", "x"); err != nil {
		t.Fatal(err)
	}
	v := NewUserValidator(s)

	if err := v.ValidateNewUsername("veli"); err != nil {
		t.Errorf("unexpected error for a new name: %v", err)
	}
	if err := v.ValidateNewUsername("ali"); !errors.Is(err, store.ErrUserExists) {
		t.Errorf("expected ErrUserExists, got %v", err)
	}
}

func TestValidateAmount(t *testing.T) {
	for _, ok := range []string{"1", "150.50", "0,5"} {
		if err := ValidateAmount(ok); err != nil {
			t.Errorf("ValidateAmount(%q) unexpected error: %v", ok, err)
		}
	}
	for _, bad := range []string{"", "0", "-3", "abc"} {
		if err := ValidateAmount(bad); err == nil {
			t.Errorf("ValidateAmount(%q) expected error", bad)
		}
	}
}

func TestValidateCurrency(t *testing.T) {
	for _, ok := range []string{"", "usd", "TRY"} {
		if err := ValidateCurrency(ok); err != nil {
			t.Errorf("ValidateCurrency(%q) unexpected error: %v", ok, err)
		}
	}
	for _, bad := range []string{"TL", "EURO", "U5D"} {
		if err := ValidateCurrency(bad); err == nil {
			t.Errorf("ValidateCurrency(%q) expected error", bad)
		}
	}
}
