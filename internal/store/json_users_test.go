package store

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hance08/tally/internal/model"
	"github.com/shopspring/decimal"
)

func TestUserFileStore_CreateAndList(t *testing.T) {
	s := NewUserFileStore(filepath.Join(t.TempDir(), "users.json"))

	for _, name := range []string{"zeynep", "ali"} {
		if err := s.CreateUser(name, "hash-"+name); err != nil {
			t.Fatalf("CreateUser(%s): %v", name, err)
		}
	}
	if err := s.CreateUser("ali", "other"); !errors.Is(err, ErrUserExists) {
		t.Errorf("duplicate CreateUser err = %v, want ErrUserExists", err)
	}

	names, err := s.ListUsers()
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if strings.Join(names, ",") != "ali,zeynep" {
		t.Errorf("ListUsers = %v", names)
	}

	u, err := s.GetUser("ali")
	if err != nil || u.Credential != "hash-ali" {
		t.Errorf("GetUser = %+v, %v", u, err)
	}
	if _, err := s.GetUser("nobody"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("GetUser(nobody) err = %v, want ErrUserNotFound", err)
	}
}

func TestUserFileStore_LedgersAreIsolated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	s := NewUserFileStore(path)
	if err := s.CreateUser("ali", "a"); err != nil {
		t.Fatal(err)
	}
	if err := s.CreateUser("veli", "v"); err != nil {
		t.Fatal(err)
	}

	if err := s.Ledger("ali").Save(sampleDocument()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// a second store instance on the same file sees the same data
	other := NewUserFileStore(path)
	ali, err := other.Ledger("ali").Load()
	if err != nil {
		t.Fatalf("Load(ali): %v", err)
	}
	assertSameDocument(t, ali, sampleDocument())

	veli, err := other.Ledger("veli").Load()
	if err != nil {
		t.Fatalf("Load(veli): %v", err)
	}
	assertSameDocument(t, veli, model.NewDocument())

	u, err := other.GetUser("ali")
	if err != nil || u.Credential != "a" {
		t.Errorf("saving a ledger must keep the credential, got %+v, %v", u, err)
	}
}

func TestUserFileStore_UnknownUser(t *testing.T) {
	s := NewUserFileStore(filepath.Join(t.TempDir(), "users.json"))

	if _, err := s.Ledger("ghost").Load(); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Load err = %v, want ErrUserNotFound", err)
	}
	err := s.Ledger("ghost").Save(sampleDocument())
	if !errors.Is(err, ErrWriteFailed) || !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Save err = %v, want ErrWriteFailed and ErrUserNotFound", err)
	}
	if err := s.UpdateCredential("ghost", "x"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("UpdateCredential err = %v, want ErrUserNotFound", err)
	}
}

func TestUserFileStore_UpdateCredential(t *testing.T) {
	s := NewUserFileStore(filepath.Join(t.TempDir(), "users.json"))
	if err := s.CreateUser("ali", "plain"); err != nil {
		t.Fatal(err)
	}
	if err := s.UpdateCredential("ali", "hashed"); err != nil {
		t.Fatalf("UpdateCredential: %v", err)
	}
	u, err := s.GetUser("ali")
	if err != nil || u.Credential != "hashed" {
		t.Errorf("GetUser = %+v, %v", u, err)
	}
}

func TestUserFileStore_Layout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	s := NewUserFileStore(path)
	if err := s.CreateUser("ali", "secret-hash"); err != nil {
		t.Fatal(err)
	}

	want := `{
  "ali": {
    "credential": "secret-hash",
    "balance": 0,
    "history": []
  }
}
`
	if got := string(mustRead(t, path)); got != want {
		t.Errorf("unexpected layout:\n%s\nwant:\n%s", got, want)
	}
}

func TestUserFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	mustWrite(t, path, `{"ali": `)
	s := NewUserFileStore(path)

	if _, err := s.Ledger("ali").Load(); !errors.Is(err, ErrUnreadable) {
		t.Fatalf("Load err = %v, want ErrUnreadable", err)
	}

	// the corrupt file was moved aside, so new users can be registered
	if err := s.CreateUser("ali", "x"); err != nil {
		t.Fatalf("CreateUser after corruption: %v", err)
	}
	if got := string(mustRead(t, path+".corrupt")); got != `{"ali": ` {
		t.Errorf("moved file content = %q", got)
	}
}

const brokenUsersJSON = `{
  "ali": {"credential": "a", "balance": 7, "history": [
    {"timestamp": "2025-01-02T03:04:05Z", "kind": "Income", "amount": 7, "category": null, "note": null}
  ]},
  "veli": {"credential": "v", "balance": 1, "history": [
    {"timestamp": "yesterday", "kind": "Income", "amount": 1, "category": null, "note": null}
  ]}
}`

func TestUserFileStore_BrokenEntryOnlyAffectsItsUser(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	mustWrite(t, path, brokenUsersJSON)
	s := NewUserFileStore(path)

	names, err := s.ListUsers()
	if err != nil || strings.Join(names, ",") != "ali,veli" {
		t.Fatalf("ListUsers = %v, %v", names, err)
	}

	ali, err := s.Ledger("ali").Load()
	if err != nil {
		t.Fatalf("Load(ali): %v", err)
	}
	if !ali.Balance.Equal(decimal.NewFromInt(7)) || len(ali.History) != 1 {
		t.Errorf("ali = %+v", ali)
	}

	// saving another user writes the broken entry back untouched
	if err := s.Ledger("ali").Save(sampleDocument()); err != nil {
		t.Fatalf("Save(ali): %v", err)
	}
	if !strings.Contains(string(mustRead(t, path)), `"timestamp": "yesterday"`) {
		t.Errorf("broken entry lost on another user's save:\n%s", mustRead(t, path))
	}

	// the broken ledger can not be written over before it is set aside
	if err := s.Ledger("veli").Save(model.NewDocument()); !errors.Is(err, ErrWriteFailed) || !errors.Is(err, ErrUnreadable) {
		t.Errorf("Save(veli) err = %v, want ErrWriteFailed and ErrUnreadable", err)
	}
	if err := s.UpdateCredential("veli", "new"); !errors.Is(err, ErrWriteFailed) {
		t.Errorf("UpdateCredential(veli) err = %v, want ErrWriteFailed", err)
	}

	veli, err := s.Ledger("veli").Load()
	if !errors.Is(err, ErrUnreadable) {
		t.Fatalf("Load(veli) err = %v, want ErrUnreadable", err)
	}
	if !veli.Balance.IsZero() || len(veli.History) != 0 {
		t.Errorf("veli should load empty, got %+v", veli)
	}
	aside := mustRead(t, path+".veli.corrupt")
	if !json.Valid(aside) || !strings.Contains(string(aside), `"yesterday"`) {
		t.Errorf("set aside entry = %q", aside)
	}

	// after the reset veli is usable again and keeps the credential
	veli, err = s.Ledger("veli").Load()
	if err != nil || len(veli.History) != 0 {
		t.Errorf("second Load(veli) = %+v, %v", veli, err)
	}
	if u, err := s.GetUser("veli"); err != nil || u.Credential != "v" {
		t.Errorf("GetUser(veli) = %+v, %v", u, err)
	}
	if err := s.Ledger("veli").Save(sampleDocument()); err != nil {
		t.Errorf("Save(veli) after reset: %v", err)
	}

	other, err := NewUserFileStore(path).Ledger("ali").Load()
	if err != nil {
		t.Fatal(err)
	}
	assertSameDocument(t, other, sampleDocument())
}

func TestUserFileStore_BadCredentialFailsTheFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	mustWrite(t, path, `{"ali": {"credential": 5, "balance": 0, "history": []}}`)

	if _, err := NewUserFileStore(path).ListUsers(); !errors.Is(err, ErrUnreadable) {
		t.Errorf("ListUsers err = %v, want ErrUnreadable", err)
	}
	if got := string(mustRead(t, path+".corrupt")); !strings.Contains(got, `"credential": 5`) {
		t.Errorf("moved file content = %q", got)
	}
}
