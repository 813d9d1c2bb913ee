package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hance08/tally/internal/model"
	"github.com/shopspring/decimal"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "tally.db"), os.DirFS("../.."))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStore_SingleLedger(t *testing.T) {
	s := newTestSQLiteStore(t)

	doc, err := s.Load()
	if err != nil || len(doc.History) != 0 || !doc.Balance.IsZero() {
		t.Fatalf("fresh database Load = %+v, %v", doc, err)
	}

	if err := s.Save(sampleDocument()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	assertSameDocument(t, got, sampleDocument())

	// saving again replaces instead of appending
	if err := s.Save(got); err != nil {
		t.Fatalf("second Save: %v", err)
	}
	got, err = s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	assertSameDocument(t, got, sampleDocument())

	if err := s.Save(model.NewDocument()); err != nil {
		t.Fatalf("reset Save: %v", err)
	}
	got, _ = s.Load()
	if len(got.History) != 0 || !got.Balance.IsZero() {
		t.Errorf("expected empty ledger after reset, got %+v", got)
	}
}

func TestSQLiteStore_Users(t *testing.T) {
	s := newTestSQLiteStore(t)

	if err := s.CreateUser("veli", "v"); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if err := s.CreateUser("ali", "a"); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if err := s.CreateUser("ali", "again"); !errors.Is(err, ErrUserExists) {
		t.Errorf("duplicate CreateUser err = %v, want ErrUserExists", err)
	}

	// the single-user ledger is not a user
	if err := s.Save(model.NewDocument().Append(model.Transaction{
		Timestamp: day, Kind: model.Income, Amount: decimal.NewFromInt(5),
	})); err != nil {
		t.Fatal(err)
	}

	names, err := s.ListUsers()
	if err != nil || strings.Join(names, ",") != "ali,veli" {
		t.Errorf("ListUsers = %v, %v", names, err)
	}

	if err := s.Ledger("ali").Save(sampleDocument()); err != nil {
		t.Fatalf("Save(ali): %v", err)
	}
	ali, err := s.Ledger("ali").Load()
	if err != nil {
		t.Fatalf("Load(ali): %v", err)
	}
	assertSameDocument(t, ali, sampleDocument())

	veli, err := s.Ledger("veli").Load()
	if err != nil || len(veli.History) != 0 {
		t.Errorf("Load(veli) = %+v, %v", veli, err)
	}

	if err := s.UpdateCredential("ali", "hashed"); err != nil {
		t.Fatalf("UpdateCredential: %v", err)
	}
	u, err := s.GetUser("ali")
	if err != nil || u.Credential != "hashed" {
		t.Errorf("GetUser = %+v, %v", u, err)
	}

	if _, err := s.Ledger("ghost").Load(); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Load(ghost) err = %v, want ErrUserNotFound", err)
	}
	if err := s.Ledger("ghost").Save(sampleDocument()); !errors.Is(err, ErrWriteFailed) {
		t.Errorf("Save(ghost) err = %v, want ErrWriteFailed", err)
	}
}
