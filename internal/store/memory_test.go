package store

import (
	"errors"
	"testing"
)

func TestMemoryStore_SaveLoad(t *testing.T) {
	s := NewMemoryStore()

	doc, err := s.Load()
	if err != nil || len(doc.History) != 0 {
		t.Fatalf("fresh store Load = %+v, %v", doc, err)
	}

	want := sampleDocument()
	if err := s.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// mutating the saved value must not leak into the store
	want.History[0].Category = "changed"

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	assertSameDocument(t, got, sampleDocument())
}

func TestMemoryStore_Users(t *testing.T) {
	s := NewMemoryStore()
	if err := s.CreateUser("ali", "a"); err != nil {
		t.Fatal(err)
	}
	if err := s.CreateUser("ali", "a"); !errors.Is(err, ErrUserExists) {
		t.Errorf("duplicate CreateUser err = %v", err)
	}
	if err := s.Ledger("ali").Save(sampleDocument()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Ledger("ali").Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	assertSameDocument(t, got, sampleDocument())

	if err := s.Ledger("ghost").Save(sampleDocument()); !errors.Is(err, ErrWriteFailed) {
		t.Errorf("Save(ghost) err = %v, want ErrWriteFailed", err)
	}
}
