package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hance08/tally/internal/constants"
	"github.com/hance08/tally/internal/model"
	"github.com/shopspring/decimal"
)

const sampleJSON = `{
  "balance": 849.5,
  "history": [
    {
      "timestamp": "2025-01-01T12:00:00Z",
      "kind": "Income",
      "amount": 1000,
      "category": "Salary",
      "note": null
    },
    {
      "timestamp": "2025-01-01T13:00:00Z",
      "kind": "Expense",
      "amount": 150.5,
      "category": "Food",
      "note": "groceries"
    }
  ]
}
`

func TestFileStore_SaveLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	s := NewFileStore(path)

	if err := s.Save(sampleDocument()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if got := string(mustRead(t, path)); got != sampleJSON {
		t.Errorf("unexpected file content:\n%s\nwant:\n%s", got, sampleJSON)
	}
}

func TestFileStore_RoundTripIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	s := NewFileStore(path)
	if err := s.Save(sampleDocument()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	first := mustRead(t, path)

	for i := 0; i < 2; i++ {
		doc, err := s.Load()
		if err != nil {
			t.Fatalf("Load #%d: %v", i, err)
		}
		assertSameDocument(t, doc, sampleDocument())
		if err := s.Save(doc); err != nil {
			t.Fatalf("Save #%d: %v", i, err)
		}
		if again := mustRead(t, path); !bytes.Equal(first, again) {
			t.Fatalf("round trip #%d changed the file:\n%s\nwant:\n%s", i, again, first)
		}
	}
}

func TestFileStore_LoadMissing(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "absent.json"))

	doc, err := s.Load()
	if err != nil {
		t.Fatalf("Load on missing file should not fail: %v", err)
	}
	if !doc.Balance.IsZero() || len(doc.History) != 0 {
		t.Errorf("expected empty document, got %+v", doc)
	}
}

func TestFileStore_LoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	mustWrite(t, path, "  \n")

	doc, err := NewFileStore(path).Load()
	if err != nil || !doc.Balance.IsZero() || len(doc.History) != 0 {
		t.Errorf("Load on empty file = %+v, %v; want empty document", doc, err)
	}
}

func TestFileStore_LoadCorrupt(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{"malformed json", `{"balance": 10, "history": [`},
		{"unknown kind", `{"balance": 1, "history": [{"timestamp": "2025-01-01T00:00:00Z", "kind": "Gift", "amount": 1}]}`},
		{"negative amount", `{"balance": -1, "history": [{"timestamp": "2025-01-01T00:00:00Z", "kind": "Expense", "amount": -1}]}`},
		{"bad timestamp", `{"balance": 1, "history": [{"timestamp": "yesterday", "kind": "Income", "amount": 1}]}`},
		{"garbage", `hello`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "ledger.json")
			mustWrite(t, path, tc.content)

			doc, err := NewFileStore(path).Load()
			if !errors.Is(err, ErrUnreadable) {
				t.Fatalf("expected ErrUnreadable, got %v", err)
			}
			if !doc.Balance.IsZero() || len(doc.History) != 0 {
				t.Errorf("expected empty document, got %+v", doc)
			}
			if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
				t.Errorf("corrupt file should have been moved aside")
			}
			if got := string(mustRead(t, path+".corrupt")); got != tc.content {
				t.Errorf("moved file content = %q, want %q", got, tc.content)
			}
		})
	}
}

func TestFileStore_LoadCorruptKeepsCause(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	mustWrite(t, path, `{"balance": `)

	_, err := NewFileStore(path).Load()
	var syntaxErr *json.SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Errorf("expected a *json.SyntaxError in the chain, got %v", err)
	}
}

func TestFileStore_LoadUnreadable(t *testing.T) {
	// a directory can be stat'ed but not read as a document
	path := filepath.Join(t.TempDir(), "ledger.json")
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatal(err)
	}

	doc, err := NewFileStore(path).Load()
	if !errors.Is(err, ErrUnreadable) {
		t.Fatalf("expected ErrUnreadable, got %v", err)
	}
	if len(doc.History) != 0 {
		t.Errorf("expected empty document")
	}
	if info, err := os.Stat(path); err != nil || !info.IsDir() {
		t.Errorf("unreadable path must be left in place")
	}
}

func TestFileStore_LoadLegacyBalance(t *testing.T) {
	testCases := []struct {
		content  string
		kind     model.Kind
		amount   string
		nHistory int
	}{
		{"1500.75", model.Income, "1500.75", 1},
		{"-20\n", model.Expense, "20", 1},
		{"0.0", "", "", 0},
	}

	for _, tc := range testCases {
		path := filepath.Join(t.TempDir(), "hesap_verisi.txt")
		mustWrite(t, path, tc.content)

		doc, err := NewFileStore(path).Load()
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", tc.content, err)
		}
		if len(doc.History) != tc.nHistory {
			t.Fatalf("%q: history length = %d, want %d", tc.content, len(doc.History), tc.nHistory)
		}
		if !doc.Consistent() {
			t.Errorf("%q: legacy document is not consistent", tc.content)
		}
		if tc.nHistory == 0 {
			continue
		}
		tx := doc.History[0]
		if tx.Kind != tc.kind || !tx.Amount.Equal(decimal.RequireFromString(tc.amount)) ||
			tx.Category != constants.OpeningBalanceCategory {
			t.Errorf("%q: unexpected opening transaction %+v", tc.content, tx)
		}
	}
}

func TestFileStore_SaveFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	mustWrite(t, blocker, "not a directory")

	s := NewFileStore(filepath.Join(blocker, "ledger.json"))
	err := s.Save(sampleDocument())
	if !errors.Is(err, ErrWriteFailed) {
		t.Fatalf("expected ErrWriteFailed, got %v", err)
	}
}

func TestFileStore_SaveLeavesNoTemporaryFiles(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(filepath.Join(dir, "ledger.json"))

	for i := 0; i < 3; i++ {
		if err := s.Save(sampleDocument()); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "ledger.json" {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("unexpected directory content: %v", names)
	}
}

func TestFileStore_SaveCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "ledger.json")
	if err := NewFileStore(path).Save(model.NewDocument()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got := string(mustRead(t, path)); got != "{\n  \"balance\": 0,\n  \"history\": []\n}\n" {
		t.Errorf("unexpected empty document layout: %q", got)
	}
}

func TestFileStore_LoadCorruptTwiceKeepsBothCopies(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	s := NewFileStore(path)

	mustWrite(t, path, "first")
	if _, err := s.Load(); !errors.Is(err, ErrUnreadable) {
		t.Fatalf("first Load err = %v, want ErrUnreadable", err)
	}
	mustWrite(t, path, "second")
	_, err := s.Load()
	if !errors.Is(err, ErrUnreadable) {
		t.Fatalf("second Load err = %v, want ErrUnreadable", err)
	}

	if got := string(mustRead(t, path+".corrupt")); got != "first" {
		t.Errorf("%s.corrupt = %q, want first", path, got)
	}
	if got := string(mustRead(t, path+".corrupt.1")); got != "second" {
		t.Errorf("%s.corrupt.1 = %q, want second", path, got)
	}
	if !bytes.Contains([]byte(err.Error()), []byte(".corrupt.1")) {
		t.Errorf("error should name the new copy: %v", err)
	}
}
