package store

import (
	"os"
	"testing"
	"time"

	"github.com/hance08/tally/internal/model"
	"github.com/shopspring/decimal"
)

var day = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func sampleDocument() model.Document {
	return model.NewDocument().
		Append(model.Transaction{
			Timestamp: day,
			Kind:      model.Income,
			Amount:    decimal.NewFromInt(1000),
			Category:  "Salary",
		}).
		Append(model.Transaction{
			Timestamp: day.Add(time.Hour),
			Kind:      model.Expense,
			Amount:    decimal.RequireFromString("150.5"),
			Category:  "Food",
			Note:      "groceries",
		})
}

func mustRead(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return data
}

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func assertSameDocument(t *testing.T, got, want model.Document) {
	t.Helper()
	if !got.Balance.Equal(want.Balance) {
		t.Fatalf("balance = %s, want %s", got.Balance, want.Balance)
	}
	if len(got.History) != len(want.History) {
		t.Fatalf("history length = %d, want %d", len(got.History), len(want.History))
	}
	for i := range want.History {
		g, w := got.History[i], want.History[i]
		if !g.Timestamp.Equal(w.Timestamp) || g.Kind != w.Kind || !g.Amount.Equal(w.Amount) ||
			g.Category != w.Category || g.Note != w.Note {
			t.Errorf("history[%d] = %+v, want %+v", i, g, w)
		}
	}
}
