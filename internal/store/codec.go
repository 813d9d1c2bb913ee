package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/hance08/tally/internal/constants"
	"github.com/hance08/tally/internal/model"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// documentJSON is the on-disk layout of a ledger document.
type documentJSON struct {
	Balance decimal.Decimal   `json:"balance"`
	History []transactionJSON `json:"history"`
}

type transactionJSON struct {
	Timestamp string          `json:"timestamp"`
	Kind      model.Kind      `json:"kind"`
	Amount    decimal.Decimal `json:"amount"`
	Category  *string         `json:"category"`
	Note      *string         `json:"note"`
}

// userJSON is one entry of the multi-user mapping.
type userJSON struct {
	Credential string `json:"credential"`
	documentJSON
}

// legacy layouts written by hand or by older versions
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	constants.DateFormat,
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(time.RFC3339)
}

func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func toJSON(doc model.Document) documentJSON {
	out := documentJSON{
		Balance: doc.Balance,
		History: make([]transactionJSON, 0, len(doc.History)),
	}
	for _, tx := range doc.History {
		out.History = append(out.History, transactionJSON{
			Timestamp: formatTimestamp(tx.Timestamp),
			Kind:      tx.Kind,
			Amount:    tx.Amount,
			Category:  optional(tx.Category),
			Note:      optional(tx.Note),
		})
	}
	return out
}

func fromJSON(in documentJSON) (model.Document, error) {
	doc := model.NewDocument()
	doc.Balance = in.Balance
	for i, raw := range in.History {
		tx, err := fromTransactionJSON(raw)
		if err != nil {
			return model.Document{}, fmt.Errorf("history[%d]: %w", i, err)
		}
		doc.History = append(doc.History, tx)
	}
	return doc, nil
}

func fromTransactionJSON(raw transactionJSON) (model.Transaction, error) {
	ts, err := parseTimestamp(raw.Timestamp)
	if err != nil {
		return model.Transaction{}, err
	}
	tx := model.Transaction{
		Timestamp: ts,
		Kind:      raw.Kind,
		Amount:    raw.Amount,
		Category:  deref(raw.Category),
		Note:      deref(raw.Note),
	}
	if err := tx.Validate(); err != nil {
		return model.Transaction{}, err
	}
	return tx, nil
}

func marshalIndent(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// EncodeDocument renders doc in the stable, human readable file layout.
func EncodeDocument(doc model.Document) ([]byte, error) {
	return marshalIndent(toJSON(doc))
}

// DecodeDocument parses a ledger document. A bare number is accepted as the
// balance-only format of the first tracker versions and is turned into an
// opening transaction so that the balance stays derivable from history.
func DecodeDocument(data []byte, modTime time.Time) (model.Document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return model.NewDocument(), nil
	}
	if trimmed[0] != '{' {
		return decodeLegacyBalance(trimmed, modTime)
	}

	var raw documentJSON
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return model.Document{}, err
	}
	return fromJSON(raw)
}

func decodeLegacyBalance(data []byte, modTime time.Time) (model.Document, error) {
	balance, err := decimal.NewFromString(string(data))
	if err != nil {
		return model.Document{}, fmt.Errorf("not a ledger document: %w", err)
	}

	doc := model.NewDocument()
	if balance.IsZero() {
		return doc, nil
	}

	kind := model.Income
	if balance.IsNegative() {
		kind = model.Expense
	}
	return doc.Append(model.Transaction{
		Timestamp: modTime.UTC().Truncate(time.Second),
		Kind:      kind,
		Amount:    balance.Abs(),
		Category:  constants.OpeningBalanceCategory,
	}), nil
}

// encodeUsers renders the multi-user mapping. Keys are sorted by encoding/json.
// Entries that failed to decode are written back exactly as they were read.
func encodeUsers(users map[string]userRecord) ([]byte, error) {
	out := make(map[string]json.RawMessage, len(users))
	for name, u := range users {
		if u.broken != nil {
			out[name] = u.raw
			continue
		}
		entry, err := json.Marshal(userJSON{Credential: u.credential, documentJSON: toJSON(u.doc)})
		if err != nil {
			return nil, fmt.Errorf("user %q: %w", name, err)
		}
		out[name] = entry
	}
	return marshalIndent(out)
}

// decodeUsers parses the multi-user mapping. A mapping that is not valid
// JSON, or an entry without a readable credential, fails the whole file. An
// entry whose ledger does not decode only affects that user: it comes back
// with an empty document, its raw bytes, and the cause in broken.
func decodeUsers(data []byte) (map[string]userRecord, error) {
	users := make(map[string]userRecord)
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return users, nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, err
	}
	for name, entry := range raw {
		var head struct {
			Credential string `json:"credential"`
		}
		if err := json.Unmarshal(entry, &head); err != nil {
			return nil, fmt.Errorf("user %q: %w", name, err)
		}

		rec := userRecord{credential: head.Credential}
		doc, err := decodeUserDocument(entry)
		if err != nil {
			rec.doc = model.NewDocument()
			rec.raw = entry
			rec.broken = fmt.Errorf("user %q: %w", name, err)
		} else {
			rec.doc = doc
		}
		users[name] = rec
	}
	return users, nil
}

func decodeUserDocument(entry json.RawMessage) (model.Document, error) {
	var u userJSON
	if err := json.Unmarshal(entry, &u); err != nil {
		return model.Document{}, err
	}
	return fromJSON(u.documentJSON)
}

// userRecord is the in-memory form of one user entry.
type userRecord struct {
	credential string
	doc        model.Document

	// set when the entry's ledger could not be decoded
	raw    json.RawMessage
	broken error
}
