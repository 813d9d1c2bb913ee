package service

import (
	"slices"
	"strings"

	"github.com/hance08/tally/internal/constants"
	"github.com/hance08/tally/internal/model"
	"github.com/shopspring/decimal"
)

// CategoryTotal aggregates the transactions of one category.
type CategoryTotal struct {
	Category string
	Income   decimal.Decimal
	Expense  decimal.Decimal
	Count    int
}

func (c CategoryTotal) Net() decimal.Decimal {
	return c.Income.Sub(c.Expense)
}

// SummarizeByCategory groups a history by category, sorted by name.
// Transactions without a category are grouped under constants.UncategorizedLabel.
func SummarizeByCategory(history []model.Transaction) []CategoryTotal {
	index := make(map[string]int)
	var totals []CategoryTotal

	for _, tx := range history {
		category := tx.Category
		if category == "" {
			category = constants.UncategorizedLabel
		}

		i, ok := index[category]
		if !ok {
			i = len(totals)
			index[category] = i
			totals = append(totals, CategoryTotal{
				Category: category,
				Income:   decimal.Zero,
				Expense:  decimal.Zero,
			})
		}

		switch tx.Kind {
		case model.Income:
			totals[i].Income = totals[i].Income.Add(tx.Amount)
		case model.Expense:
			totals[i].Expense = totals[i].Expense.Add(tx.Amount)
		}
		totals[i].Count++
	}

	slices.SortFunc(totals, func(a, b CategoryTotal) int {
		return strings.Compare(a.Category, b.Category)
	})
	return totals
}

// Totals returns the income and expense sums of a history.
func Totals(history []model.Transaction) (income, expense decimal.Decimal) {
	income, expense = decimal.Zero, decimal.Zero
	for _, tx := range history {
		if tx.Kind == model.Income {
			income = income.Add(tx.Amount)
		} else {
			expense = expense.Add(tx.Amount)
		}
	}
	return income, expense
}

// HistoryFilter selects transactions for display. Zero values match everything.
type HistoryFilter struct {
	Kind     model.Kind
	Category string
	Limit    int // keep only the most recent Limit matches
}

// FilterHistory applies f, preserving recording order.
func FilterHistory(history []model.Transaction, f HistoryFilter) []model.Transaction {
	out := make([]model.Transaction, 0, len(history))
	for _, tx := range history {
		if f.Kind != "" && tx.Kind != f.Kind {
			continue
		}
		if f.Category != "" && !strings.EqualFold(tx.Category, f.Category) {
			continue
		}
		out = append(out, tx)
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[len(out)-f.Limit:]
	}
	return out
}
