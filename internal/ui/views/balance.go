package views

import (
	"github.com/hance08/tally/internal/service"
	"github.com/hance08/tally/internal/ui"
	"github.com/hance08/tally/internal/utils"
	"github.com/pterm/pterm"
	"github.com/shopspring/decimal"
)

type BalanceItem struct {
	Owner    string // empty in single-ledger mode
	Balance  decimal.Decimal
	Count    int
	Income   decimal.Decimal
	Expense  decimal.Decimal
	Currency string
}

// NewBalanceItem collects what the balance view shows from a ledger snapshot.
func NewBalanceItem(owner string, ledger *service.LedgerService, currency string) BalanceItem {
	snap := ledger.Snapshot()
	income, expense := service.Totals(snap.History)
	return BalanceItem{
		Owner:    owner,
		Balance:  snap.Balance,
		Count:    len(snap.History),
		Income:   income,
		Expense:  expense,
		Currency: currency,
	}
}

func RenderBalance(item BalanceItem) error {
	title := "Balance"
	if item.Owner != "" {
		title = "Balance of " + item.Owner
	}
	pterm.DefaultSection.Println(title)

	tableData := pterm.TableData{
		{"Total Income", pterm.Green(utils.FormatAmount(item.Income, item.Currency))},
		{"Total Expense", pterm.Red(utils.FormatAmount(item.Expense, item.Currency))},
		{"Transactions", pterm.Sprint(item.Count)},
		{"Balance", ui.BalanceColor(item.Balance.IsNegative(), utils.FormatAmount(item.Balance, item.Currency))},
	}

	return pterm.DefaultTable.WithData(tableData).Render()
}
