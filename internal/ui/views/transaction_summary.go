package views

import (
	"github.com/hance08/tally/internal/constants"
	"github.com/hance08/tally/internal/model"
	"github.com/hance08/tally/internal/ui"
	"github.com/hance08/tally/internal/utils"
	"github.com/pterm/pterm"
	"github.com/shopspring/decimal"
)

// RenderTransactionSummary shows a freshly recorded transaction and the
// balance it led to.
func RenderTransactionSummary(tx model.Transaction, balance decimal.Decimal, currency string) error {
	pterm.DefaultSection.Println("Transaction Summary")

	category := tx.Category
	if category == "" {
		category = constants.UncategorizedLabel
	}
	note := tx.Note
	if note == "" {
		note = "-"
	}

	tableData := pterm.TableData{
		{"Field", "Value"},
		{"Date", tx.Timestamp.Local().Format(constants.DateTimeFormat)},
		{"Type", ui.KindColor(tx.Kind, tx.Kind.String())},
		{"Amount", utils.FormatAmount(tx.Amount, currency)},
		{"Category", category},
		{"Note", note},
		{"New Balance", ui.BalanceColor(balance.IsNegative(), utils.FormatAmount(balance, currency))},
	}

	return pterm.DefaultTable.WithHasHeader().WithData(tableData).Render()
}
