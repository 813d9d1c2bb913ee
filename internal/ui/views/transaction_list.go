package views

import (
	"github.com/hance08/tally/internal/constants"
	"github.com/hance08/tally/internal/model"
	"github.com/hance08/tally/internal/ui"
	"github.com/hance08/tally/internal/utils"
	"github.com/pterm/pterm"
)

type TransactionListView struct {
	Currency string
}

func NewTransactionListView(currency string) *TransactionListView {
	return &TransactionListView{Currency: currency}
}

// Render prints txs as a table. total is the size of the unfiltered history.
func (v *TransactionListView) Render(txs []model.Transaction, total int) error {
	if len(txs) == 0 {
		pterm.Warning.Println("No transactions found")
		return nil
	}

	if len(txs) < total {
		pterm.DefaultSection.Printf("Showing %d of %d transactions", len(txs), total)
	} else {
		pterm.DefaultSection.Println("Transaction History")
	}

	tableData := pterm.TableData{
		{"Date", "Type", "Category", "Note", "Amount"},
	}

	for _, tx := range txs {
		category := tx.Category
		if category == "" {
			category = pterm.Gray(constants.UncategorizedLabel)
		}
		note := tx.Note
		if note == "" {
			note = "-"
		}

		tableData = append(tableData, []string{
			tx.Timestamp.Local().Format(constants.DateTimeFormat),
			ui.KindColor(tx.Kind, tx.Kind.String()),
			category,
			note,
			ui.KindColor(tx.Kind, utils.FormatSigned(tx.Signed(), v.Currency)),
		})
	}

	if err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Render(); err != nil {
		return err
	}
	pterm.Info.Printf("Total: %d transactions\n", len(txs))
	return nil
}
