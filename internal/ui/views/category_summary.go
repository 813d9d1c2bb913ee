package views

import (
	"github.com/hance08/tally/internal/service"
	"github.com/hance08/tally/internal/ui"
	"github.com/hance08/tally/internal/utils"
	"github.com/pterm/pterm"
)

func RenderCategorySummary(totals []service.CategoryTotal, currency string) error {
	if len(totals) == 0 {
		pterm.Warning.Println("No transactions found")
		return nil
	}

	ui.PrintL2Title("Summary by Category")

	tableData := pterm.TableData{
		{"Category", "Count", "Income", "Expense", "Net"},
	}
	for _, t := range totals {
		net := t.Net()
		tableData = append(tableData, []string{
			t.Category,
			pterm.Sprint(t.Count),
			utils.FormatAmount(t.Income, currency),
			utils.FormatAmount(t.Expense, currency),
			ui.BalanceColor(net.IsNegative(), utils.FormatAmount(net, currency)),
		})
	}

	return pterm.DefaultTable.WithHasHeader().WithData(tableData).Render()
}
