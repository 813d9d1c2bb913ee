package ui

import (
	"fmt"

	"github.com/hance08/tally/internal/model"
	"github.com/pterm/pterm"
)

func PrintL1Title(format string, a ...any) {
	style := pterm.NewStyle(pterm.BgCyan, pterm.FgBlack, pterm.Bold)

	text := fmt.Sprintf(format, a...)

	paddedText := fmt.Sprintf(" %s   ", text)

	style.Println(paddedText)
}

func PrintL2Title(format string, a ...any) {
	style := pterm.NewStyle(pterm.FgCyan, pterm.Bold)

	text := fmt.Sprintf(format, a...)

	paddedText := fmt.Sprintf("# %s   ", text)

	style.Println(paddedText)
}

// KindColor paints text green for income and red for expenses.
func KindColor(kind model.Kind, text string) string {
	switch kind {
	case model.Income:
		return pterm.Green(text)
	case model.Expense:
		return pterm.Red(text)
	default:
		return text
	}
}

// BalanceColor paints a balance by its sign.
func BalanceColor(negative bool, text string) string {
	if negative {
		return pterm.Red(text)
	}
	return pterm.Green(text)
}
