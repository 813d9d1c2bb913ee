package prompts

import "github.com/charmbracelet/huh"

type MenuAction string

const (
	MenuIncome    MenuAction = "income"
	MenuExpense   MenuAction = "expense"
	MenuBalance   MenuAction = "balance"
	MenuHistory   MenuAction = "history"
	MenuSummary   MenuAction = "summary"
	MenuReconcile MenuAction = "reconcile"
	MenuReset     MenuAction = "reset"
	MenuQuit      MenuAction = "quit"
)

// PromptMenuAction shows the main menu and returns the chosen action.
func PromptMenuAction() (MenuAction, error) {
	action := MenuIncome

	err := huh.NewSelect[MenuAction]().
		Title("What would you like to do?").
		Options(
			huh.NewOption("Add income", MenuIncome),
			huh.NewOption("Add expense", MenuExpense),
			huh.NewOption("Show balance", MenuBalance),
			huh.NewOption("Show history", MenuHistory),
			huh.NewOption("Category summary", MenuSummary),
			huh.NewOption("Check balance against history", MenuReconcile),
			huh.NewOption("Reset ledger", MenuReset),
			huh.NewOption("Quit", MenuQuit),
		).
		Value(&action).
		Height(10).
		Run()

	return action, err
}
