package cmd

import (
	"github.com/hance08/tally/internal/errhandler"
	"github.com/hance08/tally/internal/model"
	"github.com/hance08/tally/internal/service"
	"github.com/hance08/tally/internal/ui"
	"github.com/hance08/tally/internal/ui/prompts"
	"github.com/hance08/tally/internal/ui/views"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func NewMenuCmd(sess *session) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Interactive menu",
		Long:  `Open an interactive menu to record transactions and browse the ledger until you quit.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu(sess)
		},
	}
}

func runMenu(sess *session) error {
	ledger, err := sess.Ledger()
	if err != nil {
		return err
	}

	title := "tally"
	if sess.owner != "" {
		title = "tally: " + sess.owner
	}
	ui.PrintL1Title(title)

	for {
		printSeparator()

		action, err := prompts.PromptMenuAction()
		if err != nil {
			if errhandler.IsInterrupt(err) {
				return nil
			}
			return err
		}

		err = runMenuAction(sess, ledger, action)
		switch {
		case action == prompts.MenuQuit:
			pterm.Info.Println("Bye")
			return nil
		case errhandler.IsInterrupt(err):
			pterm.Warning.Println("Operation Cancelled")
		case err != nil:
			pterm.Error.Println(capitalize(err.Error()))
		}
	}
}

func runMenuAction(sess *session, ledger *service.LedgerService, action prompts.MenuAction) error {
	switch action {
	case prompts.MenuIncome, prompts.MenuExpense:
		kind := model.Expense
		if action == prompts.MenuIncome {
			kind = model.Income
		}
		input, err := prompts.PromptTransaction(kind)
		if err != nil {
			return err
		}
		return record(sess, input)
	case prompts.MenuBalance:
		return views.RenderBalance(views.NewBalanceItem(sess.owner, ledger, sess.currency()))
	case prompts.MenuHistory:
		return runHistory(sess, &historyFlags{})
	case prompts.MenuSummary:
		return views.RenderCategorySummary(service.SummarizeByCategory(ledger.History()), sess.currency())
	case prompts.MenuReconcile:
		return runReconcile(sess)
	case prompts.MenuReset:
		return runReset(sess, false)
	}
	return nil
}
