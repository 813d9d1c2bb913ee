package prompts

import (
	"github.com/charmbracelet/huh"
	"github.com/hance08/tally/internal/config"
)

// SetupAnswers holds the choices of the first-run wizard.
type SetupAnswers struct {
	Currency  string
	Backend   string
	MultiUser bool
}

func PromptSetup(current *config.Config) (SetupAnswers, error) {
	answers := SetupAnswers{
		Currency:  current.Defaults.Currency,
		Backend:   current.Storage.Backend,
		MultiUser: current.Storage.MultiUser,
	}

	currency, err := PromptCurrency(answers.Currency)
	if err != nil {
		return SetupAnswers{}, err
	}
	answers.Currency = currency

	err = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Where should tally keep your ledger?").
				Description("JSON is a single readable file, SQLite a small database.").
				Options(
					huh.NewOption("JSON file", config.BackendJSON),
					huh.NewOption("SQLite database", config.BackendSQLite),
				).
				Value(&answers.Backend),
			huh.NewConfirm().
				Title("Keep separate ledgers per user?").
				Description("Each user gets a password-protected ledger in the same file.").
				Affirmative("Yes").
				Negative("No").
				Value(&answers.MultiUser),
		),
	).Run()
	if err != nil {
		return SetupAnswers{}, err
	}

	return answers, nil
}
