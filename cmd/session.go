package cmd

import (
	"fmt"
	"os"

	"github.com/hance08/tally/internal/app"
	"github.com/hance08/tally/internal/service"
	"github.com/hance08/tally/internal/ui/prompts"
	"github.com/hance08/tally/internal/validation"
	"github.com/pterm/pterm"
)

// secretEnv lets scripts open a multi-user ledger without a prompt.
const secretEnv = "TALLY_PASSWORD"

// session is shared by every command. The root command fills in app before
// any subcommand runs; the ledger is opened on first use.
type session struct {
	app  *app.App
	user string

	ledger *service.LedgerService
	owner  string
}

func (s *session) currency() string {
	return s.app.Config.Defaults.Currency
}

// Ledger opens the ledger selected by --user or the config, asking for the
// credentials in multi-user mode when they are not given.
func (s *session) Ledger() (*service.LedgerService, error) {
	if s.ledger != nil {
		return s.ledger, nil
	}

	user, secret := "", ""
	if s.app.MultiUser() {
		var err error
		user = s.user
		if user == "" {
			user = s.app.Config.Defaults.User
		}
		if user == "" {
			user, err = prompts.PromptUsername(func(v string) error { return validation.ValidateUsername(v) })
			if err != nil {
				return nil, err
			}
		}
		secret = os.Getenv(secretEnv)
		if secret == "" {
			secret, err = prompts.PromptSecret(fmt.Sprintf("Password for %s:", user), nil)
			if err != nil {
				return nil, err
			}
		}
	}

	ledger, err := s.app.OpenLedger(user, secret)
	if err != nil {
		return nil, err
	}

	if warn := ledger.LoadWarning(); warn != nil {
		pterm.Warning.Printf("Ledger loaded with problems: %v\n", warn)
	}

	s.ledger = ledger
	s.owner = user
	return ledger, nil
}
