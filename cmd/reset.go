package cmd

import (
	"github.com/hance08/tally/internal/ui"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func NewResetCmd(sess *session) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every transaction and set the balance to zero",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReset(sess, yes)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func runReset(sess *session, yes bool) error {
	ledger, err := sess.Ledger()
	if err != nil {
		return err
	}

	if !yes {
		pterm.Warning.Printf("This will delete %d transactions. This action cannot be undone!\n", len(ledger.History()))
		confirmed, err := ui.Confirm("Are you sure you want to reset the ledger?", false)
		if err != nil {
			return err
		}
		if !confirmed {
			pterm.Info.Println("Reset cancelled")
			return nil
		}
	}

	if err := ledger.Reset(); err != nil {
		return err
	}

	pterm.Success.Println("Ledger reset, balance is now zero")
	return nil
}
