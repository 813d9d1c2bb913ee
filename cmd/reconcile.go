package cmd

import (
	"errors"

	"github.com/hance08/tally/internal/service"
	"github.com/hance08/tally/internal/utils"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func NewReconcileCmd(sess *session) *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile",
		Short: "Recompute the balance from the history and repair it if needed",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReconcile(sess)
		},
	}
}

func runReconcile(sess *session) error {
	ledger, err := sess.Ledger()
	if err != nil {
		return err
	}

	balance, err := ledger.Reconcile()
	var drift *service.DriftError
	switch {
	case errors.As(err, &drift):
		pterm.Warning.Printf("Stored balance %s was off by %s\n",
			utils.FormatAmount(drift.Stored, sess.currency()),
			utils.FormatAmount(drift.Difference(), sess.currency()))
		pterm.Success.Printf("Balance repaired: %s\n", utils.FormatAmount(balance, sess.currency()))
		return nil
	case err != nil:
		return err
	}

	pterm.Success.Printf("Balance matches the history: %s\n", utils.FormatAmount(balance, sess.currency()))
	return nil
}
