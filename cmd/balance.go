package cmd

import (
	"github.com/hance08/tally/internal/ui/views"
	"github.com/spf13/cobra"
)

func NewBalanceCmd(sess *session) *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Show the current balance",
		Long:  `Show the current balance together with the income and expense totals.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ledger, err := sess.Ledger()
			if err != nil {
				return err
			}
			return views.RenderBalance(views.NewBalanceItem(sess.owner, ledger, sess.currency()))
		},
	}
}
