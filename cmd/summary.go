package cmd

import (
	"github.com/hance08/tally/internal/service"
	"github.com/hance08/tally/internal/ui/views"
	"github.com/spf13/cobra"
)

func NewSummaryCmd(sess *session) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show income and expense totals per category",
		RunE: func(cmd *cobra.Command, args []string) error {
			ledger, err := sess.Ledger()
			if err != nil {
				return err
			}
			return views.RenderCategorySummary(service.SummarizeByCategory(ledger.History()), sess.currency())
		},
	}
}
