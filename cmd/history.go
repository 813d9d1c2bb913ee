package cmd

import (
	"github.com/hance08/tally/internal/model"
	"github.com/hance08/tally/internal/service"
	"github.com/hance08/tally/internal/ui/views"
	"github.com/spf13/cobra"
)

type historyFlags struct {
	Kind     string
	Category string
	Limit    int
}

func NewHistoryCmd(sess *session) *cobra.Command {
	flags := &historyFlags{}

	cmd := &cobra.Command{
		Use:     "history",
		Aliases: []string{"list", "ls"},
		Short:   "List recorded transactions",
		Long: `List recorded transactions in the order they were entered.

This command displays a table of transactions with their date, type,
category, note and signed amount.`,
		Example: `  # List the last 20 transactions
  tally history

  # Only expenses in the Food category
  tally history --kind expense --category food

  # Everything
  tally history --limit 0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(sess, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.Kind, "kind", "k", "", "Filter by kind: income or expense")
	cmd.Flags().StringVarP(&flags.Category, "category", "t", "", "Filter by category (case-insensitive)")
	cmd.Flags().IntVarP(&flags.Limit, "limit", "l", 20, "Maximum number of transactions to display (0 for all)")

	return cmd
}

func runHistory(sess *session, flags *historyFlags) error {
	filter := service.HistoryFilter{
		Category: flags.Category,
		Limit:    flags.Limit,
	}
	if flags.Kind != "" {
		kind, err := model.ParseKind(flags.Kind)
		if err != nil {
			return err
		}
		filter.Kind = kind
	}

	ledger, err := sess.Ledger()
	if err != nil {
		return err
	}

	history := ledger.History()
	shown := service.FilterHistory(history, filter)

	return views.NewTransactionListView(sess.currency()).Render(shown, len(history))
}
