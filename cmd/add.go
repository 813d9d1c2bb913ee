package cmd

import (
	"fmt"

	"github.com/hance08/tally/internal/model"
	"github.com/hance08/tally/internal/ui/prompts"
	"github.com/hance08/tally/internal/ui/views"
	"github.com/hance08/tally/internal/utils"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type addFlags struct {
	Kind     string
	Amount   string
	Category string
	Note     string
}

type addRunner struct {
	sess  *session
	flags *addFlags
	cmd   *cobra.Command
}

func NewAddCmd(sess *session) *cobra.Command {
	flags := &addFlags{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an income or an expense",
		Long: `Record an income or an expense and update the balance.

	You can use flags for quick entry or interactive mode for guided input.

	Examples:
	# Interactive mode
	tally add

	# Quick mode with flags
	tally add --kind expense --amount 150.50 --category Food --note "weekly groceries"
	tally add -k income -a 1000 -t Salary`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &addRunner{
				sess:  sess,
				flags: flags,
				cmd:   cmd,
			}
			return runner.Run()
		},
	}
	cmd.Flags().StringVarP(&flags.Kind, "kind", "k", "", "Transaction kind: income or expense")
	cmd.Flags().StringVarP(&flags.Amount, "amount", "a", "", "Transaction amount (e.g., 150 or 150.50)")
	cmd.Flags().StringVarP(&flags.Category, "category", "t", "", "Category (e.g., Food, Salary)")
	cmd.Flags().StringVarP(&flags.Note, "note", "n", "", "Free text note")

	return cmd
}

func (r *addRunner) Run() error {
	var (
		input prompts.TransactionInput
		err   error
	)

	hasFlags := r.cmd.Flags().Changed("kind") || r.cmd.Flags().Changed("amount")
	if hasFlags {
		input, err = r.flagsMode()
	} else {
		input, err = prompts.PromptTransaction("")
	}
	if err != nil {
		return err
	}

	return record(r.sess, input)
}

func (r *addRunner) flagsMode() (prompts.TransactionInput, error) {
	if r.flags.Kind == "" || r.flags.Amount == "" {
		return prompts.TransactionInput{}, fmt.Errorf("when using flags, --kind and --amount are both required")
	}

	kind, err := model.ParseKind(r.flags.Kind)
	if err != nil {
		return prompts.TransactionInput{}, err
	}

	return prompts.TransactionInput{
		Kind:     kind,
		Amount:   r.flags.Amount,
		Category: r.flags.Category,
		Note:     r.flags.Note,
	}, nil
}

// record parses the amount, records the transaction and prints the summary.
func record(sess *session, input prompts.TransactionInput) error {
	amount, err := model.ParseAmount(input.Amount)
	if err != nil {
		return err
	}

	ledger, err := sess.Ledger()
	if err != nil {
		return err
	}

	tx, err := ledger.Record(input.Kind, amount, input.Category, input.Note)
	if err != nil {
		return err
	}

	pterm.Success.Printf("%s of %s recorded\n", tx.Kind, utils.FormatAmount(tx.Amount, sess.currency()))

	return views.RenderTransactionSummary(tx, ledger.Balance(), sess.currency())
}
