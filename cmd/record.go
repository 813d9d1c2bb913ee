package cmd

import (
	"github.com/hance08/tally/internal/model"
	"github.com/hance08/tally/internal/ui/prompts"
	"github.com/spf13/cobra"
)

// NewRecordCmd builds the "income" and "expense" shortcuts of add.
func NewRecordCmd(sess *session, name string) *cobra.Command {
	kind := model.Expense
	if name == "income" {
		kind = model.Income
	}
	var category, note string

	cmd := &cobra.Command{
		Use:   name + " [amount]",
		Short: "Record " + article(name) + " " + name,
		Example: "  tally " + name + " 150.50 -t Food -n lunch\n" +
			"  tally " + name + "            # asks for the details",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				input, err := prompts.PromptTransaction(kind)
				if err != nil {
					return err
				}
				return record(sess, input)
			}

			return record(sess, prompts.TransactionInput{
				Kind:     kind,
				Amount:   args[0],
				Category: category,
				Note:     note,
			})
		},
	}

	cmd.Flags().StringVarP(&category, "category", "t", "", "Category")
	cmd.Flags().StringVarP(&note, "note", "n", "", "Free text note")

	return cmd
}

func article(word string) string {
	switch word[0] {
	case 'a', 'e', 'i', 'o', 'u':
		return "an"
	}
	return "a"
}
