package prompts

import (
	"strings"

	"github.com/hance08/tally/internal/constants"
	"github.com/hance08/tally/internal/model"
	"github.com/hance08/tally/internal/validation"
)

const (
	optionCustom = "Other (Custom)"
	optionNone   = "None"
)

// TransactionInput is what the interactive add flow collects.
type TransactionInput struct {
	Kind     model.Kind
	Amount   string
	Category string
	Note     string
}

// PromptKind prompts for income or expense
func PromptKind() (model.Kind, error) {
	options := []string{
		"Record Expense",
		"Record Income",
	}

	selected, err := PromptSelect("Choose the transaction type:", options, "Record Expense")
	if err != nil {
		return "", err
	}

	if strings.Contains(selected, "Income") {
		return model.Income, nil
	}
	return model.Expense, nil
}

// PromptCategory offers the default categories of kind plus a custom entry.
func PromptCategory(kind model.Kind) (string, error) {
	mode := constants.ModeExpense
	if kind == model.Income {
		mode = constants.ModeIncome
	}

	options := append([]string{}, constants.DefaultCategories[mode]...)
	options = append(options, optionCustom, optionNone)

	selected, err := PromptSelect("Category:", options, "")
	if err != nil {
		return "", err
	}

	switch selected {
	case optionNone:
		return "", nil
	case optionCustom:
		custom, err := PromptInput("Enter category:", "", nil)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(custom), nil
	}
	return selected, nil
}

// PromptTransaction runs the full add flow. If kind is empty it is asked first.
func PromptTransaction(kind model.Kind) (TransactionInput, error) {
	var (
		in  TransactionInput
		err error
	)

	in.Kind = kind
	if in.Kind == "" {
		if in.Kind, err = PromptKind(); err != nil {
			return TransactionInput{}, err
		}
	}

	in.Amount, err = PromptAmount(
		"Amount:",
		"Enter the amount, no need currency symbol (e.g. 150 or 150.50)",
		func(s string) error { return validation.ValidateAmount(s) },
	)
	if err != nil {
		return TransactionInput{}, err
	}

	if in.Category, err = PromptCategory(in.Kind); err != nil {
		return TransactionInput{}, err
	}

	if in.Note, err = PromptNote("Note (optional):"); err != nil {
		return TransactionInput{}, err
	}

	return in, nil
}
