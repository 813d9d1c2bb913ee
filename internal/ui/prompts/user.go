package prompts

import (
	"fmt"
	"strings"

	"github.com/hance08/tally/internal/validation"
)

// PromptUsername prompts for a username with validation
func PromptUsername(validator func(string) error) (string, error) {
	name, err := PromptInput("Username:", "", validator)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(name), nil
}

// PromptNewSecret asks for a credential twice and checks both entries match.
func PromptNewSecret() (string, error) {
	validate := func(s string) error { return validation.ValidateSecret(s) }

	secret, err := PromptSecret("Password:", validate)
	if err != nil {
		return "", err
	}

	again, err := PromptSecret("Repeat password:", validate)
	if err != nil {
		return "", err
	}
	if secret != again {
		return "", fmt.Errorf("passwords do not match")
	}
	return secret, nil
}

// PromptCurrency prompts for currency selection with common options
func PromptCurrency(defaultCurrency string) (string, error) {
	commonCurrencies := []string{
		"USD - US Dollar",
		"EUR - Euro",
		"GBP - British Pound",
		"TRY - Turkish Lira",
		"JPY - Japanese Yen",
		"CNY - Chinese Yuan",
		"TWD - Taiwan Dollar",
		"Other (Custom)",
	}

	message := fmt.Sprintf("Currency (default: %s):", defaultCurrency)

	selected, err := PromptSelect(message, commonCurrencies, defaultCurrency)
	if err != nil {
		return "", fmt.Errorf("input cancelled: %w", err)
	}

	if selected == "Other (Custom)" {
		customCurrency, err := PromptInput("Enter currency code:", "", func(s string) error {
			return validation.ValidateCurrency(s)
		})
		if err != nil {
			return "", fmt.Errorf("input cancelled: %w", err)
		}
		return strings.ToUpper(strings.TrimSpace(customCurrency)), nil
	}

	currencyCode := strings.Split(selected, " ")[0]
	return currencyCode, nil
}
