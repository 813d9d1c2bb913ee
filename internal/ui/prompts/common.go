package prompts

import (
	"strings"

	"github.com/charmbracelet/huh"
)

// PromptNote prompts for an optional free text
func PromptNote(message string) (string, error) {
	var note string

	err := huh.NewInput().
		Title(message).
		Value(&note).
		Run()

	return strings.TrimSpace(note), err
}

// PromptAmount prompts for an amount with custom validation
func PromptAmount(message string, helpText string, validator func(string) error) (string, error) {
	var amount string

	input := huh.NewInput().
		Title(message).
		Description(helpText).
		Value(&amount)

	if validator != nil {
		input.Validate(validator)
	}

	err := input.Run()
	return amount, err
}

// PromptInput prompts for a generic text input with optional default and validator
func PromptInput(message string, defaultValue string, validator func(string) error) (string, error) {
	var inputVal string

	input := huh.NewInput().
		Title(message).
		Value(&inputVal)

	if defaultValue != "" {
		input.Placeholder(defaultValue)
	}

	if validator != nil {
		input.Validate(validator)
	}

	err := input.Run()
	if err != nil {
		return "", err
	}

	if inputVal == "" && defaultValue != "" {
		return defaultValue, nil
	}

	return inputVal, nil
}

// PromptSecret reads a credential without echoing it.
func PromptSecret(message string, validator func(string) error) (string, error) {
	var secret string

	input := huh.NewInput().
		Title(message).
		EchoMode(huh.EchoModePassword).
		Value(&secret)

	if validator != nil {
		input.Validate(validator)
	}

	err := input.Run()
	return secret, err
}

// PromptSelect prompts for a selection from a list of options
func PromptSelect(message string, options []string, defaultOption string) (string, error) {
	realDefault := defaultOption
	matchFound := false

	for _, o := range options {
		if o == defaultOption {
			realDefault = o
			matchFound = true
			break
		}
	}

	if !matchFound && defaultOption != "" {
		for _, o := range options {
			if strings.HasPrefix(o, defaultOption+" ") {
				realDefault = o
				break
			}
		}
	}
	selected := realDefault

	var opts []huh.Option[string]
	for _, o := range options {
		opts = append(opts, huh.NewOption(o, o))
	}

	selectField := huh.NewSelect[string]().
		Title(message).
		Options(opts...).
		Value(&selected)

	err := selectField.Run()
	return selected, err
}
