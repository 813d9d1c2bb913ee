package cmd

import (
	"fmt"

	"github.com/hance08/tally/internal/ui/prompts"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func NewInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Choose the currency and the storage of your ledger",
		Long: `Walk through the basic settings and save them to the config file.

Existing ledgers are not touched; switching the backend starts a new ledger
in the new location.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit()
		},
	}
}

func runInit() error {
	answers, err := prompts.PromptSetup(cfg)
	if err != nil {
		return err
	}

	viper.Set("defaults.currency", answers.Currency)
	viper.Set("storage.backend", answers.Backend)
	viper.Set("storage.multi_user", answers.MultiUser)

	if err := viper.WriteConfig(); err != nil {
		return fmt.Errorf("failed to save config to file: %w", err)
	}

	pterm.Success.Printf("Configuration saved to %s\n", viper.ConfigFileUsed())
	if answers.MultiUser {
		pterm.Info.Println("Create your first user with 'tally user register'")
	}
	return nil
}
