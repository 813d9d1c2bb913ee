package cmd

import (
	"fmt"

	"github.com/hance08/tally/internal/ui/prompts"
	"github.com/hance08/tally/internal/ui/views"
	"github.com/hance08/tally/internal/validation"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func NewUserCmd(sess *session) *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Register users and list them (multi-user mode)",
		Long: `Register users and list them.

Only available when storage.multi_user is enabled in the config; every
user owns a separate, password-protected ledger.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cmd.Root().PersistentPreRunE(cmd, args); err != nil {
				return err
			}
			if !sess.app.MultiUser() {
				return fmt.Errorf("multi-user mode is disabled, set storage.multi_user: true in %s", sess.app.Config.ConfigPath)
			}
			return nil
		},
	}

	userCmd.AddCommand(newUserRegisterCmd(sess))
	userCmd.AddCommand(newUserListCmd(sess))

	return userCmd
}

func newUserRegisterCmd(sess *session) *cobra.Command {
	return &cobra.Command{
		Use:   "register [name]",
		Short: "Create a user with an empty ledger",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			validator := validation.NewUserValidator(sess.app.Users)

			var name string
			if len(args) == 1 {
				name = args[0]
				if err := validator.ValidateNewUsername(name); err != nil {
					return err
				}
			} else {
				var err error
				name, err = prompts.PromptUsername(func(s string) error { return validator.ValidateNewUsername(s) })
				if err != nil {
					return err
				}
			}

			secret, err := prompts.PromptNewSecret()
			if err != nil {
				return err
			}

			if err := sess.app.Accounts.Register(name, secret); err != nil {
				return err
			}

			pterm.Success.Printf("User '%s' registered\n", name)
			return nil
		},
	}
}

func newUserListCmd(sess *session) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered users",
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := sess.app.Accounts.Users()
			if err != nil {
				return fmt.Errorf("failed to get users: %w", err)
			}
			return views.NewUserListView().Render(users, sess.app.Config.Defaults.User)
		},
	}
}
