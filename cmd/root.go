package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/hance08/tally/internal/app"
	"github.com/hance08/tally/internal/config"
	"github.com/hance08/tally/internal/errhandler"
	"github.com/joho/godotenv"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	cfg     *config.Config
)

func Execute(migrations fs.FS) {
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " ERROR ",
		Style: pterm.NewStyle(pterm.BgLightRed, pterm.FgBlack),
	}

	// a missing .env is fine
	_ = godotenv.Load()

	sess := &session{}
	cleanup := func() {}
	defer func() { cleanup() }()

	rootCmd := &cobra.Command{
		Use:   "tally",
		Short: "tally is a CLI based personal income and expense ledger",
		Long: `tally is a CLI based personal income and expense ledger.

It records income and expenses, keeps a running balance that always matches
the history, and stores everything in a JSON file or a SQLite database.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(); err != nil {
				return err
			}
			initLogger(cfg)

			if cmd.Name() == "init" {
				return nil
			}

			application, closeApp, err := app.NewApp(cfg, migrations)
			if err != nil {
				return err
			}
			sess.app = application
			cleanup = closeApp
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "set the config file path")
	rootCmd.PersistentFlags().StringVarP(&sess.user, "user", "u", "", "ledger owner in multi-user mode")

	rootCmd.AddCommand(NewAddCmd(sess))
	rootCmd.AddCommand(NewRecordCmd(sess, "income"))
	rootCmd.AddCommand(NewRecordCmd(sess, "expense"))
	rootCmd.AddCommand(NewBalanceCmd(sess))
	rootCmd.AddCommand(NewHistoryCmd(sess))
	rootCmd.AddCommand(NewSummaryCmd(sess))
	rootCmd.AddCommand(NewResetCmd(sess))
	rootCmd.AddCommand(NewReconcileCmd(sess))
	rootCmd.AddCommand(NewMenuCmd(sess))
	rootCmd.AddCommand(NewUserCmd(sess))
	rootCmd.AddCommand(NewInfoCmd(sess))
	rootCmd.AddCommand(NewInitCmd())

	if err := rootCmd.Execute(); err != nil {
		cleanup()
		if errhandler.IsInterrupt(err) {
			errhandler.HandleError(err)
		}
		errMsg := err.Error()
		displayMsg := capitalize(errMsg)

		pterm.Error.Println(displayMsg)
		os.Exit(1)
	}
}

func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		appDir, err := app.DataDir()
		if err != nil {
			return fmt.Errorf("error getting app dir: %w", err)
		}

		viper.AddConfigPath(appDir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	config.SetDefaults(viper.GetViper())

	if cfgFile == "" {
		if err := createDefaultConfig(); err != nil {
			return fmt.Errorf("failed to ensure config file: %w", err)
		}
	}

	viper.SetEnvPrefix("TALLY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // allow using environment variables to override

	if err := viper.ReadInConfig(); err != nil {

		if cfgFile != "" {
			return fmt.Errorf("failed to read config file: %w", err)
		}

		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return fmt.Errorf("config file error: %w", err)
		}
	}

	decoded, err := config.Decode(viper.GetViper())
	if err != nil {
		return err
	}
	cfg = decoded

	return nil
}

// initLogger routes slog through pterm so log lines match the rest of the output.
func initLogger(c *config.Config) {
	level, _ := c.LogLevel()

	ptermLevel := pterm.LogLevelWarn
	switch {
	case level <= slog.LevelDebug:
		ptermLevel = pterm.LogLevelDebug
	case level <= slog.LevelInfo:
		ptermLevel = pterm.LogLevelInfo
	case level >= slog.LevelError:
		ptermLevel = pterm.LogLevelError
	}

	logger := pterm.DefaultLogger.WithLevel(ptermLevel).WithWriter(os.Stderr)
	slog.SetDefault(slog.New(pterm.NewSlogHandler(logger)))
}

func createDefaultConfig() error {
	appDir, err := app.DataDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(appDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(appDir, "config.yaml")

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	if err := viper.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func capitalize(s string) string {
	if len(s) == 0 {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
