package cmd

import (
	"github.com/hance08/tally/internal/app"
	"github.com/hance08/tally/internal/ui/views"
	"github.com/spf13/cobra"
)

type infoRunner struct {
	sess *session
}

func NewInfoCmd(sess *session) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Display application information",
		Long:  `Display current configuration, storage backend and path, and system details.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &infoRunner{
				sess: sess,
			}

			return runner.Run()
		},
	}
}

func (r *infoRunner) Run() error {
	a := r.sess.app

	configPath := a.Config.ConfigPath
	if configPath == "" {
		configPath = "(None, using defaults)"
	}

	items := views.SystemInfoItem{
		ConfigPath:      configPath,
		Backend:         a.Config.Storage.Backend,
		StoragePath:     a.StoragePath,
		StorageExists:   a.StorageExists(),
		MultiUser:       a.MultiUser(),
		DefaultCurrency: a.Config.Defaults.Currency,
		AppDataDir:      getAppDataDirOrUnknown(),
	}

	return views.RenderSystemInfo(items)
}

func getAppDataDirOrUnknown() string {
	dir, err := app.DataDir()
	if err != nil {
		return "Unknown"
	}
	return dir
}
