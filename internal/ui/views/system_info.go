package views

import "github.com/pterm/pterm"

type SystemInfoItem struct {
	ConfigPath      string
	Backend         string
	StoragePath     string
	StorageExists   bool // true = Found, false = Not Found
	MultiUser       bool
	DefaultCurrency string
	AppDataDir      string
}

func RenderSystemInfo(data SystemInfoItem) error {
	storagePath := data.StoragePath
	storageStatus := pterm.Green("Found")
	if storagePath == "" {
		storagePath = "(in memory)"
		storageStatus = pterm.Gray("Not persisted")
	} else if !data.StorageExists {
		storageStatus = pterm.Red("Not Found (Will be created)")
	}

	mode := "Single ledger"
	if data.MultiUser {
		mode = "One ledger per user"
	}

	tableData := pterm.TableData{
		{"Configuration File", data.ConfigPath},
		{"Storage Backend", data.Backend},
		{"Storage Path", storagePath},
		{"Storage Status", storageStatus},
		{"Mode", mode},
		{"Default Currency", data.DefaultCurrency},
		{"AppData Directory", data.AppDataDir},
	}

	return pterm.DefaultTable.WithData(tableData).Render()
}
