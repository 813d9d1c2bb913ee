package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hance08/tally/internal/config"
	"github.com/hance08/tally/internal/service"
	"github.com/hance08/tally/internal/store"
)

var ErrUserRequired = errors.New("a username is required when multi-user storage is enabled")

type App struct {
	Config      *config.Config
	Accounts    *service.AccountService // nil unless Storage.MultiUser
	Users       store.UserRepository    // nil unless Storage.MultiUser
	StoragePath string

	ledger store.Repository
	opts   []service.Option
}

// NewApp builds the storage backend selected in cfg. The returned cleanup
// closes the backend and must be called once the App is no longer used.
func NewApp(cfg *config.Config, migrationFS fs.FS, opts ...service.Option) (*App, func(), error) {
	a := &App{Config: cfg, opts: opts}
	cleanup := func() {}

	path, err := a.storagePath()
	if err != nil {
		return nil, nil, err
	}
	a.StoragePath = path

	var users store.UserRepository

	switch cfg.Storage.Backend {
	case config.BackendMemory:
		mem := store.NewMemoryStore()
		a.ledger, users = mem, mem

	case config.BackendSQLite:
		db, err := store.NewSQLiteStore(path, migrationFS)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		a.ledger, users = db, db
		cleanup = func() {
			if err := db.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "Error closing DB: %v\n", err)
			}
		}

	case config.BackendJSON, "":
		if cfg.Storage.MultiUser {
			users = store.NewUserFileStore(path)
		} else {
			a.ledger = store.NewFileStore(path)
		}

	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	if cfg.Storage.MultiUser {
		a.Users = users
		a.Accounts = service.NewAccountService(users, cfg.Security.BcryptCost, opts...)
	}

	return a, cleanup, nil
}

func (a *App) MultiUser() bool {
	return a.Accounts != nil
}

// OpenLedger loads the ledger to work on. user and secret are only used in
// multi-user mode.
func (a *App) OpenLedger(user, secret string) (*service.LedgerService, error) {
	if !a.MultiUser() {
		return service.NewLedgerService(a.ledger, a.opts...)
	}
	if strings.TrimSpace(user) == "" {
		return nil, ErrUserRequired
	}
	return a.Accounts.Open(user, secret)
}

// StorageExists reports whether the storage file is already on disk.
func (a *App) StorageExists() bool {
	if a.StoragePath == "" {
		return false
	}
	_, err := os.Stat(a.StoragePath)
	return err == nil
}

func (a *App) storagePath() (string, error) {
	if a.Config.Storage.Backend == config.BackendMemory {
		return "", nil
	}
	if p := a.Config.Storage.Path; p != "" {
		return ExpandPath(p)
	}

	appDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(appDir, defaultFileName(a.Config.Storage)), nil
}

func defaultFileName(s config.StorageConfig) string {
	switch {
	case s.Backend == config.BackendSQLite:
		return "tally.db"
	case s.MultiUser:
		return "users.json"
	default:
		return "ledger.json"
	}
}

// DataDir is where tally keeps its config and default storage files.
func DataDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("unable to determine user home directory: %w", err)
		}
		return filepath.Join(home, ".tally"), nil
	}

	return filepath.Join(configDir, "tally"), nil
}

// ExpandPath resolves a leading "~" to the home directory.
func ExpandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if path == "~" {
			return home, nil
		}
		if strings.HasPrefix(path, "~/") || strings.HasPrefix(path, "~\\") {
			return filepath.Join(home, path[2:]), nil
		}
	}
	return path, nil
}
