package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/scribelabs/minute/internal/config"
	"github.com/scribelabs/minute/internal/meetings"
	"github.com/scribelabs/minute/internal/tasks"
)

// loadConfig reads the config file named by the root --config flag, falling
// back to defaults when it does not exist. --debug raises the log level.
func loadConfig(cmd *cli.Command) *config.Config {
	if cmd.Bool("debug") {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	configPath := cmd.String("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		slog.Warn("config not found, using defaults", "path", configPath, "error", err)
		cfg = config.Default()
	}
	return cfg
}

// openTaskStore opens the task backend selected by config. The returned
// closer is a no-op for the file backend.
func openTaskStore(cfg *config.Config) (tasks.Store, func() error, error) {
	switch cfg.Storage.Driver {
	case "sqlite":
		store, err := tasks.OpenSQLStore(cfg.Storage.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return store, store.Close, nil
	case "file":
		store := tasks.NewFileStore(filepath.Join(cfg.Storage.Path, "tasks"))
		return store, func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// openMeetingStore opens the meeting record store. Meetings always use the
// directory backend; the sqlite driver only changes where tasks live.
func openMeetingStore(cfg *config.Config) *meetings.Store {
	base := cfg.Storage.Path
	if cfg.Storage.Driver == "sqlite" {
		base = filepath.Dir(cfg.Storage.Path)
	}
	return meetings.NewStore(filepath.Join(base, "meetings"))
}
