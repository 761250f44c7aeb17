package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/alpha/internal/cli"
	"github.com/julianstephens/alpha/internal/config"
	"github.com/julianstephens/alpha/internal/logger"
	"github.com/julianstephens/alpha/internal/storage/sqlite"
)

type InitCmd struct {
	Force bool `help:"Delete an existing SQLite database and start over."`
}

func (cmd *InitCmd) Run(ctx *cli.Context) error {
	if cmd.Force {
		if _, ok := ctx.Store.(*sqlite.Store); ok {
			path := ctx.Store.GetConfigPath()
			if _, err := os.Stat(path); err == nil {
				if err := ctx.Store.Close(); err != nil {
					logger.Warn("Failed to close database before reset", "error", err)
				}
				for _, p := range []string{path, path + "-wal", path + "-shm"} {
					if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
						return fmt.Errorf("failed to remove existing database: %w", err)
					}
				}
				ctx.Printf("Removed existing database at %s\n", path)
			}
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	ctx.Printf("Initialized storage at %s\n", ctx.Store.GetConfigPath())

	if ctx.ConfigFile == "" {
		return nil
	}
	if _, err := os.Stat(ctx.ConfigFile); err == nil {
		return nil
	}
	cfg := ctx.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if err := config.Save(cfg, ctx.ConfigFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	ctx.Printf("Wrote config file to %s\n", ctx.ConfigFile)
	return nil
}
