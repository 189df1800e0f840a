package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"

	"github.com/vmunix/renamarr/internal/catalog"
	"github.com/vmunix/renamarr/internal/config"
	"github.com/vmunix/renamarr/internal/epguides"
	"github.com/vmunix/renamarr/internal/metadata"
)

var version = "dev"

var configPath string

var rootCmd = &cobra.Command{
	Use:   "renamarr",
	Short: "Rename TV episode files using epguides metadata",
	Long: `renamarr - rename TV episode files to the canonical convention

Matches local video files against episode metadata scraped from
epguides.com (cached locally) and renames them to
"<Show> - S01E01 - <Episode Title>.<ext>".`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.toml", "Path to config file")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("renamarr {{.Version}}\n")
}

// app bundles everything a command needs: config, logger, catalog store,
// and the metadata service.
type app struct {
	cfg   *config.Config
	log   *slog.Logger
	db    *sql.DB
	store *catalog.Store
	meta  *metadata.Service
}

func newApp() (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := catalog.InitSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	store := catalog.NewStore(db)
	provider := epguides.NewClient(cfg.Metadata.BaseURL, logger.With("component", "epguides"))

	meta := metadata.NewService(store, provider, logger.With("component", "metadata"))
	meta.AutoRefresh = cfg.Metadata.AutoRefresh
	meta.StaleAfter = staleAfter(cfg)

	return &app{cfg: cfg, log: logger, db: db, store: store, meta: meta}, nil
}

func (a *app) Close() {
	_ = a.db.Close()
}

func staleAfter(cfg *config.Config) time.Duration {
	return time.Duration(cfg.Metadata.StaleAfterDays) * 24 * time.Hour
}

func parseLogLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
