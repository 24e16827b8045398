// Package cli implements the doorcraft command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/piwi3910/DoorCraft/internal/archive"
	"github.com/piwi3910/DoorCraft/internal/configurator"
	"github.com/piwi3910/DoorCraft/internal/logging"
	"github.com/piwi3910/DoorCraft/internal/model"
	"github.com/piwi3910/DoorCraft/internal/project"
)

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// app carries what every command needs once the config is loaded.
type app struct {
	configPath string
	debug      bool

	cfg      model.AppConfig
	prices   model.PriceList
	defaults model.Configuration
	log      *slog.Logger
	cleanup  func() error
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:          "doorcraft",
		Short:        "Configure, price and export steel and glass doors",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return a.close()
		},
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default ~/.doorcraft/config.toml)")
	cmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging with source locations")

	cmd.AddCommand(
		quoteCmd(a),
		validateCmd(a),
		partsCmd(a),
		exportCmd(a),
		cutplanCmd(a),
		compareCmd(a),
		batchCmd(a),
		presetsCmd(a),
		historyCmd(a),
		serveCmd(a),
		configCmd(a),
		backupCmd(a),
	)
	return cmd
}

func (a *app) load(cmd *cobra.Command) error {
	cfg, err := project.LoadAppConfig(a.configPath)
	if err != nil {
		return err
	}

	cleanup, err := logging.Setup(logging.Config{
		Level:  cfg.LogLevel,
		File:   cfg.LogFile,
		Debug:  a.debug,
		Stderr: cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}
	a.cleanup = cleanup
	a.log = logging.L()

	if a.prices, err = cfg.Prices.PriceList(); err != nil {
		return fmt.Errorf("config prices: %w", err)
	}
	if a.defaults, err = cfg.Defaults.Configuration(); err != nil {
		return fmt.Errorf("config defaults: %w", err)
	}
	a.cfg = cfg
	a.log.Debug("config loaded", "path", a.configPath, "archive_driver", cfg.ArchiveDriver)
	return nil
}

func (a *app) close() error {
	if a.cleanup == nil {
		return nil
	}
	err := a.cleanup()
	a.cleanup = nil
	return err
}

// newStore opens a configurator session starting from cfg.
func (a *app) newStore(cfg model.Configuration) *configurator.Store {
	return configurator.New(
		configurator.WithPriceList(a.prices),
		configurator.WithConfiguration(cfg),
		configurator.WithLogger(a.log),
	)
}

var errNoArchive = errors.New("quote archive disabled: archive_driver is empty")

// openArchive opens and migrates the configured quote archive. A SQLite
// archive without a DSN lives next to the config.
func (a *app) openArchive(ctx context.Context) (*archive.QuoteRepo, func() error, error) {
	driver := a.cfg.ArchiveDriver
	if driver == "" {
		return nil, nil, errNoArchive
	}
	dsn := a.cfg.ArchiveDSN
	if dsn == "" && driver == archive.DriverSQLite {
		dsn = project.DefaultArchivePath()
	}

	db, err := archive.OpenAndMigrate(ctx, driver, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open quote archive: %w", err)
	}
	return archive.NewQuoteRepo(db, driver), db.Close, nil
}
