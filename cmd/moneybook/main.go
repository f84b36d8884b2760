// moneybook is a command line front end for the ledger: it initializes the
// database, lists accounts and balances, and moves snapshots in and out.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/moneybook-app/moneybook/internal/adapters/database/sqlite"
	"github.com/moneybook-app/moneybook/internal/core/services"
	"github.com/moneybook-app/moneybook/pkg/config"
	"github.com/moneybook-app/moneybook/pkg/database"
)

var (
	flagDatabase  string
	flagLogLevel  string
	flagLogFormat string

	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:           "moneybook",
		Short:         "Personal finance ledger",
		Long:          "moneybook keeps accounts, transactions and balances in a local database\nand exchanges full or partial snapshots with other installations.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.LoadConfig()
			if err != nil {
				return err
			}
			if flagDatabase != "" {
				cfg.DatabasePath = flagDatabase
			}
			if flagLogLevel != "" {
				cfg.LogLevel = flagLogLevel
			}
			if flagLogFormat != "" {
				cfg.LogFormat = flagLogFormat
			}
			return setupLogging(cfg)
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDatabase, "database", "", "database file (default: $HOME/.moneybook/moneybook.db)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "log format (text, json)")

	rootCmd.AddCommand(initCmd())
	rootCmd.AddCommand(accountsCmd())
	rootCmd.AddCommand(contactsCmd())
	rootCmd.AddCommand(balanceCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(importCmd())
}

func setupLogging(cfg *config.Config) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return fmt.Errorf("parse log level %q: %w", cfg.LogLevel, err)
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
	return nil
}

// openLedger opens the configured database and loads the full ledger into
// memory. The caller owns closing the returned handle.
func openLedger(ctx context.Context) (*services.Ledger, *sql.DB, error) {
	db, err := database.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, nil, err
	}
	ledger := services.NewLedger(sqlite.NewStore(db).Persistence(), slog.Default())
	if err := ledger.Open(ctx); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return ledger, db, nil
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("interrupted, shutting down")
		cancel()
	}()

	err := rootCmd.ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
