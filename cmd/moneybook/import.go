package main

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/moneybook-app/moneybook/internal/apperrors"
	"github.com/moneybook-app/moneybook/internal/core/services"
	"github.com/moneybook-app/moneybook/internal/snapshot"
)

func importCmd() *cobra.Command {
	var full bool
	var eraseExisting bool

	cmd := &cobra.Command{
		Use:   "import <snapshot-file>",
		Short: "Load a snapshot file into the database",
		Long: `Load a snapshot file into the database.

By default records are merged: snapshots pair with existing records by
guid and the newer version wins. With --full the database is replaced
wholesale, which additionally requires --erase-existing as confirmation.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			f, err := os.Open(args[0])
			if err != nil {
				return &apperrors.ImportSourceError{Source: args[0], Err: err}
			}
			defer f.Close()

			data, err := snapshot.Read(f)
			if err != nil {
				return err
			}

			ledger, db, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			bar := progressbar.NewOptions(-1,
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionSetDescription("importing"),
				progressbar.OptionSpinnerType(14))
			progress := func(msg string) {
				bar.Describe(msg)
				_ = bar.Add(1)
			}

			importer := services.NewImporter(ledger, cfg.ImportBatchSize)
			if full {
				err = importer.FullDump(ctx, data, eraseExisting, progress)
			} else {
				err = importer.Merge(ctx, data, progress)
			}
			_ = bar.Finish()
			fmt.Fprintln(os.Stderr)
			if err != nil {
				return err
			}

			fmt.Fprintf(os.Stderr, "imported %d transactions from %s\n", len(data.Transactions), args[0])
			return nil
		},
	}
	cmd.Flags().BoolVar(&full, "full", false, "replace the whole database instead of merging")
	cmd.Flags().BoolVar(&eraseExisting, "erase-existing", false, "confirm erasing existing records (required with --full)")
	return cmd
}
