package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/moneybook-app/moneybook/internal/apperrors"
	"github.com/moneybook-app/moneybook/internal/snapshot"
)

func exportCmd() *cobra.Command {
	var output string
	var accountID int
	var withDeps bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the database to a snapshot file",
		Long: `Write the database to a snapshot file.

By default the whole database is exported. With --account only the
transactions touching that account are written; --with-deps additionally
carries every record they reference, so the file can be merged into
another database without dangling keys.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ledger, db, err := openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			out := os.Stdout
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create %s: %w", output, err)
				}
				defer f.Close()
				out = f
			}
			data := ledger.Snapshot()
			if accountID != 0 {
				if _, ok := ledger.GetAccount(accountID); !ok {
					return fmt.Errorf("account %d: %w", accountID, apperrors.ErrNotFound)
				}
				data = ledger.SnapshotTransactions(ledger.TransactionsByAccount(accountID), withDeps)
			}
			if err := snapshot.Write(out, data); err != nil {
				return err
			}
			if output != "" {
				fmt.Fprintf(os.Stderr, "exported %d transactions to %s\n", len(data.Transactions), output)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().IntVar(&accountID, "account", 0, "export only transactions touching this account")
	cmd.Flags().BoolVar(&withDeps, "with-deps", false, "include records the exported transactions reference")
	return cmd
}
