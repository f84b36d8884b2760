package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moneybook-app/moneybook/internal/adapters/database/sqlite"
	"github.com/moneybook-app/moneybook/pkg/database"
)

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			db, err := database.Open(ctx, cfg.DatabasePath)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := sqlite.NewStore(db).Persistence().Schema.CreateTables(ctx); err != nil {
				return err
			}
			fmt.Printf("database ready at %s\n", cfg.DatabasePath)
			return nil
		},
	}
}
