package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/moneybook-app/moneybook/internal/core/domain"
)

func accountsCmd() *cobra.Command {
	var showDisabled bool

	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "List accounts with their balances",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ledger, db, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			accounts := ledger.Accounts()
			sort.Slice(accounts, func(i, j int) bool {
				return domain.CompareByName(accounts[i], accounts[j]) < 0
			})

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tTYPE\tBALANCE")
			for _, a := range accounts {
				if !a.Enabled && !showDisabled {
					continue
				}
				balance := ledger.BalanceOf(a, domain.All, true)
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
					a.ID, a.Name, a.Type, domain.DisplayAmount(balance))
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&showDisabled, "all", false, "include disabled accounts")
	return cmd
}
