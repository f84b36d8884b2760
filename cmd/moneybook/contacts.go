package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func contactsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "contacts",
		Short: "List contacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ledger, db, err := openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			contacts := ledger.Contacts()
			sort.Slice(contacts, func(i, j int) bool {
				return strings.ToLower(contacts[i].Name) < strings.ToLower(contacts[j].Name)
			})

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tTYPE\tPHONE\tEMAIL")
			for _, c := range contacts {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
					c.ID, c.Name, c.Type, c.Phone, c.Email)
			}
			return w.Flush()
		},
	}
}
