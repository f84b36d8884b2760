package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/moneybook-app/moneybook/internal/core/domain"
)

func balanceCmd() *cobra.Command {
	var period string
	var noOpening bool

	cmd := &cobra.Command{
		Use:   "balance <account-id>",
		Short: "Show the balance of one account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("account id must be a number: %w", err)
			}
			pred, err := periodPredicate(period)
			if err != nil {
				return err
			}

			ledger, db, err := openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			account, ok := ledger.GetAccount(id)
			if !ok {
				return fmt.Errorf("account %d not found", id)
			}
			balance := ledger.BalanceOf(account, pred, !noOpening)
			fmt.Printf("%s: %s\n", account.Name, domain.DisplayAmount(balance))
			return nil
		},
	}
	cmd.Flags().StringVar(&period, "period", "all", "all, year, month, week, last-year, last-quarter, last-month")
	cmd.Flags().BoolVar(&noOpening, "no-opening", false, "exclude the opening balance")
	return cmd
}

func periodPredicate(period string) (domain.TransactionPredicate, error) {
	now := time.Now()
	switch period {
	case "all":
		return domain.All, nil
	case "year":
		return domain.CurrentYear(now), nil
	case "month":
		return domain.CurrentMonth(now), nil
	case "week":
		return domain.CurrentWeek(now), nil
	case "last-year":
		return domain.LastYear(now), nil
	case "last-quarter":
		return domain.LastQuarter(now), nil
	case "last-month":
		return domain.LastMonth(now), nil
	default:
		return nil, fmt.Errorf("unknown period %q", period)
	}
}
