package services

import (
	"github.com/shopspring/decimal"

	"github.com/moneybook-app/moneybook/internal/core/domain"
)

// BalanceOf computes the signed balance of an account over the
// transactions matching pred. The accumulation stays at full precision;
// round with domain.DisplayAmount only when formatting.
//
// Contribution rules per transaction:
//   - account is the credited side: the raw amount, converted through the
//     transaction's currency rate when one is set (direction 0 divides,
//     direction 1 multiplies; a zero rate means same-currency, no
//     conversion);
//   - account is the debited side: the raw amount negated.
func (l *Ledger) BalanceOf(account domain.Account, pred domain.TransactionPredicate, withOpening bool) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range l.TransactionsByAccount(account.ID) {
		if !pred(t) {
			continue
		}
		sum = sum.Add(contribution(account.ID, t))
	}
	if withOpening {
		sum = sum.Add(account.OpeningBalance)
	}
	return sum
}

func contribution(accountID int, t domain.Transaction) decimal.Decimal {
	if accountID == t.AccountCreditedID {
		amount := t.Amount
		if !t.Rate.IsZero() {
			if t.RateDirection == domain.RateDivide {
				amount = amount.DivRound(t.Rate, domain.MoneyScale)
			} else {
				amount = amount.Mul(t.Rate)
			}
		}
		return amount
	}
	return t.Amount.Neg()
}
