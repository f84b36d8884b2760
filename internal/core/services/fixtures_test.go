package services_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/moneybook-app/moneybook/internal/core/domain"
	"github.com/moneybook-app/moneybook/internal/core/services"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestLedger(t *testing.T) (*services.Ledger, *fakePersistence) {
	t.Helper()
	p := newFakePersistence()
	ledger := services.NewLedger(p.persistence(), testLogger())
	require.NoError(t, ledger.Open(context.Background()))
	return ledger, p
}

func insertCategory(t *testing.T, l *services.Ledger, name string, catType domain.CategoryType) domain.Category {
	t.Helper()
	c, err := domain.NewCategory(name, "", catType)
	require.NoError(t, err)
	c, err = l.InsertCategory(context.Background(), c)
	require.NoError(t, err)
	return c
}

func insertAccount(t *testing.T, l *services.Ledger, name string, category domain.Category, opening decimal.Decimal) domain.Account {
	t.Helper()
	a, err := domain.NewAccount(name, "", opening, category, 0)
	require.NoError(t, err)
	a, err = l.InsertAccount(context.Background(), a)
	require.NoError(t, err)
	return a
}

// txSpec carries the optional knobs of a test transaction.
type txSpec struct {
	day, month, year int
	txType           domain.TransactionType
	comment          string
	groupID          int
	contactID        int
	rate             decimal.Decimal
	rateDirection    int
}

func insertTransaction(t *testing.T, l *services.Ledger, amount string, debited, credited domain.Account, spec txSpec) domain.Transaction {
	t.Helper()
	if spec.day == 0 {
		spec.day, spec.month, spec.year = 15, 6, 2026
	}
	txn, err := l.BuildTransaction(domain.TransactionParams{
		Amount:            decimal.RequireFromString(amount),
		Day:               spec.day,
		Month:             spec.month,
		Year:              spec.year,
		Type:              spec.txType,
		Comment:           spec.comment,
		AccountDebitedID:  debited.ID,
		AccountCreditedID: credited.ID,
		GroupID:           spec.groupID,
		ContactID:         spec.contactID,
		Rate:              spec.rate,
		RateDirection:     spec.rateDirection,
	})
	require.NoError(t, err)
	txn, err = l.InsertTransaction(context.Background(), txn)
	require.NoError(t, err)
	return txn
}
