package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/moneybook-app/moneybook/internal/core/domain"
	"github.com/moneybook-app/moneybook/internal/core/services"
)

type groupingScenario struct {
	ledger    *services.Ledger
	wallet    domain.Account
	groceries domain.Account
	utilities domain.Account
	group     domain.TransactionGroup
}

func newGroupingScenario(t *testing.T) groupingScenario {
	t.Helper()
	ledger, _ := newTestLedger(t)
	cash := insertCategory(t, ledger, "Cash", domain.BanksAndCash)
	expenses := insertCategory(t, ledger, "Household", domain.Expenses)

	group, err := domain.NewTransactionGroup(10, 6, 2026)
	require.NoError(t, err)
	group, err = ledger.InsertTransactionGroup(context.Background(), group)
	require.NoError(t, err)

	return groupingScenario{
		ledger:    ledger,
		wallet:    insertAccount(t, ledger, "Wallet", cash, decimal.Zero),
		groceries: insertAccount(t, ledger, "Groceries", expenses, decimal.Zero),
		utilities: insertAccount(t, ledger, "Utilities", expenses, decimal.Zero),
		group:     group,
	}
}

func insertContact(t *testing.T, l *services.Ledger, name string) domain.Contact {
	t.Helper()
	c, err := domain.NewContact(name, domain.Supplier)
	require.NoError(t, err)
	c, err = l.InsertContact(context.Background(), c)
	require.NoError(t, err)
	return c
}

func TestRowsPartitionsStandaloneAndGrouped(t *testing.T) {
	sc := newGroupingScenario(t)
	standalone := insertTransaction(t, sc.ledger, "5", sc.wallet, sc.groceries, txSpec{})
	insertTransaction(t, sc.ledger, "10", sc.wallet, sc.groceries, txSpec{groupID: sc.group.ID})
	insertTransaction(t, sc.ledger, "20", sc.wallet, sc.utilities, txSpec{groupID: sc.group.ID})

	rows := sc.ledger.Rows(sc.ledger.Transactions())
	require.Len(t, rows, 2)

	lone, ok := rows[0].(services.StandaloneRow)
	require.True(t, ok)
	require.Equal(t, standalone.ID, lone.Transaction.ID)

	split, ok := rows[1].(services.SplitRow)
	require.True(t, ok)
	require.Len(t, split.Members, 2)
}

func TestSplitSynthesis(t *testing.T) {
	sc := newGroupingScenario(t)
	acme := insertContact(t, sc.ledger, "Acme")
	util := insertContact(t, sc.ledger, "Utility Co")

	first := insertTransaction(t, sc.ledger, "10", sc.wallet, sc.groceries, txSpec{
		day: 10, month: 6, year: 2026,
		groupID:   sc.group.ID,
		contactID: acme.ID,
	})
	insertTransaction(t, sc.ledger, "20", sc.wallet, sc.utilities, txSpec{
		day: 11, month: 6, year: 2026,
		groupID:   sc.group.ID,
		txType:    domain.CashPurchase,
		comment:   "split bill",
		contactID: util.ID,
	})

	rows := sc.ledger.Rows(sc.ledger.Transactions())
	require.Len(t, rows, 1)
	split := rows[0].(services.SplitRow)

	// Total is the sum of signed amounts; both legs are expense flows.
	require.True(t, split.Split.Amount.Equal(decimal.RequireFromString("-30")),
		"got %s", split.Split.Amount)
	// First non-Undefined type, first non-empty comment.
	require.Equal(t, domain.CashPurchase, split.Split.Type)
	require.Equal(t, "split bill", split.Split.Comment)
	// Date of the first member by id.
	y, m, d := split.RowDate()
	require.Equal(t, [3]int{2026, 6, 10}, [3]int{y, m, d})
	require.Equal(t, first.ID, split.RowID())
	// Two distinct credited accounts collapse into a count.
	require.Equal(t, 0, split.Split.AccountCreditedID)
	require.Equal(t, "2 accounts", split.Split.AccountCreditedName)
	require.Equal(t, "Acme + Utility Co", split.Split.ContactNames)
}

func TestSplitSingleCreditedAccountKeepsName(t *testing.T) {
	sc := newGroupingScenario(t)
	insertTransaction(t, sc.ledger, "10", sc.wallet, sc.groceries, txSpec{groupID: sc.group.ID})
	insertTransaction(t, sc.ledger, "20", sc.wallet, sc.groceries, txSpec{groupID: sc.group.ID})

	rows := sc.ledger.Rows(sc.ledger.Transactions())
	split := rows[0].(services.SplitRow)
	require.Equal(t, "Groceries", split.Split.AccountCreditedName)
}

func TestSortRowsInterleavesByDate(t *testing.T) {
	sc := newGroupingScenario(t)
	late := insertTransaction(t, sc.ledger, "5", sc.wallet, sc.groceries, txSpec{day: 20, month: 6, year: 2026})
	member := insertTransaction(t, sc.ledger, "10", sc.wallet, sc.groceries, txSpec{
		day: 10, month: 6, year: 2026, groupID: sc.group.ID,
	})
	early := insertTransaction(t, sc.ledger, "5", sc.wallet, sc.groceries, txSpec{day: 1, month: 6, year: 2026})

	rows := sc.ledger.Rows(sc.ledger.Transactions())
	sc.ledger.SortRows(rows, services.OrderByDate)

	require.Equal(t, []int{early.ID, member.ID, late.ID},
		[]int{rows[0].RowID(), rows[1].RowID(), rows[2].RowID()})
}

func TestSortRowsByAmountWithIDTieBreak(t *testing.T) {
	sc := newGroupingScenario(t)
	a := insertTransaction(t, sc.ledger, "10", sc.wallet, sc.groceries, txSpec{})
	b := insertTransaction(t, sc.ledger, "10", sc.wallet, sc.groceries, txSpec{})
	c := insertTransaction(t, sc.ledger, "5", sc.wallet, sc.groceries, txSpec{})

	rows := sc.ledger.Rows(sc.ledger.Transactions())
	sc.ledger.SortRows(rows, services.OrderByAmount)

	// Signed amounts are negative, so the larger raw amount sorts first.
	require.Equal(t, []int{a.ID, b.ID, c.ID},
		[]int{rows[0].RowID(), rows[1].RowID(), rows[2].RowID()})
}

func TestSortRowsByDebitedAccountName(t *testing.T) {
	ledger, _ := newTestLedger(t)
	cash := insertCategory(t, ledger, "Cash", domain.BanksAndCash)
	expenses := insertCategory(t, ledger, "Household", domain.Expenses)
	zebra := insertAccount(t, ledger, "zebra", cash, decimal.Zero)
	alpha := insertAccount(t, ledger, "Alpha", cash, decimal.Zero)
	sink := insertAccount(t, ledger, "Sink", expenses, decimal.Zero)

	fromZebra := insertTransaction(t, ledger, "1", zebra, sink, txSpec{})
	fromAlpha := insertTransaction(t, ledger, "1", alpha, sink, txSpec{})

	rows := ledger.Rows(ledger.Transactions())
	ledger.SortRows(rows, services.OrderByDebitedAccount)

	require.Equal(t, []int{fromAlpha.ID, fromZebra.ID},
		[]int{rows[0].RowID(), rows[1].RowID()})
}
