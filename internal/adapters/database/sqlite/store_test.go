package sqlite_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	storesqlite "github.com/moneybook-app/moneybook/internal/adapters/database/sqlite"
	"github.com/moneybook-app/moneybook/internal/core/domain"
	"github.com/moneybook-app/moneybook/internal/core/ports/repositories"
	"github.com/moneybook-app/moneybook/internal/core/services"
)

func openTestStore(t *testing.T) services.Persistence {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// A second pool connection would see an empty in-memory database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	p := storesqlite.NewStore(db).Persistence()
	require.NoError(t, p.Schema.CreateTables(context.Background()))
	return p
}

func testCategory(id int, name string) domain.Category {
	return domain.Category{
		ID: id, Name: name, Type: domain.Expenses,
		GUID:     "11111111-1111-4111-8111-11111111111" + string(rune('0'+id)),
		Modified: 1000,
	}
}

func TestCategoryRoundTrip(t *testing.T) {
	p := openTestStore(t)
	ctx := context.Background()

	want := testCategory(1, "Food")
	want.Comment = "daily"
	want.Expanded = true
	require.NoError(t, p.Categories.Insert(ctx, want))

	got, err := p.Categories.GetAll(ctx)
	require.NoError(t, err)
	require.Equal(t, []domain.Category{want}, got)

	want.Name = "Groceries"
	want.Modified = 2000
	require.NoError(t, p.Categories.Update(ctx, want))

	got, err = p.Categories.GetAll(ctx)
	require.NoError(t, err)
	require.Equal(t, "Groceries", got[0].Name)

	require.NoError(t, p.Categories.Delete(ctx, want.ID))
	got, err = p.Categories.GetAll(ctx)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestInsertRejectsDuplicateGUID(t *testing.T) {
	p := openTestStore(t)
	ctx := context.Background()

	first := testCategory(1, "Food")
	second := testCategory(2, "Rent")
	second.GUID = first.GUID

	require.NoError(t, p.Categories.Insert(ctx, first))
	require.Error(t, p.Categories.Insert(ctx, second))
}

func TestTransactionRoundTripRederivesSignedAmount(t *testing.T) {
	p := openTestStore(t)
	ctx := context.Background()

	txn, err := domain.NewTransaction(domain.TransactionParams{
		ID:                        1,
		Amount:                    decimal.RequireFromString("42.50"),
		Day:                       15,
		Month:                     6,
		Year:                      2026,
		Type:                      domain.CardPayment,
		Comment:                   "lunch",
		AccountDebitedID:          1,
		AccountCreditedID:         2,
		AccountDebitedType:        domain.BanksAndCash,
		AccountCreditedType:       domain.Expenses,
		AccountDebitedCategoryID:  1,
		AccountCreditedCategoryID: 2,
		Rate:                      decimal.RequireFromString("1.5"),
		RateDirection:             domain.RateMultiply,
		GUID:                      "66666666-6666-4666-8666-666666666661",
		Modified:                  1000,
	})
	require.NoError(t, err)
	require.NoError(t, p.Transactions.Insert(ctx, txn))

	got, err := p.Transactions.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.True(t, txn.Equal(got[0]))
	require.True(t, got[0].SignedAmount.Equal(decimal.RequireFromString("-42.50")))
}

func TestMaxIDAndDeleteAll(t *testing.T) {
	p := openTestStore(t)
	ctx := context.Background()

	id, err := p.Categories.MaxID(ctx)
	require.NoError(t, err)
	require.Zero(t, id)

	require.NoError(t, p.Categories.InsertBatch(ctx, []domain.Category{
		testCategory(3, "A"), testCategory(7, "B"),
	}))

	id, err = p.Categories.MaxID(ctx)
	require.NoError(t, err)
	require.Equal(t, 7, id)

	require.NoError(t, p.Categories.DeleteAll(ctx))
	id, err = p.Categories.MaxID(ctx)
	require.NoError(t, err)
	require.Zero(t, id)
}

func TestUnitOfWorkCommits(t *testing.T) {
	p := openTestStore(t)
	ctx := context.Background()

	err := p.UnitOfWork.Do(ctx, func(tx repositories.RecordTx) error {
		if err := tx.InsertCategory(testCategory(1, "Food")); err != nil {
			return err
		}
		return tx.InsertCategory(testCategory(2, "Rent"))
	})
	require.NoError(t, err)

	got, err := p.Categories.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
}

func TestUnitOfWorkRollsBack(t *testing.T) {
	p := openTestStore(t)
	ctx := context.Background()

	boom := errors.New("boom")
	err := p.UnitOfWork.Do(ctx, func(tx repositories.RecordTx) error {
		if err := tx.InsertCategory(testCategory(1, "Food")); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := p.Categories.GetAll(ctx)
	require.NoError(t, err)
	require.Empty(t, got, "insert must be rolled back")
}

func TestDropTables(t *testing.T) {
	p := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, p.Categories.Insert(ctx, testCategory(1, "Food")))
	require.NoError(t, p.Schema.DropTables(ctx))

	_, err := p.Categories.GetAll(ctx)
	require.Error(t, err, "table is gone")
}
