package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/moneybook-app/moneybook/internal/core/domain"
	"github.com/moneybook-app/moneybook/internal/core/ports/repositories"
)

// UnitOfWork runs record writes inside one sqlite transaction.
type UnitOfWork struct {
	db *sql.DB
}

// Do opens a transaction, hands a RecordTx to fn and commits. Any error or
// panic from fn rolls everything back.
func (u *UnitOfWork) Do(ctx context.Context, fn func(tx repositories.RecordTx) error) (err error) {
	sqlTx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = sqlTx.Rollback()
			panic(p)
		}
	}()

	if err := fn(&recordTx{ctx: ctx, tx: sqlTx}); err != nil {
		if rbErr := sqlTx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback after %w: %v", err, rbErr)
		}
		return err
	}
	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// recordTx scopes the per-entity writers to one open sqlite transaction.
type recordTx struct {
	ctx context.Context
	tx  *sql.Tx
}

func (t *recordTx) InsertCategory(c domain.Category) error { return insertCategory(t.ctx, t.tx, c) }
func (t *recordTx) UpdateCategory(c domain.Category) error { return updateCategory(t.ctx, t.tx, c) }
func (t *recordTx) InsertCurrency(c domain.Currency) error { return insertCurrency(t.ctx, t.tx, c) }
func (t *recordTx) UpdateCurrency(c domain.Currency) error { return updateCurrency(t.ctx, t.tx, c) }
func (t *recordTx) InsertContact(c domain.Contact) error   { return insertContact(t.ctx, t.tx, c) }
func (t *recordTx) UpdateContact(c domain.Contact) error   { return updateContact(t.ctx, t.tx, c) }
func (t *recordTx) InsertAccount(a domain.Account) error   { return insertAccount(t.ctx, t.tx, a) }
func (t *recordTx) UpdateAccount(a domain.Account) error   { return updateAccount(t.ctx, t.tx, a) }

func (t *recordTx) InsertTransactionGroup(g domain.TransactionGroup) error {
	return insertTransactionGroup(t.ctx, t.tx, g)
}

func (t *recordTx) UpdateTransactionGroup(g domain.TransactionGroup) error {
	return updateTransactionGroup(t.ctx, t.tx, g)
}

func (t *recordTx) InsertTransaction(tr domain.Transaction) error {
	return insertTransaction(t.ctx, t.tx, tr)
}

func (t *recordTx) UpdateTransaction(tr domain.Transaction) error {
	return updateTransaction(t.ctx, t.tx, tr)
}
