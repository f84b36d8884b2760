package sqlite

import (
	"context"
	"fmt"

	"github.com/moneybook-app/moneybook/internal/core/domain"
)

const (
	insertAccountSQL = `INSERT INTO accounts
		(id, name, comment, opening_balance, account_limit, currency_rate,
		 cat_type, category_id, currency_id, enabled, guid, modified)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	updateAccountSQL = `UPDATE accounts SET
		name = ?, comment = ?, opening_balance = ?, account_limit = ?,
		currency_rate = ?, cat_type = ?, category_id = ?, currency_id = ?,
		enabled = ?, guid = ?, modified = ?
		WHERE id = ?`
	selectAccountsSQL = `SELECT id, name, comment, opening_balance,
		account_limit, currency_rate, cat_type, category_id, currency_id,
		enabled, guid, modified
		FROM accounts ORDER BY id`
)

// AccountRepository persists accounts in sqlite.
type AccountRepository struct {
	db queryer
}

func insertAccount(ctx context.Context, q queryer, a domain.Account) error {
	_, err := q.ExecContext(ctx, insertAccountSQL,
		a.ID, a.Name, a.Comment, a.OpeningBalance.String(),
		a.AccountLimit.String(), a.CurrencyRate.String(), int(a.Type),
		a.CategoryID, a.CurrencyID, a.Enabled, a.GUID, a.Modified)
	if err != nil {
		return fmt.Errorf("insert account %d: %w", a.ID, err)
	}
	return nil
}

func updateAccount(ctx context.Context, q queryer, a domain.Account) error {
	_, err := q.ExecContext(ctx, updateAccountSQL,
		a.Name, a.Comment, a.OpeningBalance.String(), a.AccountLimit.String(),
		a.CurrencyRate.String(), int(a.Type), a.CategoryID, a.CurrencyID,
		a.Enabled, a.GUID, a.Modified, a.ID)
	if err != nil {
		return fmt.Errorf("update account %d: %w", a.ID, err)
	}
	return nil
}

func (r *AccountRepository) Insert(ctx context.Context, a domain.Account) error {
	return insertAccount(ctx, r.db, a)
}

func (r *AccountRepository) InsertBatch(ctx context.Context, as []domain.Account) error {
	for _, a := range as {
		if err := insertAccount(ctx, r.db, a); err != nil {
			return err
		}
	}
	return nil
}

func (r *AccountRepository) Update(ctx context.Context, a domain.Account) error {
	return updateAccount(ctx, r.db, a)
}

func (r *AccountRepository) Delete(ctx context.Context, id int) error {
	return deleteByID(ctx, r.db, "accounts", id)
}

func (r *AccountRepository) GetAll(ctx context.Context) ([]domain.Account, error) {
	rows, err := r.db.QueryContext(ctx, selectAccountsSQL)
	if err != nil {
		return nil, fmt.Errorf("select accounts: %w", err)
	}
	defer rows.Close()

	var out []domain.Account
	for rows.Next() {
		var a domain.Account
		var catType int
		var opening, limit, rate string
		if err := rows.Scan(&a.ID, &a.Name, &a.Comment, &opening, &limit,
			&rate, &catType, &a.CategoryID, &a.CurrencyID, &a.Enabled,
			&a.GUID, &a.Modified); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		a.Type = domain.CategoryType(catType)
		if a.OpeningBalance, err = decimalFromDB("opening_balance", opening); err != nil {
			return nil, err
		}
		if a.AccountLimit, err = decimalFromDB("account_limit", limit); err != nil {
			return nil, err
		}
		if a.CurrencyRate, err = decimalFromDB("currency_rate", rate); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AccountRepository) DeleteAll(ctx context.Context) error {
	return deleteAll(ctx, r.db, "accounts")
}

func (r *AccountRepository) MaxID(ctx context.Context) (int, error) {
	return maxID(ctx, r.db, "accounts")
}
