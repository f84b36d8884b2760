package sqlite

import (
	"context"
	"fmt"

	"github.com/moneybook-app/moneybook/internal/core/domain"
)

const (
	insertTransactionGroupSQL = `INSERT INTO transaction_groups
		(id, day, month, year, expanded, guid, modified)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	updateTransactionGroupSQL = `UPDATE transaction_groups SET
		day = ?, month = ?, year = ?, expanded = ?, guid = ?, modified = ?
		WHERE id = ?`
	selectTransactionGroupsSQL = `SELECT id, day, month, year, expanded, guid, modified
		FROM transaction_groups ORDER BY id`
)

// TransactionGroupRepository persists transaction groups in sqlite.
type TransactionGroupRepository struct {
	db queryer
}

func insertTransactionGroup(ctx context.Context, q queryer, g domain.TransactionGroup) error {
	_, err := q.ExecContext(ctx, insertTransactionGroupSQL,
		g.ID, g.Day, g.Month, g.Year, g.Expanded, g.GUID, g.Modified)
	if err != nil {
		return fmt.Errorf("insert transaction group %d: %w", g.ID, err)
	}
	return nil
}

func updateTransactionGroup(ctx context.Context, q queryer, g domain.TransactionGroup) error {
	_, err := q.ExecContext(ctx, updateTransactionGroupSQL,
		g.Day, g.Month, g.Year, g.Expanded, g.GUID, g.Modified, g.ID)
	if err != nil {
		return fmt.Errorf("update transaction group %d: %w", g.ID, err)
	}
	return nil
}

func (r *TransactionGroupRepository) Insert(ctx context.Context, g domain.TransactionGroup) error {
	return insertTransactionGroup(ctx, r.db, g)
}

func (r *TransactionGroupRepository) InsertBatch(ctx context.Context, gs []domain.TransactionGroup) error {
	for _, g := range gs {
		if err := insertTransactionGroup(ctx, r.db, g); err != nil {
			return err
		}
	}
	return nil
}

func (r *TransactionGroupRepository) Update(ctx context.Context, g domain.TransactionGroup) error {
	return updateTransactionGroup(ctx, r.db, g)
}

func (r *TransactionGroupRepository) Delete(ctx context.Context, id int) error {
	return deleteByID(ctx, r.db, "transaction_groups", id)
}

func (r *TransactionGroupRepository) GetAll(ctx context.Context) ([]domain.TransactionGroup, error) {
	rows, err := r.db.QueryContext(ctx, selectTransactionGroupsSQL)
	if err != nil {
		return nil, fmt.Errorf("select transaction groups: %w", err)
	}
	defer rows.Close()

	var out []domain.TransactionGroup
	for rows.Next() {
		var g domain.TransactionGroup
		if err := rows.Scan(&g.ID, &g.Day, &g.Month, &g.Year, &g.Expanded, &g.GUID, &g.Modified); err != nil {
			return nil, fmt.Errorf("scan transaction group: %w", err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *TransactionGroupRepository) DeleteAll(ctx context.Context) error {
	return deleteAll(ctx, r.db, "transaction_groups")
}

func (r *TransactionGroupRepository) MaxID(ctx context.Context) (int, error) {
	return maxID(ctx, r.db, "transaction_groups")
}
