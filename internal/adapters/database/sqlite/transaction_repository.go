package sqlite

import (
	"context"
	"fmt"

	"github.com/moneybook-app/moneybook/internal/core/domain"
)

const (
	insertTransactionSQL = `INSERT INTO transactions
		(id, amount, day, month, year, trans_type, comment, checked,
		 acc_debited_id, acc_credited_id, acc_debited_type,
		 acc_credited_type, acc_debited_category_id,
		 acc_credited_category_id, group_id, contact_id, rate,
		 rate_direction, invoice_number, guid, modified)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	updateTransactionSQL = `UPDATE transactions SET
		amount = ?, day = ?, month = ?, year = ?, trans_type = ?,
		comment = ?, checked = ?, acc_debited_id = ?, acc_credited_id = ?,
		acc_debited_type = ?, acc_credited_type = ?,
		acc_debited_category_id = ?, acc_credited_category_id = ?,
		group_id = ?, contact_id = ?, rate = ?, rate_direction = ?,
		invoice_number = ?, guid = ?, modified = ?
		WHERE id = ?`
	selectTransactionsSQL = `SELECT id, amount, day, month, year, trans_type,
		comment, checked, acc_debited_id, acc_credited_id, acc_debited_type,
		acc_credited_type, acc_debited_category_id, acc_credited_category_id,
		group_id, contact_id, rate, rate_direction, invoice_number, guid,
		modified
		FROM transactions ORDER BY id`
)

// TransactionRepository persists transactions in sqlite. The signed amount
// is not stored; rows pass through the domain factory on load, which
// rederives it.
type TransactionRepository struct {
	db queryer
}

func insertTransaction(ctx context.Context, q queryer, t domain.Transaction) error {
	_, err := q.ExecContext(ctx, insertTransactionSQL,
		t.ID, t.Amount.String(), t.Day, t.Month, t.Year, int(t.Type),
		t.Comment, t.Checked, t.AccountDebitedID, t.AccountCreditedID,
		int(t.AccountDebitedType), int(t.AccountCreditedType),
		t.AccountDebitedCategoryID, t.AccountCreditedCategoryID,
		t.GroupID, t.ContactID, t.Rate.String(), t.RateDirection,
		t.InvoiceNumber, t.GUID, t.Modified)
	if err != nil {
		return fmt.Errorf("insert transaction %d: %w", t.ID, err)
	}
	return nil
}

func updateTransaction(ctx context.Context, q queryer, t domain.Transaction) error {
	_, err := q.ExecContext(ctx, updateTransactionSQL,
		t.Amount.String(), t.Day, t.Month, t.Year, int(t.Type), t.Comment,
		t.Checked, t.AccountDebitedID, t.AccountCreditedID,
		int(t.AccountDebitedType), int(t.AccountCreditedType),
		t.AccountDebitedCategoryID, t.AccountCreditedCategoryID,
		t.GroupID, t.ContactID, t.Rate.String(), t.RateDirection,
		t.InvoiceNumber, t.GUID, t.Modified, t.ID)
	if err != nil {
		return fmt.Errorf("update transaction %d: %w", t.ID, err)
	}
	return nil
}

func (r *TransactionRepository) Insert(ctx context.Context, t domain.Transaction) error {
	return insertTransaction(ctx, r.db, t)
}

func (r *TransactionRepository) InsertBatch(ctx context.Context, ts []domain.Transaction) error {
	for _, t := range ts {
		if err := insertTransaction(ctx, r.db, t); err != nil {
			return err
		}
	}
	return nil
}

func (r *TransactionRepository) Update(ctx context.Context, t domain.Transaction) error {
	return updateTransaction(ctx, r.db, t)
}

func (r *TransactionRepository) Delete(ctx context.Context, id int) error {
	return deleteByID(ctx, r.db, "transactions", id)
}

func (r *TransactionRepository) GetAll(ctx context.Context) ([]domain.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, selectTransactionsSQL)
	if err != nil {
		return nil, fmt.Errorf("select transactions: %w", err)
	}
	defer rows.Close()

	var out []domain.Transaction
	for rows.Next() {
		var p domain.TransactionParams
		var amount, rate string
		var transType, debitedType, creditedType int
		if err := rows.Scan(&p.ID, &amount, &p.Day, &p.Month, &p.Year,
			&transType, &p.Comment, &p.Checked, &p.AccountDebitedID,
			&p.AccountCreditedID, &debitedType, &creditedType,
			&p.AccountDebitedCategoryID, &p.AccountCreditedCategoryID,
			&p.GroupID, &p.ContactID, &rate, &p.RateDirection,
			&p.InvoiceNumber, &p.GUID, &p.Modified); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		p.Type = domain.TransactionType(transType)
		p.AccountDebitedType = domain.CategoryType(debitedType)
		p.AccountCreditedType = domain.CategoryType(creditedType)
		if p.Amount, err = decimalFromDB("amount", amount); err != nil {
			return nil, err
		}
		if p.Rate, err = decimalFromDB("rate", rate); err != nil {
			return nil, err
		}
		t, err := domain.NewTransaction(p)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", p.ID, err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TransactionRepository) DeleteAll(ctx context.Context) error {
	return deleteAll(ctx, r.db, "transactions")
}

func (r *TransactionRepository) MaxID(ctx context.Context) (int, error) {
	return maxID(ctx, r.db, "transactions")
}
