package sqlite

import (
	"context"
	"fmt"

	"github.com/moneybook-app/moneybook/internal/core/domain"
)

const (
	insertCurrencySQL = `INSERT INTO currencies
		(id, symbol, description, format_symbol, format_symbol_position,
		 show_format_symbol, is_default, rate, direction,
		 use_thousand_separator, guid, modified)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	updateCurrencySQL = `UPDATE currencies SET
		symbol = ?, description = ?, format_symbol = ?,
		format_symbol_position = ?, show_format_symbol = ?, is_default = ?,
		rate = ?, direction = ?, use_thousand_separator = ?, guid = ?,
		modified = ?
		WHERE id = ?`
	selectCurrenciesSQL = `SELECT id, symbol, description, format_symbol,
		format_symbol_position, show_format_symbol, is_default, rate,
		direction, use_thousand_separator, guid, modified
		FROM currencies ORDER BY id`
)

// CurrencyRepository persists currencies in sqlite.
type CurrencyRepository struct {
	db queryer
}

func insertCurrency(ctx context.Context, q queryer, c domain.Currency) error {
	_, err := q.ExecContext(ctx, insertCurrencySQL,
		c.ID, c.Symbol, c.Description, c.FormatSymbol, c.FormatSymbolPosition,
		c.ShowFormatSymbol, c.Default, c.Rate.String(), c.Direction,
		c.UseThousandSeparator, c.GUID, c.Modified)
	if err != nil {
		return fmt.Errorf("insert currency %d: %w", c.ID, err)
	}
	return nil
}

func updateCurrency(ctx context.Context, q queryer, c domain.Currency) error {
	_, err := q.ExecContext(ctx, updateCurrencySQL,
		c.Symbol, c.Description, c.FormatSymbol, c.FormatSymbolPosition,
		c.ShowFormatSymbol, c.Default, c.Rate.String(), c.Direction,
		c.UseThousandSeparator, c.GUID, c.Modified, c.ID)
	if err != nil {
		return fmt.Errorf("update currency %d: %w", c.ID, err)
	}
	return nil
}

func (r *CurrencyRepository) Insert(ctx context.Context, c domain.Currency) error {
	return insertCurrency(ctx, r.db, c)
}

func (r *CurrencyRepository) InsertBatch(ctx context.Context, cs []domain.Currency) error {
	for _, c := range cs {
		if err := insertCurrency(ctx, r.db, c); err != nil {
			return err
		}
	}
	return nil
}

func (r *CurrencyRepository) Update(ctx context.Context, c domain.Currency) error {
	return updateCurrency(ctx, r.db, c)
}

func (r *CurrencyRepository) Delete(ctx context.Context, id int) error {
	return deleteByID(ctx, r.db, "currencies", id)
}

func (r *CurrencyRepository) GetAll(ctx context.Context) ([]domain.Currency, error) {
	rows, err := r.db.QueryContext(ctx, selectCurrenciesSQL)
	if err != nil {
		return nil, fmt.Errorf("select currencies: %w", err)
	}
	defer rows.Close()

	var out []domain.Currency
	for rows.Next() {
		var c domain.Currency
		var rate string
		if err := rows.Scan(&c.ID, &c.Symbol, &c.Description, &c.FormatSymbol,
			&c.FormatSymbolPosition, &c.ShowFormatSymbol, &c.Default, &rate,
			&c.Direction, &c.UseThousandSeparator, &c.GUID, &c.Modified); err != nil {
			return nil, fmt.Errorf("scan currency: %w", err)
		}
		if c.Rate, err = decimalFromDB("rate", rate); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CurrencyRepository) DeleteAll(ctx context.Context) error {
	return deleteAll(ctx, r.db, "currencies")
}

func (r *CurrencyRepository) MaxID(ctx context.Context) (int, error) {
	return maxID(ctx, r.db, "currencies")
}
