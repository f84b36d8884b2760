// Package sqlite persists ledger records in a sqlite database through the
// pure-Go driver. It implements every repository port plus the unit of
// work and schema manager the core depends on.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/moneybook-app/moneybook/internal/core/services"
)

// queryer is the common surface of *sql.DB and *sql.Tx the repositories
// run their statements against.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store exposes the sqlite-backed implementations of the persistence
// ports, all sharing one database handle.
type Store struct {
	db *sql.DB
}

// NewStore wraps an open database handle.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Persistence assembles the full persistence bundle the ledger consumes.
func (s *Store) Persistence() services.Persistence {
	return services.Persistence{
		Categories:        &CategoryRepository{db: s.db},
		Currencies:        &CurrencyRepository{db: s.db},
		Contacts:          &ContactRepository{db: s.db},
		Accounts:          &AccountRepository{db: s.db},
		TransactionGroups: &TransactionGroupRepository{db: s.db},
		Transactions:      &TransactionRepository{db: s.db},
		UnitOfWork:        &UnitOfWork{db: s.db},
		Schema:            &SchemaManager{db: s.db},
	}
}

// Decimals travel as their canonical string form so no precision is lost
// in either direction.
func decimalFromDB(col string, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("column %s: %w", col, err)
	}
	return d, nil
}

func maxID(ctx context.Context, q queryer, table string) (int, error) {
	var id int
	query := fmt.Sprintf("SELECT COALESCE(MAX(id), 0) FROM %s", table)
	if err := q.QueryRowContext(ctx, query).Scan(&id); err != nil {
		return 0, fmt.Errorf("max id of %s: %w", table, err)
	}
	return id, nil
}

func deleteAll(ctx context.Context, q queryer, table string) error {
	query := fmt.Sprintf("DELETE FROM %s", table)
	if _, err := q.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("delete all from %s: %w", table, err)
	}
	return nil
}

func deleteByID(ctx context.Context, q queryer, table string, id int) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = ?", table)
	if _, err := q.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	return nil
}
