// Package repositories defines the narrow persistence contracts the ledger
// core depends on. The core never touches a database directly; any record
// store implementing these interfaces can back it.
package repositories

import (
	"context"

	"github.com/moneybook-app/moneybook/internal/core/domain"
)

// CategoryRepository persists categories.
type CategoryRepository interface {
	Insert(ctx context.Context, c domain.Category) error
	InsertBatch(ctx context.Context, cs []domain.Category) error
	Update(ctx context.Context, c domain.Category) error
	Delete(ctx context.Context, id int) error
	GetAll(ctx context.Context) ([]domain.Category, error)
	DeleteAll(ctx context.Context) error
	MaxID(ctx context.Context) (int, error)
}

// CurrencyRepository persists currencies.
type CurrencyRepository interface {
	Insert(ctx context.Context, c domain.Currency) error
	InsertBatch(ctx context.Context, cs []domain.Currency) error
	Update(ctx context.Context, c domain.Currency) error
	Delete(ctx context.Context, id int) error
	GetAll(ctx context.Context) ([]domain.Currency, error)
	DeleteAll(ctx context.Context) error
	MaxID(ctx context.Context) (int, error)
}

// ContactRepository persists contacts.
type ContactRepository interface {
	Insert(ctx context.Context, c domain.Contact) error
	InsertBatch(ctx context.Context, cs []domain.Contact) error
	Update(ctx context.Context, c domain.Contact) error
	Delete(ctx context.Context, id int) error
	GetAll(ctx context.Context) ([]domain.Contact, error)
	DeleteAll(ctx context.Context) error
	MaxID(ctx context.Context) (int, error)
}

// AccountRepository persists accounts.
type AccountRepository interface {
	Insert(ctx context.Context, a domain.Account) error
	InsertBatch(ctx context.Context, as []domain.Account) error
	Update(ctx context.Context, a domain.Account) error
	Delete(ctx context.Context, id int) error
	GetAll(ctx context.Context) ([]domain.Account, error)
	DeleteAll(ctx context.Context) error
	MaxID(ctx context.Context) (int, error)
}

// TransactionGroupRepository persists transaction groups.
type TransactionGroupRepository interface {
	Insert(ctx context.Context, g domain.TransactionGroup) error
	InsertBatch(ctx context.Context, gs []domain.TransactionGroup) error
	Update(ctx context.Context, g domain.TransactionGroup) error
	Delete(ctx context.Context, id int) error
	GetAll(ctx context.Context) ([]domain.TransactionGroup, error)
	DeleteAll(ctx context.Context) error
	MaxID(ctx context.Context) (int, error)
}

// TransactionRepository persists transactions.
type TransactionRepository interface {
	Insert(ctx context.Context, t domain.Transaction) error
	InsertBatch(ctx context.Context, ts []domain.Transaction) error
	Update(ctx context.Context, t domain.Transaction) error
	Delete(ctx context.Context, id int) error
	GetAll(ctx context.Context) ([]domain.Transaction, error)
	DeleteAll(ctx context.Context) error
	MaxID(ctx context.Context) (int, error)
}

// RecordTx exposes per-entity writes scoped to one open transaction with
// autocommit off. Nothing becomes visible until the surrounding unit of
// work commits.
type RecordTx interface {
	InsertCategory(c domain.Category) error
	UpdateCategory(c domain.Category) error
	InsertCurrency(c domain.Currency) error
	UpdateCurrency(c domain.Currency) error
	InsertContact(c domain.Contact) error
	UpdateContact(c domain.Contact) error
	InsertAccount(a domain.Account) error
	UpdateAccount(a domain.Account) error
	InsertTransactionGroup(g domain.TransactionGroup) error
	UpdateTransactionGroup(g domain.TransactionGroup) error
	InsertTransaction(t domain.Transaction) error
	UpdateTransaction(t domain.Transaction) error
}

// UnitOfWork runs a function inside a single persistence transaction. Any
// error (or panic) returned by fn rolls the whole transaction back.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(tx RecordTx) error) error
}

// SchemaManager owns table lifecycle. Schema mechanics (dialect,
// migrations) are the implementation's concern.
type SchemaManager interface {
	CreateTables(ctx context.Context) error
	DropTables(ctx context.Context) error
}
