package services_test

import (
	"context"
	"fmt"
	"sync"

	"github.com/moneybook-app/moneybook/internal/core/domain"
	"github.com/moneybook-app/moneybook/internal/core/ports/repositories"
	"github.com/moneybook-app/moneybook/internal/core/services"
)

// fakeTable is an in-memory stand-in for one repository. Insert enforces
// primary key and guid uniqueness just like the real store.
type fakeTable[T domain.Record] struct {
	mu   sync.Mutex
	rows map[int]T

	// failNext, when set, fails the next write and clears itself.
	failNext error
}

func newFakeTable[T domain.Record]() *fakeTable[T] {
	return &fakeTable[T]{rows: map[int]T{}}
}

func (f *fakeTable[T]) takeFailure() error {
	err := f.failNext
	f.failNext = nil
	return err
}

func (f *fakeTable[T]) insert(r T) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure(); err != nil {
		return err
	}
	if _, ok := f.rows[r.RecordID()]; ok {
		return fmt.Errorf("duplicate id %d", r.RecordID())
	}
	for _, existing := range f.rows {
		if existing.RecordGUID() == r.RecordGUID() {
			return fmt.Errorf("duplicate guid %s", r.RecordGUID())
		}
	}
	f.rows[r.RecordID()] = r
	return nil
}

func (f *fakeTable[T]) update(r T) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure(); err != nil {
		return err
	}
	if _, ok := f.rows[r.RecordID()]; !ok {
		return fmt.Errorf("no row with id %d", r.RecordID())
	}
	f.rows[r.RecordID()] = r
	return nil
}

func (f *fakeTable[T]) Insert(_ context.Context, r T) error { return f.insert(r) }

func (f *fakeTable[T]) InsertBatch(_ context.Context, rs []T) error {
	for _, r := range rs {
		if err := f.insert(r); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeTable[T]) Update(_ context.Context, r T) error { return f.update(r) }

func (f *fakeTable[T]) Delete(_ context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rows, id)
	return nil
}

func (f *fakeTable[T]) GetAll(_ context.Context) ([]T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]T, 0, len(f.rows))
	for _, r := range f.rows {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeTable[T]) DeleteAll(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows = map[int]T{}
	return nil
}

func (f *fakeTable[T]) MaxID(_ context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	max := 0
	for id := range f.rows {
		if id > max {
			max = id
		}
	}
	return max, nil
}

func (f *fakeTable[T]) snapshotRows() map[int]T {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[int]T, len(f.rows))
	for id, r := range f.rows {
		out[id] = r
	}
	return out
}

func (f *fakeTable[T]) restoreRows(rows map[int]T) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows = rows
}

// fakePersistence wires six fake tables plus a transactional unit of work
// that snapshots all tables up front and restores them on rollback.
type fakePersistence struct {
	categories *fakeTable[domain.Category]
	currencies *fakeTable[domain.Currency]
	contacts   *fakeTable[domain.Contact]
	accounts   *fakeTable[domain.Account]
	groups     *fakeTable[domain.TransactionGroup]
	txns       *fakeTable[domain.Transaction]
}

func newFakePersistence() *fakePersistence {
	return &fakePersistence{
		categories: newFakeTable[domain.Category](),
		currencies: newFakeTable[domain.Currency](),
		contacts:   newFakeTable[domain.Contact](),
		accounts:   newFakeTable[domain.Account](),
		groups:     newFakeTable[domain.TransactionGroup](),
		txns:       newFakeTable[domain.Transaction](),
	}
}

func (f *fakePersistence) persistence() services.Persistence {
	return services.Persistence{
		Categories:        f.categories,
		Currencies:        f.currencies,
		Contacts:          f.contacts,
		Accounts:          f.accounts,
		TransactionGroups: f.groups,
		Transactions:      f.txns,
		UnitOfWork:        &fakeUnitOfWork{p: f},
		Schema:            noopSchema{},
	}
}

type noopSchema struct{}

func (noopSchema) CreateTables(context.Context) error { return nil }
func (noopSchema) DropTables(context.Context) error   { return nil }

type fakeUnitOfWork struct {
	p *fakePersistence
}

func (u *fakeUnitOfWork) Do(ctx context.Context, fn func(tx repositories.RecordTx) error) error {
	savedCategories := u.p.categories.snapshotRows()
	savedCurrencies := u.p.currencies.snapshotRows()
	savedContacts := u.p.contacts.snapshotRows()
	savedAccounts := u.p.accounts.snapshotRows()
	savedGroups := u.p.groups.snapshotRows()
	savedTxns := u.p.txns.snapshotRows()

	if err := fn(&fakeRecordTx{ctx: ctx, p: u.p}); err != nil {
		u.p.categories.restoreRows(savedCategories)
		u.p.currencies.restoreRows(savedCurrencies)
		u.p.contacts.restoreRows(savedContacts)
		u.p.accounts.restoreRows(savedAccounts)
		u.p.groups.restoreRows(savedGroups)
		u.p.txns.restoreRows(savedTxns)
		return err
	}
	return nil
}

type fakeRecordTx struct {
	ctx context.Context
	p   *fakePersistence
}

func (t *fakeRecordTx) InsertCategory(c domain.Category) error { return t.p.categories.insert(c) }
func (t *fakeRecordTx) UpdateCategory(c domain.Category) error { return t.p.categories.update(c) }
func (t *fakeRecordTx) InsertCurrency(c domain.Currency) error { return t.p.currencies.insert(c) }
func (t *fakeRecordTx) UpdateCurrency(c domain.Currency) error { return t.p.currencies.update(c) }
func (t *fakeRecordTx) InsertContact(c domain.Contact) error   { return t.p.contacts.insert(c) }
func (t *fakeRecordTx) UpdateContact(c domain.Contact) error   { return t.p.contacts.update(c) }
func (t *fakeRecordTx) InsertAccount(a domain.Account) error   { return t.p.accounts.insert(a) }
func (t *fakeRecordTx) UpdateAccount(a domain.Account) error   { return t.p.accounts.update(a) }

func (t *fakeRecordTx) InsertTransactionGroup(g domain.TransactionGroup) error {
	return t.p.groups.insert(g)
}

func (t *fakeRecordTx) UpdateTransactionGroup(g domain.TransactionGroup) error {
	return t.p.groups.update(g)
}

func (t *fakeRecordTx) InsertTransaction(tr domain.Transaction) error { return t.p.txns.insert(tr) }
func (t *fakeRecordTx) UpdateTransaction(tr domain.Transaction) error { return t.p.txns.update(tr) }
