package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/moneybook-app/moneybook/internal/apperrors"
	"github.com/moneybook-app/moneybook/internal/core/domain"
	"github.com/moneybook-app/moneybook/internal/core/ports/repositories"
)

// Progress receives incremental status strings during long operations.
type Progress func(string)

func noProgress(string) {}

// Persistence bundles the record store the ledger writes through.
type Persistence struct {
	Categories        repositories.CategoryRepository
	Currencies        repositories.CurrencyRepository
	Contacts          repositories.ContactRepository
	Accounts          repositories.AccountRepository
	TransactionGroups repositories.TransactionGroupRepository
	Transactions      repositories.TransactionRepository
	UnitOfWork        repositories.UnitOfWork
	Schema            repositories.SchemaManager
}

// Ledger is the authoritative in-memory view of one bookkeeping database.
// One instance exists per open database session and is handed to all
// consumers.
//
// Reads are safe while a write is in flight; writes serialize against each
// other (single-writer discipline). Long operations such as imports run on
// a background goroutine while the foreground keeps issuing read queries.
type Ledger struct {
	p      Persistence
	logger *slog.Logger

	mu                sync.RWMutex
	categories        map[int]domain.Category
	currencies        map[int]domain.Currency
	contacts          map[int]domain.Contact
	accounts          map[int]domain.Account
	transactionGroups map[int]domain.TransactionGroup
	transactions      map[int]domain.Transaction

	// writeMu serializes every mutating operation, imports included.
	writeMu sync.Mutex

	// nextID counters are monotonic per entity and never reused within a
	// session, even after deletion; reused ids would break GUID
	// reconciliation during import.
	idMu   sync.Mutex
	nextID map[Entity]int

	subMu       sync.Mutex
	subscribers []func(Event)
}

// NewLedger builds a ledger over the given persistence. Call Open before
// use.
func NewLedger(p Persistence, logger *slog.Logger) *Ledger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ledger{
		p:                 p,
		logger:            logger,
		categories:        map[int]domain.Category{},
		currencies:        map[int]domain.Currency{},
		contacts:          map[int]domain.Contact{},
		accounts:          map[int]domain.Account{},
		transactionGroups: map[int]domain.TransactionGroup{},
		transactions:      map[int]domain.Transaction{},
		nextID:            map[Entity]int{},
	}
}

// Open loads every collection from persistent storage.
func (l *Ledger) Open(ctx context.Context) error {
	return l.Preload(ctx, nil)
}

// CreateTables delegates table creation to the schema manager.
func (l *Ledger) CreateTables(ctx context.Context) error {
	return l.p.Schema.CreateTables(ctx)
}

// DropTables delegates table removal to the schema manager.
func (l *Ledger) DropTables(ctx context.Context) error {
	return l.p.Schema.DropTables(ctx)
}

// Subscribe registers a change listener. Events arrive in order per
// subscriber; delivery order across subscribers is unspecified. Callbacks
// run synchronously on the mutating goroutine while the ledger's write
// lock is held, so they must not call back into ledger write methods.
func (l *Ledger) Subscribe(fn func(Event)) {
	l.subMu.Lock()
	defer l.subMu.Unlock()
	l.subscribers = append(l.subscribers, fn)
}

func (l *Ledger) publish(e Event) {
	l.subMu.Lock()
	subs := make([]func(Event), len(l.subscribers))
	copy(subs, l.subscribers)
	l.subMu.Unlock()
	for _, fn := range subs {
		fn(e)
	}
}

func (l *Ledger) generateID(e Entity) int {
	l.idMu.Lock()
	defer l.idMu.Unlock()
	l.nextID[e]++
	return l.nextID[e]
}

// bumpID raises the counter so it stays ahead of externally assigned ids.
func (l *Ledger) bumpID(e Entity, id int) {
	l.idMu.Lock()
	if id > l.nextID[e] {
		l.nextID[e] = id
	}
	l.idMu.Unlock()
}

func (l *Ledger) resetIDs() {
	l.idMu.Lock()
	l.nextID = map[Entity]int{}
	l.idMu.Unlock()
}

// Preload clears and repopulates every in-memory collection from
// persistent storage. Tables load concurrently; the swap happens only once
// all of them arrived, so readers never observe a half-loaded state.
// Subscribers receive one Reloaded event per collection after the swap,
// which is how they learn that an import replaced the data underneath.
func (l *Ledger) Preload(ctx context.Context, progress Progress) error {
	if progress == nil {
		progress = noProgress
	}
	l.logger.Info("preloading ledger collections")
	progress("Preloading data...\n")

	var (
		categories []domain.Category
		currencies []domain.Currency
		contacts   []domain.Contact
		accounts   []domain.Account
		groups     []domain.TransactionGroup
		txns       []domain.Transaction

		maxCategory, maxCurrency, maxContact int
		maxAccount, maxGroup, maxTransaction int
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		if categories, err = l.p.Categories.GetAll(ctx); err != nil {
			return err
		}
		maxCategory, err = l.p.Categories.MaxID(ctx)
		progress("    categories... done\n")
		return err
	})
	g.Go(func() (err error) {
		if currencies, err = l.p.Currencies.GetAll(ctx); err != nil {
			return err
		}
		maxCurrency, err = l.p.Currencies.MaxID(ctx)
		progress("    currencies... done\n")
		return err
	})
	g.Go(func() (err error) {
		if contacts, err = l.p.Contacts.GetAll(ctx); err != nil {
			return err
		}
		maxContact, err = l.p.Contacts.MaxID(ctx)
		progress("    contacts... done\n")
		return err
	})
	g.Go(func() (err error) {
		if accounts, err = l.p.Accounts.GetAll(ctx); err != nil {
			return err
		}
		maxAccount, err = l.p.Accounts.MaxID(ctx)
		progress("    accounts... done\n")
		return err
	})
	g.Go(func() (err error) {
		if groups, err = l.p.TransactionGroups.GetAll(ctx); err != nil {
			return err
		}
		maxGroup, err = l.p.TransactionGroups.MaxID(ctx)
		progress("    transaction groups... done\n")
		return err
	})
	g.Go(func() (err error) {
		if txns, err = l.p.Transactions.GetAll(ctx); err != nil {
			return err
		}
		maxTransaction, err = l.p.Transactions.MaxID(ctx)
		progress("    transactions... done\n")
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("preload: %w", err)
	}

	l.mu.Lock()
	l.categories = indexByID(categories, func(c domain.Category) int { return c.ID })
	l.currencies = indexByID(currencies, func(c domain.Currency) int { return c.ID })
	l.contacts = indexByID(contacts, func(c domain.Contact) int { return c.ID })
	l.accounts = indexByID(accounts, func(a domain.Account) int { return a.ID })
	l.transactionGroups = indexByID(groups, func(g domain.TransactionGroup) int { return g.ID })
	l.transactions = indexByID(txns, func(t domain.Transaction) int { return t.ID })
	l.mu.Unlock()

	l.bumpID(EntityCategory, maxCategory)
	l.bumpID(EntityCurrency, maxCurrency)
	l.bumpID(EntityContact, maxContact)
	l.bumpID(EntityAccount, maxAccount)
	l.bumpID(EntityTransactionGroup, maxGroup)
	l.bumpID(EntityTransaction, maxTransaction)

	for _, e := range []Entity{
		EntityCategory, EntityCurrency, EntityAccount,
		EntityContact, EntityTransactionGroup, EntityTransaction,
	} {
		l.publish(Event{e, 0, Reloaded})
	}

	progress("done\n")
	l.logger.Info("ledger preloaded",
		slog.Int("categories", len(categories)),
		slog.Int("currencies", len(currencies)),
		slog.Int("contacts", len(contacts)),
		slog.Int("accounts", len(accounts)),
		slog.Int("transaction_groups", len(groups)),
		slog.Int("transactions", len(txns)),
	)
	return nil
}

func indexByID[T any](records []T, id func(T) int) map[int]T {
	m := make(map[int]T, len(records))
	for _, r := range records {
		m[id(r)] = r
	}
	return m
}

////////////////////////////////////////////////////////////////////////////
// Categories
////////////////////////////////////////////////////////////////////////////

// GetCategory looks up a category by id.
func (l *Ledger) GetCategory(id int) (domain.Category, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	c, ok := l.categories[id]
	return c, ok
}

// Categories returns all categories in id order.
func (l *Ledger) Categories() []domain.Category {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return sortedValues(l.categories, func(c domain.Category) int { return c.ID })
}

// CategoriesByType returns categories matching any of the given types.
func (l *Ledger) CategoriesByType(types ...domain.CategoryType) []domain.Category {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []domain.Category
	for _, c := range l.categories {
		for _, t := range types {
			if c.Type == t {
				out = append(out, c)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// InsertCategory assigns an id, persists and indexes a category.
func (l *Ledger) InsertCategory(ctx context.Context, c domain.Category) (domain.Category, error) {
	l.writeMu.Lock()
	defer l.writeMu.Unlock()
	c.ID = l.generateID(EntityCategory)
	if err := l.p.Categories.Insert(ctx, c); err != nil {
		return domain.Category{}, fmt.Errorf("insert category: %w", err)
	}
	l.mu.Lock()
	l.categories[c.ID] = c
	l.mu.Unlock()
	l.publish(Event{EntityCategory, c.ID, Added})
	return c, nil
}

// UpdateCategory replaces an existing category by id.
func (l *Ledger) UpdateCategory(ctx context.Context, c domain.Category) (domain.Category, error) {
	l.writeMu.Lock()
	defer l.writeMu.Unlock()
	if _, ok := l.GetCategory(c.ID); !ok {
		return domain.Category{}, fmt.Errorf("category %d: %w", c.ID, apperrors.ErrNotFound)
	}
	if err := l.p.Categories.Update(ctx, c); err != nil {
		return domain.Category{}, fmt.Errorf("update category: %w", err)
	}
	l.mu.Lock()
	l.categories[c.ID] = c
	l.mu.Unlock()
	l.publish(Event{EntityCategory, c.ID, Updated})
	return c, nil
}

////////////////////////////////////////////////////////////////////////////
// Currencies
////////////////////////////////////////////////////////////////////////////

// GetCurrency looks up a currency by id; id 0 is the legitimate "none".
func (l *Ledger) GetCurrency(id int) (domain.Currency, bool) {
	if id == 0 {
		return domain.Currency{}, false
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	c, ok := l.currencies[id]
	return c, ok
}

// Currencies returns all currencies in id order.
func (l *Ledger) Currencies() []domain.Currency {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return sortedValues(l.currencies, func(c domain.Currency) int { return c.ID })
}

// DefaultCurrency resolves the default currency. More than one currency
// may carry the default flag in historical data; the lowest id wins, which
// keeps the resolution deterministic.
func (l *Ledger) DefaultCurrency() (domain.Currency, bool) {
	for _, c := range l.Currencies() {
		if c.Default {
			return c, true
		}
	}
	return domain.Currency{}, false
}

// InsertCurrency assigns an id, persists and indexes a currency.
func (l *Ledger) InsertCurrency(ctx context.Context, c domain.Currency) (domain.Currency, error) {
	l.writeMu.Lock()
	defer l.writeMu.Unlock()
	c.ID = l.generateID(EntityCurrency)
	if err := l.p.Currencies.Insert(ctx, c); err != nil {
		return domain.Currency{}, fmt.Errorf("insert currency: %w", err)
	}
	l.mu.Lock()
	l.currencies[c.ID] = c
	l.mu.Unlock()
	l.publish(Event{EntityCurrency, c.ID, Added})
	return c, nil
}

// UpdateCurrency replaces an existing currency by id.
func (l *Ledger) UpdateCurrency(ctx context.Context, c domain.Currency) (domain.Currency, error) {
	l.writeMu.Lock()
	defer l.writeMu.Unlock()
	if _, ok := l.GetCurrency(c.ID); !ok {
		return domain.Currency{}, fmt.Errorf("currency %d: %w", c.ID, apperrors.ErrNotFound)
	}
	if err := l.p.Currencies.Update(ctx, c); err != nil {
		return domain.Currency{}, fmt.Errorf("update currency: %w", err)
	}
	l.mu.Lock()
	l.currencies[c.ID] = c
	l.mu.Unlock()
	l.publish(Event{EntityCurrency, c.ID, Updated})
	return c, nil
}

////////////////////////////////////////////////////////////////////////////
// Contacts
////////////////////////////////////////////////////////////////////////////

// GetContact looks up a contact by id; id 0 is the legitimate "none".
func (l *Ledger) GetContact(id int) (domain.Contact, bool) {
	if id == 0 {
		return domain.Contact{}, false
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	c, ok := l.contacts[id]
	return c, ok
}

// Contacts returns all contacts in id order.
func (l *Ledger) Contacts() []domain.Contact {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return sortedValues(l.contacts, func(c domain.Contact) int { return c.ID })
}

// InsertContact assigns an id, persists and indexes a contact.
func (l *Ledger) InsertContact(ctx context.Context, c domain.Contact) (domain.Contact, error) {
	l.writeMu.Lock()
	defer l.writeMu.Unlock()
	c.ID = l.generateID(EntityContact)
	if err := l.p.Contacts.Insert(ctx, c); err != nil {
		return domain.Contact{}, fmt.Errorf("insert contact: %w", err)
	}
	l.mu.Lock()
	l.contacts[c.ID] = c
	l.mu.Unlock()
	l.publish(Event{EntityContact, c.ID, Added})
	return c, nil
}

// UpdateContact replaces an existing contact by id.
func (l *Ledger) UpdateContact(ctx context.Context, c domain.Contact) (domain.Contact, error) {
	l.writeMu.Lock()
	defer l.writeMu.Unlock()
	if _, ok := l.GetContact(c.ID); !ok {
		return domain.Contact{}, fmt.Errorf("contact %d: %w", c.ID, apperrors.ErrNotFound)
	}
	if err := l.p.Contacts.Update(ctx, c); err != nil {
		return domain.Contact{}, fmt.Errorf("update contact: %w", err)
	}
	l.mu.Lock()
	l.contacts[c.ID] = c
	l.mu.Unlock()
	l.publish(Event{EntityContact, c.ID, Updated})
	return c, nil
}

////////////////////////////////////////////////////////////////////////////
// Accounts
////////////////////////////////////////////////////////////////////////////

// GetAccount looks up an account by id.
func (l *Ledger) GetAccount(id int) (domain.Account, bool) {
	if id == 0 {
		return domain.Account{}, false
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	a, ok := l.accounts[id]
	return a, ok
}

// Accounts returns all accounts in id order.
func (l *Ledger) Accounts() []domain.Account {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return sortedValues(l.accounts, func(a domain.Account) int { return a.ID })
}

// AccountsByType returns accounts of the given category type.
func (l *Ledger) AccountsByType(t domain.CategoryType) []domain.Account {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []domain.Account
	for _, a := range l.accounts {
		if a.Type == t {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// AccountsByCategory returns accounts belonging to any of the categories.
func (l *Ledger) AccountsByCategory(categoryIDs ...int) []domain.Account {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []domain.Account
	for _, a := range l.accounts {
		for _, id := range categoryIDs {
			if a.CategoryID == id {
				out = append(out, a)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// InsertAccount assigns an id, persists and indexes an account.
func (l *Ledger) InsertAccount(ctx context.Context, a domain.Account) (domain.Account, error) {
	l.writeMu.Lock()
	defer l.writeMu.Unlock()
	if _, ok := l.GetCategory(a.CategoryID); !ok {
		return domain.Account{}, fmt.Errorf("account category %d: %w", a.CategoryID, apperrors.ErrNotFound)
	}
	a.ID = l.generateID(EntityAccount)
	if err := l.p.Accounts.Insert(ctx, a); err != nil {
		return domain.Account{}, fmt.Errorf("insert account: %w", err)
	}
	l.mu.Lock()
	l.accounts[a.ID] = a
	l.mu.Unlock()
	l.publish(Event{EntityAccount, a.ID, Added})
	return a, nil
}

// UpdateAccount replaces an existing account by id.
func (l *Ledger) UpdateAccount(ctx context.Context, a domain.Account) (domain.Account, error) {
	l.writeMu.Lock()
	defer l.writeMu.Unlock()
	if _, ok := l.GetAccount(a.ID); !ok {
		return domain.Account{}, fmt.Errorf("account %d: %w", a.ID, apperrors.ErrNotFound)
	}
	if err := l.p.Accounts.Update(ctx, a); err != nil {
		return domain.Account{}, fmt.Errorf("update account: %w", err)
	}
	l.mu.Lock()
	l.accounts[a.ID] = a
	l.mu.Unlock()
	l.publish(Event{EntityAccount, a.ID, Updated})
	return a, nil
}

// DeleteAccount removes an account. It refuses while transactions still
// reference the account on either side.
func (l *Ledger) DeleteAccount(ctx context.Context, id int) error {
	l.writeMu.Lock()
	defer l.writeMu.Unlock()
	if _, ok := l.GetAccount(id); !ok {
		return fmt.Errorf("account %d: %w", id, apperrors.ErrNotFound)
	}
	if n := l.TransactionCountByAccount(id); n > 0 {
		return &apperrors.AccountInUseError{AccountID: id, TransactionCount: n}
	}
	if err := l.p.Accounts.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	l.mu.Lock()
	delete(l.accounts, id)
	l.mu.Unlock()
	l.publish(Event{EntityAccount, id, Removed})
	return nil
}

////////////////////////////////////////////////////////////////////////////
// Transaction groups
////////////////////////////////////////////////////////////////////////////

// GetTransactionGroup looks up a group by id; id 0 means standalone.
func (l *Ledger) GetTransactionGroup(id int) (domain.TransactionGroup, bool) {
	if id == 0 {
		return domain.TransactionGroup{}, false
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	g, ok := l.transactionGroups[id]
	return g, ok
}

// TransactionGroups returns all groups in id order.
func (l *Ledger) TransactionGroups() []domain.TransactionGroup {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return sortedValues(l.transactionGroups, func(g domain.TransactionGroup) int { return g.ID })
}

// InsertTransactionGroup assigns an id, persists and indexes a group.
func (l *Ledger) InsertTransactionGroup(ctx context.Context, g domain.TransactionGroup) (domain.TransactionGroup, error) {
	l.writeMu.Lock()
	defer l.writeMu.Unlock()
	g.ID = l.generateID(EntityTransactionGroup)
	if err := l.p.TransactionGroups.Insert(ctx, g); err != nil {
		return domain.TransactionGroup{}, fmt.Errorf("insert transaction group: %w", err)
	}
	l.mu.Lock()
	l.transactionGroups[g.ID] = g
	l.mu.Unlock()
	l.publish(Event{EntityTransactionGroup, g.ID, Added})
	return g, nil
}

// UpdateTransactionGroup replaces an existing group by id.
func (l *Ledger) UpdateTransactionGroup(ctx context.Context, g domain.TransactionGroup) (domain.TransactionGroup, error) {
	l.writeMu.Lock()
	defer l.writeMu.Unlock()
	if _, ok := l.GetTransactionGroup(g.ID); !ok {
		return domain.TransactionGroup{}, fmt.Errorf("transaction group %d: %w", g.ID, apperrors.ErrNotFound)
	}
	if err := l.p.TransactionGroups.Update(ctx, g); err != nil {
		return domain.TransactionGroup{}, fmt.Errorf("update transaction group: %w", err)
	}
	l.mu.Lock()
	l.transactionGroups[g.ID] = g
	l.mu.Unlock()
	l.publish(Event{EntityTransactionGroup, g.ID, Updated})
	return g, nil
}

// DeleteTransactionGroup removes a group.
func (l *Ledger) DeleteTransactionGroup(ctx context.Context, id int) error {
	l.writeMu.Lock()
	defer l.writeMu.Unlock()
	if _, ok := l.GetTransactionGroup(id); !ok {
		return fmt.Errorf("transaction group %d: %w", id, apperrors.ErrNotFound)
	}
	if err := l.p.TransactionGroups.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete transaction group: %w", err)
	}
	l.mu.Lock()
	delete(l.transactionGroups, id)
	l.mu.Unlock()
	l.publish(Event{EntityTransactionGroup, id, Removed})
	return nil
}

////////////////////////////////////////////////////////////////////////////
// Transactions
////////////////////////////////////////////////////////////////////////////

// GetTransaction looks up a transaction by id.
func (l *Ledger) GetTransaction(id int) (domain.Transaction, bool) {
	if id == 0 {
		return domain.Transaction{}, false
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	t, ok := l.transactions[id]
	return t, ok
}

// Transactions returns all transactions in id order.
func (l *Ledger) Transactions() []domain.Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return sortedValues(l.transactions, func(t domain.Transaction) int { return t.ID })
}

// TransactionsWhere returns all transactions matching the predicate, in id
// order.
func (l *Ledger) TransactionsWhere(pred domain.TransactionPredicate) []domain.Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []domain.Transaction
	for _, t := range l.transactions {
		if pred(t) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// TransactionsByAccount returns transactions touching the account on
// either side.
func (l *Ledger) TransactionsByAccount(accountID int) []domain.Transaction {
	return l.TransactionsWhere(domain.ByAccount(accountID))
}

// TransactionsByMonth returns transactions dated in the given calendar
// month.
func (l *Ledger) TransactionsByMonth(month, year int) []domain.Transaction {
	return l.TransactionsWhere(domain.ByMonth(month, year))
}

// TransactionsByCategories returns transactions touching any of the given
// categories.
func (l *Ledger) TransactionsByCategories(categoryIDs ...int) []domain.Transaction {
	return l.TransactionsWhere(func(t domain.Transaction) bool {
		for _, id := range categoryIDs {
			if t.AccountDebitedCategoryID == id || t.AccountCreditedCategoryID == id {
				return true
			}
		}
		return false
	})
}

// TransactionCountByAccount counts transactions referencing the account,
// the guard consulted before account deletion.
func (l *Ledger) TransactionCountByAccount(accountID int) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	n := 0
	for _, t := range l.transactions {
		if t.AccountDebitedID == accountID || t.AccountCreditedID == accountID {
			n++
		}
	}
	return n
}

// UniqueTransactionComments returns the distinct non-empty comments, used
// for data-entry completion.
func (l *Ledger) UniqueTransactionComments() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	seen := map[string]struct{}{}
	for _, t := range l.transactions {
		if t.Comment != "" {
			seen[t.Comment] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// BuildTransaction recomputes the denormalized account type and category
// ids from the live accounts and constructs the transaction. Every
// insertion path goes through here so stale ids can never be copied in.
func (l *Ledger) BuildTransaction(p domain.TransactionParams) (domain.Transaction, error) {
	debited, ok := l.GetAccount(p.AccountDebitedID)
	if !ok {
		return domain.Transaction{}, fmt.Errorf("debited account %d: %w", p.AccountDebitedID, apperrors.ErrNotFound)
	}
	credited, ok := l.GetAccount(p.AccountCreditedID)
	if !ok {
		return domain.Transaction{}, fmt.Errorf("credited account %d: %w", p.AccountCreditedID, apperrors.ErrNotFound)
	}
	p.AccountDebitedType = debited.Type
	p.AccountCreditedType = credited.Type
	p.AccountDebitedCategoryID = debited.CategoryID
	p.AccountCreditedCategoryID = credited.CategoryID
	return domain.NewTransaction(p)
}

// InsertTransaction assigns an id, persists and indexes a transaction.
func (l *Ledger) InsertTransaction(ctx context.Context, t domain.Transaction) (domain.Transaction, error) {
	l.writeMu.Lock()
	defer l.writeMu.Unlock()
	t.ID = l.generateID(EntityTransaction)
	if err := l.p.Transactions.Insert(ctx, t); err != nil {
		return domain.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}
	l.mu.Lock()
	l.transactions[t.ID] = t
	l.mu.Unlock()
	l.publish(Event{EntityTransaction, t.ID, Added})
	return t, nil
}

// UpdateTransaction replaces an existing transaction by id.
func (l *Ledger) UpdateTransaction(ctx context.Context, t domain.Transaction) (domain.Transaction, error) {
	l.writeMu.Lock()
	defer l.writeMu.Unlock()
	if _, ok := l.GetTransaction(t.ID); !ok {
		return domain.Transaction{}, fmt.Errorf("transaction %d: %w", t.ID, apperrors.ErrNotFound)
	}
	if err := l.p.Transactions.Update(ctx, t); err != nil {
		return domain.Transaction{}, fmt.Errorf("update transaction: %w", err)
	}
	l.mu.Lock()
	l.transactions[t.ID] = t
	l.mu.Unlock()
	l.publish(Event{EntityTransaction, t.ID, Updated})
	return t, nil
}

// DeleteTransaction removes a transaction.
func (l *Ledger) DeleteTransaction(ctx context.Context, id int) error {
	l.writeMu.Lock()
	defer l.writeMu.Unlock()
	if _, ok := l.GetTransaction(id); !ok {
		return fmt.Errorf("transaction %d: %w", id, apperrors.ErrNotFound)
	}
	if err := l.p.Transactions.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	l.mu.Lock()
	delete(l.transactions, id)
	l.mu.Unlock()
	l.publish(Event{EntityTransaction, id, Removed})
	return nil
}

func sortedValues[T any](m map[int]T, id func(T) int) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return id(out[i]) < id(out[j]) })
	return out
}
