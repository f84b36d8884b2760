package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/moneybook-app/moneybook/internal/apperrors"
	"github.com/moneybook-app/moneybook/internal/core/domain"
	"github.com/moneybook-app/moneybook/internal/core/ports/repositories"
	"github.com/moneybook-app/moneybook/internal/snapshot"
)

// DefaultImportBatchSize is the number of records written per batch during
// a full dump import.
const DefaultImportBatchSize = 1000

// ErrEraseNotConfirmed rejects a full dump import that was not explicitly
// told to destroy the current contents first.
var ErrEraseNotConfirmed = errors.New("full dump import erases all existing records and requires explicit confirmation")

// Importer loads snapshot documents into a ledger, either wholesale or by
// reconciling against what is already there.
type Importer struct {
	l         *Ledger
	batchSize int
}

// NewImporter builds an importer over the ledger. A non-positive batchSize
// falls back to DefaultImportBatchSize.
func NewImporter(l *Ledger, batchSize int) *Importer {
	if batchSize <= 0 {
		batchSize = DefaultImportBatchSize
	}
	return &Importer{l: l, batchSize: batchSize}
}

// FullDump replaces the entire database with the snapshot contents.
// Existing records are destroyed first, so the caller must pass
// eraseExisting=true; without it nothing is touched. Tables are truncated
// in reverse dependency order and repopulated in dependency order in
// batches, with cancellation honored between tables and between batches.
// The in-memory state is rebuilt from storage afterwards.
func (im *Importer) FullDump(ctx context.Context, data *snapshot.Data, eraseExisting bool, progress Progress) error {
	if progress == nil {
		progress = noProgress
	}
	if !eraseExisting {
		return ErrEraseNotConfirmed
	}

	im.l.writeMu.Lock()
	defer im.l.writeMu.Unlock()

	im.l.logger.Info("full dump import started",
		"categories", len(data.Categories),
		"currencies", len(data.Currencies),
		"contacts", len(data.Contacts),
		"accounts", len(data.Accounts),
		"groups", len(data.TransactionGroups),
		"transactions", len(data.Transactions))

	progress("erasing existing records")
	truncations := []struct {
		table string
		fn    func(context.Context) error
	}{
		{"transactions", im.l.p.Transactions.DeleteAll},
		{"transaction_groups", im.l.p.TransactionGroups.DeleteAll},
		{"accounts", im.l.p.Accounts.DeleteAll},
		{"contacts", im.l.p.Contacts.DeleteAll},
		{"currencies", im.l.p.Currencies.DeleteAll},
		{"categories", im.l.p.Categories.DeleteAll},
	}
	for _, t := range truncations {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := t.fn(ctx); err != nil {
			return fmt.Errorf("erase %s: %w", t.table, err)
		}
	}
	im.l.resetIDs()

	if err := insertBatches(ctx, "categories", data.Categories, im.batchSize, im.l.p.Categories.InsertBatch, progress); err != nil {
		return err
	}
	if err := insertBatches(ctx, "currencies", data.Currencies, im.batchSize, im.l.p.Currencies.InsertBatch, progress); err != nil {
		return err
	}
	if err := insertBatches(ctx, "accounts", data.Accounts, im.batchSize, im.l.p.Accounts.InsertBatch, progress); err != nil {
		return err
	}
	if err := insertBatches(ctx, "contacts", data.Contacts, im.batchSize, im.l.p.Contacts.InsertBatch, progress); err != nil {
		return err
	}
	if err := insertBatches(ctx, "transaction_groups", data.TransactionGroups, im.batchSize, im.l.p.TransactionGroups.InsertBatch, progress); err != nil {
		return err
	}
	if err := insertBatches(ctx, "transactions", data.Transactions, im.batchSize, im.l.p.Transactions.InsertBatch, progress); err != nil {
		return err
	}

	im.l.logger.Info("full dump import finished, reloading")
	return im.l.Preload(ctx, progress)
}

func insertBatches[T any](ctx context.Context, table string, items []T, size int, insert func(context.Context, []T) error, progress Progress) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	progress(fmt.Sprintf("importing %s (%d)", table, len(items)))
	for start := 0; start < len(items); start += size {
		if err := ctx.Err(); err != nil {
			return err
		}
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		if err := insert(ctx, items[start:end]); err != nil {
			return fmt.Errorf("import %s: %w", table, err)
		}
	}
	return nil
}

type importAction int

const (
	actionIgnore importAction = iota
	actionInsert
	actionUpdate
)

// mapping carries the local id an incoming record resolved to and what the
// importer will do with it.
type mapping struct {
	id     int
	action importAction
}

// reconcile matches incoming records against existing ones by guid.
// A missing guid becomes an insert under a fresh id; a known guid with a
// newer modified stamp becomes an update under the existing id; anything
// else is ignored. Last write wins either way. The returned map is keyed
// by the incoming record's own id so foreign keys can be rewritten.
func reconcile[T domain.Record](existing map[int]T, incoming []T, freshID func() int) map[int]mapping {
	byGUID := make(map[string]T, len(existing))
	for _, r := range existing {
		byGUID[r.RecordGUID()] = r
	}
	out := make(map[int]mapping, len(incoming))
	for _, r := range incoming {
		cur, ok := byGUID[r.RecordGUID()]
		switch {
		case !ok:
			out[r.RecordID()] = mapping{id: freshID(), action: actionInsert}
		case r.RecordModified() > cur.RecordModified():
			out[r.RecordID()] = mapping{id: cur.RecordID(), action: actionUpdate}
		default:
			out[r.RecordID()] = mapping{id: cur.RecordID(), action: actionIgnore}
		}
	}
	return out
}

// remap translates a foreign key through a reconciliation map. Keys that
// do not refer to a snapshot record pass through unchanged.
func remap(m map[int]mapping, id int) int {
	if r, ok := m[id]; ok {
		return r.id
	}
	return id
}

// Merge folds the snapshot into the current database without destroying
// anything. Records pair up by guid and the newer modified stamp wins.
// All writes happen inside one persistence transaction; a single failing
// record rolls everything back and is reported with its table and id. The
// in-memory state is rebuilt from storage after a successful commit.
func (im *Importer) Merge(ctx context.Context, data *snapshot.Data, progress Progress) error {
	if progress == nil {
		progress = noProgress
	}

	im.l.writeMu.Lock()
	defer im.l.writeMu.Unlock()

	im.l.mu.RLock()
	catMap := reconcile(im.l.categories, data.Categories, func() int { return im.l.generateID(EntityCategory) })
	curMap := reconcile(im.l.currencies, data.Currencies, func() int { return im.l.generateID(EntityCurrency) })
	conMap := reconcile(im.l.contacts, data.Contacts, func() int { return im.l.generateID(EntityContact) })
	accMap := reconcile(im.l.accounts, data.Accounts, func() int { return im.l.generateID(EntityAccount) })
	grpMap := reconcile(im.l.transactionGroups, data.TransactionGroups, func() int { return im.l.generateID(EntityTransactionGroup) })
	txnMap := reconcile(im.l.transactions, data.Transactions, func() int { return im.l.generateID(EntityTransaction) })
	im.l.mu.RUnlock()

	report := func(table string, id int, err error) error {
		ierr := &apperrors.ImportTransactionError{Table: table, RecordID: id, Err: err}
		progress(ierr.Error())
		return ierr
	}

	err := im.l.p.UnitOfWork.Do(ctx, func(tx repositories.RecordTx) error {
		progress("merging categories")
		for _, c := range data.Categories {
			m := catMap[c.ID]
			c.ID = m.id
			if err := applyOne(m.action, c, tx.InsertCategory, tx.UpdateCategory); err != nil {
				return report("categories", c.ID, err)
			}
		}
		progress("merging currencies")
		for _, c := range data.Currencies {
			m := curMap[c.ID]
			c.ID = m.id
			if err := applyOne(m.action, c, tx.InsertCurrency, tx.UpdateCurrency); err != nil {
				return report("currencies", c.ID, err)
			}
		}
		progress("merging accounts")
		for _, a := range data.Accounts {
			m := accMap[a.ID]
			a.ID = m.id
			a.CategoryID = remap(catMap, a.CategoryID)
			a.CurrencyID = remap(curMap, a.CurrencyID)
			if err := applyOne(m.action, a, tx.InsertAccount, tx.UpdateAccount); err != nil {
				return report("accounts", a.ID, err)
			}
		}
		progress("merging contacts")
		for _, c := range data.Contacts {
			m := conMap[c.ID]
			c.ID = m.id
			if err := applyOne(m.action, c, tx.InsertContact, tx.UpdateContact); err != nil {
				return report("contacts", c.ID, err)
			}
		}
		progress("merging transaction groups")
		for _, g := range data.TransactionGroups {
			m := grpMap[g.ID]
			g.ID = m.id
			if err := applyOne(m.action, g, tx.InsertTransactionGroup, tx.UpdateTransactionGroup); err != nil {
				return report("transaction_groups", g.ID, err)
			}
		}
		progress("merging transactions")
		for _, t := range data.Transactions {
			m := txnMap[t.ID]
			t.ID = m.id
			t.AccountDebitedID = remap(accMap, t.AccountDebitedID)
			t.AccountCreditedID = remap(accMap, t.AccountCreditedID)
			t.AccountDebitedCategoryID = remap(catMap, t.AccountDebitedCategoryID)
			t.AccountCreditedCategoryID = remap(catMap, t.AccountCreditedCategoryID)
			t.ContactID = remap(conMap, t.ContactID)
			t.GroupID = remap(grpMap, t.GroupID)
			if err := applyOne(m.action, t, tx.InsertTransaction, tx.UpdateTransaction); err != nil {
				return report("transactions", t.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		im.l.logger.Error("merge import rolled back", "error", err)
		return err
	}

	im.l.logger.Info("merge import committed, reloading")
	return im.l.Preload(ctx, progress)
}

func applyOne[T any](action importAction, record T, insert, update func(T) error) error {
	switch action {
	case actionInsert:
		return insert(record)
	case actionUpdate:
		return update(record)
	default:
		return nil
	}
}
