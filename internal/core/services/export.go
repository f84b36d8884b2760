package services

import (
	"sort"

	"github.com/moneybook-app/moneybook/internal/core/domain"
	"github.com/moneybook-app/moneybook/internal/snapshot"
)

// Snapshot captures every collection of the ledger as a snapshot document.
func (l *Ledger) Snapshot() *snapshot.Data {
	return &snapshot.Data{
		Categories:        l.Categories(),
		Accounts:          l.Accounts(),
		Contacts:          l.Contacts(),
		Currencies:        l.Currencies(),
		TransactionGroups: l.TransactionGroups(),
		Transactions:      l.Transactions(),
	}
}

// SnapshotTransactions captures the given transactions. With withDeps set
// the document also carries every group, contact, account, category and
// currency those transactions reference, so it can be merged into an
// empty database without dangling keys.
func (l *Ledger) SnapshotTransactions(transactions []domain.Transaction, withDeps bool) *snapshot.Data {
	data := &snapshot.Data{Transactions: transactions}
	if !withDeps {
		return data
	}

	groupIDs := map[int]bool{}
	contactIDs := map[int]bool{}
	accountIDs := map[int]bool{}
	for _, t := range transactions {
		if t.GroupID != 0 {
			groupIDs[t.GroupID] = true
		}
		if t.ContactID != 0 {
			contactIDs[t.ContactID] = true
		}
		accountIDs[t.AccountDebitedID] = true
		accountIDs[t.AccountCreditedID] = true
	}

	categoryIDs := map[int]bool{}
	currencyIDs := map[int]bool{}
	for id := range accountIDs {
		if a, ok := l.GetAccount(id); ok {
			data.Accounts = append(data.Accounts, a)
			categoryIDs[a.CategoryID] = true
			if a.CurrencyID != 0 {
				currencyIDs[a.CurrencyID] = true
			}
		}
	}
	for id := range groupIDs {
		if g, ok := l.GetTransactionGroup(id); ok {
			data.TransactionGroups = append(data.TransactionGroups, g)
		}
	}
	for id := range contactIDs {
		if c, ok := l.GetContact(id); ok {
			data.Contacts = append(data.Contacts, c)
		}
	}
	for id := range categoryIDs {
		if c, ok := l.GetCategory(id); ok {
			data.Categories = append(data.Categories, c)
		}
	}
	for id := range currencyIDs {
		if c, ok := l.GetCurrency(id); ok {
			data.Currencies = append(data.Currencies, c)
		}
	}

	sortSnapshot(data)
	return data
}

// sortSnapshot orders every collection by id so exports are deterministic.
func sortSnapshot(data *snapshot.Data) {
	data.Categories = sortRecords(data.Categories)
	data.Accounts = sortRecords(data.Accounts)
	data.Contacts = sortRecords(data.Contacts)
	data.Currencies = sortRecords(data.Currencies)
	data.TransactionGroups = sortRecords(data.TransactionGroups)
	data.Transactions = sortRecords(data.Transactions)
}

func sortRecords[T domain.Record](rs []T) []T {
	out := make([]T, len(rs))
	copy(out, rs)
	sort.Slice(out, func(i, j int) bool { return out[i].RecordID() < out[j].RecordID() })
	return out
}
