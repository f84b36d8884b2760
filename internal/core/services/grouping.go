package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/moneybook-app/moneybook/internal/core/domain"
)

// SplitTransaction is the synthesized aggregate of all transactions
// sharing a group. It is derived on demand and never persisted; it has no
// identity beyond its group id and is rebuilt whenever group membership or
// any member changes.
type SplitTransaction struct {
	GroupID int
	Day     int
	Month   int
	Year    int
	// Amount is the sum of the members' signed amounts.
	Amount decimal.Decimal
	// Type is the first non-Undefined member type.
	Type domain.TransactionType
	// Comment is the first non-empty member comment.
	Comment          string
	AccountDebitedID int
	// AccountCreditedID is always 0: the legs may credit different
	// accounts.
	AccountCreditedID int
	// AccountCreditedName is the single credited account's name, or
	// "N accounts" when the legs credit more than one.
	AccountCreditedName string
	// ContactNames joins the distinct member contacts.
	ContactNames string
}

// LedgerRow is one displayable row: either a standalone transaction or a
// split header with its members. Sorting goes through these accessors so
// split headers interleave correctly with standalone rows.
type LedgerRow interface {
	RowID() int
	RowDate() (year, month, day int)
	RowType() domain.TransactionType
	RowSignedAmount() decimal.Decimal
	RowAccountDebitedID() int
}

// StandaloneRow is a transaction outside any group.
type StandaloneRow struct {
	Transaction domain.Transaction
}

func (r StandaloneRow) RowID() int { return r.Transaction.ID }
func (r StandaloneRow) RowDate() (int, int, int) {
	return r.Transaction.Year, r.Transaction.Month, r.Transaction.Day
}
func (r StandaloneRow) RowType() domain.TransactionType  { return r.Transaction.Type }
func (r StandaloneRow) RowSignedAmount() decimal.Decimal { return r.Transaction.SignedAmount }
func (r StandaloneRow) RowAccountDebitedID() int         { return r.Transaction.AccountDebitedID }

// SplitRow is a split header followed by its member legs in ascending id
// order.
type SplitRow struct {
	Split   SplitTransaction
	Members []domain.Transaction
}

// RowID is the lowest member id, so a split sorts exactly where its first
// leg would.
func (r SplitRow) RowID() int { return r.Members[0].ID }
func (r SplitRow) RowDate() (int, int, int) {
	return r.Members[0].Year, r.Members[0].Month, r.Members[0].Day
}
func (r SplitRow) RowType() domain.TransactionType  { return r.Split.Type }
func (r SplitRow) RowSignedAmount() decimal.Decimal { return r.Split.Amount }
func (r SplitRow) RowAccountDebitedID() int         { return r.Split.AccountDebitedID }

// Rows partitions transactions into displayable rows: standalone
// transactions pass through unchanged, grouped transactions fold into one
// SplitRow per group. The result is recomputed from scratch on every call.
func (l *Ledger) Rows(transactions []domain.Transaction) []LedgerRow {
	var rows []LedgerRow
	buckets := map[int][]domain.Transaction{}

	for _, t := range transactions {
		if t.GroupID == 0 {
			rows = append(rows, StandaloneRow{Transaction: t})
			continue
		}
		buckets[t.GroupID] = append(buckets[t.GroupID], t)
	}

	groupIDs := make([]int, 0, len(buckets))
	for id := range buckets {
		groupIDs = append(groupIDs, id)
	}
	sort.Ints(groupIDs)

	for _, groupID := range groupIDs {
		members := buckets[groupID]
		sort.Slice(members, func(i, j int) bool { return members[i].ID < members[j].ID })
		rows = append(rows, SplitRow{
			Split:   l.synthesizeSplit(groupID, members),
			Members: members,
		})
	}
	return rows
}

func (l *Ledger) synthesizeSplit(groupID int, members []domain.Transaction) SplitTransaction {
	first := members[0]

	total := decimal.Zero
	splitType := domain.Undefined
	comment := ""
	creditedIDs := make([]int, 0, len(members))
	seenCredited := map[int]struct{}{}
	contactNames := make([]string, 0, 1)
	seenContacts := map[int]struct{}{}

	for _, t := range members {
		total = total.Add(t.SignedAmount)
		if splitType == domain.Undefined && t.Type != domain.Undefined {
			splitType = t.Type
		}
		if comment == "" && t.Comment != "" {
			comment = t.Comment
		}
		if _, ok := seenCredited[t.AccountCreditedID]; !ok {
			seenCredited[t.AccountCreditedID] = struct{}{}
			creditedIDs = append(creditedIDs, t.AccountCreditedID)
		}
		if _, ok := seenContacts[t.ContactID]; !ok {
			seenContacts[t.ContactID] = struct{}{}
			if contact, ok := l.GetContact(t.ContactID); ok {
				contactNames = append(contactNames, contact.Name)
			}
		}
	}

	creditedName := ""
	if len(creditedIDs) == 1 {
		if account, ok := l.GetAccount(creditedIDs[0]); ok {
			creditedName = account.Name
		}
	} else {
		creditedName = fmt.Sprintf("%d accounts", len(creditedIDs))
	}

	return SplitTransaction{
		GroupID:             groupID,
		Day:                 first.Day,
		Month:               first.Month,
		Year:                first.Year,
		Amount:              total,
		Type:                splitType,
		Comment:             comment,
		AccountDebitedID:    first.AccountDebitedID,
		AccountCreditedID:   0,
		AccountCreditedName: creditedName,
		ContactNames:        strings.Join(contactNames, " + "),
	}
}

// RowOrder selects the column rows are ordered by. Ties always break by
// ascending row id.
type RowOrder int

const (
	OrderByDate RowOrder = iota
	OrderByType
	OrderByDebitedAccount
	OrderByAmount
)

// SortRows orders rows in place. Debited-account ordering compares account
// names case-insensitively, matching the account list ordering.
func (l *Ledger) SortRows(rows []LedgerRow, order RowOrder) {
	sort.SliceStable(rows, func(i, j int) bool {
		return l.compareRows(rows[i], rows[j], order) < 0
	})
}

func (l *Ledger) compareRows(a, b LedgerRow, order RowOrder) int {
	var res int
	switch order {
	case OrderByType:
		res = int(a.RowType()) - int(b.RowType())
	case OrderByDebitedAccount:
		res = strings.Compare(l.accountNameLower(a.RowAccountDebitedID()), l.accountNameLower(b.RowAccountDebitedID()))
	case OrderByAmount:
		res = a.RowSignedAmount().Cmp(b.RowSignedAmount())
	default:
		res = compareDates(a, b)
	}
	if res != 0 {
		return res
	}
	return a.RowID() - b.RowID()
}

func compareDates(a, b LedgerRow) int {
	ay, am, ad := a.RowDate()
	by, bm, bd := b.RowDate()
	if res := ay - by; res != 0 {
		return res
	}
	if res := am - bm; res != 0 {
		return res
	}
	return ad - bd
}

func (l *Ledger) accountNameLower(id int) string {
	if a, ok := l.GetAccount(id); ok {
		return strings.ToLower(a.Name)
	}
	return ""
}
