package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/moneybook-app/moneybook/internal/apperrors"
)

// Transaction is one ledger leg: an unsigned amount moved from a debited
// account to a credited account on a given date.
//
// The four denormalized type/category ids are copied from the referenced
// accounts at build time so that balance and filter queries need no joins.
// They go stale if an account is recategorized afterwards; every insertion
// path must rebuild them from the live accounts instead of copying values
// from an older transaction.
type Transaction struct {
	ID                        int
	Amount                    decimal.Decimal
	Day                       int
	Month                     int
	Year                      int
	Type                      TransactionType
	Comment                   string
	Checked                   bool
	AccountDebitedID          int
	AccountCreditedID         int
	AccountDebitedType        CategoryType
	AccountCreditedType       CategoryType
	AccountDebitedCategoryID  int
	AccountCreditedCategoryID int
	GroupID                   int // 0 = standalone
	ContactID                 int // 0 = none
	Rate                      decimal.Decimal
	RateDirection             int
	InvoiceNumber             string
	GUID                      string
	Modified                  int64

	// SignedAmount is derived at construction and drives every balance
	// computation: negative for expense-like flows, positive otherwise.
	SignedAmount decimal.Decimal
}

// TransactionParams carries every field required to build a transaction.
// GUID and Modified may be left zero for new records; snapshots supply
// them explicitly so imported identities survive.
type TransactionParams struct {
	ID                        int
	Amount                    decimal.Decimal
	Day                       int
	Month                     int
	Year                      int
	Type                      TransactionType
	Comment                   string
	Checked                   bool
	AccountDebitedID          int
	AccountCreditedID         int
	AccountDebitedType        CategoryType
	AccountCreditedType       CategoryType
	AccountDebitedCategoryID  int
	AccountCreditedCategoryID int
	GroupID                   int
	ContactID                 int
	Rate                      decimal.Decimal
	RateDirection             int
	InvoiceNumber             string
	GUID                      string
	Modified                  int64
}

// NewTransaction validates all required fields up front and returns the
// immutable transaction with its signed amount derived. There is no
// partially built state.
func NewTransaction(p TransactionParams) (Transaction, error) {
	if p.Amount.IsNegative() {
		return Transaction{}, fmt.Errorf("%w: transaction amount must not be negative", apperrors.ErrValidation)
	}
	// Day is deliberately validated against 1..31 only, independent of
	// month and year, to keep historical snapshot data constructible.
	if p.Day < 1 || p.Day > 31 {
		return Transaction{}, fmt.Errorf("%w: day %d out of range 1..31", apperrors.ErrValidation, p.Day)
	}
	if p.Month < 1 || p.Month > 12 {
		return Transaction{}, fmt.Errorf("%w: month %d out of range 1..12", apperrors.ErrValidation, p.Month)
	}
	if p.AccountDebitedID == 0 || p.AccountCreditedID == 0 {
		return Transaction{}, fmt.Errorf("%w: debited and credited accounts are required", apperrors.ErrValidation)
	}
	if p.AccountDebitedCategoryID == 0 || p.AccountCreditedCategoryID == 0 {
		return Transaction{}, fmt.Errorf("%w: debited and credited categories are required", apperrors.ErrValidation)
	}
	if !p.AccountDebitedType.Valid() || !p.AccountCreditedType.Valid() {
		return Transaction{}, fmt.Errorf("%w: debited and credited category types are required", apperrors.ErrValidation)
	}
	if p.Type == 0 {
		p.Type = Undefined
	}
	if !p.Type.Valid() || p.Type.Separator() {
		return Transaction{}, fmt.Errorf("%w: invalid transaction type %d", apperrors.ErrValidation, p.Type)
	}
	if p.Rate.IsNegative() {
		return Transaction{}, fmt.Errorf("%w: currency rate must not be negative", apperrors.ErrValidation)
	}
	if p.RateDirection != RateDivide && p.RateDirection != RateMultiply {
		return Transaction{}, fmt.Errorf("%w: rate direction must be %d or %d", apperrors.ErrValidation, RateDivide, RateMultiply)
	}
	if p.GUID == "" {
		p.GUID = uuid.NewString()
	}
	if p.Modified == 0 {
		p.Modified = time.Now().UnixMilli()
	}
	return Transaction{
		ID:                        p.ID,
		Amount:                    p.Amount,
		Day:                       p.Day,
		Month:                     p.Month,
		Year:                      p.Year,
		Type:                      p.Type,
		Comment:                   p.Comment,
		Checked:                   p.Checked,
		AccountDebitedID:          p.AccountDebitedID,
		AccountCreditedID:         p.AccountCreditedID,
		AccountDebitedType:        p.AccountDebitedType,
		AccountCreditedType:       p.AccountCreditedType,
		AccountDebitedCategoryID:  p.AccountDebitedCategoryID,
		AccountCreditedCategoryID: p.AccountCreditedCategoryID,
		GroupID:                   p.GroupID,
		ContactID:                 p.ContactID,
		Rate:                      p.Rate,
		RateDirection:             p.RateDirection,
		InvoiceNumber:             p.InvoiceNumber,
		GUID:                      p.GUID,
		Modified:                  p.Modified,
		SignedAmount:              signedAmount(p.Amount, p.AccountDebitedType, p.AccountCreditedType),
	}, nil
}

// signedAmount applies the sign convention: the amount is negated when the
// flow is expense-like, that is when the two category types differ and the
// debited side is not an income.
func signedAmount(amount decimal.Decimal, debited, credited CategoryType) decimal.Decimal {
	if credited != debited && debited != Incomes {
		return amount.Neg()
	}
	return amount
}

func (t Transaction) RecordID() int         { return t.ID }
func (t Transaction) RecordGUID() string    { return t.GUID }
func (t Transaction) RecordModified() int64 { return t.Modified }

// Date materializes the stored day/month/year. Lenient days beyond the
// month's length clamp to the last day instead of rolling over.
func (t Transaction) Date() time.Time {
	return ClampedDate(t.Year, t.Month, t.Day)
}

// ClampedDate builds a date clamping day into the month's actual length.
func ClampedDate(year, month, day int) time.Time {
	last := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if day > last {
		day = last
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// CompareByDate orders by year, month, day, then ascending id.
func CompareByDate(a, b Transaction) int {
	if res := a.Year - b.Year; res != 0 {
		return res
	}
	if res := a.Month - b.Month; res != 0 {
		return res
	}
	if res := a.Day - b.Day; res != 0 {
		return res
	}
	return a.ID - b.ID
}

// Equal compares all fields; decimal fields compare ignoring trailing
// zeros.
func (t Transaction) Equal(other Transaction) bool {
	return t.ID == other.ID &&
		t.Amount.Equal(other.Amount) &&
		t.Day == other.Day &&
		t.Month == other.Month &&
		t.Year == other.Year &&
		t.Type == other.Type &&
		t.Comment == other.Comment &&
		t.Checked == other.Checked &&
		t.AccountDebitedID == other.AccountDebitedID &&
		t.AccountCreditedID == other.AccountCreditedID &&
		t.AccountDebitedType == other.AccountDebitedType &&
		t.AccountCreditedType == other.AccountCreditedType &&
		t.AccountDebitedCategoryID == other.AccountDebitedCategoryID &&
		t.AccountCreditedCategoryID == other.AccountCreditedCategoryID &&
		t.GroupID == other.GroupID &&
		t.ContactID == other.ContactID &&
		t.Rate.Equal(other.Rate) &&
		t.RateDirection == other.RateDirection &&
		t.InvoiceNumber == other.InvoiceNumber &&
		t.GUID == other.GUID &&
		t.Modified == other.Modified
}
