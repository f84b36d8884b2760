package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/moneybook-app/moneybook/internal/apperrors"
)

// Account is a ledger account. Type is a denormalized copy of the owning
// category's type and must stay consistent with CategoryID; NewAccount
// enforces that at construction time.
type Account struct {
	ID             int
	Name           string
	Comment        string
	OpeningBalance decimal.Decimal
	AccountLimit   decimal.Decimal
	CurrencyRate   decimal.Decimal
	Type           CategoryType
	CategoryID     int
	CurrencyID     int // 0 means "use default/none"
	Enabled        bool
	GUID           string
	Modified       int64
}

// NewAccount validates and builds an account attached to the given
// category. The id is assigned by the ledger on insert.
func NewAccount(name, comment string, openingBalance decimal.Decimal, category Category, currencyID int) (Account, error) {
	if name == "" {
		return Account{}, fmt.Errorf("%w: account name is required", apperrors.ErrValidation)
	}
	if category.ID == 0 {
		return Account{}, fmt.Errorf("%w: account requires a category", apperrors.ErrValidation)
	}
	if !category.Type.Valid() {
		return Account{}, fmt.Errorf("%w: category %d has unknown type %d", apperrors.ErrValidation, category.ID, category.Type)
	}
	return Account{
		Name:           name,
		Comment:        comment,
		OpeningBalance: openingBalance,
		AccountLimit:   decimal.Zero,
		CurrencyRate:   decimal.New(1, 0),
		Type:           category.Type,
		CategoryID:     category.ID,
		CurrencyID:     currencyID,
		Enabled:        true,
		GUID:           uuid.NewString(),
		Modified:       time.Now().UnixMilli(),
	}, nil
}

func (a Account) RecordID() int         { return a.ID }
func (a Account) RecordGUID() string    { return a.GUID }
func (a Account) RecordModified() int64 { return a.Modified }

// Enable returns a copy with the enabled flag set and a fresh modification
// stamp.
func (a Account) Enable(enabled bool) Account {
	a.Enabled = enabled
	a.Modified = time.Now().UnixMilli()
	return a
}

// Equal compares all fields; decimal fields compare ignoring trailing
// zeros, so accounts differing only in decimal scale are the same account.
func (a Account) Equal(other Account) bool {
	return a.ID == other.ID &&
		a.Name == other.Name &&
		a.Comment == other.Comment &&
		a.OpeningBalance.Equal(other.OpeningBalance) &&
		a.AccountLimit.Equal(other.AccountLimit) &&
		a.CurrencyRate.Equal(other.CurrencyRate) &&
		a.Type == other.Type &&
		a.CategoryID == other.CategoryID &&
		a.CurrencyID == other.CurrencyID &&
		a.Enabled == other.Enabled &&
		a.GUID == other.GUID &&
		a.Modified == other.Modified
}

// CompareByName orders accounts by case-insensitive name.
func CompareByName(a, b Account) int {
	return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
}
