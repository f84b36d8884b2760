package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/moneybook-app/moneybook/internal/apperrors"
)

// Rate directions select how a stored conversion rate is applied to an
// amount.
const (
	RateDivide   = 0
	RateMultiply = 1
)

// Currency is a bookkeeping currency with display formatting preferences
// and a conversion rate against the default currency.
type Currency struct {
	ID                   int
	Symbol               string
	Description          string
	FormatSymbol         string
	FormatSymbolPosition int
	ShowFormatSymbol     bool
	Default              bool
	Rate                 decimal.Decimal
	Direction            int
	UseThousandSeparator bool
	GUID                 string
	Modified             int64
}

// NewCurrency validates and builds a currency. The id is assigned by the
// ledger on insert.
func NewCurrency(symbol, description string, rate decimal.Decimal, direction int, isDefault bool) (Currency, error) {
	if symbol == "" {
		return Currency{}, fmt.Errorf("%w: currency symbol is required", apperrors.ErrValidation)
	}
	if direction != RateDivide && direction != RateMultiply {
		return Currency{}, fmt.Errorf("%w: rate direction must be %d or %d", apperrors.ErrValidation, RateDivide, RateMultiply)
	}
	if rate.IsNegative() {
		return Currency{}, fmt.Errorf("%w: currency rate must not be negative", apperrors.ErrValidation)
	}
	return Currency{
		Symbol:      symbol,
		Description: description,
		Rate:        rate,
		Direction:   direction,
		Default:     isDefault,
		GUID:        uuid.NewString(),
		Modified:    time.Now().UnixMilli(),
	}, nil
}

func (c Currency) RecordID() int         { return c.ID }
func (c Currency) RecordGUID() string    { return c.GUID }
func (c Currency) RecordModified() int64 { return c.Modified }

// Equal compares all fields; decimal comparison ignores trailing zeros.
func (c Currency) Equal(other Currency) bool {
	return c.ID == other.ID &&
		c.Symbol == other.Symbol &&
		c.Description == other.Description &&
		c.FormatSymbol == other.FormatSymbol &&
		c.FormatSymbolPosition == other.FormatSymbolPosition &&
		c.ShowFormatSymbol == other.ShowFormatSymbol &&
		c.Default == other.Default &&
		c.Rate.Equal(other.Rate) &&
		c.Direction == other.Direction &&
		c.UseThousandSeparator == other.UseThousandSeparator &&
		c.GUID == other.GUID &&
		c.Modified == other.Modified
}
