package domain

import "github.com/shopspring/decimal"

// MoneyScale is the number of fractional digits carried by monetary values
// internally. Display values are rounded separately, see DisplayAmount.
const MoneyScale = 6

// DisplayScale is the number of fractional digits shown to the user.
const DisplayScale = 2

// Record is implemented by every persisted entity. The GUID is the stable
// identity used to reconcile independently edited copies of the ledger;
// the integer id is local to one database session.
type Record interface {
	RecordID() int
	RecordGUID() string
	RecordModified() int64
}

// DisplayAmount rounds a monetary value half-up to the display scale.
// Internal accumulation stays at full precision; call this only when
// formatting.
func DisplayAmount(d decimal.Decimal) decimal.Decimal {
	return d.Round(DisplayScale)
}
