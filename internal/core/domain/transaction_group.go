package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/moneybook-app/moneybook/internal/apperrors"
)

// TransactionGroup marks a set of transactions as legs of one compound
// entry. The group carries its own date, independent of the members'
// individual dates.
type TransactionGroup struct {
	ID       int
	Day      int
	Month    int
	Year     int
	Expanded bool
	GUID     string
	Modified int64
}

// NewTransactionGroup validates and builds a group. The id is assigned by
// the ledger on insert.
func NewTransactionGroup(day, month, year int) (TransactionGroup, error) {
	if day < 1 || day > 31 {
		return TransactionGroup{}, fmt.Errorf("%w: day %d out of range 1..31", apperrors.ErrValidation, day)
	}
	if month < 1 || month > 12 {
		return TransactionGroup{}, fmt.Errorf("%w: month %d out of range 1..12", apperrors.ErrValidation, month)
	}
	return TransactionGroup{
		Day:      day,
		Month:    month,
		Year:     year,
		GUID:     uuid.NewString(),
		Modified: time.Now().UnixMilli(),
	}, nil
}

func (g TransactionGroup) RecordID() int         { return g.ID }
func (g TransactionGroup) RecordGUID() string    { return g.GUID }
func (g TransactionGroup) RecordModified() int64 { return g.Modified }
