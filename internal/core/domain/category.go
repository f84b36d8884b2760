package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/moneybook-app/moneybook/internal/apperrors"
)

// Category groups accounts of one economic role. Expanded is persisted UI
// tree state; it is kept in the model because it round-trips through
// snapshots.
type Category struct {
	ID       int
	Name     string
	Comment  string
	Type     CategoryType
	Expanded bool
	GUID     string
	Modified int64
}

// NewCategory validates and builds a category. The id is assigned by the
// ledger on insert.
func NewCategory(name, comment string, catType CategoryType) (Category, error) {
	if name == "" {
		return Category{}, fmt.Errorf("%w: category name is required", apperrors.ErrValidation)
	}
	if !catType.Valid() {
		return Category{}, fmt.Errorf("%w: unknown category type %d", apperrors.ErrValidation, catType)
	}
	return Category{
		Name:     name,
		Comment:  comment,
		Type:     catType,
		GUID:     uuid.NewString(),
		Modified: time.Now().UnixMilli(),
	}, nil
}

func (c Category) RecordID() int         { return c.ID }
func (c Category) RecordGUID() string    { return c.GUID }
func (c Category) RecordModified() int64 { return c.Modified }

// WithExpanded returns a copy with the tree state flipped and a fresh
// modification stamp.
func (c Category) WithExpanded(expanded bool) Category {
	c.Expanded = expanded
	c.Modified = time.Now().UnixMilli()
	return c
}
