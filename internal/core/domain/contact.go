package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/moneybook-app/moneybook/internal/apperrors"
)

// Contact is a counterparty of transactions: a person, a company or a
// service provider.
type Contact struct {
	ID       int
	Name     string
	Type     ContactType
	Phone    string
	Mobile   string
	Email    string
	Web      string
	Comment  string
	Street   string
	City     string
	Country  string
	Zip      string
	GUID     string
	Modified int64
}

// NewContact validates and builds a contact. The id is assigned by the
// ledger on insert.
func NewContact(name string, contactType ContactType) (Contact, error) {
	if name == "" {
		return Contact{}, fmt.Errorf("%w: contact name is required", apperrors.ErrValidation)
	}
	if !contactType.Valid() {
		return Contact{}, fmt.Errorf("%w: unknown contact type %d", apperrors.ErrValidation, contactType)
	}
	return Contact{
		Name:     name,
		Type:     contactType,
		GUID:     uuid.NewString(),
		Modified: time.Now().UnixMilli(),
	}, nil
}

func (c Contact) RecordID() int         { return c.ID }
func (c Contact) RecordGUID() string    { return c.GUID }
func (c Contact) RecordModified() int64 { return c.Modified }
