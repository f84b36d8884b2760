package sqlite

import (
	"context"
	"fmt"

	"github.com/moneybook-app/moneybook/internal/core/domain"
)

const (
	insertContactSQL = `INSERT INTO contacts
		(id, name, contact_type, phone, mobile, email, web, comment,
		 street, city, country, zip, guid, modified)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	updateContactSQL = `UPDATE contacts SET
		name = ?, contact_type = ?, phone = ?, mobile = ?, email = ?,
		web = ?, comment = ?, street = ?, city = ?, country = ?, zip = ?,
		guid = ?, modified = ?
		WHERE id = ?`
	selectContactsSQL = `SELECT id, name, contact_type, phone, mobile, email,
		web, comment, street, city, country, zip, guid, modified
		FROM contacts ORDER BY id`
)

// ContactRepository persists contacts in sqlite.
type ContactRepository struct {
	db queryer
}

func insertContact(ctx context.Context, q queryer, c domain.Contact) error {
	_, err := q.ExecContext(ctx, insertContactSQL,
		c.ID, c.Name, int(c.Type), c.Phone, c.Mobile, c.Email, c.Web,
		c.Comment, c.Street, c.City, c.Country, c.Zip, c.GUID, c.Modified)
	if err != nil {
		return fmt.Errorf("insert contact %d: %w", c.ID, err)
	}
	return nil
}

func updateContact(ctx context.Context, q queryer, c domain.Contact) error {
	_, err := q.ExecContext(ctx, updateContactSQL,
		c.Name, int(c.Type), c.Phone, c.Mobile, c.Email, c.Web, c.Comment,
		c.Street, c.City, c.Country, c.Zip, c.GUID, c.Modified, c.ID)
	if err != nil {
		return fmt.Errorf("update contact %d: %w", c.ID, err)
	}
	return nil
}

func (r *ContactRepository) Insert(ctx context.Context, c domain.Contact) error {
	return insertContact(ctx, r.db, c)
}

func (r *ContactRepository) InsertBatch(ctx context.Context, cs []domain.Contact) error {
	for _, c := range cs {
		if err := insertContact(ctx, r.db, c); err != nil {
			return err
		}
	}
	return nil
}

func (r *ContactRepository) Update(ctx context.Context, c domain.Contact) error {
	return updateContact(ctx, r.db, c)
}

func (r *ContactRepository) Delete(ctx context.Context, id int) error {
	return deleteByID(ctx, r.db, "contacts", id)
}

func (r *ContactRepository) GetAll(ctx context.Context) ([]domain.Contact, error) {
	rows, err := r.db.QueryContext(ctx, selectContactsSQL)
	if err != nil {
		return nil, fmt.Errorf("select contacts: %w", err)
	}
	defer rows.Close()

	var out []domain.Contact
	for rows.Next() {
		var c domain.Contact
		var contactType int
		if err := rows.Scan(&c.ID, &c.Name, &contactType, &c.Phone, &c.Mobile,
			&c.Email, &c.Web, &c.Comment, &c.Street, &c.City, &c.Country,
			&c.Zip, &c.GUID, &c.Modified); err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		c.Type = domain.ContactType(contactType)
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *ContactRepository) DeleteAll(ctx context.Context) error {
	return deleteAll(ctx, r.db, "contacts")
}

func (r *ContactRepository) MaxID(ctx context.Context) (int, error) {
	return maxID(ctx, r.db, "contacts")
}
