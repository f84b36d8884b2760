// Package snapshot reads and writes the ledger interchange document: an
// XML file with six collections carrying every persisted field, guid and
// modified timestamp included. Exporting a ledger and re-importing the
// document in full-dump mode reproduces identical records; that round trip
// is the backup/restore compatibility contract.
package snapshot

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/moneybook-app/moneybook/internal/apperrors"
	"github.com/moneybook-app/moneybook/internal/core/domain"
)

// Data is a decoded, validated snapshot.
type Data struct {
	Categories        []domain.Category
	Accounts          []domain.Account
	Contacts          []domain.Contact
	Currencies        []domain.Currency
	TransactionGroups []domain.TransactionGroup
	Transactions      []domain.Transaction
}

var validate = validator.New()

type money struct {
	XMLName           xml.Name              `xml:"Money"`
	Categories        []categoryXML         `xml:"Categories>Category"`
	Accounts          []accountXML          `xml:"Accounts>Account"`
	Contacts          []contactXML          `xml:"Contacts>Contact"`
	Currencies        []currencyXML         `xml:"Currencies>Currency"`
	TransactionGroups []transactionGroupXML `xml:"TransactionGroups>TransactionGroup"`
	Transactions      []transactionXML      `xml:"Transactions>Transaction"`
}

type categoryXML struct {
	ID       int    `xml:"id,attr" validate:"required,min=1"`
	Name     string `xml:"name" validate:"required"`
	Comment  string `xml:"comment"`
	Type     int    `xml:"type" validate:"required,min=1,max=6"`
	Expanded bool   `xml:"expanded"`
	GUID     string `xml:"guid" validate:"required,uuid"`
	Modified int64  `xml:"modified" validate:"required"`
}

type accountXML struct {
	ID             int             `xml:"id,attr" validate:"required,min=1"`
	Name           string          `xml:"name" validate:"required"`
	Comment        string          `xml:"comment"`
	OpeningBalance decimal.Decimal `xml:"openingBalance"`
	AccountLimit   decimal.Decimal `xml:"accountLimit"`
	CurrencyRate   decimal.Decimal `xml:"currencyRate"`
	Type           int             `xml:"type" validate:"required,min=1,max=6"`
	CategoryID     int             `xml:"categoryId" validate:"required,min=1"`
	CurrencyID     int             `xml:"currencyId" validate:"min=0"`
	Enabled        bool            `xml:"enabled"`
	GUID           string          `xml:"guid" validate:"required,uuid"`
	Modified       int64           `xml:"modified" validate:"required"`
}

type contactXML struct {
	ID       int    `xml:"id,attr" validate:"required,min=1"`
	Name     string `xml:"name" validate:"required"`
	Type     int    `xml:"type" validate:"required,min=1,max=6"`
	Phone    string `xml:"phone"`
	Mobile   string `xml:"mobile"`
	Email    string `xml:"email"`
	Web      string `xml:"web"`
	Comment  string `xml:"comment"`
	Street   string `xml:"street"`
	City     string `xml:"city"`
	Country  string `xml:"country"`
	Zip      string `xml:"zip"`
	GUID     string `xml:"guid" validate:"required,uuid"`
	Modified int64  `xml:"modified" validate:"required"`
}

type currencyXML struct {
	ID                   int             `xml:"id,attr" validate:"required,min=1"`
	Symbol               string          `xml:"symbol" validate:"required"`
	Description          string          `xml:"description"`
	FormatSymbol         string          `xml:"formatSymbol"`
	FormatSymbolPosition int             `xml:"formatSymbolPosition"`
	ShowFormatSymbol     bool            `xml:"showFormatSymbol"`
	Default              bool            `xml:"default"`
	Rate                 decimal.Decimal `xml:"rate"`
	Direction            int             `xml:"direction" validate:"min=0,max=1"`
	UseThousandSeparator bool            `xml:"useThousandSeparator"`
	GUID                 string          `xml:"guid" validate:"required,uuid"`
	Modified             int64           `xml:"modified" validate:"required"`
}

type transactionGroupXML struct {
	ID       int    `xml:"id,attr" validate:"required,min=1"`
	Day      int    `xml:"day" validate:"required,min=1,max=31"`
	Month    int    `xml:"month" validate:"required,min=1,max=12"`
	Year     int    `xml:"year" validate:"required"`
	Expanded bool   `xml:"expanded"`
	GUID     string `xml:"guid" validate:"required,uuid"`
	Modified int64  `xml:"modified" validate:"required"`
}

type transactionXML struct {
	ID                        int             `xml:"id,attr" validate:"required,min=1"`
	Amount                    decimal.Decimal `xml:"amount"`
	Day                       int             `xml:"day" validate:"required,min=1,max=31"`
	Month                     int             `xml:"month" validate:"required,min=1,max=12"`
	Year                      int             `xml:"year" validate:"required"`
	Type                      int             `xml:"type" validate:"required,min=1,max=21"`
	Comment                   string          `xml:"comment"`
	Checked                   bool            `xml:"checked"`
	AccountDebitedID          int             `xml:"accountDebitedId" validate:"required,min=1"`
	AccountCreditedID         int             `xml:"accountCreditedId" validate:"required,min=1"`
	AccountDebitedType        int             `xml:"accountDebitedType" validate:"required,min=1,max=6"`
	AccountCreditedType       int             `xml:"accountCreditedType" validate:"required,min=1,max=6"`
	AccountDebitedCategoryID  int             `xml:"accountDebitedCategoryId" validate:"required,min=1"`
	AccountCreditedCategoryID int             `xml:"accountCreditedCategoryId" validate:"required,min=1"`
	GroupID                   int             `xml:"groupId" validate:"min=0"`
	ContactID                 int             `xml:"contactId" validate:"min=0"`
	Rate                      decimal.Decimal `xml:"rate"`
	RateDirection             int             `xml:"rateDirection" validate:"min=0,max=1"`
	InvoiceNumber             string          `xml:"invoiceNumber"`
	GUID                      string          `xml:"guid" validate:"required,uuid"`
	Modified                  int64           `xml:"modified" validate:"required"`
}

// Read decodes a snapshot and validates every record against the schema
// before anything is handed to the importer. Any violation aborts with an
// ImportFormatError; nothing is written anywhere.
func Read(r io.Reader) (*Data, error) {
	var doc money
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, &apperrors.ImportFormatError{Err: err}
	}
	data := &Data{}

	for _, c := range doc.Categories {
		if err := validate.Struct(c); err != nil {
			return nil, formatErr("Category", c.ID, err)
		}
		data.Categories = append(data.Categories, domain.Category{
			ID:       c.ID,
			Name:     c.Name,
			Comment:  c.Comment,
			Type:     domain.CategoryType(c.Type),
			Expanded: c.Expanded,
			GUID:     c.GUID,
			Modified: c.Modified,
		})
	}
	for _, a := range doc.Accounts {
		if err := validate.Struct(a); err != nil {
			return nil, formatErr("Account", a.ID, err)
		}
		data.Accounts = append(data.Accounts, domain.Account{
			ID:             a.ID,
			Name:           a.Name,
			Comment:        a.Comment,
			OpeningBalance: a.OpeningBalance,
			AccountLimit:   a.AccountLimit,
			CurrencyRate:   a.CurrencyRate,
			Type:           domain.CategoryType(a.Type),
			CategoryID:     a.CategoryID,
			CurrencyID:     a.CurrencyID,
			Enabled:        a.Enabled,
			GUID:           a.GUID,
			Modified:       a.Modified,
		})
	}
	for _, c := range doc.Contacts {
		if err := validate.Struct(c); err != nil {
			return nil, formatErr("Contact", c.ID, err)
		}
		data.Contacts = append(data.Contacts, domain.Contact{
			ID:       c.ID,
			Name:     c.Name,
			Type:     domain.ContactType(c.Type),
			Phone:    c.Phone,
			Mobile:   c.Mobile,
			Email:    c.Email,
			Web:      c.Web,
			Comment:  c.Comment,
			Street:   c.Street,
			City:     c.City,
			Country:  c.Country,
			Zip:      c.Zip,
			GUID:     c.GUID,
			Modified: c.Modified,
		})
	}
	for _, c := range doc.Currencies {
		if err := validate.Struct(c); err != nil {
			return nil, formatErr("Currency", c.ID, err)
		}
		data.Currencies = append(data.Currencies, domain.Currency{
			ID:                   c.ID,
			Symbol:               c.Symbol,
			Description:          c.Description,
			FormatSymbol:         c.FormatSymbol,
			FormatSymbolPosition: c.FormatSymbolPosition,
			ShowFormatSymbol:     c.ShowFormatSymbol,
			Default:              c.Default,
			Rate:                 c.Rate,
			Direction:            c.Direction,
			UseThousandSeparator: c.UseThousandSeparator,
			GUID:                 c.GUID,
			Modified:             c.Modified,
		})
	}
	for _, g := range doc.TransactionGroups {
		if err := validate.Struct(g); err != nil {
			return nil, formatErr("TransactionGroup", g.ID, err)
		}
		data.TransactionGroups = append(data.TransactionGroups, domain.TransactionGroup{
			ID:       g.ID,
			Day:      g.Day,
			Month:    g.Month,
			Year:     g.Year,
			Expanded: g.Expanded,
			GUID:     g.GUID,
			Modified: g.Modified,
		})
	}
	for _, t := range doc.Transactions {
		if err := validate.Struct(t); err != nil {
			return nil, formatErr("Transaction", t.ID, err)
		}
		// The domain factory re-derives the signed amount and rejects
		// anything an editor could not have produced.
		txn, err := domain.NewTransaction(domain.TransactionParams{
			ID:                        t.ID,
			Amount:                    t.Amount,
			Day:                       t.Day,
			Month:                     t.Month,
			Year:                      t.Year,
			Type:                      domain.TransactionType(t.Type),
			Comment:                   t.Comment,
			Checked:                   t.Checked,
			AccountDebitedID:          t.AccountDebitedID,
			AccountCreditedID:         t.AccountCreditedID,
			AccountDebitedType:        domain.CategoryType(t.AccountDebitedType),
			AccountCreditedType:       domain.CategoryType(t.AccountCreditedType),
			AccountDebitedCategoryID:  t.AccountDebitedCategoryID,
			AccountCreditedCategoryID: t.AccountCreditedCategoryID,
			GroupID:                   t.GroupID,
			ContactID:                 t.ContactID,
			Rate:                      t.Rate,
			RateDirection:             t.RateDirection,
			InvoiceNumber:             t.InvoiceNumber,
			GUID:                      t.GUID,
			Modified:                  t.Modified,
		})
		if err != nil {
			return nil, formatErr("Transaction", t.ID, err)
		}
		data.Transactions = append(data.Transactions, txn)
	}
	return data, nil
}

func formatErr(table string, id int, err error) error {
	return &apperrors.ImportFormatError{Err: fmt.Errorf("%s %d: %w", table, id, err)}
}

// Write emits the snapshot as indented XML.
func Write(w io.Writer, data *Data) error {
	doc := money{}
	for _, c := range data.Categories {
		doc.Categories = append(doc.Categories, categoryXML{
			ID:       c.ID,
			Name:     c.Name,
			Comment:  c.Comment,
			Type:     int(c.Type),
			Expanded: c.Expanded,
			GUID:     c.GUID,
			Modified: c.Modified,
		})
	}
	for _, a := range data.Accounts {
		doc.Accounts = append(doc.Accounts, accountXML{
			ID:             a.ID,
			Name:           a.Name,
			Comment:        a.Comment,
			OpeningBalance: a.OpeningBalance,
			AccountLimit:   a.AccountLimit,
			CurrencyRate:   a.CurrencyRate,
			Type:           int(a.Type),
			CategoryID:     a.CategoryID,
			CurrencyID:     a.CurrencyID,
			Enabled:        a.Enabled,
			GUID:           a.GUID,
			Modified:       a.Modified,
		})
	}
	for _, c := range data.Contacts {
		doc.Contacts = append(doc.Contacts, contactXML{
			ID:       c.ID,
			Name:     c.Name,
			Type:     int(c.Type),
			Phone:    c.Phone,
			Mobile:   c.Mobile,
			Email:    c.Email,
			Web:      c.Web,
			Comment:  c.Comment,
			Street:   c.Street,
			City:     c.City,
			Country:  c.Country,
			Zip:      c.Zip,
			GUID:     c.GUID,
			Modified: c.Modified,
		})
	}
	for _, c := range data.Currencies {
		doc.Currencies = append(doc.Currencies, currencyXML{
			ID:                   c.ID,
			Symbol:               c.Symbol,
			Description:          c.Description,
			FormatSymbol:         c.FormatSymbol,
			FormatSymbolPosition: c.FormatSymbolPosition,
			ShowFormatSymbol:     c.ShowFormatSymbol,
			Default:              c.Default,
			Rate:                 c.Rate,
			Direction:            c.Direction,
			UseThousandSeparator: c.UseThousandSeparator,
			GUID:                 c.GUID,
			Modified:             c.Modified,
		})
	}
	for _, g := range data.TransactionGroups {
		doc.TransactionGroups = append(doc.TransactionGroups, transactionGroupXML{
			ID:       g.ID,
			Day:      g.Day,
			Month:    g.Month,
			Year:     g.Year,
			Expanded: g.Expanded,
			GUID:     g.GUID,
			Modified: g.Modified,
		})
	}
	for _, t := range data.Transactions {
		doc.Transactions = append(doc.Transactions, transactionXML{
			ID:                        t.ID,
			Amount:                    t.Amount,
			Day:                       t.Day,
			Month:                     t.Month,
			Year:                      t.Year,
			Type:                      int(t.Type),
			Comment:                   t.Comment,
			Checked:                   t.Checked,
			AccountDebitedID:          t.AccountDebitedID,
			AccountCreditedID:         t.AccountCreditedID,
			AccountDebitedType:        int(t.AccountDebitedType),
			AccountCreditedType:       int(t.AccountCreditedType),
			AccountDebitedCategoryID:  t.AccountDebitedCategoryID,
			AccountCreditedCategoryID: t.AccountCreditedCategoryID,
			GroupID:                   t.GroupID,
			ContactID:                 t.ContactID,
			Rate:                      t.Rate,
			RateDirection:             t.RateDirection,
			InvoiceNumber:             t.InvoiceNumber,
			GUID:                      t.GUID,
			Modified:                  t.Modified,
		})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "    ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return enc.Close()
}
