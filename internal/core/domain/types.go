package domain

// CategoryType classifies the economic role of a category and of every
// account under it.
type CategoryType int

const (
	BanksAndCash CategoryType = iota + 1
	Incomes
	Expenses
	Debts
	Assets
	Portfolio
)

var categoryTypeNames = map[CategoryType]string{
	BanksAndCash: "Banks & Cash",
	Incomes:      "Incomes",
	Expenses:     "Expenses",
	Debts:        "Debts",
	Assets:       "Assets",
	Portfolio:    "Portfolio",
}

func (t CategoryType) Valid() bool {
	_, ok := categoryTypeNames[t]
	return ok
}

func (t CategoryType) String() string {
	if name, ok := categoryTypeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// CategoryTypes returns all category types in id order.
func CategoryTypes() []CategoryType {
	return []CategoryType{BanksAndCash, Incomes, Expenses, Debts, Assets, Portfolio}
}

// ContactType classifies a contact.
type ContactType int

const (
	Personal ContactType = iota + 1
	Client
	Supplier
	Employee
	Employer
	Service
)

var contactTypeNames = map[ContactType]string{
	Personal: "Personal",
	Client:   "Client",
	Supplier: "Supplier",
	Employee: "Employee",
	Employer: "Employer",
	Service:  "Service",
}

func (t ContactType) Valid() bool {
	_, ok := contactTypeNames[t]
	return ok
}

func (t ContactType) String() string {
	if name, ok := contactTypeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// TransactionType identifies the kind of money movement. The numbering is
// fixed by historical snapshots and includes separator pseudo-types used
// only to structure pick lists; separators carry no name and must never
// reach business logic.
type TransactionType int

const (
	CardPayment   TransactionType = 1
	CashPurchase  TransactionType = 2
	Cheque        TransactionType = 3
	Withdrawal    TransactionType = 5
	Cashier       TransactionType = 6
	Deposit       TransactionType = 7
	Transfer      TransactionType = 8
	Interest      TransactionType = 10
	Dividend      TransactionType = 11
	DirectBilling TransactionType = 13
	Charge        TransactionType = 14
	Fee           TransactionType = 15
	Income        TransactionType = 17
	Sale          TransactionType = 18
	Refund        TransactionType = 20
	Undefined     TransactionType = 21
)

var transactionTypeNames = map[TransactionType]string{
	CardPayment:   "Card Payment",
	CashPurchase:  "Cash Purchase",
	Cheque:        "Cheque",
	Withdrawal:    "Withdrawal",
	Cashier:       "Cashier",
	Deposit:       "Deposit",
	Transfer:      "Transfer",
	Interest:      "Interest",
	Dividend:      "Dividend",
	DirectBilling: "Direct Billing",
	Charge:        "Charge",
	Fee:           "Fee",
	Income:        "Income",
	Sale:          "Sale",
	Refund:        "Refund",
	Undefined:     "Undefined",
}

// separator ids interleaved with the real types in pick lists
var transactionTypeSeparators = map[TransactionType]struct{}{
	4: {}, 9: {}, 12: {}, 16: {}, 19: {},
}

const maxTransactionTypeID = 21

// Valid reports whether t is a known id, separators included.
func (t TransactionType) Valid() bool {
	if _, ok := transactionTypeNames[t]; ok {
		return true
	}
	_, ok := transactionTypeSeparators[t]
	return ok
}

// Separator reports whether t is a pick-list separator rather than a real
// transaction type.
func (t TransactionType) Separator() bool {
	_, ok := transactionTypeSeparators[t]
	return ok
}

func (t TransactionType) String() string {
	return transactionTypeNames[t]
}

// TransactionTypes returns the real (non-separator) types in id order.
func TransactionTypes() []TransactionType {
	types := make([]TransactionType, 0, len(transactionTypeNames))
	for id := TransactionType(1); id <= maxTransactionTypeID; id++ {
		if _, ok := transactionTypeNames[id]; ok {
			types = append(types, id)
		}
	}
	return types
}
