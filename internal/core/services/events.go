package services

// Entity identifies which collection a change event refers to.
type Entity int

const (
	EntityCategory Entity = iota + 1
	EntityCurrency
	EntityContact
	EntityAccount
	EntityTransactionGroup
	EntityTransaction
)

var entityNames = map[Entity]string{
	EntityCategory:         "category",
	EntityCurrency:         "currency",
	EntityContact:          "contact",
	EntityAccount:          "account",
	EntityTransactionGroup: "transaction_group",
	EntityTransaction:      "transaction",
}

func (e Entity) String() string { return entityNames[e] }

// ChangeKind tells subscribers what happened to a record.
type ChangeKind int

const (
	Added ChangeKind = iota + 1
	Updated
	Removed

	// Reloaded signals that a whole collection was replaced from storage,
	// as happens after an import. The event's ID is 0.
	Reloaded
)

var changeKindNames = map[ChangeKind]string{
	Added:    "added",
	Updated:  "updated",
	Removed:  "removed",
	Reloaded: "reloaded",
}

func (k ChangeKind) String() string { return changeKindNames[k] }

// Event is published to subscribers after every ledger mutation is applied
// to the in-memory collections. Delivery is fire-and-forget and in order
// per subscriber.
type Event struct {
	Entity Entity
	ID     int
	Kind   ChangeKind
}
