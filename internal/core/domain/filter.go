package domain

import "time"

// TransactionPredicate is a pure filter over transactions. Calendar
// shortcuts take the caller's notion of "now" so that predicates never
// read the system clock themselves.
type TransactionPredicate func(Transaction) bool

// All matches every transaction.
func All(Transaction) bool { return true }

// None matches no transaction.
func None(Transaction) bool { return false }

// And combines predicates with short-circuit conjunction.
func (p TransactionPredicate) And(q TransactionPredicate) TransactionPredicate {
	return func(t Transaction) bool {
		return p(t) && q(t)
	}
}

// Or combines predicates with short-circuit disjunction.
func (p TransactionPredicate) Or(q TransactionPredicate) TransactionPredicate {
	return func(t Transaction) bool {
		return p(t) || q(t)
	}
}

// ByAccount matches transactions touching the account on either side.
func ByAccount(id int) TransactionPredicate {
	return func(t Transaction) bool {
		return t.AccountDebitedID == id || t.AccountCreditedID == id
	}
}

// ByCategory matches transactions touching the category on either side.
func ByCategory(id int) TransactionPredicate {
	return func(t Transaction) bool {
		return t.AccountDebitedCategoryID == id || t.AccountCreditedCategoryID == id
	}
}

// ByCategoryType matches transactions touching the category type on either
// side.
func ByCategoryType(catType CategoryType) TransactionPredicate {
	return func(t Transaction) bool {
		return t.AccountDebitedType == catType || t.AccountCreditedType == catType
	}
}

// ByMonth matches transactions dated in the given calendar month.
func ByMonth(month, year int) TransactionPredicate {
	return func(t Transaction) bool {
		return t.Month == month && t.Year == year
	}
}

// ByDateRange matches transactions dated within [from, to], inclusive on
// both ends. Lenient day values clamp to the month's length.
func ByDateRange(from, to time.Time) TransactionPredicate {
	return func(t Transaction) bool {
		d := t.Date()
		return !d.Before(from) && !d.After(to)
	}
}

// CurrentYear matches transactions of now's calendar year.
func CurrentYear(now time.Time) TransactionPredicate {
	return func(t Transaction) bool {
		return t.Year == now.Year()
	}
}

// CurrentMonth matches transactions of now's calendar month.
func CurrentMonth(now time.Time) TransactionPredicate {
	return ByMonth(int(now.Month()), now.Year())
}

// CurrentWeek matches transactions from Monday of now's week through now.
func CurrentWeek(now time.Time) TransactionPredicate {
	day := now
	weekday := int(day.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday closes the week
	}
	from := day.AddDate(0, 0, -(weekday - 1))
	return ByDateRange(truncateDay(from), truncateDay(now))
}

// LastYear matches the rolling year ending at now.
func LastYear(now time.Time) TransactionPredicate {
	return ByDateRange(truncateDay(now.AddDate(-1, 0, 0)), truncateDay(now))
}

// LastQuarter matches the rolling three months ending at now.
func LastQuarter(now time.Time) TransactionPredicate {
	return ByDateRange(truncateDay(now.AddDate(0, -3, 0)), truncateDay(now))
}

// LastMonth matches the rolling month ending at now.
func LastMonth(now time.Time) TransactionPredicate {
	return ByDateRange(truncateDay(now.AddDate(0, -1, 0)), truncateDay(now))
}

// CalendarMonth matches the given month of now's year.
func CalendarMonth(month time.Month, now time.Time) TransactionPredicate {
	return ByMonth(int(month), now.Year())
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
