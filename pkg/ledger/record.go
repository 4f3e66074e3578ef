package ledger

import "time"

// Boundary record types. Handlers map store rows into these so the
// aggregation never depends on the ORM schema.

// Payment is one dues contribution. Month is the period the payment is
// credited to (first day of month), independent of when it was recorded.
type Payment struct {
	MemberID uint
	Amount   int64
	Month    time.Time
}

// Expense is one club expenditure dated by its calendar date.
type Expense struct {
	Amount int64
	Date   time.Time
}

// Member is the minimal member identity needed for non-payer reporting.
type Member struct {
	ID       uint
	FullName string
}
