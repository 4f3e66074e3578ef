package ledger

// MonthTotals is one row of the yearly overview.
type MonthTotals struct {
	Month    int   `json:"month"` // 1-12
	Payments int64 `json:"total_payments"`
	Expenses int64 `json:"total_expenses"`
	Balance  int64 `json:"balance"`
}

// Summary is the yearly overview for a selected year. CarryOver is the
// all-time net balance accumulated before January 1st of the year, and
// Total is the yearly balance plus that carry-over.
type Summary struct {
	Year          int           `json:"year"`
	Months        []MonthTotals `json:"months"` // always 12 rows
	TotalPayments int64         `json:"total_payments"`
	TotalExpenses int64         `json:"total_expenses"`
	Balance       int64         `json:"balance"`
	CarryOver     int64         `json:"carry_over"`
	Total         int64         `json:"total"`
}

// Summarize groups payments by payment month and expenses by expense date
// into 12 monthly rows for the selected year. Records outside the year,
// and records without a usable date, are ignored. Empty inputs produce
// twelve zero rows, not an error.
func Summarize(payments []Payment, expenses []Expense, year int) Summary {
	s := Summary{Year: year, Months: make([]MonthTotals, 12)}
	for i := range s.Months {
		s.Months[i].Month = i + 1
	}
	for _, p := range payments {
		if p.Month.IsZero() || p.Month.Year() != year {
			continue
		}
		s.Months[int(p.Month.Month())-1].Payments += p.Amount
	}
	for _, e := range expenses {
		if e.Date.IsZero() || e.Date.Year() != year {
			continue
		}
		s.Months[int(e.Date.Month())-1].Expenses += e.Amount
	}
	for i := range s.Months {
		s.Months[i].Balance = s.Months[i].Payments - s.Months[i].Expenses
		s.TotalPayments += s.Months[i].Payments
		s.TotalExpenses += s.Months[i].Expenses
	}
	s.Balance = s.TotalPayments - s.TotalExpenses
	s.CarryOver = CarryOver(payments, expenses, year)
	s.Total = s.Balance + s.CarryOver
	return s
}

// CarryOver returns the net balance of every payment and expense dated
// strictly before January 1st of the given year.
func CarryOver(payments []Payment, expenses []Expense, year int) int64 {
	var total int64
	for _, p := range payments {
		if !p.Month.IsZero() && p.Month.Year() < year {
			total += p.Amount
		}
	}
	for _, e := range expenses {
		if !e.Date.IsZero() && e.Date.Year() < year {
			total -= e.Amount
		}
	}
	return total
}
