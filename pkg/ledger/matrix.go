package ledger

// Cell is one month of a member's payment matrix. Installments counts the
// individual payments credited to the month; the UI only shows it when
// greater than one.
type Cell struct {
	Paid         bool  `json:"is_paid"`
	Amount       int64 `json:"amount"`
	Installments int   `json:"installment_count"`
}

// YearGrid is a 12-month row of the matrix for one year. Cells[0] is
// January.
type YearGrid struct {
	Year  int      `json:"year"`
	Cells [12]Cell `json:"months"`
}

// Matrix builds the two-year payment-status grid for a single member's
// payment history: the given year and the immediately preceding one, most
// recent year first. Payments outside that window are ignored here but
// still count toward TotalPaid.
func Matrix(payments []Payment, year int) []YearGrid {
	grids := []YearGrid{{Year: year}, {Year: year - 1}}
	byYear := map[int]*YearGrid{year: &grids[0], year - 1: &grids[1]}
	for _, p := range payments {
		if p.Month.IsZero() {
			continue
		}
		g, ok := byYear[p.Month.Year()]
		if !ok {
			continue
		}
		c := &g.Cells[int(p.Month.Month())-1]
		c.Paid = true
		c.Amount += p.Amount
		c.Installments++
	}
	return grids
}

// TotalPaid sums a member's entire payment history, not just the two-year
// matrix window.
func TotalPaid(payments []Payment) int64 {
	var total int64
	for _, p := range payments {
		total += p.Amount
	}
	return total
}
