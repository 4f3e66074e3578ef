package ledger

import "time"

// MonthNonPayers lists the members with no payment credited to a month.
type MonthNonPayers struct {
	Period  Period   `json:"-"`
	Month   int      `json:"month"` // 1-12
	Year    int      `json:"year"`
	Members []Member `json:"members"`
}

// NonPayers computes, for each month of the selected year, the members
// without a single payment for that exact period. When the selected year
// is the current one, months after now are excluded since there is
// nothing to have paid yet; past years always yield all 12 months. The
// raw result keeps months where everyone paid (empty Members) so callers
// can decide what to present.
func NonPayers(members []Member, payments []Payment, year int, now time.Time) []MonthNonPayers {
	lastMonth := time.December
	switch {
	case year > now.Year():
		return nil
	case year == now.Year():
		lastMonth = now.Month()
	}

	paid := make(map[Period]map[uint]bool)
	for _, p := range payments {
		if p.Month.IsZero() || p.Month.Year() != year {
			continue
		}
		key := PeriodOf(p.Month)
		if paid[key] == nil {
			paid[key] = make(map[uint]bool)
		}
		paid[key][p.MemberID] = true
	}

	var out []MonthNonPayers
	for m := time.January; m <= lastMonth; m++ {
		key := Period{Year: year, Month: m}
		row := MonthNonPayers{Period: key, Month: int(m), Year: year, Members: []Member{}}
		for _, mb := range members {
			if !paid[key][mb.ID] {
				row.Members = append(row.Members, mb)
			}
		}
		out = append(out, row)
	}
	return out
}
