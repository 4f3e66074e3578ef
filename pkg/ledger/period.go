// Package ledger implements the dues ledger aggregation: grouping
// payments and expenses by calendar period, yearly summaries with
// carry-over, per-member payment matrices and non-payer detection.
// Everything operates on already-fetched in-memory records and is pure.
package ledger

import (
	"fmt"
	"time"
)

// Period is a (year, month) grouping key.
type Period struct {
	Year  int
	Month time.Month
}

// PeriodOf returns the grouping key for a date.
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month()}
}

// ParsePeriod parses "2006-01" or "2006-01-02" into a Period. Malformed
// input yields an error; callers are expected to skip such records rather
// than abort a whole aggregation.
func ParsePeriod(s string) (Period, error) {
	for _, layout := range []string{"2006-01", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return PeriodOf(t), nil
		}
	}
	return Period{}, fmt.Errorf("invalid period %q (want YYYY-MM or YYYY-MM-DD)", s)
}

// FirstDay returns midnight UTC on the first day of the period, the
// canonical payment_month value.
func (p Period) FirstDay() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}
