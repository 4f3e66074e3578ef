package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func month(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, nil, 2024)
	require.Len(t, s.Months, 12)
	for i, row := range s.Months {
		assert.Equal(t, i+1, row.Month)
		assert.Zero(t, row.Payments)
		assert.Zero(t, row.Expenses)
		assert.Zero(t, row.Balance)
	}
	assert.Zero(t, s.Balance)
	assert.Zero(t, s.CarryOver)
	assert.Zero(t, s.Total)
}

func TestSummarizeSingleExpense(t *testing.T) {
	// No payments, one expense of 200 in June: June is -200 and so is the
	// whole year.
	expenses := []Expense{{Amount: 200, Date: day(2024, time.June, 15)}}
	s := Summarize(nil, expenses, 2024)
	june := s.Months[5]
	assert.Equal(t, MonthTotals{Month: 6, Payments: 0, Expenses: 200, Balance: -200}, june)
	assert.Equal(t, int64(-200), s.Balance)
	assert.Equal(t, int64(-200), s.Total)
}

func TestSummarizeBalanceIdentity(t *testing.T) {
	payments := []Payment{
		{MemberID: 1, Amount: 100, Month: month(2024, time.January)},
		{MemberID: 2, Amount: 150, Month: month(2024, time.January)},
		{MemberID: 1, Amount: 100, Month: month(2024, time.July)},
		{MemberID: 3, Amount: 50, Month: month(2024, time.December)},
	}
	expenses := []Expense{
		{Amount: 80, Date: day(2024, time.February, 3)},
		{Amount: 120, Date: day(2024, time.July, 30)},
	}
	s := Summarize(payments, expenses, 2024)

	var monthlySum int64
	for _, row := range s.Months {
		monthlySum += row.Balance
	}
	assert.Equal(t, int64(400-200), monthlySum)
	assert.Equal(t, monthlySum, s.Balance)
	assert.Equal(t, int64(400), s.TotalPayments)
	assert.Equal(t, int64(200), s.TotalExpenses)
}

func TestSummarizeIgnoresOtherYears(t *testing.T) {
	payments := []Payment{
		{MemberID: 1, Amount: 100, Month: month(2023, time.December)},
		{MemberID: 1, Amount: 100, Month: month(2024, time.January)},
		{MemberID: 1, Amount: 100, Month: month(2025, time.January)},
	}
	s := Summarize(payments, nil, 2024)
	assert.Equal(t, int64(100), s.TotalPayments)
	// 2023 shows up as carry-over, 2025 nowhere.
	assert.Equal(t, int64(100), s.CarryOver)
	assert.Equal(t, int64(200), s.Total)
}

func TestSummarizeSkipsZeroDates(t *testing.T) {
	payments := []Payment{{MemberID: 1, Amount: 100}} // zero Month
	expenses := []Expense{{Amount: 50}}               // zero Date
	s := Summarize(payments, expenses, 2024)
	assert.Zero(t, s.TotalPayments)
	assert.Zero(t, s.TotalExpenses)
	assert.Zero(t, s.CarryOver)
}

func TestCarryOverAllPriorYears(t *testing.T) {
	payments := []Payment{
		{MemberID: 1, Amount: 500, Month: month(2021, time.May)},
		{MemberID: 1, Amount: 300, Month: month(2023, time.November)},
		{MemberID: 1, Amount: 999, Month: month(2024, time.January)}, // not prior
	}
	expenses := []Expense{
		{Amount: 200, Date: day(2022, time.August, 9)},
		{Amount: 999, Date: day(2024, time.March, 1)}, // not prior
	}
	assert.Equal(t, int64(500+300-200), CarryOver(payments, expenses, 2024))
}

func TestSummarizeDeterministic(t *testing.T) {
	payments := []Payment{
		{MemberID: 1, Amount: 100, Month: month(2024, time.March)},
		{MemberID: 2, Amount: 70, Month: month(2024, time.October)},
	}
	expenses := []Expense{{Amount: 40, Date: day(2024, time.March, 14)}}
	first := Summarize(payments, expenses, 2024)
	second := Summarize(payments, expenses, 2024)
	assert.Equal(t, first, second)
}
