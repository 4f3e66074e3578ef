package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatrixInstallments(t *testing.T) {
	// Two payments credited to the same month count once as paid, sum
	// their amounts and report the installment count.
	payments := []Payment{
		{MemberID: 1, Amount: 100, Month: month(2024, time.March)},
		{MemberID: 1, Amount: 50, Month: month(2024, time.March)},
	}
	grids := Matrix(payments, 2024)
	require.Len(t, grids, 2)
	assert.Equal(t, 2024, grids[0].Year)
	assert.Equal(t, 2023, grids[1].Year)

	march := grids[0].Cells[2]
	assert.Equal(t, Cell{Paid: true, Amount: 150, Installments: 2}, march)
	// Every other cell stays unpaid.
	for i, c := range grids[0].Cells {
		if i == 2 {
			continue
		}
		assert.False(t, c.Paid)
	}
}

func TestMatrixTwoYearWindow(t *testing.T) {
	payments := []Payment{
		{MemberID: 1, Amount: 100, Month: month(2023, time.December)},
		{MemberID: 1, Amount: 100, Month: month(2024, time.January)},
		{MemberID: 1, Amount: 100, Month: month(2020, time.June)}, // outside window
	}
	grids := Matrix(payments, 2024)
	assert.True(t, grids[0].Cells[0].Paid)
	assert.True(t, grids[1].Cells[11].Paid)
	for _, g := range grids {
		var paid int
		for _, c := range g.Cells {
			if c.Paid {
				paid++
			}
		}
		assert.Equal(t, 1, paid, "year %d", g.Year)
	}
	// The full history still counts toward the total.
	assert.Equal(t, int64(300), TotalPaid(payments))
}

func TestMatrixEmptyHistory(t *testing.T) {
	grids := Matrix(nil, 2024)
	require.Len(t, grids, 2)
	for _, g := range grids {
		for _, c := range g.Cells {
			assert.Equal(t, Cell{}, c)
		}
	}
	assert.Zero(t, TotalPaid(nil))
}
