package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var club = []Member{
	{ID: 1, FullName: "Ayşe Arslan"},
	{ID: 2, FullName: "Bülent Bayar"},
	{ID: 3, FullName: "Cem Çelik"},
}

func TestNonPayersComplement(t *testing.T) {
	// Only member 1 paid January: the January non-payer set is everyone
	// else.
	payments := []Payment{{MemberID: 1, Amount: 100, Month: month(2024, time.January)}}
	now := time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC)

	rows := NonPayers(club, payments, 2024, now)
	require.Len(t, rows, 2) // January and February only

	jan := rows[0]
	assert.Equal(t, 1, jan.Month)
	require.Len(t, jan.Members, 2)
	assert.Equal(t, uint(2), jan.Members[0].ID)
	assert.Equal(t, uint(3), jan.Members[1].ID)

	// Nobody paid February at all.
	assert.Len(t, rows[1].Members, 3)
}

func TestNonPayersPastYearFullTwelveMonths(t *testing.T) {
	now := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	rows := NonPayers(club, nil, 2023, now)
	require.Len(t, rows, 12)
	for _, row := range rows {
		assert.Len(t, row.Members, 3)
	}
}

func TestNonPayersFutureYear(t *testing.T) {
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	assert.Nil(t, NonPayers(club, nil, 2025, now))
}

func TestNonPayersEveryonePaidKeptInRawResult(t *testing.T) {
	payments := []Payment{
		{MemberID: 1, Amount: 100, Month: month(2024, time.January)},
		{MemberID: 2, Amount: 100, Month: month(2024, time.January)},
		{MemberID: 3, Amount: 100, Month: month(2024, time.January)},
	}
	now := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)
	rows := NonPayers(club, payments, 2024, now)
	require.Len(t, rows, 1)
	// The month stays in the raw computation with an empty member set;
	// presentation filters it out.
	assert.Empty(t, rows[0].Members)
}

func TestNonPayersIgnoresOtherYearPayments(t *testing.T) {
	payments := []Payment{{MemberID: 1, Amount: 100, Month: month(2023, time.January)}}
	now := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	rows := NonPayers(club, payments, 2024, now)
	require.Len(t, rows, 1)
	assert.Len(t, rows[0].Members, 3)
}

func TestNonPayersNoMembers(t *testing.T) {
	now := time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)
	rows := NonPayers(nil, nil, 2024, now)
	require.Len(t, rows, 4)
	for _, row := range rows {
		assert.Empty(t, row.Members)
	}
}
