package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeriod(t *testing.T) {
	p, err := ParsePeriod("2024-03")
	require.NoError(t, err)
	assert.Equal(t, Period{Year: 2024, Month: time.March}, p)

	p, err = ParsePeriod("2023-12-01")
	require.NoError(t, err)
	assert.Equal(t, Period{Year: 2023, Month: time.December}, p)
}

func TestParsePeriodMalformed(t *testing.T) {
	for _, s := range []string{"", "yok", "2024", "2024-13", "03-2024", "2024/03"} {
		_, err := ParsePeriod(s)
		assert.Error(t, err, "input %q", s)
	}
}

func TestFirstDay(t *testing.T) {
	p := Period{Year: 2024, Month: time.March}
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), p.FirstDay())
	assert.Equal(t, "2024-03", p.String())
}

func TestPeriodOf(t *testing.T) {
	p := PeriodOf(time.Date(2024, time.July, 19, 13, 45, 0, 0, time.UTC))
	assert.Equal(t, Period{Year: 2024, Month: time.July}, p)
}
