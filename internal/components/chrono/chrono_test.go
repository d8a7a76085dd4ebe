package chrono

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFormatIcelandicDate(t *testing.T) {
	cases := []struct {
		at       time.Time
		expected string
	}{
		{at: time.Date(2025, time.May, 15, 9, 0, 0, 0, Reykjavik()), expected: "15. maí 2025"},
		{at: time.Date(2023, time.January, 1, 0, 0, 0, 0, Reykjavik()), expected: "1. janúar 2023"},
		{at: time.Date(2024, time.December, 31, 23, 59, 0, 0, Reykjavik()), expected: "31. desember 2024"},
	}

	for _, test := range cases {
		require.Equal(t, test.expected, FormatIcelandicDate(test.at))
	}
}

func TestFixedImplUsesReykjavik(t *testing.T) {
	// 23:30 in New York on new years eve is already the next day in Reykjavik
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	clock := FixedImpl{At: time.Date(2024, time.December, 31, 23, 30, 0, 0, ny)}
	require.Equal(t, 2025, clock.Now().Year())
	require.Equal(t, Reykjavik(), clock.Location())
}

func TestIcelandicMonthsIsACopy(t *testing.T) {
	months := IcelandicMonths()
	require.Len(t, months, 12)
	months[0] = "changed"
	require.Equal(t, "janúar", IcelandicMonth(time.January))
}
