package lastupdated

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"courtlinks/internal/components/chrono"

	"github.com/stretchr/testify/require"
)

func TestLine(t *testing.T) {
	testCases := []struct {
		at       time.Time
		expected string
	}{
		{
			at:       time.Date(2025, time.May, 15, 12, 0, 0, 0, time.UTC),
			expected: "Síðast uppfært 15. maí 2025.",
		},
		{
			at:       time.Date(2024, time.December, 31, 23, 30, 0, 0, time.UTC),
			expected: "Síðast uppfært 31. desember 2024.",
		},
		{
			// rendered in Reykjavik time, not the caller's zone
			at:       time.Date(2025, time.January, 1, 0, 30, 0, 0, time.FixedZone("UTC+2", 2*60*60)),
			expected: "Síðast uppfært 31. desember 2024.",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			require.Equal(t, tc.expected, Line(chrono.FixedImpl{At: tc.at}))
		})
	}
}

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site", "last_updated.txt")
	clock := chrono.FixedImpl{At: time.Date(2025, time.March, 2, 8, 0, 0, 0, time.UTC)}

	require.NoError(t, Write(path, clock))
	require.NoError(t, Write(path, clock))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "Síðast uppfært 2. mars 2025.", string(content))
}
