package report

import (
	"testing"

	"stockbot/internal/stockdata"

	"github.com/stretchr/testify/require"
)

func TestStringize(t *testing.T) {
	record := stockdata.RecordFromEntries(
		stockdata.Entry{Key: "Date", Value: "2023-08-11"},
		stockdata.Entry{Key: "Open", Value: "3.89"},
		stockdata.Entry{Key: "Volume", Value: "53,114,201"},
		stockdata.Entry{Key: "Close", Value: "4.01"},
	)

	testCases := []struct {
		name      string
		allowlist []string
		expected  []string
	}{
		{
			name:     "NoAllowlist",
			expected: []string{"Date: 2023-08-11", "Open: 3.89", "Volume: 53,114,201", "Close: 4.01"},
		},
		{
			name:      "KeepsRecordOrder",
			allowlist: []string{"Close", "Date", "Missing"},
			expected:  []string{"Date: 2023-08-11", "Close: 4.01"},
		},
		{
			name:      "EmptyAllowlist",
			allowlist: []string{},
			expected:  []string{"Date: 2023-08-11", "Open: 3.89", "Volume: 53,114,201", "Close: 4.01"},
		},
		{
			name:      "NothingAllowed",
			allowlist: []string{"Missing"},
			expected:  []string{},
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.expected, Stringize(record, test.allowlist))
		})
	}
}

func TestStringizeEmpty(t *testing.T) {
	require.Empty(t, Stringize(nil, nil))
	require.Empty(t, Stringize(stockdata.NewRecord(), []string{"Date"}))
}
