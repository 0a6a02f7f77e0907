package stockdata

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecordOrder(t *testing.T) {
	r := NewRecord()
	r.Set("Date", "2024-01-02")
	r.Set("Open", "4.10")
	r.Set("Close", "4.20")
	r.Set("Open", "4.15")

	require.Equal(t, []string{"Date", "Open", "Close"}, r.Keys())
	value, ok := r.Get("Open")
	require.True(t, ok)
	require.Equal(t, "4.15", value)
	require.Equal(t, 3, r.Len())
}

func TestRecordClone(t *testing.T) {
	r := RecordFromEntries(Entry{Key: "a", Value: "1"}, Entry{Key: "b", Value: "2"})
	clone := r.Clone()
	clone.Set("a", "changed")

	value, _ := r.Get("a")
	require.Equal(t, "1", value)
	require.Equal(t, r.Keys(), clone.Keys())
}

func TestNilRecord(t *testing.T) {
	var r *Record
	require.Equal(t, 0, r.Len())
	require.Nil(t, r.Keys())
	require.Nil(t, r.Entries())
	require.Nil(t, r.Clone())
	require.False(t, r.Has("anything"))
}

func TestParseTicker(t *testing.T) {
	table := []struct {
		input    string
		expected Ticker
		err      error
	}{
		{input: "AMC", expected: AMC},
		{input: " gme\n", expected: GME},
		{input: "TSLA", err: ErrUnconfiguredTicker},
		{input: "", err: ErrUnconfiguredTicker},
	}

	for _, row := range table {
		ticker, err := ParseTicker(row.input)
		if row.err != nil {
			require.ErrorIs(t, err, row.err)
			continue
		}
		require.NoError(t, err)
		require.Equal(t, row.expected, ticker)
	}
}

func TestFetchError(t *testing.T) {
	cause := fmt.Errorf("connection reset")
	var err error = &FetchError{Url: "https://example.com", StatusCode: 503, Err: cause}

	require.ErrorIs(t, err, cause)
	var fetchErr *FetchError
	require.True(t, errors.As(fmt.Errorf("wrapped: %w", err), &fetchErr))
	require.Equal(t, 503, fetchErr.StatusCode)
	require.Contains(t, err.Error(), "status 503")
}
