package chartexchange

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"stockbot/internal/components/telemetry/telemetrytest"
	"stockbot/internal/scrapers/document"
	"stockbot/internal/scrapers/document/documenttest"
	"stockbot/internal/stockdata"

	"github.com/stretchr/testify/require"
)

func fixture(name string) string {
	return filepath.Join("testdata", name)
}

func TestExtractBorrowFee(t *testing.T) {
	testCases := []struct {
		name     string
		ticker   stockdata.Ticker
		file     string
		expected string
	}{
		{name: "AMC", ticker: stockdata.AMC, file: "AMCChartExchange.html", expected: "243.94%"},
		{name: "GME", ticker: stockdata.GME, file: "GMEChartExchange.html", expected: "5.22%"},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			tel := telemetrytest.NewRecorder()
			client := NewClient("", documenttest.NewFake(), tel)

			doc := documenttest.ParseFile(t, fixture(test.file))
			record, err := client.ExtractBorrowFee(doc, test.ticker)
			require.NoError(t, err)
			require.Equal(t, []stockdata.Entry{{Key: FieldCostToBorrow, Value: test.expected}}, record.Entries())
			require.Empty(t, tel.Diagnostics())
		})
	}
}

func TestExtractBorrowFeeMissingPhrase(t *testing.T) {
	tel := telemetrytest.NewRecorder()
	client := NewClient("", documenttest.NewFake(), tel)

	doc := documenttest.ParseFile(t, fixture("BADChartExchange.html"))
	record, err := client.ExtractBorrowFee(doc, "BAD")
	require.Nil(t, record)
	require.ErrorIs(t, err, stockdata.ErrElementNotFound)
	require.Contains(t, err.Error(), "phrase")

	diagnostics := tel.Diagnostics()
	require.Len(t, diagnostics, 1)
	require.Equal(t, "chartexchange: "+report_client_borrow_fee, diagnostics[0].Id)
}

func TestExtractBorrowFeeMissingSibling(t *testing.T) {
	tel := telemetrytest.NewRecorder()
	client := NewClient("", documenttest.NewFake(), tel)

	doc, err := document.Parse([]byte(`<div>100 shares available with a fee of <b>12%</b></div>`))
	require.NoError(t, err)

	record, err := client.ExtractBorrowFee(doc, stockdata.AMC)
	require.Nil(t, record)
	require.ErrorIs(t, err, stockdata.ErrElementNotFound)
	require.Contains(t, err.Error(), "sibling")
	require.Len(t, tel.Diagnostics(), 1)
}

func TestBorrowFee(t *testing.T) {
	fake := documenttest.NewFake()
	client := NewClient("https://chartexchange.test/", fake, telemetrytest.NewRecorder())

	url := "https://chartexchange.test/symbol/nyse-amc/borrow-fee/"
	require.Equal(t, url, client.BorrowFeeUrl(stockdata.AMC))
	fake.SetFile(t, url, fixture("AMCChartExchange.html"))

	record, err := client.BorrowFee(context.Background(), stockdata.AMC)
	require.NoError(t, err)
	value, _ := record.Get(FieldCostToBorrow)
	require.Equal(t, "243.94%", value)

	_, err = client.BorrowFee(context.Background(), stockdata.GME)
	var fetchErr *stockdata.FetchError
	require.True(t, errors.As(err, &fetchErr))
}
