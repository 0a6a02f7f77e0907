// Package stocksera scrapes daily price and failure to deliver tables from
// stocksera.pythonanywhere.com.
package stocksera

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"stockbot/internal/components/assert"
	"stockbot/internal/components/telemetry"
	"stockbot/internal/scrapers/document"
	"stockbot/internal/stockdata"

	"github.com/PuerkitoBio/goquery"
)

const (
	report_client_price = "client.price"
	report_client_ftd   = "client.failure-to-deliver"
)

const DefaultBaseUrl = "https://stocksera.pythonanywhere.com"

const (
	pricePath = "/historical_data/"
	ftdPath   = "/ticker/failure_to_deliver/"
)

type Client struct {
	baseUrl string
	docs    document.API
	tel     telemetry.API
}

// NewClient creates a Client, `baseUrl` defaults to DefaultBaseUrl when empty.
func NewClient(baseUrl string, docs document.API, tel telemetry.API) Client {
	assert.NotNil(docs)
	assert.NotNil(tel)

	if baseUrl == "" {
		baseUrl = DefaultBaseUrl
	}
	return Client{
		baseUrl: strings.TrimSuffix(baseUrl, "/"),
		docs:    docs,
		tel:     telemetry.NewScopedAPI("stocksera", tel),
	}
}

func (c Client) pageUrl(path string, ticker stockdata.Ticker) string {
	query := url.Values{}
	query.Set("quote", ticker.String())
	return fmt.Sprintf("%s%s?%s", c.baseUrl, path, query.Encode())
}

func (c Client) PriceUrl(ticker stockdata.Ticker) string {
	return c.pageUrl(pricePath, ticker)
}

func (c Client) FailureToDeliverUrl(ticker stockdata.Ticker) string {
	return c.pageUrl(ftdPath, ticker)
}

// Price returns the row of the historical price table `daysFromToday` rows
// from the top, 0 being the most recent day.
func (c Client) Price(ctx context.Context, ticker stockdata.Ticker, daysFromToday int) (*stockdata.Record, error) {
	doc, err := c.docs.Fetch(ctx, c.PriceUrl(ticker))
	if err != nil {
		return nil, err
	}
	record, err := ExtractDay(doc, daysFromToday)
	if err != nil {
		c.tel.ReportBroken(report_client_price, err, ticker, daysFromToday)
		return nil, err
	}
	return record, nil
}

// FailureToDeliver returns the normalized row of the failure to deliver
// table `daysFromToday` rows from the top.
func (c Client) FailureToDeliver(ctx context.Context, ticker stockdata.Ticker, daysFromToday int) (*stockdata.Record, error) {
	doc, err := c.docs.Fetch(ctx, c.FailureToDeliverUrl(ticker))
	if err != nil {
		return nil, err
	}
	record, err := ExtractDay(doc, daysFromToday)
	if err != nil {
		c.tel.ReportBroken(report_client_ftd, err, ticker, daysFromToday)
		return nil, err
	}

	normalized, err := NormalizeFTD(record)
	if err != nil {
		c.tel.ReportWarning(report_client_ftd, err, ticker)
	}
	return normalized, nil
}

// ExtractDay pairs the header cells of the page's table with the cells of
// the body row at `daysFromToday` by position. The keys of the record are
// whatever headers the page has.
func ExtractDay(doc *goquery.Document, daysFromToday int) (*stockdata.Record, error) {
	if doc == nil {
		return nil, errors.New("empty document")
	}

	rows := doc.Find("tbody tr")
	if daysFromToday < 0 || daysFromToday >= rows.Length() {
		return nil, fmt.Errorf(
			"row %d of %d: %w",
			daysFromToday, rows.Length(),
			stockdata.ErrElementNotFound,
		)
	}

	headers := selectionText(doc.Find("thead th"))
	cells := selectionText(rows.Eq(daysFromToday).Find("td"))

	record := stockdata.NewRecord()
	for _, pair := range zipCells(headers, cells) {
		record.Set(pair.Key, pair.Value)
	}
	return record, nil
}

func selectionText(sel *goquery.Selection) []string {
	out := make([]string, sel.Length())
	sel.Each(func(i int, s *goquery.Selection) {
		out[i] = strings.TrimSpace(s.Text())
	})
	return out
}

// zipCells pairs headers[i] with cells[i]. When the lengths differ the
// pairing stops at the shorter one and the rest is dropped.
func zipCells(headers, cells []string) []stockdata.Entry {
	n := min(len(headers), len(cells))
	out := make([]stockdata.Entry, n)
	for i := 0; i < n; i++ {
		out[i] = stockdata.Entry{Key: headers[i], Value: cells[i]}
	}
	return out
}
