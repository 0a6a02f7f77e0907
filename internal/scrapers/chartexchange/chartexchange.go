// Package chartexchange scrapes the cost to borrow of a stock from chartexchange.com.
package chartexchange

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
	"stockbot/pkg/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

const (
	report_client_borrow_fee = "client.borrow-fee"
)

const DefaultBaseUrl = "https://chartexchange.com"

// FieldCostToBorrow is the only field of a borrow fee record.
const FieldCostToBorrow = "Cost to Borrow"

// anchorPhrase precedes the span holding the fee on the borrow fee page.
const anchorPhrase = "shares available with a fee of"

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
		tel:     telemetry.NewScopedAPI("chartexchange", tel),
	}
}

// BorrowFeeUrl is the borrow fee page of a NYSE listed `ticker`.
func (c Client) BorrowFeeUrl(ticker stockdata.Ticker) string {
	return fmt.Sprintf("%s/symbol/nyse-%s/borrow-fee/", c.baseUrl, url.PathEscape(ticker.Lower()))
}

// BorrowFee fetches the borrow fee page and extracts the cost to borrow.
func (c Client) BorrowFee(ctx context.Context, ticker stockdata.Ticker) (*stockdata.Record, error) {
	doc, err := c.docs.Fetch(ctx, c.BorrowFeeUrl(ticker))
	if err != nil {
		return nil, err
	}
	return c.ExtractBorrowFee(doc, ticker)
}

// ExtractBorrowFee finds the text node containing the anchor phrase and reads
// the span that follows it as the cost to borrow.
func (c Client) ExtractBorrowFee(doc *goquery.Document, ticker stockdata.Ticker) (*stockdata.Record, error) {
	record, err := extractBorrowFee(doc)
	if err != nil {
		c.tel.ReportBroken(report_client_borrow_fee, err, ticker)
		return nil, err
	}
	return record, nil
}

func extractBorrowFee(doc *goquery.Document) (*stockdata.Record, error) {
	if doc == nil || len(doc.Nodes) == 0 {
		return nil, errors.New("empty document")
	}

	phrase := htmlutil.FindTextNode(doc.Nodes[0], anchorPhrase)
	if phrase == nil {
		return nil, fmt.Errorf("phrase %q: %w", anchorPhrase, stockdata.ErrElementNotFound)
	}
	value := htmlutil.NextSiblingElement(phrase, "span")
	if value == nil {
		return nil, fmt.Errorf("sibling span: %w", stockdata.ErrElementNotFound)
	}

	record := stockdata.NewRecord()
	record.Set(FieldCostToBorrow, htmlutil.GetText(value))
	return record, nil
}
