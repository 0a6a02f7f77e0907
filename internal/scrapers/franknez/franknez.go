// Package franknez scrapes short interest statistics and the short squeeze
// score of a stock from franknez.com.
package franknez

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"stockbot/internal/components/assert"
	"stockbot/internal/components/telemetry"
	"stockbot/internal/scrapers/document"
	"stockbot/internal/stockdata"
	"stockbot/pkg/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

const (
	report_client_misc_stats    = "client.misc-stats"
	report_client_squeeze_score = "client.squeeze-score"
)

const DefaultBaseUrl = "https://franknez.com"

const statsPath = "/list-of-momentum-stocks-short-interest-and-utilization/"

// FieldSqueezeScore is the record field holding the short squeeze score.
const FieldSqueezeScore = "Short Squeeze Score"

// DefaultSections maps a ticker to the id of the heading its statistics
// paragraph follows, the ids are chosen by the page authors.
var DefaultSections = map[stockdata.Ticker]string{
	stockdata.AMC: "h-4-amc-short-interest-today",
	stockdata.GME: "h-5-gme-short-interest",
}

type Client struct {
	baseUrl  string
	sections map[stockdata.Ticker]string
	docs     document.API
	tel      telemetry.API
}

// NewClient creates a Client, `baseUrl` defaults to DefaultBaseUrl and
// `sections` to DefaultSections when empty.
func NewClient(baseUrl string, sections map[stockdata.Ticker]string, docs document.API, tel telemetry.API) Client {
	assert.NotNil(docs)
	assert.NotNil(tel)

	if baseUrl == "" {
		baseUrl = DefaultBaseUrl
	}
	if len(sections) == 0 {
		sections = DefaultSections
	}
	return Client{
		baseUrl:  strings.TrimSuffix(baseUrl, "/"),
		sections: sections,
		docs:     docs,
		tel:      telemetry.NewScopedAPI("franknez", tel),
	}
}

func (c Client) StatsUrl() string {
	return c.baseUrl + statsPath
}

// ScorePattern matches the id of the heading holding the squeeze score of
// `ticker`, ex. "h-amc-short-squeeze-score-87".
func ScorePattern(ticker stockdata.Ticker) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf(
		`h-%s-short-squeeze-score-\d{1,3}`,
		regexp.QuoteMeta(ticker.Lower()),
	))
}

// MiscStats fetches the stats page and extracts the stats of `ticker`. An
// unconfigured ticker fails before anything is fetched.
func (c Client) MiscStats(ctx context.Context, ticker stockdata.Ticker) (*stockdata.Record, error) {
	_, err := c.sectionId(ticker)
	if err != nil {
		return nil, err
	}
	doc, err := c.docs.Fetch(ctx, c.StatsUrl())
	if err != nil {
		return nil, err
	}
	return c.ExtractMiscStats(doc, ticker)
}

func (c Client) sectionId(ticker stockdata.Ticker) (string, error) {
	id, ok := c.sections[ticker]
	if !ok {
		err := fmt.Errorf("%w: %s", stockdata.ErrUnconfiguredTicker, ticker)
		c.tel.ReportBroken(report_client_misc_stats, err, ticker)
		return "", err
	}
	return id, nil
}

// ExtractMiscStats combines the squeeze score with the key/value pairs of
// the paragraph after the ticker's section heading. A missing score is only
// a warning, a missing section or paragraph fails the whole record.
func (c Client) ExtractMiscStats(doc *goquery.Document, ticker stockdata.Ticker) (*stockdata.Record, error) {
	sectionId, err := c.sectionId(ticker)
	if err != nil {
		return nil, err
	}
	if doc == nil || len(doc.Nodes) == 0 {
		err := errors.New("empty document")
		c.tel.ReportBroken(report_client_misc_stats, err, ticker)
		return nil, err
	}
	root := doc.Nodes[0]

	stats, err := extractStats(root, sectionId)
	if err != nil {
		c.tel.ReportBroken(report_client_misc_stats, err, ticker)
		return nil, err
	}

	record := stockdata.NewRecord()

	score, err := extractScore(root, ticker)
	if err != nil {
		c.tel.ReportWarning(report_client_squeeze_score, err, ticker)
	} else {
		record.Set(FieldSqueezeScore, strconv.Itoa(score))
	}

	for _, pair := range stats.pairs {
		record.Set(pair.Key, pair.Value)
	}
	for _, segment := range stats.skipped {
		c.tel.ReportWarning(
			report_client_misc_stats,
			fmt.Errorf("segment without a colon: %w", stockdata.ErrMalformedValue),
			segment,
		)
	}

	return record, nil
}

func extractScore(root *html.Node, ticker stockdata.Ticker) (int, error) {
	pattern := ScorePattern(ticker)
	element := htmlutil.FindByIdPattern(root, pattern)
	if element == nil {
		return 0, fmt.Errorf("score heading %q: %w", pattern.String(), stockdata.ErrElementNotFound)
	}
	return parseScore(htmlutil.GetText(element))
}

// parseScore reads the integer after the last colon of `text`, or all of
// `text` if there is no colon.
func parseScore(text string) (int, error) {
	if i := strings.LastIndex(text, ":"); i >= 0 {
		text = text[i+1:]
	}
	score, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("parse score: %w: %w", stockdata.ErrMalformedValue, err)
	}
	return score, nil
}

type statsResult struct {
	pairs   []stockdata.Entry
	skipped []string
}

func extractStats(root *html.Node, sectionId string) (statsResult, error) {
	var section *html.Node
	htmlutil.Walk(root, func(n *html.Node) bool {
		id, ok := htmlutil.Attr(n, "id")
		if n.Type == html.ElementNode && ok && id == sectionId {
			section = n
			return false
		}
		return true
	})
	if section == nil {
		return statsResult{}, fmt.Errorf("section %q: %w", sectionId, stockdata.ErrElementNotFound)
	}

	paragraph := htmlutil.NextElement(section, "p")
	if paragraph == nil {
		return statsResult{}, fmt.Errorf("paragraph after %q: %w", sectionId, stockdata.ErrElementNotFound)
	}

	return splitStats(htmlutil.GetText(paragraph)), nil
}

// splitStats parses "Key: Value | Key: Value", every segment is split on its
// first colon. Blank segments are ignored and segments without a colon are
// returned as skipped.
func splitStats(text string) statsResult {
	var result statsResult
	for _, segment := range strings.Split(text, "|") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		key, value, found := strings.Cut(segment, ":")
		if !found {
			result.skipped = append(result.skipped, segment)
			continue
		}
		result.pairs = append(result.pairs, stockdata.Entry{
			Key:   strings.TrimSpace(key),
			Value: strings.TrimSpace(value),
		})
	}
	return result
}
