// Package document fetches web pages and parses them into goquery documents.
package document

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"stockbot/internal/components/assert"
	"stockbot/internal/components/telemetry"
	"stockbot/internal/stockdata"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/time/rate"
)

const (
	report_fetcher_fetch = "fetcher.fetch"
)

var tracer = otel.Tracer("stockbot.scrapers.document")

// API fetches a page and parses it.
//
// note: fault injection point
type API interface {
	// Fetch GETs `url` and parses the body. Transport errors and non-2xx
	// statuses are returned as *stockdata.FetchError.
	Fetch(ctx context.Context, url string) (*goquery.Document, error)
}

type Options struct {
	// Timeout bounds a single request including reading the body, defaults to 30s.
	Timeout time.Duration
	// RequestsPerSecond is shared by every request made by the fetcher, defaults to 2.
	RequestsPerSecond float64
	// UserAgent replaces the default resty user agent when set.
	UserAgent string
	// DisableCloudflareBypass keeps the default TLS fingerprint and headers.
	DisableCloudflareBypass bool
	// Output receives full request/response dumps, can be nil.
	Output telemetry.InstrumentOutput
}

// Fetcher is the standard implementation of API on top of resty.
type Fetcher struct {
	http *resty.Client
	tel  telemetry.API
}

func NewFetcher(tel telemetry.API, opts Options) Fetcher {
	assert.NotNil(tel)

	if opts.Timeout <= 0 {
		opts.Timeout = time.Second * 30
	}
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = 2
	}

	httpClient := resty.New()
	httpClient.SetTimeout(opts.Timeout)
	httpClient.SetRetryCount(0)
	if !opts.DisableCloudflareBypass {
		httpClient.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(httpClient.GetClient().Transport)
	}
	if opts.UserAgent != "" {
		httpClient.SetHeader("user-agent", opts.UserAgent)
	}

	// burst >= 1 just means that no requests will be dropped
	rateLimiter := rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return rateLimiter.Wait(req.Context())
	})

	telemetry.InstrumentResty(httpClient, tel, opts.Output)

	return Fetcher{
		http: httpClient,
		tel:  tel,
	}
}

func (f Fetcher) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	ctx, span := tracer.Start(ctx, "Fetch")
	defer span.End()
	span.SetAttributes(attribute.String("url", url))

	fail := func(err *stockdata.FetchError) error {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")
		f.tel.ReportBroken(report_fetcher_fetch, err, url)
		return err
	}

	res, err := f.http.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, fail(&stockdata.FetchError{Url: url, Err: err})
	}
	if !res.IsSuccess() {
		return nil, fail(&stockdata.FetchError{
			Url:        url,
			StatusCode: res.StatusCode(),
			Err:        fmt.Errorf("unexpected status %q", res.Status()),
		})
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		return nil, fail(&stockdata.FetchError{
			Url:        url,
			StatusCode: res.StatusCode(),
			Err:        fmt.Errorf("parse: %w", err),
		})
	}
	return doc, nil
}

// Parse parses an already fetched page, it is used for fixtures and for
// re-running extraction on dumped pages.
func Parse(body []byte) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(bytes.NewReader(body))
}
