// Package report pulls every data source for a ticker and renders the
// results into the text that gets posted.
package report

import (
	"context"
	"fmt"
	"strings"

	"stockbot/internal/components/assert"
	"stockbot/internal/components/telemetry"
	"stockbot/internal/scrapers/franknez"
	"stockbot/internal/scrapers/stocksera"
	"stockbot/internal/stockdata"
)

const (
	report_assembler_records = "assembler.records"
)

var (
	PriceFields     = []string{"Date", "Open", "Close", "High", "Low", "% Price Change"}
	MiscStatsFields = []string{"Short Interest", "Days To Cover", franknez.FieldSqueezeScore}
	FTDFields       = []string{"Date", stocksera.FieldFailureToDeliver, stocksera.FieldPrice, stocksera.FieldAmount}
)

type BorrowFeeSource interface {
	BorrowFee(ctx context.Context, ticker stockdata.Ticker) (*stockdata.Record, error)
}

type MiscStatsSource interface {
	MiscStats(ctx context.Context, ticker stockdata.Ticker) (*stockdata.Record, error)
}

type DaySource interface {
	Price(ctx context.Context, ticker stockdata.Ticker, daysFromToday int) (*stockdata.Record, error)
	FailureToDeliver(ctx context.Context, ticker stockdata.Ticker, daysFromToday int) (*stockdata.Record, error)
}

// Report holds one record per source, a nil record means the source failed
// and the failure has already been reported.
type Report struct {
	Ticker    stockdata.Ticker
	Price     *stockdata.Record
	MiscStats *stockdata.Record
	BorrowFee *stockdata.Record
	FTD       *stockdata.Record
}

// Present counts the records that are not nil.
func (r Report) Present() int {
	n := 0
	for _, record := range []*stockdata.Record{r.Price, r.MiscStats, r.BorrowFee, r.FTD} {
		if record != nil {
			n++
		}
	}
	return n
}

type Assembler struct {
	borrowFee BorrowFeeSource
	miscStats MiscStatsSource
	days      DaySource
	tel       telemetry.API
}

func NewAssembler(borrowFee BorrowFeeSource, miscStats MiscStatsSource, days DaySource, tel telemetry.API) Assembler {
	assert.NotNil(borrowFee)
	assert.NotNil(miscStats)
	assert.NotNil(days)
	assert.NotNil(tel)

	return Assembler{
		borrowFee: borrowFee,
		miscStats: miscStats,
		days:      days,
		tel:       telemetry.NewScopedAPI("report", tel),
	}
}

// Pull queries every source one after the other. A failing source leaves
// its record nil without stopping the others.
func (a Assembler) Pull(ctx context.Context, ticker stockdata.Ticker) Report {
	r := Report{Ticker: ticker}
	// errors are already reported by the sources, only the records matter here.
	r.Price, _ = a.days.Price(ctx, ticker, 0)
	r.MiscStats, _ = a.miscStats.MiscStats(ctx, ticker)
	r.BorrowFee, _ = a.borrowFee.BorrowFee(ctx, ticker)
	r.FTD, _ = a.days.FailureToDeliver(ctx, ticker, 0)

	a.tel.ReportCount(report_assembler_records, int64(r.Present()))
	return r
}

type section struct {
	header    string
	record    *stockdata.Record
	allowlist []string
}

// Render lays the report out as the message text. Sections are separated by
// blank lines, a section's header is kept even when its record is missing.
func Render(r Report) string {
	sections := []section{
		{
			header:    fmt.Sprintf("%s Price %s%s", r.Ticker, emojiStonk, emojiFire),
			record:    r.Price,
			allowlist: PriceFields,
		},
		{
			header:    fmt.Sprintf("\n%s Misc Stats%s%s", r.Ticker, emojiRocket, emojiApe),
			record:    r.MiscStats,
			allowlist: MiscStatsFields,
		},
		{
			record: r.BorrowFee,
		},
		{
			header:    fmt.Sprintf("\n%s Most recent FTD info %s%s", r.Ticker, emojiMoon, emojiCash),
			record:    r.FTD,
			allowlist: FTDFields,
		},
	}

	var lines []string
	for _, s := range sections {
		if s.header != "" {
			lines = append(lines, s.header)
		}
		lines = append(lines, Stringize(s.record, s.allowlist)...)
	}
	return strings.Join(lines, "\n")
}

// Posts splits a rendered message on blank lines and appends `tags` to each part.
func Posts(message string, tags []string) []string {
	parts := strings.Split(message, "\n\n")
	out := make([]string, len(parts))
	for i, part := range parts {
		out[i] = strings.Join(append([]string{part}, tags...), "\n")
	}
	return out
}
