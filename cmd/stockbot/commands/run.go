package commands

import (
	"context"
	"fmt"
	"io"

	"stockbot/internal/components/telemetry"
	"stockbot/internal/report"
	"stockbot/internal/scrapers/chartexchange"
	"stockbot/internal/scrapers/document"
	"stockbot/internal/scrapers/franknez"
	"stockbot/internal/scrapers/stocksera"
	"stockbot/internal/stockdata"
	"stockbot/internal/twitter"
)

const (
	report_run_account = "run.account"
)

func newAssembler(cfg Config, tel telemetry.API, output telemetry.InstrumentOutput) report.Assembler {
	docs := document.NewFetcher(tel, cfg.fetcherOptions(output))
	urls := cfg.Scrape.BaseUrls
	return report.NewAssembler(
		chartexchange.NewClient(urls.Chartexchange, docs, tel),
		franknez.NewClient(urls.Franknez, franknez.DefaultSections, docs, tel),
		stocksera.NewClient(urls.Stocksera, docs, tel),
		tel,
	)
}

type runOptions struct {
	ticker stockdata.Ticker
	// send posts to the ticker's account, otherwise the posts are printed to out.
	send bool
	out  io.Writer
}

// run does one full cycle: scrape, render and post.
func run(ctx context.Context, cfg Config, tel telemetry.API, output telemetry.InstrumentOutput, opts runOptions) error {
	var poster twitter.Poster = twitter.NewDryRun(opts.out)
	if opts.send {
		creds, ok := cfg.Account(opts.ticker)
		if !ok {
			tel.ReportWarning(report_run_account, opts.ticker.String(), "not yet set up")
			return nil
		}
		client, err := twitter.NewClient(creds, tel, twitter.ClientOptions{
			BaseUrl: cfg.Posting.BaseUrl,
			Output:  output,
		})
		if err != nil {
			return fmt.Errorf("%s account: %w", opts.ticker, err)
		}
		poster = client
	}

	r := newAssembler(cfg, tel, output).Pull(ctx, opts.ticker)
	posts := report.Posts(report.Render(r), report.Tags(opts.ticker))
	return twitter.PostAll(ctx, poster, tel, posts)
}
