package commands

import (
	"fmt"
	"strings"
	"time"

	"stockbot/internal/components/telemetry"
	"stockbot/internal/scrapers/document"
	"stockbot/internal/stockdata"
	"stockbot/internal/twitter"
	"stockbot/pkg/configutil"
)

type BaseUrls struct {
	Chartexchange string `json:"chartexchange"`
	Franknez      string `json:"franknez"`
	Stocksera     string `json:"stocksera"`
}

type ScrapeConfig struct {
	TimeoutSeconds          int      `json:"timeout_seconds"`
	RequestsPerSecond       float64  `json:"requests_per_second"`
	UserAgent               string   `json:"user_agent"`
	DisableCloudflareBypass bool     `json:"disable_cloudflare_bypass"`
	BaseUrls                BaseUrls `json:"base_urls"`
}

type PostingConfig struct {
	BaseUrl string `json:"base_url"`
}

type Config struct {
	// Accounts maps a ticker to the account that posts its report.
	Accounts  map[string]twitter.Credentials `json:"accounts"`
	Scrape    ScrapeConfig                   `json:"scrape"`
	Posting   PostingConfig                  `json:"posting"`
	Telemetry telemetry.Config               `json:"telemetry"`
}

func readConfig(path string) (Config, error) {
	cfg, err := configutil.ReadConfig[Config](path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if cfg.Scrape.TimeoutSeconds < 0 {
		return Config{}, fmt.Errorf("scrape.timeout_seconds must not be negative")
	}
	if cfg.Scrape.RequestsPerSecond < 0 {
		return Config{}, fmt.Errorf("scrape.requests_per_second must not be negative")
	}
	return cfg, nil
}

// Account finds the credentials for `ticker`, keys are matched ignoring case.
func (c Config) Account(ticker stockdata.Ticker) (twitter.Credentials, bool) {
	for key, creds := range c.Accounts {
		if strings.EqualFold(strings.TrimSpace(key), ticker.String()) {
			return creds, true
		}
	}
	return twitter.Credentials{}, false
}

func (c Config) fetcherOptions(output telemetry.InstrumentOutput) document.Options {
	return document.Options{
		Timeout:                 time.Duration(c.Scrape.TimeoutSeconds) * time.Second,
		RequestsPerSecond:       c.Scrape.RequestsPerSecond,
		UserAgent:               c.Scrape.UserAgent,
		DisableCloudflareBypass: c.Scrape.DisableCloudflareBypass,
		Output:                  output,
	}
}
