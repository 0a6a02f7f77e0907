package stockdata

import (
	"fmt"
	"strings"
)

// Ticker is an upper-case stock symbol like "AMC".
type Ticker string

const (
	AMC Ticker = "AMC"
	GME Ticker = "GME"
)

// KnownTickers are the tickers the bot has report tags and scraper
// configuration for.
var KnownTickers = []Ticker{AMC, GME}

func (t Ticker) String() string {
	return string(t)
}

func (t Ticker) Lower() string {
	return strings.ToLower(string(t))
}

// ParseTicker normalizes the given symbol and checks it against KnownTickers.
func ParseTicker(symbol string) (Ticker, error) {
	ticker := Ticker(strings.ToUpper(strings.TrimSpace(symbol)))
	for _, known := range KnownTickers {
		if ticker == known {
			return ticker, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnconfiguredTicker, symbol)
}
