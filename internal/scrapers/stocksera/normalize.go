package stocksera

import (
	"fmt"
	"strconv"
	"strings"

	"stockbot/internal/stockdata"
)

const (
	FieldFailureToDeliver = "Failure to Deliver"
	FieldPrice            = "Price"
	FieldAmount           = "Amount (FTD x $)"
)

// NormalizeFTD returns a copy of a failure to deliver record with:
//
//  1. "Failure to Deliver" cut at its decimal point if it has exactly one,
//     this is string truncation, not rounding.
//  2. "Amount (FTD x $)" recomputed as failures x price when the amount,
//     the price and the failures are all present.
//
// The returned record is always usable, a non-nil error only explains why
// the amount was left as scraped.
func NormalizeFTD(record *stockdata.Record) (*stockdata.Record, error) {
	out := record.Clone()
	if out == nil {
		return nil, nil
	}

	failures, hasFailures := out.Get(FieldFailureToDeliver)
	if hasFailures && strings.Count(failures, ".") == 1 {
		failures = failures[:strings.Index(failures, ".")]
		out.Set(FieldFailureToDeliver, failures)
	}

	if !out.Has(FieldAmount) || !hasFailures {
		return out, nil
	}
	price, hasPrice := out.Get(FieldPrice)
	if !hasPrice {
		return out, nil
	}

	count, err := strconv.Atoi(failures)
	if err != nil {
		return out, fmt.Errorf("%s %q: %w", FieldFailureToDeliver, failures, stockdata.ErrMalformedValue)
	}
	unitPrice, err := strconv.ParseFloat(strings.TrimSpace(price), 64)
	if err != nil {
		return out, fmt.Errorf("%s %q: %w", FieldPrice, price, stockdata.ErrMalformedValue)
	}

	out.Set(FieldAmount, fmt.Sprintf("$%.2f", float64(count)*unitPrice))
	return out, nil
}
