package stockdata

import (
	"errors"
	"fmt"
)

var (
	// ErrElementNotFound means an expected anchor (phrase, id, sibling,
	// paragraph, table row) is absent from a page. It is wrapped with the
	// name of the lookup stage that failed.
	ErrElementNotFound = errors.New("element not found")
	// ErrUnconfiguredTicker means a source has no configuration for a ticker.
	ErrUnconfiguredTicker = errors.New("ticker not configured")
	// ErrMalformedValue means a value that should be numeric is not.
	ErrMalformedValue = errors.New("malformed value")
)

// FetchError is a transport or HTTP status failure while fetching a page.
// StatusCode is 0 when no response was received.
type FetchError struct {
	Url        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d: %v", e.Url, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.Url, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
