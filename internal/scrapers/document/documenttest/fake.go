// Package documenttest serves fixture pages through document.API.
package documenttest

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"sync"
	"testing"

	"stockbot/internal/scrapers/document"
	"stockbot/internal/stockdata"

	"github.com/PuerkitoBio/goquery"
)

// Fake implements document.API with pages held in memory, unknown urls fail
// with a 404 FetchError.
type Fake struct {
	mutex     sync.Mutex
	pages     map[string]string
	Requested []string
}

func NewFake() *Fake {
	return &Fake{pages: map[string]string{}}
}

func (f *Fake) Set(url, body string) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.pages[url] = body
}

// SetFile serves the contents of a fixture file at `url`.
func (f *Fake) SetFile(t testing.TB, url, path string) {
	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	f.Set(url, string(contents))
}

func (f *Fake) Fetch(_ context.Context, url string) (*goquery.Document, error) {
	f.mutex.Lock()
	f.Requested = append(f.Requested, url)
	body, ok := f.pages[url]
	f.mutex.Unlock()

	if !ok {
		return nil, &stockdata.FetchError{
			Url:        url,
			StatusCode: http.StatusNotFound,
			Err:        fmt.Errorf("no fixture for url"),
		}
	}
	return document.Parse([]byte(body))
}

// ParseFile parses a fixture file.
func ParseFile(t testing.TB, path string) *goquery.Document {
	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	doc, err := document.Parse(contents)
	if err != nil {
		t.Fatal(err)
	}
	return doc
}
