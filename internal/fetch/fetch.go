// Package fetch downloads wiki pages and hands them back as decoded text or
// parsed documents.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/brogergvhs/bascrape/internal/textenc"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

var ErrParse = errors.New("DOM parse failed")

type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: HTTP %d", e.URL, e.Code)
}

type Fetcher struct {
	http     *resty.Client
	received atomic.Int64
}

// New wraps client. Requests are never retried.
func New(client *http.Client) *Fetcher {
	rc := resty.NewWithClient(client)
	rc.SetRetryCount(0)
	rc.SetHeader("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")
	rc.SetHeader("Accept-Language", "ja,en-US;q=0.8,en;q=0.6")

	return &Fetcher{http: rc}
}

// Raw returns the undecoded response body.
func (f *Fetcher) Raw(ctx context.Context, url string) ([]byte, error) {
	res, err := f.http.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, err
	}
	if !res.IsSuccess() {
		return nil, &StatusError{URL: url, Code: res.StatusCode()}
	}

	body := res.Body()
	f.received.Add(int64(len(body)))

	return body, nil
}

func (f *Fetcher) Text(ctx context.Context, url string) (string, error) {
	raw, err := f.Raw(ctx, url)
	if err != nil {
		return "", err
	}

	text, err := textenc.Decode(raw)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", url, err)
	}

	return text, nil
}

func (f *Fetcher) Document(ctx context.Context, url string) (*goquery.Document, error) {
	text, err := f.Text(ctx, url)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, url, err)
	}

	return doc, nil
}

// Received is the number of body bytes downloaded so far.
func (f *Fetcher) Received() int64 {
	return f.received.Load()
}
