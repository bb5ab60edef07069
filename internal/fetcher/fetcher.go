package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"kaset_news/internal/models"

	"golang.org/x/sync/errgroup"
)

// maxBodyBytes caps a single feed response.
const maxBodyBytes = 10 << 20

// StatusError is returned when the proxy answers with a non-2xx status.
type StatusError struct {
	Source string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error for %s: %d", e.Source, e.Code)
}

// Result is the settled outcome of one source: either Body or Err is set.
type Result struct {
	Source models.FeedSource
	Body   []byte
	Err    error
}

// Fetcher downloads raw feed documents through a URL-prefix proxy.
type Fetcher struct {
	client      *http.Client
	proxy       string
	userAgent   string
	concurrency int
}

type Option func(*Fetcher)

// WithClient replaces the default HTTP client.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) { f.client = c }
}

// NewClient returns a client that gives up on a server which accepts the
// connection but sends no response headers within headerTimeout. Zero means
// no limit.
func NewClient(headerTimeout time.Duration) *http.Client {
	tr := http.DefaultTransport.(*http.Transport).Clone()
	tr.ResponseHeaderTimeout = headerTimeout
	return &http.Client{Transport: tr}
}

func WithUserAgent(ua string) Option {
	return func(f *Fetcher) { f.userAgent = ua }
}

// WithConcurrency caps the number of requests in flight; n <= 0 means one
// request per source at once.
func WithConcurrency(n int) Option {
	return func(f *Fetcher) { f.concurrency = n }
}

// New returns a Fetcher that prefixes every feed URL with proxy. An empty
// proxy fetches feeds directly.
func New(proxy string, opts ...Option) *Fetcher {
	f := &Fetcher{
		client: &http.Client{},
		proxy:  proxy,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// RequestURL is the feed URL appended to the proxy endpoint as-is.
func (f *Fetcher) RequestURL(src models.FeedSource) string {
	return f.proxy + src.URL
}

// Fetch loads the raw document of a single source.
func (f *Fetcher) Fetch(ctx context.Context, src models.FeedSource) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.RequestURL(src), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request for %s: %w", src.Name, err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	req.Header.Set("Accept", "application/rss+xml, application/xml, text/xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", src.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Source: src.Name, Code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", src.Name, err)
	}
	return body, nil
}

// FetchAll requests every source concurrently and waits for all of them to
// settle. A failing source never stops the others. Results keep the order of
// sources, whatever order the responses arrive in.
func (f *Fetcher) FetchAll(ctx context.Context, sources []models.FeedSource) []Result {
	results := make([]Result, len(sources))

	var g errgroup.Group
	if f.concurrency > 0 {
		g.SetLimit(f.concurrency)
	}
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			body, err := f.Fetch(ctx, src)
			results[i] = Result{Source: src, Body: body, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}
