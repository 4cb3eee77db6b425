// Package http provides an HTTP-based implementation of locimg.ImageFetcher
// for downloading remote images with a bounded per-request timeout.
package http

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fwojciec/locimg"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// maxImageBytes caps how much of a response body is read. Anything larger
// than this is not a note image.
const maxImageBytes = 64 << 20

// Ensure Fetcher implements locimg.ImageFetcher at compile time.
var _ locimg.ImageFetcher = (*Fetcher)(nil)

// Fetcher retrieves image bytes from URLs using HTTP GET requests.
type Fetcher struct {
	client  *http.Client
	limiter locimg.HostLimiter
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithLimiter sets a per-host rate limiter applied before each request.
// No limiting is applied if not specified.
func WithLimiter(l locimg.HostLimiter) Option {
	return func(f *Fetcher) {
		f.limiter = l
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the image bytes from the given URL. Transport errors,
// non-2xx statuses, and empty bodies all return an EUNAVAILABLE error so
// callers can treat them as soft, per-reference failures.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*locimg.FetchResult, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, locimg.Errorf(locimg.EINVALID, "invalid image URL %q: %v", rawURL, err)
	}

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx, u.Host); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, locimg.Errorf(locimg.EINVALID, "creating request for %q: %v", rawURL, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, locimg.Errorf(locimg.EUNAVAILABLE, "fetching %s: %v", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, locimg.Errorf(locimg.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, rawURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, locimg.Errorf(locimg.EUNAVAILABLE, "reading body of %s: %v", rawURL, err)
	}
	if len(body) == 0 {
		return nil, locimg.Errorf(locimg.EUNAVAILABLE, "empty body for %s", rawURL)
	}

	return &locimg.FetchResult{
		Body:        body,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}
