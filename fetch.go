package locimg

import "context"

// FetchResult holds the bytes of a successfully fetched image.
type FetchResult struct {
	// Body is the raw image bytes. Never empty: an empty body is a fetch
	// failure, not a result.
	Body []byte

	// ContentType is the value of the response Content-Type header, if any.
	ContentType string
}

// ImageFetcher retrieves image bytes from remote URLs.
type ImageFetcher interface {
	// Fetch issues a GET for the URL and returns the body and content type.
	// A non-2xx status, an empty body, or any transport error is returned
	// as an EUNAVAILABLE error. The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// HostLimiter throttles outbound requests per remote host.
type HostLimiter interface {
	// Wait blocks until the rate limit allows a request to the host.
	Wait(ctx context.Context, host string) error
}
