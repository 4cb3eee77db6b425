package mock

import (
	"context"

	"github.com/fwojciec/locimg"
)

var _ locimg.ImageFetcher = (*ImageFetcher)(nil)

// ImageFetcher is a mock implementation of locimg.ImageFetcher.
type ImageFetcher struct {
	FetchFn func(ctx context.Context, url string) (*locimg.FetchResult, error)
}

func (f *ImageFetcher) Fetch(ctx context.Context, url string) (*locimg.FetchResult, error) {
	return f.FetchFn(ctx, url)
}
