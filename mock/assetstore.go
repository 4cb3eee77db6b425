package mock

import (
	"context"

	"github.com/fwojciec/locimg"
)

var _ locimg.AssetStore = (*AssetStore)(nil)

// AssetStore is a mock implementation of locimg.AssetStore.
type AssetStore struct {
	StoreFn func(ctx context.Context, url string, res *locimg.FetchResult) (string, error)
}

func (s *AssetStore) Store(ctx context.Context, url string, res *locimg.FetchResult) (string, error) {
	return s.StoreFn(ctx, url, res)
}
