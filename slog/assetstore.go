package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/locimg"
)

// Ensure LoggingAssetStore implements locimg.AssetStore.
var _ locimg.AssetStore = (*LoggingAssetStore)(nil)

// LoggingAssetStore wraps an AssetStore with debug logging.
type LoggingAssetStore struct {
	next   locimg.AssetStore
	logger *slog.Logger
}

// NewLoggingAssetStore creates a new LoggingAssetStore.
func NewLoggingAssetStore(next locimg.AssetStore, logger *slog.Logger) *LoggingAssetStore {
	return &LoggingAssetStore{next: next, logger: logger}
}

// Store delegates to the wrapped store and logs the operation.
func (s *LoggingAssetStore) Store(ctx context.Context, url string, res *locimg.FetchResult) (localPath string, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("asset store",
			"url", url,
			"path", localPath,
			"bytes", len(res.Body),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Store(ctx, url, res)
}
