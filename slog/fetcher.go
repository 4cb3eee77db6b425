// Package slog provides logging decorators for the domain interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/locimg"
)

// Ensure LoggingFetcher implements locimg.ImageFetcher.
var _ locimg.ImageFetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps an ImageFetcher with debug logging.
type LoggingFetcher struct {
	next   locimg.ImageFetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next locimg.ImageFetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (res *locimg.FetchResult, err error) {
	defer func(begin time.Time) {
		size := 0
		if res != nil {
			size = len(res.Body)
		}
		f.logger.Debug("image fetch",
			"url", url,
			"bytes", size,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}
