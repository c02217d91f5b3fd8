package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/jobsift/jobsift"
)

// Ensure LoggingFetcher implements jobsift.PageFetcher at compile time.
var _ jobsift.PageFetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a PageFetcher with fetch logging.
type LoggingFetcher struct {
	next   jobsift.PageFetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next jobsift.PageFetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the fetch with bytes and duration.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (string, error) {
	begin := time.Now()
	html, err := f.next.Fetch(ctx, url)
	if err != nil {
		f.logger.Error("fetch",
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
		return html, err
	}
	f.logger.Info("fetch",
		"url", url,
		"bytes", len(html),
		"duration", time.Since(begin),
	)
	return html, nil
}
