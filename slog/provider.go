// Package slog provides logging decorators for core interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/jobsift/jobsift"
)

// Ensure LoggingProvider implements jobsift.Provider at compile time.
var _ jobsift.Provider = (*LoggingProvider)(nil)

// LoggingProvider wraps a Provider with call logging.
type LoggingProvider struct {
	next   jobsift.Provider
	logger *slog.Logger
}

// NewLoggingProvider creates a new LoggingProvider.
func NewLoggingProvider(next jobsift.Provider, logger *slog.Logger) *LoggingProvider {
	return &LoggingProvider{next: next, logger: logger}
}

// ID delegates to the wrapped provider.
func (p *LoggingProvider) ID() string {
	return p.next.ID()
}

// Available delegates to the wrapped provider.
func (p *LoggingProvider) Available(ctx context.Context) bool {
	return p.next.Available(ctx)
}

// Confidence delegates to the wrapped provider.
func (p *LoggingProvider) Confidence(doc *jobsift.RawDocument) float64 {
	return p.next.Confidence(doc)
}

// ExtractList logs the list extraction call with duration and response size.
func (p *LoggingProvider) ExtractList(ctx context.Context, chunk jobsift.Chunk, site jobsift.Site) (string, error) {
	begin := time.Now()
	raw, err := p.next.ExtractList(ctx, chunk, site)
	if err != nil {
		p.logger.Error("list extraction",
			"provider", p.next.ID(),
			"site", site.ID,
			"chunk", chunk.Index,
			"duration", time.Since(begin),
			"err", err,
		)
		return raw, err
	}
	p.logger.Info("list extraction",
		"provider", p.next.ID(),
		"site", site.ID,
		"chunk", chunk.Index,
		"chunkUnits", chunk.SizeUnits,
		"bytes", len(raw),
		"duration", time.Since(begin),
	)
	return raw, nil
}

// ExtractDetail logs the detail extraction call with duration and response size.
func (p *LoggingProvider) ExtractDetail(ctx context.Context, rec *jobsift.Record, content string) (string, error) {
	begin := time.Now()
	raw, err := p.next.ExtractDetail(ctx, rec, content)
	if err != nil {
		p.logger.Error("detail extraction",
			"provider", p.next.ID(),
			"url", rec.SourceURL,
			"duration", time.Since(begin),
			"err", err,
		)
		return raw, err
	}
	p.logger.Info("detail extraction",
		"provider", p.next.ID(),
		"url", rec.SourceURL,
		"bytes", len(raw),
		"duration", time.Since(begin),
	)
	return raw, nil
}
