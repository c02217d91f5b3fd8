// Package extract drives the end-to-end extraction flow per source
// document: reduce, pack, invoke per chunk, recovery-parse, merge and
// emit. It also hosts provider selection over the configured set.
package extract

import (
	"context"
	"log/slog"

	"github.com/jobsift/jobsift"
)

// Ensure Registry implements jobsift.ProviderRegistry at compile time.
var _ jobsift.ProviderRegistry = (*Registry)(nil)

// Registry holds the configured extraction providers in priority
// order and answers selection queries. Availability checks are
// delegated to the providers and must stay idempotent.
type Registry struct {
	defaultID string
	providers []jobsift.Provider
	logger    *slog.Logger
}

// NewRegistry creates a registry. The provider order is the fixed
// priority order used for tie-breaking and fallback; defaultID may be
// empty to select the first available provider.
func NewRegistry(defaultID string, logger *slog.Logger, providers ...jobsift.Provider) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		defaultID: defaultID,
		providers: providers,
		logger:    logger,
	}
}

// Providers returns all configured providers in priority order.
func (r *Registry) Providers() []jobsift.Provider {
	out := make([]jobsift.Provider, len(r.providers))
	copy(out, r.providers)
	return out
}

// Default returns the explicitly configured provider when available,
// otherwise the first available provider in priority order.
func (r *Registry) Default(ctx context.Context) (jobsift.Provider, error) {
	if r.defaultID != "" {
		for _, p := range r.providers {
			if p.ID() == r.defaultID && p.Available(ctx) {
				return p, nil
			}
		}
		r.logger.Warn("configured provider unavailable, selecting alternative", "provider", r.defaultID)
	}

	for _, p := range r.providers {
		if p.Available(ctx) {
			return p, nil
		}
	}
	return nil, jobsift.Errorf(jobsift.EUNAVAILABLE, "no extraction provider available")
}

// Best returns the available provider with the highest confidence for
// the document, ties broken by priority order. A provider whose
// confidence computation panics scores zero but remains a candidate,
// so one misbehaving provider cannot eliminate its siblings from
// consideration, only from winning.
func (r *Registry) Best(ctx context.Context, doc *jobsift.RawDocument) (jobsift.Provider, error) {
	var best jobsift.Provider
	bestScore := -1.0

	for _, p := range r.providers {
		if !p.Available(ctx) {
			continue
		}
		score := r.confidence(p, doc)
		if score > bestScore {
			best = p
			bestScore = score
		}
	}

	if best == nil {
		return nil, jobsift.Errorf(jobsift.EUNAVAILABLE, "no extraction provider available")
	}
	return best, nil
}

// Fallback returns the first available provider other than excludeID.
func (r *Registry) Fallback(ctx context.Context, excludeID string) (jobsift.Provider, error) {
	for _, p := range r.providers {
		if p.ID() == excludeID {
			continue
		}
		if p.Available(ctx) {
			return p, nil
		}
	}
	return nil, jobsift.Errorf(jobsift.EUNAVAILABLE, "no fallback provider available (excluding %q)", excludeID)
}

// confidence evaluates a provider's confidence defensively: a panic
// inside a scoring heuristic is worth a log line, not a crash.
func (r *Registry) confidence(p jobsift.Provider, doc *jobsift.RawDocument) (score float64) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Warn("provider confidence computation failed", "provider", p.ID(), "panic", rec)
			score = 0
		}
	}()

	score = p.Confidence(doc)
	if score < 0 || score != score { // negative or NaN
		score = 0
	}
	return score
}
