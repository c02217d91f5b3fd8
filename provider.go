package jobsift

import (
	"context"
	"strings"
)

// Provider is an extraction capability: it converts text/HTML into
// structured records via an external model. Providers have variable
// availability and confidence. The response is raw model text expected
// to be JSON-shaped; recovery parsing happens downstream.
type Provider interface {
	// ID returns the provider identifier (e.g., "gemini", "openai").
	ID() string

	// Available reports whether the provider can currently serve
	// calls (credentials present, client constructed). Availability
	// checks are idempotent and must not consume quota.
	Available(ctx context.Context) bool

	// Confidence estimates how well this provider is expected to
	// extract records from the document, in [0, 1].
	Confidence(doc *RawDocument) float64

	// ExtractList asks the model to extract a JSON array of job
	// postings from one chunk of a listing page.
	ExtractList(ctx context.Context, chunk Chunk, site Site) (string, error)

	// ExtractDetail asks the model to extract a JSON object with
	// detail fields for a known posting from its detail page text.
	ExtractDetail(ctx context.Context, rec *Record, content string) (string, error)
}

// ProviderRegistry answers "give me the default provider" and "give me
// a fallback excluding X" queries over the configured provider set.
type ProviderRegistry interface {
	// Default returns the configured or first available provider.
	// Returns EUNAVAILABLE when no provider qualifies.
	Default(ctx context.Context) (Provider, error)

	// Best returns the available provider with the highest
	// confidence for the document, ties broken by priority order.
	Best(ctx context.Context, doc *RawDocument) (Provider, error)

	// Fallback returns an available provider other than excludeID.
	Fallback(ctx context.Context, excludeID string) (Provider, error)

	// Providers returns all configured providers in priority order,
	// regardless of availability.
	Providers() []Provider
}

// Scorer computes a confidence score for extracting records from a
// document. The default heuristic combines coarse signals (markup
// quality, domain keywords, content length) with a per-site weight;
// it is a pluggable strategy, not a validated accuracy metric.
type Scorer func(doc *RawDocument) float64

// NewDefaultScorer returns the default confidence heuristic scaled by
// modelWeight, using per-site weights from the registry (unknown sites
// score siteDefaultWeight).
func NewDefaultScorer(modelWeight float64, sites *SiteRegistry) Scorer {
	return func(doc *RawDocument) float64 {
		quality := htmlQuality(doc.HTML)
		weight := siteDefaultWeight
		if sites != nil {
			if site, ok := sites.Get(doc.SiteID); ok && site.Weight > 0 {
				weight = site.Weight
			}
		}
		score := quality * weight * modelWeight
		return clamp01(score)
	}
}

const siteDefaultWeight = 0.7

func htmlQuality(html string) float64 {
	if html == "" {
		return 0.1
	}
	quality := 0.5
	if containsAll(html, "</div>", "class=") {
		quality += 0.2
	}
	if containsAny(html, "job", "recruit", "position", "hiring") {
		quality += 0.2
	}
	if len(html) > 1000 {
		quality += 0.1
	}
	return clamp01(quality)
}

func containsAll(s string, subs ...string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}

func containsAny(s string, subs ...string) bool {
	lower := strings.ToLower(s)
	for _, sub := range subs {
		if strings.Contains(lower, sub) {
			return true
		}
	}
	return false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
