package mock

import (
	"context"

	"github.com/jobsift/jobsift"
)

var _ jobsift.Provider = (*Provider)(nil)

// Provider is a mock implementation of jobsift.Provider.
type Provider struct {
	IDFn            func() string
	AvailableFn     func(ctx context.Context) bool
	ConfidenceFn    func(doc *jobsift.RawDocument) float64
	ExtractListFn   func(ctx context.Context, chunk jobsift.Chunk, site jobsift.Site) (string, error)
	ExtractDetailFn func(ctx context.Context, rec *jobsift.Record, content string) (string, error)
}

func (p *Provider) ID() string {
	if p.IDFn == nil {
		return "mock"
	}
	return p.IDFn()
}

func (p *Provider) Available(ctx context.Context) bool {
	if p.AvailableFn == nil {
		return true
	}
	return p.AvailableFn(ctx)
}

func (p *Provider) Confidence(doc *jobsift.RawDocument) float64 {
	if p.ConfidenceFn == nil {
		return 0.5
	}
	return p.ConfidenceFn(doc)
}

func (p *Provider) ExtractList(ctx context.Context, chunk jobsift.Chunk, site jobsift.Site) (string, error) {
	return p.ExtractListFn(ctx, chunk, site)
}

func (p *Provider) ExtractDetail(ctx context.Context, rec *jobsift.Record, content string) (string, error) {
	return p.ExtractDetailFn(ctx, rec, content)
}
