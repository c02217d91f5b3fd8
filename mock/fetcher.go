package mock

import (
	"context"

	"github.com/jobsift/jobsift"
)

var _ jobsift.PageFetcher = (*PageFetcher)(nil)

// PageFetcher is a mock implementation of jobsift.PageFetcher.
type PageFetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
}

func (f *PageFetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}
