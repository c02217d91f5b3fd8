package jobsift

import "context"

// CallFunc performs one provider network call and returns the raw
// model response text.
type CallFunc func(ctx context.Context) (string, error)

// Invoker executes a single provider call under quota and concurrency
// control, retrying transient failures with backoff. The call is
// opaque; classification happens on the returned error.
//
// Errors: EQUOTA when the daily ceiling is reached (no network call is
// made), ETOOLARGE when the input exceeds the provider context window
// (never retried), EINTERNAL wrapping the last cause when retries are
// exhausted on transient failures; other errors propagate unchanged.
type Invoker interface {
	Invoke(ctx context.Context, call CallFunc) (string, error)
}

// RecordSink receives the merged records of one processed document.
// The relational persistence layer behind it is an external
// collaborator of this module.
type RecordSink interface {
	EmitRecords(ctx context.Context, site Site, recs []*Record) error
}

// SeenFilter answers whether a posting URL has already been processed.
// False positives are acceptable (a posting is skipped), false
// negatives only cost a redundant extraction.
type SeenFilter interface {
	Seen(url string) bool
	Add(url string)
}

// PageFetcher retrieves rendered HTML for a URL. The browser
// automation behind it is an external collaborator of this module.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (html string, err error)
}
