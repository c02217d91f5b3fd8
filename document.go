package jobsift

import "time"

// RawDocument is one crawled listing page as handed over by the crawl
// layer. It is consumed exactly once by the extraction pipeline and
// never mutated.
type RawDocument struct {
	SourceURL string    `json:"sourceUrl"`
	SiteID    string    `json:"siteId"`
	HTML      string    `json:"html"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// Validate returns an error if the document cannot be processed.
func (d *RawDocument) Validate() error {
	if d.SiteID == "" {
		return Errorf(EINVALID, "document site ID required")
	}
	return nil
}

// Fragment is one record-candidate block produced by content reduction.
// HTML holds the original markup (used for structural splitting), Text
// the reduced plain/markdown form that is actually packed into chunks.
type Fragment struct {
	HTML string
	Text string

	// LowConfidence marks the whole-body fallback used when no
	// structural selector and no keyword scan produced fragments.
	LowConfidence bool
}

// DocumentSummary describes the outcome of processing one document,
// exposed so callers can distinguish "no jobs found" from "we stopped
// early due to quota".
type DocumentSummary struct {
	SourceURL           string `json:"sourceUrl"`
	SiteID              string `json:"siteId"`
	RecordsEmitted      int    `json:"recordsEmitted"`
	ChunksAttempted     int    `json:"chunksAttempted"`
	ChunksSucceeded     int    `json:"chunksSucceeded"`
	QuotaExhaustedEarly bool   `json:"quotaExhaustedEarly"`
}

// Reducer strips noise from a listing page and isolates record-like
// blocks as text fragments. Implementations must return at least one
// fragment for non-empty input, or ENOTFOUND when the page has no
// usable content at all.
type Reducer interface {
	// Reduce returns record-candidate fragments in document order.
	Reduce(doc *RawDocument) ([]Fragment, error)

	// ReduceDetail isolates the main content of a detail page and
	// returns it as text bounded by maxUnits size units.
	ReduceDetail(html string, maxUnits int) (string, error)
}

// Converter converts HTML to compact text (Markdown).
type Converter interface {
	Convert(html string) (string, error)
}

// FallbackExtractor produces a whole-page text extraction used as the
// last-resort fragment when structural reduction finds nothing.
type FallbackExtractor interface {
	ExtractText(html string) (string, error)
}
