package extract

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jobsift/jobsift"
	"github.com/jobsift/jobsift/pack"
	"github.com/jobsift/jobsift/recovery"
	"golang.org/x/sync/errgroup"
)

// Orchestrator drives extraction for one document at a time: reduce,
// pack, dispatch chunks sequentially, recovery-parse, merge and emit.
// Multiple orchestrator instances may run concurrently; the only
// shared mutable state is the invoker's quota and concurrency permit,
// which are synchronized internally.
type Orchestrator struct {
	Reducer  jobsift.Reducer
	Packer   jobsift.Packer
	Registry jobsift.ProviderRegistry
	Invoker  jobsift.Invoker
	Sites    *jobsift.SiteRegistry

	// Sink receives merged records per document. Nil means records
	// are only returned to the caller.
	Sink jobsift.RecordSink

	// Seen skips detail extraction for already-processed posting
	// URLs. Nil disables the check.
	Seen jobsift.SeenFilter

	// DetailConcurrency bounds the worker pool used by
	// ExtractDetails. The global provider-call cap still applies
	// through the shared invoker. Zero means 1.
	DetailConcurrency int

	// DetailMaxUnits bounds the reduced detail page content passed
	// to the provider. Zero means the default chunk budget; a
	// negative value disables truncation.
	DetailMaxUnits int

	Logger *slog.Logger
}

// ExtractDocument processes one listing page and returns the merged
// records together with a processing summary. Chunk-level failures
// are contained: a failed chunk is logged and skipped, and quota
// exhaustion stops further dispatch while keeping already-collected
// records.
func (o *Orchestrator) ExtractDocument(ctx context.Context, doc *jobsift.RawDocument) ([]*jobsift.Record, *jobsift.DocumentSummary, error) {
	summary := &jobsift.DocumentSummary{
		SourceURL: doc.SourceURL,
		SiteID:    doc.SiteID,
	}

	if err := doc.Validate(); err != nil {
		return nil, summary, err
	}
	site, _ := o.Sites.Get(doc.SiteID)

	fragments, err := o.Reducer.Reduce(doc)
	if err != nil {
		if jobsift.ErrorCode(err) == jobsift.ENOTFOUND {
			// No content is a terminal empty result, not an error.
			o.logger().Info("no content found", "url", doc.SourceURL, "site", doc.SiteID)
			return nil, summary, nil
		}
		return nil, summary, err
	}

	chunks, err := o.Packer.Pack(fragments)
	if err != nil {
		return nil, summary, err
	}
	if len(chunks) == 0 {
		return nil, summary, nil
	}

	provider, err := o.Registry.Best(ctx, doc)
	if err != nil {
		return nil, summary, err
	}

	var collected []*jobsift.Record
	for _, chunk := range chunks {
		summary.ChunksAttempted++

		raw, err := o.Invoker.Invoke(ctx, func(ctx context.Context) (string, error) {
			return provider.ExtractList(ctx, chunk, site)
		})
		if err != nil {
			if jobsift.ErrorCode(err) == jobsift.EQUOTA {
				o.logger().Warn("quota exhausted, stopping chunk dispatch",
					"url", doc.SourceURL,
					"chunk", chunk.Index,
					"totalChunks", chunk.Total,
				)
				summary.QuotaExhaustedEarly = true
				break
			}
			// One bad chunk must not abort the document.
			o.logger().Error("chunk extraction failed",
				"url", doc.SourceURL,
				"chunk", chunk.Index,
				"provider", provider.ID(),
				"error", err,
			)
			continue
		}

		summary.ChunksSucceeded++
		collected = append(collected, recovery.ParseRecords(raw, site)...)
	}

	merged := jobsift.Dedupe(collected)
	now := time.Now().UTC()
	for _, rec := range merged {
		rec.ID = uuid.NewString()
		rec.ExtractedAt = now
	}

	if o.Sink != nil && len(merged) > 0 {
		if err := o.Sink.EmitRecords(ctx, site, merged); err != nil {
			return merged, summary, err
		}
	}
	summary.RecordsEmitted = len(merged)

	o.logger().Info("document extraction finished",
		"url", doc.SourceURL,
		"site", doc.SiteID,
		"records", summary.RecordsEmitted,
		"chunksAttempted", summary.ChunksAttempted,
		"chunksSucceeded", summary.ChunksSucceeded,
		"quotaExhaustedEarly", summary.QuotaExhaustedEarly,
	)
	return merged, summary, nil
}

// ExtractDetails refines records in place with detail-page fields. The
// fetcher retrieves each posting's detail HTML; documents are
// processed by a bounded worker pool while the shared invoker keeps
// the global provider-call cap. Quota exhaustion stops remaining
// refinements; each record's base fields are preserved on any failure.
func (o *Orchestrator) ExtractDetails(ctx context.Context, recs []*jobsift.Record, fetcher jobsift.PageFetcher) error {
	if fetcher == nil || len(recs) == 0 {
		return nil
	}

	provider, err := o.Registry.Default(ctx)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	limit := o.DetailConcurrency
	if limit <= 0 {
		limit = 1
	}
	g.SetLimit(limit)

	for _, rec := range recs {
		if rec.SourceURL == "" {
			continue
		}
		if o.Seen != nil && o.Seen.Seen(rec.SourceURL) {
			o.logger().Debug("skipping already-processed posting", "url", rec.SourceURL)
			continue
		}

		g.Go(func() error {
			if err := o.extractDetail(gctx, provider, rec, fetcher); err != nil {
				if jobsift.ErrorCode(err) == jobsift.EQUOTA {
					// Stop the pool; partial refinement is fine.
					return err
				}
				o.logger().Error("detail extraction failed", "url", rec.SourceURL, "error", err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil && jobsift.ErrorCode(err) != jobsift.EQUOTA {
		return err
	}
	return nil
}

// extractDetail refines a single record. The record is owned by its
// goroutine; no cross-record state is shared.
func (o *Orchestrator) extractDetail(ctx context.Context, provider jobsift.Provider, rec *jobsift.Record, fetcher jobsift.PageFetcher) error {
	html, err := fetcher.Fetch(ctx, rec.SourceURL)
	if err != nil {
		return err
	}

	content, err := o.Reducer.ReduceDetail(html, o.detailBudget())
	if err != nil {
		return err
	}

	raw, err := o.Invoker.Invoke(ctx, func(ctx context.Context) (string, error) {
		return provider.ExtractDetail(ctx, rec, content)
	})
	if err != nil {
		return err
	}

	rec.ApplyDetail(recovery.ParseDetail(raw))
	if o.Seen != nil {
		o.Seen.Add(rec.SourceURL)
	}
	return nil
}

func (o *Orchestrator) detailBudget() int {
	if o.DetailMaxUnits == 0 {
		return pack.DefaultMaxChunkUnits
	}
	return o.DetailMaxUnits
}

func (o *Orchestrator) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}
