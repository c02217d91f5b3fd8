package mock

import (
	"context"

	"github.com/jobsift/jobsift"
)

var _ jobsift.RecordSink = (*RecordSink)(nil)

// RecordSink is a mock implementation of jobsift.RecordSink.
type RecordSink struct {
	EmitRecordsFn func(ctx context.Context, site jobsift.Site, recs []*jobsift.Record) error
}

func (s *RecordSink) EmitRecords(ctx context.Context, site jobsift.Site, recs []*jobsift.Record) error {
	return s.EmitRecordsFn(ctx, site, recs)
}
