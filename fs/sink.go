// Package fs provides file-based record output.
package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jobsift/jobsift"
)

// Ensure Sink implements jobsift.RecordSink at compile time.
var _ jobsift.RecordSink = (*Sink)(nil)

// Sink appends extracted records as JSON Lines, one file per site.
// Safe for concurrent use.
type Sink struct {
	mu      sync.Mutex
	baseDir string
}

// NewSink creates a new Sink writing under the given base directory.
func NewSink(baseDir string) *Sink {
	return &Sink{baseDir: baseDir}
}

// EmitRecords appends the records to the site's JSONL file.
func (s *Sink) EmitRecords(_ context.Context, site jobsift.Site, recs []*jobsift.Record) error {
	if len(recs) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return err
	}

	path := filepath.Join(s.baseDir, siteFileName(site.ID))
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	for _, rec := range recs {
		if err := enc.Encode(rec); err != nil {
			return err
		}
	}
	return nil
}

// siteFileName maps a site ID to a safe file name. Empty or unsafe IDs
// collapse to a generic bucket.
func siteFileName(siteID string) string {
	id := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, siteID)
	id = strings.Trim(id, "-")
	if id == "" {
		id = "records"
	}
	return id + ".jsonl"
}
