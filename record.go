package jobsift

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Record is one extracted job posting. Records are created by the
// recovery parser from provider output, mutated only during the merge
// step, and immutable afterwards.
type Record struct {
	ID              string     `json:"id,omitempty"`
	Title           string     `json:"title"`
	Company         string     `json:"company"`
	Location        string     `json:"location,omitempty"`
	Salary          string     `json:"salary,omitempty"`
	EmploymentType  string     `json:"employmentType,omitempty"`
	ExperienceLevel string     `json:"experienceLevel,omitempty"`
	SourceURL       string     `json:"sourceUrl,omitempty"`
	Description     string     `json:"description,omitempty"`
	Requirements    string     `json:"requirements,omitempty"`
	Benefits        string     `json:"benefits,omitempty"`
	Deadline        *time.Time `json:"deadline,omitempty"`
	SourceSite      string     `json:"sourceSite,omitempty"`
	ExtractedAt     time.Time  `json:"extractedAt"`
}

// Validate returns an error if the record fails the emit invariant:
// non-empty title and company, and (for list-stage output) an absolute
// source URL. Records failing this are dropped before merge.
func (r *Record) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return Errorf(EINVALID, "record title required")
	}
	if strings.TrimSpace(r.Company) == "" {
		return Errorf(EINVALID, "record company required")
	}
	if r.SourceURL != "" && !strings.HasPrefix(r.SourceURL, "http://") && !strings.HasPrefix(r.SourceURL, "https://") {
		return Errorf(EINVALID, "record source URL must be absolute: %q", r.SourceURL)
	}
	return nil
}

// Key returns the dedup key for the record: the normalized source URL
// when present, otherwise a hash of the normalized (title, company)
// pair.
func (r *Record) Key() string {
	if u := strings.TrimSpace(r.SourceURL); u != "" {
		return u
	}
	norm := collapseSpace(strings.ToLower(r.Title)) + "\x00" + collapseSpace(strings.ToLower(r.Company))
	return fmt.Sprintf("tc:%016x", xxhash.Sum64String(norm))
}

// ApplyDetail merges fields from a detail-stage extraction into the
// record. Title and company are never overwritten. Description,
// requirements and benefits are filled only when currently empty.
// Salary and location are replaced only when the new value is strictly
// longer (more specific). A deadline is filled when absent.
func (r *Record) ApplyDetail(detail *Record) {
	if detail == nil {
		return
	}
	fillIfEmpty(&r.Description, detail.Description)
	fillIfEmpty(&r.Requirements, detail.Requirements)
	fillIfEmpty(&r.Benefits, detail.Benefits)
	replaceIfLonger(&r.Salary, detail.Salary)
	replaceIfLonger(&r.Location, detail.Location)
	if r.Deadline == nil && detail.Deadline != nil {
		d := *detail.Deadline
		r.Deadline = &d
	}
}

func fillIfEmpty(dst *string, v string) {
	if strings.TrimSpace(*dst) == "" && strings.TrimSpace(v) != "" {
		*dst = v
	}
}

func replaceIfLonger(dst *string, v string) {
	if strings.TrimSpace(v) != "" && len(v) > len(*dst) {
		*dst = v
	}
}

// Dedupe removes duplicate records by key, keeping the first-seen
// record for each key and preserving input order. Dedupe is
// idempotent: applying it twice yields the same result as once.
func Dedupe(recs []*Record) []*Record {
	seen := make(map[string]bool, len(recs))
	out := make([]*Record, 0, len(recs))
	for _, r := range recs {
		if r == nil {
			continue
		}
		key := r.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	return out
}

// NormalizeURL resolves a possibly relative URL against a site base URL
// and strips the fragment. Returns an empty string when the URL cannot
// be normalized into an absolute http(s) URL.
func NormalizeURL(raw, base string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	ref, err := url.Parse(raw)
	if err != nil {
		return ""
	}

	if !ref.IsAbs() {
		if base == "" {
			return ""
		}
		b, err := url.Parse(base)
		if err != nil {
			return ""
		}
		ref = b.ResolveReference(ref)
	}

	if ref.Scheme != "http" && ref.Scheme != "https" {
		return ""
	}

	ref.Fragment = ""
	return ref.String()
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
