package recovery

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/jobsift/jobsift"
)

// recordFields mirrors the JSON shape requested from providers.
// Null values decode to empty strings.
type recordFields struct {
	Title           string `json:"title"`
	Company         string `json:"company"`
	Location        string `json:"location"`
	Salary          string `json:"salary"`
	EmploymentType  string `json:"employmentType"`
	ExperienceLevel string `json:"experienceLevel"`
	SourceURL       string `json:"sourceUrl"`
	Description     string `json:"description"`
	Requirements    string `json:"requirements"`
	Benefits        string `json:"benefits"`
	Deadline        string `json:"deadline"`
}

// ParseRecords recovers a record list from a raw list-stage response.
// Source URLs are normalized against the site base URL; records failing
// validation (missing title, company or absolute URL) are dropped.
// ParseRecords never fails: unrecoverable input yields zero records.
func ParseRecords(raw string, site jobsift.Site) []*jobsift.Record {
	doc := ExtractValidJSON(raw)

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(doc), &items); err != nil {
		return nil
	}

	var recs []*jobsift.Record
	for _, item := range items {
		var f recordFields
		if err := json.Unmarshal(item, &f); err != nil {
			continue
		}

		rec := &jobsift.Record{
			Title:           strings.TrimSpace(f.Title),
			Company:         strings.TrimSpace(f.Company),
			Location:        strings.TrimSpace(f.Location),
			Salary:          strings.TrimSpace(f.Salary),
			EmploymentType:  strings.TrimSpace(f.EmploymentType),
			ExperienceLevel: strings.TrimSpace(f.ExperienceLevel),
			SourceURL:       jobsift.NormalizeURL(f.SourceURL, site.BaseURL),
			SourceSite:      site.ID,
		}
		if rec.SourceURL == "" {
			continue
		}
		if err := rec.Validate(); err != nil {
			continue
		}
		recs = append(recs, rec)
	}
	return recs
}

// ParseDetail recovers detail-stage fields from a raw object-shaped
// response. The result is a partial record suitable for
// Record.ApplyDetail; unrecoverable input yields an empty partial.
func ParseDetail(raw string) *jobsift.Record {
	doc := ExtractValidJSON(raw)

	var f recordFields
	if err := json.Unmarshal([]byte(doc), &f); err != nil {
		return &jobsift.Record{}
	}

	rec := &jobsift.Record{
		Location:     strings.TrimSpace(f.Location),
		Salary:       strings.TrimSpace(f.Salary),
		Description:  strings.TrimSpace(f.Description),
		Requirements: strings.TrimSpace(f.Requirements),
		Benefits:     strings.TrimSpace(f.Benefits),
	}
	if d := parseDeadline(f.Deadline); d != nil {
		rec.Deadline = d
	}
	return rec
}

// parseDeadline accepts YYYY-MM-DD deadlines and pins them to the end
// of that day.
func parseDeadline(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	day, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	t := day.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
	return &t
}
