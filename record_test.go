package jobsift_test

import (
	"testing"
	"time"

	"github.com/jobsift/jobsift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_Validate(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		rec := &jobsift.Record{Title: "Backend Developer", Company: "Acme", SourceURL: "https://careers.acme.example/jobs/1"}
		assert.NoError(t, rec.Validate())
	})

	t.Run("missing title", func(t *testing.T) {
		t.Parallel()
		rec := &jobsift.Record{Title: "  ", Company: "Acme"}
		err := rec.Validate()
		require.Error(t, err)
		assert.Equal(t, jobsift.EINVALID, jobsift.ErrorCode(err))
	})

	t.Run("missing company", func(t *testing.T) {
		t.Parallel()
		rec := &jobsift.Record{Title: "Backend Developer"}
		err := rec.Validate()
		require.Error(t, err)
		assert.Equal(t, jobsift.EINVALID, jobsift.ErrorCode(err))
	})

	t.Run("relative URL rejected", func(t *testing.T) {
		t.Parallel()
		rec := &jobsift.Record{Title: "Backend Developer", Company: "Acme", SourceURL: "/jobs/1"}
		err := rec.Validate()
		require.Error(t, err)
		assert.Equal(t, jobsift.EINVALID, jobsift.ErrorCode(err))
	})
}

func TestRecord_Key(t *testing.T) {
	t.Parallel()

	t.Run("URL wins when present", func(t *testing.T) {
		t.Parallel()
		a := &jobsift.Record{Title: "Backend Developer", Company: "Acme", SourceURL: "https://careers.acme.example/jobs/1"}
		b := &jobsift.Record{Title: "Completely Different", Company: "Other", SourceURL: "https://careers.acme.example/jobs/1"}
		assert.Equal(t, a.Key(), b.Key())
	})

	t.Run("title and company fallback is case and spacing insensitive", func(t *testing.T) {
		t.Parallel()
		a := &jobsift.Record{Title: "Backend Developer", Company: "Acme"}
		b := &jobsift.Record{Title: "backend   developer", Company: "ACME"}
		c := &jobsift.Record{Title: "Frontend Developer", Company: "Acme"}
		assert.Equal(t, a.Key(), b.Key())
		assert.NotEqual(t, a.Key(), c.Key())
	})
}

func TestRecord_ApplyDetail(t *testing.T) {
	t.Parallel()

	t.Run("fills empty narrative fields only", func(t *testing.T) {
		t.Parallel()
		rec := &jobsift.Record{
			Title:       "Backend Developer",
			Company:     "Acme",
			Description: "already set",
		}
		rec.ApplyDetail(&jobsift.Record{
			Description:  "new description",
			Requirements: "3+ years of Go",
			Benefits:     "Insurance",
		})
		assert.Equal(t, "already set", rec.Description)
		assert.Equal(t, "3+ years of Go", rec.Requirements)
		assert.Equal(t, "Insurance", rec.Benefits)
	})

	t.Run("replaces salary and location only when longer", func(t *testing.T) {
		t.Parallel()
		rec := &jobsift.Record{Title: "Backend Developer", Company: "Acme", Salary: "$140k-$180k", Location: "Berlin"}
		rec.ApplyDetail(&jobsift.Record{Salary: "$150k", Location: "Berlin, Germany (hybrid)"})
		assert.Equal(t, "$140k-$180k", rec.Salary)
		assert.Equal(t, "Berlin, Germany (hybrid)", rec.Location)
	})

	t.Run("title and company never overwritten", func(t *testing.T) {
		t.Parallel()
		rec := &jobsift.Record{Title: "Backend Developer", Company: "Acme"}
		rec.ApplyDetail(&jobsift.Record{Title: "Other", Company: "Other Corp"})
		assert.Equal(t, "Backend Developer", rec.Title)
		assert.Equal(t, "Acme", rec.Company)
	})

	t.Run("deadline filled when absent", func(t *testing.T) {
		t.Parallel()
		deadline := time.Date(2026, 12, 31, 23, 59, 59, 0, time.UTC)
		rec := &jobsift.Record{Title: "Backend Developer", Company: "Acme"}
		rec.ApplyDetail(&jobsift.Record{Deadline: &deadline})
		require.NotNil(t, rec.Deadline)
		assert.True(t, rec.Deadline.Equal(deadline))

		later := deadline.AddDate(1, 0, 0)
		rec.ApplyDetail(&jobsift.Record{Deadline: &later})
		assert.True(t, rec.Deadline.Equal(deadline))
	})

	t.Run("nil detail is a no-op", func(t *testing.T) {
		t.Parallel()
		rec := &jobsift.Record{Title: "Backend Developer", Company: "Acme"}
		rec.ApplyDetail(nil)
		assert.Equal(t, "Backend Developer", rec.Title)
	})
}

func TestDedupe(t *testing.T) {
	t.Parallel()

	t.Run("first seen wins and order is preserved", func(t *testing.T) {
		t.Parallel()
		recs := []*jobsift.Record{
			{Title: "Backend Developer", Company: "Acme", SourceURL: "https://a.example/1", Salary: "known"},
			{Title: "Frontend Developer", Company: "Acme", SourceURL: "https://a.example/2"},
			{Title: "Backend Developer", Company: "Acme", SourceURL: "https://a.example/1"},
		}
		out := jobsift.Dedupe(recs)
		require.Len(t, out, 2)
		assert.Equal(t, "known", out[0].Salary)
		assert.Equal(t, "https://a.example/2", out[1].SourceURL)
	})

	t.Run("idempotent", func(t *testing.T) {
		t.Parallel()
		recs := []*jobsift.Record{
			{Title: "Backend Developer", Company: "Acme"},
			{Title: "backend developer", Company: "ACME"},
		}
		once := jobsift.Dedupe(recs)
		twice := jobsift.Dedupe(once)
		assert.Equal(t, once, twice)
		assert.Len(t, twice, 1)
	})

	t.Run("nil records skipped", func(t *testing.T) {
		t.Parallel()
		out := jobsift.Dedupe([]*jobsift.Record{nil, {Title: "A", Company: "B"}})
		assert.Len(t, out, 1)
	})
}

func TestNormalizeURL(t *testing.T) {
	t.Parallel()

	base := "https://careers.acme.example/jobs"

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"absolute passthrough", "https://careers.acme.example/jobs/1", "https://careers.acme.example/jobs/1"},
		{"relative resolved", "/jobs/1", "https://careers.acme.example/jobs/1"},
		{"fragment stripped", "https://careers.acme.example/jobs/1#apply", "https://careers.acme.example/jobs/1"},
		{"empty", "", ""},
		{"whitespace", "   ", ""},
		{"javascript scheme rejected", "javascript:void(0)", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, jobsift.NormalizeURL(tt.raw, base))
		})
	}

	t.Run("relative with empty base", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", jobsift.NormalizeURL("/jobs/1", ""))
	})
}
