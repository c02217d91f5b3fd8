package jobsift_test

import (
	"testing"

	"github.com/jobsift/jobsift"
	"github.com/stretchr/testify/assert"
)

func TestNewDefaultScorer(t *testing.T) {
	t.Parallel()

	sites := jobsift.NewSiteRegistry(jobsift.DefaultFallbackSite())
	sites.Register(jobsift.Site{ID: "acme-careers", Weight: 0.9})
	score := jobsift.NewDefaultScorer(0.88, sites)

	t.Run("scores stay in the unit interval", func(t *testing.T) {
		t.Parallel()
		docs := []*jobsift.RawDocument{
			{SiteID: "acme-careers", HTML: `<div class="job-card">hiring now</div>`},
			{SiteID: "unknown", HTML: ""},
			{SiteID: "unknown", HTML: "plain text page with no markup at all"},
		}
		for _, doc := range docs {
			s := score(doc)
			assert.GreaterOrEqual(t, s, 0.0)
			assert.LessOrEqual(t, s, 1.0)
		}
	})

	t.Run("structured known site beats empty unknown page", func(t *testing.T) {
		t.Parallel()
		structured := score(&jobsift.RawDocument{SiteID: "acme-careers", HTML: `<div class="job-card">hiring now</div>`})
		empty := score(&jobsift.RawDocument{SiteID: "unknown", HTML: ""})
		assert.Greater(t, structured, empty)
	})

	t.Run("nil site registry uses default weight", func(t *testing.T) {
		t.Parallel()
		s := jobsift.NewDefaultScorer(0.88, nil)(&jobsift.RawDocument{HTML: "<div>job</div>"})
		assert.Greater(t, s, 0.0)
	})
}

func TestEstimateSize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, jobsift.EstimateSize(""))
	assert.Equal(t, 1, jobsift.EstimateSize("abc"))
	assert.Equal(t, 1, jobsift.EstimateSize("abcd"))
	assert.Equal(t, 2, jobsift.EstimateSize("abcde"))
}

func TestBuildListPrompt(t *testing.T) {
	t.Parallel()

	prompt := jobsift.BuildListPrompt(jobsift.Site{Name: "Acme Careers"}, "chunk content here")

	assert.Contains(t, prompt, "Acme Careers")
	assert.Contains(t, prompt, "chunk content here")
	assert.Contains(t, prompt, "JSON array")
	assert.Contains(t, prompt, "sourceUrl")
}

func TestBuildDetailPrompt(t *testing.T) {
	t.Parallel()

	rec := &jobsift.Record{Title: "Backend Developer", Company: "Acme"}
	prompt := jobsift.BuildDetailPrompt(rec, "detail content here")

	assert.Contains(t, prompt, "Backend Developer")
	assert.Contains(t, prompt, "Acme")
	assert.Contains(t, prompt, "detail content here")
	assert.Contains(t, prompt, "YYYY-MM-DD")
}
