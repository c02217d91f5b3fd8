package bloom_test

import (
	"fmt"
	"testing"

	"github.com/jobsift/jobsift/bloom"
	"github.com/stretchr/testify/assert"
)

func TestFilter_AddAndSeen(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	assert.False(t, f.Seen("https://careers.acme.example/jobs/1"))

	f.Add("https://careers.acme.example/jobs/1")

	assert.True(t, f.Seen("https://careers.acme.example/jobs/1"))
	assert.False(t, f.Seen("https://careers.acme.example/jobs/2"))
}

func TestFilter_AddIsIdempotent(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)
	url := "https://careers.acme.example/jobs/1"

	f.Add(url)
	countAfterFirst := f.EstimatedCount()

	f.Add(url)
	f.Add(url)

	assert.Equal(t, countAfterFirst, f.EstimatedCount())
	assert.True(t, f.Seen(url))
}

func TestFilter_FalsePositiveRate(t *testing.T) {
	t.Parallel()

	const (
		numItems   = 10000
		fpRate     = 0.01
		testProbes = 10000
	)

	f := bloom.NewFilter(numItems, fpRate)

	for i := range numItems {
		f.Add(fmt.Sprintf("https://careers.acme.example/jobs/%d", i))
	}

	falsePositives := 0
	for i := range testProbes {
		if f.Seen(fmt.Sprintf("https://other.example/jobs/%d", i)) {
			falsePositives++
		}
	}

	// Allow up to 2% to account for statistical variance.
	actualRate := float64(falsePositives) / float64(testProbes)
	assert.Less(t, actualRate, 0.02, "false positive rate %f exceeds 2%%", actualRate)
}
