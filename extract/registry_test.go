package extract_test

import (
	"context"
	"testing"

	"github.com/jobsift/jobsift"
	"github.com/jobsift/jobsift/extract"
	"github.com/jobsift/jobsift/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func namedProvider(id string, available bool, confidence float64) *mock.Provider {
	return &mock.Provider{
		IDFn:         func() string { return id },
		AvailableFn:  func(ctx context.Context) bool { return available },
		ConfidenceFn: func(doc *jobsift.RawDocument) float64 { return confidence },
	}
}

func TestRegistry_Default(t *testing.T) {
	t.Parallel()

	t.Run("ConfiguredProviderWins", func(t *testing.T) {
		t.Parallel()
		r := extract.NewRegistry("openai", discardLogger(),
			namedProvider("gemini", true, 0.9),
			namedProvider("openai", true, 0.5),
		)
		p, err := r.Default(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "openai", p.ID())
	})

	t.Run("UnavailableConfiguredFallsThrough", func(t *testing.T) {
		t.Parallel()
		r := extract.NewRegistry("openai", discardLogger(),
			namedProvider("gemini", true, 0.9),
			namedProvider("openai", false, 0.5),
		)
		p, err := r.Default(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "gemini", p.ID())
	})

	t.Run("NoneAvailable", func(t *testing.T) {
		t.Parallel()
		r := extract.NewRegistry("", discardLogger(),
			namedProvider("gemini", false, 0.9),
		)
		_, err := r.Default(context.Background())
		require.Error(t, err)
		assert.Equal(t, jobsift.EUNAVAILABLE, jobsift.ErrorCode(err))
	})
}

func TestRegistry_Best(t *testing.T) {
	t.Parallel()

	doc := &jobsift.RawDocument{SiteID: "acme-careers", HTML: "<html></html>"}

	t.Run("HighestConfidenceWins", func(t *testing.T) {
		t.Parallel()
		r := extract.NewRegistry("", discardLogger(),
			namedProvider("gemini", true, 0.6),
			namedProvider("openai", true, 0.8),
		)
		p, err := r.Best(context.Background(), doc)
		require.NoError(t, err)
		assert.Equal(t, "openai", p.ID())
	})

	t.Run("TieBrokenByPriorityOrder", func(t *testing.T) {
		t.Parallel()
		r := extract.NewRegistry("", discardLogger(),
			namedProvider("gemini", true, 0.7),
			namedProvider("openai", true, 0.7),
		)
		p, err := r.Best(context.Background(), doc)
		require.NoError(t, err)
		assert.Equal(t, "gemini", p.ID())
	})

	t.Run("UnavailableProvidersExcluded", func(t *testing.T) {
		t.Parallel()
		r := extract.NewRegistry("", discardLogger(),
			namedProvider("gemini", false, 0.9),
			namedProvider("openai", true, 0.1),
		)
		p, err := r.Best(context.Background(), doc)
		require.NoError(t, err)
		assert.Equal(t, "openai", p.ID())
	})

	t.Run("PanickingScorerLosesButSurvives", func(t *testing.T) {
		t.Parallel()
		panicky := &mock.Provider{
			IDFn:        func() string { return "panicky" },
			AvailableFn: func(ctx context.Context) bool { return true },
			ConfidenceFn: func(doc *jobsift.RawDocument) float64 {
				panic("scorer bug")
			},
		}
		r := extract.NewRegistry("", discardLogger(),
			panicky,
			namedProvider("openai", true, 0.2),
		)
		p, err := r.Best(context.Background(), doc)
		require.NoError(t, err)
		assert.Equal(t, "openai", p.ID())

		// With no sibling the panicking provider still wins at score zero.
		r = extract.NewRegistry("", discardLogger(), panicky)
		p, err = r.Best(context.Background(), doc)
		require.NoError(t, err)
		assert.Equal(t, "panicky", p.ID())
	})

	t.Run("NegativeAndNaNScoresClampToZero", func(t *testing.T) {
		t.Parallel()
		r := extract.NewRegistry("", discardLogger(),
			namedProvider("gemini", true, -5),
			namedProvider("openai", true, 0.1),
		)
		p, err := r.Best(context.Background(), doc)
		require.NoError(t, err)
		assert.Equal(t, "openai", p.ID())
	})
}

func TestRegistry_Fallback(t *testing.T) {
	t.Parallel()

	r := extract.NewRegistry("", discardLogger(),
		namedProvider("gemini", true, 0.9),
		namedProvider("openai", true, 0.5),
	)

	p, err := r.Fallback(context.Background(), "gemini")
	require.NoError(t, err)
	assert.Equal(t, "openai", p.ID())

	_, err = r.Fallback(context.Background(), "openai")
	require.NoError(t, err)

	solo := extract.NewRegistry("", discardLogger(), namedProvider("gemini", true, 0.9))
	_, err = solo.Fallback(context.Background(), "gemini")
	require.Error(t, err)
	assert.Equal(t, jobsift.EUNAVAILABLE, jobsift.ErrorCode(err))
}
