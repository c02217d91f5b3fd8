package goquery_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/jobsift/jobsift"
	"github.com/jobsift/jobsift/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitter_Split(t *testing.T) {
	t.Parallel()

	t.Run("ImplementsSplitter", func(t *testing.T) {
		t.Parallel()
		var _ jobsift.Splitter = (*goquery.Splitter)(nil)
	})

	t.Run("SplitsAtChildBoundaries", func(t *testing.T) {
		t.Parallel()
		s := &goquery.Splitter{}

		// Each row is 25 units; a 60-unit budget fits two rows per piece.
		row := strings.Repeat("x", 100)
		f := jobsift.Fragment{HTML: `<ul>` +
			`<li>` + row + `</li>` +
			`<li>` + row + `</li>` +
			`<li>` + row + `</li>` +
			`<li>` + row + `</li>` +
			`<li>` + row + `</li>` +
			`</ul>`}

		pieces, err := s.Split(f, 60)
		require.NoError(t, err)
		require.Len(t, pieces, 3)
		for _, p := range pieces {
			assert.LessOrEqual(t, jobsift.EstimateSize(p), 60)
		}
	})

	t.Run("SmallFragmentIsOnePiece", func(t *testing.T) {
		t.Parallel()
		s := &goquery.Splitter{}

		pieces, err := s.Split(jobsift.Fragment{Text: "short listing text"}, 100)
		require.NoError(t, err)
		require.Len(t, pieces, 1)
		assert.Equal(t, "short listing text", pieces[0])
	})

	t.Run("UnstructuredTextSlicedWithOverlap", func(t *testing.T) {
		t.Parallel()
		s := &goquery.Splitter{}

		var b strings.Builder
		for i := 0; i < 100; i++ {
			fmt.Fprintf(&b, "%04d-token ", i)
		}
		text := strings.TrimSpace(b.String()) // ~275 units

		pieces, err := s.Split(jobsift.Fragment{Text: text}, 100)
		require.NoError(t, err)
		require.Greater(t, len(pieces), 1)

		for _, p := range pieces {
			assert.LessOrEqual(t, jobsift.EstimateSize(p), 100)
		}

		// Adjacent slices share a 50-unit overlap region.
		first, second := pieces[0], pieces[1]
		tail := first[len(first)-50*jobsift.CharsPerSizeUnit:]
		assert.True(t, strings.HasPrefix(second, tail))
	})

	t.Run("OversizedChildSlicedAlone", func(t *testing.T) {
		t.Parallel()
		s := &goquery.Splitter{}

		big := strings.Repeat("y", 1200) // 300 units, over a 100-unit budget
		f := jobsift.Fragment{HTML: `<div>` +
			`<p>small intro paragraph text</p>` +
			`<p>` + big + `</p>` +
			`</div>`}

		pieces, err := s.Split(f, 100)
		require.NoError(t, err)
		require.Greater(t, len(pieces), 2)
		for _, p := range pieces {
			assert.LessOrEqual(t, jobsift.EstimateSize(p), 100)
		}
	})

	t.Run("NonPositiveBudgetRejected", func(t *testing.T) {
		t.Parallel()
		s := &goquery.Splitter{}

		_, err := s.Split(jobsift.Fragment{Text: "anything"}, 0)
		require.Error(t, err)
		assert.Equal(t, jobsift.EINVALID, jobsift.ErrorCode(err))
	})
}
