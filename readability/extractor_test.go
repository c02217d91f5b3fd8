package readability_test

import (
	"testing"

	"github.com/jobsift/jobsift"
	"github.com/jobsift/jobsift/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_ExtractText(t *testing.T) {
	t.Parallel()

	t.Run("extracts main content text", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Careers</title></head>
<body>
<nav><a href="/">Home</a><a href="/jobs">Jobs</a></nav>
<article>
<h1>Open Positions</h1>
<p>We are hiring a Backend Developer for our Berlin office. The role
involves designing and operating payment services at scale, working
closely with the platform team.</p>
</article>
</body>
</html>`

		ext := readability.NewExtractor()
		text, err := ext.ExtractText(html)

		require.NoError(t, err)
		assert.Contains(t, text, "Backend Developer")
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		ext := readability.NewExtractor()
		_, err := ext.ExtractText("")

		require.Error(t, err)
		assert.Equal(t, jobsift.EINVALID, jobsift.ErrorCode(err))
	})
}
