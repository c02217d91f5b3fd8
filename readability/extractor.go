// Package readability implements whole-page text extraction using
// go-readability.
package readability

import (
	"strings"

	readability "github.com/go-shiori/go-readability"
	"github.com/jobsift/jobsift"
)

// Ensure Extractor implements jobsift.FallbackExtractor at compile time.
var _ jobsift.FallbackExtractor = (*Extractor)(nil)

// Extractor wraps go-readability to pull the main text out of pages
// the structural reducer could not match.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractText returns the main text content of the page.
func (e *Extractor) ExtractText(rawHTML string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", jobsift.Errorf(jobsift.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(article.TextContent), nil
}
