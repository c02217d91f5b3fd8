// Package trafilatura implements whole-page text extraction using
// go-trafilatura.
package trafilatura

import (
	"strings"

	"github.com/jobsift/jobsift"
	"github.com/markusmobius/go-trafilatura"
)

// Ensure Extractor implements jobsift.FallbackExtractor at compile time.
var _ jobsift.FallbackExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to pull the main text out of pages the
// structural reducer could not match.
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

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(result.ContentText), nil
}
