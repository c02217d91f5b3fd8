package mock

import "github.com/jobsift/jobsift"

var _ jobsift.Converter = (*Converter)(nil)

// Converter is a mock implementation of jobsift.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

var _ jobsift.FallbackExtractor = (*FallbackExtractor)(nil)

// FallbackExtractor is a mock implementation of jobsift.FallbackExtractor.
type FallbackExtractor struct {
	ExtractTextFn func(html string) (string, error)
}

func (e *FallbackExtractor) ExtractText(html string) (string, error) {
	return e.ExtractTextFn(html)
}
