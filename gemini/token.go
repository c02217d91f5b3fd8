package gemini

import (
	"github.com/jobsift/jobsift"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

var _ jobsift.SizeEstimator = (*SizeEstimator)(nil)

// SizeEstimator measures text in Gemini tokens using the local
// tokenizer, so chunk budgets track what the model actually sees.
// Texts the tokenizer cannot count fall back to the character
// heuristic.
type SizeEstimator struct {
	tok *tokenizer.LocalTokenizer
}

// NewSizeEstimator creates a SizeEstimator for the given model.
func NewSizeEstimator(model string) (*SizeEstimator, error) {
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, err
	}
	return &SizeEstimator{tok: tok}, nil
}

// Estimate returns the token count for the text.
func (e *SizeEstimator) Estimate(text string) int {
	if text == "" {
		return 0
	}

	contents := []*genai.Content{
		genai.NewContentFromText(text, "user"),
	}
	result, err := e.tok.CountTokens(contents, nil)
	if err != nil {
		return jobsift.EstimateSize(text)
	}
	return int(result.TotalTokens)
}
