// Package gemini implements an extraction provider backed by Google
// Gemini.
package gemini

import (
	"context"
	"strings"

	"github.com/jobsift/jobsift"
	"google.golang.org/genai"
)

// Model is the Gemini model used for extraction calls.
const Model = "gemini-2.5-flash"

// modelWeight reflects observed extraction quality relative to other
// providers and feeds the default confidence heuristic.
const modelWeight = 0.88

// List extraction tolerates slight variation; detail extraction is
// pinned colder because the output merges into existing records.
const (
	listTemperature   = float32(0.1)
	detailTemperature = float32(0.05)
)

const maxOutputTokens = int32(8192)

// Ensure Provider implements jobsift.Provider at compile time.
var _ jobsift.Provider = (*Provider)(nil)

// Provider implements jobsift.Provider using Google Gemini.
type Provider struct {
	client *genai.Client
	score  jobsift.Scorer
}

// NewProvider creates a new Provider. A nil client yields a provider
// that reports itself unavailable.
func NewProvider(client *genai.Client, sites *jobsift.SiteRegistry) *Provider {
	return &Provider{
		client: client,
		score:  jobsift.NewDefaultScorer(modelWeight, sites),
	}
}

// ID returns the provider identifier.
func (p *Provider) ID() string {
	return "gemini"
}

// Available reports whether the provider has a configured client.
func (p *Provider) Available(_ context.Context) bool {
	return p.client != nil
}

// Confidence estimates extraction quality for the document.
func (p *Provider) Confidence(doc *jobsift.RawDocument) float64 {
	return p.score(doc)
}

// ExtractList asks Gemini to extract a JSON array of postings from one
// listing chunk.
func (p *Provider) ExtractList(ctx context.Context, chunk jobsift.Chunk, site jobsift.Site) (string, error) {
	if strings.TrimSpace(chunk.Text) == "" {
		return "", jobsift.Errorf(jobsift.EINVALID, "chunk text required")
	}
	prompt := jobsift.BuildListPrompt(site, chunk.Text)
	return p.generate(ctx, jobsift.ListSystemPrompt, prompt, listTemperature)
}

// ExtractDetail asks Gemini to extract detail fields for a known
// posting from its detail page content.
func (p *Provider) ExtractDetail(ctx context.Context, rec *jobsift.Record, content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", jobsift.Errorf(jobsift.EINVALID, "detail content required")
	}
	prompt := jobsift.BuildDetailPrompt(rec, content)
	return p.generate(ctx, jobsift.DetailSystemPrompt, prompt, detailTemperature)
}

func (p *Provider) generate(ctx context.Context, system, prompt string, temperature float32) (string, error) {
	if p.client == nil {
		return "", jobsift.Errorf(jobsift.EUNAVAILABLE, "gemini client not configured")
	}

	result, err := p.client.Models.GenerateContent(ctx, Model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		BuildConfig(system, temperature),
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", jobsift.Errorf(jobsift.EINTERNAL, "gemini returned nil result")
	}
	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig(system string, temperature float32) *genai.GenerateContentConfig {
	temp := temperature
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		},
		Temperature:     &temp,
		MaxOutputTokens: maxOutputTokens,
	}
}
