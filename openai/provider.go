// Package openai implements an extraction provider backed by
// OpenAI-compatible chat completion APIs.
package openai

import (
	"context"
	"strings"

	"github.com/jobsift/jobsift"
	openai "github.com/sashabaranov/go-openai"
)

// Model is the default chat model used for extraction calls.
const Model = openai.GPT4oMini

// modelWeight reflects observed extraction quality relative to other
// providers and feeds the default confidence heuristic.
const modelWeight = 0.85

const (
	listTemperature   = float32(0.1)
	detailTemperature = float32(0.05)
)

// Client is the minimal chat completion surface the provider needs.
// Any OpenAI-compatible backend can be adapted to it.
type Client interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Ensure Provider implements jobsift.Provider at compile time.
var _ jobsift.Provider = (*Provider)(nil)

// Provider implements jobsift.Provider using chat completions.
type Provider struct {
	client Client
	model  string
	score  jobsift.Scorer
}

// NewProvider creates a new Provider. An empty model selects the
// package default; a nil client yields a provider that reports itself
// unavailable.
func NewProvider(client Client, model string, sites *jobsift.SiteRegistry) *Provider {
	if model == "" {
		model = Model
	}
	return &Provider{
		client: client,
		model:  model,
		score:  jobsift.NewDefaultScorer(modelWeight, sites),
	}
}

// ID returns the provider identifier.
func (p *Provider) ID() string {
	return "openai"
}

// Available reports whether the provider has a configured client.
func (p *Provider) Available(_ context.Context) bool {
	return p.client != nil
}

// Confidence estimates extraction quality for the document.
func (p *Provider) Confidence(doc *jobsift.RawDocument) float64 {
	return p.score(doc)
}

// ExtractList asks the model to extract a JSON array of postings from
// one listing chunk.
func (p *Provider) ExtractList(ctx context.Context, chunk jobsift.Chunk, site jobsift.Site) (string, error) {
	if strings.TrimSpace(chunk.Text) == "" {
		return "", jobsift.Errorf(jobsift.EINVALID, "chunk text required")
	}
	prompt := jobsift.BuildListPrompt(site, chunk.Text)
	return p.complete(ctx, jobsift.ListSystemPrompt, prompt, listTemperature)
}

// ExtractDetail asks the model to extract detail fields for a known
// posting from its detail page content.
func (p *Provider) ExtractDetail(ctx context.Context, rec *jobsift.Record, content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", jobsift.Errorf(jobsift.EINVALID, "detail content required")
	}
	prompt := jobsift.BuildDetailPrompt(rec, content)
	return p.complete(ctx, jobsift.DetailSystemPrompt, prompt, detailTemperature)
}

func (p *Provider) complete(ctx context.Context, system, prompt string, temperature float32) (string, error) {
	if p.client == nil {
		return "", jobsift.Errorf(jobsift.EUNAVAILABLE, "openai client not configured")
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: temperature,
		N:           1,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", jobsift.Errorf(jobsift.EINTERNAL, "openai returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
