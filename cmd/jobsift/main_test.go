package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jobsift/jobsift"
	"github.com/jobsift/jobsift/extract"
	"github.com/jobsift/jobsift/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_NoCommand(t *testing.T) {
	t.Parallel()

	m := NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), nil, &stdout, &stderr)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
}

func TestRun_Help(t *testing.T) {
	t.Parallel()

	m := NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--help"}, &stdout, &stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "extract")
	assert.Contains(t, stdout.String(), "providers")
}

func TestRun_ProvidersWithoutCredentials(t *testing.T) {
	// Not parallel: manipulates process environment.
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")

	m := NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"providers"}, &stdout, &stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "No providers configured")
}

func TestRun_Sites(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")

	m := NewMain()
	m.Sites.Register(jobsift.Site{ID: "acme-careers", Name: "Acme Careers", BaseURL: "https://careers.acme.example"})
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"sites"}, &stdout, &stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "acme-careers")
	assert.Contains(t, stdout.String(), "https://careers.acme.example")
}

func testDeps(t *testing.T, stdout, stderr io.Writer, provider jobsift.Provider) *Dependencies {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sites := jobsift.NewSiteRegistry(jobsift.DefaultFallbackSite())
	sites.Register(jobsift.Site{
		ID:        "acme-careers",
		Name:      "Acme Careers",
		BaseURL:   "https://careers.acme.example",
		Selectors: []string{".job-card"},
	})
	registry := extract.NewRegistry("", logger, provider)

	return &Dependencies{
		Ctx:      context.Background(),
		Stdout:   stdout,
		Stderr:   stderr,
		Logger:   logger,
		Sites:    sites,
		Registry: registry,
		Orchestrator: &extract.Orchestrator{
			Reducer:  &goqueryReducer{sites: sites},
			Packer:   &mock.Packer{PackFn: passthroughPack},
			Registry: registry,
			Invoker:  &mock.Invoker{},
			Sites:    sites,
			Logger:   logger,
		},
	}
}

// goqueryReducer keeps the command tests free of provider and network
// dependencies while exercising the real fragment flow shape.
type goqueryReducer struct {
	sites *jobsift.SiteRegistry
}

func (r *goqueryReducer) Reduce(doc *jobsift.RawDocument) ([]jobsift.Fragment, error) {
	return []jobsift.Fragment{{Text: doc.HTML}}, nil
}

func (r *goqueryReducer) ReduceDetail(html string, maxUnits int) (string, error) {
	return html, nil
}

func passthroughPack(fragments []jobsift.Fragment) ([]jobsift.Chunk, error) {
	chunks := make([]jobsift.Chunk, len(fragments))
	for i, f := range fragments {
		chunks[i] = jobsift.Chunk{Index: i, Total: len(fragments), Text: f.Text}
	}
	return chunks, nil
}

func TestExtractCmd_Run(t *testing.T) {
	t.Parallel()

	provider := &mock.Provider{
		IDFn: func() string { return "gemini" },
		ExtractListFn: func(ctx context.Context, chunk jobsift.Chunk, site jobsift.Site) (string, error) {
			return `[{"title":"Backend Developer","company":"Acme","sourceUrl":"/jobs/1"}]`, nil
		},
	}

	var stdout, stderr bytes.Buffer
	deps := testDeps(t, &stdout, &stderr, provider)

	file := filepath.Join(t.TempDir(), "listing.html")
	require.NoError(t, os.WriteFile(file, []byte("<html><body>listing</body></html>"), 0644))

	cmd := &ExtractCmd{Site: "acme-careers", File: file, URL: "https://careers.acme.example/jobs"}
	require.NoError(t, cmd.Run(deps))

	assert.Contains(t, stdout.String(), `"title":"Backend Developer"`)
	assert.Contains(t, stdout.String(), "https://careers.acme.example/jobs/1")
	assert.Contains(t, stderr.String(), "1 records from 1/1 chunks")
}

func TestExtractCmd_Run_QuotaExhaustedNote(t *testing.T) {
	t.Parallel()

	provider := &mock.Provider{
		ExtractListFn: func(ctx context.Context, chunk jobsift.Chunk, site jobsift.Site) (string, error) {
			return "", nil
		},
	}

	var stdout, stderr bytes.Buffer
	deps := testDeps(t, &stdout, &stderr, provider)
	deps.Orchestrator.Invoker = &mock.Invoker{
		InvokeFn: func(ctx context.Context, call jobsift.CallFunc) (string, error) {
			return "", jobsift.Errorf(jobsift.EQUOTA, "daily provider call quota exhausted")
		},
	}

	file := filepath.Join(t.TempDir(), "listing.html")
	require.NoError(t, os.WriteFile(file, []byte("<html><body>listing</body></html>"), 0644))

	cmd := &ExtractCmd{Site: "acme-careers", File: file}
	require.NoError(t, cmd.Run(deps))

	assert.Contains(t, stderr.String(), "quota exhausted early")
	assert.Equal(t, "", strings.TrimSpace(stdout.String()))
}

func TestProvidersCmd_Run(t *testing.T) {
	t.Parallel()

	provider := &mock.Provider{
		IDFn:        func() string { return "gemini" },
		AvailableFn: func(ctx context.Context) bool { return true },
	}

	var stdout, stderr bytes.Buffer
	deps := testDeps(t, &stdout, &stderr, provider)

	cmd := &ProvidersCmd{}
	require.NoError(t, cmd.Run(deps))

	assert.Contains(t, stdout.String(), "gemini")
	assert.Contains(t, stdout.String(), "available")
}
