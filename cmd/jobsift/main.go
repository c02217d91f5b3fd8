package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/jobsift/jobsift"
	"github.com/jobsift/jobsift/bloom"
	"github.com/jobsift/jobsift/extract"
	"github.com/jobsift/jobsift/fs"
	"github.com/jobsift/jobsift/gemini"
	"github.com/jobsift/jobsift/goquery"
	"github.com/jobsift/jobsift/htmltomarkdown"
	jobsifthttp "github.com/jobsift/jobsift/http"
	"github.com/jobsift/jobsift/invoke"
	jobsiftopenai "github.com/jobsift/jobsift/openai"
	"github.com/jobsift/jobsift/pack"
	jobslog "github.com/jobsift/jobsift/slog"
	"github.com/jobsift/jobsift/trafilatura"
	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Sites available to commands. Populated with defaults; tests may
	// register additional sites before calling Run().
	Sites *jobsift.SiteRegistry
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Sites: jobsift.NewSiteRegistry(jobsift.DefaultFallbackSite()),
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Sites:  m.Sites,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("jobsift"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'jobsift --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	providers, err := buildProviders(ctx, m.Sites, deps.Logger)
	if err != nil {
		return err
	}
	deps.Registry = extract.NewRegistry(cli.Extract.Provider, deps.Logger, providers...)

	if cmd == "extract" {
		if cli.Extract.BaseURL != "" {
			site, _ := m.Sites.Get(cli.Extract.Site)
			site.BaseURL = cli.Extract.BaseURL
			m.Sites.Register(site)
		}

		converter := htmltomarkdown.NewConverter()
		reducer := &goquery.Reducer{
			Sites:     m.Sites,
			Converter: converter,
			Fallback:  trafilatura.NewExtractor(),
		}

		packer := &pack.Packer{
			MaxUnits:  cli.Extract.ChunkUnits,
			Estimator: buildEstimator(stderr),
			Splitter:  &goquery.Splitter{Converter: converter},
			Logger:    deps.Logger,
		}

		invoker := invoke.New(invoke.NewQuota(cli.Extract.Quota), invoke.Options{
			Logger: deps.Logger,
		})

		var sink jobsift.RecordSink
		if cli.Extract.Out != "" {
			sink = fs.NewSink(cli.Extract.Out)
		}

		deps.Orchestrator = &extract.Orchestrator{
			Reducer:           reducer,
			Packer:            packer,
			Registry:          deps.Registry,
			Invoker:           invoker,
			Sites:             m.Sites,
			Sink:              sink,
			Seen:              bloom.NewFilter(100000, 0.01),
			DetailConcurrency: cli.Extract.Concurrency,
			DetailMaxUnits:    pack.DefaultMaxChunkUnits,
			Logger:            deps.Logger,
		}

		if cli.Extract.Details {
			deps.Fetcher = jobslog.NewLoggingFetcher(jobsifthttp.NewFetcher(), deps.Logger)
		}
	}

	return kongCtx.Run(deps)
}

// buildProviders constructs every provider whose credentials are
// present, in priority order.
func buildProviders(ctx context.Context, sites *jobsift.SiteRegistry, logger *slog.Logger) ([]jobsift.Provider, error) {
	var providers []jobsift.Provider

	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		providers = append(providers, jobslog.NewLoggingProvider(gemini.NewProvider(client, sites), logger))
	}

	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		client := openai.NewClient(apiKey)
		providers = append(providers, jobslog.NewLoggingProvider(jobsiftopenai.NewProvider(client, "", sites), logger))
	}

	return providers, nil
}

// buildEstimator prefers the local Gemini tokenizer so chunk budgets
// track real token counts, falling back to the character heuristic.
func buildEstimator(stderr io.Writer) jobsift.SizeEstimator {
	est, err := gemini.NewSizeEstimator(gemini.Model)
	if err != nil {
		fmt.Fprintln(stderr, "tokenizer unavailable, using character-based size estimates")
		return jobsift.SizeEstimatorFunc(jobsift.EstimateSize)
	}
	return est
}
