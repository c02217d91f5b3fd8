package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/jobsift/jobsift"
	"github.com/jobsift/jobsift/extract"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx          context.Context
	Stdout       io.Writer
	Stderr       io.Writer
	Logger       *slog.Logger
	Sites        *jobsift.SiteRegistry
	Registry     jobsift.ProviderRegistry
	Orchestrator *extract.Orchestrator
	Fetcher      jobsift.PageFetcher
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Extract   ExtractCmd   `cmd:"" help:"Extract job postings from a listing page HTML file"`
	Providers ProvidersCmd `cmd:"" help:"List configured extraction providers"`
	Sites     SitesCmd     `cmd:"" help:"List registered sites"`

	Verbose bool `short:"v" help:"Enable debug logging"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	Site string `arg:"" help:"Site ID the page belongs to"`
	File string `arg:"" optional:"" help:"HTML file to process (defaults to stdin)"`

	URL         string `short:"u" help:"Source URL of the listing page"`
	BaseURL     string `help:"Base URL for resolving relative posting links"`
	Out         string `short:"o" help:"Directory for per-site JSONL output"`
	Details     bool   `short:"d" help:"Fetch and extract detail pages for discovered postings"`
	Provider    string `short:"p" help:"Preferred provider ID (gemini, openai)"`
	Quota       int    `default:"200" help:"Daily provider call ceiling (0 = unlimited)"`
	Concurrency int    `short:"c" default:"3" help:"Detail extraction worker limit"`
	ChunkUnits  int    `help:"Chunk size budget in tokens (0 = default)"`
}

// ProvidersCmd is the "providers" subcommand.
type ProvidersCmd struct{}

// SitesCmd is the "sites" subcommand.
type SitesCmd struct{}
