package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jobsift/jobsift"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	html, err := c.readInput(deps)
	if err != nil {
		return err
	}

	doc := &jobsift.RawDocument{
		SourceURL: c.URL,
		SiteID:    c.Site,
		HTML:      html,
		FetchedAt: time.Now().UTC(),
	}

	recs, summary, err := deps.Orchestrator.ExtractDocument(deps.Ctx, doc)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", jobsift.ErrorMessage(err))
		return err
	}

	if c.Details && len(recs) > 0 {
		if err := deps.Orchestrator.ExtractDetails(deps.Ctx, recs, deps.Fetcher); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", jobsift.ErrorMessage(err))
			return err
		}
	}

	enc := json.NewEncoder(deps.Stdout)
	for _, rec := range recs {
		if err := enc.Encode(rec); err != nil {
			return err
		}
	}

	fmt.Fprintf(deps.Stderr, "%d records from %d/%d chunks", summary.RecordsEmitted, summary.ChunksSucceeded, summary.ChunksAttempted)
	if summary.QuotaExhaustedEarly {
		fmt.Fprint(deps.Stderr, " (quota exhausted early, results are partial)")
	}
	fmt.Fprintln(deps.Stderr)
	return nil
}

// readInput loads the listing HTML from the file argument or stdin.
func (c *ExtractCmd) readInput(deps *Dependencies) (string, error) {
	if c.File == "" || c.File == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	data, err := os.ReadFile(c.File)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
