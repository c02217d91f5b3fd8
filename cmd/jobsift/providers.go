package main

import "fmt"

// Run executes the providers command.
func (c *ProvidersCmd) Run(deps *Dependencies) error {
	providers := deps.Registry.Providers()
	if len(providers) == 0 {
		fmt.Fprintln(deps.Stdout, "No providers configured. Set GEMINI_API_KEY or OPENAI_API_KEY.")
		return nil
	}

	for _, p := range providers {
		status := "unavailable"
		if p.Available(deps.Ctx) {
			status = "available"
		}
		fmt.Fprintf(deps.Stdout, "%s\t%s\n", p.ID(), status)
	}
	return nil
}
