package main

import (
	"fmt"
	"sort"
)

// Run executes the sites command.
func (c *SitesCmd) Run(deps *Dependencies) error {
	ids := deps.Sites.List()
	if len(ids) == 0 {
		fmt.Fprintln(deps.Stdout, "No sites registered; unknown site IDs use the generic fallback configuration.")
		return nil
	}
	sort.Strings(ids)

	for _, id := range ids {
		site, _ := deps.Sites.Get(id)
		fmt.Fprintf(deps.Stdout, "%s\t%s\t%s\n", site.ID, site.Name, site.BaseURL)
	}
	return nil
}
