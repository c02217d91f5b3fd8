package jobsift

import "strings"

// Site describes one listing site the pipeline knows how to process.
type Site struct {
	// ID is the stable site identifier used in RawDocument.SiteID.
	ID string

	// Name is the human-readable site name used in prompts.
	Name string

	// BaseURL is used to normalize relative source URLs returned by
	// the model into absolute ones.
	BaseURL string

	// Selectors are structural CSS selector sets tried in priority
	// order to isolate record-like blocks.
	Selectors []string

	// Keywords drive the keyword-density fallback scan when no
	// selector matches. Empty means the default domain keywords.
	Keywords []string

	// Weight is the site's confidence weight in [0, 1] used by the
	// default provider scorer. Zero means unknown site.
	Weight float64
}

// SiteRegistry holds the configured sites with a generic fallback for
// unknown site IDs.
type SiteRegistry struct {
	sites    map[string]Site
	fallback Site
}

// NewSiteRegistry creates a registry with the given fallback site
// configuration, used whenever a document's site ID is not registered.
func NewSiteRegistry(fallback Site) *SiteRegistry {
	return &SiteRegistry{
		sites:    make(map[string]Site),
		fallback: fallback,
	}
}

// Register adds or replaces a site configuration.
func (r *SiteRegistry) Register(site Site) {
	r.sites[site.ID] = site
}

// Get returns the site for the ID and whether it was registered.
// Unregistered IDs return the fallback configuration with the
// requested ID filled in.
func (r *SiteRegistry) Get(id string) (Site, bool) {
	if site, ok := r.sites[id]; ok {
		return site, true
	}
	site := r.fallback
	site.ID = id
	if site.Name == "" {
		site.Name = id
	}
	return site, false
}

// List returns the registered site IDs.
func (r *SiteRegistry) List() []string {
	ids := make([]string, 0, len(r.sites))
	for id := range r.sites {
		ids = append(ids, id)
	}
	return ids
}

// DefaultKeywords are the domain keywords used by the keyword-density
// fallback scan when a site does not configure its own.
func DefaultKeywords() []string {
	return []string{"hire", "hiring", "position", "recruit", "job", "career", "opening", "vacancy"}
}

// GenericSelectors are the structural selectors tried for sites
// without a configured selector set.
func GenericSelectors() []string {
	return []string{
		"div[class*='job'], li[class*='job'], article[class*='job']",
		"div[class*='recruit'], li[class*='recruit']",
		"div[class*='position'], li[class*='position'], div[class*='posting']",
		"a[href*='job'], a[href*='recruit'], a[href*='position']",
	}
}

// DefaultFallbackSite returns the fallback configuration used for
// unknown sites.
func DefaultFallbackSite() Site {
	return Site{
		Selectors: GenericSelectors(),
		Keywords:  DefaultKeywords(),
		Weight:    siteDefaultWeight,
	}
}

// MatchesKeyword reports whether the text contains any of the
// keywords, case-insensitively.
func MatchesKeyword(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
