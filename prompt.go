package jobsift

import (
	"fmt"
	"strings"
)

// ListSystemPrompt is the system instruction for list-stage extraction.
const ListSystemPrompt = "You are a precise web scraping assistant that extracts job posting information from listing pages. Respond with valid JSON only."

// DetailSystemPrompt is the system instruction for detail-stage extraction.
const DetailSystemPrompt = "You are a job posting analyst that extracts detailed fields from a single job detail page. Respond with valid JSON only."

// BuildListPrompt builds the user prompt asking the model to extract a
// JSON array of job postings from one chunk of reduced listing text.
func BuildListPrompt(site Site, text string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Extract every job posting from the following content of the %s listing page.\n\n", site.Name)
	sb.WriteString(`Fields to extract per posting:
- title: job title (required)
- company: company name (required)
- location: work location, region level only (e.g. "Seoul", "Berlin")
- salary: compensation information
- employmentType: full-time, contract, internship, freelance, etc.
- experienceLevel: required experience (entry, senior, any, ...)
- sourceUrl: link to the posting detail page (full URL starting with http:// or https://)

Rules:
1. Respond with a valid JSON array only, no surrounding text or code fences.
2. Use null for missing fields; title and company must always be present.
3. Exclude advertisements, banners and unrelated content.
4. sourceUrl must be a complete URL when the page provides one.

Example response:
[{"title":"Backend Developer","company":"Acme","location":"Seoul","salary":null,"employmentType":"full-time","experienceLevel":"2+ years","sourceUrl":"https://example.com/job/123"}]

Content:
`)
	sb.WriteString(text)
	return sb.String()
}

// BuildDetailPrompt builds the user prompt asking the model to extract
// detail fields for a known posting from its detail page content.
func BuildDetailPrompt(rec *Record, content string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "The following content is the detail page for the %q position at %q.\n\n", rec.Title, rec.Company)
	sb.WriteString(`Fields to extract:
- description: main duties and responsibilities
- requirements: qualifications, required skills, preferred skills
- benefits: benefits and working conditions
- salary: only if more specific than already known
- location: only if more specific than already known (region level only)
- deadline: application deadline in YYYY-MM-DD format

Rules:
1. Respond with a valid JSON object only, no surrounding text or code fences.
2. Use null for missing fields.
3. deadline must be formatted as YYYY-MM-DD.
4. If the page has no explicit description, summarize the posting as the description.

Example response:
{"description":"Build and operate backend APIs","requirements":"3+ years of Go, cloud experience preferred","benefits":"Insurance, 15 days leave","salary":null,"location":"Seoul","deadline":"2026-12-31"}

Content:
`)
	sb.WriteString(content)
	return sb.String()
}
