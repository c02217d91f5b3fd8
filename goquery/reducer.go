// Package goquery implements HTML content reduction and structural
// splitting using CSS selectors.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jobsift/jobsift"
)

// Ensure Reducer implements jobsift.Reducer at compile time.
var _ jobsift.Reducer = (*Reducer)(nil)

// noiseSelector matches elements that never carry posting content and
// routinely dominate raw page size, plus hidden nodes and ad regions.
const noiseSelector = "script, style, noscript, iframe, svg, canvas, form, button, nav, header, footer, aside, " +
	"[style*='display:none'], [style*='display: none'], [style*='visibility:hidden'], [style*='visibility: hidden'], " +
	"[hidden], .ads, .advertisement, .banner, .popup, #ads, #advertisement"

// Fragments shorter than this are selector noise (icons, labels),
// longer than maxKeywordBlockChars they are page-level containers that
// the keyword scan must not swallow whole.
const (
	minFragmentChars     = 30
	maxKeywordBlockChars = 8000
)

// Reducer reduces raw listing HTML to record-like fragments. Selector
// sets configured per site are tried in priority order; unmatched pages
// fall back to a keyword scan and finally to whole-page text
// extraction.
type Reducer struct {
	Sites *jobsift.SiteRegistry

	// Converter renders fragment HTML as markdown-ish text. Nil falls
	// back to plain text extraction.
	Converter jobsift.Converter

	// Fallback produces whole-page text when no structure matches.
	// Nil falls back to the cleaned document body text.
	Fallback jobsift.FallbackExtractor
}

// Reduce extracts record-like fragments from the document. Returns
// ENOTFOUND when the page yields no usable text at all.
func (r *Reducer) Reduce(rawDoc *jobsift.RawDocument) ([]jobsift.Fragment, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawDoc.HTML))
	if err != nil {
		return nil, jobsift.Errorf(jobsift.EINVALID, "failed to parse HTML: %v", err)
	}
	doc.Find(noiseSelector).Remove()

	site, _ := r.Sites.Get(rawDoc.SiteID)
	selectors := site.Selectors
	if len(selectors) == 0 {
		selectors = jobsift.GenericSelectors()
	}
	keywords := site.Keywords
	if len(keywords) == 0 {
		keywords = jobsift.DefaultKeywords()
	}

	for _, selector := range selectors {
		if fragments := r.collect(doc.Find(selector)); len(fragments) > 0 {
			return fragments, nil
		}
	}

	if fragments := r.keywordScan(doc, keywords); len(fragments) > 0 {
		return fragments, nil
	}

	text := r.fallbackText(rawDoc.HTML, doc)
	if strings.TrimSpace(text) == "" {
		return nil, jobsift.Errorf(jobsift.ENOTFOUND, "no record-like content found")
	}
	return []jobsift.Fragment{{Text: text, LowConfidence: true}}, nil
}

// ReduceDetail isolates the main content of a detail page as text,
// truncated to maxUnits size units. maxUnits <= 0 means no truncation.
func (r *Reducer) ReduceDetail(html string, maxUnits int) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", jobsift.Errorf(jobsift.EINVALID, "failed to parse HTML: %v", err)
	}
	doc.Find(noiseSelector).Remove()

	var text string
	for _, selector := range []string{"main", "article", "#content", ".content", "body"} {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		text = r.renderText(sel)
		if strings.TrimSpace(text) != "" {
			break
		}
	}
	if strings.TrimSpace(text) == "" {
		text = r.fallbackText(html, doc)
	}
	if strings.TrimSpace(text) == "" {
		return "", jobsift.Errorf(jobsift.ENOTFOUND, "no detail content found")
	}

	if maxUnits > 0 {
		text = truncateUnits(text, maxUnits)
	}
	return strings.TrimSpace(text), nil
}

// collect turns selector matches into fragments, skipping blocks that
// are nested inside an already-collected match.
func (r *Reducer) collect(sel *goquery.Selection) []jobsift.Fragment {
	var fragments []jobsift.Fragment
	accepted := newNodeSet()

	sel.Each(func(_ int, block *goquery.Selection) {
		if accepted.containsAncestorOf(block) {
			return
		}
		text := strings.TrimSpace(block.Text())
		if len(text) < minFragmentChars {
			return
		}
		html, err := goquery.OuterHtml(block)
		if err != nil {
			return
		}
		accepted.add(block)
		fragments = append(fragments, jobsift.Fragment{
			HTML: html,
			Text: r.renderText(block),
		})
	})
	return fragments
}

// keywordScan finds the outermost blocks whose text mentions a domain
// keyword. Oversized containers are skipped so the scan settles on
// per-posting blocks rather than the whole page.
func (r *Reducer) keywordScan(doc *goquery.Document, keywords []string) []jobsift.Fragment {
	var fragments []jobsift.Fragment
	accepted := newNodeSet()

	doc.Find("div, li, article, section, tr").Each(func(_ int, block *goquery.Selection) {
		if accepted.containsAncestorOf(block) {
			return
		}
		text := strings.TrimSpace(block.Text())
		if len(text) < minFragmentChars || len(text) > maxKeywordBlockChars {
			return
		}
		if !jobsift.MatchesKeyword(text, keywords) {
			return
		}
		html, err := goquery.OuterHtml(block)
		if err != nil {
			return
		}
		accepted.add(block)
		fragments = append(fragments, jobsift.Fragment{
			HTML:          html,
			Text:          r.renderText(block),
			LowConfidence: true,
		})
	})
	return fragments
}

// renderText converts a block to text, preferring the markdown
// converter when configured.
func (r *Reducer) renderText(sel *goquery.Selection) string {
	if r.Converter != nil {
		if html, err := goquery.OuterHtml(sel); err == nil {
			if text, err := r.Converter.Convert(html); err == nil && strings.TrimSpace(text) != "" {
				return strings.TrimSpace(text)
			}
		}
	}
	return strings.TrimSpace(sel.Text())
}

// fallbackText extracts whole-page text via the configured fallback
// extractor, falling back to the cleaned document body.
func (r *Reducer) fallbackText(html string, doc *goquery.Document) string {
	if r.Fallback != nil {
		if text, err := r.Fallback.ExtractText(html); err == nil && strings.TrimSpace(text) != "" {
			return strings.TrimSpace(text)
		}
	}
	return strings.TrimSpace(doc.Find("body").Text())
}

// truncateUnits cuts text to maxUnits size units at a rune boundary.
func truncateUnits(text string, maxUnits int) string {
	maxChars := maxUnits * jobsift.CharsPerSizeUnit
	if len(text) <= maxChars {
		return text
	}
	return text[:alignRune(text, maxChars)]
}
