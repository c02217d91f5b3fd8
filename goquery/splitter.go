package goquery

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/jobsift/jobsift"
)

// Ensure Splitter implements jobsift.Splitter at compile time.
var _ jobsift.Splitter = (*Splitter)(nil)

// splitOverlapUnits is carried between adjacent raw slices so a record
// straddling a cut point appears whole in at least one piece.
const splitOverlapUnits = 50

// Splitter splits an oversized fragment into pieces that fit the chunk
// budget. Splits happen at child element boundaries when the fragment
// HTML has structure; otherwise the text is sliced with a small
// overlap.
type Splitter struct {
	// Converter renders segment HTML as text, matching the reducer's
	// rendering. Nil falls back to plain text extraction.
	Converter jobsift.Converter
}

// Split returns piece texts each intended to fit maxUnits. A piece may
// still exceed the budget when a single indivisible run of text does;
// the packer flags such pieces rather than dropping them.
func (s *Splitter) Split(f jobsift.Fragment, maxUnits int) ([]string, error) {
	if maxUnits <= 0 {
		return nil, jobsift.Errorf(jobsift.EINVALID, "split budget must be positive, got %d", maxUnits)
	}

	segments := s.segments(f.HTML)
	if len(segments) < 2 {
		return sliceText(fragmentText(f), maxUnits), nil
	}

	var pieces []string
	var b strings.Builder
	used := 0
	flush := func() {
		if b.Len() > 0 {
			pieces = append(pieces, strings.TrimSpace(b.String()))
			b.Reset()
			used = 0
		}
	}

	for _, seg := range segments {
		n := jobsift.EstimateSize(seg)
		if n > maxUnits {
			// An indivisible segment over budget is raw-sliced alone.
			flush()
			pieces = append(pieces, sliceText(seg, maxUnits)...)
			continue
		}
		if used+n > maxUnits {
			flush()
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(seg)
		used += n
	}
	flush()
	return pieces, nil
}

// segments renders the fragment's child elements as individual texts.
// Returns nil when the fragment has no usable element structure.
func (s *Splitter) segments(fragmentHTML string) []string {
	if strings.TrimSpace(fragmentHTML) == "" {
		return nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragmentHTML))
	if err != nil {
		return nil
	}

	// The fragment's own element is the single body child; its children
	// are the split boundaries.
	root := doc.Find("body").Children().First()
	children := root.Children()
	if children.Length() < 2 {
		children = doc.Find("body").Children()
	}

	var segments []string
	children.Each(func(_ int, child *goquery.Selection) {
		text := s.renderText(child)
		if text != "" {
			segments = append(segments, text)
		}
	})
	return segments
}

func (s *Splitter) renderText(sel *goquery.Selection) string {
	if s.Converter != nil {
		if html, err := goquery.OuterHtml(sel); err == nil {
			if text, err := s.Converter.Convert(html); err == nil && strings.TrimSpace(text) != "" {
				return strings.TrimSpace(text)
			}
		}
	}
	return strings.TrimSpace(sel.Text())
}

func fragmentText(f jobsift.Fragment) string {
	if strings.TrimSpace(f.Text) != "" {
		return f.Text
	}
	return f.HTML
}

// sliceText slices text into budget-sized pieces with a small overlap
// between adjacent slices.
func sliceText(text string, maxUnits int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	maxChars := maxUnits * jobsift.CharsPerSizeUnit
	if len(text) <= maxChars {
		return []string{text}
	}

	overlap := splitOverlapUnits * jobsift.CharsPerSizeUnit
	if overlap >= maxChars {
		overlap = 0
	}

	var pieces []string
	start := 0
	for start < len(text) {
		end := start + maxChars
		if end >= len(text) {
			pieces = append(pieces, text[start:])
			break
		}
		end = alignRune(text, end)
		pieces = append(pieces, text[start:end])

		next := alignRune(text, end-overlap)
		if next <= start {
			next = end
		}
		start = next
	}
	return pieces
}

// alignRune moves i back to the nearest rune start.
func alignRune(s string, i int) int {
	for i > 0 && !utf8.RuneStart(s[i]) {
		i--
	}
	return i
}
