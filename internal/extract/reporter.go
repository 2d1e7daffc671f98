// internal/extract/reporter.go
package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/kpress-lab/collector/internal/normalize"
	"github.com/kpress-lab/collector/pkg/models"
)

// bylineTailChars bounds the body-tail scan; bylines sit at the end of
// Korean article bodies.
const bylineTailChars = 1500

var genericReporterSelectors = []string{".writer", ".byline", ".reporter"}

// bylinePatterns are tried in order against the body tail. Group 1 is the
// name; role tokens are stripped by the pattern itself.
var bylinePatterns = []*regexp.Regexp{
	regexp.MustCompile(`([가-힣]{2,4})\s*기자\s*[A-Za-z0-9._%+\-]+@`),
	regexp.MustCompile(`([가-힣]{2,4})\s*기자`),
	regexp.MustCompile(`기자\s*([가-힣]{2,4})`),
	regexp.MustCompile(`([가-힣]{2,4})\s*특파원`),
	regexp.MustCompile(`([가-힣]{2,4})\s*객원기자`),
}

// reporter resolves the byline per the source's reporter policy. A value
// that fails the plausibility check is never passed through; the field
// defaults instead and the record is still emitted.
func (e *Extractor) reporter(doc *goquery.Document, ref models.Candidate, body string) string {
	switch e.cfg.ReporterPolicy {
	case models.ReporterOutletConstant:
		return e.cfg.OutletReporter

	case models.ReporterRSSOnly:
		if e.validName(ref.Reporter) {
			return ref.Reporter
		}
		return e.fallbackReporter()

	default: // extracted
		// 1. Feed author, already shape-validated by the listing
		if e.validName(ref.Reporter) {
			return ref.Reporter
		}

		// 2. Source-specific then generic DOM nodes
		selectors := append(append([]string{}, e.cfg.ReporterSelectors...), genericReporterSelectors...)
		for _, sel := range selectors {
			if name := e.nameFromNode(doc, sel); name != "" {
				return name
			}
		}

		// 3. Regex scan of the body tail
		if name := e.nameFromBodyTail(body); name != "" {
			return name
		}

		return e.fallbackReporter()
	}
}

func (e *Extractor) fallbackReporter() string {
	if e.cfg.OutletReporter != "" {
		return e.cfg.OutletReporter
	}
	return models.DefaultReporter
}

// nameFromNode pulls a name candidate from a byline container, stripping
// role tokens and trailing emails.
func (e *Extractor) nameFromNode(doc *goquery.Document, selector string) string {
	text := strings.TrimSpace(doc.Find(selector).First().Text())
	if text == "" {
		return ""
	}

	for _, re := range bylinePatterns {
		if m := re.FindStringSubmatch(text); m != nil && e.validName(m[1]) {
			return m[1]
		}
	}

	// The node may hold the bare name
	text = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(text), "기자"))
	if e.validName(text) {
		return text
	}
	return ""
}

func (e *Extractor) nameFromBodyTail(body string) string {
	runes := []rune(body)
	if len(runes) > bylineTailChars {
		runes = runes[len(runes)-bylineTailChars:]
	}
	tail := string(runes)

	for _, re := range bylinePatterns {
		if m := re.FindStringSubmatch(tail); m != nil && e.validName(m[1]) {
			return m[1]
		}
	}
	return ""
}

func (e *Extractor) validName(s string) bool {
	return s != "" && normalize.IsValidKoreanName(s, e.cfg.NameBlocklist...)
}
