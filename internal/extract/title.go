// internal/extract/title.go
package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/kpress-lab/collector/internal/normalize"
	"github.com/kpress-lab/collector/pkg/models"
)

// titlePrefixRE recognizes a leading bracket category, e.g. "[팩트체크] 제목".
var titlePrefixRE = regexp.MustCompile(`^\[([^\[\]]{1,20})\]\s*(.+)$`)

var genericTitleSelectors = []string{"h1", "h2.article-title"}

// title runs the title cascade and returns the stored title plus the
// category inferred from a bracket prefix, if any.
func (e *Extractor) title(doc *goquery.Document, ref models.Candidate) (string, string) {
	var raw string

	// 1. Source-specific selectors
	for _, sel := range e.cfg.TitleSelectors {
		if t := strings.TrimSpace(doc.Find(sel).First().Text()); t != "" {
			raw = t
			break
		}
	}

	// 2. Generic containers, then og:title
	if raw == "" {
		for _, sel := range genericTitleSelectors {
			if t := strings.TrimSpace(doc.Find(sel).First().Text()); t != "" {
				raw = t
				break
			}
		}
	}
	if raw == "" {
		if t, ok := doc.Find(`meta[property="og:title"]`).First().Attr("content"); ok {
			raw = strings.TrimSpace(t)
		}
	}

	// 3. Preview title from the reference
	if raw == "" {
		raw = ref.Title
	}

	raw = normalize.CollapseWhitespace(normalize.DecodeEntities(raw))

	// A bracket prefix names the category; remember it and strip it from
	// the stored title.
	if m := titlePrefixRE.FindStringSubmatch(raw); m != nil {
		return strings.TrimSpace(m[2]), strings.TrimSpace(m[1])
	}

	return raw, ""
}
