// internal/listing/listing.go
package listing

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/kpress-lab/collector/internal/browser"
	"github.com/kpress-lab/collector/internal/dates"
	"github.com/kpress-lab/collector/internal/fetch"
	"github.com/kpress-lab/collector/pkg/models"
	"github.com/rs/zerolog"
)

// Env carries the collaborators a listing needs at enumeration time. The
// driver owns all of them; listings never cache between runs.
type Env struct {
	Fetch  *fetch.Client
	Render browser.Renderer // nil unless the source uses a rendered index

	BaseURL   string
	DateStyle dates.Style
	Log       zerolog.Logger
}

// EmitFunc receives candidates in source emission order. Returning an error
// stops enumeration (used for cancellation); the engine never reorders.
type EmitFunc func(models.Candidate) error

// Listing enumerates candidate article references. Exactly one of the three
// variants is configured per source category:
//
//	Feed           RSS/Atom document
//	PaginatedIndex HTML index walked page by page
//	RenderedIndex  browser-materialized index with a "more" control
type Listing interface {
	Enumerate(ctx context.Context, env Env, emit EmitFunc) error
}

// ResolveURL resolves a possibly relative href against base.
func ResolveURL(base, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if u.IsAbs() {
		return u.String()
	}
	b, err := url.Parse(base)
	if err != nil {
		return href
	}
	return b.ResolveReference(u).String()
}

// collectArticleLinks harvests anchors matching pattern from doc, resolving
// them against base and removing in-page duplicates. Anchor text becomes the
// preview title.
func collectArticleLinks(doc *goquery.Document, pattern *regexp.Regexp, base string) []models.Candidate {
	var out []models.Candidate
	seen := make(map[string]struct{})

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		abs := ResolveURL(base, href)
		if abs == "" || !pattern.MatchString(abs) {
			return
		}
		if _, dup := seen[abs]; dup {
			return
		}
		seen[abs] = struct{}{}

		out = append(out, models.Candidate{
			URL:   abs,
			Title: strings.TrimSpace(sel.Text()),
		})
	})

	return out
}

// CategoryFromURL maps a URL to a category through substring matching
// (e.g. "/economy/" → 경제). First match wins; order is not significant
// because source maps use disjoint path segments.
func CategoryFromURL(u string, mapping map[string]string) string {
	for substr, cat := range mapping {
		if strings.Contains(u, substr) {
			return cat
		}
	}
	return ""
}
