// internal/listing/paginated.go
package listing

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/kpress-lab/collector/internal/fetch"
)

// totalCountRE matches the "총 N건" marker index pages use to report result
// counts.
var totalCountRE = regexp.MustCompile(`총\s*([\d,]+)\s*건`)

// PaginatedIndex walks an HTML category index page by page. The page number
// is substituted into Template via %d.
type PaginatedIndex struct {
	Template string // e.g. "https://example.com/list?cat=eco&page=%d"

	// LinkPattern selects anchors that are article URLs.
	LinkPattern *regexp.Regexp

	// PerPage is the item count per page, used to derive total pages from
	// the total-count marker.
	PerPage int

	// PageCap is the hard page limit; FallbackPages is used when no
	// total-count marker is found.
	PageCap       int
	FallbackPages int

	// URLCategories maps article URLs to categories when the index mixes
	// sections.
	URLCategories map[string]string
}

// Enumerate walks pages until one yields zero new references or the page cap
// is reached. In-page duplicates are removed; cross-page dedup is the
// driver's job.
func (p PaginatedIndex) Enumerate(ctx context.Context, env Env, emit EmitFunc) error {
	perPage := p.PerPage
	if perPage <= 0 {
		perPage = 20
	}
	pageCap := p.PageCap
	if pageCap <= 0 {
		pageCap = 50
	}
	totalPages := p.FallbackPages
	if totalPages <= 0 {
		totalPages = 10
	}

	seen := make(map[string]struct{})

	for page := 1; page <= totalPages && page <= pageCap; page++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		pageURL := fmt.Sprintf(p.Template, page)
		resp, err := env.Fetch.Fetch(ctx, pageURL, fetch.Options{Referer: env.BaseURL})
		if err != nil {
			return fmt.Errorf("index page %d: %w", page, err)
		}

		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body))
		if err != nil {
			return fmt.Errorf("index page %d: parse: %w", page, err)
		}

		if page == 1 {
			if total, ok := parseTotalCount(doc); ok {
				totalPages = (total + perPage - 1) / perPage
				env.Log.Debug().
					Int("total_items", total).
					Int("total_pages", totalPages).
					Msg("Index total count parsed")
			}
		}

		fresh := 0
		for _, cand := range collectArticleLinks(doc, p.LinkPattern, pageURL) {
			if _, dup := seen[cand.URL]; dup {
				continue
			}
			seen[cand.URL] = struct{}{}
			fresh++

			if cand.Category == "" {
				cand.Category = CategoryFromURL(cand.URL, p.URLCategories)
			}

			if err := emit(cand); err != nil {
				return err
			}
		}

		if fresh == 0 {
			env.Log.Debug().Int("page", page).Msg("Index page yielded no new references, stopping")
			return nil
		}
	}

	return nil
}

// parseTotalCount finds the "총 N건" marker anywhere in the page.
func parseTotalCount(doc *goquery.Document) (int, bool) {
	m := totalCountRE.FindStringSubmatch(doc.Text())
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
