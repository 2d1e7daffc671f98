// internal/listing/rendered.go
package listing

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/kpress-lab/collector/internal/browser"
)

// RenderedIndex harvests anchors from a browser-materialized index, clicking
// a "more" control up to MoreClicks times first. Used for sources whose
// index pages ship without server-side markup.
type RenderedIndex struct {
	URL string

	LinkPattern *regexp.Regexp

	// MoreSelector is the "more" control; MoreClicks bounds how many times
	// it is clicked. Clicking stops early when the control disappears.
	MoreSelector string
	MoreClicks   int

	// WaitFor lists selectors whose appearance means the index is loaded.
	WaitFor []string

	URLCategories map[string]string
}

// Enumerate renders the index and emits the harvested anchors in DOM order.
func (r RenderedIndex) Enumerate(ctx context.Context, env Env, emit EmitFunc) error {
	if env.Render == nil {
		return fmt.Errorf("rendered index %s: no renderer available", r.URL)
	}

	html, err := env.Render.Get(ctx, r.URL, browser.RenderOptions{
		WaitFor:    r.WaitFor,
		Scroll:     true,
		ClickMore:  r.MoreSelector,
		MoreClicks: r.MoreClicks,
	})
	if err != nil {
		return fmt.Errorf("rendered index %s: %w", r.URL, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return fmt.Errorf("rendered index %s: parse: %w", r.URL, err)
	}

	for _, cand := range collectArticleLinks(doc, r.LinkPattern, r.URL) {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if cand.Category == "" {
			cand.Category = CategoryFromURL(cand.URL, r.URLCategories)
		}
		if err := emit(cand); err != nil {
			return err
		}
	}

	return nil
}
