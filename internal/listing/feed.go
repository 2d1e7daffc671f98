// internal/listing/feed.go
package listing

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/kpress-lab/collector/internal/dates"
	"github.com/kpress-lab/collector/internal/fetch"
	"github.com/kpress-lab/collector/internal/normalize"
	"github.com/kpress-lab/collector/pkg/models"
	"github.com/mmcdole/gofeed"
)

// descReporterRE pulls a byline candidate out of an RSS <description>,
// e.g. "... 홍길동 기자" embedded in the summary text.
var descReporterRE = regexp.MustCompile(`([가-힣]{2,4})\s*(기자|특파원)`)

// Feed enumerates an RSS/Atom document. Finite; items are emitted in
// document order with preview fields filled from the feed.
type Feed struct {
	URL string

	// URLCategories is the fallback URL→category heuristic used when an
	// item carries no <category> element.
	URLCategories map[string]string
}

// Enumerate fetches and parses the feed, emitting one candidate per item.
func (f Feed) Enumerate(ctx context.Context, env Env, emit EmitFunc) error {
	resp, err := env.Fetch.Fetch(ctx, f.URL, fetch.Options{})
	if err != nil {
		return fmt.Errorf("feed %s: %w", f.URL, err)
	}

	parsed, err := gofeed.NewParser().Parse(bytes.NewReader(resp.Body))
	if err != nil {
		return fmt.Errorf("feed %s: parse: %w", f.URL, err)
	}

	for _, item := range parsed.Items {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if item == nil || strings.TrimSpace(item.Link) == "" {
			// Malformed items are skippable, not fatal
			env.Log.Debug().Str("feed", f.URL).Msg("Skipping feed item without link")
			continue
		}

		cand := models.Candidate{
			URL:      ResolveURL(f.URL, item.Link),
			Title:    normalize.DecodeEntities(item.Title),
			Summary:  normalize.DecodeEntities(item.Description),
			Date:     f.itemDate(item, env.DateStyle),
			Category: f.itemCategory(item),
			Reporter: itemReporter(item),
		}

		if err := emit(cand); err != nil {
			return err
		}
	}

	return nil
}

// itemDate formats the published timestamp, preferring gofeed's parsed value
// and falling back to the known pubDate layouts. An unparseable date is
// passed through in the source's original form.
func (f Feed) itemDate(item *gofeed.Item, style dates.Style) string {
	if item.PublishedParsed != nil {
		return dates.Format(*item.PublishedParsed, style)
	}
	if t, ok := dates.ParsePubDate(item.Published); ok {
		return dates.Format(t, style)
	}
	return strings.TrimSpace(item.Published)
}

// itemCategory resolves <category>/<tags>, then the URL heuristic. The
// extractor applies the title-prefix inference, operator hint, and default
// later, in that order.
func (f Feed) itemCategory(item *gofeed.Item) string {
	for _, c := range item.Categories {
		if c = normalize.DecodeEntities(c); c != "" {
			return c
		}
	}
	return CategoryFromURL(item.Link, f.URLCategories)
}

// itemReporter extracts a preview reporter from <author>, <dc:creator>, or
// the description text. Candidates failing the Hangul-name shape are dropped,
// not passed through.
func itemReporter(item *gofeed.Item) string {
	var candidates []string

	if item.Author != nil && item.Author.Name != "" {
		candidates = append(candidates, item.Author.Name)
	}
	for _, a := range item.Authors {
		if a != nil && a.Name != "" {
			candidates = append(candidates, a.Name)
		}
	}
	if item.DublinCoreExt != nil {
		candidates = append(candidates, item.DublinCoreExt.Creator...)
	}
	if m := descReporterRE.FindStringSubmatch(item.Description); m != nil {
		candidates = append(candidates, m[1])
	}

	for _, c := range candidates {
		c = cleanAuthor(c)
		if normalize.IsValidKoreanName(c) {
			return c
		}
	}
	return ""
}

// cleanAuthor strips email prefixes and role tokens from an author field,
// e.g. "reporter@kmib.co.kr (홍길동)" or "홍길동 기자".
func cleanAuthor(s string) string {
	s = normalize.DecodeEntities(s)

	if i := strings.Index(s, "("); i >= 0 {
		if j := strings.Index(s[i:], ")"); j > 0 {
			s = s[i+1 : i+j]
		}
	}

	s = strings.TrimSpace(s)
	for _, role := range []string{"기자", "특파원", "객원기자", "인턴기자"} {
		s = strings.TrimSpace(strings.TrimSuffix(s, role))
	}
	return s
}
