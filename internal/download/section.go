// internal/download/section.go
package download

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path"
	"path/filepath"

	"github.com/PuerkitoBio/goquery"
	"github.com/kpress-lab/collector/internal/checkpoint"
	"github.com/kpress-lab/collector/internal/fetch"
	"github.com/kpress-lab/collector/internal/listing"
	"github.com/kpress-lab/collector/internal/sources"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
)

// Failure records one item that exhausted its retries.
type Failure struct {
	Filename string
	Reason   string
}

// SectionResult summarizes one section of a bulk run.
type SectionResult struct {
	Name      string
	Total     int
	Skipped   int // completed in a previous run
	Succeeded int
	Failures  []Failure
}

// ListItems enumerates a section's downloadable documents from its index
// page. Filenames come from the URL path, so they are stable across runs.
func ListItems(ctx context.Context, client *fetch.Client, section sources.BulkSection) ([]Item, error) {
	resp, err := client.Fetch(ctx, section.IndexURL, fetch.Options{})
	if err != nil {
		return nil, fmt.Errorf("section index %s: %w", section.Name, err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body))
	if err != nil {
		return nil, fmt.Errorf("section index %s: parse: %w", section.Name, err)
	}

	var items []Item
	seen := make(map[string]struct{})

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		abs := listing.ResolveURL(section.IndexURL, href)
		if abs == "" || !section.LinkPattern.MatchString(abs) {
			return
		}
		if _, dup := seen[abs]; dup {
			return
		}
		seen[abs] = struct{}{}

		items = append(items, Item{URL: abs, Filename: filenameFromURL(abs)})
	})

	return items, nil
}

// RunSection downloads a section's items under baseDir/<section>, resuming
// from the checkpoint and removing it when the section completes clean.
func (d *Downloader) RunSection(ctx context.Context, baseDir string, section sources.BulkSection, items []Item) (*SectionResult, error) {
	dir := filepath.Join(baseDir, SanitizeFilename(section.Name))
	result := &SectionResult{Name: section.Name, Total: len(items)}

	store, err := checkpoint.Open(dir)
	if err != nil {
		return nil, err
	}

	var pending []Item
	for _, item := range items {
		if store.Done(item.Filename) {
			result.Skipped++
			continue
		}
		pending = append(pending, item)
	}

	log.Info().
		Str("section", section.Name).
		Int("total", len(items)).
		Int("skipped", result.Skipped).
		Int("pending", len(pending)).
		Msg("Section started")

	bar := progressbar.NewOptions(len(pending),
		progressbar.OptionSetDescription(section.Name),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	for _, item := range pending {
		if err := ctx.Err(); err != nil {
			// Checkpoint already holds everything completed so far
			return result, err
		}

		if err := d.Fetch(ctx, item, dir); err != nil {
			result.Failures = append(result.Failures, Failure{
				Filename: item.Filename,
				Reason:   err.Error(),
			})
			log.Warn().Str("file", item.Filename).Err(err).Msg("Item download failed")
			_ = bar.Add(1)
			continue
		}

		// Durable before the next fetch begins
		if err := store.MarkDone(item.Filename); err != nil {
			return result, fmt.Errorf("checkpoint update: %w", err)
		}
		result.Succeeded++
		_ = bar.Add(1)
	}

	if len(result.Failures) == 0 && ctx.Err() == nil {
		if err := store.Remove(); err != nil {
			log.Warn().Err(err).Str("section", section.Name).Msg("Failed to remove checkpoint")
		}
	}

	return result, nil
}

// filenameFromURL derives the stable identifier from the URL path.
func filenameFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Path == "" {
		return SanitizeFilename(raw)
	}
	return SanitizeFilename(path.Base(u.Path))
}
