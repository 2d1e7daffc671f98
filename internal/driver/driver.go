// Package driver orchestrates one source's collection run: listing
// enumeration, dedup and quota gates, paced fetching, extraction with
// rendered escalation, and record writing. One driver per source, strictly
// serial; nothing is shared across drivers.
package driver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kpress-lab/collector/internal/browser"
	"github.com/kpress-lab/collector/internal/dedup"
	"github.com/kpress-lab/collector/internal/extract"
	"github.com/kpress-lab/collector/internal/fetch"
	"github.com/kpress-lab/collector/internal/listing"
	"github.com/kpress-lab/collector/internal/record"
	"github.com/kpress-lab/collector/internal/sources"
	"github.com/kpress-lab/collector/pkg/models"
	"github.com/rs/zerolog"
)

// progressEvery is how many consumed candidates pass between progress logs.
const progressEvery = 10

// Stats summarizes a run. Partial output is always valid, so stats are
// meaningful even after cancellation.
type Stats struct {
	Attempted    int
	Emitted      int
	SkippedDup   int
	SkippedQuota int
	Failed       int
	PerCategory  map[string]int
}

// Driver runs one source. All collaborators are exclusively owned for the
// duration of the run.
type Driver struct {
	src       *sources.Source
	client    *fetch.Client
	renderer  browser.Renderer // nil when the source never renders
	writer    *record.Writer
	extractor *extract.Extractor
	seen      *dedup.Set
	quota     *dedup.Quota
	log       zerolog.Logger
}

// New assembles a driver. renderer may be nil for raw-only sources.
func New(src *sources.Source, client *fetch.Client, renderer browser.Renderer, writer *record.Writer, logger zerolog.Logger) *Driver {
	runID := uuid.NewString()[:8]
	log := logger.With().Str("source", src.ID).Str("run_id", runID).Logger()

	return &Driver{
		src:       src,
		client:    client,
		renderer:  renderer,
		writer:    writer,
		extractor: extract.New(src.Extract, log),
		seen:      dedup.NewSet(),
		quota:     dedup.NewQuota(src.MaxPerCategory),
		log:       log,
	}
}

// errWriter marks a fatal writer failure so Run can abort the whole run
// while per-item errors keep it going.
type errWriter struct{ err error }

func (e errWriter) Error() string { return e.err.Error() }

// Run executes the collection. Per-item failures are logged and dropped;
// only writer failures and cancellation abort.
func (d *Driver) Run(ctx context.Context) (*Stats, error) {
	stats := &Stats{PerCategory: make(map[string]int)}
	start := time.Now()

	d.log.Info().
		Str("outlet", d.src.Outlet).
		Int("categories", len(d.src.Categories)).
		Msg("Run started")

	for i, cat := range d.src.Categories {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		if err := d.runCategory(ctx, cat, stats); err != nil {
			var we errWriter
			if errors.As(err, &we) {
				return stats, fmt.Errorf("writer failure: %w", we.err)
			}
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return stats, err
			}
			// Listing failure: category skipped entirely, run continues
			d.log.Error().Err(err).Str("category", cat.Name).Msg("Category listing failed, skipping")
		}

		if i < len(d.src.Categories)-1 && d.src.CategoryDelay > 0 {
			select {
			case <-time.After(d.src.CategoryDelay):
			case <-ctx.Done():
				return stats, ctx.Err()
			}
		}
	}

	d.log.Info().
		Int("emitted", stats.Emitted).
		Int("attempted", stats.Attempted).
		Int("failed", stats.Failed).
		Int("skipped_dup", stats.SkippedDup).
		Dur("elapsed", time.Since(start)).
		Msg("Run completed")

	return stats, nil
}

func (d *Driver) runCategory(ctx context.Context, cat sources.Category, stats *Stats) error {
	env := listing.Env{
		Fetch:     d.client,
		Render:    d.renderer,
		BaseURL:   d.src.BaseURL,
		DateStyle: d.src.DateStyle,
		Log:       d.log,
	}

	return cat.Listing.Enumerate(ctx, env, func(ref models.Candidate) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if !d.seen.Add(ref.URL) {
			stats.SkippedDup++
			return nil
		}

		category := ref.Category
		if category == "" {
			category = cat.Name
		}
		if !d.quota.Allow(category) {
			stats.SkippedQuota++
			return nil
		}

		stats.Attempted++

		rec, err := d.collectOne(ctx, ref, cat.Name)
		if err != nil {
			stats.Failed++
			d.logItemFailure(ref.URL, err)
			// Cancellation must stop enumeration; everything else is a drop
			if errors.Is(err, context.Canceled) {
				return err
			}
			d.maybeLogProgress(stats)
			return nil
		}

		// Extraction can resolve a different category than the pre-fetch
		// hint, so the quota gates again on the final value.
		if !d.quota.Allow(rec.Category) {
			stats.SkippedQuota++
			d.maybeLogProgress(stats)
			return nil
		}

		if err := d.writer.Write(*rec); err != nil {
			return errWriter{err: err}
		}

		d.quota.Inc(rec.Category)
		stats.Emitted++
		stats.PerCategory[rec.Category]++

		d.maybeLogProgress(stats)
		return nil
	})
}

// collectOne fetches and extracts a single candidate, escalating to a
// rendered fetch when the raw page yields too little body.
func (d *Driver) collectOne(ctx context.Context, ref models.Candidate, hint string) (*models.Record, error) {
	resp, err := d.client.Fetch(ctx, ref.URL, fetch.Options{Referer: d.src.BaseURL})
	if err != nil {
		return nil, err
	}

	rec, err := d.extractor.Extract(resp.Body, ref, hint)
	if err == nil && !d.needsEscalation(rec) {
		return rec, nil
	}

	if !d.canEscalate(err) {
		return rec, err
	}

	d.log.Debug().Str("url", ref.URL).Msg("Escalating to rendered fetch")
	html, rerr := d.renderer.Get(ctx, ref.URL, browser.RenderOptions{
		WaitFor: d.src.RenderWaitFor,
		Scroll:  true,
	})
	if rerr != nil {
		d.log.Warn().Err(rerr).Str("url", ref.URL).Msg("Rendered escalation failed")
		return rec, err
	}

	rendered, rexErr := d.extractor.Extract([]byte(html), ref, hint)
	if rexErr == nil {
		return rendered, nil
	}
	// Keep the raw result when rendering did not improve matters
	return rec, err
}

// needsEscalation reports whether a successful raw extraction is still below
// the source's escalation threshold.
func (d *Driver) needsEscalation(rec *models.Record) bool {
	threshold := d.src.Extract.EscalateBelow
	if threshold <= 0 || d.renderer == nil {
		return false
	}
	return len([]rune(rec.Body)) < threshold
}

// canEscalate permits a rendered retry for short-body outcomes only.
func (d *Driver) canEscalate(extractErr error) bool {
	if d.renderer == nil || d.src.Extract.EscalateBelow <= 0 {
		return false
	}
	return extractErr == nil || extract.IsBodyTooShort(extractErr)
}

func (d *Driver) logItemFailure(url string, err error) {
	var reject *extract.RejectError
	if errors.As(err, &reject) {
		d.log.Warn().Str("url", url).Str("reason", reject.Reason).Msg("Item rejected")
		return
	}
	d.log.Warn().Str("url", url).Err(err).Msg("Item failed")
}

func (d *Driver) maybeLogProgress(stats *Stats) {
	if stats.Attempted == 0 || stats.Attempted%progressEvery != 0 {
		return
	}
	ratio := float64(stats.Emitted) / float64(stats.Attempted)
	d.log.Info().
		Int("attempted", stats.Attempted).
		Int("emitted", stats.Emitted).
		Float64("success_ratio", ratio).
		Msg("Progress")
}
