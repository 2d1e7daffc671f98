// Package extract turns a fetched article page into a normalized six-field
// record. Every field runs an ordered strategy cascade: the first strategy
// that yields a non-empty, plausibility-checked value wins, and failures are
// structured so the driver can log why an item was dropped.
package extract

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/kpress-lab/collector/internal/dates"
	"github.com/kpress-lab/collector/internal/normalize"
	"github.com/kpress-lab/collector/pkg/models"
	"github.com/rs/zerolog"
)

// Config is the per-source extraction profile. Selector lists are tried in
// order; empty lists fall back to the generic strategies alone.
type Config struct {
	Outlet string

	TitleSelectors    []string
	DateSelectors     []string // containers scanned for a text date
	ReporterSelectors []string
	BodySelectors     []string

	// ScriptVar names an inline-script global holding article state
	// (e.g. "__APP_DATA__"); empty disables the strategy.
	ScriptVar string

	ReporterPolicy models.ReporterPolicy
	OutletReporter string // constant fallback, e.g. "The Korea Herald"

	NameBlocklist []string
	ExtraDenylist []*regexp.Regexp

	DateStyle dates.Style

	MinBodyChars int
	HardCap      int

	// EscalateBelow is the rendered-escalation threshold in characters;
	// zero disables escalation for the source.
	EscalateBelow int
}

// Extractor applies one source's Config. Stateless across articles.
type Extractor struct {
	cfg  Config
	norm *normalize.Normalizer
	log  zerolog.Logger
}

// New builds an extractor for a source profile.
func New(cfg Config, log zerolog.Logger) *Extractor {
	return &Extractor{
		cfg:  cfg,
		norm: normalize.New(cfg.MinBodyChars, cfg.HardCap, cfg.ExtraDenylist),
		log:  log,
	}
}

// Config returns the profile the extractor was built with.
func (e *Extractor) Config() Config { return e.cfg }

// Extract produces a record from page bytes and the originating candidate,
// or a *RejectError. hint is the operator-supplied per-feed category.
func (e *Extractor) Extract(page []byte, ref models.Candidate, hint string) (*models.Record, error) {
	if len(bytes.TrimSpace(page)) == 0 {
		return nil, &RejectError{URL: ref.URL, Reason: ReasonEmptyPage}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, &RejectError{URL: ref.URL, Reason: ReasonEmptyPage}
	}

	return e.ExtractDoc(doc, ref, hint)
}

// ExtractDoc is Extract over an already-parsed document.
func (e *Extractor) ExtractDoc(doc *goquery.Document, ref models.Candidate, hint string) (*models.Record, error) {
	title, prefixCategory := e.title(doc, ref)

	body, err := e.body(doc, ref)
	if err != nil {
		return nil, err
	}

	rec := &models.Record{
		Outlet:   e.cfg.Outlet,
		Title:    title,
		Date:     e.date(doc, ref),
		Category: e.category(ref, prefixCategory, hint),
		Reporter: e.reporter(doc, ref, body),
		Body:     body,
	}

	// Validation rejections default the field; the record is still emitted.
	if strings.TrimSpace(rec.Title) == "" {
		rec.Title = ref.URL
	}
	if rec.Category == "" {
		rec.Category = models.DefaultCategory
	}
	if rec.Reporter == "" {
		rec.Reporter = models.DefaultReporter
	}

	return rec, nil
}

// category applies the fixed precedence: listing-resolved category (feed tag
// or URL map), title-prefix inference, operator hint, default.
func (e *Extractor) category(ref models.Candidate, prefixCategory, hint string) string {
	if c := strings.TrimSpace(ref.Category); c != "" {
		return c
	}
	if prefixCategory != "" {
		return prefixCategory
	}
	if hint != "" {
		return hint
	}
	return models.DefaultCategory
}
