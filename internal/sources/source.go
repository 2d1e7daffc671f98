// Package sources holds the per-outlet collector descriptors: listing
// layout, selector lists, denylist additions, pacing, and quotas. Adapters
// register themselves in init() and the CLI looks them up by id.
package sources

import (
	"time"

	"github.com/kpress-lab/collector/internal/dates"
	"github.com/kpress-lab/collector/internal/extract"
	"github.com/kpress-lab/collector/internal/listing"
)

// Category is one operator-ordered bucket of a source. Categories are
// processed in slice order; Name doubles as the operator hint for records
// whose category cannot be resolved any other way.
type Category struct {
	Name    string
	Listing listing.Listing
}

// Source describes one news origin end to end.
type Source struct {
	ID      string
	Outlet  string
	BaseURL string

	Categories []Category

	Extract   extract.Config
	DateStyle dates.Style

	// Pacing. DelayMin/Max bound the polite per-request delay;
	// CategoryDelay runs between categories.
	DelayMin      time.Duration
	DelayMax      time.Duration
	CategoryDelay time.Duration

	MaxPerCategory int

	// UseRenderer provisions a browser for the driver: rendered indexes
	// and short-body escalation both need it.
	UseRenderer bool

	// RenderWaitFor lists containers the rendered escalation waits for.
	RenderWaitFor []string
}
