// internal/browser/renderer.go
package browser

import "context"

// RenderOptions controls how a page is materialized.
type RenderOptions struct {
	// WaitFor lists candidate container selectors; rendering completes as
	// soon as any of them exists in the DOM. Empty means wait for body.
	WaitFor []string

	// Scroll scrolls to half the document height and then the bottom to
	// trigger lazily loaded content.
	Scroll bool

	// ClickMore is a selector for a "more" control clicked MoreClicks
	// times. Clicking stops early when the control disappears or errors.
	ClickMore  string
	MoreClicks int
}

// Renderer retrieves pages through a script-executing browser. It is an
// interface so raw-only builds and tests can substitute a stub; the chromedp
// implementation is the only production one.
type Renderer interface {
	// Get loads the URL and returns the materialized DOM as HTML.
	Get(ctx context.Context, url string, opts RenderOptions) (string, error)

	// Close releases the underlying browser. A Renderer is exclusive to
	// one driver and must not be shared.
	Close() error
}
