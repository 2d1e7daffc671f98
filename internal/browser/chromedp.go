// internal/browser/chromedp.go
package browser

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/cdproto/dom"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"
)

// ChromeOptions configures a ChromeRenderer.
type ChromeOptions struct {
	Headless  bool
	UserAgent string
	Proxy     string
	Timeout   time.Duration

	// ChromePath overrides binary discovery when set.
	ChromePath string
}

// ChromeRenderer is the chromedp-backed Renderer. One browser process is
// started lazily on first Get and held open for the renderer's lifetime;
// it is exclusive to its driver.
type ChromeRenderer struct {
	opts        ChromeOptions
	allocCtx    context.Context
	allocCancel context.CancelFunc
	browserCtx  context.Context
	browserStop context.CancelFunc
}

// NewChromeRenderer creates a renderer; the browser starts on first use.
func NewChromeRenderer(opts ChromeOptions) *ChromeRenderer {
	if opts.Timeout <= 0 {
		opts.Timeout = 45 * time.Second
	}
	return &ChromeRenderer{opts: opts}
}

func (r *ChromeRenderer) ensureBrowser() error {
	if r.browserCtx != nil {
		return nil
	}

	allocOpts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("lang", "ko-KR"),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("window-size", "1920,1080"),
		chromedp.Flag("log-level", "3"),
	}

	path := r.opts.ChromePath
	if path == "" {
		path = FindChrome()
	}
	if path != "" {
		allocOpts = append([]chromedp.ExecAllocatorOption{chromedp.ExecPath(path)}, allocOpts...)
	}
	if r.opts.UserAgent != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(r.opts.UserAgent))
	}
	if r.opts.Proxy != "" {
		allocOpts = append(allocOpts, chromedp.ProxyServer(r.opts.Proxy))
	}
	if r.opts.Headless {
		allocOpts = append(allocOpts, chromedp.Flag("headless", "new"))
	} else {
		allocOpts = append(allocOpts, chromedp.Flag("headless", false))
	}

	r.allocCtx, r.allocCancel = chromedp.NewExecAllocator(context.Background(), allocOpts...)
	r.browserCtx, r.browserStop = chromedp.NewContext(r.allocCtx)

	// Start the browser process eagerly so failures surface here
	if err := chromedp.Run(r.browserCtx); err != nil {
		r.Close()
		return fmt.Errorf("failed to start browser: %w", err)
	}

	log.Debug().Bool("headless", r.opts.Headless).Msg("Browser started")
	return nil
}

// Get loads the URL and returns the materialized DOM.
func (r *ChromeRenderer) Get(ctx context.Context, url string, opts RenderOptions) (string, error) {
	if err := r.ensureBrowser(); err != nil {
		return "", err
	}

	tabCtx, cancel := chromedp.NewContext(r.browserCtx)
	defer cancel()

	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, r.opts.Timeout)
	defer cancelTimeout()

	// Tie the tab to the caller's cancellation
	go func() {
		select {
		case <-ctx.Done():
			cancel()
		case <-tabCtx.Done():
		}
	}()

	actions := []chromedp.Action{
		chromedp.Navigate(url),
		waitAny(opts.WaitFor),
	}

	if opts.Scroll {
		actions = append(actions,
			chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight/2)`, nil),
			chromedp.Sleep(400*time.Millisecond),
			chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil),
			chromedp.Sleep(400*time.Millisecond),
		)
	}

	if err := chromedp.Run(tabCtx, actions...); err != nil {
		return "", fmt.Errorf("render %s: %w", url, err)
	}

	if opts.ClickMore != "" && opts.MoreClicks > 0 {
		clickMore(tabCtx, opts.ClickMore, opts.MoreClicks)
	}

	var html string
	err := chromedp.Run(tabCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		node, err := dom.GetDocument().Do(ctx)
		if err != nil {
			return err
		}
		html, err = dom.GetOuterHTML().WithNodeID(node.NodeID).Do(ctx)
		return err
	}))
	if err != nil {
		return "", fmt.Errorf("render %s: %w", url, err)
	}

	log.Debug().
		Str("url", url).
		Int("bytes", len(html)).
		Msg("Rendered fetch completed")

	return html, nil
}

// clickMore clicks the "more" control up to max times, stopping when the
// control disappears or a click errors.
func clickMore(ctx context.Context, selector string, max int) {
	for i := 0; i < max; i++ {
		var exists bool
		check := fmt.Sprintf(`document.querySelector(%q) !== null`, selector)
		if err := chromedp.Run(ctx, chromedp.Evaluate(check, &exists)); err != nil || !exists {
			log.Debug().Int("clicks", i).Msg("More control gone, stopping")
			return
		}

		err := chromedp.Run(ctx,
			chromedp.Click(selector, chromedp.NodeVisible),
			chromedp.Sleep(700*time.Millisecond),
		)
		if err != nil {
			log.Debug().Err(err).Int("clicks", i).Msg("More click failed, stopping")
			return
		}
	}
}

// waitAny waits until any of the candidate selectors exists, or for body
// readiness when none are given.
func waitAny(selectors []string) chromedp.Action {
	if len(selectors) == 0 {
		return chromedp.WaitReady("body", chromedp.ByQuery)
	}

	var parts []string
	for _, sel := range selectors {
		parts = append(parts, fmt.Sprintf("document.querySelector(%q) !== null", sel))
	}
	expr := strings.Join(parts, " || ")

	return chromedp.Poll(expr, nil, chromedp.WithPollingInterval(200*time.Millisecond))
}

// Close shuts the browser down. Safe to call when never started.
func (r *ChromeRenderer) Close() error {
	if r.browserStop != nil {
		r.browserStop()
		r.browserStop = nil
		r.browserCtx = nil
	}
	if r.allocCancel != nil {
		r.allocCancel()
		r.allocCancel = nil
		r.allocCtx = nil
	}
	return nil
}
