// internal/fetch/client.go
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/kpress-lab/collector/internal/ratelimit"
	"github.com/kpress-lab/collector/internal/retry"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/html/charset"
)

// suspiciousBodyBytes is the floor below which a response is logged as
// suspicious (near-empty SSR payload, soft error page) but not failed.
const suspiciousBodyBytes = 3 * 1024

// acceptLanguage matches what Korean news origins expect from a domestic
// desktop browser.
const acceptLanguage = "ko-KR,ko;q=0.9,en-US;q=0.5,en;q=0.3"

// Options configures a single fetch.
type Options struct {
	Referer string
	Headers map[string]string
	Timeout time.Duration
}

// Response is a fetched page, body already transcoded to UTF-8.
type Response struct {
	StatusCode int
	Body       []byte
	FinalURL   string
}

// Client is the raw-mode fetcher: one cookie-preserving HTTP session per
// driver, rotating user agents, polite pacing before every request, and
// transient-failure retry with exponential backoff.
type Client struct {
	hc     *http.Client
	pacer  *ratelimit.Pacer
	agents *agentPool
	retry  retry.Config
}

// New creates a Client. The pacer may be nil for unpaced use (tests, probe).
func New(timeout time.Duration, pacer *ratelimit.Pacer) *Client {
	jar, _ := cookiejar.New(nil)

	return &Client{
		hc: &http.Client{
			Timeout: timeout,
			Jar:     jar,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		pacer:  pacer,
		agents: newAgentPool(nil),
		retry:  retry.DefaultConfig(),
	}
}

// SetRetry overrides the retry configuration.
func (c *Client) SetRetry(cfg retry.Config) { c.retry = cfg }

// RequestCount returns the number of paced requests issued so far.
func (c *Client) RequestCount() uint64 {
	if c.pacer == nil {
		return 0
	}
	return c.pacer.Count()
}

// Fetch retrieves a URL, retrying transient failures. The polite delay runs
// before every attempt.
func (c *Client) Fetch(ctx context.Context, url string, opts Options) (*Response, error) {
	var resp *Response

	err := retry.WithRetry(ctx, c.retry, func() error {
		r, err := c.fetchOnce(ctx, url, opts)
		if err != nil {
			return err
		}
		resp = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) fetchOnce(ctx context.Context, url string, opts Options) (*Response, error) {
	if c.pacer != nil {
		if err := c.pacer.Wait(ctx); err != nil {
			return nil, err
		}
	}

	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, retry.Permanent{Err: fmt.Errorf("failed to create request: %w", err)}
	}

	ua := c.agents.Next()
	req.Header.Set("User-Agent", ua)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", acceptLanguage)
	if opts.Referer != "" {
		req.Header.Set("Referer", opts.Referer)
	}
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	httpResp, err := c.hc.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode >= 400 {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(httpResp.Body, 4096))
		return nil, &FetchError{URL: url, StatusCode: httpResp.StatusCode}
	}

	// Transcode to UTF-8 from the declared or sniffed charset. Korean
	// origins still serve EUC-KR with and without declaring it.
	reader, err := charset.NewReader(httpResp.Body, httpResp.Header.Get("Content-Type"))
	if err != nil {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("charset detection: %w", err)}
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("read body: %w", err)}
	}

	if len(body) < suspiciousBodyBytes {
		log.Debug().
			Str("url", url).
			Int("bytes", len(body)).
			Msg("Suspiciously small response body")
	}

	finalURL := url
	if httpResp.Request != nil && httpResp.Request.URL != nil {
		finalURL = httpResp.Request.URL.String()
	}

	log.Debug().
		Str("url", url).
		Int("status", httpResp.StatusCode).
		Int("bytes", len(body)).
		Str("user_agent", ua).
		Int64("response_time_ms", time.Since(start).Milliseconds()).
		Msg("Fetch completed")

	return &Response{
		StatusCode: httpResp.StatusCode,
		Body:       body,
		FinalURL:   finalURL,
	}, nil
}
