// internal/download/downloader.go
package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kpress-lab/collector/internal/ratelimit"
	"github.com/rs/zerolog/log"
)

// corruptFloorBytes: a payload smaller than this is treated as a portal
// error page saved with a .pdf name, deleted, and retried.
const corruptFloorBytes = 1024

// Item is one downloadable document; Filename is its stable identifier in
// the checkpoint.
type Item struct {
	URL      string
	Filename string
}

// Options configures a bulk downloader.
type Options struct {
	UserAgent  string
	MaxRetries int

	// BaseTimeout and TimeoutStep implement the growing per-attempt
	// timeout: BaseTimeout + TimeoutStep·attempt.
	BaseTimeout time.Duration
	TimeoutStep time.Duration
}

// Downloader streams documents to disk with per-item retry and a per-domain
// rate limit. One Downloader serves a whole bulk run.
type Downloader struct {
	opts    Options
	limiter ratelimit.RateLimiter
}

// NewDownloader creates a Downloader with defaults filled in.
func NewDownloader(opts Options, limiter ratelimit.RateLimiter) *Downloader {
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = 3
	}
	if opts.BaseTimeout <= 0 {
		opts.BaseTimeout = 30 * time.Second
	}
	if opts.TimeoutStep <= 0 {
		opts.TimeoutStep = 15 * time.Second
	}
	if limiter == nil {
		limiter = ratelimit.NewDomainLimiter(1.0, 1)
	}
	return &Downloader{opts: opts, limiter: limiter}
}

// Fetch downloads one item into dir, retrying with a growing timeout and
// deleting sub-floor payloads before each retry.
func (d *Downloader) Fetch(ctx context.Context, item Item, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create section directory: %w", err)
	}

	dest := filepath.Join(dir, SanitizeFilename(item.Filename))

	var lastErr error
	for attempt := 0; attempt < d.opts.MaxRetries; attempt++ {
		if err := d.limiter.Wait(ctx, item.URL); err != nil {
			return err
		}

		timeout := d.opts.BaseTimeout + time.Duration(attempt)*d.opts.TimeoutStep
		size, err := d.fetchOnce(ctx, item.URL, dest, timeout)
		if err == nil && size >= corruptFloorBytes {
			log.Debug().
				Str("url", item.URL).
				Str("file", dest).
				Int64("bytes", size).
				Msg("Download completed")
			return nil
		}

		if err == nil {
			err = fmt.Errorf("payload %d bytes below corrupt floor", size)
		}
		lastErr = err
		os.Remove(dest)

		if ctx.Err() != nil {
			return ctx.Err()
		}

		log.Debug().
			Str("url", item.URL).
			Int("attempt", attempt+1).
			Err(err).
			Msg("Download attempt failed")

		// Exponential backoff between attempts
		if attempt < d.opts.MaxRetries-1 {
			backoff := time.Duration(1<<uint(attempt+1)) * time.Second
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	return fmt.Errorf("download %s failed after %d attempts: %w", item.URL, d.opts.MaxRetries, lastErr)
}

func (d *Downloader) fetchOnce(ctx context.Context, url, dest string, timeout time.Duration) (int64, error) {
	client := &http.Client{Timeout: timeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	if d.opts.UserAgent != "" {
		req.Header.Set("User-Agent", d.opts.UserAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("bad status: %d %s", resp.StatusCode, resp.Status)
	}

	outFile, err := os.Create(dest)
	if err != nil {
		return 0, fmt.Errorf("failed to create file: %w", err)
	}
	defer outFile.Close()

	written, err := io.Copy(outFile, resp.Body)
	if err != nil {
		return written, fmt.Errorf("failed to write file: %w", err)
	}
	return written, nil
}

// SanitizeFilename prevents path traversal and strips characters that are
// unsafe on any target filesystem.
func SanitizeFilename(input string) string {
	for _, bad := range []string{"/", "\\", "..", ":", "*", "?", "\"", "<", ">", "|"} {
		input = strings.ReplaceAll(input, bad, "_")
	}

	input = strings.TrimSpace(input)
	input = strings.Trim(input, ".")

	if input == "" {
		input = fmt.Sprintf("download_%d", time.Now().Unix())
	}
	if len(input) > 200 {
		ext := filepath.Ext(input)
		input = input[:200-len(ext)] + ext
	}

	return input
}
