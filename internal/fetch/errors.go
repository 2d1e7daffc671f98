// internal/fetch/errors.go
package fetch

import (
	"fmt"
	"net/http"
)

// FetchError wraps a failed retrieval with enough context to classify it.
// Network-level failures and retryable status codes (5xx, 408, 429) are
// transient; any other 4xx is permanent and surfaces immediately.
type FetchError struct {
	URL        string
	StatusCode int // 0 when the request never produced a response
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("fetch %s: HTTP %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Transient reports whether retrying the fetch can help.
func (e *FetchError) Transient() bool {
	if e.StatusCode == 0 {
		// Network-level failure
		return true
	}
	switch {
	case e.StatusCode >= 500:
		return true
	case e.StatusCode == http.StatusRequestTimeout, e.StatusCode == http.StatusTooManyRequests:
		return true
	default:
		return false
	}
}

// GetStatusCode implements the StatusCoder convention used by callers that
// branch on HTTP status.
func (e *FetchError) GetStatusCode() int { return e.StatusCode }
