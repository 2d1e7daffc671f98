package config

import "time"

// Default constants for application configuration
const (
	DefaultLogLevel    = "info"
	DefaultJSONLog     = false
	DefaultHTTPTimeout = 20 * time.Second
	DefaultOutputDir   = "."
	DefaultDownloadDir = "downloads"
	DefaultHeadless    = true

	// Shared per-domain floor; per-source pacing adds jitter on top.
	DefaultRateRPS   = 1.0
	DefaultRateBurst = 1
)
