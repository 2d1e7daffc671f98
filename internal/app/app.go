// Package app provides the core application initialization and lifecycle management.
package app

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/kpress-lab/collector/internal/browser"
	"github.com/kpress-lab/collector/internal/config"
	"github.com/kpress-lab/collector/internal/fetch"
	"github.com/kpress-lab/collector/internal/ratelimit"
	"github.com/kpress-lab/collector/internal/sources"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Application holds the shared dependencies of a CLI invocation.
//
// It is created once at startup and shared across all commands. The browser
// is provisioned lazily so sources that never render stay browser-free.
// Use Close() to ensure proper resource cleanup on shutdown.
type Application struct {
	Config *config.Config
	Logger zerolog.Logger

	rendererMu sync.Mutex
	renderer   browser.Renderer

	startTime time.Time
}

// New creates an Application: it configures logging from the config and
// records the start time. Clients and the browser are created per command.
func New(cfg *config.Config) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	logLevel := zerolog.InfoLevel
	switch cfg.LogLevel {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	var logWriter io.Writer
	if cfg.JSONLog {
		logWriter = os.Stderr
	} else {
		logWriter = zerolog.ConsoleWriter{Out: os.Stderr}
	}

	logger := zerolog.New(logWriter).With().Timestamp().Logger()
	log.Logger = logger

	logger.Debug().
		Str("level", cfg.LogLevel).
		Bool("json", cfg.JSONLog).
		Msg("Logger initialized")

	return &Application{
		Config:    cfg,
		Logger:    logger,
		startTime: time.Now(),
	}, nil
}

// NewClient builds the paced HTTP client for one source. Each source gets
// its own client so cookies and pacing state never leak across runs.
func (a *Application) NewClient(src *sources.Source) *fetch.Client {
	pacer := ratelimit.NewPacer(src.DelayMin, src.DelayMax)
	return fetch.New(a.Config.HTTPTimeout, pacer)
}

// Renderer lazily starts the shared browser renderer. Sources that never
// escalate never pay the browser startup cost.
func (a *Application) Renderer() browser.Renderer {
	a.rendererMu.Lock()
	defer a.rendererMu.Unlock()

	if a.renderer == nil {
		a.renderer = browser.NewChromeRenderer(browser.ChromeOptions{
			Headless:   a.Config.Headless,
			ChromePath: a.Config.ChromePath,
		})
		a.Logger.Debug().Bool("headless", a.Config.Headless).Msg("Renderer provisioned")
	}
	return a.renderer
}

// Close shuts down the browser if one was started.
func (a *Application) Close() error {
	a.rendererMu.Lock()
	defer a.rendererMu.Unlock()

	if a.renderer != nil {
		if err := a.renderer.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Error closing renderer")
		}
		a.renderer = nil
	}

	a.Logger.Debug().Dur("uptime", time.Since(a.startTime)).Msg("Application shutdown complete")
	return nil
}

// Uptime returns how long the application has been running.
func (a *Application) Uptime() time.Duration {
	return time.Since(a.startTime)
}
