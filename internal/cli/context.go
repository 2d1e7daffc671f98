// Package cli provides the command-line interface for the collector.
package cli

import (
	"github.com/kpress-lab/collector/internal/app"
)

// Global application reference, set by the root command's PersistentPreRunE
// and cleared on shutdown. Commands run strictly sequentially, so a plain
// global is sufficient.
var globalApp *app.Application

// SetApp stores the Application for commands to access
func SetApp(a *app.Application) {
	globalApp = a
}

// GetApp retrieves the Application
func GetApp() *app.Application {
	return globalApp
}
