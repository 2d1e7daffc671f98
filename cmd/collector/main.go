// cmd/collector/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/kpress-lab/collector/internal/cli"
)

func main() {
	// An interrupt cancels the command context; every loop stops at its
	// next suspension point, flushes, and persists its checkpoint.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.ExecuteContext(ctx)
}
