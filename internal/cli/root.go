// internal/cli/root.go
package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/kpress-lab/collector/internal/app"
	"github.com/kpress-lab/collector/internal/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "collector",
	Short: "Collect Korean news articles into CSV and bulk document archives",
	Long: `Collector walks registered news sources, extracts article fields with
per-outlet selector cascades, and writes one CSV per run. Bulk document
sources download to disk with a resumable checkpoint.`,
	Version: "0.1.0",
}

// ExecuteContext adds all child commands to the root command and runs it
// under ctx. This is called by main.main(); commands read the context via
// cmd.Context(), so cancelling ctx stops a run cooperatively.
func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Initialize the application lazily so -h/help stays instant
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if GetApp() != nil {
			return nil
		}

		cfg, err := config.Load(rootCmd)
		if err != nil {
			return err
		}

		a, err := app.New(cfg)
		if err != nil {
			return err
		}
		SetApp(a)
		return nil
	}

	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		if a := GetApp(); a != nil {
			_ = a.Close()
			SetApp(nil)
		}
	}
}

func init() {
	config.RegisterFlags(rootCmd)

	rootCmd.Flags().BoolP("help", "h", false, "Help for Collector")
	rootCmd.Flags().Bool("version", false, "Version for Collector")

	// Disable the default completion command
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.SetHelpFunc(customHelpFunc)
	rootCmd.SetUsageFunc(customUsageFunc)
}
