// internal/cli/collect.go
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/kpress-lab/collector/internal/browser"
	"github.com/kpress-lab/collector/internal/driver"
	"github.com/kpress-lab/collector/internal/record"
	"github.com/kpress-lab/collector/internal/sources"
	"github.com/kpress-lab/collector/internal/ui"
	"github.com/spf13/cobra"
)

var collectLimit int

// collectCmd represents the collect command
var collectCmd = &cobra.Command{
	Use:   "collect <source-id>...",
	Short: "Collect articles from one or more sources into CSV files",
	Long: `Collect enumerates each source's category listings, fetches every new
article politely, extracts the six record fields, and writes one CSV per
source per run. Duplicate URLs are dropped, per-category quotas respected,
and individual article failures never abort the run.`,
	Example: `  # Collect one source
  collector collect newstof

  # Collect several sources back to back
  collector collect kukmin segye

  # Cap every category at 10 articles
  collector collect koreaherald --limit 10

  # Write CSVs into a specific directory
  collector collect kbs --output ./out`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCollect,
}

func init() {
	rootCmd.AddCommand(collectCmd)

	collectCmd.Flags().IntVarP(&collectLimit, "limit", "n", 0, "Max articles per category (0 keeps the source default)")
}

func runCollect(cmd *cobra.Command, args []string) error {
	a := GetApp()

	for _, id := range args {
		if _, err := sources.Get(id); err != nil {
			return err
		}
	}

	for _, id := range args {
		src, _ := sources.Get(id)

		tuning := a.Config.SourceOverride(id)
		if tuning != nil && tuning.Disabled {
			a.Logger.Warn().Str("source", id).Msg("Source disabled by override file, skipping")
			continue
		}
		tuning.Apply(src)
		if collectLimit > 0 {
			src.MaxPerCategory = collectLimit
		}

		if err := collectSource(cmd, src); err != nil {
			return err
		}
	}
	return nil
}

func collectSource(cmd *cobra.Command, src *sources.Source) error {
	a := GetApp()

	if err := os.MkdirAll(a.Config.OutputDir, 0755); err != nil {
		return fmt.Errorf("output directory: %w", err)
	}
	path := filepath.Join(a.Config.OutputDir, record.Filename(src.Outlet, time.Now()))

	writer, err := record.NewWriter(path)
	if err != nil {
		return err
	}
	defer writer.Close()

	var renderer browser.Renderer
	if src.UseRenderer {
		renderer = a.Renderer()
	}

	client := a.NewClient(src)
	d := driver.New(src, client, renderer, writer, a.Logger)

	fmt.Printf("%s %s (%s)\n", ui.Bold("Collecting"), src.Outlet, src.ID)

	stats, runErr := d.Run(cmd.Context())

	if err := writer.Close(); err != nil && runErr == nil {
		runErr = fmt.Errorf("close output: %w", err)
	}
	if writer.Rows() == 0 {
		// Header-only files are noise
		os.Remove(path)
	}
	printStats(stats, path)

	if runErr != nil {
		// Partial output is already flushed and stays valid
		return fmt.Errorf("source %s: %w", src.ID, runErr)
	}
	return nil
}

func printStats(stats *driver.Stats, path string) {
	fmt.Printf("  articles %d, attempted %d, failed %d, duplicates %d, over quota %d\n",
		stats.Emitted, stats.Attempted, stats.Failed, stats.SkippedDup, stats.SkippedQuota)

	cats := make([]string, 0, len(stats.PerCategory))
	for c := range stats.PerCategory {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	for _, c := range cats {
		fmt.Printf("    %-10s %d\n", c, stats.PerCategory[c])
	}

	if stats.Emitted > 0 {
		fmt.Println(ui.Success("  saved " + path))
	} else {
		fmt.Println(ui.Error("  no articles collected"))
	}
}
