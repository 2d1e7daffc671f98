// internal/cli/download.go
package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/kpress-lab/collector/internal/config"
	"github.com/kpress-lab/collector/internal/download"
	"github.com/kpress-lab/collector/internal/fetch"
	"github.com/kpress-lab/collector/internal/ratelimit"
	"github.com/kpress-lab/collector/internal/sources"
	"github.com/spf13/cobra"
)

// downloadCmd represents the download command
var downloadCmd = &cobra.Command{
	Use:   "download <bulk-source-id>",
	Short: "Bulk-download a document source with resumable progress",
	Long: `Download walks every section of a bulk source, fetches each linked
document to disk, and records completed files in a per-section checkpoint.
Rerunning after an interruption or partial failure skips everything already
on disk and retries only the remainder.`,
	Example: `  # Download all policy briefing sections
  collector download policy

  # Resume after an interrupted run; completed files are not refetched
  collector download policy`,
	Args: cobra.ExactArgs(1),
	RunE: runDownload,
}

func init() {
	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, args []string) error {
	a := GetApp()

	src, err := sources.GetBulk(args[0])
	if err != nil {
		return err
	}

	// Index pages are few; article-grade pacing is plenty
	client := fetch.New(a.Config.HTTPTimeout, ratelimit.NewPacer(time.Second, 2*time.Second))
	dl := download.NewDownloader(download.Options{},
		ratelimit.NewDomainLimiter(config.DefaultRateRPS, config.DefaultRateBurst))

	baseDir := filepath.Join(a.Config.DownloadDir, src.ID)
	report := &download.Report{Source: src.Name}

	for _, section := range src.Sections {
		items, err := download.ListItems(cmd.Context(), client, section)
		if err != nil {
			a.Logger.Error().Err(err).Str("section", section.Name).Msg("Section listing failed, skipping")
			report.Sections = append(report.Sections, &download.SectionResult{
				Name:     section.Name,
				Failures: []download.Failure{{Filename: "(index)", Reason: err.Error()}},
			})
			continue
		}

		result, err := dl.RunSection(cmd.Context(), baseDir, section, items)
		if result != nil {
			report.Sections = append(report.Sections, result)
		}
		if err != nil {
			// Cancellation or checkpoint write failure; progress so far is durable
			fmt.Print(report.Render())
			return err
		}
	}

	fmt.Print(report.Render())
	return nil
}
