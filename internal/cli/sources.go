// internal/cli/sources.go
package cli

import (
	"fmt"

	"github.com/kpress-lab/collector/internal/sources"
	"github.com/kpress-lab/collector/internal/ui"
	"github.com/spf13/cobra"
)

// sourcesCmd represents the sources command
var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List the registered article and bulk-download sources",
	RunE:  runSources,
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}

func runSources(cmd *cobra.Command, args []string) error {
	fmt.Println(ui.Bold("Article sources"))
	for _, src := range sources.All() {
		mode := "raw"
		if src.UseRenderer {
			mode = "rendered"
		}
		fmt.Printf("  %-14s %-12s %-9s %d categories\n", src.ID, src.Outlet, mode, len(src.Categories))
	}

	bulk := sources.AllBulk()
	if len(bulk) == 0 {
		return nil
	}

	fmt.Println(ui.Bold("\nBulk download sources"))
	for _, src := range bulk {
		fmt.Printf("  %-14s %-12s %d sections\n", src.ID, src.Name, len(src.Sections))
	}
	return nil
}
