package config

import "github.com/spf13/cobra"

// RegisterFlags registers common CLI flags on the provided root command
func RegisterFlags(cmd *cobra.Command) {
	if cmd == nil {
		return
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress all output except errors")
	cmd.PersistentFlags().Bool("json", false, "Emit logs in JSON format")
	cmd.PersistentFlags().String("timeout", "20s", "Hard timeout for a single article request")
	cmd.PersistentFlags().StringP("output", "o", "", "Directory for CSV output files")
	cmd.PersistentFlags().String("downloads", "", "Directory for bulk document downloads")
	cmd.PersistentFlags().String("chrome-path", "", "Path to the Chrome/Chromium binary")
	cmd.PersistentFlags().Bool("headful", false, "Run the browser with a visible window")
	cmd.PersistentFlags().String("config", "", "Path to a YAML override file (optional)")
}
