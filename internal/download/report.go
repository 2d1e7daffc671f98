// internal/download/report.go
package download

import (
	"fmt"
	"strings"

	"github.com/kpress-lab/collector/internal/ui"
)

// Report aggregates a full bulk run for the final textual summary.
type Report struct {
	Source   string
	Sections []*SectionResult
}

// Render formats the run summary: totals, per-section counts, and the
// failed items with reasons.
func (r *Report) Render() string {
	var b strings.Builder

	total, skipped, ok, failed := 0, 0, 0, 0
	for _, s := range r.Sections {
		total += s.Total
		skipped += s.Skipped
		ok += s.Succeeded
		failed += len(s.Failures)
	}

	fmt.Fprintf(&b, "\n%s %s\n", ui.Bold("Download report:"), r.Source)
	fmt.Fprintf(&b, "  total %d, completed earlier %d, downloaded %d, failed %d\n\n",
		total, skipped, ok, failed)

	for _, s := range r.Sections {
		line := fmt.Sprintf("  %-12s %d/%d", s.Name, s.Succeeded+s.Skipped, s.Total)
		if len(s.Failures) == 0 {
			fmt.Fprintln(&b, ui.Success(line))
			continue
		}
		fmt.Fprintln(&b, ui.Error(line))
		for _, f := range s.Failures {
			fmt.Fprintf(&b, "    %s: %s\n", f.Filename, f.Reason)
		}
	}

	return b.String()
}
