// internal/cli/probe.go
package cli

import (
	"bytes"
	"fmt"
	"os"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/PuerkitoBio/goquery"
	"github.com/kpress-lab/collector/internal/extract"
	"github.com/kpress-lab/collector/internal/fetch"
	"github.com/kpress-lab/collector/internal/sources"
	"github.com/kpress-lab/collector/internal/ui"
	"github.com/kpress-lab/collector/pkg/models"
	"github.com/spf13/cobra"
)

var probeMarkdown string

// probeCmd represents the probe command
var probeCmd = &cobra.Command{
	Use:   "probe <source-id> <article-url>",
	Short: "Fetch one article and show what the source's cascades extract",
	Long: `Probe runs a single article through a source's extraction cascades and
prints the resulting record field by field. Use it to check selectors
against a live page before a full collection run.`,
	Example: `  # Inspect what the newstof cascades produce for one URL
  collector probe newstof https://www.newstof.com/news/articleView.html?idxno=12345

  # Also save the article container as Markdown for review
  collector probe segye https://www.segye.com/newsView/20250101500001 --markdown article.md`,
	Args: cobra.ExactArgs(2),
	RunE: runProbe,
}

func init() {
	rootCmd.AddCommand(probeCmd)

	probeCmd.Flags().StringVar(&probeMarkdown, "markdown", "", "Write the matched article container to this file as Markdown")
}

func runProbe(cmd *cobra.Command, args []string) error {
	a := GetApp()

	src, err := sources.Get(args[0])
	if err != nil {
		return err
	}
	url := args[1]

	client := a.NewClient(src)
	resp, err := client.Fetch(cmd.Context(), url, fetch.Options{Referer: src.BaseURL})
	if err != nil {
		return err
	}

	extractor := extract.New(src.Extract, a.Logger)
	rec, err := extractor.Extract(resp.Body, models.Candidate{URL: url}, "")
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	fmt.Printf("%s\n", ui.Bold(url))
	for i, col := range models.Columns {
		fmt.Printf("  %-8s %s\n", col, rec.Fields()[i])
	}

	if probeMarkdown != "" {
		if err := saveContainerMarkdown(resp.Body, src.Extract.BodySelectors, probeMarkdown); err != nil {
			return err
		}
		fmt.Println(ui.Success("  markdown saved to " + probeMarkdown))
	}
	return nil
}

// saveContainerMarkdown converts the first matching body container to
// GitHub-flavored Markdown for selector review.
func saveContainerMarkdown(page []byte, selectors []string, path string) error {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return err
	}

	var html string
	for _, sel := range selectors {
		node := doc.Find(sel).First()
		if node.Length() == 0 {
			continue
		}
		if h, err := goquery.OuterHtml(node); err == nil {
			html = h
			break
		}
	}
	if html == "" {
		return fmt.Errorf("no body selector matched the page")
	}

	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())

	out, err := converter.ConvertString(html)
	if err != nil {
		return fmt.Errorf("markdown conversion: %w", err)
	}
	return os.WriteFile(path, []byte(out), 0644)
}
