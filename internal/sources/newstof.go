// internal/sources/newstof.go
package sources

import (
	"time"

	"github.com/kpress-lab/collector/internal/dates"
	"github.com/kpress-lab/collector/internal/extract"
	"github.com/kpress-lab/collector/internal/listing"
	"github.com/kpress-lab/collector/pkg/models"
)

// 뉴스톱: fact-check outlet. Single RSS feed; categories ride in bracket
// title prefixes ([팩트체크], [주간팩트체크]) rather than feed elements.
func init() {
	Register(&Source{
		ID:      "newstof",
		Outlet:  "뉴스톱",
		BaseURL: "https://www.newstof.com",
		Categories: []Category{
			{
				Name:    "팩트체크",
				Listing: listing.Feed{URL: "https://www.newstof.com/rss/allArticle.xml"},
			},
		},
		Extract: extract.Config{
			Outlet: "뉴스톱",
			TitleSelectors: []string{
				"h3.heading",
				"h1.headline-title",
			},
			BodySelectors: []string{
				"article#article-view-content-div[itemprop=articleBody]",
				"div#article-view-content-div",
			},
			ReporterSelectors: []string{
				".view-editors .name",
				".writer",
			},
			ReporterPolicy: models.ReporterExtracted,
			NameBlocklist:  []string{"뉴스톱"},
			DateStyle:      dates.StyleDateTime,
			MinBodyChars:   20,
			HardCap:        2000,
		},
		DateStyle:      dates.StyleDateTime,
		DelayMin:       1 * time.Second,
		DelayMax:       3 * time.Second,
		CategoryDelay:  5 * time.Second,
		MaxPerCategory: 50,
	})
}
