// internal/sources/segye.go
package sources

import (
	"regexp"
	"time"

	"github.com/kpress-lab/collector/internal/dates"
	"github.com/kpress-lab/collector/internal/extract"
	"github.com/kpress-lab/collector/internal/listing"
	"github.com/kpress-lab/collector/pkg/models"
)

// 세계일보: paginated newsView indexes reporting totals with a "총 N건"
// marker. Reporter comes from the feed/byline when plausible, otherwise the
// outlet constant is emitted per source policy.
func init() {
	articleRE := regexp.MustCompile(`segye\.com/newsView/\d+`)

	index := func(cat string) listing.Listing {
		return listing.PaginatedIndex{
			Template:      "https://www.segye.com/newsList/" + cat + "?page=%d",
			LinkPattern:   articleRE,
			PerPage:       15,
			PageCap:       12,
			FallbackPages: 5,
		}
	}

	Register(&Source{
		ID:      "segye",
		Outlet:  "세계일보",
		BaseURL: "https://www.segye.com",
		Categories: []Category{
			{Name: "정치", Listing: index("0101010000000")},
			{Name: "경제", Listing: index("0101020000000")},
			{Name: "사회", Listing: index("0101030000000")},
		},
		Extract: extract.Config{
			Outlet: "세계일보",
			TitleSelectors: []string{
				"h3#title_sns",
				"h1.headline",
			},
			DateSelectors: []string{
				"p.viewInfo",
			},
			BodySelectors: []string{
				"article.viewBox2",
				"div.viewContent.body18.color700",
			},
			ReporterPolicy: models.ReporterExtracted,
			OutletReporter: "세계일보",
			NameBlocklist:  []string{"세계일보"},
			DateStyle:      dates.StyleDotted,
			MinBodyChars:   20,
			HardCap:        2000,
		},
		DateStyle:      dates.StyleDotted,
		DelayMin:       1 * time.Second,
		DelayMax:       3 * time.Second,
		CategoryDelay:  8 * time.Second,
		MaxPerCategory: 25,
	})
}
