// internal/sources/koreaherald.go
package sources

import (
	"regexp"
	"time"

	"github.com/kpress-lab/collector/internal/dates"
	"github.com/kpress-lab/collector/internal/extract"
	"github.com/kpress-lab/collector/internal/listing"
	"github.com/kpress-lab/collector/pkg/models"
)

// The Korea Herald: paginated category indexes. Records carry the outlet
// name as reporter regardless of byline; that is the source's own policy.
func init() {
	articleRE := regexp.MustCompile(`koreaherald\.com/view\.php\?ud=\d+`)

	index := func(cat string) listing.Listing {
		return listing.PaginatedIndex{
			Template:      "https://www.koreaherald.com/list.php?ct=" + cat + "&np=%d",
			LinkPattern:   articleRE,
			PerPage:       25,
			PageCap:       10,
			FallbackPages: 4,
		}
	}

	Register(&Source{
		ID:      "koreaherald",
		Outlet:  "The Korea Herald",
		BaseURL: "https://www.koreaherald.com",
		Categories: []Category{
			{Name: "National", Listing: index("020100000000")},
			{Name: "Business", Listing: index("020200000000")},
			{Name: "Politics", Listing: index("020300000000")},
		},
		Extract: extract.Config{
			Outlet: "The Korea Herald",
			TitleSelectors: []string{
				"h1.news_title",
				"div.view_tit > h1",
			},
			BodySelectors: []string{
				"article.view_con_t[itemprop=articleBody]",
				"div#articleText",
			},
			ReporterPolicy: models.ReporterOutletConstant,
			OutletReporter: "The Korea Herald",
			DateStyle:      dates.StyleDotted,
			MinBodyChars:   20,
			HardCap:        2500,
		},
		DateStyle:      dates.StyleDotted,
		DelayMin:       2 * time.Second,
		DelayMax:       4 * time.Second,
		CategoryDelay:  10 * time.Second,
		MaxPerCategory: 30,
	})
}
