// internal/sources/kukmin.go
package sources

import (
	"time"

	"github.com/kpress-lab/collector/internal/dates"
	"github.com/kpress-lab/collector/internal/extract"
	"github.com/kpress-lab/collector/internal/listing"
	"github.com/kpress-lab/collector/pkg/models"
)

// 국민일보: per-category RSS feeds. The author field often carries the
// outlet name instead of a byline, hence the blocklist entry.
func init() {
	urlCats := map[string]string{
		"/pol": "정치",
		"/eco": "경제",
		"/soc": "사회",
		"/int": "국제",
		"/cul": "문화",
	}

	feed := func(path string) listing.Listing {
		return listing.Feed{
			URL:           "https://www.kmib.co.kr/rss/data/kmibRssAll" + path + ".xml",
			URLCategories: urlCats,
		}
	}

	Register(&Source{
		ID:      "kukmin",
		Outlet:  "국민일보",
		BaseURL: "https://www.kmib.co.kr",
		Categories: []Category{
			{Name: "정치", Listing: feed("Pol")},
			{Name: "경제", Listing: feed("Eco")},
			{Name: "사회", Listing: feed("Soc")},
			{Name: "국제", Listing: feed("Int")},
		},
		Extract: extract.Config{
			Outlet: "국민일보",
			TitleSelectors: []string{
				"h1#article_headline",
				"div.nwsti > h3",
			},
			BodySelectors: []string{
				"div.article_body#articleBody[itemprop=articleBody]",
				"div#articleBody",
				"div.tx",
			},
			ReporterSelectors: []string{
				".nwsti_btm .name",
			},
			ReporterPolicy: models.ReporterExtracted,
			NameBlocklist:  []string{"국민일보", "디지털뉴스부"},
			DateStyle:      dates.StyleDateTime,
			MinBodyChars:   20,
			HardCap:        2000,
		},
		DateStyle:      dates.StyleDateTime,
		DelayMin:       1 * time.Second,
		DelayMax:       3 * time.Second,
		CategoryDelay:  8 * time.Second,
		MaxPerCategory: 20,
	})
}
