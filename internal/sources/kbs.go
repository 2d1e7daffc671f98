// internal/sources/kbs.go
package sources

import (
	"regexp"
	"time"

	"github.com/kpress-lab/collector/internal/dates"
	"github.com/kpress-lab/collector/internal/extract"
	"github.com/kpress-lab/collector/internal/listing"
	"github.com/kpress-lab/collector/pkg/models"
)

// KBS 뉴스: the index and article pages ship near-empty SSR payloads, so the
// index is rendered and short bodies escalate to a rendered refetch. Article
// state also rides an inline-script global.
func init() {
	articleRE := regexp.MustCompile(`news\.kbs\.co\.kr/news/(?:pc/)?view/view\.do\?ncd=\d+`)

	Register(&Source{
		ID:      "kbs",
		Outlet:  "KBS",
		BaseURL: "https://news.kbs.co.kr",
		Categories: []Category{
			{
				Name: "정치",
				Listing: listing.RenderedIndex{
					URL:          "https://news.kbs.co.kr/news/pc/category/category.do?ref=pSiteMap#20",
					LinkPattern:  articleRE,
					MoreSelector: "button.news-more-btn",
					MoreClicks:   3,
					WaitFor:      []string{".box-contents", ".news-list"},
				},
			},
			{
				Name: "경제",
				Listing: listing.RenderedIndex{
					URL:          "https://news.kbs.co.kr/news/pc/category/category.do?ref=pSiteMap#30",
					LinkPattern:  articleRE,
					MoreSelector: "button.news-more-btn",
					MoreClicks:   3,
					WaitFor:      []string{".box-contents", ".news-list"},
				},
			},
		},
		Extract: extract.Config{
			Outlet: "KBS",
			TitleSelectors: []string{
				"h4.headline-title",
				"h5.tit-s",
			},
			BodySelectors: []string{
				"div#cont_newstext",
				"div.detail-body",
			},
			ScriptVar:      "__INITIAL_STATE__",
			ReporterPolicy: models.ReporterExtracted,
			NameBlocklist:  []string{"KBS뉴스"},
			DateStyle:      dates.StyleDateTime,
			MinBodyChars:   20,
			HardCap:        1500,
			EscalateBelow:  100,
		},
		DateStyle:      dates.StyleDateTime,
		DelayMin:       2 * time.Second,
		DelayMax:       4 * time.Second,
		CategoryDelay:  10 * time.Second,
		MaxPerCategory: 20,
		UseRenderer:    true,
		RenderWaitFor:  []string{"div#cont_newstext", "div.detail-body"},
	})
}
