// internal/extract/date.go
package extract

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/kpress-lab/collector/internal/dates"
	"github.com/kpress-lab/collector/pkg/models"
)

var genericDateContainers = []string{".article-info", "time", ".date", ".view-info", ".info"}

// date runs the date cascade. The emitted format follows the source
// convention (DateStyle); no cross-source canonicalization.
func (e *Extractor) date(doc *goquery.Document, ref models.Candidate) string {
	// 1. Preview date from the reference
	if d := strings.TrimSpace(ref.Date); d != "" {
		return d
	}

	// 2. ISO datetime attribute on any element
	var isoDate string
	doc.Find("[datetime]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		attr, _ := sel.Attr("datetime")
		if t, ok := dates.ParseISO(attr); ok {
			isoDate = dates.Format(t, e.cfg.DateStyle)
			return false
		}
		return true
	})
	if isoDate != "" {
		return isoDate
	}

	// 3. Text date inside known containers
	containers := append(append([]string{}, e.cfg.DateSelectors...), genericDateContainers...)
	for _, sel := range containers {
		var found string
		doc.Find(sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if d, ok := dates.FindTextDate(s.Text()); ok {
				found = d
				return false
			}
			return true
		})
		if found != "" {
			return found
		}
	}

	// 4. A raw pubDate string carried in the preview slot was already
	// handled by the listing; when everything fails, the collection
	// timestamp stands in so the field is never empty.
	e.log.Debug().Str("url", ref.URL).Msg("No date found, using collection time")
	return dates.Format(time.Now(), e.cfg.DateStyle)
}
