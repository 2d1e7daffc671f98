// internal/extract/body.go
package extract

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/kpress-lab/collector/internal/normalize"
	"github.com/kpress-lab/collector/pkg/models"
)

// containerFloor is the useful-character count below which the selector
// strategy yields to paragraph aggregation.
const containerFloor = 100

// removedElements never carry article prose.
const removedElements = "script, style, iframe, aside, figure, figcaption, img, table"

// junkClassSubstrings mark ad/share/related blocks inside body containers.
var junkClassSubstrings = []string{
	"ad", "banner", "share", "related", "recommend",
	"promo", "caption", "subscribe", "thumb",
}

// body runs the body cascade: source selectors, inline-script state,
// paragraph aggregation, summary adoption, rejection.
func (e *Extractor) body(doc *goquery.Document, ref models.Candidate) (string, error) {
	raw := e.bodyFromSelectors(doc)

	if utf8.RuneCountInString(raw) < containerFloor && e.cfg.ScriptVar != "" {
		if s := e.bodyFromScript(doc); utf8.RuneCountInString(s) > utf8.RuneCountInString(raw) {
			raw = s
		}
	}

	if utf8.RuneCountInString(raw) < containerFloor {
		if s := e.bodyFromParagraphs(doc); utf8.RuneCountInString(s) > utf8.RuneCountInString(raw) {
			raw = s
		}
	}

	normalized, ok := e.norm.Body(raw)

	// Still insufficient: adopt the feed summary when it beats what the
	// page yielded. Explicitly logged as an adoption.
	if utf8.RuneCountInString(normalized) < containerFloor {
		if summary, sok := e.norm.Body(ref.Summary); sok &&
			utf8.RuneCountInString(summary) > utf8.RuneCountInString(normalized) {
			e.log.Info().Str("url", ref.URL).Msg("RSS 요약 채택")
			return summary, nil
		}
	}

	if !ok {
		if strings.TrimSpace(raw) == "" {
			return "", &RejectError{URL: ref.URL, Reason: ReasonNoContainer}
		}
		return "", &RejectError{URL: ref.URL, Reason: ReasonBodyTooShort}
	}

	return normalized, nil
}

// bodyFromSelectors tries the prioritized container selectors, cleaning each
// container before extracting text.
func (e *Extractor) bodyFromSelectors(doc *goquery.Document) string {
	for _, sel := range e.cfg.BodySelectors {
		container := doc.Find(sel).First()
		if container.Length() == 0 {
			continue
		}

		cleaned := cleanContainer(container)
		if text := strings.TrimSpace(cleaned.Text()); text != "" {
			return text
		}
	}
	return ""
}

// cleanContainer strips non-prose elements and junk-classed blocks from a
// clone of the container, leaving the original document intact for other
// field strategies.
func cleanContainer(sel *goquery.Selection) *goquery.Selection {
	clone := sel.Clone()
	clone.Find(removedElements).Remove()

	clone.Find("[class]").Each(func(_ int, s *goquery.Selection) {
		class, _ := s.Attr("class")
		class = strings.ToLower(class)
		for _, junk := range junkClassSubstrings {
			if strings.Contains(class, junk) {
				s.Remove()
				return
			}
		}
	})

	return clone
}

// bodyFromParagraphs aggregates all <p> elements, dropping boilerplate
// paragraphs, and joins the remainder with single spaces.
func (e *Extractor) bodyFromParagraphs(doc *goquery.Document) string {
	var parts []string
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text == "" || normalize.IsBoilerplateParagraph(text, e.cfg.Outlet) {
			return
		}
		parts = append(parts, text)
	})
	return strings.Join(parts, " ")
}
