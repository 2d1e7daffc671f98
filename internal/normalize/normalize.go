// internal/normalize/normalize.go
package normalize

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Ellipsis is appended to a body cut at the hard cap.
const Ellipsis = "..."

var (
	wsRE    = regexp.MustCompile(`\s+`)
	cdataRE = regexp.MustCompile(`(?s)<!\[CDATA\[(.*?)\]\]>`)

	// Boilerplate stripped from every body regardless of source.
	defaultDenylist = []*regexp.Regexp{
		regexp.MustCompile(`(?i)copyright\s*[ⓒ©(][^.]*`),
		regexp.MustCompile(`ⓒ\s*\S+[^.]*(무단\s*전재|재배포\s*금지)[^.]*`),
		regexp.MustCompile(`저작권자\s*[ⓒ©(][^.]*`),
		regexp.MustCompile(`무단\s*전재\s*및?\s*재배포\s*금지`),
		regexp.MustCompile(`입력\s*[:：]?\s*\d{4}[.\-/]\d{1,2}[.\-/]\d{1,2}[^가-힣]*`),
		regexp.MustCompile(`수정\s*[:：]?\s*\d{4}[.\-/]\d{1,2}[.\-/]\d{1,2}[^가-힣]*`),
		regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`),
		regexp.MustCompile(`사진\s*[=:：]\s*\S+`),
		regexp.MustCompile(`\[사진\s*[^\]]*\]`),
		regexp.MustCompile(`(카카오톡|페이스북|트위터)\s*(공유|구독)\S*`),
	}
)

// Normalizer applies the body cleanup pipeline: denylist strip, whitespace
// collapse, trim, capped truncation. One Normalizer per source, carrying the
// source's extra denylist patterns.
type Normalizer struct {
	denylist []*regexp.Regexp
	minChars int
	hardCap  int
}

// New creates a Normalizer. minChars is the rejection floor, hardCap the
// truncation bound in characters; extra patterns run after the defaults.
func New(minChars, hardCap int, extra []*regexp.Regexp) *Normalizer {
	if minChars <= 0 {
		minChars = 20
	}
	if hardCap <= 0 {
		hardCap = 2000
	}
	return &Normalizer{
		denylist: append(append([]*regexp.Regexp{}, defaultDenylist...), extra...),
		minChars: minChars,
		hardCap:  hardCap,
	}
}

// MinChars returns the rejection floor.
func (n *Normalizer) MinChars() int { return n.minChars }

// Body normalizes candidate body text. The boolean is false when the result
// falls below the floor and the record must be rejected.
func (n *Normalizer) Body(s string) (string, bool) {
	s = DecodeEntities(s)
	for _, re := range n.denylist {
		s = re.ReplaceAllString(s, " ")
	}
	s = CollapseWhitespace(s)
	s = Truncate(s, n.hardCap)
	return s, utf8.RuneCountInString(s) >= n.minChars
}

// CollapseWhitespace folds all whitespace runs into single spaces and trims.
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(wsRE.ReplaceAllString(s, " "))
}

// StripCDATA unwraps <![CDATA[...]] sections, keeping their literal text.
func StripCDATA(s string) string {
	return cdataRE.ReplaceAllString(s, "$1")
}

// DecodeEntities strips CDATA wrappers and decodes HTML entities so titles
// and summaries carry literal text.
func DecodeEntities(s string) string {
	return strings.TrimSpace(html.UnescapeString(StripCDATA(s)))
}

// Truncate cuts s at limit characters, appending the ellipsis marker when cut.
func Truncate(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:limit])) + Ellipsis
}
