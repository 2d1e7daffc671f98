// internal/normalize/boilerplate.go
package normalize

import (
	"regexp"
	"strings"
)

// bulletPrefixes mark navigation/promo lines in Korean news bodies.
var bulletPrefixes = []rune{'▶', '☞', '※', '■', '▲', '[', '◆', '○', '△'}

var paragraphDenylist = []*regexp.Regexp{
	regexp.MustCompile(`무단\s*전재`),
	regexp.MustCompile(`재배포\s*금지`),
	regexp.MustCompile(`기사\s*제보`),
	regexp.MustCompile(`구독\s*신청`),
	regexp.MustCompile(`(?i)copyright`),
	regexp.MustCompile(`저작권자`),
	regexp.MustCompile(`ⓒ`),
	regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`),
}

// IsBoilerplateParagraph reports whether a <p> text is boilerplate rather
// than article prose: copyright notices, subscription plugs, bullet-prefixed
// navigation lines, or outlet self-references.
func IsBoilerplateParagraph(text, outlet string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return true
	}

	first, _ := firstRune(text)
	for _, b := range bulletPrefixes {
		if first == b {
			return true
		}
	}

	for _, re := range paragraphDenylist {
		if re.MatchString(text) {
			return true
		}
	}

	// Short lines that are just the outlet talking about itself
	if outlet != "" && strings.Contains(text, outlet) && len([]rune(text)) < 30 {
		return true
	}

	return false
}

func firstRune(s string) (rune, bool) {
	for _, r := range s {
		return r, true
	}
	return 0, false
}
