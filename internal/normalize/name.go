// internal/normalize/name.go
package normalize

import "regexp"

// hangulName matches 2-4 Hangul syllables, the plausible shape of a Korean
// byline name.
var hangulName = regexp.MustCompile(`^[가-힣]{2,4}$`)

// DefaultNameBlocklist lists strings that pass the syllable check but are
// never reporter names: outlet names, role words, service accounts.
var DefaultNameBlocklist = []string{
	"서비스",
	"국민일보",
	"운영자",
	"뉴스톱",
	"세계일보",
	"연합뉴스",
	"편집부",
	"편집국",
	"온라인",
	"뉴스팀",
	"디지털",
	"미디어",
	"기자",
	"특파원",
}

// IsValidKoreanName reports whether s is a plausible reporter name: 2-4
// Hangul syllables and not on the blocklist. extra entries extend the
// default blocklist per source.
func IsValidKoreanName(s string, extra ...string) bool {
	if !hangulName.MatchString(s) {
		return false
	}
	for _, b := range DefaultNameBlocklist {
		if s == b {
			return false
		}
	}
	for _, b := range extra {
		if s == b {
			return false
		}
	}
	return true
}
