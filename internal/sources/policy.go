// internal/sources/policy.go
package sources

import "regexp"

// 정책브리핑 (korea.kr): policy briefing portal. Sections are walked by the
// bulk downloader with a per-section resumable checkpoint; not a CSV source.
func init() {
	pdfRE := regexp.MustCompile(`\.pdf(?:\?|$)`)

	RegisterBulk(&BulkSource{
		ID:      "policy",
		Name:    "정책브리핑",
		BaseURL: "https://www.korea.kr",
		Sections: []BulkSection{
			{
				Name:        "정책자료",
				IndexURL:    "https://www.korea.kr/archive/expDocList.do",
				LinkPattern: pdfRE,
			},
			{
				Name:        "보도자료",
				IndexURL:    "https://www.korea.kr/briefing/pressReleaseList.do",
				LinkPattern: pdfRE,
			},
		},
	})
}
