// internal/listing/paginated_test.go
package listing

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var articleLinkRE = regexp.MustCompile(`/news/\d+\.html$`)

func indexPage(total string, ids ...int) string {
	var b strings.Builder
	b.WriteString("<html><body>")
	if total != "" {
		b.WriteString(`<span class="total">` + total + `</span>`)
	}
	for _, id := range ids {
		fmt.Fprintf(&b, `<a href="/news/%d.html">기사 %d</a>`, id, id)
	}
	b.WriteString(`<a href="/ad/banner.html">광고</a></body></html>`)
	return b.String()
}

func TestPaginatedIndex_WalksDerivedPageCount(t *testing.T) {
	pages := map[string]string{
		"1": indexPage("총 25건", 1, 2, 3),
		"2": indexPage("", 4, 5),
		"3": indexPage("", 6),
		"4": indexPage("", 7), // beyond the derived page count
	}
	var requested []string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		requested = append(requested, page)
		w.Write([]byte(pages[page]))
	}))
	defer server.Close()

	idx := PaginatedIndex{
		Template:    server.URL + "/list?page=%d",
		LinkPattern: articleLinkRE,
		PerPage:     10,
		PageCap:     50,
	}

	cands := collectAll(t, idx, testEnv(t))

	// 총 25건 at 10 per page means 3 pages
	require.Equal(t, []string{"1", "2", "3"}, requested)
	require.Len(t, cands, 6)
	require.Equal(t, server.URL+"/news/1.html", cands[0].URL, "emission must follow page order")
	require.Equal(t, server.URL+"/news/6.html", cands[5].URL)
	for _, c := range cands {
		require.NotContains(t, c.URL, "banner", "non-article anchors must be filtered")
	}
}

func TestPaginatedIndex_StopsWhenNoNewReferences(t *testing.T) {
	first := indexPage("총 100건", 1, 2)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Every page repeats the same articles
		w.Write([]byte(first))
	}))
	defer server.Close()

	idx := PaginatedIndex{
		Template:    server.URL + "/list?page=%d",
		LinkPattern: articleLinkRE,
		PerPage:     10,
		PageCap:     50,
	}

	cands := collectAll(t, idx, testEnv(t))
	require.Len(t, cands, 2, "repeated pages must stop the walk, not loop")
}

func TestPaginatedIndex_FallbackPagesWithoutMarker(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte(indexPage("", requests*10+1, requests*10+2)))
	}))
	defer server.Close()

	idx := PaginatedIndex{
		Template:      server.URL + "/list?page=%d",
		LinkPattern:   articleLinkRE,
		PerPage:       10,
		PageCap:       50,
		FallbackPages: 2,
	}

	cands := collectAll(t, idx, testEnv(t))
	require.Equal(t, 2, requests, "without a total marker the fallback bounds the walk")
	require.Len(t, cands, 4)
}

func TestPaginatedIndex_URLCategories(t *testing.T) {
	page := `<html><body><a href="/economy/news/11.html">경제 기사</a></body></html>`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page))
	}))
	defer server.Close()

	idx := PaginatedIndex{
		Template:      server.URL + "/list?page=%d",
		LinkPattern:   articleLinkRE,
		FallbackPages: 1,
		URLCategories: map[string]string{"/economy/": "경제"},
	}

	cands := collectAll(t, idx, testEnv(t))
	require.Len(t, cands, 1)
	require.Equal(t, "경제", cands[0].Category)
}
