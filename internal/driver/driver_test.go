// internal/driver/driver_test.go
package driver

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kpress-lab/collector/internal/browser"
	"github.com/kpress-lab/collector/internal/extract"
	"github.com/kpress-lab/collector/internal/fetch"
	"github.com/kpress-lab/collector/internal/listing"
	"github.com/kpress-lab/collector/internal/record"
	"github.com/kpress-lab/collector/internal/retry"
	"github.com/kpress-lab/collector/internal/sources"
	"github.com/kpress-lab/collector/pkg/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// stubListing replays a fixed candidate sequence.
type stubListing struct {
	cands []models.Candidate
}

func (s stubListing) Enumerate(ctx context.Context, env listing.Env, emit listing.EmitFunc) error {
	for _, c := range s.cands {
		if err := emit(c); err != nil {
			return err
		}
	}
	return nil
}

// stubRenderer serves rendered HTML per URL.
type stubRenderer struct {
	pages map[string]string
	gets  int
}

func (s *stubRenderer) Get(ctx context.Context, url string, opts browser.RenderOptions) (string, error) {
	s.gets++
	html, ok := s.pages[url]
	if !ok {
		return "", fmt.Errorf("no rendered page for %s", url)
	}
	return html, nil
}

func (s *stubRenderer) Close() error { return nil }

func articleHTML(title, body string) string {
	return fmt.Sprintf(`<html><body><h1>%s</h1><div id="article-body">%s</div></body></html>`, title, body)
}

func prose(sentence string) string {
	return strings.Repeat(sentence+" ", 12)
}

func testSource(id string, cats ...sources.Category) *sources.Source {
	return &sources.Source{
		ID:         id,
		Outlet:     "어느신문",
		Categories: cats,
		Extract: extract.Config{
			Outlet:        "어느신문",
			BodySelectors: []string{"div#article-body"},
			MinBodyChars:  20,
			HardCap:       2000,
		},
	}
}

func testClient(t *testing.T) *fetch.Client {
	t.Helper()
	c := fetch.New(5*time.Second, nil)
	c.SetRetry(retry.Config{
		MaxAttempts:    2,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     5 * time.Millisecond,
		Multiplier:     2.0,
	})
	return c
}

func newTestWriter(t *testing.T) (*record.Writer, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "out.csv")
	w, err := record.NewWriter(path)
	require.NoError(t, err)
	return w, path
}

func readRows(t *testing.T, path string) [][]string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	rows, err := csv.NewReader(bytes.NewReader(data[3:])).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestDriver_RunHappyPath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/1":
			fmt.Fprint(w, articleHTML("첫 기사", prose("첫 기사의 본문 내용이다.")))
		case "/2":
			fmt.Fprint(w, articleHTML("둘째 기사", prose("둘째 기사의 본문 내용이다.")))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	src := testSource("test", sources.Category{
		Name: "정치",
		Listing: stubListing{cands: []models.Candidate{
			{URL: server.URL + "/1", Date: "2024-08-05 10:00:00"},
			{URL: server.URL + "/2", Date: "2024-08-05 11:00:00"},
		}},
	})

	writer, path := newTestWriter(t)
	d := New(src, testClient(t), nil, writer, zerolog.Nop())

	stats, err := d.Run(context.Background())
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	require.Equal(t, 2, stats.Emitted)
	require.Equal(t, 2, stats.Attempted)
	require.Equal(t, 0, stats.Failed)
	require.Equal(t, 2, stats.PerCategory["정치"])

	rows := readRows(t, path)
	require.Len(t, rows, 3)
	require.Equal(t, models.Columns, rows[0])
	require.Equal(t, "첫 기사", rows[1][1], "emission order must follow listing order")
	require.Equal(t, "둘째 기사", rows[2][1])
	require.Equal(t, "정치", rows[1][3], "category hint comes from the category name")
	require.Equal(t, "미상", rows[1][4])
}

func TestDriver_MissingArticleContinuesRun(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/gone" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, articleHTML("살아있는 기사", prose("이 기사는 정상적으로 수집된다.")))
	}))
	defer server.Close()

	src := testSource("test", sources.Category{
		Name: "사회",
		Listing: stubListing{cands: []models.Candidate{
			{URL: server.URL + "/gone"},
			{URL: server.URL + "/ok"},
		}},
	})

	writer, path := newTestWriter(t)
	d := New(src, testClient(t), nil, writer, zerolog.Nop())

	stats, err := d.Run(context.Background())
	require.NoError(t, err, "a 404 item must not abort the run")
	require.NoError(t, writer.Close())

	require.Equal(t, 1, stats.Failed)
	require.Equal(t, 1, stats.Emitted)
	require.Len(t, readRows(t, path), 2)
}

func TestDriver_DeduplicatesAcrossCategories(t *testing.T) {
	hits := map[string]int{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits[r.URL.Path]++
		fmt.Fprint(w, articleHTML("기사", prose("중복 검사 대상 본문이다.")))
	}))
	defer server.Close()

	shared := models.Candidate{URL: server.URL + "/shared"}
	src := testSource("test",
		sources.Category{Name: "정치", Listing: stubListing{cands: []models.Candidate{shared}}},
		sources.Category{Name: "사회", Listing: stubListing{cands: []models.Candidate{shared, shared}}},
	)

	writer, _ := newTestWriter(t)
	d := New(src, testClient(t), nil, writer, zerolog.Nop())

	stats, err := d.Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, 1, stats.Emitted)
	require.Equal(t, 2, stats.SkippedDup)
	require.Equal(t, 1, hits["/shared"], "a deduplicated URL must never be fetched twice")
}

func TestDriver_QuotaStopsCategory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, articleHTML("기사", prose("쿼터 검사 대상 본문이다.")))
	}))
	defer server.Close()

	var cands []models.Candidate
	for i := 0; i < 5; i++ {
		cands = append(cands, models.Candidate{URL: fmt.Sprintf("%s/%d", server.URL, i)})
	}

	src := testSource("test", sources.Category{Name: "경제", Listing: stubListing{cands: cands}})
	src.MaxPerCategory = 2

	writer, _ := newTestWriter(t)
	d := New(src, testClient(t), nil, writer, zerolog.Nop())

	stats, err := d.Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, 2, stats.Emitted)
	require.Equal(t, 3, stats.SkippedQuota)
	require.Equal(t, 2, stats.Attempted, "over-quota candidates are skipped before fetching")
}

func TestDriver_QuotaCountsResolvedCategory(t *testing.T) {
	// Bracket prefixes in titles resolve to a category that differs from
	// the listing's hint; the quota must hold for the resolved value.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, articleHTML("[주간팩트체크] 이번 주의 검증", prose("검증 기사의 본문 내용이다.")))
	}))
	defer server.Close()

	var cands []models.Candidate
	for i := 0; i < 5; i++ {
		cands = append(cands, models.Candidate{URL: fmt.Sprintf("%s/%d", server.URL, i)})
	}

	src := testSource("test", sources.Category{Name: "팩트체크", Listing: stubListing{cands: cands}})
	src.MaxPerCategory = 2

	writer, path := newTestWriter(t)
	d := New(src, testClient(t), nil, writer, zerolog.Nop())

	stats, err := d.Run(context.Background())
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	require.Equal(t, 2, stats.Emitted)
	require.Equal(t, 3, stats.SkippedQuota)
	require.Equal(t, 2, stats.PerCategory["주간팩트체크"])
	require.Zero(t, stats.PerCategory["팩트체크"])
	require.Len(t, readRows(t, path), 3, "only quota-admitted rows may reach the file")
}

// cancellingListing cancels the run after its first candidate, the way an
// interrupt lands mid-enumeration.
type cancellingListing struct {
	cands  []models.Candidate
	cancel context.CancelFunc
}

func (s cancellingListing) Enumerate(ctx context.Context, env listing.Env, emit listing.EmitFunc) error {
	for i, c := range s.cands {
		if err := emit(c); err != nil {
			return err
		}
		if i == 0 {
			s.cancel()
		}
	}
	return nil
}

func TestDriver_CancellationStopsRunAndKeepsPartialOutput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, articleHTML("기사", prose("취소 전에 수집된 본문이다.")))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src := testSource("test", sources.Category{
		Name: "정치",
		Listing: cancellingListing{
			cands: []models.Candidate{
				{URL: server.URL + "/1"},
				{URL: server.URL + "/2"},
				{URL: server.URL + "/3"},
			},
			cancel: cancel,
		},
	})

	writer, path := newTestWriter(t)
	d := New(src, testClient(t), nil, writer, zerolog.Nop())

	stats, err := d.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.NoError(t, writer.Close())

	require.Equal(t, 1, stats.Emitted, "only the pre-cancel candidate is collected")

	rows := readRows(t, path)
	require.Len(t, rows, 2, "flushed partial output must stay a valid CSV")
}

func TestDriver_EscalatesShortBody(t *testing.T) {
	rawHits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawHits++
		// SSR shell: container present but nearly empty
		fmt.Fprint(w, articleHTML("렌더 기사", "로딩 중"))
	}))
	defer server.Close()

	url := server.URL + "/spa"
	renderer := &stubRenderer{pages: map[string]string{
		url: articleHTML("렌더 기사", prose("렌더링 후에만 보이는 본문이다.")),
	}}

	src := testSource("test", sources.Category{
		Name:    "문화",
		Listing: stubListing{cands: []models.Candidate{{URL: url}}},
	})
	src.UseRenderer = true
	src.Extract.EscalateBelow = 100

	writer, path := newTestWriter(t)
	d := New(src, testClient(t), renderer, writer, zerolog.Nop())

	stats, err := d.Run(context.Background())
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	require.Equal(t, 1, stats.Emitted)
	require.Equal(t, 1, renderer.gets, "short raw body must escalate to exactly one rendered fetch")

	rows := readRows(t, path)
	require.Contains(t, rows[1][5], "렌더링 후에만 보이는")
}

func TestDriver_NoEscalationWithoutRenderer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, articleHTML("기사", "짧음"))
	}))
	defer server.Close()

	src := testSource("test", sources.Category{
		Name:    "정치",
		Listing: stubListing{cands: []models.Candidate{{URL: server.URL + "/x"}}},
	})
	src.Extract.EscalateBelow = 100

	writer, _ := newTestWriter(t)
	d := New(src, testClient(t), nil, writer, zerolog.Nop())

	stats, err := d.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, stats.Failed, "without a renderer the short body is a plain rejection")
}
