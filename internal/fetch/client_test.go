// internal/fetch/client_test.go
package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kpress-lab/collector/internal/retry"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

func fastRetry() retry.Config {
	return retry.Config{
		MaxAttempts:    3,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     5 * time.Millisecond,
		Multiplier:     2.0,
	}
}

func TestClient_FetchSetsBrowserHeaders(t *testing.T) {
	var gotUA, gotLang, gotReferer string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotLang = r.Header.Get("Accept-Language")
		gotReferer = r.Header.Get("Referer")
		w.Write([]byte("<html><body>ok</body></html>"))
	}))
	defer server.Close()

	c := New(5*time.Second, nil)
	resp, err := c.Fetch(context.Background(), server.URL, Options{Referer: "https://news.example.com"})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if resp.StatusCode != 200 {
		t.Errorf("status = %d", resp.StatusCode)
	}
	if gotUA == "" || !strings.Contains(gotUA, "Mozilla/5.0") {
		t.Errorf("user agent not a browser string: %q", gotUA)
	}
	if !strings.HasPrefix(gotLang, "ko-KR") {
		t.Errorf("Accept-Language = %q", gotLang)
	}
	if gotReferer != "https://news.example.com" {
		t.Errorf("Referer = %q", gotReferer)
	}
}

func TestClient_RotatesUserAgents(t *testing.T) {
	var agents []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agents = append(agents, r.Header.Get("User-Agent"))
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	c := New(5*time.Second, nil)
	for i := 0; i < 3; i++ {
		if _, err := c.Fetch(context.Background(), server.URL, Options{}); err != nil {
			t.Fatalf("Fetch %d failed: %v", i, err)
		}
	}

	if agents[0] == agents[1] && agents[1] == agents[2] {
		t.Errorf("user agent never rotated: %q", agents[0])
	}
}

func TestClient_TranscodesEUCKR(t *testing.T) {
	encoded, _, err := transform.String(korean.EUCKR.NewEncoder(), "<html><body>안녕하세요 한국 뉴스</body></html>")
	if err != nil {
		t.Fatal(err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=euc-kr")
		w.Write([]byte(encoded))
	}))
	defer server.Close()

	c := New(5*time.Second, nil)
	resp, err := c.Fetch(context.Background(), server.URL, Options{})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if !strings.Contains(string(resp.Body), "안녕하세요 한국 뉴스") {
		t.Errorf("body not transcoded to UTF-8: %q", resp.Body)
	}
}

func TestClient_NotFoundIsPermanent(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		http.NotFound(w, r)
	}))
	defer server.Close()

	c := New(5*time.Second, nil)
	c.SetRetry(fastRetry())

	_, err := c.Fetch(context.Background(), server.URL, Options{})
	if err == nil {
		t.Fatal("expected an error for 404")
	}

	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FetchError, got %T", err)
	}
	if fe.StatusCode != 404 {
		t.Errorf("StatusCode = %d", fe.StatusCode)
	}
	if fe.Transient() {
		t.Error("404 must not be transient")
	}
	if requests != 1 {
		t.Errorf("404 was retried: %d requests", requests)
	}
}

func TestClient_RetriesServerErrors(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte("<html><body>복구됨</body></html>"))
	}))
	defer server.Close()

	c := New(5*time.Second, nil)
	c.SetRetry(fastRetry())

	resp, err := c.Fetch(context.Background(), server.URL, Options{})
	if err != nil {
		t.Fatalf("Fetch should succeed after transient 502s: %v", err)
	}
	if requests != 3 {
		t.Errorf("requests = %d, want 3", requests)
	}
	if !strings.Contains(string(resp.Body), "복구됨") {
		t.Errorf("unexpected body: %q", resp.Body)
	}
}

func TestFetchError_Classification(t *testing.T) {
	cases := []struct {
		status    int
		transient bool
	}{
		{0, true},
		{404, false},
		{403, false},
		{408, true},
		{429, true},
		{500, true},
		{503, true},
	}

	for _, tc := range cases {
		e := &FetchError{URL: "https://example.com", StatusCode: tc.status, Err: errors.New("x")}
		if e.Transient() != tc.transient {
			t.Errorf("status %d: Transient = %v, want %v", tc.status, e.Transient(), tc.transient)
		}
	}
}

func TestAgentPool_RoundRobin(t *testing.T) {
	p := newAgentPool([]string{"a", "b", "c"})
	got := []string{p.Next(), p.Next(), p.Next(), p.Next()}
	want := []string{"a", "b", "c", "a"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Next sequence = %v, want %v", got, want)
		}
	}
}
