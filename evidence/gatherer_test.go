package evidence

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newsServer(t *testing.T, articlesJSON string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/everything" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("X-Api-Key"); got != "news-key" {
			t.Fatalf("unexpected api key header: %q", got)
		}
		if got := r.URL.Query().Get("sortBy"); got != "relevancy" {
			t.Fatalf("unexpected sortBy: %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":"ok","articles":%s}`, articlesJSON)
	}))
}

func TestGatherDisabledWithoutKey(t *testing.T) {
	g := NewGatherer("http://example.com", "", "", "", 3, time.Second)
	if got := g.Gather(context.Background(), "AI regulation"); got != Notice {
		t.Fatalf("expected static notice, got %q", got)
	}
}

func TestGatherExtractsArticleText(t *testing.T) {
	articleServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<html><head><title>t</title><script>var x=1;</script></head><body><p>Regulators met on Tuesday.</p></body></html>`)
	}))
	defer articleServer.Close()

	news := newsServer(t, fmt.Sprintf(`[{"title":"Summit held","url":"%s","source":{"name":"Wire"}}]`, articleServer.URL))
	defer news.Close()

	g := NewGatherer(news.URL, "news-key", "", "", 3, time.Second)
	got := g.Gather(context.Background(), "AI regulation")

	if !strings.Contains(got, "--- SOURCE: Summit held (Wire) ---") {
		t.Fatalf("missing source header: %q", got)
	}
	if !strings.Contains(got, "Regulators met on Tuesday.") {
		t.Fatalf("missing article text: %q", got)
	}
	if strings.Contains(got, "var x=1") {
		t.Fatalf("script content leaked into evidence: %q", got)
	}
}

func TestGatherPrefersReaderEndpoint(t *testing.T) {
	reader := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer reader-key" {
			t.Fatalf("unexpected reader auth: %q", got)
		}
		fmt.Fprint(w, "Rendered article text.")
	}))
	defer reader.Close()

	news := newsServer(t, `[{"title":"Summit held","url":"http://articles.invalid/a","source":{"name":"Wire"}}]`)
	defer news.Close()

	g := NewGatherer(news.URL, "news-key", reader.URL, "reader-key", 3, time.Second)
	got := g.Gather(context.Background(), "AI regulation")

	if !strings.Contains(got, "Rendered article text.") {
		t.Fatalf("expected reader output, got %q", got)
	}
}

func TestGatherFallsBackToHeadlines(t *testing.T) {
	deadArticle := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer deadArticle.Close()

	news := newsServer(t, fmt.Sprintf(`[{"title":"Summit held","url":"%s","source":{"name":"Wire"}},{"title":"Talks stall","url":"%s","source":{"name":"Post"}}]`, deadArticle.URL, deadArticle.URL))
	defer news.Close()

	g := NewGatherer(news.URL, "news-key", "", "", 3, time.Second)
	got := g.Gather(context.Background(), "AI regulation")

	if !strings.HasPrefix(got, "Recent headlines:") {
		t.Fatalf("expected headlines fallback, got %q", got)
	}
	if !strings.Contains(got, "- Summit held (Wire)") || !strings.Contains(got, "- Talks stall (Post)") {
		t.Fatalf("missing headlines: %q", got)
	}
}

func TestGatherFallsBackToNoticeOnSearchFailure(t *testing.T) {
	news := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer news.Close()

	g := NewGatherer(news.URL, "news-key", "", "", 3, time.Second)
	if got := g.Gather(context.Background(), "AI regulation"); got != Notice {
		t.Fatalf("expected static notice, got %q", got)
	}
}

func TestGatherNoticeOnEmptyResults(t *testing.T) {
	news := newsServer(t, `[]`)
	defer news.Close()

	g := NewGatherer(news.URL, "news-key", "", "", 3, time.Second)
	if got := g.Gather(context.Background(), "AI regulation"); got != Notice {
		t.Fatalf("expected static notice, got %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdef", 4); got != "abcd..." {
		t.Fatalf("unexpected truncation: %q", got)
	}
	if got := truncate("abc", 4); got != "abc" {
		t.Fatalf("short strings must pass through, got %q", got)
	}
}
