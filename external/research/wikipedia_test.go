package research

import (
	"context"
	"net/http"
	"strings"
	"testing"
)

func TestWikipediaClientParsesSummary(t *testing.T) {
	var gotPath string
	w := &WikipediaClient{
		baseURL: "https://en.wikipedia.org/api/rest_v1/page/summary/",
		client: &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			gotPath = req.URL.Path
			return jsonResponse(http.StatusOK, `{
				"title": "Solar power",
				"extract": "Solar power is the conversion of sunlight into electricity.",
				"content_urls": {"desktop": {"page": "https://en.wikipedia.org/wiki/Solar_power"}}
			}`), nil
		})},
	}

	article, err := w.Lookup(context.Background(), "solar power")
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	if article == nil {
		t.Fatal("Lookup returned nil article")
	}
	if article.Title != "Solar power" || article.URL != "https://en.wikipedia.org/wiki/Solar_power" {
		t.Errorf("article = %+v", article)
	}
	if !strings.HasSuffix(gotPath, "/solar_power") {
		t.Errorf("request path = %q, want the underscored topic", gotPath)
	}
}

func TestWikipediaClientNotFound(t *testing.T) {
	w := &WikipediaClient{
		baseURL: "https://en.wikipedia.org/api/rest_v1/page/summary/",
		client: &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusNotFound, `{"type":"not_found"}`), nil
		})},
	}

	article, err := w.Lookup(context.Background(), "xyzzy")
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	if article != nil {
		t.Errorf("article = %+v, want nil for a missing topic", article)
	}
}

func TestWikipediaClientFallsBackToTopicURL(t *testing.T) {
	w := &WikipediaClient{
		baseURL: "https://en.wikipedia.org/api/rest_v1/page/summary/",
		client: &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusOK, `{"title": "Topic", "extract": "Short."}`), nil
		})},
	}

	article, err := w.Lookup(context.Background(), "some topic")
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	if !strings.HasPrefix(article.URL, "https://en.wikipedia.org/wiki/") {
		t.Errorf("fallback url = %q", article.URL)
	}
}
