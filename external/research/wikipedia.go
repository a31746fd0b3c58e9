package research

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	researchpkg "github.com/foxseedlab/ronpakun/internal/research"
)

const (
	wikipediaSummaryURL = "https://en.wikipedia.org/api/rest_v1/page/summary/"
	lookupTimeout       = 15 * time.Second
)

// WikipediaClient resolves topics via the Wikipedia REST summary endpoint.
type WikipediaClient struct {
	baseURL string
	client  *http.Client
}

func NewWikipediaClient() researchpkg.Encyclopedia {
	return &WikipediaClient{
		baseURL: wikipediaSummaryURL,
		client:  &http.Client{Timeout: lookupTimeout},
	}
}

type wikipediaSummary struct {
	Title       string `json:"title"`
	Extract     string `json:"extract"`
	ContentURLs struct {
		Desktop struct {
			Page string `json:"page"`
		} `json:"desktop"`
	} `json:"content_urls"`
}

func (w *WikipediaClient) Lookup(ctx context.Context, query string) (*researchpkg.Article, error) {
	topic := strings.ReplaceAll(strings.TrimSpace(query), " ", "_")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.baseURL+url.PathEscape(topic), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("encyclopedia API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var summary wikipediaSummary
	if err := json.Unmarshal(body, &summary); err != nil {
		return nil, fmt.Errorf("failed to parse encyclopedia response: %w", err)
	}

	pageURL := summary.ContentURLs.Desktop.Page
	if pageURL == "" {
		pageURL = "https://en.wikipedia.org/wiki/" + url.PathEscape(topic)
	}
	return &researchpkg.Article{
		Title:   summary.Title,
		Extract: summary.Extract,
		URL:     pageURL,
	}, nil
}
